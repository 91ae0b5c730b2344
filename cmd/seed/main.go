package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"hotelier/internal/database"
	"hotelier/internal/domain"
	"hotelier/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found, continuing with environment variables")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "hotelier.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM room_blocks")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	rooms := repository.NewRoomRepository(db)
	bookings := repository.NewBookingRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@hotelier.local",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Front Desk Admin",
	}
	if err := users.Create(ctx, &admin); err != nil {
		log.Fatal("admin:", err)
	}
	log.Println("Admin created: admin@hotelier.local / admin123")

	hkHash, _ := bcrypt.GenerateFromPassword([]byte("sweep123"), bcrypt.DefaultCost)
	housekeeper := domain.User{
		Email:        "housekeeping@hotelier.local",
		PasswordHash: string(hkHash),
		Role:         domain.RoleHousekeeper,
		Name:         "Housekeeping Lead",
	}
	if err := users.Create(ctx, &housekeeper); err != nil {
		log.Fatal("housekeeper:", err)
	}
	log.Println("Housekeeper created: housekeeping@hotelier.local / sweep123")

	// ================== ROOMS ==================
	log.Println("Creating rooms...")

	type roomSpec struct {
		number   string
		roomType domain.RoomType
		capacity int
		price    float64
		features []string
	}
	specs := []roomSpec{
		{"101", domain.RoomSingle, 1, 80, []string{"wifi"}},
		{"102", domain.RoomSingle, 1, 80, []string{"wifi"}},
		{"103", domain.RoomDouble, 2, 120, []string{"wifi", "balcony"}},
		{"104", domain.RoomDouble, 2, 120, []string{"wifi"}},
		{"201", domain.RoomStandard, 2, 100, []string{"wifi", "city view"}},
		{"202", domain.RoomFamily, 4, 180, []string{"wifi", "kitchenette"}},
		{"203", domain.RoomDeluxe, 2, 220, []string{"wifi", "minibar", "sea view"}},
		{"301", domain.RoomSuite, 4, 350, []string{"wifi", "minibar", "jacuzzi"}},
	}

	seeded := make([]domain.Room, 0, len(specs))
	for _, s := range specs {
		room := domain.Room{
			RoomNumber:    s.number,
			RoomType:      s.roomType,
			Capacity:      s.capacity,
			PricePerNight: s.price,
			Status:        domain.RoomAvailable,
			Features:      s.features,
		}
		if err := rooms.Create(ctx, &room); err != nil {
			log.Fatalf("room %s: %v", s.number, err)
		}
		seeded = append(seeded, room)
	}
	log.Printf("Created %d rooms", len(seeded))

	// ================== BOOKINGS ==================
	log.Println("Creating bookings...")

	today := time.Now().UTC().Truncate(24 * time.Hour)
	day := func(offset int) *time.Time {
		d := today.AddDate(0, 0, offset)
		return &d
	}
	nights := func(start, end *time.Time) float64 {
		return end.Sub(*start).Hours() / 24
	}

	create := func(b domain.Booking) domain.Booking {
		if err := bookings.Create(ctx, &b); err != nil {
			log.Fatalf("booking %s: %v", b.ReferenceCode, err)
		}
		return b
	}

	// Current guest: confirmed stay that started yesterday, room occupied.
	occupied := seeded[2] // 103
	current := create(domain.Booking{
		ReferenceCode: "SEED-0001",
		Service:       domain.ServiceRoom,
		GuestName:     "Maria Keller",
		GuestEmail:    "maria@example.com",
		Guests:        2,
		RoomID:        &occupied.ID,
		CheckIn:       day(-1),
		CheckOut:      day(2),
		TotalAmount:   nights(day(-1), day(2)) * occupied.PricePerNight,
		AmountPaid:    nights(day(-1), day(2)) * occupied.PricePerNight,
		PaymentStatus: domain.PaymentPaid,
		PaymentMethod: domain.PaymentCard,
		Status:        domain.BookingConfirmed,
	})
	if err := rooms.SetCurrentBooking(ctx, occupied.ID, &current.ID); err != nil {
		log.Fatal("occupancy pointer:", err)
	}
	if err := rooms.UpdateStatus(ctx, occupied.ID, domain.RoomOccupied); err != nil {
		log.Fatal("room status:", err)
	}

	// Upcoming pending reservation, room not yet assigned to occupancy.
	upcoming := seeded[6] // 203
	create(domain.Booking{
		ReferenceCode: "SEED-0002",
		Service:       domain.ServiceRoom,
		GuestName:     "Tom Abara",
		GuestEmail:    "tom@example.com",
		Guests:        2,
		RoomID:        &upcoming.ID,
		CheckIn:       day(5),
		CheckOut:      day(8),
		TotalAmount:   nights(day(5), day(8)) * upcoming.PricePerNight,
		AmountPaid:    100,
		PaymentStatus: domain.PaymentPartiallyPaid,
		PaymentMethod: domain.PaymentBankTransfer,
		Status:        domain.BookingPending,
	})

	// Past stay that the nightly sweep should have closed already.
	past := seeded[0] // 101
	create(domain.Booking{
		ReferenceCode: "SEED-0003",
		Service:       domain.ServiceRoom,
		GuestName:     "Elena Ruiz",
		GuestEmail:    "elena@example.com",
		Guests:        1,
		RoomID:        &past.ID,
		CheckIn:       day(-10),
		CheckOut:      day(-7),
		TotalAmount:   nights(day(-10), day(-7)) * past.PricePerNight,
		AmountPaid:    nights(day(-10), day(-7)) * past.PricePerNight,
		PaymentStatus: domain.PaymentPaid,
		PaymentMethod: domain.PaymentCash,
		Status:        domain.BookingCompleted,
	})

	// Appointment without a room.
	slot := today.AddDate(0, 0, 3)
	create(domain.Booking{
		ReferenceCode: "SEED-0004",
		Service:       domain.ServiceAppointment,
		GuestName:     "Viktor Lund",
		GuestEmail:    "viktor@example.com",
		Guests:        1,
		Date:          &slot,
		TimeSlot:      "14:00",
		TotalAmount:   60,
		PaymentStatus: domain.PaymentPending,
		Status:        domain.BookingConfirmed,
	})

	fmt.Println()
	log.Println("Seed completed!")
	log.Println("Test accounts:")
	log.Println("  Admin:       admin@hotelier.local / admin123")
	log.Println("  Housekeeper: housekeeping@hotelier.local / sweep123")
}
