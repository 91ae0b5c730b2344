package repository

import (
	"context"
	"errors"
	"time"

	"hotelier/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	ReferenceCode string     `gorm:"column:reference_code;size:64;index"`
	Service       string     `gorm:"column:service;size:32"`
	GuestName     string     `gorm:"column:guest_name;size:255"`
	GuestEmail    string     `gorm:"column:guest_email;size:255"`
	Guests        int        `gorm:"column:guests"`
	RoomID        *int64     `gorm:"column:room_id;index"`
	CheckIn       *time.Time `gorm:"column:check_in"`
	CheckOut      *time.Time `gorm:"column:check_out"`
	Date          *time.Time `gorm:"column:date"`
	TimeSlot      *string    `gorm:"column:time_slot"`
	TotalAmount   float64    `gorm:"column:total_amount"`
	AmountPaid    float64    `gorm:"column:amount_paid"`
	PaymentStatus string     `gorm:"column:payment_status;size:32"`
	PaymentMethod *string    `gorm:"column:payment_method;size:32"`
	Status        string     `gorm:"column:status;size:32;index"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var slot string
	if m.TimeSlot != nil {
		slot = *m.TimeSlot
	}
	var method domain.PaymentMethod
	if m.PaymentMethod != nil {
		method = domain.PaymentMethod(*m.PaymentMethod)
	}

	return &domain.Booking{
		ID:            m.ID,
		ReferenceCode: m.ReferenceCode,
		Service:       domain.ServiceKind(m.Service),
		GuestName:     m.GuestName,
		GuestEmail:    m.GuestEmail,
		Guests:        m.Guests,
		RoomID:        m.RoomID,
		CheckIn:       m.CheckIn,
		CheckOut:      m.CheckOut,
		Date:          m.Date,
		TimeSlot:      slot,
		TotalAmount:   m.TotalAmount,
		AmountPaid:    m.AmountPaid,
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		PaymentMethod: method,
		Status:        domain.BookingStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var slot *string
	if b.TimeSlot != "" {
		v := b.TimeSlot
		slot = &v
	}
	var method *string
	if b.PaymentMethod != "" {
		v := string(b.PaymentMethod)
		method = &v
	}

	return bookingModel{
		ID:            b.ID,
		ReferenceCode: b.ReferenceCode,
		Service:       string(b.Service),
		GuestName:     b.GuestName,
		GuestEmail:    b.GuestEmail,
		Guests:        b.Guests,
		RoomID:        b.RoomID,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		Date:          b.Date,
		TimeSlot:      slot,
		TotalAmount:   b.TotalAmount,
		AmountPaid:    b.AmountPaid,
		PaymentStatus: string(b.PaymentStatus),
		PaymentMethod: method,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", m.ID).
		Select("service", "guest_name", "guest_email", "guests", "room_id",
			"check_in", "check_out", "date", "time_slot", "total_amount",
			"amount_paid", "payment_status", "payment_method", "status").
		Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&bookingModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ActiveForRoom returns the pending and confirmed room stays assigned to
// a room, excluding one booking id (zero excludes nothing). These are the
// intervals the availability engine compares against.
func (r *BookingRepository) ActiveForRoom(ctx context.Context, roomID, excludeBookingID int64) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Where("service = ?", string(domain.ServiceRoom)).
		Where("status IN ?", []string{string(domain.BookingPending), string(domain.BookingConfirmed)})
	if excludeBookingID != 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}

	var ms []bookingModel
	if tx := q.Order("check_in ASC").Find(&ms); tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// DueForCompletion returns confirmed room stays with an assigned room
// whose check-out is on or before the cutoff. The housekeeping sweep
// feeds on this.
func (r *BookingRepository) DueForCompletion(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("service = ?", string(domain.ServiceRoom)).
		Where("status = ?", string(domain.BookingConfirmed)).
		Where("room_id IS NOT NULL").
		Where("check_out <= ?", cutoff).
		Order("check_out ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

type BookingFilter struct {
	Status  string
	Service string
	RoomID  int64
}

func (r *BookingRepository) List(ctx context.Context, f BookingFilter) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Service != "" {
		q = q.Where("service = ?", f.Service)
	}
	if f.RoomID != 0 {
		q = q.Where("room_id = ?", f.RoomID)
	}

	var ms []bookingModel
	if tx := q.Order("created_at DESC").Find(&ms); tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}
