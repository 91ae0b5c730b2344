package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hotelier/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID                int64          `gorm:"column:id;primaryKey"`
	RoomNumber        string         `gorm:"column:room_number;uniqueIndex;size:50"`
	RoomType          string         `gorm:"column:room_type;size:32"`
	Capacity          int            `gorm:"column:capacity"`
	PricePerNight     float64        `gorm:"column:price_per_night"`
	Status            string         `gorm:"column:status;size:32"`
	Features          datatypes.JSON `gorm:"column:features"`
	Notes             *string        `gorm:"column:notes"`
	CurrentBookingID  *int64         `gorm:"column:current_booking_id"`
	TotalReservations int            `gorm:"column:total_reservations"`
	CreatedAt         time.Time      `gorm:"column:created_at"`
	UpdatedAt         time.Time      `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}

	var features []string
	if len(m.Features) > 0 {
		_ = json.Unmarshal(m.Features, &features)
	}

	return &domain.Room{
		ID:                m.ID,
		RoomNumber:        m.RoomNumber,
		RoomType:          domain.RoomType(m.RoomType),
		Capacity:          m.Capacity,
		PricePerNight:     m.PricePerNight,
		Status:            domain.RoomStatus(m.Status),
		Features:          features,
		Notes:             notes,
		CurrentBookingID:  m.CurrentBookingID,
		TotalReservations: m.TotalReservations,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toRoomModel(r *domain.Room) roomModel {
	var notes *string
	if r.Notes != "" {
		v := r.Notes
		notes = &v
	}

	var features datatypes.JSON
	if len(r.Features) > 0 {
		raw, _ := json.Marshal(r.Features)
		features = datatypes.JSON(raw)
	}

	return roomModel{
		ID:                r.ID,
		RoomNumber:        r.RoomNumber,
		RoomType:          string(r.RoomType),
		Capacity:          r.Capacity,
		PricePerNight:     r.PricePerNight,
		Status:            string(r.Status),
		Features:          features,
		Notes:             notes,
		CurrentBookingID:  r.CurrentBookingID,
		TotalReservations: r.TotalReservations,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) GetByNumber(ctx context.Context, number string) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).Where("room_number = ?", number).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainRoom(m), nil
}

// List returns all rooms ordered by room number so that scans over the
// inventory are deterministic.
func (r *RoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	var ms []roomModel
	tx := r.db.WithContext(ctx).Order("room_number ASC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Room, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).Model(&roomModel{}).
		Where("id = ?", m.ID).
		Select("room_number", "room_type", "capacity", "price_per_night",
			"status", "features", "notes", "current_booking_id", "total_reservations").
		Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RoomRepository) UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	tx := r.db.WithContext(ctx).Model(&roomModel{}).
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

// SetCurrentBooking moves the room's occupancy pointer. A nil bookingID
// clears it.
func (r *RoomRepository) SetCurrentBooking(ctx context.Context, roomID int64, bookingID *int64) error {
	tx := r.db.WithContext(ctx).Model(&roomModel{}).
		Where("id = ?", roomID).
		Update("current_booking_id", bookingID)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RoomRepository) IncrementTotalReservations(ctx context.Context, roomID int64) error {
	return r.db.WithContext(ctx).Model(&roomModel{}).
		Where("id = ?", roomID).
		Update("total_reservations", gorm.Expr("total_reservations + 1")).Error
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&roomModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
