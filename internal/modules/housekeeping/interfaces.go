package housekeeping

import (
	"context"
	"time"

	"hotelier/internal/domain"
)

type BookingRepository interface {
	DueForCompletion(ctx context.Context, cutoff time.Time) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error
	SetCurrentBooking(ctx context.Context, roomID int64, bookingID *int64) error
	IncrementTotalReservations(ctx context.Context, roomID int64) error
}
