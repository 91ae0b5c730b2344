package booking

import (
	"context"

	"hotelier/internal/domain"
	"hotelier/internal/repository"
)

// BookingRepository defines the persistence operations the lifecycle
// manager needs over the booking ledger.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	Delete(ctx context.Context, id int64) error
	ActiveForRoom(ctx context.Context, roomID, excludeBookingID int64) ([]domain.Booking, error)
	List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, error)
}

// RoomRepository defines the room inventory operations used for
// assignment and occupancy-pointer maintenance.
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context) ([]domain.Room, error)
	SetCurrentBooking(ctx context.Context, roomID int64, bookingID *int64) error
}

// RoomBlockRepository exposes administrative holds, which compete with
// bookings during availability checks.
type RoomBlockRepository interface {
	ListForRoom(ctx context.Context, roomID int64) ([]domain.RoomBlock, error)
}

// NotificationSender is the external mailer collaborator. Failures are
// advisory and never fail a booking.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, b *domain.Booking) error
}
