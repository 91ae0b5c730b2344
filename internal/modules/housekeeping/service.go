package housekeeping

import (
	"context"
	"fmt"
	"log"
	"time"

	"hotelier/internal/domain"
)

type Service struct {
	bookings BookingRepository
	rooms    RoomRepository
}

func NewService(bookings BookingRepository, rooms RoomRepository) *Service {
	return &Service{bookings: bookings, rooms: rooms}
}

type SweepResult struct {
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

// Sweep reconciles finished stays: every confirmed room booking whose
// check-out is on or before the end of the prior calendar day gets
// completed, and its room, when the occupancy pointer still references
// the booking, is marked dirty and released. A failure on one booking is
// logged and skipped so the rest of the batch still runs. Running the
// sweep twice on the same day is a no-op the second time.
func (s *Service) Sweep(ctx context.Context, now time.Time) (SweepResult, error) {
	var res SweepResult

	cutoff := endOfYesterday(now)
	due, err := s.bookings.DueForCompletion(ctx, cutoff)
	if err != nil {
		return res, err
	}

	for i := range due {
		b := &due[i]
		if err := s.processBooking(ctx, b); err != nil {
			log.Printf("housekeeping: booking %d skipped: %v", b.ID, err)
			res.Failed++
			continue
		}
		res.Completed++
	}

	return res, nil
}

func (s *Service) processBooking(ctx context.Context, b *domain.Booking) error {
	if b.RoomID != nil {
		room, err := s.rooms.GetByID(ctx, *b.RoomID)
		if err != nil {
			return fmt.Errorf("load room %d: %w", *b.RoomID, err)
		}

		// Only touch the room if the pointer still references this
		// booking; the room may already be held by a newer stay.
		if room.CurrentBookingID != nil && *room.CurrentBookingID == b.ID {
			if err := s.rooms.UpdateStatus(ctx, room.ID, domain.RoomDirty); err != nil {
				return fmt.Errorf("mark room %s dirty: %w", room.RoomNumber, err)
			}
			if err := s.rooms.SetCurrentBooking(ctx, room.ID, nil); err != nil {
				return fmt.Errorf("release room %s: %w", room.RoomNumber, err)
			}
			if err := s.rooms.IncrementTotalReservations(ctx, room.ID); err != nil {
				log.Printf("housekeeping: room %s reservation counter: %v", room.RoomNumber, err)
			}
			log.Printf("housekeeping: room %s marked dirty, booking %d released", room.RoomNumber, b.ID)
		}
	}

	if b.Status != domain.BookingCompleted {
		if err := s.bookings.UpdateStatus(ctx, b.ID, domain.BookingCompleted); err != nil {
			return fmt.Errorf("complete booking %d: %w", b.ID, err)
		}
	}
	return nil
}

// endOfYesterday returns the last instant of the prior calendar day in
// UTC, matching the "check-out on or before yesterday" rule.
func endOfYesterday(now time.Time) time.Time {
	now = now.UTC()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return startOfToday.Add(-time.Nanosecond)
}
