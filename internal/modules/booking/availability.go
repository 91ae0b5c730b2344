package booking

import (
	"context"
	"time"

	"hotelier/internal/domain"
)

// overlaps is the canonical half-open interval test: [aStart, aEnd) and
// [bStart, bEnd) collide iff aStart < bEnd && bStart < aEnd. Back-to-back
// stays (checkout day = next check-in day) never collide.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// normalizeDate truncates to the calendar day in UTC. Room stays are
// date-ranged, not timestamped.
func normalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// nights counts the calendar nights in [start, end).
func nights(start, end time.Time) int {
	return int(normalizeDate(end).Sub(normalizeDate(start)).Hours() / 24)
}

// IsRoomFree reports whether no active booking or administrative block on
// the room overlaps [start, end). excludeBookingID skips one booking from
// the comparison, used when re-checking a booking being updated; zero
// excludes nothing. Pure read, no side effects.
func (s *Service) IsRoomFree(ctx context.Context, roomID int64, start, end time.Time, excludeBookingID int64) (bool, error) {
	start, end = normalizeDate(start), normalizeDate(end)
	if !start.Before(end) {
		return false, ErrInvalidInterval
	}

	active, err := s.bookings.ActiveForRoom(ctx, roomID, excludeBookingID)
	if err != nil {
		return false, err
	}
	for _, b := range active {
		if b.CheckIn == nil || b.CheckOut == nil {
			continue
		}
		if overlaps(start, end, normalizeDate(*b.CheckIn), normalizeDate(*b.CheckOut)) {
			return false, nil
		}
	}

	blocks, err := s.blocks.ListForRoom(ctx, roomID)
	if err != nil {
		return false, err
	}
	for _, blk := range blocks {
		if overlaps(start, end, normalizeDate(blk.StartDate), normalizeDate(blk.EndDate)) {
			return false, nil
		}
	}

	return true, nil
}

// FindAvailableRoom scans the inventory for the first room that can host
// the stay: bookable status, enough capacity, matching type when one is
// requested, and no conflicting interval. Rooms are scanned in room-number
// order, so the result is deterministic.
func (s *Service) FindAvailableRoom(ctx context.Context, start, end time.Time, guests int, roomType domain.RoomType) (*domain.Room, error) {
	start, end = normalizeDate(start), normalizeDate(end)
	if !start.Before(end) {
		return nil, ErrInvalidInterval
	}
	if guests < 1 {
		guests = 1
	}

	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range rooms {
		room := &rooms[i]
		if !s.roomEligible(room, guests, roomType) {
			continue
		}
		free, err := s.IsRoomFree(ctx, room.ID, start, end, 0)
		if err != nil {
			return nil, err
		}
		if free {
			return room, nil
		}
	}

	return nil, ErrNoRoomAvailable
}

func (s *Service) roomEligible(room *domain.Room, guests int, roomType domain.RoomType) bool {
	if !room.Status.Bookable() {
		return false
	}
	if room.Capacity < guests {
		return false
	}
	if roomType != "" && room.RoomType != roomType {
		return false
	}
	return true
}

// PriceStay computes nights([start, end)) x nightly rate.
func (s *Service) PriceStay(room *domain.Room, start, end time.Time) (float64, error) {
	n := nights(start, end)
	if n <= 0 {
		return 0, ErrInvalidInterval
	}
	return float64(n) * room.PricePerNight, nil
}
