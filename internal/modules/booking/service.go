package booking

import (
	"context"
	"errors"
	"log"
	"sync"

	"hotelier/internal/domain"
	"hotelier/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type Service struct {
	bookings BookingRepository
	rooms    RoomRepository
	blocks   RoomBlockRepository
	notifs   NotificationSender

	// Per-room critical sections: the availability check and the
	// subsequent write must be atomic relative to other mutations on
	// the same room.
	mu        sync.Mutex
	roomLocks map[int64]*sync.Mutex
}

func NewService(
	bookings BookingRepository,
	rooms RoomRepository,
	blocks RoomBlockRepository,
	notifs NotificationSender,
) *Service {
	return &Service{
		bookings:  bookings,
		rooms:     rooms,
		blocks:    blocks,
		notifs:    notifs,
		roomLocks: make(map[int64]*sync.Mutex),
	}
}

func (s *Service) lockRoom(roomID int64) func() {
	s.mu.Lock()
	m, ok := s.roomLocks[roomID]
	if !ok {
		m = &sync.Mutex{}
		s.roomLocks[roomID] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// CreateBooking handles the public creation path. Room stays get a room
// auto-assigned and priced; the room's occupancy pointer is deliberately
// NOT set, a pending public booking must not block the room until it is
// confirmed. The notification outcome is advisory.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateResult, error) {
	b, err := s.newBookingFromRequest(req)
	if err != nil {
		return nil, err
	}

	if b.IsRoomStay() {
		if err := s.assignAndCreate(ctx, b, domain.RoomType(req.RoomType), nil); err != nil {
			return nil, err
		}
	} else {
		if err := s.bookings.Create(ctx, b); err != nil {
			return nil, err
		}
	}

	return s.notifyCreated(ctx, b), nil
}

// CreateAdminBooking allows an explicit room and status. Active statuses
// with an assigned room commit the occupancy pointer immediately, after
// re-validating availability inside the room's critical section.
func (s *Service) CreateAdminBooking(ctx context.Context, req AdminCreateBookingRequest) (*CreateResult, error) {
	b, err := s.newBookingFromRequest(req.CreateBookingRequest)
	if err != nil {
		return nil, err
	}

	if req.Status != "" {
		status := domain.BookingStatus(req.Status)
		if !validBookingStatus(status) {
			return nil, ErrValidation
		}
		b.Status = status
	}
	if req.AmountPaid < 0 {
		return nil, ErrInvalidAmount
	}
	b.AmountPaid = req.AmountPaid
	if req.PaymentMethod != "" {
		method := domain.PaymentMethod(req.PaymentMethod)
		if !validPaymentMethod(method) {
			return nil, ErrValidation
		}
		b.PaymentMethod = method
	}

	if !b.IsRoomStay() {
		b.PaymentStatus = domain.DerivePaymentStatus(b.AmountPaid, b.TotalAmount)
		if err := s.bookings.Create(ctx, b); err != nil {
			return nil, err
		}
		return s.notifyCreated(ctx, b), nil
	}

	if req.RoomID == nil {
		if err := s.assignAndCreate(ctx, b, domain.RoomType(req.RoomType), req.TotalAmount); err != nil {
			return nil, err
		}
	} else {
		room, err := s.getRoom(ctx, *req.RoomID)
		if err != nil {
			return nil, err
		}
		if !room.Status.Bookable() || room.Capacity < b.Guests {
			return nil, ErrRoomUnavailable
		}

		unlock := s.lockRoom(room.ID)
		defer unlock()

		free, err := s.IsRoomFree(ctx, room.ID, *b.CheckIn, *b.CheckOut, 0)
		if err != nil {
			return nil, err
		}
		if !free {
			return nil, ErrRoomUnavailable
		}

		b.RoomID = &room.ID
		if req.TotalAmount != nil {
			b.TotalAmount = *req.TotalAmount
		} else {
			total, err := s.PriceStay(room, *b.CheckIn, *b.CheckOut)
			if err != nil {
				return nil, err
			}
			b.TotalAmount = total
		}
		b.PaymentStatus = domain.DerivePaymentStatus(b.AmountPaid, b.TotalAmount)

		if err := s.bookings.Create(ctx, b); err != nil {
			if isOverbookingConflict(err) {
				return nil, ErrRoomUnavailable
			}
			return nil, err
		}
	}

	if b.Status.IsActive() && b.RoomID != nil {
		if err := s.rooms.SetCurrentBooking(ctx, *b.RoomID, &b.ID); err != nil {
			return nil, err
		}
	}

	b.PaymentStatus = domain.DerivePaymentStatus(b.AmountPaid, b.TotalAmount)
	return s.notifyCreated(ctx, b), nil
}

// assignAndCreate walks the eligible rooms in room-number order and books
// the first one still free inside its critical section. A non-nil
// totalOverride replaces the nightly-rate pricing.
//
// The free check has to run under the room's lock, between acquiring it
// and inserting the row, so the scan cannot delegate to FindAvailableRoom:
// a room that looked free during an unlocked scan may be taken by the time
// we lock it.
func (s *Service) assignAndCreate(ctx context.Context, b *domain.Booking, roomType domain.RoomType, totalOverride *float64) error {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return err
	}

	for i := range rooms {
		room := &rooms[i]
		if !s.roomEligible(room, b.Guests, roomType) {
			continue
		}

		unlock := s.lockRoom(room.ID)

		free, err := s.IsRoomFree(ctx, room.ID, *b.CheckIn, *b.CheckOut, 0)
		if err != nil {
			unlock()
			return err
		}
		if !free {
			unlock()
			continue
		}

		b.RoomID = &room.ID
		if totalOverride != nil {
			b.TotalAmount = *totalOverride
		} else {
			total, err := s.PriceStay(room, *b.CheckIn, *b.CheckOut)
			if err != nil {
				unlock()
				return err
			}
			b.TotalAmount = total
		}
		b.PaymentStatus = domain.DerivePaymentStatus(b.AmountPaid, b.TotalAmount)

		err = s.bookings.Create(ctx, b)
		unlock()
		if err != nil {
			if isOverbookingConflict(err) {
				// Lost the race against another instance; try the
				// next room.
				b.RoomID = nil
				continue
			}
			return err
		}
		return nil
	}

	return ErrNoRoomAvailable
}

// UpdateBooking applies the requested changes all-or-nothing: if the new
// room/interval pair conflicts with another active booking, the whole
// update is rejected and the prior state is left untouched.
func (s *Service) UpdateBooking(ctx context.Context, id int64, req UpdateBookingRequest) (*domain.Booking, error) {
	cur, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *cur
	if err := applyUpdate(&updated, cur, req); err != nil {
		return nil, err
	}

	prevRoomID := cur.RoomID
	roomChanged := !sameRoom(prevRoomID, updated.RoomID)
	intervalChanged := !sameInterval(cur, &updated)

	if updated.IsRoomStay() && updated.RoomID != nil && updated.Status.IsActive() {
		room, err := s.getRoom(ctx, *updated.RoomID)
		if err != nil {
			return nil, err
		}

		unlock := s.lockRoom(room.ID)
		defer unlock()

		free, err := s.IsRoomFree(ctx, room.ID, *updated.CheckIn, *updated.CheckOut, id)
		if err != nil {
			return nil, err
		}
		if !free {
			return nil, ErrRoomUnavailable
		}

		if (roomChanged || intervalChanged) && req.TotalAmount == nil {
			total, err := s.PriceStay(room, *updated.CheckIn, *updated.CheckOut)
			if err != nil {
				return nil, err
			}
			updated.TotalAmount = total
		}
		updated.PaymentStatus = derivePayment(&updated, cur, req)

		if err := s.bookings.Update(ctx, &updated); err != nil {
			if isOverbookingConflict(err) {
				return nil, ErrRoomUnavailable
			}
			return nil, err
		}
	} else {
		updated.PaymentStatus = derivePayment(&updated, cur, req)
		if err := s.bookings.Update(ctx, &updated); err != nil {
			return nil, err
		}
	}

	// Pointer maintenance only after the booking row is committed.
	if roomChanged && prevRoomID != nil {
		s.clearPointerIfHeld(ctx, *prevRoomID, id)
	}
	if updated.RoomID != nil {
		if updated.Status.IsActive() {
			if err := s.rooms.SetCurrentBooking(ctx, *updated.RoomID, &id); err != nil {
				return nil, err
			}
		} else {
			s.clearPointerIfHeld(ctx, *updated.RoomID, id)
		}
	}

	return &updated, nil
}

// DeleteBooking removes the booking; a room pointer referencing it is
// cleared unconditionally.
func (s *Service) DeleteBooking(ctx context.Context, id int64) error {
	cur, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	if cur.RoomID != nil {
		unlock := s.lockRoom(*cur.RoomID)
		s.clearPointerIfHeld(ctx, *cur.RoomID, id)
		unlock()
	}

	if err := s.bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// RecordPayment adds a non-negative increment to the amount paid and
// recomputes the payment status.
func (s *Service) RecordPayment(ctx context.Context, id int64, req RecordPaymentRequest) (*domain.Booking, error) {
	if req.Amount < 0 {
		return nil, ErrInvalidAmount
	}

	cur, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	cur.AmountPaid += req.Amount
	if req.Method != "" {
		method := domain.PaymentMethod(req.Method)
		if !validPaymentMethod(method) {
			return nil, ErrValidation
		}
		cur.PaymentMethod = method
	}
	cur.PaymentStatus = domain.DerivePaymentStatus(cur.AmountPaid, cur.TotalAmount)

	if err := s.bookings.Update(ctx, cur); err != nil {
		return nil, err
	}
	return cur, nil
}

func (s *Service) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.getBooking(ctx, id)
}

func (s *Service) ListBookings(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, error) {
	return s.bookings.List(ctx, f)
}

// CheckRoomAvailability is the public availability probe for a room.
func (s *Service) CheckRoomAvailability(ctx context.Context, roomID int64, checkIn, checkOut string) (bool, error) {
	start, err := parseDate(checkIn)
	if err != nil {
		return false, ErrInvalidInterval
	}
	end, err := parseDate(checkOut)
	if err != nil {
		return false, ErrInvalidInterval
	}
	if _, err := s.getRoom(ctx, roomID); err != nil {
		return false, err
	}
	return s.IsRoomFree(ctx, roomID, start, end, 0)
}

func (s *Service) newBookingFromRequest(req CreateBookingRequest) (*domain.Booking, error) {
	kind := domain.ServiceKind(req.Service)
	if kind != domain.ServiceRoom && kind != domain.ServiceAppointment {
		return nil, ErrValidation
	}

	b := &domain.Booking{
		ReferenceCode: uuid.NewString(),
		Service:       kind,
		GuestName:     req.Name,
		GuestEmail:    req.Email,
		Guests:        req.Guests,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
	}
	if b.Guests < 1 {
		b.Guests = 1
	}

	switch kind {
	case domain.ServiceRoom:
		if req.CheckIn == "" || req.CheckOut == "" {
			return nil, ErrValidation
		}
		start, err := parseDate(req.CheckIn)
		if err != nil {
			return nil, err
		}
		end, err := parseDate(req.CheckOut)
		if err != nil {
			return nil, err
		}
		start, end = normalizeDate(start), normalizeDate(end)
		if !start.Before(end) {
			return nil, ErrInvalidInterval
		}
		b.CheckIn, b.CheckOut = &start, &end

	case domain.ServiceAppointment:
		if req.Date == "" || req.Time == "" {
			return nil, ErrValidation
		}
		d, err := parseDate(req.Date)
		if err != nil {
			return nil, err
		}
		d = normalizeDate(d)
		b.Date = &d
		b.TimeSlot = req.Time
	}

	return b, nil
}

func (s *Service) notifyCreated(ctx context.Context, b *domain.Booking) *CreateResult {
	res := &CreateResult{Booking: b}
	if s.notifs == nil {
		return res
	}
	if err := s.notifs.NotifyBookingCreated(ctx, b); err != nil {
		log.Printf("booking %d created but notification failed: %v", b.ID, err)
		res.EmailError = err.Error()
		return res
	}
	res.EmailSent = true
	return res
}

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) getRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

// clearPointerIfHeld clears the room's occupancy pointer when it still
// references the given booking. Failures are logged, not fatal: the
// booking row is already committed and the sweep reconciles pointers.
func (s *Service) clearPointerIfHeld(ctx context.Context, roomID, bookingID int64) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		log.Printf("clear pointer: load room %d: %v", roomID, err)
		return
	}
	if room.CurrentBookingID == nil || *room.CurrentBookingID != bookingID {
		return
	}
	if err := s.rooms.SetCurrentBooking(ctx, roomID, nil); err != nil {
		log.Printf("clear pointer: room %d: %v", roomID, err)
	}
}

func applyUpdate(updated, cur *domain.Booking, req UpdateBookingRequest) error {
	if req.Name != nil {
		updated.GuestName = *req.Name
	}
	if req.Email != nil {
		updated.GuestEmail = *req.Email
	}
	if req.Guests != nil {
		if *req.Guests < 1 {
			return ErrValidation
		}
		updated.Guests = *req.Guests
	}

	if req.Status != nil {
		next := domain.BookingStatus(*req.Status)
		if !validBookingStatus(next) {
			return ErrValidation
		}
		if !cur.Status.CanTransitionTo(next) {
			return ErrInvalidStatusTransition
		}
		updated.Status = next
	}

	switch {
	case updated.IsRoomStay():
		if req.CheckIn != nil {
			start, err := parseDate(*req.CheckIn)
			if err != nil {
				return err
			}
			start = normalizeDate(start)
			updated.CheckIn = &start
		}
		if req.CheckOut != nil {
			end, err := parseDate(*req.CheckOut)
			if err != nil {
				return err
			}
			end = normalizeDate(end)
			updated.CheckOut = &end
		}
		if updated.CheckIn == nil || updated.CheckOut == nil || !updated.CheckIn.Before(*updated.CheckOut) {
			return ErrInvalidInterval
		}
		if req.RoomID != nil {
			if *req.RoomID == 0 {
				updated.RoomID = nil
			} else {
				updated.RoomID = req.RoomID
			}
		}

	default:
		if req.Date != nil {
			d, err := parseDate(*req.Date)
			if err != nil {
				return err
			}
			d = normalizeDate(d)
			updated.Date = &d
		}
		if req.Time != nil {
			updated.TimeSlot = *req.Time
		}
	}

	if req.TotalAmount != nil {
		if *req.TotalAmount < 0 {
			return ErrInvalidAmount
		}
		updated.TotalAmount = *req.TotalAmount
	}
	if req.AmountPaid != nil {
		if *req.AmountPaid < 0 {
			return ErrInvalidAmount
		}
		updated.AmountPaid = *req.AmountPaid
	}
	if req.PaymentMethod != nil {
		method := domain.PaymentMethod(*req.PaymentMethod)
		if !validPaymentMethod(method) {
			return ErrValidation
		}
		updated.PaymentMethod = method
	}

	return nil
}

// derivePayment recomputes the payment status from the amounts. An
// explicitly refunded booking keeps that status unless amounts were
// touched by this update.
func derivePayment(updated, cur *domain.Booking, req UpdateBookingRequest) domain.PaymentStatus {
	if cur.PaymentStatus == domain.PaymentRefunded && req.AmountPaid == nil && req.TotalAmount == nil {
		return domain.PaymentRefunded
	}
	return domain.DerivePaymentStatus(updated.AmountPaid, updated.TotalAmount)
}

func sameRoom(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameInterval(a, b *domain.Booking) bool {
	if a.CheckIn == nil || a.CheckOut == nil || b.CheckIn == nil || b.CheckOut == nil {
		return a.CheckIn == b.CheckIn && a.CheckOut == b.CheckOut
	}
	return a.CheckIn.Equal(*b.CheckIn) && a.CheckOut.Equal(*b.CheckOut)
}

func validBookingStatus(s domain.BookingStatus) bool {
	switch s {
	case domain.BookingPending, domain.BookingConfirmed, domain.BookingCancelled, domain.BookingCompleted:
		return true
	}
	return false
}

func validPaymentMethod(m domain.PaymentMethod) bool {
	switch m {
	case domain.PaymentCash, domain.PaymentCard, domain.PaymentMobileMoney, domain.PaymentBankTransfer:
		return true
	}
	return false
}

// isOverbookingConflict recognizes the PostgreSQL exclusion constraint
// that backstops the application-level availability check.
func isOverbookingConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.ConstraintName != "idx_no_overbooking" {
		return false
	}
	return pgErr.Code == "23505" || pgErr.Code == "23P01"
}
