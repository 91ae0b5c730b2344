package domain

import "time"

type ServiceKind string

const (
	ServiceRoom        ServiceKind = "room"
	ServiceAppointment ServiceKind = "appointment"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// IsActive reports whether the booking can still occupy a room.
func (s BookingStatus) IsActive() bool {
	return s == BookingPending || s == BookingConfirmed
}

// IsTerminal reports whether no further transitions are allowed.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCancelled || s == BookingCompleted
}

// CanTransitionTo encodes the booking state machine:
// pending -> confirmed -> completed, with cancellation allowed
// from either non-terminal state.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case BookingPending:
		return next == BookingConfirmed || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingCompleted || next == BookingCancelled
	default:
		return false
	}
}

type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "pending"
	PaymentPartiallyPaid PaymentStatus = "partially_paid"
	PaymentPaid          PaymentStatus = "paid"
	PaymentRefunded      PaymentStatus = "refunded"
)

// DerivePaymentStatus computes the payment status from the amounts.
// Refunded is never derived, it is only set explicitly.
func DerivePaymentStatus(amountPaid, totalAmount float64) PaymentStatus {
	switch {
	case totalAmount > 0 && amountPaid >= totalAmount:
		return PaymentPaid
	case amountPaid > 0 && amountPaid < totalAmount:
		return PaymentPartiallyPaid
	default:
		return PaymentPending
	}
}

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentMobileMoney  PaymentMethod = "mobile_money"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

type Booking struct {
	ID            int64       `json:"id"`
	ReferenceCode string      `json:"reference_code"`
	Service       ServiceKind `json:"service" validate:"required"`
	GuestName     string      `json:"name" validate:"required"`
	GuestEmail    string      `json:"email" validate:"required,email"`
	Guests        int         `json:"number_of_guests"`

	// Room stays carry a half-open [CheckIn, CheckOut) interval and a
	// room assignment; appointments carry a single date and time slot.
	RoomID   *int64     `json:"room_id,omitempty"`
	CheckIn  *time.Time `json:"check_in,omitempty"`
	CheckOut *time.Time `json:"check_out,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
	TimeSlot string     `json:"time,omitempty"`

	TotalAmount   float64       `json:"total_amount"`
	AmountPaid    float64       `json:"amount_paid"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty"`
	Status        BookingStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Room *Room `json:"room,omitempty"`
}

// IsRoomStay reports whether the booking is a dated room reservation
// rather than an appointment.
func (b *Booking) IsRoomStay() bool { return b.Service == ServiceRoom }
