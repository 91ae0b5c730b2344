package booking

import (
	"time"

	"hotelier/internal/domain"
)

const dateLayout = "2006-01-02"

type CreateBookingRequest struct {
	Service  string `json:"service" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Guests   int    `json:"number_of_guests"`
	RoomType string `json:"room_type"`

	// Room stays.
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`

	// Appointments.
	Date string `json:"date"`
	Time string `json:"time"`
}

type AdminCreateBookingRequest struct {
	CreateBookingRequest

	RoomID        *int64   `json:"room_id"`
	Status        string   `json:"status"`
	TotalAmount   *float64 `json:"total_amount"`
	AmountPaid    float64  `json:"amount_paid"`
	PaymentMethod string   `json:"payment_method"`
}

// UpdateBookingRequest carries optional fields; nil means "leave as is".
type UpdateBookingRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Guests   *int    `json:"number_of_guests"`
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
	Date     *string `json:"date"`
	Time     *string `json:"time"`

	RoomID        *int64   `json:"room_id"`
	Status        *string  `json:"status"`
	TotalAmount   *float64 `json:"total_amount"`
	AmountPaid    *float64 `json:"amount_paid"`
	PaymentMethod *string  `json:"payment_method"`
}

type RecordPaymentRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
}

// CreateResult reports the booking together with the advisory outcome of
// the notification attempt. Email failure never fails the booking.
type CreateResult struct {
	Booking    *domain.Booking
	EmailSent  bool
	EmailError string
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ErrValidation
	}
	return t.UTC(), nil
}
