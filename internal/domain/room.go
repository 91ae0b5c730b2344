package domain

import "time"

type RoomType string

const (
	RoomSingle   RoomType = "single"
	RoomDouble   RoomType = "double"
	RoomSuite    RoomType = "suite"
	RoomDeluxe   RoomType = "deluxe"
	RoomStandard RoomType = "standard"
	RoomFamily   RoomType = "family"
	RoomOther    RoomType = "other"
)

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomDirty       RoomStatus = "dirty"
	RoomMaintenance RoomStatus = "maintenance"
	RoomOutOfOrder  RoomStatus = "out_of_order"
)

// Bookable reports whether the room may be offered to guests at all.
// Maintenance and out-of-order rooms are never assigned.
func (s RoomStatus) Bookable() bool {
	return s != RoomMaintenance && s != RoomOutOfOrder
}

type Room struct {
	ID            int64      `json:"id"`
	RoomNumber    string     `json:"room_number" validate:"required"`
	RoomType      RoomType   `json:"room_type" validate:"required"`
	Capacity      int        `json:"capacity" validate:"required,gt=0"`
	PricePerNight float64    `json:"price_per_night" validate:"gte=0"`
	Status        RoomStatus `json:"status"`
	Features      []string   `json:"features,omitempty"`
	Notes         string     `json:"notes,omitempty"`

	// CurrentBookingID is the occupancy pointer: a weak reference to
	// the active booking currently holding the room, nil when vacant.
	CurrentBookingID *int64 `json:"current_booking_id,omitempty"`

	TotalReservations int       `json:"total_reservations"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// RoomBlock is an administrative hold on a room: a half-open
// [StartDate, EndDate) interval that competes with bookings during
// availability checks but is not tied to any guest.
type RoomBlock struct {
	ID        int64     `json:"id"`
	RoomID    int64     `json:"room_id" validate:"required"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
