package booking

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrInvalidInterval         = errors.New("invalid booking interval")
	ErrNoRoomAvailable         = errors.New("no room available")
	ErrRoomUnavailable         = errors.New("room unavailable for the requested dates")
	ErrNotFound                = errors.New("booking not found")
	ErrInvalidAmount           = errors.New("invalid payment amount")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
