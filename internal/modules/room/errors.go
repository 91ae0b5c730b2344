package room

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("room not found")
	ErrDuplicateRoomNumber = errors.New("room number already exists")
	ErrRoomOccupied        = errors.New("room is currently occupied")
	ErrInvalidInterval     = errors.New("invalid block interval")
)
