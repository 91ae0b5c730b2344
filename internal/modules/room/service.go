package room

import (
	"context"
	"errors"
	"time"

	"hotelier/internal/domain"
	"hotelier/internal/repository"
)

const dateLayout = "2006-01-02"

type Service struct {
	rooms  RoomRepository
	blocks RoomBlockRepository
}

func NewService(rooms RoomRepository, blocks RoomBlockRepository) *Service {
	return &Service{rooms: rooms, blocks: blocks}
}

func (s *Service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	roomType := domain.RoomType(req.RoomType)
	if !validRoomType(roomType) {
		return nil, ErrValidation
	}

	status := domain.RoomAvailable
	if req.Status != "" {
		status = domain.RoomStatus(req.Status)
		if !validRoomStatus(status) {
			return nil, ErrValidation
		}
	}
	if req.Capacity < 1 || req.PricePerNight < 0 {
		return nil, ErrValidation
	}

	if _, err := s.rooms.GetByNumber(ctx, req.RoomNumber); err == nil {
		return nil, ErrDuplicateRoomNumber
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	room := &domain.Room{
		RoomNumber:    req.RoomNumber,
		RoomType:      roomType,
		Capacity:      req.Capacity,
		PricePerNight: req.PricePerNight,
		Status:        status,
		Features:      req.Features,
		Notes:         req.Notes,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *Service) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.rooms.List(ctx)
}

func (s *Service) UpdateRoom(ctx context.Context, id int64, req UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RoomNumber != nil && *req.RoomNumber != room.RoomNumber {
		if _, err := s.rooms.GetByNumber(ctx, *req.RoomNumber); err == nil {
			return nil, ErrDuplicateRoomNumber
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		room.RoomNumber = *req.RoomNumber
	}
	if req.RoomType != nil {
		t := domain.RoomType(*req.RoomType)
		if !validRoomType(t) {
			return nil, ErrValidation
		}
		room.RoomType = t
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return nil, ErrValidation
		}
		room.Capacity = *req.Capacity
	}
	if req.PricePerNight != nil {
		if *req.PricePerNight < 0 {
			return nil, ErrValidation
		}
		room.PricePerNight = *req.PricePerNight
	}
	if req.Status != nil {
		st := domain.RoomStatus(*req.Status)
		if !validRoomStatus(st) {
			return nil, ErrValidation
		}
		room.Status = st
	}
	if req.Features != nil {
		room.Features = *req.Features
	}
	if req.Notes != nil {
		room.Notes = *req.Notes
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// UpdateRoomStatus is the housekeeping patch: cleaners flip dirty rooms
// back to available, admins can set any status.
func (s *Service) UpdateRoomStatus(ctx context.Context, id int64, status string) (*domain.Room, error) {
	st := domain.RoomStatus(status)
	if !validRoomStatus(st) {
		return nil, ErrValidation
	}

	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.rooms.UpdateStatus(ctx, id, st); err != nil {
		return nil, err
	}
	room.Status = st
	return room, nil
}

// DeleteRoom refuses to remove a room that still holds an occupancy
// pointer; guests must be checked out or the booking reassigned first.
func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return err
	}
	if room.CurrentBookingID != nil {
		return ErrRoomOccupied
	}
	return s.rooms.Delete(ctx, id)
}

func (s *Service) CreateBlock(ctx context.Context, roomID int64, req CreateBlockRequest) (*domain.RoomBlock, error) {
	if _, err := s.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, ErrInvalidInterval
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, ErrInvalidInterval
	}
	start, end = start.UTC(), end.UTC()
	if !start.Before(end) {
		return nil, ErrInvalidInterval
	}

	block := &domain.RoomBlock{
		RoomID:    roomID,
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
	}
	if err := s.blocks.Create(ctx, block); err != nil {
		return nil, err
	}
	return block, nil
}

func (s *Service) ListBlocks(ctx context.Context, roomID int64) ([]domain.RoomBlock, error) {
	if _, err := s.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}
	return s.blocks.ListForRoom(ctx, roomID)
}

func (s *Service) DeleteBlock(ctx context.Context, blockID int64) error {
	if _, err := s.blocks.GetByID(ctx, blockID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.blocks.Delete(ctx, blockID)
}

func validRoomType(t domain.RoomType) bool {
	switch t {
	case domain.RoomSingle, domain.RoomDouble, domain.RoomSuite, domain.RoomDeluxe,
		domain.RoomStandard, domain.RoomFamily, domain.RoomOther:
		return true
	}
	return false
}

func validRoomStatus(s domain.RoomStatus) bool {
	switch s {
	case domain.RoomAvailable, domain.RoomOccupied, domain.RoomDirty,
		domain.RoomMaintenance, domain.RoomOutOfOrder:
		return true
	}
	return false
}
