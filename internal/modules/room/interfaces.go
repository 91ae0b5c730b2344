package room

import (
	"context"

	"hotelier/internal/domain"
)

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	GetByNumber(ctx context.Context, number string) (*domain.Room, error)
	List(ctx context.Context) ([]domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error
	Delete(ctx context.Context, id int64) error
}

type RoomBlockRepository interface {
	Create(ctx context.Context, b *domain.RoomBlock) error
	GetByID(ctx context.Context, id int64) (*domain.RoomBlock, error)
	ListForRoom(ctx context.Context, roomID int64) ([]domain.RoomBlock, error)
	Delete(ctx context.Context, id int64) error
}
