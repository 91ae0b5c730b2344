package repository

import (
	"context"
	"errors"
	"time"

	"hotelier/internal/domain"

	"gorm.io/gorm"
)

type RoomBlockRepository struct {
	db *gorm.DB
}

func NewRoomBlockRepository(db *gorm.DB) *RoomBlockRepository {
	return &RoomBlockRepository{db: db}
}

type roomBlockModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	RoomID    int64     `gorm:"column:room_id;index"`
	StartDate time.Time `gorm:"column:start_date"`
	EndDate   time.Time `gorm:"column:end_date"`
	Reason    *string   `gorm:"column:reason"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (roomBlockModel) TableName() string { return "room_blocks" }

func toDomainRoomBlock(m roomBlockModel) *domain.RoomBlock {
	var reason string
	if m.Reason != nil {
		reason = *m.Reason
	}
	return &domain.RoomBlock{
		ID:        m.ID,
		RoomID:    m.RoomID,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		Reason:    reason,
		CreatedAt: m.CreatedAt,
	}
}

func toRoomBlockModel(b *domain.RoomBlock) roomBlockModel {
	var reason *string
	if b.Reason != "" {
		v := b.Reason
		reason = &v
	}
	return roomBlockModel{
		ID:        b.ID,
		RoomID:    b.RoomID,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		Reason:    reason,
		CreatedAt: b.CreatedAt,
	}
}

func (r *RoomBlockRepository) Create(ctx context.Context, b *domain.RoomBlock) error {
	m := toRoomBlockModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainRoomBlock(m)
	return nil
}

func (r *RoomBlockRepository) ListForRoom(ctx context.Context, roomID int64) ([]domain.RoomBlock, error) {
	var ms []roomBlockModel
	tx := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("start_date ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.RoomBlock, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainRoomBlock(m))
	}
	return out, nil
}

func (r *RoomBlockRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&roomBlockModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RoomBlockRepository) GetByID(ctx context.Context, id int64) (*domain.RoomBlock, error) {
	var m roomBlockModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainRoomBlock(m), nil
}
