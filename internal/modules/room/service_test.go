package room

import (
	"context"
	"testing"

	"hotelier/internal/domain"
	"hotelier/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	if room != nil {
		room.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) GetByNumber(ctx context.Context, number string) (*domain.Room, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomRepository) Update(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRoomRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRoomBlockRepository struct {
	mock.Mock
}

func (m *MockRoomBlockRepository) Create(ctx context.Context, b *domain.RoomBlock) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockRoomBlockRepository) GetByID(ctx context.Context, id int64) (*domain.RoomBlock, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoomBlock), args.Error(1)
}

func (m *MockRoomBlockRepository) ListForRoom(ctx context.Context, roomID int64) ([]domain.RoomBlock, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RoomBlock), args.Error(1)
}

func (m *MockRoomBlockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreateRoom_Success(t *testing.T) {
	mockRooms := new(MockRoomRepository)

	mockRooms.On("GetByNumber", mock.Anything, "101").Return(nil, repository.ErrNotFound)
	mockRooms.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockRooms, new(MockRoomBlockRepository))

	room, err := service.CreateRoom(context.Background(), CreateRoomRequest{
		RoomNumber:    "101",
		RoomType:      "double",
		Capacity:      2,
		PricePerNight: 120,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(999), room.ID)
	assert.Equal(t, domain.RoomAvailable, room.Status)
}

func TestCreateRoom_DuplicateNumber(t *testing.T) {
	mockRooms := new(MockRoomRepository)

	existing := &domain.Room{ID: 1, RoomNumber: "101"}
	mockRooms.On("GetByNumber", mock.Anything, "101").Return(existing, nil)

	service := NewService(mockRooms, new(MockRoomBlockRepository))

	_, err := service.CreateRoom(context.Background(), CreateRoomRequest{
		RoomNumber: "101",
		RoomType:   "double",
		Capacity:   2,
	})

	assert.ErrorIs(t, err, ErrDuplicateRoomNumber)
	mockRooms.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateRoom_InvalidType(t *testing.T) {
	service := NewService(new(MockRoomRepository), new(MockRoomBlockRepository))

	_, err := service.CreateRoom(context.Background(), CreateRoomRequest{
		RoomNumber: "101",
		RoomType:   "penthouse",
		Capacity:   2,
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateRoomStatus_HousekeepingFlip(t *testing.T) {
	mockRooms := new(MockRoomRepository)

	dirty := &domain.Room{ID: 5, RoomNumber: "203", Status: domain.RoomDirty}
	mockRooms.On("GetByID", mock.Anything, int64(5)).Return(dirty, nil)
	mockRooms.On("UpdateStatus", mock.Anything, int64(5), domain.RoomAvailable).Return(nil)

	service := NewService(mockRooms, new(MockRoomBlockRepository))

	room, err := service.UpdateRoomStatus(context.Background(), 5, "available")

	assert.NoError(t, err)
	assert.Equal(t, domain.RoomAvailable, room.Status)
}

func TestUpdateRoomStatus_UnknownStatus(t *testing.T) {
	service := NewService(new(MockRoomRepository), new(MockRoomBlockRepository))

	_, err := service.UpdateRoomStatus(context.Background(), 5, "sparkling")

	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteRoom_RefusesOccupied(t *testing.T) {
	mockRooms := new(MockRoomRepository)

	heldID := int64(42)
	occupied := &domain.Room{ID: 5, RoomNumber: "203", Status: domain.RoomOccupied, CurrentBookingID: &heldID}
	mockRooms.On("GetByID", mock.Anything, int64(5)).Return(occupied, nil)

	service := NewService(mockRooms, new(MockRoomBlockRepository))

	err := service.DeleteRoom(context.Background(), 5)

	assert.ErrorIs(t, err, ErrRoomOccupied)
	mockRooms.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteRoom_Vacant(t *testing.T) {
	mockRooms := new(MockRoomRepository)

	vacant := &domain.Room{ID: 5, RoomNumber: "203", Status: domain.RoomAvailable}
	mockRooms.On("GetByID", mock.Anything, int64(5)).Return(vacant, nil)
	mockRooms.On("Delete", mock.Anything, int64(5)).Return(nil)

	service := NewService(mockRooms, new(MockRoomBlockRepository))

	assert.NoError(t, service.DeleteRoom(context.Background(), 5))
	mockRooms.AssertExpectations(t)
}

func TestUpdateRoom_NotFound(t *testing.T) {
	mockRooms := new(MockRoomRepository)

	mockRooms.On("GetByID", mock.Anything, int64(99)).Return(nil, repository.ErrNotFound)

	service := NewService(mockRooms, new(MockRoomBlockRepository))

	notes := "repainted"
	_, err := service.UpdateRoom(context.Background(), 99, UpdateRoomRequest{Notes: &notes})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateBlock_Success(t *testing.T) {
	mockRooms := new(MockRoomRepository)
	mockBlocks := new(MockRoomBlockRepository)

	mockRooms.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Room{ID: 5, RoomNumber: "203"}, nil)
	mockBlocks.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockRooms, mockBlocks)

	block, err := service.CreateBlock(context.Background(), 5, CreateBlockRequest{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-05",
		Reason:    "renovation",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(5), block.RoomID)
	assert.True(t, block.StartDate.Before(block.EndDate))
}

func TestCreateBlock_InvalidInterval(t *testing.T) {
	mockRooms := new(MockRoomRepository)
	mockBlocks := new(MockRoomBlockRepository)

	mockRooms.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Room{ID: 5, RoomNumber: "203"}, nil)

	service := NewService(mockRooms, mockBlocks)

	_, err := service.CreateBlock(context.Background(), 5, CreateBlockRequest{
		StartDate: "2026-03-05",
		EndDate:   "2026-03-05",
	})

	assert.ErrorIs(t, err, ErrInvalidInterval)
	mockBlocks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
