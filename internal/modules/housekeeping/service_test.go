package housekeeping

import (
	"context"
	"testing"
	"time"

	"hotelier/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) DueForCompletion(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRoomRepository) SetCurrentBooking(ctx context.Context, roomID int64, bookingID *int64) error {
	args := m.Called(ctx, roomID, bookingID)
	return args.Error(0)
}

func (m *MockRoomRepository) IncrementTotalReservations(ctx context.Context, roomID int64) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}

func dueStay(id, roomID int64) domain.Booking {
	checkIn := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	return domain.Booking{
		ID:       id,
		Service:  domain.ServiceRoom,
		RoomID:   &roomID,
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
		Status:   domain.BookingConfirmed,
	}
}

func occupiedRoom(id, bookingID int64) *domain.Room {
	return &domain.Room{
		ID:               id,
		RoomNumber:       "101",
		Status:           domain.RoomOccupied,
		CurrentBookingID: &bookingID,
	}
}

var sweepNow = time.Date(2026, 3, 5, 9, 30, 0, 0, time.UTC)

func TestSweep_CompletesStayAndDirtiesRoom(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockRooms := new(MockRoomRepository)

	cutoff := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
	mockBookings.On("DueForCompletion", mock.Anything, cutoff).
		Return([]domain.Booking{dueStay(42, 5)}, nil)
	mockRooms.On("GetByID", mock.Anything, int64(5)).Return(occupiedRoom(5, 42), nil)
	mockRooms.On("UpdateStatus", mock.Anything, int64(5), domain.RoomDirty).Return(nil)
	mockRooms.On("SetCurrentBooking", mock.Anything, int64(5), (*int64)(nil)).Return(nil)
	mockRooms.On("IncrementTotalReservations", mock.Anything, int64(5)).Return(nil)
	mockBookings.On("UpdateStatus", mock.Anything, int64(42), domain.BookingCompleted).Return(nil)

	service := NewService(mockBookings, mockRooms)

	res, err := service.Sweep(context.Background(), sweepNow)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Completed)
	assert.Equal(t, 0, res.Failed)
	mockRooms.AssertExpectations(t)
	mockBookings.AssertExpectations(t)
}

func TestSweep_LeavesRoomHeldByNewerStay(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockRooms := new(MockRoomRepository)

	mockBookings.On("DueForCompletion", mock.Anything, mock.Anything).
		Return([]domain.Booking{dueStay(42, 5)}, nil)
	// Pointer already moved on to booking 77.
	mockRooms.On("GetByID", mock.Anything, int64(5)).Return(occupiedRoom(5, 77), nil)
	mockBookings.On("UpdateStatus", mock.Anything, int64(42), domain.BookingCompleted).Return(nil)

	service := NewService(mockBookings, mockRooms)

	res, err := service.Sweep(context.Background(), sweepNow)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Completed)
	mockRooms.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	mockRooms.AssertNotCalled(t, "SetCurrentBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestSweep_EmptyBatch(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockRooms := new(MockRoomRepository)

	mockBookings.On("DueForCompletion", mock.Anything, mock.Anything).
		Return([]domain.Booking{}, nil)

	service := NewService(mockBookings, mockRooms)

	res, err := service.Sweep(context.Background(), sweepNow)

	assert.NoError(t, err)
	assert.Equal(t, SweepResult{}, res)
}

func TestSweep_OneFailureDoesNotStopBatch(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockRooms := new(MockRoomRepository)

	mockBookings.On("DueForCompletion", mock.Anything, mock.Anything).
		Return([]domain.Booking{dueStay(41, 4), dueStay(42, 5)}, nil)

	// First booking: room lookup fails, booking is skipped.
	mockRooms.On("GetByID", mock.Anything, int64(4)).Return(nil, assert.AnError)

	// Second booking completes normally.
	mockRooms.On("GetByID", mock.Anything, int64(5)).Return(occupiedRoom(5, 42), nil)
	mockRooms.On("UpdateStatus", mock.Anything, int64(5), domain.RoomDirty).Return(nil)
	mockRooms.On("SetCurrentBooking", mock.Anything, int64(5), (*int64)(nil)).Return(nil)
	mockRooms.On("IncrementTotalReservations", mock.Anything, int64(5)).Return(nil)
	mockBookings.On("UpdateStatus", mock.Anything, int64(42), domain.BookingCompleted).Return(nil)

	service := NewService(mockBookings, mockRooms)

	res, err := service.Sweep(context.Background(), sweepNow)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Completed)
	assert.Equal(t, 1, res.Failed)
	mockBookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, int64(41), mock.Anything)
}

func TestSweep_CounterFailureIsNonFatal(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockRooms := new(MockRoomRepository)

	mockBookings.On("DueForCompletion", mock.Anything, mock.Anything).
		Return([]domain.Booking{dueStay(42, 5)}, nil)
	mockRooms.On("GetByID", mock.Anything, int64(5)).Return(occupiedRoom(5, 42), nil)
	mockRooms.On("UpdateStatus", mock.Anything, int64(5), domain.RoomDirty).Return(nil)
	mockRooms.On("SetCurrentBooking", mock.Anything, int64(5), (*int64)(nil)).Return(nil)
	mockRooms.On("IncrementTotalReservations", mock.Anything, int64(5)).Return(assert.AnError)
	mockBookings.On("UpdateStatus", mock.Anything, int64(42), domain.BookingCompleted).Return(nil)

	service := NewService(mockBookings, mockRooms)

	res, err := service.Sweep(context.Background(), sweepNow)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Completed)
	assert.Equal(t, 0, res.Failed)
}

func TestEndOfYesterday(t *testing.T) {
	now := time.Date(2026, 3, 5, 14, 45, 12, 0, time.UTC)
	got := endOfYesterday(now)

	assert.Equal(t, time.Date(2026, 3, 4, 23, 59, 59, 999999999, time.UTC), got)
}
