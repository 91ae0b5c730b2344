package auth

import (
	"context"
	"testing"

	"hotelier/internal/domain"
	"hotelier/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateToken(userID int64, role domain.UserRole) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func adminUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &domain.User{
		ID:           7,
		Email:        "admin@hotel.test",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Name:         "Admin",
	}
}

func TestLogin_Success(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockJWT := new(MockTokenIssuer)

	user := adminUser(t, "secret123")
	mockUsers.On("GetByEmail", mock.Anything, "admin@hotel.test").Return(user, nil)
	mockJWT.On("GenerateToken", int64(7), domain.RoleAdmin).Return("token-abc", nil)

	service := NewService(mockUsers, mockJWT)

	res, err := service.Login(context.Background(), LoginRequest{
		Email:    "admin@hotel.test",
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "token-abc", res.AccessToken)
	assert.Equal(t, int64(7), res.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockJWT := new(MockTokenIssuer)

	user := adminUser(t, "secret123")
	mockUsers.On("GetByEmail", mock.Anything, "admin@hotel.test").Return(user, nil)

	service := NewService(mockUsers, mockJWT)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "admin@hotel.test",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	mockJWT.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmail(t *testing.T) {
	mockUsers := new(MockUserRepository)

	mockUsers.On("GetByEmail", mock.Anything, "nobody@hotel.test").Return(nil, repository.ErrNotFound)

	service := NewService(mockUsers, new(MockTokenIssuer))

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "nobody@hotel.test",
		Password: "whatever",
	})

	// Unknown email and wrong password are indistinguishable.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateUser_Success(t *testing.T) {
	mockUsers := new(MockUserRepository)

	mockUsers.On("GetByEmail", mock.Anything, "clean@hotel.test").Return(nil, repository.ErrNotFound)
	mockUsers.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockUsers, new(MockTokenIssuer))

	user, err := service.CreateUser(context.Background(), CreateUserRequest{
		Email:    "clean@hotel.test",
		Password: "sweep1234",
		Name:     "Cleaner",
		Role:     "housekeeper",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleHousekeeper, user.Role)
	assert.NotEqual(t, "sweep1234", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("sweep1234")))
}

func TestCreateUser_EmailTaken(t *testing.T) {
	mockUsers := new(MockUserRepository)

	mockUsers.On("GetByEmail", mock.Anything, "admin@hotel.test").Return(adminUser(t, "x"), nil)

	service := NewService(mockUsers, new(MockTokenIssuer))

	_, err := service.CreateUser(context.Background(), CreateUserRequest{
		Email:    "admin@hotel.test",
		Password: "whatever1",
		Name:     "Dup",
		Role:     "admin",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateUser_UnknownRole(t *testing.T) {
	service := NewService(new(MockUserRepository), new(MockTokenIssuer))

	_, err := service.CreateUser(context.Background(), CreateUserRequest{
		Email:    "x@hotel.test",
		Password: "whatever1",
		Name:     "X",
		Role:     "concierge",
	})

	assert.ErrorIs(t, err, ErrValidation)
}
