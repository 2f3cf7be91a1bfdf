package service

import (
	"context"
	"testing"
	"time"

	"libris/internal/config"
	"libris/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockRefreshTokenRepository mocks the RefreshTokenRepository interface
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func TestRegister_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRefreshTokenRepo := new(MockRefreshTokenRepository)
	authService := NewAuthService(mockUserRepo, mockRefreshTokenRepo, testAuthConfig())

	mockUserRepo.On("FindByUsername", mock.Anything, "testuser").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := authService.Register(context.Background(), "testuser", "password123", "test@example.com")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "testuser", user.Username)
	mockUserRepo.AssertExpectations(t)
}

func TestRegister_UsernameExists(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRefreshTokenRepo := new(MockRefreshTokenRepository)
	authService := NewAuthService(mockUserRepo, mockRefreshTokenRepo, testAuthConfig())

	mockUserRepo.On("FindByUsername", mock.Anything, "testuser").Return(&models.User{Username: "testuser"}, nil)

	user, err := authService.Register(context.Background(), "testuser", "password123", "test@example.com")

	assert.Equal(t, ErrNameInUse, err)
	assert.Nil(t, user)
}

func TestLogin_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRefreshTokenRepo := new(MockRefreshTokenRepository)
	authService := NewAuthService(mockUserRepo, mockRefreshTokenRepo, testAuthConfig())

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-id",
		Username: "testuser",
		Password: string(hashedPassword),
	}
	mockUserRepo.On("FindByUsername", mock.Anything, "testuser").Return(user, nil)
	mockRefreshTokenRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	accessToken, refreshToken, returnedUser, err := authService.Login(context.Background(), "testuser", "password123")

	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, "testuser", returnedUser.Username)
}

func TestLogin_InvalidPassword(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRefreshTokenRepo := new(MockRefreshTokenRepository)
	authService := NewAuthService(mockUserRepo, mockRefreshTokenRepo, testAuthConfig())

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	mockUserRepo.On("FindByUsername", mock.Anything, "testuser").
		Return(&models.User{ID: "user-id", Username: "testuser", Password: string(hashedPassword)}, nil)

	_, _, _, err := authService.Login(context.Background(), "testuser", "wrongpassword")

	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestLogin_UnknownUser(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRefreshTokenRepo := new(MockRefreshTokenRepository)
	authService := NewAuthService(mockUserRepo, mockRefreshTokenRepo, testAuthConfig())

	mockUserRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, _, _, err := authService.Login(context.Background(), "ghost", "password123")

	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestRefreshAccessToken_Expired(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRefreshTokenRepo := new(MockRefreshTokenRepository)
	authService := NewAuthService(mockUserRepo, mockRefreshTokenRepo, testAuthConfig())

	mockRefreshTokenRepo.On("FindByToken", mock.Anything, "stale").Return(&models.RefreshToken{
		ID:        "rt-1",
		UserID:    "user-id",
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Hour),
	}, nil)
	mockRefreshTokenRepo.On("Delete", mock.Anything, "rt-1").Return(nil)

	token, err := authService.RefreshAccessToken(context.Background(), "stale")

	assert.Error(t, err)
	assert.Empty(t, token)
	mockRefreshTokenRepo.AssertCalled(t, "Delete", mock.Anything, "rt-1")
}

func TestValidateToken_RoundTrip(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRefreshTokenRepo := new(MockRefreshTokenRepository)
	authService := NewAuthService(mockUserRepo, mockRefreshTokenRepo, testAuthConfig())

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-id", Username: "testuser", Password: string(hashedPassword)}
	mockUserRepo.On("FindByUsername", mock.Anything, "testuser").Return(user, nil)
	mockRefreshTokenRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	accessToken, _, _, err := authService.Login(context.Background(), "testuser", "password123")
	assert.NoError(t, err)

	token, err := authService.ValidateToken(accessToken)
	assert.NoError(t, err)
	assert.True(t, token.Valid)

	_, err = authService.ValidateToken("not-a-token")
	assert.Error(t, err)
}
