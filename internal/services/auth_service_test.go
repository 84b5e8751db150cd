package services_test

import (
	"fmt"
	"testing"
	"time"

	"omareats/internal/models"
	"omareats/internal/repositories"
	"omareats/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

func notFound(username string) error {
	return fmt.Errorf("staff username %s: %w", username, repositories.ErrStaffNotFound)
}

func TestAuthService_RegisterStaff(t *testing.T) {
	mockRepo := new(MockStaffRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	mockRepo.On("FindByUsername", "keuken").Return(nil, notFound("keuken")).Once()
	mockRepo.On("FindByEmail", "keuken@omar.example").Return(nil, notFound("keuken")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.StaffUser")).Return(nil).Once()

	staff, err := authService.RegisterStaff("keuken", "keuken@omar.example", "password123")
	require.NoError(t, err)
	assert.Equal(t, "keuken", staff.Username)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Username already taken
	mockRepo.On("FindByUsername", "keuken").Return(&models.StaffUser{ID: "1"}, nil).Once()
	_, err = authService.RegisterStaff("keuken", "keuken@omar.example", "password123")
	assert.ErrorIs(t, err, services.ErrStaffExists)
	assert.Contains(t, err.Error(), "username 'keuken'")
	mockRepo.AssertExpectations(t)

	// Email already registered
	mockRepo.On("FindByUsername", "kok").Return(nil, notFound("kok")).Once()
	mockRepo.On("FindByEmail", "keuken@omar.example").Return(&models.StaffUser{ID: "1"}, nil).Once()
	_, err = authService.RegisterStaff("kok", "keuken@omar.example", "password123")
	assert.ErrorIs(t, err, services.ErrStaffExists)
	assert.Contains(t, err.Error(), "email 'keuken@omar.example'")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterStaffRejectsBadInput(t *testing.T) {
	mockRepo := new(MockStaffRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	_, err := authService.RegisterStaff("ke", "keuken@omar.example", "password123")
	assert.ErrorContains(t, err, "invalid staff account")

	_, err = authService.RegisterStaff("keuken", "not-an-email", "password123")
	assert.ErrorContains(t, err, "invalid staff account")

	_, err = authService.RegisterStaff("keuken", "keuken@omar.example", "kort")
	assert.ErrorIs(t, err, services.ErrWeakPassword)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_EnsureStaffUser(t *testing.T) {
	t.Run("registers a missing staff account", func(t *testing.T) {
		mockRepo := new(MockStaffRepository)
		authService := services.NewAuthService(mockRepo, testJWTSecret)

		mockRepo.On("FindByUsername", "keuken").Return(nil, notFound("keuken")).Twice()
		mockRepo.On("FindByEmail", "keuken@omar.example").Return(nil, notFound("keuken")).Once()
		mockRepo.On("Create", mock.MatchedBy(func(s *models.StaffUser) bool {
			return s.Username == "keuken" && s.PasswordHash != "" && s.PasswordHash != "geheim123"
		})).Return(nil).Once()

		err := authService.EnsureStaffUser("keuken", "keuken@omar.example", "geheim123")
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("keeps an existing staff account", func(t *testing.T) {
		mockRepo := new(MockStaffRepository)
		authService := services.NewAuthService(mockRepo, testJWTSecret)

		mockRepo.On("FindByUsername", "keuken").Return(&models.StaffUser{ID: "1", Username: "keuken"}, nil).Once()

		err := authService.EnsureStaffUser("keuken", "keuken@omar.example", "geheim123")
		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("surfaces lookup failures", func(t *testing.T) {
		mockRepo := new(MockStaffRepository)
		authService := services.NewAuthService(mockRepo, testJWTSecret)

		mockRepo.On("FindByUsername", "keuken").Return(nil, fmt.Errorf("database is locked")).Once()

		err := authService.EnsureStaffUser("keuken", "keuken@omar.example", "geheim123")
		assert.ErrorContains(t, err, "database is locked")
	})
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockStaffRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	staff := &models.StaffUser{
		ID:           "staff-123",
		Username:     "keuken",
		Email:        "keuken@omar.example",
		PasswordHash: string(hashedPassword),
	}

	mockRepo.On("FindByUsername", "keuken").Return(staff, nil).Once()
	token, err := authService.Login("keuken", "password123")
	require.NoError(t, err)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, staff.ID, claims["user_id"])
	assert.Equal(t, staff.Username, claims["username"])

	// Wrong password
	mockRepo.On("FindByUsername", "keuken").Return(staff, nil).Once()
	_, err = authService.Login("keuken", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Unknown staff gets the same generic error
	mockRepo.On("FindByUsername", "nobody").Return(nil, notFound("nobody")).Once()
	_, err = authService.Login("nobody", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := services.NewAuthService(new(MockStaffRepository), testJWTSecret)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "staff-123",
		"username": "keuken",
		"exp":      jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	validTokenString, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	claims, err := authService.ValidateToken(validTokenString)
	require.NoError(t, err)
	assert.Equal(t, "staff-123", claims["user_id"])
	assert.Equal(t, "keuken", claims["username"])

	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorContains(t, err, "invalid token")

	otherSecret, err := token.SignedString([]byte("another_secret"))
	require.NoError(t, err)
	_, err = authService.ValidateToken(otherSecret)
	assert.ErrorContains(t, err, "invalid token")

	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "staff-123",
		"username": "keuken",
		"exp":      jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, err := expiredToken.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	_, err = authService.ValidateToken(expiredTokenString)
	assert.ErrorContains(t, err, "invalid token")
}
