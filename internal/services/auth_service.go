package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"omareats/internal/models"
	"omareats/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStaffExists        = errors.New("staff account already exists")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
)

const minPasswordLength = 6

// AuthService authenticates kitchen staff who manage received orders.
type AuthService struct {
	staffRepo     repositories.StaffRepository
	validate      *validator.Validate
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(staffRepo repositories.StaffRepository, jwtSecret string) *AuthService {
	return &AuthService{
		staffRepo:     staffRepo,
		validate:      validator.New(),
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 12 * time.Hour, // one kitchen shift
	}
}

// RegisterStaff creates a staff account with a bcrypt-hashed password.
func (s *AuthService) RegisterStaff(username, email, password string) (*models.StaffUser, error) {
	staff := &models.StaffUser{Username: username, Email: email}
	if err := s.validate.Struct(staff); err != nil {
		return nil, fmt.Errorf("invalid staff account: %w", err)
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	if existing, err := s.staffRepo.FindByUsername(username); err == nil && existing != nil {
		return nil, fmt.Errorf("username '%s': %w", username, ErrStaffExists)
	}
	if existing, err := s.staffRepo.FindByEmail(email); err == nil && existing != nil {
		return nil, fmt.Errorf("email '%s': %w", email, ErrStaffExists)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	staff.PasswordHash = string(hashedPassword)

	if err := s.staffRepo.Create(staff); err != nil {
		return nil, fmt.Errorf("failed to register staff account: %w", err)
	}
	return staff, nil
}

// EnsureStaffUser registers the bootstrap staff account unless one with that
// username already exists. An existing account keeps its password.
func (s *AuthService) EnsureStaffUser(username, email, password string) error {
	_, err := s.staffRepo.FindByUsername(username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrStaffNotFound) {
		return fmt.Errorf("failed to look up staff account %s: %w", username, err)
	}

	if _, err := s.RegisterStaff(username, email, password); err != nil {
		return err
	}
	log.Printf("Registered staff account %s", username)
	return nil
}

// Login checks the staff credentials and returns a signed JWT.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(username, password string) (string, error) {
	staff, err := s.staffRepo.FindByUsername(username)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  staff.ID,
		"username": staff.Username,
		"exp":      now.Add(s.tokenDuration).Unix(),
		"iat":      now.Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses an HS256 token and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
