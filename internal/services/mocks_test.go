package services_test

import (
	"context"
	"io"
	"log"
	"os"
	"testing"

	"omareats/internal/models"

	"github.com/stretchr/testify/mock"
)

// TestMain silences service logging during tests.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// MockCartStorage is a mock implementation of repositories.CartStorage
type MockCartStorage struct {
	mock.Mock
}

func (m *MockCartStorage) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCartStorage) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

// MockStaffRepository is a mock implementation of repositories.StaffRepository
type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) Create(staff *models.StaffUser) error {
	args := m.Called(staff)
	return args.Error(0)
}

func (m *MockStaffRepository) FindByUsername(username string) (*models.StaffUser, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StaffUser), args.Error(1)
}

func (m *MockStaffRepository) FindByEmail(email string) (*models.StaffUser, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StaffUser), args.Error(1)
}

// MockOrderPoster is a mock implementation of services.OrderPoster.
// The response is copied into out when the expectation returns one.
type MockOrderPoster struct {
	mock.Mock
}

func (m *MockOrderPoster) PostJSON(ctx context.Context, body any, out any) error {
	args := m.Called(ctx, body, out)
	if res, ok := args.Get(0).(models.OrderResult); ok {
		*out.(*models.OrderResult) = res
	}
	return args.Error(1)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}
