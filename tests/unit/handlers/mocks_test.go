package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bikerent-backend/internal/domain"
	"bikerent-backend/internal/service"
)

// MockRentalService
type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) OpenContract(ctx context.Context, req service.OpenContractRequest) (*domain.Rental, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) GetRental(ctx context.Context, id string) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) ListRentals(ctx context.Context, status, mode string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, status, mode, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalService) AddItem(ctx context.Context, rentalID, itemID string, insuranceEnabled bool, customPrice float64) (*domain.Rental, error) {
	args := m.Called(ctx, rentalID, itemID, insuranceEnabled, customPrice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) ReturnItem(ctx context.Context, rentalID, lineID string) (*domain.Rental, error) {
	args := m.Called(ctx, rentalID, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) SetOverrides(ctx context.Context, rentalID string, req service.OverridesRequest) (*domain.Rental, error) {
	args := m.Called(ctx, rentalID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) Quote(ctx context.Context, rentalID string) (*domain.Bill, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}
func (m *MockRentalService) CloseContract(ctx context.Context, rentalID string) (*domain.Rental, *domain.Bill, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Rental), args.Get(1).(*domain.Bill), args.Error(2)
}
func (m *MockRentalService) CancelContract(ctx context.Context, rentalID, reason string) (*domain.Rental, error) {
	args := m.Called(ctx, rentalID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, string, *domain.User, error) {
	args := m.Called(ctx, email, password)
	var user *domain.User
	if args.Get(2) != nil {
		user = args.Get(2).(*domain.User)
	}
	return args.String(0), args.String(1), user, args.Error(3)
}
func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}
