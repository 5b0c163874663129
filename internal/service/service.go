package service

import (
	"context"
	"time"

	"bikerent-backend/internal/domain"
)

type CatalogService interface {
	AddItem(ctx context.Context, item *domain.Item) error
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	GetItemByBarcode(ctx context.Context, barcode string) (*domain.Item, error)
	UpdateItem(ctx context.Context, item *domain.Item) error
	RetireItem(ctx context.Context, id string) error
	ListItems(ctx context.Context, kind, status string, page, pageSize int32) ([]domain.Item, int32, error)
}

// OpenContractRequest carries the fields needed to open a contract or
// reservation; item IDs reference catalog items whose rates get snapshotted.
type OpenContractRequest struct {
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	CustomerDoc   string
	Mode          domain.RentalMode
	StartAt       time.Time
	EndAt         *time.Time
	ItemIDs       []string
	Notes         string
}

// OverridesRequest updates a contract's pricing override fields. Nil pointers
// leave the corresponding field untouched.
type OverridesRequest struct {
	LockedFinalAmount     *float64
	CustomFinalAmount     *float64
	CustomFinalReason     *string
	ContractInsuranceFlat *float64
	ExtraCharges          []domain.ExtraCharge
}

type RentalService interface {
	OpenContract(ctx context.Context, req OpenContractRequest) (*domain.Rental, error)
	GetRental(ctx context.Context, id string) (*domain.Rental, error)
	ListRentals(ctx context.Context, status, mode string, page, pageSize int32) ([]domain.Rental, int32, error)
	AddItem(ctx context.Context, rentalID, itemID string, insuranceEnabled bool, customPrice float64) (*domain.Rental, error)
	ReturnItem(ctx context.Context, rentalID, lineID string) (*domain.Rental, error)
	SetOverrides(ctx context.Context, rentalID string, req OverridesRequest) (*domain.Rental, error)
	Quote(ctx context.Context, rentalID string) (*domain.Bill, error)
	CloseContract(ctx context.Context, rentalID string) (*domain.Rental, *domain.Bill, error)
	CancelContract(ctx context.Context, rentalID, reason string) (*domain.Rental, error)
}

type ReportService interface {
	RevenueBetween(ctx context.Context, from, to time.Time) (*domain.RevenueReport, error)
	MonthlyRevenue(ctx context.Context, year int) ([]domain.MonthlyRevenue, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, string, *domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type UserService interface {
	CreateUser(ctx context.Context, email, name, password string, role domain.UserRole) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, id, name string, role domain.UserRole, disabled bool) (*domain.User, error)
	ChangePassword(ctx context.Context, id, newPassword string) error
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type EmailService interface {
	SendOverdueNotice(ctx context.Context, email, customerName, contractNo string, endAt time.Time) error
	SendContractReceipt(ctx context.Context, email, customerName, contractNo string, total float64) error
}
