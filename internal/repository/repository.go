package repository

import (
	"context"
	"errors"
	"time"

	"bikerent-backend/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	GetByBarcode(ctx context.Context, barcode string) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	SetStatus(ctx context.Context, id string, status domain.ItemStatus) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, kind, status string, page, pageSize int32) ([]domain.Item, int32, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id string) (*domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
	List(ctx context.Context, status, mode string, page, pageSize int32) ([]domain.Rental, int32, error)
	ListCompletedBetween(ctx context.Context, from, to time.Time) ([]domain.Rental, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error)

	AddItem(ctx context.Context, rentalID string, item *domain.RentalItem) error
	UpdateItem(ctx context.Context, rentalID string, item *domain.RentalItem) error
	ReplaceExtraCharges(ctx context.Context, rentalID string, charges []domain.ExtraCharge) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.User, error)
}
