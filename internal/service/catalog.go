package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"bikerent-backend/internal/domain"
	"bikerent-backend/internal/logger"
	"bikerent-backend/internal/repository"
)

var ErrInvalidItem = errors.New("item must carry at least one non-zero rate")

type catalogService struct {
	itemRepo repository.ItemRepository
}

func NewCatalogService(itemRepo repository.ItemRepository) CatalogService {
	return &catalogService{itemRepo: itemRepo}
}

func (s *catalogService) AddItem(ctx context.Context, item *domain.Item) error {
	logger.EnterMethod("catalogService.AddItem", "name", item.Name, "kind", item.Kind)

	if item.PriceHourly <= 0 && item.PriceDaily <= 0 {
		return ErrInvalidItem
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.Kind == "" {
		item.Kind = domain.ItemKindBike
	}
	if item.Status == "" {
		item.Status = domain.ItemStatusAvailable
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		logger.ExitMethodWithError("catalogService.AddItem", err)
		return err
	}
	logger.ExitMethod("catalogService.AddItem", "id", item.ID)
	return nil
}

func (s *catalogService) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	return s.itemRepo.GetByID(ctx, id)
}

func (s *catalogService) GetItemByBarcode(ctx context.Context, barcode string) (*domain.Item, error) {
	return s.itemRepo.GetByBarcode(ctx, barcode)
}

func (s *catalogService) UpdateItem(ctx context.Context, item *domain.Item) error {
	if item.PriceHourly <= 0 && item.PriceDaily <= 0 {
		return ErrInvalidItem
	}
	if _, err := s.itemRepo.GetByID(ctx, item.ID); err != nil {
		return err
	}
	return s.itemRepo.Update(ctx, item)
}

func (s *catalogService) RetireItem(ctx context.Context, id string) error {
	it, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if it.Status == domain.ItemStatusRented {
		return errors.New("cannot retire a rented item")
	}
	return s.itemRepo.Delete(ctx, id)
}

func (s *catalogService) ListItems(ctx context.Context, kind, status string, page, pageSize int32) ([]domain.Item, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	return s.itemRepo.List(ctx, kind, status, page, pageSize)
}
