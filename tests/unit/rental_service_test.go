package unit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bikerent-backend/internal/domain"
	"bikerent-backend/internal/service"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func availableBike(id string) *domain.Item {
	return &domain.Item{
		ID:                  id,
		Kind:                domain.ItemKindBike,
		Name:                "City Bike",
		PriceHourly:         5,
		PriceDaily:          20,
		InsuranceAvailable:  true,
		InsuranceFlatAmount: 5,
		Status:              domain.ItemStatusAvailable,
	}
}

func TestRentalService_OpenContract(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Active contract snapshots rates and flags items rented", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		itemRepo := new(MockItemRepo)
		svc := service.NewRentalService(rentalRepo, itemRepo, nil, fixedClock(now))

		itemRepo.On("GetByID", ctx, "item-1").Return(availableBike("item-1"), nil)
		rentalRepo.On("Create", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)
		itemRepo.On("SetStatus", ctx, "item-1", domain.ItemStatusRented).Return(nil)

		rental, err := svc.OpenContract(ctx, service.OpenContractRequest{
			CustomerName: "Ada",
			Mode:         domain.RentalModeActive,
			StartAt:      now,
			ItemIDs:      []string{"item-1"},
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusInUse, rental.Status)
		assert.Contains(t, rental.ContractNo, "BR-20260601-")
		assert.Len(t, rental.Items, 1)
		assert.Equal(t, 5.0, rental.Items[0].PriceHourly)
		assert.Equal(t, 20.0, rental.Items[0].PriceDaily)
		itemRepo.AssertCalled(t, "SetStatus", ctx, "item-1", domain.ItemStatusRented)
	})

	t.Run("Reservation keeps items on the floor", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		itemRepo := new(MockItemRepo)
		svc := service.NewRentalService(rentalRepo, itemRepo, nil, fixedClock(now))

		end := now.Add(48 * time.Hour)
		itemRepo.On("GetByID", ctx, "item-1").Return(availableBike("item-1"), nil)
		rentalRepo.On("Create", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)

		rental, err := svc.OpenContract(ctx, service.OpenContractRequest{
			CustomerName: "Ada",
			Mode:         domain.RentalModeReservation,
			StartAt:      now,
			EndAt:        &end,
			ItemIDs:      []string{"item-1"},
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusReserved, rental.Status)
		itemRepo.AssertNotCalled(t, "SetStatus", ctx, "item-1", domain.ItemStatusRented)
	})

	t.Run("Reservation without end time fails", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		itemRepo := new(MockItemRepo)
		svc := service.NewRentalService(rentalRepo, itemRepo, nil, fixedClock(now))

		_, err := svc.OpenContract(ctx, service.OpenContractRequest{
			CustomerName: "Ada",
			Mode:         domain.RentalModeReservation,
			StartAt:      now,
			ItemIDs:      []string{"item-1"},
		})
		assert.Error(t, err)
	})

	t.Run("Unavailable item rejected", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		itemRepo := new(MockItemRepo)
		svc := service.NewRentalService(rentalRepo, itemRepo, nil, fixedClock(now))

		rented := availableBike("item-1")
		rented.Status = domain.ItemStatusRented
		itemRepo.On("GetByID", ctx, "item-1").Return(rented, nil)

		_, err := svc.OpenContract(ctx, service.OpenContractRequest{
			CustomerName: "Ada",
			Mode:         domain.RentalModeActive,
			StartAt:      now,
			ItemIDs:      []string{"item-1"},
		})
		assert.ErrorIs(t, err, service.ErrItemUnavailable)
	})
}

func TestRentalService_CloseContract(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 13, 0, 0, 0, time.UTC)

	t.Run("Locks the billed total and frees items", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		itemRepo := new(MockItemRepo)
		emailSvc := new(MockEmailService)
		svc := service.NewRentalService(rentalRepo, itemRepo, emailSvc, fixedClock(now))

		rental := &domain.Rental{
			ID:            "r-1",
			ContractNo:    "BR-20260601-AAAA1111",
			CustomerName:  "Ada",
			CustomerEmail: "ada@example.com",
			Mode:          domain.RentalModeActive,
			Status:        domain.RentalStatusInUse,
			StartAt:       now.Add(-3 * time.Hour),
			Items: []domain.RentalItem{{
				ID:          "line-1",
				ItemID:      "item-1",
				Name:        "City Bike",
				PriceHourly: 5,
				PriceDaily:  20,
			}},
		}

		rentalRepo.On("GetByID", ctx, "r-1").Return(rental, nil)
		rentalRepo.On("UpdateItem", ctx, "r-1", mock.AnythingOfType("*domain.RentalItem")).Return(nil)
		itemRepo.On("SetStatus", ctx, "item-1", domain.ItemStatusAvailable).Return(nil)
		rentalRepo.On("Update", ctx, rental).Return(nil)
		emailSvc.On("SendContractReceipt", ctx, "ada@example.com", "Ada", "BR-20260601-AAAA1111", 15.0).Return(nil)

		closed, bill, err := svc.CloseContract(ctx, "r-1")
		assert.NoError(t, err)
		// 3 hours at 5/h, below the 20 daily cap
		assert.Equal(t, 15.0, bill.FinalTotal)
		assert.Equal(t, domain.RentalStatusCompleted, closed.Status)
		assert.Equal(t, 15.0, closed.LockedFinalAmount)
		assert.NotNil(t, closed.Items[0].ReturnedAt)
		assert.NotNil(t, closed.EndAt)
		emailSvc.AssertExpectations(t)
	})

	t.Run("Closing twice fails", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		itemRepo := new(MockItemRepo)
		svc := service.NewRentalService(rentalRepo, itemRepo, nil, fixedClock(now))

		done := &domain.Rental{ID: "r-1", Status: domain.RentalStatusCompleted}
		rentalRepo.On("GetByID", ctx, "r-1").Return(done, nil)

		_, _, err := svc.CloseContract(ctx, "r-1")
		assert.ErrorIs(t, err, service.ErrContractFinal)
	})

	t.Run("Receipt failure does not fail the close", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		itemRepo := new(MockItemRepo)
		emailSvc := new(MockEmailService)
		svc := service.NewRentalService(rentalRepo, itemRepo, emailSvc, fixedClock(now))

		rental := &domain.Rental{
			ID:            "r-2",
			CustomerEmail: "ada@example.com",
			Mode:          domain.RentalModeActive,
			Status:        domain.RentalStatusInUse,
			StartAt:       now.Add(-time.Hour),
			Items: []domain.RentalItem{{
				ID: "line-1", ItemID: "item-1", PriceHourly: 5, PriceDaily: 20,
			}},
		}
		rentalRepo.On("GetByID", ctx, "r-2").Return(rental, nil)
		rentalRepo.On("UpdateItem", ctx, "r-2", mock.Anything).Return(nil)
		itemRepo.On("SetStatus", ctx, "item-1", domain.ItemStatusAvailable).Return(nil)
		rentalRepo.On("Update", ctx, rental).Return(nil)
		emailSvc.On("SendContractReceipt", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(assert.AnError)

		_, bill, err := svc.CloseContract(ctx, "r-2")
		assert.NoError(t, err)
		assert.Equal(t, 5.0, bill.FinalTotal)
	})
}

func TestRentalService_ReturnItem(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 13, 0, 0, 0, time.UTC)

	rentalWithLine := func() *domain.Rental {
		return &domain.Rental{
			ID:      "r-1",
			Mode:    domain.RentalModeActive,
			Status:  domain.RentalStatusInUse,
			StartAt: now.Add(-2 * time.Hour),
			Items: []domain.RentalItem{{
				ID: "line-1", ItemID: "item-1", PriceHourly: 5, PriceDaily: 20,
			}},
		}
	}

	t.Run("Stamps the line and frees the item", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		itemRepo := new(MockItemRepo)
		svc := service.NewRentalService(rentalRepo, itemRepo, nil, fixedClock(now))

		rental := rentalWithLine()
		rentalRepo.On("GetByID", ctx, "r-1").Return(rental, nil)
		rentalRepo.On("UpdateItem", ctx, "r-1", mock.MatchedBy(func(it *domain.RentalItem) bool {
			return it.ID == "line-1" && it.ReturnedAt != nil && it.ReturnedAt.Equal(now)
		})).Return(nil)
		itemRepo.On("SetStatus", ctx, "item-1", domain.ItemStatusAvailable).Return(nil)

		_, err := svc.ReturnItem(ctx, "r-1", "line-1")
		assert.NoError(t, err)
	})

	t.Run("Unknown line", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		itemRepo := new(MockItemRepo)
		svc := service.NewRentalService(rentalRepo, itemRepo, nil, fixedClock(now))

		rentalRepo.On("GetByID", ctx, "r-1").Return(rentalWithLine(), nil)

		_, err := svc.ReturnItem(ctx, "r-1", "nope")
		assert.ErrorIs(t, err, service.ErrLineNotFound)
	})

	t.Run("Double return", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		itemRepo := new(MockItemRepo)
		svc := service.NewRentalService(rentalRepo, itemRepo, nil, fixedClock(now))

		rental := rentalWithLine()
		returned := now.Add(-time.Hour)
		rental.Items[0].ReturnedAt = &returned
		rentalRepo.On("GetByID", ctx, "r-1").Return(rental, nil)

		_, err := svc.ReturnItem(ctx, "r-1", "line-1")
		assert.ErrorIs(t, err, service.ErrLineReturned)
	})
}

func TestRentalService_SetOverrides(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 13, 0, 0, 0, time.UTC)

	t.Run("Applies only the provided fields", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		itemRepo := new(MockItemRepo)
		svc := service.NewRentalService(rentalRepo, itemRepo, nil, fixedClock(now))

		rental := &domain.Rental{
			ID:                "r-1",
			Status:            domain.RentalStatusInUse,
			StartAt:           now.Add(-time.Hour),
			CustomFinalAmount: 40,
			CustomFinalReason: "old reason",
		}
		rentalRepo.On("GetByID", ctx, "r-1").Return(rental, nil)
		rentalRepo.On("Update", ctx, mock.MatchedBy(func(r *domain.Rental) bool {
			return r.LockedFinalAmount == 99.5 && r.CustomFinalAmount == 40
		})).Return(nil)

		locked := 99.5
		_, err := svc.SetOverrides(ctx, "r-1", service.OverridesRequest{
			LockedFinalAmount: &locked,
		})
		assert.NoError(t, err)
		rentalRepo.AssertNotCalled(t, "ReplaceExtraCharges", ctx, "r-1", mock.Anything)
	})

	t.Run("Replaces extra charges when given", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		itemRepo := new(MockItemRepo)
		svc := service.NewRentalService(rentalRepo, itemRepo, nil, fixedClock(now))

		rental := &domain.Rental{ID: "r-1", Status: domain.RentalStatusInUse, StartAt: now}
		charges := []domain.ExtraCharge{{Description: "Helmet damage", Amount: 12.5}}

		rentalRepo.On("GetByID", ctx, "r-1").Return(rental, nil)
		rentalRepo.On("Update", ctx, rental).Return(nil)
		rentalRepo.On("ReplaceExtraCharges", ctx, "r-1", charges).Return(nil)

		_, err := svc.SetOverrides(ctx, "r-1", service.OverridesRequest{ExtraCharges: charges})
		assert.NoError(t, err)
		rentalRepo.AssertExpectations(t)
	})

	t.Run("Cancelled contract rejects overrides", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		itemRepo := new(MockItemRepo)
		svc := service.NewRentalService(rentalRepo, itemRepo, nil, fixedClock(now))

		rentalRepo.On("GetByID", ctx, "r-1").
			Return(&domain.Rental{ID: "r-1", Status: domain.RentalStatusCancelled}, nil)

		_, err := svc.SetOverrides(ctx, "r-1", service.OverridesRequest{})
		assert.ErrorIs(t, err, service.ErrContractFinal)
	})
}

func TestRentalService_Quote(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 13, 0, 0, 0, time.UTC)

	rentalRepo := new(MockRentalRepo)
	itemRepo := new(MockItemRepo)
	svc := service.NewRentalService(rentalRepo, itemRepo, nil, fixedClock(now))

	rental := &domain.Rental{
		ID:      "r-1",
		Mode:    domain.RentalModeActive,
		Status:  domain.RentalStatusInUse,
		StartAt: now.Add(-6 * time.Hour),
		Items: []domain.RentalItem{{
			ID: "line-1", ItemID: "item-1", PriceHourly: 5, PriceDaily: 20,
		}},
	}
	rentalRepo.On("GetByID", ctx, "r-1").Return(rental, nil)

	bill, err := svc.Quote(ctx, "r-1")
	assert.NoError(t, err)
	// 6 hours at 5/h would be 30; the 20 daily cap wins
	assert.Equal(t, 20.0, bill.FinalTotal)
	assert.Equal(t, domain.PriceSourceCalculated, bill.Source)
	// A quote never persists anything
	rentalRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestRentalService_CancelContract(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 13, 0, 0, 0, time.UTC)

	rentalRepo := new(MockRentalRepo)
	itemRepo := new(MockItemRepo)
	svc := service.NewRentalService(rentalRepo, itemRepo, nil, fixedClock(now))

	rental := &domain.Rental{
		ID:      "r-1",
		Status:  domain.RentalStatusInUse,
		StartAt: now.Add(-time.Hour),
		Items: []domain.RentalItem{{
			ID: "line-1", ItemID: "item-1", PriceHourly: 5, PriceDaily: 20,
		}},
	}
	rentalRepo.On("GetByID", ctx, "r-1").Return(rental, nil)
	rentalRepo.On("Update", ctx, rental).Return(nil)
	itemRepo.On("SetStatus", ctx, "item-1", domain.ItemStatusAvailable).Return(nil)

	cancelled, err := svc.CancelContract(ctx, "r-1", "customer no-show")
	assert.NoError(t, err)
	assert.Equal(t, domain.RentalStatusCancelled, cancelled.Status)
	assert.Contains(t, cancelled.Notes, "Cancelled: customer no-show")
}
