package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"bikerent-backend/internal/domain"
	"bikerent-backend/internal/logger"
	"bikerent-backend/internal/pricing"
	"bikerent-backend/internal/repository"
)

var (
	ErrContractFinal   = errors.New("contract is already finalized")
	ErrItemUnavailable = errors.New("item is not available for rental")
	ErrLineNotFound    = errors.New("rental line not found")
	ErrLineReturned    = errors.New("rental line already returned")
)

type rentalService struct {
	rentalRepo repository.RentalRepository
	itemRepo   repository.ItemRepository
	emailSvc   EmailService
	now        func() time.Time
}

// NewRentalService wires the contract workflow. now is the clock injected
// into every pricing call; pass nil for the wall clock.
func NewRentalService(
	rentalRepo repository.RentalRepository,
	itemRepo repository.ItemRepository,
	emailSvc EmailService,
	now func() time.Time,
) RentalService {
	if now == nil {
		now = time.Now
	}
	return &rentalService{
		rentalRepo: rentalRepo,
		itemRepo:   itemRepo,
		emailSvc:   emailSvc,
		now:        now,
	}
}

func (s *rentalService) OpenContract(ctx context.Context, req OpenContractRequest) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.OpenContract", "mode", req.Mode, "customer", req.CustomerName)

	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, errors.New("customer name is required")
	}
	if req.Mode != domain.RentalModeActive && req.Mode != domain.RentalModeReservation {
		return nil, fmt.Errorf("unknown rental mode %q", req.Mode)
	}
	if req.StartAt.IsZero() {
		return nil, errors.New("start time is required")
	}
	if req.Mode == domain.RentalModeReservation {
		if req.EndAt == nil || !req.EndAt.After(req.StartAt) {
			return nil, errors.New("a reservation needs an end time after its start")
		}
	}

	status := domain.RentalStatusInUse
	if req.Mode == domain.RentalModeReservation {
		status = domain.RentalStatusReserved
	}

	rental := &domain.Rental{
		ID:            uuid.New().String(),
		ContractNo:    newContractNo(req.StartAt),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		CustomerDoc:   req.CustomerDoc,
		Mode:          req.Mode,
		Status:        status,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		Notes:         req.Notes,
	}

	for _, itemID := range req.ItemIDs {
		line, err := s.snapshotLine(ctx, itemID)
		if err != nil {
			logger.ExitMethodWithError("rentalService.OpenContract", err, "item_id", itemID)
			return nil, err
		}
		rental.Items = append(rental.Items, *line)
	}

	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		logger.ExitMethodWithError("rentalService.OpenContract", err)
		return nil, err
	}

	// Reserved bikes stay on the floor until pickup; active rentals leave it.
	if status == domain.RentalStatusInUse {
		for _, line := range rental.Items {
			if err := s.itemRepo.SetStatus(ctx, line.ItemID, domain.ItemStatusRented); err != nil {
				logger.Warn("Failed to flag item as rented", "item_id", line.ItemID, "error", err)
			}
		}
	}

	logger.ExitMethod("rentalService.OpenContract", "rental_id", rental.ID, "contract_no", rental.ContractNo)
	return rental, nil
}

// snapshotLine freezes a catalog item's rates onto a new rental line.
func (s *rentalService) snapshotLine(ctx context.Context, itemID string) (*domain.RentalItem, error) {
	it, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.Status != domain.ItemStatusAvailable {
		return nil, fmt.Errorf("%w: %s (%s)", ErrItemUnavailable, it.Name, it.Status)
	}
	return &domain.RentalItem{
		ID:                  uuid.New().String(),
		ItemID:              it.ID,
		Kind:                it.Kind,
		Name:                it.Name,
		PriceHourly:         it.PriceHourly,
		PriceDaily:          it.PriceDaily,
		InsuranceEnabled:    false,
		InsuranceFlatAmount: it.InsuranceFlatAmount,
	}, nil
}

func newContractNo(startAt time.Time) string {
	return fmt.Sprintf("BR-%s-%s", startAt.Format("20060102"), strings.ToUpper(uuid.New().String()[:8]))
}

func (s *rentalService) GetRental(ctx context.Context, id string) (*domain.Rental, error) {
	return s.rentalRepo.GetByID(ctx, id)
}

func (s *rentalService) ListRentals(ctx context.Context, status, mode string, page, pageSize int32) ([]domain.Rental, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	return s.rentalRepo.List(ctx, status, mode, page, pageSize)
}

func (s *rentalService) AddItem(ctx context.Context, rentalID, itemID string, insuranceEnabled bool, customPrice float64) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.IsFinal() {
		return nil, ErrContractFinal
	}

	line, err := s.snapshotLine(ctx, itemID)
	if err != nil {
		return nil, err
	}
	line.InsuranceEnabled = insuranceEnabled
	line.CustomPriceOverride = customPrice

	if err := s.rentalRepo.AddItem(ctx, rentalID, line); err != nil {
		return nil, err
	}
	if rental.Status == domain.RentalStatusInUse || rental.Status == domain.RentalStatusOverdue {
		if err := s.itemRepo.SetStatus(ctx, itemID, domain.ItemStatusRented); err != nil {
			logger.Warn("Failed to flag item as rented", "item_id", itemID, "error", err)
		}
	}

	return s.rentalRepo.GetByID(ctx, rentalID)
}

func (s *rentalService) ReturnItem(ctx context.Context, rentalID, lineID string) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.IsFinal() {
		return nil, ErrContractFinal
	}

	var line *domain.RentalItem
	for i := range rental.Items {
		if rental.Items[i].ID == lineID {
			line = &rental.Items[i]
			break
		}
	}
	if line == nil {
		return nil, ErrLineNotFound
	}
	if line.ReturnedAt != nil {
		return nil, ErrLineReturned
	}

	at := s.now()
	line.ReturnedAt = &at
	if err := s.rentalRepo.UpdateItem(ctx, rentalID, line); err != nil {
		return nil, err
	}
	if err := s.itemRepo.SetStatus(ctx, line.ItemID, domain.ItemStatusAvailable); err != nil {
		logger.Warn("Failed to free returned item", "item_id", line.ItemID, "error", err)
	}

	return s.rentalRepo.GetByID(ctx, rentalID)
}

func (s *rentalService) SetOverrides(ctx context.Context, rentalID string, req OverridesRequest) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.Status == domain.RentalStatusCancelled {
		return nil, ErrContractFinal
	}

	if req.LockedFinalAmount != nil {
		rental.LockedFinalAmount = *req.LockedFinalAmount
	}
	if req.CustomFinalAmount != nil {
		rental.CustomFinalAmount = *req.CustomFinalAmount
	}
	if req.CustomFinalReason != nil {
		rental.CustomFinalReason = *req.CustomFinalReason
	}
	if req.ContractInsuranceFlat != nil {
		rental.ContractInsuranceFlat = *req.ContractInsuranceFlat
	}

	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}
	if req.ExtraCharges != nil {
		if err := s.rentalRepo.ReplaceExtraCharges(ctx, rentalID, req.ExtraCharges); err != nil {
			return nil, err
		}
	}

	return s.rentalRepo.GetByID(ctx, rentalID)
}

func (s *rentalService) Quote(ctx context.Context, rentalID string) (*domain.Bill, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	return pricing.ComputeBill(rental, s.now(), false)
}

func (s *rentalService) CloseContract(ctx context.Context, rentalID string) (*domain.Rental, *domain.Bill, error) {
	logger.EnterMethod("rentalService.CloseContract", "rental_id", rentalID)

	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, nil, err
	}
	if rental.IsFinal() {
		return nil, nil, ErrContractFinal
	}

	at := s.now()
	if rental.EndAt == nil || rental.EndAt.IsZero() {
		rental.EndAt = &at
	}

	// Closing computation: every line participates, returned or not.
	bill, err := pricing.ComputeBill(rental, at, true)
	if err != nil {
		logger.ExitMethodWithError("rentalService.CloseContract", err, "rental_id", rentalID)
		return nil, nil, err
	}

	// The billed total becomes a locked amount so later recomputations
	// reproduce the settled figure no matter how rates change.
	rental.LockedFinalAmount = bill.FinalTotal
	rental.Status = domain.RentalStatusCompleted

	for i := range rental.Items {
		line := &rental.Items[i]
		if line.ReturnedAt == nil {
			line.ReturnedAt = &at
			if err := s.rentalRepo.UpdateItem(ctx, rentalID, line); err != nil {
				return nil, nil, err
			}
		}
		if err := s.itemRepo.SetStatus(ctx, line.ItemID, domain.ItemStatusAvailable); err != nil {
			logger.Warn("Failed to free returned item", "item_id", line.ItemID, "error", err)
		}
	}

	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, nil, err
	}

	if s.emailSvc != nil && rental.CustomerEmail != "" {
		if err := s.emailSvc.SendContractReceipt(ctx, rental.CustomerEmail, rental.CustomerName, rental.ContractNo, bill.FinalTotal); err != nil {
			logger.Warn("Failed to send contract receipt", "rental_id", rentalID, "error", err)
		}
	}

	logger.ExitMethod("rentalService.CloseContract", "rental_id", rentalID, "total", bill.FinalTotal)
	return rental, bill, nil
}

func (s *rentalService) CancelContract(ctx context.Context, rentalID, reason string) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.Status == domain.RentalStatusCompleted {
		return nil, ErrContractFinal
	}

	rental.Status = domain.RentalStatusCancelled
	if reason != "" {
		rental.Notes = strings.TrimSpace(rental.Notes + "\nCancelled: " + reason)
	}
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}

	for _, line := range rental.Items {
		if line.ReturnedAt == nil {
			if err := s.itemRepo.SetStatus(ctx, line.ItemID, domain.ItemStatusAvailable); err != nil {
				logger.Warn("Failed to free item on cancel", "item_id", line.ItemID, "error", err)
			}
		}
	}

	return rental, nil
}
