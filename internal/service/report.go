package service

import (
	"context"
	"sort"
	"time"

	"bikerent-backend/internal/domain"
	"bikerent-backend/internal/logger"
	"bikerent-backend/internal/pricing"
	"bikerent-backend/internal/repository"
)

type reportService struct {
	rentalRepo repository.RentalRepository
	now        func() time.Time
}

func NewReportService(rentalRepo repository.RentalRepository, now func() time.Time) ReportService {
	if now == nil {
		now = time.Now
	}
	return &reportService{rentalRepo: rentalRepo, now: now}
}

// RevenueBetween aggregates completed contracts by catalog item. Per-contract
// totals come from the same engine the billing flow uses; locked and custom
// totals are split across lines proportionally to their computed values so
// the report matches what customers actually paid.
func (s *reportService) RevenueBetween(ctx context.Context, from, to time.Time) (*domain.RevenueReport, error) {
	logger.EnterMethod("reportService.RevenueBetween", "from", from, "to", to)

	rentals, err := s.rentalRepo.ListCompletedBetween(ctx, from, to)
	if err != nil {
		logger.ExitMethodWithError("reportService.RevenueBetween", err)
		return nil, err
	}

	report := &domain.RevenueReport{From: from, To: to}
	perItem := map[string]*domain.ItemRevenue{}
	now := s.now()

	for i := range rentals {
		rec := &rentals[i]

		bill, err := pricing.ComputeBill(rec, now, true)
		if err != nil {
			logger.Warn("Skipping unpriceable contract in report", "rental_id", rec.ID, "error", err)
			continue
		}
		attributed, err := pricing.AttributeRevenue(rec, now)
		if err != nil {
			continue
		}

		report.Contracts++
		report.TotalRevenue += bill.FinalTotal

		for _, line := range rec.Items {
			agg, ok := perItem[line.ItemID]
			if !ok {
				agg = &domain.ItemRevenue{ItemID: line.ItemID, Name: line.Name, Kind: line.Kind}
				perItem[line.ItemID] = agg
			}
			agg.Rentals++
			agg.Revenue += attributed[line.ID]
		}
	}

	report.TotalRevenue = pricing.Round2(report.TotalRevenue)
	for _, agg := range perItem {
		agg.Revenue = pricing.Round2(agg.Revenue)
		report.Items = append(report.Items, *agg)
	}
	sort.Slice(report.Items, func(i, j int) bool {
		return report.Items[i].Revenue > report.Items[j].Revenue
	})

	logger.ExitMethod("reportService.RevenueBetween", "contracts", report.Contracts, "total", report.TotalRevenue)
	return report, nil
}

func (s *reportService) MonthlyRevenue(ctx context.Context, year int) ([]domain.MonthlyRevenue, error) {
	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	rentals, err := s.rentalRepo.ListCompletedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	months := make([]domain.MonthlyRevenue, 12)
	for m := range months {
		months[m] = domain.MonthlyRevenue{Year: year, Month: m + 1}
	}

	now := s.now()
	for i := range rentals {
		rec := &rentals[i]
		bill, err := pricing.ComputeBill(rec, now, true)
		if err != nil {
			continue
		}
		m := int(rec.StartAt.Month()) - 1
		months[m].Contracts++
		months[m].Revenue += bill.FinalTotal
	}
	for m := range months {
		months[m].Revenue = pricing.Round2(months[m].Revenue)
	}
	return months, nil
}
