// Package pricing is the single source of truth for what a rental costs.
//
// Every consumer — the contract workflow, the live price quote, revenue
// reporting — calls ComputeBill instead of re-deriving rates. The engine is
// pure: no clock reads, no I/O, same inputs same bill.
package pricing

import (
	"errors"
	"fmt"
	"time"

	"bikerent-backend/internal/domain"
)

// ErrInvalidInput marks a record the engine genuinely cannot price, as
// opposed to one that prices to zero.
var ErrInvalidInput = errors.New("pricing: invalid input")

// Synthetic line names for the override short-circuit paths.
const (
	lockedLineName = "Locked Price"
	customLineName = "Custom Price"
)

// ComputeBill resolves the amount owed for a rental at the given instant.
//
// Override precedence is total and short-circuiting: a positive
// LockedFinalAmount wins outright, then a positive CustomFinalAmount, and
// only then is per-item pricing evaluated. The two override paths emit a
// single synthetic breakdown line and never touch the item list.
//
// now stands in for a missing EndAt; the caller resolves it once so repeated
// calls with identical inputs return identical bills. closing requests a
// final computation that includes already-returned lines.
func ComputeBill(rec *domain.Rental, now time.Time, closing bool) (*domain.Bill, error) {
	if locked := sanitizeRate(rec.LockedFinalAmount); locked > 0 {
		return overrideBill(rec, now, locked, domain.PriceSourceLocked, domain.BillLine{
			Name:       lockedLineName,
			Basis:      domain.BasisLocked,
			BaseAmount: locked,
			LineTotal:  locked,
		}), nil
	}

	if custom := sanitizeRate(rec.CustomFinalAmount); custom > 0 {
		return overrideBill(rec, now, custom, domain.PriceSourceCustom, domain.BillLine{
			Name:       customLineName,
			Basis:      domain.BasisCustomTotal,
			Reason:     rec.CustomFinalReason,
			BaseAmount: custom,
			LineTotal:  custom,
		}), nil
	}

	if rec.StartAt.IsZero() {
		return nil, fmt.Errorf("%w: missing start time", ErrInvalidInput)
	}

	endAt := resolveEnd(rec, now)
	dur := ResolveDuration(rec.StartAt, endAt)

	bill := &domain.Bill{
		Source:   domain.PriceSourceCalculated,
		Duration: domain.BillDuration{Hours: dur.Hours, Days: dur.Days},
		StartAt:  rec.StartAt,
		EndAt:    endAt,
	}

	total := 0.0
	for _, it := range rec.Items {
		if it.ReturnedAt != nil && !closing {
			continue
		}

		base, basis := SelectRate(it, rec.Mode, dur)
		ins := insuranceAmount(it)

		bill.Lines = append(bill.Lines, domain.BillLine{
			Name:            it.Name,
			Basis:           basis,
			BaseAmount:      base,
			InsuranceAmount: ins,
			LineTotal:       base + ins,
		})
		total += base + ins
	}

	if flat := sanitizeRate(rec.ContractInsuranceFlat); flat > 0 {
		bill.Lines = append(bill.Lines, domain.BillLine{
			Name:       "Insurance",
			Basis:      domain.BasisContractInsurance,
			BaseAmount: flat,
			LineTotal:  flat,
		})
		total += flat
	}

	for _, ec := range rec.ExtraCharges {
		if ec.Amount == 0 {
			continue
		}
		bill.Lines = append(bill.Lines, domain.BillLine{
			Name:       ec.Description,
			Basis:      domain.BasisExtraCharge,
			BaseAmount: ec.Amount,
			LineTotal:  ec.Amount,
		})
		total += ec.Amount
	}

	bill.FinalTotal = Round2(total)
	return bill, nil
}

// overrideBill builds the single-line bill for a locked or custom total.
// Duration is resolved only for display, and only when a start time exists:
// overrides make the timestamps irrelevant to the amount.
func overrideBill(rec *domain.Rental, now time.Time, amount float64, source domain.PriceSource, line domain.BillLine) *domain.Bill {
	bill := &domain.Bill{
		FinalTotal: Round2(amount),
		Source:     source,
		Lines:      []domain.BillLine{line},
	}
	if !rec.StartAt.IsZero() {
		endAt := resolveEnd(rec, now)
		dur := ResolveDuration(rec.StartAt, endAt)
		bill.Duration = domain.BillDuration{Hours: dur.Hours, Days: dur.Days}
		bill.StartAt = rec.StartAt
		bill.EndAt = endAt
	}
	return bill
}

func resolveEnd(rec *domain.Rental, now time.Time) time.Time {
	if rec.EndAt != nil && !rec.EndAt.IsZero() {
		return *rec.EndAt
	}
	return now
}
