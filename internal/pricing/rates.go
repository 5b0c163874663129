package pricing

import (
	"math"

	"bikerent-backend/internal/domain"
)

// DefaultInsuranceFlat is charged per insured line when the snapshot carries
// no explicit insurance amount.
const DefaultInsuranceFlat = 5.0

// sanitizeRate coerces malformed rate values to zero. Non-numeric input
// arriving as NaN/Inf and negative rates price as if absent; this leniency is
// deliberate and covered by tests.
func sanitizeRate(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// SelectRate computes one line's rental amount, excluding insurance.
//
// A positive per-line override wins verbatim. Reservations always bill the
// daily rate for the rounded-up day count, falling back to hourly billing
// only when no daily rate exists. Active contracts bill hourly but are capped
// at the daily equivalent: when the hourly total reaches the daily total the
// cap wins, including on exact equality.
func SelectRate(it domain.RentalItem, mode domain.RentalMode, d Duration) (float64, domain.BasisCode) {
	if override := sanitizeRate(it.CustomPriceOverride); override > 0 {
		return override, domain.BasisItemOverride
	}

	hourly := sanitizeRate(it.PriceHourly)
	daily := sanitizeRate(it.PriceDaily)

	if mode == domain.RentalModeReservation {
		if daily > 0 {
			return daily * float64(d.Days), domain.BasisReservationDaily
		}
		return hourly * float64(d.Hours), domain.BasisReservationHourly
	}

	hourlyTotal := hourly * float64(d.Hours)
	dailyTotal := daily * float64(d.Days)

	switch {
	case daily > 0 && hourlyTotal >= dailyTotal:
		return dailyTotal, domain.BasisDailyCap
	case hourly > 0:
		return hourlyTotal, domain.BasisHourly
	default:
		return dailyTotal, domain.BasisDailyOnly
	}
}

// insuranceAmount returns the flat insurance add-on for one line.
func insuranceAmount(it domain.RentalItem) float64 {
	if !it.InsuranceEnabled {
		return 0
	}
	if amt := sanitizeRate(it.InsuranceFlatAmount); amt > 0 {
		return amt
	}
	return DefaultInsuranceFlat
}

// Round2 rounds to the currency minor unit. Applied once, at finalization;
// intermediate sums keep full precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
