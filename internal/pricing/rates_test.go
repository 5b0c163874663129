package pricing

import (
	"math"
	"testing"

	"bikerent-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestSelectRate_ActiveContract(t *testing.T) {
	bike := domain.RentalItem{Name: "City Bike", PriceHourly: 5, PriceDaily: 20}

	t.Run("Hourly wins below the cap", func(t *testing.T) {
		amt, basis := SelectRate(bike, domain.RentalModeActive, Duration{Hours: 3, Days: 1})
		assert.Equal(t, 15.0, amt)
		assert.Equal(t, domain.BasisHourly, basis)
	})

	t.Run("Daily cap once hourly exceeds it", func(t *testing.T) {
		amt, basis := SelectRate(bike, domain.RentalModeActive, Duration{Hours: 6, Days: 1})
		assert.Equal(t, 20.0, amt)
		assert.Equal(t, domain.BasisDailyCap, basis)
	})

	t.Run("Exact tie goes to the cap, not the hourly figure", func(t *testing.T) {
		// 4h * 5 == 1d * 20
		amt, basis := SelectRate(bike, domain.RentalModeActive, Duration{Hours: 4, Days: 1})
		assert.Equal(t, 20.0, amt)
		assert.Equal(t, domain.BasisDailyCap, basis)
	})

	t.Run("Zero daily rate always takes the hourly path", func(t *testing.T) {
		it := domain.RentalItem{PriceHourly: 5}
		for _, hours := range []int{1, 10, 100} {
			amt, basis := SelectRate(it, domain.RentalModeActive, Duration{Hours: hours, Days: (hours + 23) / 24})
			assert.Equal(t, 5.0*float64(hours), amt)
			assert.Equal(t, domain.BasisHourly, basis)
		}
	})

	t.Run("Daily-only item falls back to daily", func(t *testing.T) {
		it := domain.RentalItem{PriceDaily: 12}
		amt, basis := SelectRate(it, domain.RentalModeActive, Duration{Hours: 30, Days: 2})
		assert.Equal(t, 24.0, amt)
		assert.Equal(t, domain.BasisDailyOnly, basis)
	})
}

func TestSelectRate_Reservation(t *testing.T) {
	t.Run("Daily rate always wins, hourly is irrelevant", func(t *testing.T) {
		for _, hourly := range []float64{0, 1, 5, 99} {
			it := domain.RentalItem{PriceHourly: hourly, PriceDaily: 20}
			amt, basis := SelectRate(it, domain.RentalModeReservation, Duration{Hours: 30, Days: 2})
			assert.Equal(t, 40.0, amt)
			assert.Equal(t, domain.BasisReservationDaily, basis)
		}
	})

	t.Run("Hourly fallback when no daily rate exists", func(t *testing.T) {
		it := domain.RentalItem{PriceHourly: 3}
		amt, basis := SelectRate(it, domain.RentalModeReservation, Duration{Hours: 5, Days: 1})
		assert.Equal(t, 15.0, amt)
		assert.Equal(t, domain.BasisReservationHourly, basis)
	})
}

func TestSelectRate_Overrides(t *testing.T) {
	it := domain.RentalItem{PriceHourly: 5, PriceDaily: 20, CustomPriceOverride: 7.5}

	amt, basis := SelectRate(it, domain.RentalModeActive, Duration{Hours: 100, Days: 5})
	assert.Equal(t, 7.5, amt)
	assert.Equal(t, domain.BasisItemOverride, basis)

	// Non-positive overrides are ignored.
	it.CustomPriceOverride = 0
	amt, _ = SelectRate(it, domain.RentalModeActive, Duration{Hours: 1, Days: 1})
	assert.Equal(t, 5.0, amt)
}

func TestSelectRate_LenientCoercion(t *testing.T) {
	// Malformed numeric input (NaN from a coerced non-numeric string, Inf,
	// negatives) prices as zero rather than propagating an error. This is an
	// intentional policy, not an accident.
	t.Run("NaN rates treated as zero", func(t *testing.T) {
		it := domain.RentalItem{PriceHourly: math.NaN(), PriceDaily: 20}
		amt, basis := SelectRate(it, domain.RentalModeActive, Duration{Hours: 2, Days: 1})
		assert.Equal(t, 20.0, amt)
		assert.Equal(t, domain.BasisDailyOnly, basis)
	})

	t.Run("Negative rates treated as zero", func(t *testing.T) {
		it := domain.RentalItem{PriceHourly: -5, PriceDaily: -20}
		amt, _ := SelectRate(it, domain.RentalModeActive, Duration{Hours: 4, Days: 1})
		assert.Equal(t, 0.0, amt)
	})

	t.Run("Fully zero-rate item contributes nothing", func(t *testing.T) {
		amt, _ := SelectRate(domain.RentalItem{}, domain.RentalModeActive, Duration{Hours: 9, Days: 1})
		assert.Equal(t, 0.0, amt)
		amt, _ = SelectRate(domain.RentalItem{}, domain.RentalModeReservation, Duration{Hours: 9, Days: 1})
		assert.Equal(t, 0.0, amt)
	})
}

func TestSelectRate_NeverNegative(t *testing.T) {
	items := []domain.RentalItem{
		{PriceHourly: -1, PriceDaily: -1, CustomPriceOverride: -10},
		{},
		{PriceHourly: 0.01},
	}
	for _, it := range items {
		for _, mode := range []domain.RentalMode{domain.RentalModeActive, domain.RentalModeReservation} {
			amt, _ := SelectRate(it, mode, Duration{Hours: 48, Days: 2})
			assert.GreaterOrEqual(t, amt, 0.0)
		}
	}
}
