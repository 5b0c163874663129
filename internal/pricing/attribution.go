package pricing

import (
	"time"

	"bikerent-backend/internal/domain"
)

// SplitProportionally divides total across parts weighted by weights. Each
// part is rounded to 2 decimals and the rounding remainder lands on the last
// part, so the parts always sum to Round2(total). Zero or degenerate weights
// fall back to an equal split.
func SplitProportionally(total float64, weights []float64) []float64 {
	n := len(weights)
	if n == 0 {
		return nil
	}

	sum := 0.0
	for _, w := range weights {
		if w > 0 {
			sum += w
		}
	}

	total = Round2(total)
	parts := make([]float64, n)
	allocated := 0.0
	for i, w := range weights {
		if i == n-1 {
			parts[i] = Round2(total - allocated)
			break
		}
		var share float64
		if sum > 0 {
			if w > 0 {
				share = total * (w / sum)
			}
		} else {
			share = total / float64(n)
		}
		parts[i] = Round2(share)
		allocated += parts[i]
	}
	return parts
}

// AttributeRevenue assigns a contract's billed total to its individual lines
// for reporting. On the computed path each line already carries its own
// amount; when a locked or custom total is in force, the total is split
// across all lines proportionally to what per-item pricing would have
// computed for them.
func AttributeRevenue(rec *domain.Rental, now time.Time) (map[string]float64, error) {
	bill, err := ComputeBill(rec, now, true)
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64, len(rec.Items))

	if bill.Source == domain.PriceSourceCalculated {
		// Line order mirrors rec.Items on the computed closing path.
		for i, it := range rec.Items {
			out[it.ID] = bill.Lines[i].LineTotal
		}
		return out, nil
	}

	if len(rec.Items) == 0 {
		return out, nil
	}

	dur := Duration{Hours: 1, Days: 1}
	if !rec.StartAt.IsZero() {
		dur = ResolveDuration(rec.StartAt, resolveEnd(rec, now))
	}

	weights := make([]float64, len(rec.Items))
	for i, it := range rec.Items {
		base, _ := SelectRate(it, rec.Mode, dur)
		weights[i] = base + insuranceAmount(it)
	}

	parts := SplitProportionally(bill.FinalTotal, weights)
	for i, it := range rec.Items {
		out[it.ID] = parts[i]
	}
	return out, nil
}
