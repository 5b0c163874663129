package domain

import "time"

// ItemRevenue is revenue attributed to one catalog item over a report window.
// When a contract carries a locked or custom final amount, that total is
// split across its items proportionally to their computed values, so the
// per-item figures always sum to what was actually billed.
type ItemRevenue struct {
	ItemID  string   `json:"item_id"`
	Name    string   `json:"name"`
	Kind    ItemKind `json:"kind"`
	Rentals int      `json:"rentals"`
	Revenue float64  `json:"revenue"`
}

// RevenueReport aggregates completed contracts between From and To.
type RevenueReport struct {
	From         time.Time     `json:"from"`
	To           time.Time     `json:"to"`
	Contracts    int           `json:"contracts"`
	TotalRevenue float64       `json:"total_revenue"`
	Items        []ItemRevenue `json:"items"`
}

// MonthlyRevenue is one month of a yearly revenue series.
type MonthlyRevenue struct {
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	Contracts int     `json:"contracts"`
	Revenue   float64 `json:"revenue"`
}
