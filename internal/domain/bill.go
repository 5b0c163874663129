package domain

import "time"

// PriceSource tells which branch of the override resolution produced a bill.
type PriceSource string

const (
	PriceSourceLocked     PriceSource = "LOCKED"
	PriceSourceCustom     PriceSource = "CUSTOM"
	PriceSourceCalculated PriceSource = "CALCULATED"
)

// BasisCode is a structured, localizable reason code for a bill line.
// Presentation layers translate these; the engine never emits prose.
type BasisCode string

const (
	BasisHourly            BasisCode = "HOURLY"
	BasisDailyCap          BasisCode = "DAILY_CAP"
	BasisDailyOnly         BasisCode = "DAILY_ONLY"
	BasisReservationDaily  BasisCode = "RESERVATION_DAILY"
	BasisReservationHourly BasisCode = "RESERVATION_HOURLY_FALLBACK"
	BasisItemOverride      BasisCode = "ITEM_OVERRIDE"
	BasisLocked            BasisCode = "LOCKED_PRICE"
	BasisCustomTotal       BasisCode = "CUSTOM_PRICE"
	BasisContractInsurance BasisCode = "CONTRACT_INSURANCE"
	BasisExtraCharge       BasisCode = "EXTRA_CHARGE"
)

// BillLine is one row of a bill breakdown.
type BillLine struct {
	Name            string    `json:"name"`
	Basis           BasisCode `json:"basis"`
	Reason          string    `json:"reason,omitempty"`
	BaseAmount      float64   `json:"base_amount"`
	InsuranceAmount float64   `json:"insurance_amount,omitempty"`
	LineTotal       float64   `json:"line_total"`
}

// BillDuration is the resolved billable span. Both counts round up and are
// never below one.
type BillDuration struct {
	Hours int `json:"hours"`
	Days  int `json:"days"`
}

// Bill is the engine output: the amount owed for a rental, with breakdown.
// FinalTotal is rounded to 2 decimals; line amounts are not.
type Bill struct {
	FinalTotal float64      `json:"final_total"`
	Source     PriceSource  `json:"price_source"`
	Lines      []BillLine   `json:"line_items"`
	Duration   BillDuration `json:"duration"`
	StartAt    time.Time    `json:"start_at"`
	EndAt      time.Time    `json:"end_at"`
}
