package domain

import "time"

type RentalMode string

const (
	// RentalModeActive bills hourly until the daily equivalent would cost less.
	RentalModeActive RentalMode = "ACTIVE_CONTRACT"
	// RentalModeReservation bills a fixed daily rate for price certainty.
	RentalModeReservation RentalMode = "RESERVATION"
)

type RentalStatus string

const (
	RentalStatusReserved  RentalStatus = "RESERVED"
	RentalStatusInUse     RentalStatus = "IN_USE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
	RentalStatusOverdue   RentalStatus = "OVERDUE"
)

// RentalItem is one rented line on a contract.
// Rate fields are snapshots captured from the catalog item when the line is
// added. All billing uses these snapshots, not live catalog prices.
type RentalItem struct {
	ID                  string   `json:"id"`
	ItemID              string   `json:"item_id"`
	Kind                ItemKind `json:"kind"`
	Name                string   `json:"name"`
	PriceHourly         float64  `json:"price_hourly"`
	PriceDaily          float64  `json:"price_daily"`
	InsuranceEnabled    bool     `json:"insurance_enabled"`
	InsuranceFlatAmount float64  `json:"insurance_flat_amount"`
	// CustomPriceOverride, when > 0, replaces the computed rental amount for
	// this line. Insurance still applies on top.
	CustomPriceOverride float64 `json:"custom_price_override,omitempty"`
	// ReturnedAt marks the line as settled; an in-progress recomputation
	// skips it, a closing computation includes it.
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}

// ExtraCharge is an arbitrary signed adjustment on the contract total.
// Negative amounts are discounts; zero amounts are ignored by billing.
type ExtraCharge struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Rental is one contract or reservation.
type Rental struct {
	ID            string       `json:"id"`
	ContractNo    string       `json:"contract_no"`
	CustomerName  string       `json:"customer_name"`
	CustomerPhone string       `json:"customer_phone"`
	CustomerEmail string       `json:"customer_email"`
	CustomerDoc   string       `json:"customer_doc,omitempty"`
	Mode          RentalMode   `json:"mode"`
	Status        RentalStatus `json:"status"`
	StartAt       time.Time    `json:"start_at"`
	EndAt         *time.Time   `json:"end_at,omitempty"`
	Items         []RentalItem `json:"items"`

	// Price overrides, highest priority first. LockedFinalAmount is set when
	// payment completes and makes the bill immutable.
	LockedFinalAmount float64 `json:"locked_final_amount,omitempty"`
	CustomFinalAmount float64 `json:"custom_final_amount,omitempty"`
	CustomFinalReason string  `json:"custom_final_reason,omitempty"`

	// ContractInsuranceFlat is added once to the total, not per item.
	ContractInsuranceFlat float64       `json:"contract_insurance_flat,omitempty"`
	ExtraCharges          []ExtraCharge `json:"extra_charges,omitempty"`

	Notes     string `json:"notes,omitempty"`
	CreatedOn string `json:"created_on"`
	UpdatedOn string `json:"updated_on"`
}

// ActiveItems returns the lines not yet returned.
func (r *Rental) ActiveItems() []RentalItem {
	var out []RentalItem
	for _, it := range r.Items {
		if it.ReturnedAt == nil {
			out = append(out, it)
		}
	}
	return out
}

// IsFinal reports whether the contract reached a terminal state.
func (r *Rental) IsFinal() bool {
	return r.Status == RentalStatusCompleted || r.Status == RentalStatusCancelled
}
