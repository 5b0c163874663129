package domain

type ItemKind string

const (
	ItemKindBike      ItemKind = "BIKE"
	ItemKindAccessory ItemKind = "ACCESSORY"
)

type ItemStatus string

const (
	ItemStatusAvailable   ItemStatus = "AVAILABLE"
	ItemStatusRented      ItemStatus = "RENTED"
	ItemStatusMaintenance ItemStatus = "MAINTENANCE"
	ItemStatusRetired     ItemStatus = "RETIRED"
)

// Item is a catalog entry: one physical bike or accessory the shop rents out.
// A valid item has at least one non-zero rate.
type Item struct {
	ID                  string     `json:"id"`
	Kind                ItemKind   `json:"kind"`
	Name                string     `json:"name"`
	Barcode             string     `json:"barcode"`
	Size                string     `json:"size,omitempty"`
	PriceHourly         float64    `json:"price_hourly"`
	PriceDaily          float64    `json:"price_daily"`
	InsuranceAvailable  bool       `json:"insurance_available"`
	InsuranceFlatAmount float64    `json:"insurance_flat_amount"`
	Status              ItemStatus `json:"status"`
	Notes               string     `json:"notes,omitempty"`
	CreatedOn           string     `json:"created_on"`
	UpdatedOn           string     `json:"updated_on"`
}
