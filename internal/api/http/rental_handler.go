package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"bikerent-backend/internal/domain"
	"bikerent-backend/internal/service"
)

// RentalHandler serves contracts and reservations
type RentalHandler struct {
	rentals service.RentalService
}

func NewRentalHandler(rentals service.RentalService) *RentalHandler {
	return &RentalHandler{rentals: rentals}
}

type openContractRequest struct {
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	CustomerEmail string     `json:"customer_email"`
	CustomerDoc   string     `json:"customer_doc"`
	Mode          string     `json:"mode"`
	StartAt       time.Time  `json:"start_at"`
	EndAt         *time.Time `json:"end_at"`
	ItemIDs       []string   `json:"item_ids"`
	Notes         string     `json:"notes"`
}

type addItemRequest struct {
	ItemID           string  `json:"item_id"`
	InsuranceEnabled bool    `json:"insurance_enabled"`
	CustomPrice      float64 `json:"custom_price"`
}

type overridesRequest struct {
	LockedFinalAmount     *float64             `json:"locked_final_amount"`
	CustomFinalAmount     *float64             `json:"custom_final_amount"`
	CustomFinalReason     *string              `json:"custom_final_reason"`
	ContractInsuranceFlat *float64             `json:"contract_insurance_flat"`
	ExtraCharges          []domain.ExtraCharge `json:"extra_charges"`
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

type closeResponse struct {
	Rental *domain.Rental `json:"rental"`
	Bill   *domain.Bill   `json:"bill"`
}

func (h *RentalHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req openContractRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.CustomerName == "" {
		writeError(w, http.StatusBadRequest, "customer_name is required")
		return
	}
	if len(req.ItemIDs) == 0 {
		writeError(w, http.StatusBadRequest, "at least one item is required")
		return
	}

	rental, err := h.rentals.OpenContract(r.Context(), service.OpenContractRequest{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		CustomerDoc:   req.CustomerDoc,
		Mode:          domain.RentalMode(req.Mode),
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		ItemIDs:       req.ItemIDs,
		Notes:         req.Notes,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	rental, err := h.rentals.GetRental(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	status := r.URL.Query().Get("status")
	mode := r.URL.Query().Get("mode")

	rentals, total, err := h.rentals.ListRentals(r.Context(), status, mode, page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{
		Items:      rentals,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	})
}

// AddItem appends a line to an open contract, snapshotting catalog rates
func (h *RentalHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ItemID == "" {
		writeError(w, http.StatusBadRequest, "item_id is required")
		return
	}

	rental, err := h.rentals.AddItem(r.Context(), mux.Vars(r)["id"], req.ItemID,
		req.InsuranceEnabled, req.CustomPrice)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// ReturnItem settles a single line ahead of contract close
func (h *RentalHandler) ReturnItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	rental, err := h.rentals.ReturnItem(r.Context(), vars["id"], vars["lineId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// SetOverrides updates locked/custom totals, contract insurance and extra
// charges. Absent fields are left untouched.
func (h *RentalHandler) SetOverrides(w http.ResponseWriter, r *http.Request) {
	var req overridesRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rental, err := h.rentals.SetOverrides(r.Context(), mux.Vars(r)["id"], service.OverridesRequest{
		LockedFinalAmount:     req.LockedFinalAmount,
		CustomFinalAmount:     req.CustomFinalAmount,
		CustomFinalReason:     req.CustomFinalReason,
		ContractInsuranceFlat: req.ContractInsuranceFlat,
		ExtraCharges:          req.ExtraCharges,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// Quote prices the contract as of now without mutating it
func (h *RentalHandler) Quote(w http.ResponseWriter, r *http.Request) {
	bill, err := h.rentals.Quote(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

// Close finalizes the contract and returns the settled bill
func (h *RentalHandler) Close(w http.ResponseWriter, r *http.Request) {
	rental, bill, err := h.rentals.CloseContract(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, closeResponse{Rental: rental, Bill: bill})
}

func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req cancelRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rental, err := h.rentals.CancelContract(r.Context(), mux.Vars(r)["id"], req.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}
