package http

import (
	"net/http"
	"time"

	"bikerent-backend/internal/domain"
	"bikerent-backend/internal/pricing"
)

// PricingHandler exposes the billing calculator as a standalone endpoint so
// the SPA can preview a price without persisting anything.
type PricingHandler struct {
	now func() time.Time
}

func NewPricingHandler(now func() time.Time) *PricingHandler {
	if now == nil {
		now = time.Now
	}
	return &PricingHandler{now: now}
}

type adhocQuoteRequest struct {
	Rental  domain.Rental `json:"rental"`
	AsOf    *time.Time    `json:"as_of"`
	Closing bool          `json:"closing"`
}

// Quote computes a bill from the posted rental document
func (h *PricingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req adhocQuoteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	asOf := h.now().UTC()
	if req.AsOf != nil {
		asOf = *req.AsOf
	}

	bill, err := pricing.ComputeBill(&req.Rental, asOf, req.Closing)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bill)
}
