package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"bikerent-backend/internal/domain"
	"bikerent-backend/internal/service"
)

// ItemHandler serves the rental catalog
type ItemHandler struct {
	catalog service.CatalogService
}

func NewItemHandler(catalog service.CatalogService) *ItemHandler {
	return &ItemHandler{catalog: catalog}
}

type itemRequest struct {
	Kind                domain.ItemKind `json:"kind"`
	Name                string          `json:"name"`
	Barcode             string          `json:"barcode"`
	Size                string          `json:"size"`
	PriceHourly         float64         `json:"price_hourly"`
	PriceDaily          float64         `json:"price_daily"`
	InsuranceAvailable  bool            `json:"insurance_available"`
	InsuranceFlatAmount float64         `json:"insurance_flat_amount"`
	Notes               string          `json:"notes"`
}

type listResponse struct {
	Items      any   `json:"items"`
	TotalCount int32 `json:"total_count"`
	Page       int32 `json:"page"`
	PageSize   int32 `json:"page_size"`
}

func pageParams(r *http.Request) (int32, int32) {
	page := int32(1)
	pageSize := int32(50)
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 && v <= 200 {
		pageSize = int32(v)
	}
	return page, pageSize
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	item := &domain.Item{
		Kind:                req.Kind,
		Name:                req.Name,
		Barcode:             req.Barcode,
		Size:                req.Size,
		PriceHourly:         req.PriceHourly,
		PriceDaily:          req.PriceDaily,
		InsuranceAvailable:  req.InsuranceAvailable,
		InsuranceFlatAmount: req.InsuranceFlatAmount,
		Notes:               req.Notes,
	}
	if err := h.catalog.AddItem(r.Context(), item); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.catalog.GetItem(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// GetByBarcode supports the scanner flow at the front desk
func (h *ItemHandler) GetByBarcode(w http.ResponseWriter, r *http.Request) {
	item, err := h.catalog.GetItemByBarcode(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	item, err := h.catalog.GetItem(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	item.Kind = req.Kind
	item.Name = req.Name
	item.Barcode = req.Barcode
	item.Size = req.Size
	item.PriceHourly = req.PriceHourly
	item.PriceDaily = req.PriceDaily
	item.InsuranceAvailable = req.InsuranceAvailable
	item.InsuranceFlatAmount = req.InsuranceFlatAmount
	item.Notes = req.Notes

	if err := h.catalog.UpdateItem(r.Context(), item); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Retire takes an item out of circulation without deleting its history
func (h *ItemHandler) Retire(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.RetireItem(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	kind := r.URL.Query().Get("kind")
	status := r.URL.Query().Get("status")

	items, total, err := h.catalog.ListItems(r.Context(), kind, status, page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	})
}
