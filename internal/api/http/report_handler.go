package http

import (
	"net/http"
	"strconv"
	"time"

	"bikerent-backend/internal/service"
)

// ReportHandler serves revenue reporting for the admin dashboard
type ReportHandler struct {
	reports service.ReportService
	now     func() time.Time
}

func NewReportHandler(reports service.ReportService, now func() time.Time) *ReportHandler {
	if now == nil {
		now = time.Now
	}
	return &ReportHandler{reports: reports, now: now}
}

// Revenue reports attributed revenue per item between two dates.
// Defaults to the current month when no range is given.
func (h *ReportHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	now := h.now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := now

	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "from must be YYYY-MM-DD")
			return
		}
		from = parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "to must be YYYY-MM-DD")
			return
		}
		// Inclusive end date
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	if to.Before(from) {
		writeError(w, http.StatusBadRequest, "to must not precede from")
		return
	}

	report, err := h.reports.RevenueBetween(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Monthly reports revenue bucketed per calendar month of one year
func (h *ReportHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	year := h.now().UTC().Year()
	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 2000 || parsed > 2100 {
			writeError(w, http.StatusBadRequest, "year must be a four-digit year")
			return
		}
		year = parsed
	}

	months, err := h.reports.MonthlyRevenue(r.Context(), year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, months)
}
