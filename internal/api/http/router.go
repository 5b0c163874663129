package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bikerent-backend/internal/config"
)

// Handlers groups everything the router wires up
type Handlers struct {
	Auth    *AuthHandler
	Items   *ItemHandler
	Rentals *RentalHandler
	Pricing *PricingHandler
	Reports *ReportHandler
	Users   *UserHandler
}

// NewRouter builds the full API surface for the admin SPA
func NewRouter(cfg *config.Config, db *sql.DB, h Handlers, auth *AuthMiddleware) http.Handler {
	r := mux.NewRouter()

	r.Use(PanicRecovery)
	r.Use(RequestLogging)
	r.Use(Metrics)

	// Operational endpoints stay outside the auth perimeter
	r.HandleFunc("/healthz", healthCheck(db)).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/login", h.Auth.Login).Methods("POST")
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods("POST")

	// Catalog
	items := api.PathPrefix("/items").Subrouter()
	items.Use(auth.Authenticate)
	items.HandleFunc("", h.Items.List).Methods("GET")
	items.HandleFunc("", h.Items.Create).Methods("POST")
	items.HandleFunc("/barcode/{code}", h.Items.GetByBarcode).Methods("GET")
	items.HandleFunc("/{id}", h.Items.Get).Methods("GET")
	items.HandleFunc("/{id}", h.Items.Update).Methods("PUT")
	items.HandleFunc("/{id}", h.Items.Retire).Methods("DELETE")

	// Contracts and reservations
	rentals := api.PathPrefix("/rentals").Subrouter()
	rentals.Use(auth.Authenticate)
	rentals.HandleFunc("", h.Rentals.List).Methods("GET")
	rentals.HandleFunc("", h.Rentals.Open).Methods("POST")
	rentals.HandleFunc("/{id}", h.Rentals.Get).Methods("GET")
	rentals.HandleFunc("/{id}/items", h.Rentals.AddItem).Methods("POST")
	rentals.HandleFunc("/{id}/items/{lineId}/return", h.Rentals.ReturnItem).Methods("POST")
	rentals.HandleFunc("/{id}/overrides", h.Rentals.SetOverrides).Methods("PUT")
	rentals.HandleFunc("/{id}/bill", h.Rentals.Quote).Methods("GET")
	rentals.HandleFunc("/{id}/close", h.Rentals.Close).Methods("POST")
	rentals.HandleFunc("/{id}/cancel", h.Rentals.Cancel).Methods("POST")

	// Standalone price calculator
	pricingAPI := api.PathPrefix("/pricing").Subrouter()
	pricingAPI.Use(auth.Authenticate)
	pricingAPI.HandleFunc("/quote", h.Pricing.Quote).Methods("POST")

	// Reporting
	reports := api.PathPrefix("/reports").Subrouter()
	reports.Use(auth.Authenticate)
	reports.HandleFunc("/revenue", h.Reports.Revenue).Methods("GET")
	reports.HandleFunc("/monthly", h.Reports.Monthly).Methods("GET")

	// Staff accounts, admin only
	users := api.PathPrefix("/users").Subrouter()
	users.Use(auth.Authenticate, auth.RequireAdmin)
	users.HandleFunc("", h.Users.List).Methods("GET")
	users.HandleFunc("", h.Users.Create).Methods("POST")
	users.HandleFunc("/{id}", h.Users.Get).Methods("GET")
	users.HandleFunc("/{id}", h.Users.Update).Methods("PUT")
	users.HandleFunc("/{id}", h.Users.Delete).Methods("DELETE")
	users.HandleFunc("/{id}/password", h.Users.ChangePassword).Methods("PUT")

	return NewCORS(cfg)(r)
}

func healthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			status = "database unreachable"
			code = http.StatusServiceUnavailable
		}

		writeJSON(w, code, map[string]string{"status": status})
	}
}
