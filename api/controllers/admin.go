package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/craftpress/printshop-backend/api/responses"
	"github.com/craftpress/printshop-backend/api/validators"
	"github.com/craftpress/printshop-backend/internal/dashboard"
	"github.com/craftpress/printshop-backend/pkg/logger"
)

// DashboardOverview returns the admin landing-page aggregates.
func DashboardOverview(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		overview, err := svc.Overview(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, overview)
	}
}

// ListCustomers returns customer accounts with order stats, optionally
// filtered by a name/email search.
func ListCustomers(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := listParams(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		customers, err := svc.Customers(ctx, strings.TrimSpace(r.URL.Query().Get("search")), params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"customers": customers})
	}
}

// GetCustomer returns one customer with order stats and wallet balance.
func GetCustomer(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		customerID, err := validators.ParsePathUUID(chi.URLParam(r, "customerID"), "customerID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		detail, err := svc.Customer(ctx, customerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}
