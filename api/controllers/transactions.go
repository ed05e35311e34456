package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/craftpress/printshop-backend/api/responses"
	"github.com/craftpress/printshop-backend/api/validators"
	"github.com/craftpress/printshop-backend/internal/wallet"
	"github.com/craftpress/printshop-backend/pkg/enums"
	pkgerrors "github.com/craftpress/printshop-backend/pkg/errors"
	"github.com/craftpress/printshop-backend/pkg/logger"
)

// AdminListTransactions returns the full ledger with optional type and date
// filters. Dates accept YYYY-MM-DD or RFC 3339.
func AdminListTransactions(svc wallet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := listParams(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var filters wallet.TransactionFilters
		if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
			txnType, err := enums.ParseTransactionType(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid transaction type").
					WithDetails(map[string]any{"type": raw}))
				return
			}
			filters.Type = &txnType
		}

		start, err := queryTime(r, "start_date")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		filters.StartDate = start

		end, err := queryTime(r, "end_date")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		filters.EndDate = end

		txns, err := svc.ListAllTransactions(ctx, filters, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"transactions": txns})
	}
}

// OrderTransactions returns the ledger entries tied to one order. Customers
// only see their own orders.
func OrderTransactions(svc wallet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderID"), "orderID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		txns, err := svc.OrderTransactions(ctx, userID, requesterRole(r), orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"transactions": txns})
	}
}

func queryTime(r *http.Request, key string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid date").
		WithDetails(map[string]any{"field": key})
}
