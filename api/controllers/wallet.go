package controllers

import (
	"net/http"

	"github.com/craftpress/printshop-backend/api/responses"
	"github.com/craftpress/printshop-backend/api/validators"
	"github.com/craftpress/printshop-backend/internal/wallet"
	"github.com/craftpress/printshop-backend/pkg/logger"
)

// GetWallet returns the caller's wallet, creating it on first use.
func GetWallet(svc wallet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		account, err := svc.Get(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, account)
	}
}

// AddMoney credits the wallet and returns the payment handoff stub.
func AddMoney(svc wallet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload wallet.AddMoneyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.AddMoney(ctx, userID, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// ListWalletTransactions returns the caller's recent ledger entries,
// newest first.
func ListWalletTransactions(svc wallet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		txns, err := svc.ListTransactions(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"transactions": txns})
	}
}
