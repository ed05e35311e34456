package wallet

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/craftpress/printshop-backend/pkg/db/models"
	"github.com/craftpress/printshop-backend/pkg/enums"
)

// AddMoneyRequest tops up the caller's wallet.
type AddMoneyRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=upi card netbanking"`
}

// PaymentStub mimics the acquirer handoff for a top-up. Real gateway
// integration is out of scope; UPI payments stay pending until reconciled.
type PaymentStub struct {
	UPIID         string          `json:"upi_id"`
	Amount        decimal.Decimal `json:"amount"`
	TransactionID string          `json:"transaction_id"`
	Status        string          `json:"status"`
}

// AddMoneyResponse returns the updated wallet, the ledger entry, and the
// payment stub.
type AddMoneyResponse struct {
	Wallet      *models.Wallet            `json:"wallet"`
	Transaction *models.WalletTransaction `json:"transaction"`
	Payment     PaymentStub               `json:"payment"`
}

// TransactionFilters narrows the admin transaction listing.
type TransactionFilters struct {
	Type      *enums.TransactionType
	StartDate *time.Time
	EndDate   *time.Time
}
