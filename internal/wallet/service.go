package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/craftpress/printshop-backend/pkg/db/models"
	"github.com/craftpress/printshop-backend/pkg/enums"
	pkgerrors "github.com/craftpress/printshop-backend/pkg/errors"
	"github.com/craftpress/printshop-backend/pkg/pagination"
)

// ErrInsufficientBalance signals a debit larger than the wallet holds.
// Callers decide whether that aborts or records a failed payment.
var ErrInsufficientBalance = errors.New("insufficient wallet balance")

// transactionHistoryLimit caps the customer-facing ledger listing.
const transactionHistoryLimit = 50

// collectionUPIID is the virtual payment address top-ups are routed to.
const collectionUPIID = "printing-software@pay"

// Service exposes wallet balance and ledger operations.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)
	AddMoney(ctx context.Context, userID uuid.UUID, req AddMoneyRequest) (*AddMoneyResponse, error)
	DebitForOrder(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount decimal.Decimal, orderID uuid.UUID, orderNumber string) error
	ListTransactions(ctx context.Context, userID uuid.UUID) ([]models.WalletTransaction, error)
	ListAllTransactions(ctx context.Context, filters TransactionFilters, params pagination.Params) ([]models.WalletTransaction, error)
	OrderTransactions(ctx context.Context, requesterID uuid.UUID, role enums.UserRole, orderID uuid.UUID) ([]models.WalletTransaction, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type orderLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	orders orderLoader
}

// ServiceParams carries the wallet service dependencies.
type ServiceParams struct {
	Repo   Repository
	Tx     txRunner
	Orders orderLoader
}

// NewService builds the wallet service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("wallet repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("order loader required")
	}
	return &service{repo: params.Repo, tx: params.Tx, orders: params.Orders}, nil
}

// Get returns the caller's wallet, creating a zero-balance one on first use.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	if err := s.repo.CreateIfAbsent(ctx, userID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "ensure wallet")
	}
	wallet, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load wallet")
	}
	return wallet, nil
}

func (s *service) AddMoney(ctx context.Context, userID uuid.UUID, req AddMoneyRequest) (*AddMoneyResponse, error) {
	if req.Amount.LessThan(decimal.NewFromInt(1)) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be at least 1")
	}

	var (
		wallet *models.Wallet
		txn    *models.WalletTransaction
	)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.CreateIfAbsent(ctx, userID); err != nil {
			return fmt.Errorf("ensure wallet: %w", err)
		}
		locked, err := repo.FindByUserForUpdate(ctx, userID)
		if err != nil {
			return fmt.Errorf("lock wallet: %w", err)
		}

		locked.Balance = locked.Balance.Add(req.Amount)
		if err := repo.Save(ctx, locked); err != nil {
			return fmt.Errorf("credit wallet: %w", err)
		}

		method := req.PaymentMethod
		entry := &models.WalletTransaction{
			UserID:        userID,
			Type:          enums.TransactionTypeCredit,
			Amount:        req.Amount,
			Description:   "Wallet top-up via " + method,
			PaymentMethod: &method,
		}
		if err := repo.CreateTransaction(ctx, entry); err != nil {
			return fmt.Errorf("record top-up: %w", err)
		}

		wallet = locked
		txn = entry
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add money")
	}

	status := "completed"
	if req.PaymentMethod == "upi" {
		status = "pending"
	}
	return &AddMoneyResponse{
		Wallet:      wallet,
		Transaction: txn,
		Payment: PaymentStub{
			UPIID:         collectionUPIID,
			Amount:        req.Amount,
			TransactionID: fmt.Sprintf("TXN%d", time.Now().UnixMilli()),
			Status:        status,
		},
	}, nil
}

// DebitForOrder runs inside the caller's transaction: it locks the wallet,
// verifies the balance covers the amount, decrements it, and appends a debit
// ledger entry referencing the order. The balance never goes negative.
func (s *service) DebitForOrder(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount decimal.Decimal, orderID uuid.UUID, orderNumber string) error {
	repo := s.repo.WithTx(tx)
	if err := repo.CreateIfAbsent(ctx, userID); err != nil {
		return fmt.Errorf("ensure wallet: %w", err)
	}
	wallet, err := repo.FindByUserForUpdate(ctx, userID)
	if err != nil {
		return fmt.Errorf("lock wallet: %w", err)
	}

	if wallet.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}

	wallet.Balance = wallet.Balance.Sub(amount)
	if err := repo.Save(ctx, wallet); err != nil {
		return fmt.Errorf("debit wallet: %w", err)
	}

	entry := &models.WalletTransaction{
		UserID:      userID,
		OrderID:     &orderID,
		Type:        enums.TransactionTypeDebit,
		Amount:      amount,
		Description: "Payment for order " + orderNumber,
	}
	if err := repo.CreateTransaction(ctx, entry); err != nil {
		return fmt.Errorf("record payment: %w", err)
	}
	return nil
}

func (s *service) ListTransactions(ctx context.Context, userID uuid.UUID) ([]models.WalletTransaction, error) {
	txns, err := s.repo.ListTransactionsByUser(ctx, userID, transactionHistoryLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list transactions")
	}
	return txns, nil
}

func (s *service) ListAllTransactions(ctx context.Context, filters TransactionFilters, params pagination.Params) ([]models.WalletTransaction, error) {
	txns, err := s.repo.ListTransactions(ctx, filters, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list transactions")
	}
	return txns, nil
}

func (s *service) OrderTransactions(ctx context.Context, requesterID uuid.UUID, role enums.UserRole, orderID uuid.UUID) ([]models.WalletTransaction, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	if role != enums.UserRoleAdmin && order.UserID != requesterID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	txns, err := s.repo.ListTransactionsByOrder(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list order transactions")
	}
	return txns, nil
}
