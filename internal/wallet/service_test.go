package wallet

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/craftpress/printshop-backend/pkg/db/models"
	"github.com/craftpress/printshop-backend/pkg/enums"
	pkgerrors "github.com/craftpress/printshop-backend/pkg/errors"
	"github.com/craftpress/printshop-backend/pkg/pagination"
)

type stubWalletRepo struct {
	wallets map[uuid.UUID]*models.Wallet
	txns    []models.WalletTransaction
}

func newStubWalletRepo() *stubWalletRepo {
	return &stubWalletRepo{wallets: map[uuid.UUID]*models.Wallet{}}
}

func (s *stubWalletRepo) WithTx(*gorm.DB) Repository { return s }

func (s *stubWalletRepo) FindByUser(_ context.Context, userID uuid.UUID) (*models.Wallet, error) {
	if wallet, ok := s.wallets[userID]; ok {
		copied := *wallet
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubWalletRepo) CreateIfAbsent(_ context.Context, userID uuid.UUID) error {
	if _, ok := s.wallets[userID]; !ok {
		s.wallets[userID] = &models.Wallet{ID: uuid.New(), UserID: userID, Balance: decimal.Zero}
	}
	return nil
}

func (s *stubWalletRepo) FindByUserForUpdate(_ context.Context, userID uuid.UUID) (*models.Wallet, error) {
	if wallet, ok := s.wallets[userID]; ok {
		copied := *wallet
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubWalletRepo) Save(_ context.Context, wallet *models.Wallet) error {
	s.wallets[wallet.UserID] = wallet
	return nil
}

func (s *stubWalletRepo) CreateTransaction(_ context.Context, txn *models.WalletTransaction) error {
	txn.ID = uuid.New()
	s.txns = append(s.txns, *txn)
	return nil
}

func (s *stubWalletRepo) ListTransactionsByUser(_ context.Context, userID uuid.UUID, limit int) ([]models.WalletTransaction, error) {
	var out []models.WalletTransaction
	for i := len(s.txns) - 1; i >= 0 && len(out) < limit; i-- {
		if s.txns[i].UserID == userID {
			out = append(out, s.txns[i])
		}
	}
	return out, nil
}

func (s *stubWalletRepo) ListTransactions(_ context.Context, filters TransactionFilters, _ pagination.Params) ([]models.WalletTransaction, error) {
	var out []models.WalletTransaction
	for _, txn := range s.txns {
		if filters.Type != nil && txn.Type != *filters.Type {
			continue
		}
		out = append(out, txn)
	}
	return out, nil
}

func (s *stubWalletRepo) ListTransactionsByOrder(_ context.Context, orderID uuid.UUID) ([]models.WalletTransaction, error) {
	var out []models.WalletTransaction
	for _, txn := range s.txns {
		if txn.OrderID != nil && *txn.OrderID == orderID {
			out = append(out, txn)
		}
	}
	return out, nil
}

type passthroughTx struct{}

func (passthroughTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubOrderLoader struct {
	orders map[uuid.UUID]*models.Order
}

func (s *stubOrderLoader) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	if order, ok := s.orders[id]; ok {
		return order, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newWalletFixture(t *testing.T) (Service, *stubWalletRepo, *stubOrderLoader) {
	t.Helper()
	repo := newStubWalletRepo()
	orders := &stubOrderLoader{orders: map[uuid.UUID]*models.Order{}}
	svc, err := NewService(ServiceParams{Repo: repo, Tx: passthroughTx{}, Orders: orders})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo, orders
}

func TestGetCreatesWalletOnFirstUse(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newWalletFixture(t)
	userID := uuid.New()

	wallet, err := svc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	if !wallet.Balance.IsZero() {
		t.Fatalf("expected zero balance, got %s", wallet.Balance)
	}
	if len(repo.wallets) != 1 {
		t.Fatalf("expected one wallet stored, got %d", len(repo.wallets))
	}

	again, err := svc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if again.ID != wallet.ID {
		t.Fatal("expected the same wallet on repeat calls")
	}
}

func TestAddMoneyCreditsAndRecordsLedger(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newWalletFixture(t)
	userID := uuid.New()

	resp, err := svc.AddMoney(context.Background(), userID, AddMoneyRequest{
		Amount:        decimal.NewFromInt(500),
		PaymentMethod: "card",
	})
	if err != nil {
		t.Fatalf("add money: %v", err)
	}

	if !resp.Wallet.Balance.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected balance 500, got %s", resp.Wallet.Balance)
	}
	if len(repo.txns) != 1 {
		t.Fatalf("expected one ledger entry, got %d", len(repo.txns))
	}
	entry := repo.txns[0]
	if entry.Type != enums.TransactionTypeCredit {
		t.Fatalf("expected credit entry, got %s", entry.Type)
	}
	if entry.Description != "Wallet top-up via card" {
		t.Fatalf("unexpected description %q", entry.Description)
	}
	if !strings.HasPrefix(resp.Payment.TransactionID, "TXN") {
		t.Fatalf("unexpected payment reference %q", resp.Payment.TransactionID)
	}
	if resp.Payment.Status != "completed" {
		t.Fatalf("expected completed card payment, got %q", resp.Payment.Status)
	}
}

func TestAddMoneyUPIStaysPending(t *testing.T) {
	t.Parallel()

	svc, _, _ := newWalletFixture(t)

	resp, err := svc.AddMoney(context.Background(), uuid.New(), AddMoneyRequest{
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: "upi",
	})
	if err != nil {
		t.Fatalf("add money: %v", err)
	}
	if resp.Payment.Status != "pending" {
		t.Fatalf("expected pending UPI payment, got %q", resp.Payment.Status)
	}
	if resp.Payment.UPIID == "" {
		t.Fatal("expected a collection UPI id")
	}
}

func TestAddMoneyRejectsAmountBelowOne(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newWalletFixture(t)

	_, err := svc.AddMoney(context.Background(), uuid.New(), AddMoneyRequest{
		Amount:        decimal.NewFromFloat(0.5),
		PaymentMethod: "card",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.txns) != 0 {
		t.Fatal("expected no ledger entry on rejection")
	}
}

func TestDebitForOrderDecrementsAndAppendsLedger(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newWalletFixture(t)
	userID := uuid.New()
	orderID := uuid.New()

	if _, err := svc.AddMoney(context.Background(), userID, AddMoneyRequest{
		Amount:        decimal.NewFromInt(1000),
		PaymentMethod: "card",
	}); err != nil {
		t.Fatalf("seed balance: %v", err)
	}

	if err := svc.DebitForOrder(context.Background(), nil, userID, decimal.NewFromInt(650), orderID, "ORD-1-ABCDEFGHI"); err != nil {
		t.Fatalf("debit: %v", err)
	}

	if !repo.wallets[userID].Balance.Equal(decimal.NewFromInt(350)) {
		t.Fatalf("expected balance 350, got %s", repo.wallets[userID].Balance)
	}

	var debit *models.WalletTransaction
	for i := range repo.txns {
		if repo.txns[i].Type == enums.TransactionTypeDebit {
			debit = &repo.txns[i]
		}
	}
	if debit == nil {
		t.Fatal("expected a debit ledger entry")
	}
	if debit.OrderID == nil || *debit.OrderID != orderID {
		t.Fatal("expected the debit to reference the order")
	}
	if debit.Description != "Payment for order ORD-1-ABCDEFGHI" {
		t.Fatalf("unexpected description %q", debit.Description)
	}
}

func TestDebitForOrderInsufficientBalance(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newWalletFixture(t)
	userID := uuid.New()

	if _, err := svc.AddMoney(context.Background(), userID, AddMoneyRequest{
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: "card",
	}); err != nil {
		t.Fatalf("seed balance: %v", err)
	}

	err := svc.DebitForOrder(context.Background(), nil, userID, decimal.NewFromInt(500), uuid.New(), "ORD-1-ABCDEFGHI")
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance, got %v", err)
	}

	if !repo.wallets[userID].Balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected balance untouched, got %s", repo.wallets[userID].Balance)
	}
	if len(repo.txns) != 1 {
		t.Fatalf("expected only the top-up entry, got %d", len(repo.txns))
	}
}

func TestOrderTransactionsEnforcesOwnership(t *testing.T) {
	t.Parallel()

	svc, repo, orders := newWalletFixture(t)
	owner := uuid.New()
	orderID := uuid.New()
	orders.orders[orderID] = &models.Order{ID: orderID, UserID: owner}
	repo.txns = append(repo.txns, models.WalletTransaction{
		ID:      uuid.New(),
		UserID:  owner,
		OrderID: &orderID,
		Type:    enums.TransactionTypeDebit,
		Amount:  decimal.NewFromInt(200),
	})

	if _, err := svc.OrderTransactions(context.Background(), owner, enums.UserRoleCustomer, orderID); err != nil {
		t.Fatalf("owner lookup: %v", err)
	}

	_, err := svc.OrderTransactions(context.Background(), uuid.New(), enums.UserRoleCustomer, orderID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign order, got %v", err)
	}

	txns, err := svc.OrderTransactions(context.Background(), uuid.New(), enums.UserRoleAdmin, orderID)
	if err != nil {
		t.Fatalf("admin lookup: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("expected one entry, got %d", len(txns))
	}
}
