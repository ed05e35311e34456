package wallet

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/craftpress/printshop-backend/pkg/db/models"
	"github.com/craftpress/printshop-backend/pkg/pagination"
)

// Repository manages persistence for wallets and their ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByUser(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)
	CreateIfAbsent(ctx context.Context, userID uuid.UUID) error
	FindByUserForUpdate(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)
	Save(ctx context.Context, wallet *models.Wallet) error
	CreateTransaction(ctx context.Context, txn *models.WalletTransaction) error
	ListTransactionsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.WalletTransaction, error)
	ListTransactions(ctx context.Context, filters TransactionFilters, params pagination.Params) ([]models.WalletTransaction, error)
	ListTransactionsByOrder(ctx context.Context, orderID uuid.UUID) ([]models.WalletTransaction, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a wallet repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByUser(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

// CreateIfAbsent inserts a zero-balance wallet unless one already exists.
// The unique index on user_id makes concurrent callers converge on one row.
func (r *repository) CreateIfAbsent(ctx context.Context, userID uuid.UUID) error {
	wallet := &models.Wallet{UserID: userID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(wallet).Error
}

func (r *repository) FindByUserForUpdate(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	query := r.db.WithContext(ctx)
	// sqlite rejects FOR UPDATE; its single writer already serializes the
	// check-and-debit.
	if r.db.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var wallet models.Wallet
	if err := query.
		Where("user_id = ?", userID).
		First(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (r *repository) Save(ctx context.Context, wallet *models.Wallet) error {
	return r.db.WithContext(ctx).Save(wallet).Error
}

func (r *repository) CreateTransaction(ctx context.Context, txn *models.WalletTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *repository) ListTransactionsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.WalletTransaction, error) {
	var txns []models.WalletTransaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *repository) ListTransactions(ctx context.Context, filters TransactionFilters, params pagination.Params) ([]models.WalletTransaction, error) {
	params = pagination.Normalize(params)

	query := r.db.WithContext(ctx).Model(&models.WalletTransaction{})
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.StartDate != nil {
		query = query.Where("created_at >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("created_at <= ?", *filters.EndDate)
	}

	var txns []models.WalletTransaction
	if err := query.
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *repository) ListTransactionsByOrder(ctx context.Context, orderID uuid.UUID) ([]models.WalletTransaction, error) {
	var txns []models.WalletTransaction
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}
