package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/craftpress/printshop-backend/internal/cart"
	"github.com/craftpress/printshop-backend/internal/wallet"
	"github.com/craftpress/printshop-backend/pkg/db"
	"github.com/craftpress/printshop-backend/pkg/db/models"
	"github.com/craftpress/printshop-backend/pkg/enums"
	pkgerrors "github.com/craftpress/printshop-backend/pkg/errors"
	"github.com/craftpress/printshop-backend/pkg/pagination"
	"github.com/craftpress/printshop-backend/pkg/types"
)

const defaultPaymentMethod = "wallet"

// Service exposes checkout and order management.
type Service interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, req PlaceOrderRequest) (*models.Order, error)
	Get(ctx context.Context, requesterID uuid.UUID, role enums.UserRole, orderID uuid.UUID) (*models.Order, error)
	List(ctx context.Context, requesterID uuid.UUID, role enums.UserRole, filters Filters, params pagination.Params) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, rawStatus string) (*models.Order, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productFinder interface {
	FindActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

type walletDebiter interface {
	DebitForOrder(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount decimal.Decimal, orderID uuid.UUID, orderNumber string) error
}

type service struct {
	repo     Repository
	tx       txRunner
	products productFinder
	cart     cart.Repository
	wallet   walletDebiter
}

// ServiceParams carries the order service dependencies.
type ServiceParams struct {
	Repo     Repository
	Tx       txRunner
	Products productFinder
	Cart     cart.Repository
	Wallet   walletDebiter
}

// NewService builds the order service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	if params.Cart == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.Wallet == nil {
		return nil, fmt.Errorf("wallet debiter required")
	}
	return &service{
		repo:     params.Repo,
		tx:       params.Tx,
		products: params.Products,
		cart:     params.Cart,
		wallet:   params.Wallet,
	}, nil
}

// checkoutLine is a resolved order line ready to persist.
type checkoutLine struct {
	product        models.Product
	quantity       int
	specifications types.SelectedOptions
}

// PlaceOrder creates the order, settles it against the wallet when the
// payment method is "wallet", and clears the cart, all in one transaction.
// Non-wallet orders commit with payment_status pending and never touch the
// wallet. When the wallet cannot cover the total the order still commits with
// a failed payment so the attempt stays auditable, and the caller gets a
// validation error; the wallet and cart are untouched.
func (s *service) PlaceOrder(ctx context.Context, userID uuid.UUID, req PlaceOrderRequest) (*models.Order, error) {
	lines, err := s.resolveLines(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		lineTotal := line.product.Price.Mul(decimal.NewFromInt(int64(line.quantity))).Round(2)
		items = append(items, models.OrderItem{
			ProductID:      line.product.ID,
			ProductName:    line.product.Name,
			Quantity:       line.quantity,
			Price:          line.product.Price,
			Total:          lineTotal,
			Specifications: line.specifications,
		})
		total = total.Add(lineTotal)
	}
	total = total.Round(2)

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}
	payWithWallet := paymentMethod == defaultPaymentMethod

	// One retry on an order number collision; the window is a single
	// millisecond so a second clash means something is genuinely wrong.
	var placed *models.Order
	var insufficient bool
	for attempt := 0; ; attempt++ {
		number, err := NewOrderNumber()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate order number")
		}

		order := &models.Order{
			OrderNumber:     number,
			UserID:          userID,
			TotalAmount:     total,
			Status:          enums.OrderStatusPending,
			PaymentStatus:   enums.PaymentStatusPending,
			PaymentMethod:   paymentMethod,
			Notes:           req.Notes,
			ShippingAddress: req.ShippingAddress,
			Items:           items,
		}

		insufficient = false
		err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.repo.WithTx(tx)
			if err := repo.Create(ctx, order); err != nil {
				return fmt.Errorf("create order: %w", err)
			}

			if payWithWallet {
				debitErr := s.wallet.DebitForOrder(ctx, tx, userID, total, order.ID, order.OrderNumber)
				switch {
				case errors.Is(debitErr, wallet.ErrInsufficientBalance):
					// Commit the order with a failed payment; no debit, no
					// ledger entry, and the cart keeps its lines.
					insufficient = true
					order.PaymentStatus = enums.PaymentStatusFailed
					return repo.Save(ctx, order)
				case debitErr != nil:
					return fmt.Errorf("settle order: %w", debitErr)
				}

				order.PaymentStatus = enums.PaymentStatusPaid
				if err := repo.Save(ctx, order); err != nil {
					return fmt.Errorf("mark order paid: %w", err)
				}
			}

			// A successful placement always empties the cart, even when
			// the caller supplied explicit items.
			if err := s.cart.WithTx(tx).DeleteByUser(ctx, userID); err != nil {
				return fmt.Errorf("clear cart: %w", err)
			}
			return nil
		})
		if err != nil {
			if attempt == 0 && db.IsUniqueViolation(err, "order_number") {
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "place order")
		}

		placed = order
		break
	}

	if insufficient {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Insufficient wallet balance").
			WithDetails(map[string]any{"order_number": placed.OrderNumber})
	}
	return placed, nil
}

// resolveLines turns the request into priced lines, using the cart when no
// explicit items are given. Unknown or inactive products fail the whole
// request before anything is written.
func (s *service) resolveLines(ctx context.Context, userID uuid.UUID, req PlaceOrderRequest) ([]checkoutLine, error) {
	type rawLine struct {
		productID      uuid.UUID
		quantity       int
		specifications types.SelectedOptions
	}

	var raw []rawLine
	if len(req.Items) == 0 {
		cartItems, err := s.cart.ListByUser(ctx, userID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}
		if len(cartItems) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Cart is empty")
		}
		for _, item := range cartItems {
			raw = append(raw, rawLine{item.ProductID, item.Quantity, item.Specifications})
		}
	} else {
		for _, item := range req.Items {
			if item.Quantity < 1 {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
			}
			raw = append(raw, rawLine{item.ProductID, item.Quantity, item.Specifications})
		}
	}

	ids := make([]uuid.UUID, 0, len(raw))
	seen := map[uuid.UUID]bool{}
	for _, line := range raw {
		if !seen[line.productID] {
			seen[line.productID] = true
			ids = append(ids, line.productID)
		}
	}

	products, err := s.products.FindActiveByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load products")
	}
	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	var missing []string
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "some products are unavailable").
			WithDetails(map[string]any{"missing_product_ids": missing})
	}

	lines := make([]checkoutLine, 0, len(raw))
	for _, line := range raw {
		product := byID[line.productID]
		for name, value := range line.specifications {
			if len(product.Specifications) > 0 && !product.Specifications.Allows(name, value) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "specification not offered for this product").
					WithDetails(map[string]any{"option": name, "value": value})
			}
		}
		lines = append(lines, checkoutLine{product: product, quantity: line.quantity, specifications: line.specifications})
	}
	return lines, nil
}

func (s *service) Get(ctx context.Context, requesterID uuid.UUID, role enums.UserRole, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	if role != enums.UserRoleAdmin && order.UserID != requesterID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, requesterID uuid.UUID, role enums.UserRole, filters Filters, params pagination.Params) ([]models.Order, error) {
	var (
		orders []models.Order
		err    error
	)
	if role == enums.UserRoleAdmin {
		orders, err = s.repo.List(ctx, filters, params)
	} else {
		orders, err = s.repo.ListByUser(ctx, requesterID, filters, params)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return orders, nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, rawStatus string) (*models.Order, error) {
	status, err := enums.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]any{"status": rawStatus})
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, status))
	}

	order.Status = status
	if err := s.repo.Save(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save order")
	}
	return order, nil
}
