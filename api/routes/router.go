package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/craftpress/printshop-backend/api/controllers"
	"github.com/craftpress/printshop-backend/api/middleware"
	"github.com/craftpress/printshop-backend/internal/auth"
	"github.com/craftpress/printshop-backend/internal/cart"
	"github.com/craftpress/printshop-backend/internal/catalog"
	"github.com/craftpress/printshop-backend/internal/complaints"
	"github.com/craftpress/printshop-backend/internal/dashboard"
	"github.com/craftpress/printshop-backend/internal/orders"
	"github.com/craftpress/printshop-backend/internal/wallet"
	"github.com/craftpress/printshop-backend/pkg/auth/session"
	"github.com/craftpress/printshop-backend/pkg/config"
	"github.com/craftpress/printshop-backend/pkg/db"
	"github.com/craftpress/printshop-backend/pkg/enums"
	"github.com/craftpress/printshop-backend/pkg/logger"
	"github.com/craftpress/printshop-backend/pkg/metrics"
	"github.com/craftpress/printshop-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *db.Client
	Redis       *redis.Client
	Sessions    session.AccessSessionChecker
	Registry    *prometheus.Registry
	HTTPMetrics *metrics.HTTPMetrics

	Auth       auth.Service
	Catalog    catalog.Service
	Cart       cart.Service
	Orders     orders.Service
	Wallet     wallet.Service
	Complaints complaints.Service
	Dashboard  dashboard.Service
}

// NewRouter assembles the full HTTP surface.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.CORS(),
	)
	if deps.HTTPMetrics != nil {
		r.Use(deps.HTTPMetrics.Middleware)
	}

	r.Get("/health", controllers.Health(deps.DB, deps.Redis, deps.Logger))
	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	authed := middleware.Auth(deps.Config.JWT, deps.Sessions, deps.Logger)
	adminOnly := middleware.RequireRole(enums.UserRoleAdmin.String(), deps.Logger)
	customerOnly := middleware.RequireRole(enums.UserRoleCustomer.String(), deps.Logger)
	// Idempotency keys are scoped per user, so the middleware must run after
	// Auth has seeded the request context.
	idempotent := middleware.Idempotency(deps.Redis, deps.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", controllers.Register(deps.Auth, deps.Logger))
			r.Post("/login", controllers.Login(deps.Auth, deps.Logger))
			r.With(authed).Post("/logout", controllers.Logout(deps.Auth, deps.Logger))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Catalog, deps.Logger))
			r.Get("/{productID}", controllers.GetProduct(deps.Catalog, deps.Logger))

			r.Group(func(r chi.Router) {
				r.Use(authed, adminOnly)
				r.Post("/", controllers.CreateProduct(deps.Catalog, deps.Logger))
				r.Put("/{productID}", controllers.UpdateProduct(deps.Catalog, deps.Logger))
				r.Delete("/{productID}", controllers.DeleteProduct(deps.Catalog, deps.Logger))
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoryTree(deps.Catalog, deps.Logger))
			r.Get("/{categoryID}", controllers.GetCategory(deps.Catalog, deps.Logger))

			r.Group(func(r chi.Router) {
				r.Use(authed, adminOnly)
				r.Post("/", controllers.CreateCategory(deps.Catalog, deps.Logger))
				r.Put("/{categoryID}", controllers.UpdateCategory(deps.Catalog, deps.Logger))
				r.Delete("/{categoryID}", controllers.DeleteCategory(deps.Catalog, deps.Logger))
			})
		})

		r.Route("/pricing", func(r chi.Router) {
			r.Get("/", controllers.PriceList(deps.Catalog, deps.Logger))
			r.With(authed, adminOnly).Put("/{productID}", controllers.UpdatePrice(deps.Catalog, deps.Logger))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(authed)
			r.Get("/", controllers.GetCart(deps.Cart, deps.Logger))
			r.With(idempotent).Post("/", controllers.AddCartItem(deps.Cart, deps.Logger))
			r.Put("/{itemID}", controllers.UpdateCartItem(deps.Cart, deps.Logger))
			r.Delete("/{itemID}", controllers.RemoveCartItem(deps.Cart, deps.Logger))
			r.Delete("/", controllers.ClearCart(deps.Cart, deps.Logger))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(authed)
			r.With(customerOnly, idempotent).Post("/", controllers.PlaceOrder(deps.Orders, deps.Logger))
			r.Get("/", controllers.ListOrders(deps.Orders, deps.Logger))
			r.Get("/{orderID}", controllers.GetOrder(deps.Orders, deps.Logger))
			r.With(adminOnly).Put("/{orderID}/status", controllers.UpdateOrderStatus(deps.Orders, deps.Logger))
		})

		r.Route("/wallet", func(r chi.Router) {
			r.Use(authed, customerOnly)
			r.Get("/", controllers.GetWallet(deps.Wallet, deps.Logger))
			r.With(idempotent).Post("/add-money", controllers.AddMoney(deps.Wallet, deps.Logger))
			r.Get("/transactions", controllers.ListWalletTransactions(deps.Wallet, deps.Logger))
		})

		r.With(authed).Get("/transactions/order/{orderID}", controllers.OrderTransactions(deps.Wallet, deps.Logger))

		r.Route("/complaints", func(r chi.Router) {
			r.Use(authed)
			r.With(idempotent).Post("/", controllers.CreateComplaint(deps.Complaints, deps.Logger))
			r.Get("/", controllers.ListComplaints(deps.Complaints, deps.Logger))
			r.Get("/{complaintID}", controllers.GetComplaint(deps.Complaints, deps.Logger))
			r.With(adminOnly).Put("/{complaintID}/status", controllers.UpdateComplaintStatus(deps.Complaints, deps.Logger))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authed, adminOnly)
			r.Get("/dashboard", controllers.DashboardOverview(deps.Dashboard, deps.Logger))
			r.Get("/customers", controllers.ListCustomers(deps.Dashboard, deps.Logger))
			r.Get("/customers/{customerID}", controllers.GetCustomer(deps.Dashboard, deps.Logger))
			r.Get("/transactions", controllers.AdminListTransactions(deps.Wallet, deps.Logger))
		})
	})

	return r
}
