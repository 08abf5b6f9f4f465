package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/hfchoice/storefront/internal/cart"
	"github.com/hfchoice/storefront/internal/catalog"
	"github.com/hfchoice/storefront/internal/checkout"
	"github.com/hfchoice/storefront/internal/identity"
	"github.com/hfchoice/storefront/internal/observability"
	"github.com/hfchoice/storefront/internal/orders"
	"github.com/hfchoice/storefront/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	Auth            identity.Middleware
	UsersHandler    *users.Handler
	CatalogHandler  *catalog.Handler
	CartHandler     *cart.Handler
	CheckoutHandler *checkout.Handler
	OrdersHandler   *orders.Handler
	Metrics         *observability.Metrics
}

// NewRouter constructs the chi.Router with storefront defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		// Catalog reads serve the anonymous storefront; only its admin
		// mutations run behind bearer verification, applied inside the
		// handler's mutation group.
		r.Route("/item", func(r chi.Router) {
			params.CatalogHandler.MountRoutes(r, params.Auth.Authenticate)
		})

		// Everything else requires a verified caller; role checks come
		// after identity, per route.
		r.Group(func(r chi.Router) {
			r.Use(params.Auth.Authenticate)
			r.Route("/user", params.UsersHandler.MountRoutes)
			r.Route("/cart", params.CartHandler.MountRoutes)
			r.Route("/checkout", params.CheckoutHandler.MountRoutes)
			r.Route("/orders", params.OrdersHandler.MountRoutes)
		})
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
