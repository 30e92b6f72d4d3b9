package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/shahzada-shah/flow-studios/api/controllers"
	"github.com/shahzada-shah/flow-studios/api/middleware"
	"github.com/shahzada-shah/flow-studios/internal/cart"
	"github.com/shahzada-shah/flow-studios/internal/catalog"
	"github.com/shahzada-shah/flow-studios/internal/checkout"
	"github.com/shahzada-shah/flow-studios/internal/wishlist"
	"github.com/shahzada-shah/flow-studios/pkg/config"
	"github.com/shahzada-shah/flow-studios/pkg/kv"
	"github.com/shahzada-shah/flow-studios/pkg/logger"
	"github.com/shahzada-shah/flow-studios/pkg/metrics"
)

// StateBackend is the session state store shared by the cart, wishlist,
// rate limiter and idempotency guard.
type StateBackend interface {
	kv.Store
	kv.Counter
	kv.IdempotencyStore
}

// Deps lists everything the router hands to controllers. Nil health checks
// are left out of the readiness check.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	State    StateBackend
	Gatherer prometheus.Gatherer
	Health   map[string]controllers.Pinger

	Catalog  catalog.Service
	Cart     cart.Service
	Wishlist wishlist.Service
	Checkout checkout.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	sessionPolicy := middleware.NewRateLimitPolicy(
		"session",
		cfg.RateLimit.SessionWindow,
		cfg.RateLimit.SessionIPLimit,
	)
	idempotent := middleware.Idempotency(deps.State, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Health))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.With(middleware.RateLimit(sessionPolicy, deps.State, logg)).Post("/sessions", controllers.SessionCreate(cfg.Session, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.Catalog, logg))
			r.Get("/facets", controllers.ProductFacets(deps.Catalog, logg))
			r.Get("/bestsellers", controllers.ProductBestsellers(deps.Catalog, logg))
			r.Get("/{idOrSlug}", controllers.ProductDetail(deps.Catalog, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(cfg.Session, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.Cart, logg))
				r.Delete("/", controllers.CartClear(deps.Cart, logg))
				r.With(idempotent).Post("/items", controllers.CartAddItem(deps.Cart, logg))
				r.Patch("/items/{productId}/{size}", controllers.CartUpdateItem(deps.Cart, logg))
				r.Delete("/items/{productId}/{size}", controllers.CartRemoveItem(deps.Cart, logg))
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.WishlistFetch(deps.Wishlist, logg))
				r.Get("/ids", controllers.WishlistIDs(deps.Wishlist, logg))
				r.Delete("/", controllers.WishlistClear(deps.Wishlist, logg))
				r.With(idempotent).Post("/toggle", controllers.WishlistToggle(deps.Wishlist, logg))
				r.Delete("/{productId}", controllers.WishlistRemove(deps.Wishlist, logg))
			})

			r.Post("/checkout/quote", controllers.CheckoutQuote(deps.Checkout, logg))
		})
	})

	return r
}
