package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/horizonte/storefront/internal/domain"
	"github.com/horizonte/storefront/internal/service"
	"github.com/horizonte/storefront/pkg/health"
	"github.com/horizonte/storefront/pkg/middleware"
)

// serviceName labels metrics and spans emitted by the router.
const serviceName = "storefront"

// Services bundles the business services behind the API.
type Services struct {
	Catalog  *service.CatalogService
	Cart     *service.CartService
	Checkout *service.CheckoutService
}

// Options tunes the router.
type Options struct {
	CORS       middleware.CORSConfig
	PprofCIDRs []string
	// AdminToken guards /api/admin. Empty leaves it open.
	AdminToken string
	// CatalogMaxAge is the Cache-Control max-age for catalog reads, in seconds.
	CatalogMaxAge int
	// WriteRPS and WriteBurst throttle checkout and admin writes per client.
	// A zero WriteRPS disables the limit.
	WriteRPS   float64
	WriteBurst int
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	svcs Services,
	healthHandler *health.Handler,
	logger *slog.Logger,
	opts Options,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(opts.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.CartScope(domain.DefaultCartID))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, opts.PprofCIDRs, logger)

	catalogHandler := NewCatalogHandler(svcs.Catalog, logger)
	cartHandler := NewCartHandler(svcs.Cart, logger)
	checkoutHandler := NewCheckoutHandler(svcs.Checkout, logger)
	adminHandler := NewAdminHandler(svcs.Catalog, logger)
	throttle := middleware.RateLimit(opts.WriteRPS, opts.WriteBurst, logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(opts.CatalogMaxAge))

			r.Get("/categories", catalogHandler.ListCategories)
			r.Get("/products", catalogHandler.ListProducts)
			r.Get("/products/{id}", catalogHandler.GetProduct)
			r.Get("/sizes", catalogHandler.ListSizes)
		})
		r.Post("/products/{id}/quote", catalogHandler.Quote)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/", cartHandler.AddItem)
			r.Delete("/", cartHandler.ClearCart)
			r.Delete("/{id}", cartHandler.RemoveItem)
		})

		r.With(throttle).Post("/checkout", checkoutHandler.PlaceOrder)
		r.Get("/checkout/preview", checkoutHandler.Preview)

		r.Route("/admin", func(r chi.Router) {
			r.Use(throttle)
			r.Use(middleware.AdminToken(opts.AdminToken, logger))

			r.Post("/categories", adminHandler.CreateCategory)
			r.Post("/products", adminHandler.CreateProduct)
			r.Put("/products/{id}", adminHandler.UpdateProduct)
			r.Delete("/products/{id}", adminHandler.DeleteProduct)
		})
	})

	return r
}
