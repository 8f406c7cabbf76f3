package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/manula2004/bagisto/internal/domain"
	"github.com/manula2004/bagisto/internal/service"
	"github.com/manula2004/bagisto/pkg/health"
	"github.com/manula2004/bagisto/pkg/middleware"
)

// NewRouter creates a chi router with all catalog service routes registered.
func NewRouter(
	catalogService *service.CatalogService,
	searchService *service.SearchService,
	pageSizes []int,
	storeDefaults domain.StoreContext,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("catalog"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	catalogHandler := NewCatalogHandler(catalogService, pageSizes, storeDefaults, logger)
	searchHandler := NewSearchHandler(searchService, storeDefaults, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/{productID}", catalogHandler.GetProduct)
		r.Get("/categories/{categoryIDs}/products", catalogHandler.ListByCategories)

		r.Route("/search", func(r chi.Router) {
			r.Get("/", searchHandler.Search)
			r.Post("/index", searchHandler.IndexProduct)
			r.Post("/index/bulk", searchHandler.BulkIndex)
			r.Delete("/{productID}", searchHandler.DeleteProduct)
		})
	})

	return r
}
