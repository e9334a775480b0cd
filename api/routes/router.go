package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jiaotianpharma/warehouse-backend/api/controllers"
	"github.com/jiaotianpharma/warehouse-backend/api/middleware"
	"github.com/jiaotianpharma/warehouse-backend/internal/auditlog"
	inventorysvc "github.com/jiaotianpharma/warehouse-backend/internal/inventory"
	"github.com/jiaotianpharma/warehouse-backend/pkg/config"
	"github.com/jiaotianpharma/warehouse-backend/pkg/db"
	"github.com/jiaotianpharma/warehouse-backend/pkg/logger"
	"github.com/jiaotianpharma/warehouse-backend/pkg/metrics"
)

// NewRouter assembles the HTTP surface of the warehouse store.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	inventoryService inventorysvc.Service,
	auditService auditlog.Service,
	httpMetrics *metrics.HTTPMetrics,
	metricsGatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
		middleware.Actor(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if metricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.InventoryList(inventoryService, logg))
			r.Post("/", controllers.InventoryCreate(inventoryService, logg))
			r.Post("/{id}/stock", controllers.InventoryAdjustStock(inventoryService, logg))
			r.Get("/trace/{batchNumber}", controllers.InventoryTrace(inventoryService, logg))
		})

		r.Get("/security-logs", controllers.SecurityLogList(auditService, logg))
	})

	return r
}
