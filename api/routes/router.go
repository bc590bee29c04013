package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/pos-analytics/api/controllers"
	analyticscontrollers "github.com/angelmondragon/pos-analytics/api/controllers/analytics"
	"github.com/angelmondragon/pos-analytics/api/middleware"
	"github.com/angelmondragon/pos-analytics/api/responses"
	"github.com/angelmondragon/pos-analytics/internal/analytics"
	"github.com/angelmondragon/pos-analytics/internal/catalog"
	"github.com/angelmondragon/pos-analytics/pkg/config"
	pkgerrors "github.com/angelmondragon/pos-analytics/pkg/errors"
	"github.com/angelmondragon/pos-analytics/pkg/logger"
	"github.com/angelmondragon/pos-analytics/pkg/metrics"
)

// Deps are the collaborators the router mounts. Redis is nil when the cache
// is disabled; Metrics and Gatherer are optional.
type Deps struct {
	Config    *config.Config
	Logger    *logger.Logger
	DB        controllers.Pinger
	Redis     controllers.Pinger
	Analytics analytics.Service
	Catalog   catalog.Service
	Metrics   *metrics.HTTPMetrics
	Gatherer  prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg, logg := deps.Config, deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.SecureHeaders(cfg.App.IsProd()),
		middleware.CORS(cfg.HTTP.CORSOrigins),
	)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found").
			WithDetails(map[string]string{"method": r.Method}))
	})

	r.Get("/", controllers.Root(cfg))
	r.Route("/health", func(r chi.Router) {
		r.Get("/", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": deps.DB,
			"redis":    deps.Redis,
		}))
	})
	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route(cfg.App.APIPrefix, func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.HTTP.RateLimitPerMinute, logg))
		r.Use(chimw.Timeout(cfg.HTTP.WriteTimeout))

		r.Route("/analytics", func(r chi.Router) {
			svc := deps.Analytics
			r.Get("/overview", analyticscontrollers.SalesOverview(svc, logg))
			r.Get("/products/ranking", analyticscontrollers.ProductRanking(svc, logg))
			r.Get("/products/margin", analyticscontrollers.ProductMargin(svc, logg))
			r.Get("/channels/performance", analyticscontrollers.ChannelPerformance(svc, logg))
			r.Get("/stores/performance", analyticscontrollers.StorePerformance(svc, logg))
			r.Get("/timeseries", analyticscontrollers.TimeSeries(svc, logg))
			r.Get("/customers/retention", analyticscontrollers.CustomerRetention(svc, logg))
			r.Get("/delivery/performance", analyticscontrollers.DeliveryPerformance(svc, logg))
			r.Get("/delivery/timing", analyticscontrollers.DeliveryTiming(svc, logg))
			r.Get("/hourly/performance", analyticscontrollers.HourlyPerformance(svc, logg))
			r.Get("/ticket-trend", analyticscontrollers.TicketTrend(svc, logg))
		})

		r.Get("/metadata", controllers.Metadata(deps.Catalog, logg))
		r.Get("/stores", controllers.ListStores(deps.Catalog, logg))
		r.Get("/channels", controllers.ListChannels(deps.Catalog, logg))
		r.Get("/categories", controllers.ListCategories(deps.Catalog, logg))
		r.Get("/products", controllers.ListProducts(deps.Catalog, logg, cfg.Query.MaxResults))
	})

	return r
}
