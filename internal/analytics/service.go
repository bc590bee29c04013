package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/pos-analytics/internal/analytics/query"
	"github.com/angelmondragon/pos-analytics/internal/analytics/types"
	"github.com/angelmondragon/pos-analytics/pkg/db"
	"github.com/angelmondragon/pos-analytics/pkg/enums"
	pkgerrors "github.com/angelmondragon/pos-analytics/pkg/errors"
	"github.com/angelmondragon/pos-analytics/pkg/logger"
	"github.com/angelmondragon/pos-analytics/pkg/metrics"
)

// Endpoint names label cache keys, metrics and log entries.
const (
	EndpointOverview       = "sales_overview"
	EndpointProductRanking = "product_ranking"
	EndpointChannels       = "channel_performance"
	EndpointStores         = "store_performance"
	EndpointTimeSeries     = "time_series"
	EndpointRetention      = "customer_retention"
	EndpointDelivery       = "delivery_performance"
	EndpointHourly         = "hourly_performance"
	EndpointProductMargin  = "product_margin"
	EndpointTicketTrend    = "ticket_trend"
	EndpointDeliveryTiming = "delivery_timing"
)

const defaultQueryTimeout = 30 * time.Second

// Service serves analytics reports over the POS store, with caching and a
// bounded query time per call. Errors are *pkgerrors.Error values.
type Service interface {
	SalesOverview(ctx context.Context, f types.Filters) (*types.SalesOverview, error)
	ProductRanking(ctx context.Context, f types.Filters, limit int) (*types.ProductRankingResponse, error)
	ChannelPerformance(ctx context.Context, f types.Filters) (*types.ChannelPerformanceResponse, error)
	StorePerformance(ctx context.Context, f types.Filters) (*types.StorePerformanceResponse, error)
	TimeSeries(ctx context.Context, f types.Filters, period enums.Period) (*types.TimeSeriesResponse, error)
	CustomerRetention(ctx context.Context, f types.Filters, params types.RetentionParams) (*types.CustomerRetentionResponse, error)
	DeliveryPerformance(ctx context.Context, f types.Filters) (*types.DeliveryPerformanceResponse, error)
	HourlyPerformance(ctx context.Context, f types.Filters, dayOfWeek *int) (*types.HourlyPerformanceResponse, error)
	ProductMargin(ctx context.Context, f types.Filters, params types.MarginParams) (*types.ProductMarginResponse, error)
	TicketTrend(ctx context.Context, f types.Filters, params types.TicketTrendParams) (*types.TicketTrendResponse, error)
	DeliveryTiming(ctx context.Context, f types.Filters) (*types.DeliveryTimingResponse, error)
}

// Deps wires the analytics service.
type Deps struct {
	Store   query.Service
	Cache   *Cache
	Metrics *metrics.AnalyticsMetrics
	Logger  *logger.Logger
	Timeout time.Duration
}

type service struct {
	store   query.Service
	cache   *Cache
	metrics *metrics.AnalyticsMetrics
	logg    *logger.Logger
	timeout time.Duration
}

// NewService builds the analytics service. Cache and Metrics are optional.
func NewService(deps Deps) (Service, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("analytics store required")
	}
	logg := deps.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	timeout := deps.Timeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &service{
		store:   deps.Store,
		cache:   deps.Cache,
		metrics: deps.Metrics,
		logg:    logg,
		timeout: timeout,
	}, nil
}

// run serves one report: cache first, then the store under the query
// timeout. Store errors come back classified.
func run[T any](ctx context.Context, s *service, endpoint string, params any, load func(context.Context) (*T, error)) (*T, error) {
	ctx = s.logg.WithEndpoint(ctx, endpoint)
	out, err := fetch(ctx, s.cache, endpoint, params, func(ctx context.Context) (*T, error) {
		qctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		start := time.Now()
		value, err := load(qctx)
		s.metrics.ObserveQuery(endpoint, time.Since(start), err)
		return value, err
	})
	if err != nil {
		return nil, s.classify(ctx, err)
	}
	return out, nil
}

func (s *service) classify(ctx context.Context, err error) error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	if errors.Is(err, context.Canceled) {
		s.logg.Warn(ctx, "analytics request cancelled")
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "request cancelled")
	}
	if db.IsUnavailable(err) {
		s.logg.Error(ctx, "analytics store unavailable", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "analytics store unavailable").
			WithDetails(map[string]any{"timeout_seconds": s.timeout.Seconds()})
	}
	s.logg.Error(ctx, "analytics query failed", err)
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "analytics query failed")
}

// cacheParams is what identifies a cached response: the normalized filters
// plus the endpoint's own arguments.
type cacheParams struct {
	Filters types.Filters `json:"filters"`
	Args    any           `json:"args,omitempty"`
}

func (s *service) SalesOverview(ctx context.Context, f types.Filters) (*types.SalesOverview, error) {
	f = f.Normalize()
	return run(ctx, s, EndpointOverview, cacheParams{Filters: f}, func(ctx context.Context) (*types.SalesOverview, error) {
		return s.store.SalesOverview(ctx, f)
	})
}

func (s *service) ProductRanking(ctx context.Context, f types.Filters, limit int) (*types.ProductRankingResponse, error) {
	if limit <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "limit must be positive")
	}
	f = f.Normalize()
	return run(ctx, s, EndpointProductRanking, cacheParams{Filters: f, Args: limit}, func(ctx context.Context) (*types.ProductRankingResponse, error) {
		return s.store.ProductRanking(ctx, f, limit)
	})
}

func (s *service) ChannelPerformance(ctx context.Context, f types.Filters) (*types.ChannelPerformanceResponse, error) {
	f = f.Normalize()
	return run(ctx, s, EndpointChannels, cacheParams{Filters: f}, func(ctx context.Context) (*types.ChannelPerformanceResponse, error) {
		return s.store.ChannelPerformance(ctx, f)
	})
}

func (s *service) StorePerformance(ctx context.Context, f types.Filters) (*types.StorePerformanceResponse, error) {
	f = f.Normalize()
	return run(ctx, s, EndpointStores, cacheParams{Filters: f}, func(ctx context.Context) (*types.StorePerformanceResponse, error) {
		return s.store.StorePerformance(ctx, f)
	})
}

func (s *service) TimeSeries(ctx context.Context, f types.Filters, period enums.Period) (*types.TimeSeriesResponse, error) {
	if !period.IsValid() {
		return nil, invalidParam("period", string(period))
	}
	f = f.Normalize()
	return run(ctx, s, EndpointTimeSeries, cacheParams{Filters: f, Args: period}, func(ctx context.Context) (*types.TimeSeriesResponse, error) {
		return s.store.TimeSeries(ctx, f, period)
	})
}

func (s *service) CustomerRetention(ctx context.Context, f types.Filters, params types.RetentionParams) (*types.CustomerRetentionResponse, error) {
	if params.MinOrders < 1 || params.DaysInactive < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "min_orders and days_inactive must be at least 1")
	}
	f = f.Normalize()
	return run(ctx, s, EndpointRetention, cacheParams{Filters: f, Args: params}, func(ctx context.Context) (*types.CustomerRetentionResponse, error) {
		return s.store.CustomerRetention(ctx, f, params)
	})
}

func (s *service) DeliveryPerformance(ctx context.Context, f types.Filters) (*types.DeliveryPerformanceResponse, error) {
	f = f.Normalize()
	return run(ctx, s, EndpointDelivery, cacheParams{Filters: f}, func(ctx context.Context) (*types.DeliveryPerformanceResponse, error) {
		return s.store.DeliveryPerformance(ctx, f)
	})
}

func (s *service) HourlyPerformance(ctx context.Context, f types.Filters, dayOfWeek *int) (*types.HourlyPerformanceResponse, error) {
	if dayOfWeek != nil && (*dayOfWeek < 0 || *dayOfWeek > 6) {
		return nil, invalidParam("day_of_week", fmt.Sprint(*dayOfWeek))
	}
	f = f.Normalize()
	return run(ctx, s, EndpointHourly, cacheParams{Filters: f, Args: dayOfWeek}, func(ctx context.Context) (*types.HourlyPerformanceResponse, error) {
		return s.store.HourlyPerformance(ctx, f, dayOfWeek)
	})
}

func (s *service) ProductMargin(ctx context.Context, f types.Filters, params types.MarginParams) (*types.ProductMarginResponse, error) {
	if params.Limit <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "limit must be positive")
	}
	if params.Sort == "" {
		params.Sort = enums.MarginSortRevenue
	}
	if !params.Sort.IsValid() {
		return nil, invalidParam("sort", string(params.Sort))
	}
	f = f.Normalize()
	return run(ctx, s, EndpointProductMargin, cacheParams{Filters: f, Args: params}, func(ctx context.Context) (*types.ProductMarginResponse, error) {
		return s.store.ProductMargin(ctx, f, params)
	})
}

func (s *service) TicketTrend(ctx context.Context, f types.Filters, params types.TicketTrendParams) (*types.TicketTrendResponse, error) {
	if !params.Period.IsValid() {
		return nil, invalidParam("period", string(params.Period))
	}
	if !params.GroupBy.IsValid() {
		return nil, invalidParam("group_by", string(params.GroupBy))
	}
	f = f.Normalize()
	return run(ctx, s, EndpointTicketTrend, cacheParams{Filters: f, Args: params}, func(ctx context.Context) (*types.TicketTrendResponse, error) {
		return s.store.TicketTrend(ctx, f, params)
	})
}

func (s *service) DeliveryTiming(ctx context.Context, f types.Filters) (*types.DeliveryTimingResponse, error) {
	f = f.Normalize()
	return run(ctx, s, EndpointDeliveryTiming, cacheParams{Filters: f}, func(ctx context.Context) (*types.DeliveryTimingResponse, error) {
		return s.store.DeliveryTiming(ctx, f)
	})
}

func invalidParam(name, value string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid %s", name)).
		WithDetails(map[string]string{name: value})
}
