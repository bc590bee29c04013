package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/pos-analytics/internal/analytics/types"
	"github.com/angelmondragon/pos-analytics/pkg/enums"
)

const (
	defaultMaxRows = 10000
	// minDeliverySample suppresses neighborhoods with too few deliveries to be meaningful.
	minDeliverySample = 5
)

// Service runs the analytics aggregations against the POS store.
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

type service struct {
	db      *gorm.DB
	dialect dialect
	now     func() time.Time
	maxRows int
}

// Option customizes the query service.
type Option func(*service)

// WithClock overrides the clock used for inactivity cutoffs.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMaxRows caps every list that has no caller-supplied limit.
func WithMaxRows(n int) Option {
	return func(s *service) {
		if n > 0 {
			s.maxRows = n
		}
	}
}

// NewService builds a query service over conn. The SQL dialect follows the
// connection's driver.
func NewService(conn *gorm.DB, opts ...Option) (Service, error) {
	if conn == nil {
		return nil, errors.New("db connection required")
	}
	d, err := dialectFor(conn.Dialector.Name())
	if err != nil {
		return nil, err
	}
	s := &service{
		db:      conn,
		dialect: d,
		now:     func() time.Time { return time.Now().UTC() },
		maxRows: defaultMaxRows,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *service) scan(ctx context.Context, op string, a *aggregate, dest any) error {
	sql, args := a.render()
	if err := s.db.WithContext(ctx).Raw(sql, args...).Scan(dest).Error; err != nil {
		return fmt.Errorf("query %s: %w", op, err)
	}
	return nil
}

// completedSales starts a statement over completed sales matching f.
func (s *service) completedSales(f types.Filters, g grain) *aggregate {
	a := &aggregate{from: "sales s"}
	if g == lineGrain {
		a.from = "product_sales ps"
		a.joins = []string{
			"JOIN sales s ON s.id = ps.sale_id",
			"JOIN products p ON p.id = ps.product_id",
			"LEFT JOIN categories c ON c.id = p.category_id",
		}
	}
	sql, arg := statusIs(enums.SaleStatusCompleted)
	a.where.add(sql, arg)
	applyFilters(&a.where, f, g, s.dialect)
	return a
}
