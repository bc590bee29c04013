package query

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/pos-analytics/internal/analytics/types"
)

type revenueTotalRow struct {
	TotalRevenue decimal.NullDecimal
}

type channelRow struct {
	ChannelID     int64
	ChannelName   string
	ChannelType   *string
	TotalSales    sql.NullInt64
	TotalRevenue  decimal.NullDecimal
	AverageTicket decimal.NullDecimal
}

type storeRow struct {
	StoreID       int64
	StoreName     string
	City          *string
	State         *string
	TotalSales    sql.NullInt64
	TotalRevenue  decimal.NullDecimal
	AverageTicket decimal.NullDecimal
}

// revenueShare runs the grouped statement and the filtered revenue total side
// by side. Both see the same filter, so shares are relative to exactly the
// sales the groups were built from.
func (s *service) revenueShare(ctx context.Context, op string, f types.Filters, grouped *aggregate, dest any) (decimal.Decimal, error) {
	total := s.completedSales(f, saleGrain)
	total.sel("SUM(s.total_amount) AS total_revenue")

	var totalRow revenueTotalRow
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.scan(gctx, op+" total", total, &totalRow)
	})
	g.Go(func() error {
		return s.scan(gctx, op, grouped, dest)
	})
	if err := g.Wait(); err != nil {
		return decimal.Zero, err
	}
	return num(totalRow.TotalRevenue), nil
}

// ChannelPerformance breaks completed revenue down by sales channel.
func (s *service) ChannelPerformance(ctx context.Context, f types.Filters) (*types.ChannelPerformanceResponse, error) {
	a := s.completedSales(f, saleGrain)
	a.joins = append(a.joins, "JOIN channels ch ON ch.id = s.channel_id")
	a.sel("ch.id AS channel_id").
		sel("ch.name AS channel_name").
		sel("ch.type AS channel_type").
		sel("COUNT(s.id) AS total_sales").
		sel("SUM(s.total_amount) AS total_revenue").
		sel("AVG(s.total_amount) AS average_ticket")
	a.groupBy = []string{"ch.id", "ch.name", "ch.type"}
	a.orderBy = []string{"total_revenue DESC", "ch.id"}

	var rows []channelRow
	total, err := s.revenueShare(ctx, "channel performance", f, a, &rows)
	if err != nil {
		return nil, err
	}

	items := make([]types.ChannelPerformanceItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, types.ChannelPerformanceItem{
			ChannelID:         r.ChannelID,
			ChannelName:       r.ChannelName,
			ChannelType:       r.ChannelType,
			TotalSales:        count(r.TotalSales),
			TotalRevenue:      toFloat(r.TotalRevenue),
			AverageTicket:     toFloat(r.AverageTicket),
			RevenuePercentage: share(num(r.TotalRevenue), total),
		})
	}
	return &types.ChannelPerformanceResponse{Channels: items}, nil
}

// StorePerformance breaks completed revenue down by store.
func (s *service) StorePerformance(ctx context.Context, f types.Filters) (*types.StorePerformanceResponse, error) {
	a := s.completedSales(f, saleGrain)
	a.joins = append(a.joins, "JOIN stores st ON st.id = s.store_id")
	a.sel("st.id AS store_id").
		sel("st.name AS store_name").
		sel("st.city AS city").
		sel("st.state AS state").
		sel("COUNT(s.id) AS total_sales").
		sel("SUM(s.total_amount) AS total_revenue").
		sel("AVG(s.total_amount) AS average_ticket")
	a.groupBy = []string{"st.id", "st.name", "st.city", "st.state"}
	a.orderBy = []string{"total_revenue DESC", "st.id"}

	var rows []storeRow
	total, err := s.revenueShare(ctx, "store performance", f, a, &rows)
	if err != nil {
		return nil, err
	}

	items := make([]types.StorePerformanceItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, types.StorePerformanceItem{
			StoreID:           r.StoreID,
			StoreName:         r.StoreName,
			City:              r.City,
			State:             r.State,
			TotalSales:        count(r.TotalSales),
			TotalRevenue:      toFloat(r.TotalRevenue),
			AverageTicket:     toFloat(r.AverageTicket),
			RevenuePercentage: share(num(r.TotalRevenue), total),
		})
	}
	return &types.StorePerformanceResponse{Stores: items}, nil
}
