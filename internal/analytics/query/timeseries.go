package query

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/pos-analytics/internal/analytics/types"
	"github.com/angelmondragon/pos-analytics/pkg/enums"
)

type seriesRow struct {
	Bucket        string
	SalesCount    sql.NullInt64
	Revenue       decimal.NullDecimal
	AverageTicket decimal.NullDecimal
}

// TimeSeries buckets completed sales by day, week or month.
func (s *service) TimeSeries(ctx context.Context, f types.Filters, period enums.Period) (*types.TimeSeriesResponse, error) {
	if !period.IsValid() {
		return nil, fmt.Errorf("invalid period %q", period)
	}
	bucket := s.dialect.truncDate(period, saleCreatedAt)

	a := s.completedSales(f, saleGrain)
	a.sel(bucket + " AS bucket").
		sel("COUNT(s.id) AS sales_count").
		sel("SUM(s.total_amount) AS revenue").
		sel("AVG(s.total_amount) AS average_ticket")
	a.groupBy = []string{bucket}
	a.orderBy = []string{"bucket"}
	a.limit = s.maxRows

	var rows []seriesRow
	if err := s.scan(ctx, "time series", a, &rows); err != nil {
		return nil, err
	}

	points := make([]types.TimeSeriesPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, types.TimeSeriesPoint{
			Date:          r.Bucket,
			SalesCount:    count(r.SalesCount),
			Revenue:       toFloat(r.Revenue),
			AverageTicket: toFloat(r.AverageTicket),
		})
	}
	return &types.TimeSeriesResponse{Data: points, PeriodType: period.String()}, nil
}

type ticketTrendRow struct {
	Bucket        string
	GroupID       int64
	GroupName     string
	SalesCount    sql.NullInt64
	Revenue       decimal.NullDecimal
	AverageTicket decimal.NullDecimal
}

// TicketTrend tracks the average ticket per channel or store over time, so a
// falling ticket can be traced to where it happens.
func (s *service) TicketTrend(ctx context.Context, f types.Filters, params types.TicketTrendParams) (*types.TicketTrendResponse, error) {
	if !params.Period.IsValid() {
		return nil, fmt.Errorf("invalid period %q", params.Period)
	}
	var join string
	switch params.GroupBy {
	case enums.TicketGroupChannel:
		join = "JOIN channels g ON g.id = s.channel_id"
	case enums.TicketGroupStore:
		join = "JOIN stores g ON g.id = s.store_id"
	default:
		return nil, fmt.Errorf("invalid group_by %q", params.GroupBy)
	}
	bucket := s.dialect.truncDate(params.Period, saleCreatedAt)

	a := s.completedSales(f, saleGrain)
	a.joins = append(a.joins, join)
	a.sel(bucket + " AS bucket").
		sel("g.id AS group_id").
		sel("g.name AS group_name").
		sel("COUNT(s.id) AS sales_count").
		sel("SUM(s.total_amount) AS revenue").
		sel("AVG(s.total_amount) AS average_ticket")
	a.groupBy = []string{bucket, "g.id", "g.name"}
	a.orderBy = []string{"bucket", "group_id"}
	a.limit = s.maxRows

	var rows []ticketTrendRow
	if err := s.scan(ctx, "ticket trend", a, &rows); err != nil {
		return nil, err
	}

	points := make([]types.TicketTrendPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, types.TicketTrendPoint{
			Date:          r.Bucket,
			GroupID:       r.GroupID,
			GroupName:     r.GroupName,
			SalesCount:    count(r.SalesCount),
			Revenue:       toFloat(r.Revenue),
			AverageTicket: toFloat(r.AverageTicket),
		})
	}
	return &types.TicketTrendResponse{
		Data:       points,
		GroupBy:    params.GroupBy.String(),
		PeriodType: params.Period.String(),
	}, nil
}
