package query

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/pos-analytics/internal/analytics/types"
	"github.com/angelmondragon/pos-analytics/pkg/enums"
)

const (
	avgDeliveryMinutes   = "AVG(s.delivery_seconds / 60.0)"
	avgProductionMinutes = "AVG(s.production_seconds / 60.0)"
)

type deliveryRow struct {
	Neighborhood             *string
	City                     *string
	TotalDeliveries          sql.NullInt64
	AvgDeliveryTimeMinutes   decimal.NullDecimal
	AvgProductionTimeMinutes decimal.NullDecimal
	TotalDeliveryTimeMinutes decimal.NullDecimal
}

// DeliveryPerformance ranks neighborhoods by average production plus
// delivery time. Areas with fewer than five deliveries are left out.
func (s *service) DeliveryPerformance(ctx context.Context, f types.Filters) (*types.DeliveryPerformanceResponse, error) {
	a := s.completedSales(f, saleGrain)
	a.joins = append(a.joins, "JOIN delivery_addresses da ON da.sale_id = s.id")
	a.where.add("s.delivery_seconds IS NOT NULL")
	a.sel("da.neighborhood AS neighborhood").
		sel("da.city AS city").
		sel("COUNT(s.id) AS total_deliveries").
		sel(avgDeliveryMinutes + " AS avg_delivery_time_minutes").
		sel(avgProductionMinutes + " AS avg_production_time_minutes").
		sel(avgDeliveryMinutes + " + COALESCE(" + avgProductionMinutes + ", 0) AS total_delivery_time_minutes")
	a.groupBy = []string{"da.neighborhood", "da.city"}
	a.having.add("COUNT(s.id) >= ?", minDeliverySample)
	a.orderBy = []string{"total_delivery_time_minutes DESC", "da.neighborhood", "da.city"}
	a.limit = s.maxRows

	var rows []deliveryRow
	if err := s.scan(ctx, "delivery performance", a, &rows); err != nil {
		return nil, err
	}

	items := make([]types.DeliveryPerformanceItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, types.DeliveryPerformanceItem{
			Neighborhood:             r.Neighborhood,
			City:                     r.City,
			TotalDeliveries:          count(r.TotalDeliveries),
			AvgDeliveryTimeMinutes:   toFloat(r.AvgDeliveryTimeMinutes),
			AvgProductionTimeMinutes: toFloat(r.AvgProductionTimeMinutes),
			TotalDeliveryTimeMinutes: toFloat(r.TotalDeliveryTimeMinutes),
		})
	}
	return &types.DeliveryPerformanceResponse{Performance: items}, nil
}

type deliveryTimingRow struct {
	Weekday                int
	HourOfDay              int
	TotalDeliveries        sql.NullInt64
	AvgDeliveryTimeMinutes decimal.NullDecimal
}

// DeliveryTiming shows how delivery time moves across the week and the day.
func (s *service) DeliveryTiming(ctx context.Context, f types.Filters) (*types.DeliveryTimingResponse, error) {
	dow := s.dialect.dayOfWeek(saleCreatedAt)
	hour := s.dialect.hour(saleCreatedAt)

	a := s.completedSales(f, saleGrain)
	a.where.add("s.delivery_seconds IS NOT NULL")
	a.sel(dow + " AS weekday").
		sel(hour + " AS hour_of_day").
		sel("COUNT(s.id) AS total_deliveries").
		sel(avgDeliveryMinutes + " AS avg_delivery_time_minutes")
	a.groupBy = []string{dow, hour}
	a.orderBy = []string{"weekday", "hour_of_day"}

	var rows []deliveryTimingRow
	if err := s.scan(ctx, "delivery timing", a, &rows); err != nil {
		return nil, err
	}

	items := make([]types.DeliveryTimingItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, types.DeliveryTimingItem{
			DayOfWeek:              r.Weekday,
			DayName:                enums.WeekdayName(r.Weekday),
			Hour:                   r.HourOfDay,
			TotalDeliveries:        count(r.TotalDeliveries),
			AvgDeliveryTimeMinutes: toFloat(r.AvgDeliveryTimeMinutes),
		})
	}
	return &types.DeliveryTimingResponse{Timing: items}, nil
}
