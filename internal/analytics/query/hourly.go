package query

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/pos-analytics/internal/analytics/types"
	"github.com/angelmondragon/pos-analytics/pkg/enums"
)

type hourlyRow struct {
	HourOfDay     int
	Weekday       int
	SalesCount    sql.NullInt64
	Revenue       decimal.NullDecimal
	AverageTicket decimal.NullDecimal
}

// HourlyPerformance buckets completed sales by hour of day and weekday. When
// dayOfWeek is set only that day is read and rows are per hour; every row then
// carries the requested day.
func (s *service) HourlyPerformance(ctx context.Context, f types.Filters, dayOfWeek *int) (*types.HourlyPerformanceResponse, error) {
	hour := s.dialect.hour(saleCreatedAt)
	dow := s.dialect.dayOfWeek(saleCreatedAt)

	a := s.completedSales(f, saleGrain)
	a.sel(hour + " AS hour_of_day")
	if dayOfWeek != nil {
		a.where.add(dow+" = ?", *dayOfWeek)
		a.groupBy = []string{hour}
		a.orderBy = []string{"hour_of_day"}
	} else {
		a.sel(dow + " AS weekday")
		a.groupBy = []string{hour, dow}
		a.orderBy = []string{"hour_of_day", "weekday"}
	}
	a.sel("COUNT(s.id) AS sales_count").
		sel("SUM(s.total_amount) AS revenue").
		sel("AVG(s.total_amount) AS average_ticket")

	var rows []hourlyRow
	if err := s.scan(ctx, "hourly performance", a, &rows); err != nil {
		return nil, err
	}

	items := make([]types.HourlyPerformanceItem, 0, len(rows))
	for _, r := range rows {
		day := r.Weekday
		if dayOfWeek != nil {
			day = *dayOfWeek
		}
		items = append(items, types.HourlyPerformanceItem{
			Hour:          r.HourOfDay,
			DayOfWeek:     day,
			DayName:       enums.WeekdayName(day),
			SalesCount:    count(r.SalesCount),
			Revenue:       toFloat(r.Revenue),
			AverageTicket: toFloat(r.AverageTicket),
		})
	}
	return &types.HourlyPerformanceResponse{Performance: items}, nil
}
