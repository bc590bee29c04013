package query

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/pos-analytics/internal/analytics/types"
	"github.com/angelmondragon/pos-analytics/pkg/enums"
)

type overviewRow struct {
	TotalSales       sql.NullInt64
	TotalRevenue     decimal.NullDecimal
	AverageTicket    decimal.NullDecimal
	CompletedSales   sql.NullInt64
	CancelledSales   sql.NullInt64
	TotalDiscount    decimal.NullDecimal
	TotalDeliveryFee decimal.NullDecimal
}

// SalesOverview summarizes every sale matching f regardless of status;
// status counts come from conditional sums over the same scan.
func (s *service) SalesOverview(ctx context.Context, f types.Filters) (*types.SalesOverview, error) {
	a := &aggregate{from: "sales s"}
	a.sel("COUNT(s.id) AS total_sales").
		sel("SUM(s.total_amount) AS total_revenue").
		sel("AVG(s.total_amount) AS average_ticket").
		sel("SUM(CASE WHEN "+saleStatus+" = ? THEN 1 ELSE 0 END) AS completed_sales", string(enums.SaleStatusCompleted)).
		sel("SUM(CASE WHEN "+saleStatus+" = ? THEN 1 ELSE 0 END) AS cancelled_sales", string(enums.SaleStatusCancelled)).
		sel("SUM(s.total_discount) AS total_discount").
		sel("SUM(s.delivery_fee) AS total_delivery_fee")
	applyFilters(&a.where, f, saleGrain, s.dialect)

	var row overviewRow
	if err := s.scan(ctx, "sales overview", a, &row); err != nil {
		return nil, err
	}
	return &types.SalesOverview{
		TotalSales:       count(row.TotalSales),
		TotalRevenue:     toFloat(row.TotalRevenue),
		AverageTicket:    toFloat(row.AverageTicket),
		CompletedSales:   count(row.CompletedSales),
		CancelledSales:   count(row.CancelledSales),
		TotalDiscount:    toFloat(row.TotalDiscount),
		TotalDeliveryFee: toFloat(row.TotalDeliveryFee),
	}, nil
}
