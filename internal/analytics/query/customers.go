package query

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/pos-analytics/internal/analytics/types"
)

type retentionRow struct {
	CustomerID     int64
	CustomerName   *string
	Email          *string
	PhoneNumber    *string
	TotalOrders    sql.NullInt64
	TotalSpent     decimal.NullDecimal
	AverageTicket  decimal.NullDecimal
	FirstOrderDate timestamp
	LastOrderDate  timestamp
}

// CustomerRetention lists churn candidates: customers with at least
// MinOrders completed sales whose latest one is older than DaysInactive days.
// Sales without a customer are ignored.
func (s *service) CustomerRetention(ctx context.Context, f types.Filters, params types.RetentionParams) (*types.CustomerRetentionResponse, error) {
	now := s.now().UTC()
	cutoff := now.AddDate(0, 0, -params.DaysInactive)

	stats := s.completedSales(f, saleGrain)
	stats.where.add("s.customer_id IS NOT NULL")
	stats.sel("s.customer_id AS customer_id").
		sel("COUNT(s.id) AS total_orders").
		sel("SUM(s.total_amount) AS total_spent").
		sel("AVG(s.total_amount) AS average_ticket").
		sel("MIN(s.created_at) AS first_order_date").
		sel("MAX(s.created_at) AS last_order_date")
	stats.groupBy = []string{"s.customer_id"}
	stats.having.add("COUNT(s.id) >= ?", params.MinOrders)
	stats.having.add("MAX(s.created_at) < ?", cutoff)
	statsSQL, statsArgs := stats.render()

	a := &aggregate{
		from:     "customers cu JOIN (" + statsSQL + ") cs ON cs.customer_id = cu.id",
		fromArgs: statsArgs,
	}
	a.sel("cu.id AS customer_id").
		sel("cu.customer_name AS customer_name").
		sel("cu.email AS email").
		sel("cu.phone_number AS phone_number").
		sel("cs.total_orders AS total_orders").
		sel("cs.total_spent AS total_spent").
		sel("cs.average_ticket AS average_ticket").
		sel("cs.first_order_date AS first_order_date").
		sel("cs.last_order_date AS last_order_date")
	a.orderBy = []string{"cs.total_spent DESC", "cu.id"}
	a.limit = s.maxRows

	var rows []retentionRow
	if err := s.scan(ctx, "customer retention", a, &rows); err != nil {
		return nil, err
	}

	items := make([]types.CustomerRetentionItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, types.CustomerRetentionItem{
			CustomerID:         r.CustomerID,
			CustomerName:       r.CustomerName,
			Email:              r.Email,
			PhoneNumber:        r.PhoneNumber,
			TotalOrders:        count(r.TotalOrders),
			TotalSpent:         toFloat(r.TotalSpent),
			AverageTicket:      toFloat(r.AverageTicket),
			FirstOrderDate:     r.FirstOrderDate.Time,
			LastOrderDate:      r.LastOrderDate.Time,
			DaysSinceLastOrder: daysBetween(r.LastOrderDate.Time, now),
		})
	}
	return &types.CustomerRetentionResponse{Customers: items, TotalCount: len(items)}, nil
}

// daysBetween counts whole days elapsed from since to now.
func daysBetween(since, now time.Time) int {
	if since.IsZero() || now.Before(since) {
		return 0
	}
	return int(now.Sub(since) / (24 * time.Hour))
}
