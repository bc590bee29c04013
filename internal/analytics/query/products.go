package query

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/pos-analytics/internal/analytics/types"
	"github.com/angelmondragon/pos-analytics/pkg/enums"
)

type productRankingRow struct {
	ProductID     int64
	ProductName   string
	CategoryName  *string
	TotalQuantity decimal.NullDecimal
	TotalRevenue  decimal.NullDecimal
	OrderCount    sql.NullInt64
	AveragePrice  decimal.NullDecimal
}

// ProductRanking lists the best-selling products by quantity.
func (s *service) ProductRanking(ctx context.Context, f types.Filters, limit int) (*types.ProductRankingResponse, error) {
	a := s.completedSales(f, lineGrain)
	a.sel("p.id AS product_id").
		sel("p.name AS product_name").
		sel("c.name AS category_name").
		sel("SUM(ps.quantity) AS total_quantity").
		sel("SUM(ps.total_price) AS total_revenue").
		sel("COUNT(DISTINCT s.id) AS order_count").
		sel("AVG(ps.total_price / NULLIF(ps.quantity, 0)) AS average_price")
	a.groupBy = []string{"p.id", "p.name", "c.name"}
	a.orderBy = []string{"total_quantity DESC", "p.id"}
	a.limit = limit

	var rows []productRankingRow
	if err := s.scan(ctx, "product ranking", a, &rows); err != nil {
		return nil, err
	}

	items := make([]types.ProductRankingItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, types.ProductRankingItem{
			ProductID:     r.ProductID,
			ProductName:   r.ProductName,
			CategoryName:  r.CategoryName,
			TotalQuantity: toFloat(r.TotalQuantity),
			TotalRevenue:  toFloat(r.TotalRevenue),
			OrderCount:    count(r.OrderCount),
			AveragePrice:  toFloat(r.AveragePrice),
		})
	}
	return &types.ProductRankingResponse{Products: items, TotalCount: len(items)}, nil
}

type productMarginRow struct {
	ProductID             int64
	ProductName           string
	CategoryName          *string
	AvgBasePrice          decimal.NullDecimal
	AvgTotalPrice         decimal.NullDecimal
	AvgCustomizationValue decimal.NullDecimal
	TotalRevenue          decimal.NullDecimal
	OrderCount            sql.NullInt64
}

// ProductMargin reports how much customers pay on top of list price per
// product (add-ons and modifications). Product cost is not modeled, so this is
// upsell value rather than gross margin.
func (s *service) ProductMargin(ctx context.Context, f types.Filters, params types.MarginParams) (*types.ProductMarginResponse, error) {
	a := s.completedSales(f, lineGrain)
	a.sel("p.id AS product_id").
		sel("p.name AS product_name").
		sel("c.name AS category_name").
		sel("AVG(ps.base_price) AS avg_base_price").
		sel("AVG(ps.total_price) AS avg_total_price").
		sel("AVG(ps.total_price - ps.base_price) AS avg_customization_value").
		sel("SUM(ps.total_price) AS total_revenue").
		sel("COUNT(DISTINCT s.id) AS order_count")
	a.groupBy = []string{"p.id", "p.name", "c.name"}
	if params.Sort == enums.MarginSortCustomization {
		a.orderBy = []string{"avg_customization_value ASC", "total_revenue DESC", "p.id"}
	} else {
		a.orderBy = []string{"total_revenue DESC", "p.id"}
	}
	a.limit = params.Limit

	var rows []productMarginRow
	if err := s.scan(ctx, "product margin", a, &rows); err != nil {
		return nil, err
	}

	items := make([]types.ProductMarginItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, types.ProductMarginItem{
			ProductID:             r.ProductID,
			ProductName:           r.ProductName,
			CategoryName:          r.CategoryName,
			AvgBasePrice:          toFloat(r.AvgBasePrice),
			AvgTotalPrice:         toFloat(r.AvgTotalPrice),
			AvgCustomizationValue: toFloat(r.AvgCustomizationValue),
			TotalRevenue:          toFloat(r.TotalRevenue),
			OrderCount:            count(r.OrderCount),
		})
	}
	return &types.ProductMarginResponse{Products: items}, nil
}
