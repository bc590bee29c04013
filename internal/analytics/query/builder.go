package query

import (
	"strings"

	"github.com/angelmondragon/pos-analytics/internal/analytics/types"
	"github.com/angelmondragon/pos-analytics/pkg/enums"
)

// Table aliases shared by every statement.
const (
	saleCreatedAt = "s.created_at"
	saleStatus    = "UPPER(s.sale_status_desc)"
)

// grain tells applyFilters what a result row is built from.
type grain int

const (
	// saleGrain statements read sales s only; product and category filters
	// become EXISTS subqueries so sales are not multiplied by line items.
	saleGrain grain = iota
	// lineGrain statements join product_sales ps and products p.
	lineGrain
)

// clauses accumulates AND-ed predicates and their bind arguments.
type clauses struct {
	sql  []string
	args []any
}

func (c *clauses) add(sql string, args ...any) {
	c.sql = append(c.sql, sql)
	c.args = append(c.args, args...)
}

// aggregate is one SELECT ... GROUP BY statement. Values only ever reach the
// SQL text as ? placeholders; rendered fragments come from constants and the
// dialect.
type aggregate struct {
	selects    []string
	selectArgs []any
	from       string
	fromArgs   []any
	joins      []string
	where      clauses
	groupBy    []string
	having     clauses
	orderBy    []string
	limit      int
}

// sel adds a select expression; args bind placeholders inside it.
func (a *aggregate) sel(expr string, args ...any) *aggregate {
	a.selects = append(a.selects, expr)
	a.selectArgs = append(a.selectArgs, args...)
	return a
}

// render returns the statement and its arguments in placeholder order.
func (a *aggregate) render() (string, []any) {
	var b strings.Builder
	args := make([]any, 0, len(a.selectArgs)+len(a.fromArgs)+len(a.where.args)+len(a.having.args)+1)

	b.WriteString("SELECT ")
	b.WriteString(strings.Join(a.selects, ", "))
	args = append(args, a.selectArgs...)

	b.WriteString(" FROM ")
	b.WriteString(a.from)
	args = append(args, a.fromArgs...)
	for _, join := range a.joins {
		b.WriteByte(' ')
		b.WriteString(join)
	}

	if len(a.where.sql) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(a.where.sql, " AND "))
		args = append(args, a.where.args...)
	}
	if len(a.groupBy) > 0 {
		b.WriteString(" GROUP BY ")
		b.WriteString(strings.Join(a.groupBy, ", "))
	}
	if len(a.having.sql) > 0 {
		b.WriteString(" HAVING ")
		b.WriteString(strings.Join(a.having.sql, " AND "))
		args = append(args, a.having.args...)
	}
	if len(a.orderBy) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(a.orderBy, ", "))
	}
	if a.limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, a.limit)
	}
	return b.String(), args
}

// statusIs matches sales whose normalized status equals status.
func statusIs(status enums.SaleStatus) (string, any) {
	return saleStatus + " = ?", string(status)
}

// applyFilters appends the predicates for f to where.
func applyFilters(where *clauses, f types.Filters, g grain, d dialect) {
	if f.Range.Start != nil {
		where.add(saleCreatedAt+" >= ?", *f.Range.Start)
	}
	if f.Range.End != nil {
		where.add(saleCreatedAt+" <= ?", *f.Range.End)
	}

	dims := f.Dimensions
	if len(dims.StoreIDs) > 0 {
		where.add("s.store_id IN ?", dims.StoreIDs)
	}
	if len(dims.ChannelIDs) > 0 {
		where.add("s.channel_id IN ?", dims.ChannelIDs)
	}
	if len(dims.CustomerIDs) > 0 {
		where.add("s.customer_id IN ?", dims.CustomerIDs)
	}
	if len(dims.SaleStatus) > 0 {
		statuses := make([]string, len(dims.SaleStatus))
		for i, s := range dims.SaleStatus {
			statuses[i] = string(enums.NormalizeSaleStatus(string(s)))
		}
		where.add(saleStatus+" IN ?", statuses)
	}
	if len(dims.ProductIDs) > 0 {
		if g == lineGrain {
			where.add("ps.product_id IN ?", dims.ProductIDs)
		} else {
			where.add("EXISTS (SELECT 1 FROM product_sales fps WHERE fps.sale_id = s.id AND fps.product_id IN ?)", dims.ProductIDs)
		}
	}
	if len(dims.CategoryIDs) > 0 {
		if g == lineGrain {
			where.add("p.category_id IN ?", dims.CategoryIDs)
		} else {
			where.add("EXISTS (SELECT 1 FROM product_sales fps JOIN products fp ON fp.id = fps.product_id WHERE fps.sale_id = s.id AND fp.category_id IN ?)", dims.CategoryIDs)
		}
	}

	w := f.Window
	if w.DayOfWeek != nil {
		where.add(d.dayOfWeek(saleCreatedAt)+" = ?", *w.DayOfWeek)
	}
	if w.HourStart != nil {
		where.add(d.hour(saleCreatedAt)+" >= ?", *w.HourStart)
	}
	if w.HourEnd != nil {
		where.add(d.hour(saleCreatedAt)+" <= ?", *w.HourEnd)
	}
}
