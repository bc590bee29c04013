package query

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/pos-analytics/internal/analytics/types"
	"github.com/angelmondragon/pos-analytics/pkg/enums"
)

func TestAggregateRenderArgumentOrder(t *testing.T) {
	a := &aggregate{from: "sales s", fromArgs: []any{"from"}}
	a.sel("SUM(CASE WHEN x = ? THEN 1 ELSE 0 END) AS n", "select")
	a.where.add("s.store_id IN ?", []int64{1, 2})
	a.groupBy = []string{"s.store_id"}
	a.having.add("COUNT(s.id) >= ?", 5)
	a.orderBy = []string{"n DESC"}
	a.limit = 10

	sql, args := a.render()
	require.Equal(t,
		"SELECT SUM(CASE WHEN x = ? THEN 1 ELSE 0 END) AS n FROM sales s WHERE s.store_id IN ? GROUP BY s.store_id HAVING COUNT(s.id) >= ? ORDER BY n DESC LIMIT ?",
		sql)
	require.Equal(t, []any{"select", "from", []int64{1, 2}, 5, 10}, args)
}

func TestApplyFiltersBindsEveryValue(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
	f := types.Filters{
		Range: types.DateRange{Start: &start, End: &end},
		Dimensions: types.DimensionFilter{
			StoreIDs:    []int64{7},
			ChannelIDs:  []int64{3},
			ProductIDs:  []int64{42},
			CategoryIDs: []int64{9},
			SaleStatus:  []enums.SaleStatus{"completed'; DROP TABLE sales; --"},
		},
		Window: types.TimeWindow{DayOfWeek: intPtr(2), HourStart: intPtr(8)},
	}

	var where clauses
	applyFilters(&where, f, saleGrain, postgresDialect{})
	sql := strings.Join(where.sql, " AND ")

	assert.NotContains(t, sql, "DROP")
	assert.NotContains(t, sql, "2024")
	assert.NotContains(t, sql, "42")
	assert.Equal(t, strings.Count(sql, "?"), len(where.args))
	assert.Contains(t, sql, "EXISTS (SELECT 1 FROM product_sales fps WHERE fps.sale_id = s.id AND fps.product_id IN ?)")
	assert.Contains(t, sql, "fp.category_id IN ?")
	assert.Equal(t, "COMPLETED'; DROP TABLE SALES; --", where.args[4].([]string)[0])
}

func TestApplyFiltersLineGrainFiltersDirectly(t *testing.T) {
	f := types.Filters{Dimensions: types.DimensionFilter{ProductIDs: []int64{1}, CategoryIDs: []int64{2}}}
	var where clauses
	applyFilters(&where, f, lineGrain, sqliteDialect{})
	require.Equal(t, []string{"ps.product_id IN ?", "p.category_id IN ?"}, where.sql)
	require.Equal(t, []any{[]int64{1}, []int64{2}}, where.args)
}

func TestApplyFiltersEmptyAddsNothing(t *testing.T) {
	var where clauses
	applyFilters(&where, types.Filters{}, saleGrain, sqliteDialect{})
	require.Empty(t, where.sql)
	require.Empty(t, where.args)
}

func TestDialectFor(t *testing.T) {
	for _, name := range []string{"postgres", "pgx", "sqlite", "sqlite3"} {
		_, err := dialectFor(name)
		require.NoError(t, err, name)
	}
	_, err := dialectFor("mysql")
	require.Error(t, err)
}

func TestPostgresDialect(t *testing.T) {
	d := postgresDialect{}
	assert.Equal(t, "TO_CHAR(DATE_TRUNC('week', s.created_at), 'YYYY-MM-DD')", d.truncDate(enums.PeriodWeekly, saleCreatedAt))
	assert.Equal(t, "TO_CHAR(DATE_TRUNC('day', s.created_at), 'YYYY-MM-DD')", d.truncDate(enums.PeriodDaily, saleCreatedAt))
	assert.Equal(t, "CAST(EXTRACT(DOW FROM s.created_at) AS INTEGER)", d.dayOfWeek(saleCreatedAt))
	assert.Equal(t, "CAST(EXTRACT(HOUR FROM s.created_at) AS INTEGER)", d.hour(saleCreatedAt))
}

func TestSqliteDialect(t *testing.T) {
	d := sqliteDialect{}
	assert.Equal(t, "strftime('%Y-%m-01', s.created_at)", d.truncDate(enums.PeriodMonthly, saleCreatedAt))
	assert.Equal(t, "CAST(strftime('%w', s.created_at) AS INTEGER)", d.dayOfWeek(saleCreatedAt))
}

func TestTimestampScan(t *testing.T) {
	want := time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)
	for _, src := range []any{
		want,
		"2024-03-07 12:00:00+00:00",
		"2024-03-07T09:00:00-03:00",
		[]byte("2024-03-07 12:00:00"),
	} {
		var ts timestamp
		require.NoError(t, ts.Scan(src), "%v", src)
		require.True(t, ts.Valid)
		require.True(t, want.Equal(ts.Time), "%v", src)
	}

	var ts timestamp
	require.NoError(t, ts.Scan(nil))
	require.False(t, ts.Valid)
	require.Error(t, ts.Scan(12))
	require.Error(t, ts.Scan("yesterday"))
}

func TestShare(t *testing.T) {
	assert.Zero(t, share(decimal.NewFromInt(5), decimal.Zero))
	assert.InDelta(t, 25.0, share(decimal.NewFromInt(1), decimal.NewFromInt(4)), 1e-9)
}

func TestNullAggregatesCoalesceToZero(t *testing.T) {
	assert.Zero(t, toFloat(decimal.NullDecimal{}))
	assert.Zero(t, count(sql.NullInt64{}))
}

func TestDaysBetween(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 31, daysBetween(now.AddDate(0, 0, -31), now))
	assert.Equal(t, 30, daysBetween(now.Add(-30*24*time.Hour-time.Hour), now))
	assert.Equal(t, 0, daysBetween(time.Time{}, now))
	assert.Equal(t, 0, daysBetween(now.Add(time.Hour), now))
}
