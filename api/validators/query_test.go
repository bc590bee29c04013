package validators

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/pos-analytics/pkg/enums"
	pkgerrors "github.com/angelmondragon/pos-analytics/pkg/errors"
)

func TestParseFilters(t *testing.T) {
	r := httptest.NewRequest("GET", "/analytics/overview?start_date=2024-03-01&end_date=2024-03-31&store_ids=3,1,3&channel_ids=2&channel_ids=5&sale_status=completed,%20Cancelled", nil)

	f, err := ParseFilters(r)
	require.NoError(t, err)

	require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *f.Range.Start)
	require.Equal(t, time.Date(2024, 3, 31, 23, 59, 59, 999999999, time.UTC), *f.Range.End)
	assert.Equal(t, []int64{1, 3}, f.Dimensions.StoreIDs)
	assert.Equal(t, []int64{2, 5}, f.Dimensions.ChannelIDs)
	assert.Nil(t, f.Dimensions.ProductIDs)
	assert.Equal(t, []enums.SaleStatus{enums.SaleStatusCancelled, enums.SaleStatusCompleted}, f.Dimensions.SaleStatus)
}

func TestParseFiltersRFC3339(t *testing.T) {
	r := httptest.NewRequest("GET", "/?start_date=2024-03-01T10:00:00-03:00", nil)
	f, err := ParseFilters(r)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC), *f.Range.Start)
	require.Nil(t, f.Range.End)
}

func TestParseFiltersRejectsBadInput(t *testing.T) {
	for _, target := range []string{
		"/?start_date=yesterday",
		"/?end_date=2024-13-01",
		"/?store_ids=1,abc",
		"/?product_ids=-4",
	} {
		_, err := ParseFilters(httptest.NewRequest("GET", target, nil))
		require.Error(t, err, target)
		require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), target)
	}
}

func TestParseRanking(t *testing.T) {
	limit, window, err := ParseRanking(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 20, limit)
	assert.Nil(t, window.DayOfWeek)

	limit, window, err = ParseRanking(httptest.NewRequest("GET", "/?limit=5&day_of_week=0&hour_start=18&hour_end=23", nil))
	require.NoError(t, err)
	assert.Equal(t, 5, limit)
	assert.Equal(t, 0, *window.DayOfWeek)
	assert.Equal(t, 18, *window.HourStart)

	for _, target := range []string{"/?limit=0", "/?limit=101", "/?limit=ten", "/?day_of_week=7", "/?hour_end=24"} {
		_, _, err := ParseRanking(httptest.NewRequest("GET", target, nil))
		require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), target)
	}
}

func TestParseMargin(t *testing.T) {
	params, err := ParseMargin(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 50, params.Limit)
	assert.Equal(t, enums.MarginSortRevenue, params.Sort)

	params, err = ParseMargin(httptest.NewRequest("GET", "/?limit=200&sort=Customization", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, params.Limit)
	assert.Equal(t, enums.MarginSortCustomization, params.Sort)

	_, err = ParseMargin(httptest.NewRequest("GET", "/?limit=201", nil))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, map[string]string{"limit": "must be at most 200"}, typed.Details())

	_, err = ParseMargin(httptest.NewRequest("GET", "/?sort=cost", nil))
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestParseRetention(t *testing.T) {
	params, err := ParseRetention(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 3, params.MinOrders)
	assert.Equal(t, 30, params.DaysInactive)

	_, err = ParseRetention(httptest.NewRequest("GET", "/?min_orders=0", nil))
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	_, err = ParseRetention(httptest.NewRequest("GET", "/?days_inactive=-1", nil))
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestParsePeriodAndTicketTrend(t *testing.T) {
	period, err := ParsePeriod(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, enums.PeriodDaily, period)

	period, err = ParsePeriod(httptest.NewRequest("GET", "/?period=monthly", nil))
	require.NoError(t, err)
	assert.Equal(t, enums.PeriodMonthly, period)

	_, err = ParsePeriod(httptest.NewRequest("GET", "/?period=yearly", nil))
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	trend, err := ParseTicketTrend(httptest.NewRequest("GET", "/?group_by=store&period=weekly", nil))
	require.NoError(t, err)
	assert.Equal(t, enums.TicketGroupStore, trend.GroupBy)
	assert.Equal(t, enums.PeriodWeekly, trend.Period)

	_, err = ParseTicketTrend(httptest.NewRequest("GET", "/?group_by=city", nil))
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestParseHourly(t *testing.T) {
	day, err := ParseHourly(httptest.NewRequest("GET", "/?day_of_week=6", nil))
	require.NoError(t, err)
	assert.Equal(t, 6, *day)

	day, err = ParseHourly(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Nil(t, day)

	_, err = ParseHourly(httptest.NewRequest("GET", "/?day_of_week=-1", nil))
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestParseQueryIntAndBool(t *testing.T) {
	r := httptest.NewRequest("GET", "/?limit=5&active_only=false", nil)
	v, err := ParseQueryInt(r, "limit", 100, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	active, err := ParseQueryBool(r, "active_only", true)
	require.NoError(t, err)
	assert.False(t, active)

	_, err = ParseQueryInt(r, "limit", 100, 10, 20)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = ParseQueryBool(httptest.NewRequest("GET", "/?active_only=maybe", nil), "active_only", true)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}
