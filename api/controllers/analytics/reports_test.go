package analytics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/angelmondragon/pos-analytics/pkg/enums"
	pkgerrors "github.com/angelmondragon/pos-analytics/pkg/errors"
	"github.com/angelmondragon/pos-analytics/pkg/logger"
	"github.com/angelmondragon/pos-analytics/pkg/types"
)

func serve(h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) types.APIError {
	t.Helper()
	var body types.ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return body.Error
}

func TestSalesOverviewPassesFilters(t *testing.T) {
	svc := &testAnalyticsService{}
	rec := serve(SalesOverview(svc, logger.Nop()), "/api/v1/analytics/overview?start_date=2024-03-01&end_date=2024-03-31&store_ids=2,1")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["total_sales"] != float64(3) {
		t.Fatalf("expected bare overview body, got %v", body)
	}
	if _, wrapped := body["data"]; wrapped {
		t.Fatalf("body must not be wrapped")
	}
	if got := svc.filters.Dimensions.StoreIDs; len(got) != 2 || got[0] != 1 {
		t.Fatalf("unexpected store ids %v", got)
	}
	wantEnd := time.Date(2024, 3, 31, 23, 59, 59, 999999999, time.UTC)
	if !svc.filters.Range.End.Equal(wantEnd) {
		t.Fatalf("date-only end should cover the whole day, got %v", svc.filters.Range.End)
	}
}

func TestInvalidInputNeverReachesService(t *testing.T) {
	cases := []struct {
		name    string
		handler func(*testAnalyticsService) http.HandlerFunc
		target  string
	}{
		{"bad date", func(s *testAnalyticsService) http.HandlerFunc { return SalesOverview(s, nil) }, "/?start_date=03/01/2024"},
		{"bad id", func(s *testAnalyticsService) http.HandlerFunc { return ChannelPerformance(s, nil) }, "/?store_ids=x"},
		{"ranking limit", func(s *testAnalyticsService) http.HandlerFunc { return ProductRanking(s, nil) }, "/?limit=101"},
		{"ranking hour", func(s *testAnalyticsService) http.HandlerFunc { return ProductRanking(s, nil) }, "/?hour_start=25"},
		{"period", func(s *testAnalyticsService) http.HandlerFunc { return TimeSeries(s, nil) }, "/?period=hourly"},
		{"min orders", func(s *testAnalyticsService) http.HandlerFunc { return CustomerRetention(s, nil) }, "/?min_orders=0"},
		{"day of week", func(s *testAnalyticsService) http.HandlerFunc { return HourlyPerformance(s, nil) }, "/?day_of_week=9"},
		{"margin limit", func(s *testAnalyticsService) http.HandlerFunc { return ProductMargin(s, nil) }, "/?limit=500"},
		{"margin sort", func(s *testAnalyticsService) http.HandlerFunc { return ProductMargin(s, nil) }, "/?sort=price"},
		{"group by", func(s *testAnalyticsService) http.HandlerFunc { return TicketTrend(s, nil) }, "/?group_by=product"},
		{"timing dates", func(s *testAnalyticsService) http.HandlerFunc { return DeliveryTiming(s, nil) }, "/?end_date=tomorrow"},
		{"delivery ids", func(s *testAnalyticsService) http.HandlerFunc { return DeliveryPerformance(s, nil) }, "/?channel_ids=0"},
		{"stores ids", func(s *testAnalyticsService) http.HandlerFunc { return StorePerformance(s, nil) }, "/?customer_ids=1.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &testAnalyticsService{}
			rec := serve(tc.handler(svc), tc.target)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if apiErr := decodeError(t, rec); apiErr.Code != string(pkgerrors.CodeValidation) {
				t.Fatalf("unexpected code %s", apiErr.Code)
			}
			if svc.calls != 0 {
				t.Fatalf("service must not be called on invalid input")
			}
		})
	}
}

func TestEndpointDefaults(t *testing.T) {
	svc := &testAnalyticsService{}

	if rec := serve(ProductRanking(svc, nil), "/?day_of_week=5&hour_start=18"); rec.Code != http.StatusOK {
		t.Fatalf("ranking: %d", rec.Code)
	}
	if svc.limit != 20 || *svc.filters.Window.DayOfWeek != 5 || *svc.filters.Window.HourStart != 18 {
		t.Fatalf("unexpected ranking call limit=%d window=%+v", svc.limit, svc.filters.Window)
	}

	if rec := serve(TimeSeries(svc, nil), "/"); rec.Code != http.StatusOK {
		t.Fatalf("timeseries: %d", rec.Code)
	}
	if svc.period != enums.PeriodDaily {
		t.Fatalf("expected daily default, got %s", svc.period)
	}

	if rec := serve(CustomerRetention(svc, nil), "/"); rec.Code != http.StatusOK {
		t.Fatalf("retention: %d", rec.Code)
	}
	if svc.retention.MinOrders != 3 || svc.retention.DaysInactive != 30 {
		t.Fatalf("unexpected retention params %+v", svc.retention)
	}

	if rec := serve(ProductMargin(svc, nil), "/"); rec.Code != http.StatusOK {
		t.Fatalf("margin: %d", rec.Code)
	}
	if svc.margin.Limit != 50 || svc.margin.Sort != enums.MarginSortRevenue {
		t.Fatalf("unexpected margin params %+v", svc.margin)
	}

	if rec := serve(TicketTrend(svc, nil), "/?period=weekly"); rec.Code != http.StatusOK {
		t.Fatalf("ticket trend: %d", rec.Code)
	}
	if svc.trend.GroupBy != enums.TicketGroupChannel || svc.trend.Period != enums.PeriodWeekly {
		t.Fatalf("unexpected trend params %+v", svc.trend)
	}

	if rec := serve(HourlyPerformance(svc, nil), "/?day_of_week=0"); rec.Code != http.StatusOK {
		t.Fatalf("hourly: %d", rec.Code)
	}
	if svc.dayOfWeek == nil || *svc.dayOfWeek != 0 {
		t.Fatalf("expected sunday, got %v", svc.dayOfWeek)
	}
}

func TestEmptyListsEncodeAsArrays(t *testing.T) {
	svc := &testAnalyticsService{}
	rec := serve(ChannelPerformance(svc, nil), "/?start_date=2024-04-01&end_date=2024-03-01")
	if rec.Code != http.StatusOK {
		t.Fatalf("inverted range is not an error, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != "{\"channels\":[]}\n" {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestServiceErrorsMapToStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{pkgerrors.New(pkgerrors.CodeDependency, "analytics store unavailable"), http.StatusServiceUnavailable},
		{pkgerrors.New(pkgerrors.CodeInternal, "analytics query failed"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		svc := &testAnalyticsService{err: tc.err}
		rec := serve(DeliveryTiming(svc, logger.Nop()), "/")
		if rec.Code != tc.status {
			t.Fatalf("expected %d, got %d", tc.status, rec.Code)
		}
	}
}
