package validators

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/pos-analytics/internal/analytics/types"
	"github.com/angelmondragon/pos-analytics/pkg/enums"
)

// RankingQuery is the product ranking's own parameters.
type RankingQuery struct {
	Limit     int  `json:"limit" validate:"min=1,max=100"`
	DayOfWeek *int `json:"day_of_week" validate:"omitempty,min=0,max=6"`
	HourStart *int `json:"hour_start" validate:"omitempty,min=0,max=23"`
	HourEnd   *int `json:"hour_end" validate:"omitempty,min=0,max=23"`
}

type MarginQuery struct {
	Limit int    `json:"limit" validate:"min=1,max=200"`
	Sort  string `json:"sort" validate:"oneof=revenue customization"`
}

type RetentionQuery struct {
	MinOrders    int `json:"min_orders" validate:"min=1"`
	DaysInactive int `json:"days_inactive" validate:"min=1"`
}

type HourlyQuery struct {
	DayOfWeek *int `json:"day_of_week" validate:"omitempty,min=0,max=6"`
}

type PeriodQuery struct {
	Period string `json:"period" validate:"oneof=daily weekly monthly"`
}

type TicketTrendQuery struct {
	GroupBy string `json:"group_by" validate:"oneof=channel store"`
	Period  string `json:"period" validate:"oneof=daily weekly monthly"`
}

func queryOr(r *http.Request, key, fallback string) string {
	if v := strings.TrimSpace(r.URL.Query().Get(key)); v != "" {
		return strings.ToLower(v)
	}
	return fallback
}

// ParseRanking reads limit (default 20) and the optional time window.
func ParseRanking(r *http.Request) (int, types.TimeWindow, error) {
	var q RankingQuery
	var err error
	if q.Limit, err = ParseQueryInt(r, "limit", 20, minInt, maxInt); err != nil {
		return 0, types.TimeWindow{}, err
	}
	if q.DayOfWeek, err = ParseOptionalInt(r, "day_of_week"); err != nil {
		return 0, types.TimeWindow{}, err
	}
	if q.HourStart, err = ParseOptionalInt(r, "hour_start"); err != nil {
		return 0, types.TimeWindow{}, err
	}
	if q.HourEnd, err = ParseOptionalInt(r, "hour_end"); err != nil {
		return 0, types.TimeWindow{}, err
	}
	if err := Struct(q); err != nil {
		return 0, types.TimeWindow{}, err
	}
	return q.Limit, types.TimeWindow{DayOfWeek: q.DayOfWeek, HourStart: q.HourStart, HourEnd: q.HourEnd}, nil
}

// ParseMargin reads limit (default 50) and sort (default revenue).
func ParseMargin(r *http.Request) (types.MarginParams, error) {
	var q MarginQuery
	var err error
	if q.Limit, err = ParseQueryInt(r, "limit", 50, minInt, maxInt); err != nil {
		return types.MarginParams{}, err
	}
	q.Sort = queryOr(r, "sort", string(enums.MarginSortRevenue))
	if err := Struct(q); err != nil {
		return types.MarginParams{}, err
	}
	return types.MarginParams{Limit: q.Limit, Sort: enums.MarginSort(q.Sort)}, nil
}

// ParseRetention reads min_orders (default 3) and days_inactive (default 30).
func ParseRetention(r *http.Request) (types.RetentionParams, error) {
	var q RetentionQuery
	var err error
	if q.MinOrders, err = ParseQueryInt(r, "min_orders", 3, minInt, maxInt); err != nil {
		return types.RetentionParams{}, err
	}
	if q.DaysInactive, err = ParseQueryInt(r, "days_inactive", 30, minInt, maxInt); err != nil {
		return types.RetentionParams{}, err
	}
	if err := Struct(q); err != nil {
		return types.RetentionParams{}, err
	}
	return types.RetentionParams{MinOrders: q.MinOrders, DaysInactive: q.DaysInactive}, nil
}

func ParseHourly(r *http.Request) (*int, error) {
	var q HourlyQuery
	var err error
	if q.DayOfWeek, err = ParseOptionalInt(r, "day_of_week"); err != nil {
		return nil, err
	}
	if err := Struct(q); err != nil {
		return nil, err
	}
	return q.DayOfWeek, nil
}

// ParsePeriod reads period, defaulting to daily.
func ParsePeriod(r *http.Request) (enums.Period, error) {
	q := PeriodQuery{Period: queryOr(r, "period", string(enums.PeriodDaily))}
	if err := Struct(q); err != nil {
		return "", err
	}
	return enums.Period(q.Period), nil
}

// ParseTicketTrend reads group_by (default channel) and period (default daily).
func ParseTicketTrend(r *http.Request) (types.TicketTrendParams, error) {
	q := TicketTrendQuery{
		GroupBy: queryOr(r, "group_by", string(enums.TicketGroupChannel)),
		Period:  queryOr(r, "period", string(enums.PeriodDaily)),
	}
	if err := Struct(q); err != nil {
		return types.TicketTrendParams{}, err
	}
	return types.TicketTrendParams{GroupBy: enums.TicketGroup(q.GroupBy), Period: enums.Period(q.Period)}, nil
}

// ParseQueryInt's own bounds are wide open here; the struct tags hold the real
// ranges so the error details name the rule.
const (
	minInt = -1 << 31
	maxInt = 1<<31 - 1
)
