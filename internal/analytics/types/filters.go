package types

import (
	"slices"
	"time"

	"github.com/angelmondragon/pos-analytics/pkg/enums"
)

// DateRange bounds sales.created_at inclusively. A nil bound is open.
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// DimensionFilter restricts sales to sets of reference ids. An empty set means
// no restriction; members of one set are OR-ed, sets are AND-ed.
type DimensionFilter struct {
	StoreIDs    []int64            `json:"store_ids,omitempty"`
	ChannelIDs  []int64            `json:"channel_ids,omitempty"`
	ProductIDs  []int64            `json:"product_ids,omitempty"`
	CategoryIDs []int64            `json:"category_ids,omitempty"`
	CustomerIDs []int64            `json:"customer_ids,omitempty"`
	SaleStatus  []enums.SaleStatus `json:"sale_status,omitempty"`
}

// TimeWindow narrows sales to a weekday and/or an inclusive hour range.
type TimeWindow struct {
	DayOfWeek *int `json:"day_of_week,omitempty"`
	HourStart *int `json:"hour_start,omitempty"`
	HourEnd   *int `json:"hour_end,omitempty"`
}

// Filters is the full filter set shared by every metric.
type Filters struct {
	Range      DateRange       `json:"range"`
	Dimensions DimensionFilter `json:"dimensions"`
	Window     TimeWindow      `json:"window"`
}

// Normalize puts the filter into canonical form: UTC bounds, sorted
// de-duplicated id sets, canonical statuses. Equal filter sets normalize to
// equal values.
func (f Filters) Normalize() Filters {
	out := f
	if f.Range.Start != nil {
		start := f.Range.Start.UTC()
		out.Range.Start = &start
	}
	if f.Range.End != nil {
		end := f.Range.End.UTC()
		out.Range.End = &end
	}
	out.Dimensions.StoreIDs = IDSet(f.Dimensions.StoreIDs)
	out.Dimensions.ChannelIDs = IDSet(f.Dimensions.ChannelIDs)
	out.Dimensions.ProductIDs = IDSet(f.Dimensions.ProductIDs)
	out.Dimensions.CategoryIDs = IDSet(f.Dimensions.CategoryIDs)
	out.Dimensions.CustomerIDs = IDSet(f.Dimensions.CustomerIDs)

	var statuses []enums.SaleStatus
	for _, s := range f.Dimensions.SaleStatus {
		if n := enums.NormalizeSaleStatus(string(s)); n != "" {
			statuses = append(statuses, n)
		}
	}
	slices.Sort(statuses)
	out.Dimensions.SaleStatus = slices.Compact(statuses)
	return out
}

// IDSet sorts and de-duplicates ids. Empty input yields nil.
func IDSet(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

// RetentionParams configures the churn report.
type RetentionParams struct {
	MinOrders    int `json:"min_orders"`
	DaysInactive int `json:"days_inactive"`
}

// MarginParams configures the customization value report.
type MarginParams struct {
	Limit int              `json:"limit"`
	Sort  enums.MarginSort `json:"sort"`
}

// TicketTrendParams configures the ticket trend report.
type TicketTrendParams struct {
	GroupBy enums.TicketGroup `json:"group_by"`
	Period  enums.Period      `json:"period"`
}
