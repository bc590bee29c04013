package enums

import "fmt"

// TicketGroup is the dimension the ticket trend splits on.
type TicketGroup string

const (
	TicketGroupChannel TicketGroup = "channel"
	TicketGroupStore   TicketGroup = "store"
)

var validTicketGroups = []TicketGroup{
	TicketGroupChannel,
	TicketGroupStore,
}

func (g TicketGroup) String() string {
	return string(g)
}

func (g TicketGroup) IsValid() bool {
	for _, candidate := range validTicketGroups {
		if candidate == g {
			return true
		}
	}
	return false
}

func ParseTicketGroup(value string) (TicketGroup, error) {
	for _, candidate := range validTicketGroups {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid group_by %q", value)
}

// MarginSort orders the customization value report.
type MarginSort string

const (
	// MarginSortRevenue lists the highest-grossing products first.
	MarginSortRevenue MarginSort = "revenue"
	// MarginSortCustomization lists products with the lowest upsell first.
	MarginSortCustomization MarginSort = "customization"
)

func ParseMarginSort(value string) (MarginSort, error) {
	switch MarginSort(value) {
	case MarginSortRevenue, MarginSortCustomization:
		return MarginSort(value), nil
	}
	return "", fmt.Errorf("invalid sort %q", value)
}

func (s MarginSort) IsValid() bool {
	return s == MarginSortRevenue || s == MarginSortCustomization
}
