package enums

import "fmt"

// Period selects the date truncation used by time-bucketed metrics.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

var validPeriods = []Period{
	PeriodDaily,
	PeriodWeekly,
	PeriodMonthly,
}

// String implements fmt.Stringer.
func (p Period) String() string {
	return string(p)
}

// IsValid reports whether the value is a known Period.
func (p Period) IsValid() bool {
	for _, candidate := range validPeriods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePeriod converts raw input into a Period.
func ParsePeriod(value string) (Period, error) {
	for _, candidate := range validPeriods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid period %q", value)
}
