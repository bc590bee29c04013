package query

import (
	"fmt"

	"github.com/angelmondragon/pos-analytics/pkg/enums"
)

// dialect renders the few expressions that differ between Postgres and the
// sqlite databases used for local runs and tests. Every method returns a SQL
// fragment built only from trusted column expressions.
type dialect interface {
	// truncDate buckets col by period and formats it as YYYY-MM-DD.
	truncDate(period enums.Period, col string) string
	hour(col string) string
	// dayOfWeek numbers days 0=Sunday..6=Saturday.
	dayOfWeek(col string) string
}

func dialectFor(name string) (dialect, error) {
	switch name {
	case "postgres", "pgx":
		return postgresDialect{}, nil
	case "sqlite", "sqlite3":
		return sqliteDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported sql dialect %q", name)
	}
}

type postgresDialect struct{}

func (postgresDialect) truncDate(period enums.Period, col string) string {
	unit := "day"
	switch period {
	case enums.PeriodWeekly:
		unit = "week"
	case enums.PeriodMonthly:
		unit = "month"
	}
	return fmt.Sprintf("TO_CHAR(DATE_TRUNC('%s', %s), 'YYYY-MM-DD')", unit, col)
}

func (postgresDialect) hour(col string) string {
	return fmt.Sprintf("CAST(EXTRACT(HOUR FROM %s) AS INTEGER)", col)
}

func (postgresDialect) dayOfWeek(col string) string {
	return fmt.Sprintf("CAST(EXTRACT(DOW FROM %s) AS INTEGER)", col)
}

type sqliteDialect struct{}

func (sqliteDialect) truncDate(period enums.Period, col string) string {
	switch period {
	case enums.PeriodWeekly:
		// ISO weeks start on Monday, like DATE_TRUNC('week').
		return fmt.Sprintf("date(%s, 'weekday 0', '-6 days')", col)
	case enums.PeriodMonthly:
		return fmt.Sprintf("strftime('%%Y-%%m-01', %s)", col)
	default:
		return fmt.Sprintf("strftime('%%Y-%%m-%%d', %s)", col)
	}
}

func (sqliteDialect) hour(col string) string {
	return fmt.Sprintf("CAST(strftime('%%H', %s) AS INTEGER)", col)
}

func (sqliteDialect) dayOfWeek(col string) string {
	return fmt.Sprintf("CAST(strftime('%%w', %s) AS INTEGER)", col)
}
