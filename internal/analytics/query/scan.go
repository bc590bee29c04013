package query

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// timestamp scans aggregate timestamps. Postgres returns time.Time; sqlite
// loses the column type on MIN/MAX and returns text.
type timestamp struct {
	Time  time.Time
	Valid bool
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = timestamp{}
		return nil
	case time.Time:
		*t = timestamp{Time: v.UTC(), Valid: true}
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

// Value lets gorm treat the type as a column rather than a relation.
func (t timestamp) Value() (driver.Value, error) {
	if !t.Valid {
		return nil, nil
	}
	return t.Time, nil
}

func (t *timestamp) parse(raw string) error {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			*t = timestamp{Time: parsed.UTC(), Valid: true}
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", raw)
}

// num coalesces a nullable aggregate to 0.
func num(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

func toFloat(d decimal.NullDecimal) float64 {
	return num(d).InexactFloat64()
}

func count(n sql.NullInt64) int64 {
	if !n.Valid {
		return 0
	}
	return n.Int64
}

// share returns part as a percentage of total, 0 when total is 0.
func share(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return part.Div(total).Mul(hundred).InexactFloat64()
}
