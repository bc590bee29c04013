package validators

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/pos-analytics/internal/analytics/types"
	"github.com/angelmondragon/pos-analytics/pkg/enums"
	pkgerrors "github.com/angelmondragon/pos-analytics/pkg/errors"
)

const (
	dateOnlyLayout = "2006-01-02"
	maxListItems   = 500
	maxStatusLen   = 64
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseOptionalInt returns nil when key is absent. Range checks are left to
// struct validation.
func ParseOptionalInt(r *http.Request, key string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

// ParseOptionalInt64 is ParseOptionalInt for ids.
func ParseOptionalInt64(r *http.Request, key string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

// ParseQueryBool accepts the strconv.ParseBool spellings.
func ParseQueryBool(r *http.Request, key string, defaultVal bool) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a boolean").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// ParseIDList reads a comma-separated id list. Repeated keys are merged.
func ParseIDList(r *http.Request, key string) ([]int64, error) {
	parts := listItems(r, key)
	if len(parts) > maxListItems {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "too many ids").WithDetails(map[string]any{"field": key, "max": maxListItems})
	}
	var ids []int64
	for _, part := range parts {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "ids must be positive integers").WithDetails(map[string]any{"field": key, "value": part})
		}
		ids = append(ids, id)
	}
	return types.IDSet(ids), nil
}

// ParseStringList reads a comma-separated list of short strings.
func ParseStringList(r *http.Request, key string) ([]string, error) {
	parts := listItems(r, key)
	if len(parts) > maxListItems {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "too many values").WithDetails(map[string]any{"field": key, "max": maxListItems})
	}
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, SanitizeString(part, maxStatusLen))
	}
	return out, nil
}

func listItems(r *http.Request, key string) []string {
	var items []string
	for _, raw := range r.URL.Query()[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
	}
	return items
}

// ParseDate accepts RFC 3339 or YYYY-MM-DD. A date-only value is midnight
// UTC, or the last instant of that day when endOfDay is set.
func ParseDate(r *http.Request, key string, endOfDay bool) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.ParseInLocation(dateOnlyLayout, raw, time.UTC)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid date").
			WithDetails(map[string]any{"field": key, "formats": []string{"RFC3339", dateOnlyLayout}})
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &t, nil
}

// ParseFilters reads the date range and dimension filters shared by every
// analytics endpoint.
func ParseFilters(r *http.Request) (types.Filters, error) {
	var f types.Filters
	var err error

	if f.Range.Start, err = ParseDate(r, "start_date", false); err != nil {
		return types.Filters{}, err
	}
	if f.Range.End, err = ParseDate(r, "end_date", true); err != nil {
		return types.Filters{}, err
	}

	lists := []struct {
		key  string
		dest *[]int64
	}{
		{"store_ids", &f.Dimensions.StoreIDs},
		{"channel_ids", &f.Dimensions.ChannelIDs},
		{"product_ids", &f.Dimensions.ProductIDs},
		{"category_ids", &f.Dimensions.CategoryIDs},
		{"customer_ids", &f.Dimensions.CustomerIDs},
	}
	for _, l := range lists {
		if *l.dest, err = ParseIDList(r, l.key); err != nil {
			return types.Filters{}, err
		}
	}

	statuses, err := ParseStringList(r, "sale_status")
	if err != nil {
		return types.Filters{}, err
	}
	for _, s := range statuses {
		f.Dimensions.SaleStatus = append(f.Dimensions.SaleStatus, enums.NormalizeSaleStatus(s))
	}
	return f.Normalize(), nil
}
