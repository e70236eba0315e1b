package records

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Value coercion for the loosely-typed field bag. Inputs arrive from form
// JSON (float64, string, bool), from storage scans (int64, []byte, string)
// and from earlier normalization passes (int, decimal.Decimal). Every
// helper degrades to (zero, false) instead of failing.

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int32:
		return int(x), true
	case int64:
		return int(x), true
	case float32:
		return int(x), true
	case float64:
		return int(x), true
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return int(i), true
		}
		if f, err := x.Float64(); err == nil {
			return int(f), true
		}
		return 0, false
	case decimal.Decimal:
		return int(x.IntPart()), true
	case string:
		return parseIntString(x)
	case []byte:
		return parseIntString(string(x))
	}
	return 0, false
}

func parseIntString(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return i, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f, true
		}
		return 0, false
	case decimal.Decimal:
		return x.InexactFloat64(), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			return f, true
		}
		return 0, false
	case []byte:
		if f, err := strconv.ParseFloat(strings.TrimSpace(string(x)), 64); err == nil {
			return f, true
		}
		return 0, false
	}
	return 0, false
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, true
	case float64:
		return decimal.NewFromFloat(x), true
	case float32:
		return decimal.NewFromFloat32(x), true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case json.Number:
		if d, err := decimal.NewFromString(x.String()); err == nil {
			return d, true
		}
		return decimal.Zero, false
	case string:
		if d, err := decimal.NewFromString(strings.TrimSpace(x)); err == nil {
			return d, true
		}
		return decimal.Zero, false
	case []byte:
		if d, err := decimal.NewFromString(strings.TrimSpace(string(x))); err == nil {
			return d, true
		}
		return decimal.Zero, false
	}
	return decimal.Zero, false
}

func toBool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0
	case string:
		return parseBoolString(x)
	case []byte:
		return parseBoolString(string(x))
	}
	return false
}

func parseBoolString(s string) bool {
	s = strings.TrimSpace(s)
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s == "是"
}

func toString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	}
	return "", false
}

// toStringList coerces a priorities-style value to a list of strings.
// Anything that is not a list (or a JSON-encoded list coming back from a
// jsonb column) becomes an empty list, never nil.
func toStringList(v any) []string {
	switch x := v.(type) {
	case []string:
		if x == nil {
			return []string{}
		}
		return x
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return stringListFromJSON([]byte(x))
	case []byte:
		return stringListFromJSON(x)
	}
	return []string{}
}

func stringListFromJSON(b []byte) []string {
	var list []any
	if err := json.Unmarshal(b, &list); err != nil {
		return []string{}
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
