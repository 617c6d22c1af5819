package wafer

import (
	"math"
	"strconv"
	"strings"
)

// maxExactInt is the largest float64 magnitude that still round-trips through
// int64 without losing integer precision.
const maxExactInt = 1 << 53

// Normalize canonicalizes a raw scalar value so that identical logical values
// compare equal regardless of source representation. Numeric values with an
// integral amount collapse to the decimal integer string (1.0 -> "1"); all
// other values become their trimmed string form. The second return is false
// for nil or empty input.
func Normalize(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		s := NormalizeCell(val)
		return s, s != ""
	case float64:
		return normalizeFloat(val), true
	case float32:
		return normalizeFloat(float64(val)), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	default:
		return "", false
	}
}

// NormalizeCell canonicalizes a cell value that arrives as text. Spreadsheet
// and CSV sources deliver every cell as a string, so the integral-float rule
// is applied to the textual form as well: "1.0" and "1" must never split a
// logical group.
func NormalizeCell(s string) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		if f == math.Trunc(f) && math.Abs(f) < maxExactInt {
			return strconv.FormatInt(int64(f), 10)
		}
	}
	return t
}

func normalizeFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < maxExactInt {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
