// Package format renders values for display. Every formatter is total:
// invalid input yields a placeholder instead of an error.
package format

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"collectibles/internal/entity/common"

	"github.com/shopspring/decimal"
)

// Placeholder is shown for missing values.
const Placeholder = "-"

const zeroAmount = "0.00"

// Amount renders a money value with two decimals and thousands separators.
// Accepts strings, numbers, decimals and common.Amount. nil or anything
// unparseable renders as "0.00".
func Amount(v any) string {
	d, ok := toDecimal(v)
	if !ok {
		return zeroAmount
	}
	fixed := d.StringFixed(2)
	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, frac, _ := strings.Cut(fixed, ".")
	grouped := groupThousands(intPart)
	if negative && strings.Trim(intPart+frac, "0") != "" {
		grouped = "-" + grouped
	}
	return grouped + "." + frac
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case nil:
		return decimal.Decimal{}, false
	case decimal.Decimal:
		return x, true
	case *decimal.Decimal:
		if x == nil {
			return decimal.Decimal{}, false
		}
		return *x, true
	case common.Amount:
		return x.Decimal, true
	case *common.Amount:
		if x == nil {
			return decimal.Decimal{}, false
		}
		return x.Decimal, true
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(x), ",", "")
		d, err := decimal.NewFromString(s)
		return d, err == nil
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		return d, err == nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(x), true
	case float32:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat32(x), true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int32:
		return decimal.NewFromInt32(x), true
	case int64:
		return decimal.NewFromInt(x), true
	case uint:
		return decimal.NewFromUint64(uint64(x)), true
	case uint64:
		return decimal.NewFromUint64(x), true
	case common.Int:
		return decimal.NewFromInt(int64(x)), true
	default:
		return decimal.Decimal{}, false
	}
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Phone masks the middle four digits: 138****5678. Shorter strings are
// returned unchanged.
func Phone(phone string) string {
	runes := []rune(phone)
	if len(runes) < 11 {
		return phone
	}
	return string(runes[:3]) + "****" + string(runes[len(runes)-4:])
}

// IDCard keeps the first and last four characters.
func IDCard(id string) string {
	runes := []rune(strings.TrimSpace(id))
	switch n := len(runes); {
	case n == 0:
		return Placeholder
	case n <= 8:
		return string(runes[:1]) + strings.Repeat("*", n-1)
	default:
		return string(runes[:4]) + strings.Repeat("*", n-8) + string(runes[n-4:])
	}
}

// BankCard shows only the last four digits.
func BankCard(card string) string {
	digits := strings.ReplaceAll(strings.TrimSpace(card), " ", "")
	runes := []rune(digits)
	switch n := len(runes); {
	case n == 0:
		return Placeholder
	case n <= 4:
		return digits
	default:
		return "**** **** **** " + string(runes[n-4:])
	}
}

// Name masks all but the first character of a legal name.
func Name(name string) string {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) == 0 {
		return Placeholder
	}
	return string(runes[:1]) + strings.Repeat("*", len(runes)-1)
}

// Timestamp renders a unix time relative to now: "Today 15:04",
// "Yesterday 15:04", "01-02 15:04" within the same year, otherwise
// "2006-01-02 15:04". Millisecond timestamps are accepted. Zero, negative or
// unparseable input renders as the placeholder.
func Timestamp(ts any, now time.Time) string {
	t, ok := toTime(ts, now.Location())
	if !ok {
		return Placeholder
	}
	y1, m1, d1 := t.Date()
	y2, m2, d2 := now.Date()
	today := time.Date(y2, m2, d2, 0, 0, 0, 0, now.Location())
	day := time.Date(y1, m1, d1, 0, 0, 0, 0, now.Location())

	switch {
	case day.Equal(today):
		return "Today " + t.Format("15:04")
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday " + t.Format("15:04")
	case y1 == y2:
		return t.Format("01-02 15:04")
	default:
		return t.Format("2006-01-02 15:04")
	}
}

// Date renders a unix time as 2006-01-02 in loc.
func Date(ts any, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	t, ok := toTime(ts, loc)
	if !ok {
		return Placeholder
	}
	return t.Format("2006-01-02")
}

func toTime(ts any, loc *time.Location) (time.Time, bool) {
	var sec int64
	switch x := ts.(type) {
	case time.Time:
		if x.IsZero() {
			return time.Time{}, false
		}
		return x.In(loc), true
	case common.Unix:
		sec = int64(x)
	case int64:
		sec = x
	case int:
		sec = int64(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return time.Time{}, false
		}
		sec = int64(x)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return time.Time{}, false
		}
		sec = d.IntPart()
	default:
		return time.Time{}, false
	}
	if sec <= 0 {
		return time.Time{}, false
	}
	if sec > 1e12 {
		return time.UnixMilli(sec).In(loc), true
	}
	return time.Unix(sec, 0).In(loc), true
}
