package ledger

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Months is the number of months in a planning year.
const Months = 12

// Limits for parsed values. Larger exponents make decimal arithmetic
// arbitrarily expensive.
const (
	maxIntegerDigits  = 15
	maxFractionDigits = 20
	maxInputLength    = 64
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// ParseValue converts raw user input into a non-negative decimal.
//
// The empty string and nil are read as 0. Other strings are parsed as decimal
// numbers, numeric types are converted directly. Values with more than 15
// integer digits or more than 20 fractional digits are invalid.
func ParseValue(raw any) (decimal.Decimal, error) {
	var v decimal.Decimal

	switch r := raw.(type) {
	case nil:
		return decimal.Zero, nil
	case string:
		return parseString(r)
	case json.Number:
		return parseString(string(r))
	case decimal.Decimal:
		v = r
	case float64:
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidNumber, r)
		}
		v = decimal.NewFromFloat(r)
	case float32:
		if math.IsNaN(float64(r)) || math.IsInf(float64(r), 0) {
			return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidNumber, r)
		}
		v = decimal.NewFromFloat32(r)
	case int:
		v = decimal.NewFromInt(int64(r))
	case int32:
		v = decimal.NewFromInt32(r)
	case int64:
		v = decimal.NewFromInt(r)
	default:
		return decimal.Zero, fmt.Errorf("%w: values of type %T are not supported", ErrInvalidNumber, raw)
	}

	if err := checkValue(v); err != nil {
		return decimal.Zero, err
	}

	return normalize(v), nil
}

func parseString(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}

	if len(s) > maxInputLength {
		return decimal.Zero, fmt.Errorf("%w: %q is too long", ErrInvalidNumber, truncate(s))
	}

	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, truncate(s))
	}

	if err := checkValue(v); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", err, truncate(s))
	}

	return normalize(v), nil
}

// normalize drops the exponent of zero values.
func normalize(v decimal.Decimal) decimal.Decimal {
	if v.IsZero() {
		return decimal.Zero
	}
	return v
}

// checkValue rejects negative values and values outside the supported precision.
func checkValue(v decimal.Decimal) error {
	if v.IsZero() {
		return nil
	}

	exp := int(v.Exponent())
	if v.Coefficient().BitLen() > 128 || exp < -maxFractionDigits || exp > maxIntegerDigits || exp+v.NumDigits() > maxIntegerDigits {
		return fmt.Errorf("%w, it is too large or has too many decimal places", ErrInvalidNumber)
	}

	if v.IsNegative() {
		return ErrNegativeValue
	}

	return nil
}

// truncate shortens raw input for error messages.
func truncate(s string) string {
	const limit = 32
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}

// ParseAllocation parses raw input as an allocation fraction in [0, 1].
func ParseAllocation(raw any) (decimal.Decimal, error) {
	v, err := ParseValue(raw)
	if err != nil {
		return decimal.Zero, err
	}

	if v.GreaterThan(one) {
		return decimal.Zero, fmt.Errorf("%w, got %s", ErrOutOfRange, truncate(fmt.Sprint(raw)))
	}

	return v, nil
}

// ParseTarget parses raw input as a monthly target. Targets have no upper bound.
func ParseTarget(raw any) (decimal.Decimal, error) {
	return ParseValue(raw)
}

// Monthly holds one value per month, January first.
type Monthly [Months]decimal.Decimal

// Uniform returns a Monthly with every month set to v.
func Uniform(v decimal.Decimal) Monthly {
	var m Monthly
	for i := range m {
		m[i] = v
	}
	return m
}

// Sum adds up all twelve months.
func (m Monthly) Sum() decimal.Decimal {
	return decimal.Sum(decimal.Zero, m[:]...)
}

// parseMonthly converts up to twelve raw values. Months that are not
// specified are 0.
func parseMonthly(raw []any, parse func(any) (decimal.Decimal, error)) (Monthly, error) {
	var m Monthly
	if len(raw) > Months {
		return m, fmt.Errorf("%w: got %d", ErrTooManyMonths, len(raw))
	}

	for i := range m {
		m[i] = decimal.Zero
	}

	for i, r := range raw {
		v, err := parse(r)
		if err != nil {
			return Monthly{}, fmt.Errorf("month %d: %w", i, err)
		}
		m[i] = v
	}

	return m, nil
}

// ParseAllocations converts raw per-month input into allocation fractions.
func ParseAllocations(raw []any) (Monthly, error) {
	return parseMonthly(raw, ParseAllocation)
}

// ParseTargets converts raw per-month input into target capacities.
func ParseTargets(raw []any) (Monthly, error) {
	return parseMonthly(raw, ParseTarget)
}
