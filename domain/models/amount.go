package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a fixed-point currency value counted in 1/10,000ths of a unit.
// Record amounts are always non-negative; an account's available balance may
// go negative while a disputed deposit is held.
type Amount int64

// FractionDigits is the number of decimal places an Amount carries.
const FractionDigits = 4

// ParseAmount parses a decimal string into an Amount. The value must be
// non-negative, carry at most four decimal places, and fit the fixed-point
// range.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid amount %q", ErrMalformedRecord, s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: negative amount %q", ErrMalformedRecord, s)
	}
	scaled := d.Shift(FractionDigits)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("%w: amount %q exceeds %d decimal places", ErrMalformedRecord, s, FractionDigits)
	}
	units := scaled.BigInt()
	if !units.IsInt64() {
		return 0, fmt.Errorf("%w: amount %q", ErrAmountOverflow, s)
	}
	return Amount(units.Int64()), nil
}

// Add returns a + b, failing when the sum leaves the fixed-point range.
func (a Amount) Add(b Amount) (Amount, error) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, ErrAmountOverflow
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, ErrAmountOverflow
	}
	return a + b, nil
}

// Sub returns a - b, failing with ErrInsufficientFunds when the result would
// be negative.
func (a Amount) Sub(b Amount) (Amount, error) {
	if b > a {
		return 0, ErrInsufficientFunds
	}
	return a - b, nil
}

// String renders the amount at fixed four-decimal precision. Zero renders as
// "0.0", matching the snapshot format.
func (a Amount) String() string {
	if a == 0 {
		return "0.0"
	}
	v := int64(a)
	u := uint64(v)
	if v < 0 {
		u = uint64(-v)
	}
	digits := strconv.FormatUint(u, 10)
	if len(digits) <= FractionDigits {
		digits = strings.Repeat("0", FractionDigits+1-len(digits)) + digits
	}
	cut := len(digits) - FractionDigits
	out := digits[:cut] + "." + digits[cut:]
	if v < 0 {
		out = "-" + out
	}
	return out
}
