// Package field normalizes raw form text into numeric values.
//
// Every numeric input of the calculator arrives as text that may be empty or
// unparseable. Parse turns that text into a Value, which is either Empty or a
// finite Number, so the calculation packages never branch on runtime type.
package field

import (
	"math"
	"strconv"
	"strings"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Parse errors. Callers compare with errors.Is.
var (
	// ErrUnparseable indicates the raw text is not a number.
	ErrUnparseable = constError("value is not a number")

	// ErrNonFinite indicates the raw text parsed to Inf or NaN.
	ErrNonFinite = constError("value is not finite")
)

// Value is a tagged variant: Empty, or a finite Number.
// The zero Value is Empty.
type Value struct {
	n   float64
	set bool
}

// Empty returns the unset Value.
func Empty() Value { return Value{} }

// Number returns a set Value holding n. Non-finite n yields Empty.
func Number(n float64) Value {
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return Value{}
	}
	return Value{n: n, set: true}
}

// IsSet reports whether v holds a number.
func (v Value) IsSet() bool { return v.set }

// Float returns the number, or 0 when v is Empty.
func (v Value) Float() float64 { return v.n }

// Or returns the number, or def when v is Empty.
func (v Value) Or(def float64) float64 {
	if !v.set {
		return def
	}
	return v.n
}

// Positive returns the number when it is strictly positive, otherwise 0.
// Geometry and cost formulas use it so that degenerate inputs yield 0.
func (v Value) Positive() float64 {
	if !v.set || v.n <= 0 {
		return 0
	}
	return v.n
}

// Int returns the number truncated toward zero, or 0 when v is Empty.
func (v Value) Int() int {
	if !v.set {
		return 0
	}
	return int(v.n)
}

// IsInteger reports whether v is set and has no fractional part.
func (v Value) IsInteger() bool {
	return v.set && v.n == math.Trunc(v.n)
}

// Round returns v rounded to the given number of decimals. Empty stays Empty.
func (v Value) Round(decimals int) Value {
	if !v.set {
		return v
	}
	return Number(RoundTo(v.n, decimals))
}

// Text renders v the way a form field would show it: "" for Empty,
// otherwise the shortest decimal representation.
func (v Value) Text() string {
	if !v.set {
		return ""
	}
	return strconv.FormatFloat(v.n, 'f', -1, 64)
}

// String implements fmt.Stringer.
func (v Value) String() string {
	if !v.set {
		return "<empty>"
	}
	return v.Text()
}

// Parse converts raw form text into a Value.
//
// Blank text is Empty with no error. Thousands separators (",") and
// surrounding whitespace are ignored. Unparseable or non-finite text yields
// Empty together with ErrUnparseable or ErrNonFinite; callers treat the error
// as advisory and keep computing with the Empty value.
func Parse(raw string) (Value, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Value{}, nil
	}
	s = strings.ReplaceAll(s, ",", "")

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, ErrUnparseable
	}
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return Value{}, ErrNonFinite
	}
	return Value{n: n, set: true}, nil
}

// MustParse is Parse for literals in tests and defaults; it returns Empty on error.
func MustParse(raw string) Value {
	v, _ := Parse(raw)
	return v
}

// RoundTo rounds f half away from zero to the given number of decimals.
func RoundTo(f float64, decimals int) float64 {
	if decimals < 0 {
		decimals = 0
	}
	const base = 10
	multiplier := math.Pow(base, float64(decimals))
	return math.Round(f*multiplier) / multiplier
}
