package runtime

import (
	"math"
	"strconv"
	"strings"
)

// Value is the only runtime datatype: a 64-bit float. Booleans are encoded
// as 1.0 (true) and 0.0 (false).
type Value float64

const (
	True  Value = 1.0
	False Value = 0.0
)

// Bool converts a Go boolean into its numeric encoding.
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Truthy reports whether v counts as true for logical operators (any
// nonzero value).
func (v Value) Truthy() bool {
	return v != 0
}

func (v Value) String() string {
	return FormatValue(v)
}

// FormatValue renders v the way program output prints it: up to twelve
// significant digits, with a trailing '.' on values that have neither a
// fractional part nor an exponent ("4.", "362880.", "0.5", "1e+20").
func FormatValue(v Value) string {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', 12, 64)
	if strings.ContainsAny(s, ".e") {
		return s
	}
	return s + "."
}
