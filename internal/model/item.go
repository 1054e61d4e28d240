package model

import (
	"math"
	"strconv"
	"strings"
)

// LineItem is a single input row of a report.
// Items are treated as immutable: renderers read them and never modify them.
type LineItem struct {
	// ID identifies the item. It is rendered verbatim.
	ID string `json:"id" yaml:"id"`

	// Name is the display name of the item.
	Name string `json:"name" yaml:"name"`

	// Value is the numeric amount that report totals are computed from.
	Value float64 `json:"value" yaml:"value"`
}

// Magnitudes outside [minPlain, maxPlain) are printed in exponent form.
const (
	minPlain = 1e-6
	maxPlain = 1e21
)

// FormatValue renders a numeric value the way reports print it: the
// shortest decimal that round-trips, without trailing zeros. For example
// 1500 renders as "1500" and 12.5 as "12.5".
//
// Negative zero prints as "0". Magnitudes of 1e21 and above or below 1e-6
// use an exponent ("1e+21", "1.5e-7"), and infinities print as "Infinity".
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	if abs := math.Abs(v); abs >= maxPlain || abs < minPlain {
		mantissa, exp, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
		n, _ := strconv.Atoi(exp) //nolint:errcheck // FormatFloat always emits a valid exponent
		if n >= 0 {
			return mantissa + "e+" + strconv.Itoa(n)
		}
		return mantissa + "e" + strconv.Itoa(n)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
