package menu

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat prints v in its shortest round-trip form, keeping a trailing
// ".0" on integral values and switching to exponent form for very large or
// very small magnitudes.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	abs := math.Abs(v)
	if abs >= 1e16 || (abs != 0 && abs < 1e-4) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// choiceList renders options as "a, b, c, or d".
func choiceList(options []string) string {
	switch len(options) {
	case 0:
		return ""
	case 1:
		return options[0]
	case 2:
		return options[0] + " or " + options[1]
	}
	return strings.Join(options[:len(options)-1], ", ") + ", or " + options[len(options)-1]
}
