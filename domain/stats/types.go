package stats

import (
	"fmt"
	"math"
)

// DefaultBinCount is the number of histogram bins used everywhere in the tool.
const DefaultBinCount = 10

// Series is a coerced numeric column. Every element is finite.
type Series []float64

// Summary holds the five descriptive statistics of a series.
// INVARIANTS:
// - Count >= 1 (an empty series has no summary)
// - StdDev is the sample (n-1) standard deviation, NaN when Count == 1
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// HasStdDev reports whether the standard deviation is defined.
func (s Summary) HasStdDev() bool {
	return s.Count >= 2 && !math.IsNaN(s.StdDev)
}

// Bin is one histogram interval. All bins are half-open [Lower, Upper) except
// the last, which also includes Upper.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

func (b Bin) String() string {
	return fmt.Sprintf("[%g, %g): %d", b.Lower, b.Upper, b.Count)
}

// Histogram is an equal-width frequency distribution spanning [Min, Max].
// When Min == Max it has a single zero-width bin holding every value.
type Histogram struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Width float64 `json:"width"`
	Bins  []Bin   `json:"bins"`
}

// Total returns the sum of all bin counts.
func (h Histogram) Total() int {
	total := 0
	for _, b := range h.Bins {
		total += b.Count
	}
	return total
}

// MaxCount returns the largest bin count.
func (h Histogram) MaxCount() int {
	max := 0
	for _, b := range h.Bins {
		if b.Count > max {
			max = b.Count
		}
	}
	return max
}

// Degenerate reports whether all values were equal.
func (h Histogram) Degenerate() bool {
	return len(h.Bins) == 1 && h.Min == h.Max
}
