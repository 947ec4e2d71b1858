package engine

import (
	"math"

	domainStats "datalab/domain/stats"

	"gonum.org/v1/gonum/floats"
)

// binSeries assigns every value x to bin floor((x-min)/width), clamping the
// index to the last bin so that max lands in it, then corrects the index
// against the returned edges so each bin counts exactly the values inside
// its own interval. series must not be empty.
func binSeries(series domainStats.Series, binCount int) domainStats.Histogram {
	min, max := floats.Min(series), floats.Max(series)

	// All values equal: one bin, avoiding a zero width division.
	if min == max {
		return domainStats.Histogram{
			Min:  min,
			Max:  max,
			Bins: []domainStats.Bin{{Lower: min, Upper: max, Count: len(series)}},
		}
	}

	width := (max - min) / float64(binCount)
	edges := floats.Span(make([]float64, binCount+1), min, max)
	edges[binCount] = max

	bins := make([]domainStats.Bin, binCount)
	for i := range bins {
		bins[i].Lower = edges[i]
		bins[i].Upper = edges[i+1]
	}

	for _, x := range series {
		bins[edgeIndex(x, edges, binIndex(x, min, width, binCount))].Count++
	}

	return domainStats.Histogram{
		Min:   min,
		Max:   max,
		Width: width,
		Bins:  bins,
	}
}

func binIndex(x, min, width float64, binCount int) int {
	i := int(math.Floor((x - min) / width))
	if i < 0 {
		return 0
	}
	if i >= binCount {
		return binCount - 1
	}
	return i
}

// edgeIndex moves i by one bin when rounding in floor((x-min)/width) put x
// outside [edges[i], edges[i+1]). The last bin is closed.
func edgeIndex(x float64, edges []float64, i int) int {
	last := len(edges) - 2
	if i > 0 && x < edges[i] {
		return i - 1
	}
	if i < last && x >= edges[i+1] {
		return i + 1
	}
	return i
}
