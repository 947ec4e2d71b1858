package engine

import (
	"math"
	"math/rand"
	"testing"

	domainStats "datalab/domain/stats"
	"datalab/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStatistics_Example(t *testing.T) {
	e := NewStatsEngine()

	summary, err := e.ComputeStatistics(domainStats.Series{10, 20, 30, 40})
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Count)
	assert.InDelta(t, 25.0, summary.Mean, 1e-12)
	assert.InDelta(t, 12.909944487358056, summary.StdDev, 1e-9)
	assert.Equal(t, 10.0, summary.Min)
	assert.Equal(t, 40.0, summary.Max)
	assert.True(t, summary.HasStdDev())
}

func TestComputeStatistics_IdenticalValues(t *testing.T) {
	e := NewStatsEngine()

	for _, n := range []int{1, 2, 7} {
		series := make(domainStats.Series, n)
		for i := range series {
			series[i] = 3.25
		}

		summary, err := e.ComputeStatistics(series)
		require.NoError(t, err)
		assert.Equal(t, n, summary.Count)
		assert.Equal(t, 3.25, summary.Mean)
		assert.Equal(t, 3.25, summary.Min)
		assert.Equal(t, 3.25, summary.Max)

		if n == 1 {
			assert.True(t, math.IsNaN(summary.StdDev), "single value std dev should be NaN")
			assert.False(t, summary.HasStdDev())
		} else {
			assert.Equal(t, 0.0, summary.StdDev)
		}
	}
}

func TestComputeStatistics_Empty(t *testing.T) {
	_, err := NewStatsEngine().ComputeStatistics(nil)
	assert.True(t, errors.HasCode(err, errors.CodeEmptySeries), "got %v", err)
}

func TestComputeStatistics_CountMatchesLength(t *testing.T) {
	e := NewStatsEngine()
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		series := randomSeries(rng, 1+rng.Intn(200))
		summary, err := e.ComputeStatistics(series)
		require.NoError(t, err)
		assert.Equal(t, len(series), summary.Count)
		assert.LessOrEqual(t, summary.Min, summary.Mean)
		assert.GreaterOrEqual(t, summary.Max, summary.Mean)
	}
}

func TestComputeHistogram_Example(t *testing.T) {
	h, err := NewStatsEngine().ComputeHistogram(domainStats.Series{10, 20, 30, 40}, domainStats.DefaultBinCount)
	require.NoError(t, err)

	require.Len(t, h.Bins, 10)
	assert.InDelta(t, 3.0, h.Width, 1e-12)
	assert.Equal(t, 10.0, h.Bins[0].Lower)
	assert.Equal(t, 40.0, h.Bins[9].Upper)

	want := []int{1, 0, 0, 1, 0, 0, 1, 0, 0, 1}
	for i, b := range h.Bins {
		assert.Equal(t, want[i], b.Count, "bin %d", i)
		assert.InDelta(t, b.Upper-b.Lower, 3.0, 1e-9, "bin %d width", i)
	}
	assert.Equal(t, 4, h.Total())
}

func TestComputeHistogram_Degenerate(t *testing.T) {
	h, err := NewStatsEngine().ComputeHistogram(domainStats.Series{5, 5, 5}, domainStats.DefaultBinCount)
	require.NoError(t, err)

	require.Len(t, h.Bins, 1)
	assert.True(t, h.Degenerate())
	assert.Equal(t, domainStats.Bin{Lower: 5, Upper: 5, Count: 3}, h.Bins[0])
}

func TestComputeHistogram_Errors(t *testing.T) {
	e := NewStatsEngine()

	_, err := e.ComputeHistogram(domainStats.Series{}, domainStats.DefaultBinCount)
	assert.True(t, errors.HasCode(err, errors.CodeEmptySeries), "got %v", err)

	_, err = e.ComputeHistogram(domainStats.Series{1, 2}, 0)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidInput), "got %v", err)
}

func TestComputeHistogram_EveryValueInExactlyOneBin(t *testing.T) {
	e := NewStatsEngine()
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 100; trial++ {
		series := randomSeries(rng, 1+rng.Intn(300))
		binCount := 1 + rng.Intn(20)

		h, err := e.ComputeHistogram(series, binCount)
		require.NoError(t, err)
		assert.Equal(t, len(series), h.Total(), "counts must sum to series length")

		if h.Degenerate() {
			continue
		}
		require.Len(t, h.Bins, binCount)
		for i := 1; i < len(h.Bins); i++ {
			assert.Equal(t, h.Bins[i-1].Upper, h.Bins[i].Lower, "edges must be contiguous")
		}

		assertBinsHoldOwnValues(t, series, h)
	}
}

// TestComputeHistogram_EdgeValuesMatchIntervals tests values on or near bin
// edges, where floor((x-min)/width) and the computed edges can disagree.
func TestComputeHistogram_EdgeValuesMatchIntervals(t *testing.T) {
	e := NewStatsEngine()
	rng := rand.New(rand.NewSource(11))

	// One-decimal values put many points on or next to the edges.
	for trial := 0; trial < 2000; trial++ {
		series := make(domainStats.Series, 2+rng.Intn(40))
		for i := range series {
			series[i] = float64(rng.Intn(1000)) / 10
		}

		h, err := e.ComputeHistogram(series, domainStats.DefaultBinCount)
		require.NoError(t, err)
		if h.Degenerate() {
			continue
		}
		assertBinsHoldOwnValues(t, series, h)
	}

	// Over [9.2, 92.4] the floor puts 50.8 in bin 4 while edge 5 rounds to 50.8.
	h, err := e.ComputeHistogram(domainStats.Series{9.2, 50.8, 55.5, 92.4}, domainStats.DefaultBinCount)
	require.NoError(t, err)
	assertBinsHoldOwnValues(t, domainStats.Series{9.2, 50.8, 55.5, 92.4}, h)
}

// assertBinsHoldOwnValues recounts series against the returned intervals:
// every bin is [Lower, Upper) except the last, which is closed.
func assertBinsHoldOwnValues(t *testing.T, series domainStats.Series, h domainStats.Histogram) {
	t.Helper()
	recount := make([]int, len(h.Bins))
	for _, x := range series {
		matches := 0
		for i, b := range h.Bins {
			last := i == len(h.Bins)-1
			if x >= b.Lower && (x < b.Upper || (last && x <= b.Upper)) {
				recount[i]++
				matches++
			}
		}
		require.Equal(t, 1, matches, "value %v must fall in exactly one interval", x)
	}
	for i, b := range h.Bins {
		assert.Equal(t, recount[i], b.Count, "bin %d [%v, %v)", i, b.Lower, b.Upper)
	}
}

func TestComputeHistogram_MaxInLastBin(t *testing.T) {
	h, err := NewStatsEngine().ComputeHistogram(domainStats.Series{0, 0.1, 0.2, 0.3, 0.7}, 7)
	require.NoError(t, err)

	last := h.Bins[len(h.Bins)-1]
	assert.Equal(t, 0.7, last.Upper)
	assert.GreaterOrEqual(t, last.Count, 1)
	assert.Equal(t, 1, h.Bins[0].Count)
}

func randomSeries(rng *rand.Rand, n int) domainStats.Series {
	series := make(domainStats.Series, n)
	for i := range series {
		switch rng.Intn(3) {
		case 0:
			series[i] = float64(rng.Intn(10)) // Repeated integers
		case 1:
			series[i] = rng.NormFloat64()*1000 + 500
		default:
			series[i] = rng.Float64()
		}
	}
	return series
}
