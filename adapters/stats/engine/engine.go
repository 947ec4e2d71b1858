package engine

import (
	"fmt"
	"math"

	domainStats "datalab/domain/stats"
	"datalab/internal/errors"

	"github.com/montanaflynn/stats"
)

// StatsEngine computes summaries and histograms of numeric series. It holds
// no state; one engine can serve every request of a session.
type StatsEngine struct{}

// NewStatsEngine creates a new statistical engine
func NewStatsEngine() *StatsEngine {
	return &StatsEngine{}
}

// ComputeStatistics returns count, mean, sample standard deviation, min and
// max of series. An empty series is an EMPTY_SERIES error.
func (e *StatsEngine) ComputeStatistics(series domainStats.Series) (domainStats.Summary, error) {
	if len(series) == 0 {
		return domainStats.Summary{}, errors.EmptySeries("")
	}
	data := stats.Float64Data(series)

	mean, err := stats.Mean(data)
	if err != nil {
		return domainStats.Summary{}, errors.Wrap(err, "failed to compute mean")
	}

	min, err := stats.Min(data)
	if err != nil {
		return domainStats.Summary{}, errors.Wrap(err, "failed to compute min")
	}

	max, err := stats.Max(data)
	if err != nil {
		return domainStats.Summary{}, errors.Wrap(err, "failed to compute max")
	}

	// Sample standard deviation is undefined for a single value.
	stdDev := math.NaN()
	if len(series) >= 2 {
		stdDev, err = stats.StandardDeviationSample(data)
		if err != nil {
			return domainStats.Summary{}, errors.Wrap(err, "failed to compute standard deviation")
		}
	}

	return domainStats.Summary{
		Count:  len(series),
		Mean:   mean,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
	}, nil
}

// ComputeHistogram bins series into binCount equal-width bins spanning
// [min, max]. See binning.go for the assignment rule.
func (e *StatsEngine) ComputeHistogram(series domainStats.Series, binCount int) (domainStats.Histogram, error) {
	if binCount < 1 {
		return domainStats.Histogram{}, errors.InvalidInput(fmt.Sprintf("bin count must be positive, got %d", binCount))
	}
	if len(series) == 0 {
		return domainStats.Histogram{}, errors.EmptySeries("")
	}
	return binSeries(series, binCount), nil
}
