package app

import (
	"datalab/adapters/datareadiness/coercer"
	"datalab/adapters/stats/engine"
	"datalab/domain/dataset"
	"datalab/domain/stats"
	"datalab/internal/errors"
)

// Analysis is the full result for one column
type Analysis struct {
	Column    string          `json:"column"`
	Summary   stats.Summary   `json:"summary"`
	Histogram stats.Histogram `json:"histogram"`
	Report    coercer.Report  `json:"report"`
}

// DataAnalyzer runs column analyses against one loaded table
type DataAnalyzer struct {
	table    *dataset.Table
	coercer  *coercer.ColumnCoercer
	engine   *engine.StatsEngine
	binCount int
}

// NewDataAnalyzer creates an analyzer over table. The table is not modified.
func NewDataAnalyzer(table *dataset.Table, c *coercer.ColumnCoercer, e *engine.StatsEngine) *DataAnalyzer {
	return &DataAnalyzer{
		table:    table,
		coercer:  c,
		engine:   e,
		binCount: stats.DefaultBinCount,
	}
}

// Table returns the analyzed table
func (a *DataAnalyzer) Table() *dataset.Table {
	return a.table
}

// ComputeStatistics coerces column and summarizes it
func (a *DataAnalyzer) ComputeStatistics(column string) (stats.Summary, error) {
	series, _, err := a.series(column)
	if err != nil {
		return stats.Summary{}, err
	}
	return a.engine.ComputeStatistics(series)
}

// ComputeHistogram coerces column and bins it into the default bin count
func (a *DataAnalyzer) ComputeHistogram(column string) (stats.Histogram, error) {
	series, _, err := a.series(column)
	if err != nil {
		return stats.Histogram{}, err
	}
	return a.engine.ComputeHistogram(series, a.binCount)
}

// Analyze coerces column once and computes both summary and histogram
func (a *DataAnalyzer) Analyze(column string) (*Analysis, error) {
	series, report, err := a.series(column)
	if err != nil {
		return nil, err
	}

	summary, err := a.engine.ComputeStatistics(series)
	if err != nil {
		return nil, err
	}
	histogram, err := a.engine.ComputeHistogram(series, a.binCount)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Column:    column,
		Summary:   summary,
		Histogram: histogram,
		Report:    report,
	}, nil
}

func (a *DataAnalyzer) series(column string) (stats.Series, coercer.Report, error) {
	series, report, err := a.coercer.CoerceWithReport(a.table, column)
	if err != nil {
		return nil, report, err
	}
	if len(series) == 0 {
		return nil, report, errors.EmptySeries(column)
	}
	return series, report, nil
}
