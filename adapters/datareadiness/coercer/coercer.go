package coercer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"datalab/domain/dataset"
	"datalab/domain/stats"
	"datalab/internal/errors"
)

// Policy decides what happens to a present cell that is not a number.
type Policy string

const (
	// PolicyStrict fails the whole column on the first non-numeric cell.
	PolicyStrict Policy = "strict"
	// PolicyLenient skips non-numeric cells and records them in the report.
	PolicyLenient Policy = "lenient"
)

// ParsePolicy converts a configuration value to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyStrict, "":
		return PolicyStrict, nil
	case PolicyLenient:
		return PolicyLenient, nil
	}
	return "", errors.ConfigInvalid(fmt.Sprintf("unknown coercion policy %q (want strict or lenient)", s))
}

// CoercionConfig defines the coercion rules
type CoercionConfig struct {
	Policy     Policy   `json:"policy"`
	NATokens   []string `json:"na_tokens"`   // Cell texts treated as missing
	TrimSpaces bool     `json:"trim_spaces"` // Trim whitespace before parsing
}

// DefaultNATokens are the cell texts read as missing, matching the usual CSV
// reader defaults.
var DefaultNATokens = []string{
	"NA", "N/A", "n/a", "NaN", "nan", "-NaN", "-nan",
	"NULL", "null", "None", "<NA>",
	"#N/A", "#N/A N/A", "#NA",
	"-1.#IND", "-1.#QNAN", "1.#IND", "1.#QNAN",
}

// DefaultCoercionConfig returns the strict, all-or-nothing rules
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		Policy:     PolicyStrict,
		NATokens:   DefaultNATokens,
		TrimSpaces: true,
	}
}

// Rejection is a cell skipped under the lenient policy.
type Rejection struct {
	Row   int    `json:"row"` // 1-based data row
	Value string `json:"value"`
}

// Report summarizes one coercion.
type Report struct {
	Column   string      `json:"column"`
	Total    int         `json:"total"`   // Rows in the table
	Missing  int         `json:"missing"` // Empty or NA cells dropped
	Rejected []Rejection `json:"rejected,omitempty"`
}

// Kept returns the number of values in the resulting series.
func (r Report) Kept() int {
	return r.Total - r.Missing - len(r.Rejected)
}

// ColumnCoercer extracts a column from a table as a numeric series
type ColumnCoercer struct {
	config CoercionConfig
	na     map[string]struct{}
}

// NewColumnCoercer creates a coercer with the given config
func NewColumnCoercer(config CoercionConfig) *ColumnCoercer {
	if config.Policy == "" {
		config.Policy = PolicyStrict
	}
	na := make(map[string]struct{}, len(config.NATokens))
	for _, token := range config.NATokens {
		na[token] = struct{}{}
	}
	return &ColumnCoercer{config: config, na: na}
}

// Policy returns the configured policy.
func (c *ColumnCoercer) Policy() Policy {
	return c.config.Policy
}

// Coerce returns the numeric values of column in row order, missing cells
// removed.
func (c *ColumnCoercer) Coerce(table *dataset.Table, column string) (stats.Series, error) {
	series, _, err := c.CoerceWithReport(table, column)
	return series, err
}

// CoerceWithReport is Coerce plus a report of what was dropped. Under the
// strict policy a non-numeric cell fails the whole column and no series is
// returned.
func (c *ColumnCoercer) CoerceWithReport(table *dataset.Table, column string) (stats.Series, Report, error) {
	report := Report{Column: column}

	cells, ok := table.Column(column)
	if !ok {
		return nil, report, errors.ColumnNotFound(column)
	}
	report.Total = len(cells)

	series := make(stats.Series, 0, len(cells))
	for i, raw := range cells {
		cell := raw
		if c.config.TrimSpaces {
			cell = strings.TrimSpace(cell)
		}
		if c.isMissing(cell) {
			report.Missing++
			continue
		}

		val, err := parseFinite(cell)
		if err != nil {
			if c.config.Policy == PolicyLenient {
				report.Rejected = append(report.Rejected, Rejection{Row: i + 1, Value: raw})
				continue
			}
			return nil, report, errors.ConversionError(column, i+1, raw, err)
		}
		series = append(series, val)
	}

	return series, report, nil
}

// CellClass is how a single cell is read.
type CellClass int

const (
	CellMissing CellClass = iota
	CellNumeric
	CellInvalid
)

// Classify reads one raw cell the way Coerce would.
func (c *ColumnCoercer) Classify(raw string) (CellClass, float64) {
	cell := raw
	if c.config.TrimSpaces {
		cell = strings.TrimSpace(cell)
	}
	if c.isMissing(cell) {
		return CellMissing, 0
	}
	val, err := parseFinite(cell)
	if err != nil {
		return CellInvalid, 0
	}
	return CellNumeric, val
}

func (c *ColumnCoercer) isMissing(cell string) bool {
	if cell == "" {
		return true
	}
	_, ok := c.na[cell]
	return ok
}

// parseFinite is a strict float parse: no separators, no symbols, no
// infinities.
func parseFinite(cell string) (float64, error) {
	val, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, fmt.Errorf("non-finite value %q", cell)
	}
	return val, nil
}
