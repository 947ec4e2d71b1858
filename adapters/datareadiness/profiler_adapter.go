package datareadiness

import (
	"datalab/adapters/datareadiness/coercer"
	"datalab/domain/dataset"
)

// ColumnKind is the inferred content of a column
type ColumnKind string

const (
	KindNumeric     ColumnKind = "numeric"
	KindCategorical ColumnKind = "categorical"
	KindText        ColumnKind = "text"
	KindEmpty       ColumnKind = "empty"
)

// ColumnProfile summarizes how a column would coerce
type ColumnProfile struct {
	Column       string     `json:"column"`
	Kind         ColumnKind `json:"kind"`
	Total        int        `json:"total"`
	Missing      int        `json:"missing"`
	Numeric      int        `json:"numeric"`
	Invalid      int        `json:"invalid"`
	Distinct     int        `json:"distinct"`
	QualityScore float64    `json:"quality_score"` // Share of present cells
}

// ProfilerAdapter profiles the columns of a table
type ProfilerAdapter struct {
	coercer *coercer.ColumnCoercer
}

// NewProfilerAdapter creates a new profiler adapter
func NewProfilerAdapter(c *coercer.ColumnCoercer) *ProfilerAdapter {
	return &ProfilerAdapter{coercer: c}
}

// ProfileTable profiles every column in header order
func (p *ProfilerAdapter) ProfileTable(table *dataset.Table) []ColumnProfile {
	if table == nil {
		return nil
	}
	profiles := make([]ColumnProfile, 0, len(table.Headers))
	for _, header := range table.Headers {
		cells, _ := table.Column(header)
		profiles = append(profiles, p.profileColumn(header, cells))
	}
	return profiles
}

// profileColumn analyzes a single column
func (p *ProfilerAdapter) profileColumn(column string, cells []string) ColumnProfile {
	profile := ColumnProfile{Column: column, Total: len(cells)}
	distinct := make(map[string]struct{})

	for _, cell := range cells {
		class, _ := p.coercer.Classify(cell)
		switch class {
		case coercer.CellMissing:
			profile.Missing++
			continue
		case coercer.CellNumeric:
			profile.Numeric++
		case coercer.CellInvalid:
			profile.Invalid++
		}
		distinct[cell] = struct{}{}
	}

	profile.Distinct = len(distinct)
	profile.Kind = inferKind(profile)
	if profile.Total > 0 {
		profile.QualityScore = 1.0 - float64(profile.Missing)/float64(profile.Total)
	}
	return profile
}

// inferKind determines the most likely kind from the cell counts. Text with
// at most one distinct value per two cells is categorical.
func inferKind(profile ColumnProfile) ColumnKind {
	present := profile.Numeric + profile.Invalid
	if present == 0 {
		return KindEmpty
	}
	if profile.Invalid == 0 {
		return KindNumeric
	}
	if float64(profile.Distinct)/float64(present) <= 0.5 {
		return KindCategorical
	}
	return KindText
}
