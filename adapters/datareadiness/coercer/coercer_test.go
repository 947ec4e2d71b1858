package coercer

import (
	"testing"

	"datalab/domain/dataset"
	"datalab/internal/errors"
)

func singleColumn(name string, cells ...string) *dataset.Table {
	records := make([][]string, len(cells))
	for i, c := range cells {
		records[i] = []string{c}
	}
	return dataset.NewTable("test.csv", []string{name}, records)
}

// TestCoerceDropsMissing tests that empty cells are silently excluded
func TestCoerceDropsMissing(t *testing.T) {
	c := NewColumnCoercer(DefaultCoercionConfig())
	series, err := c.Coerce(singleColumn("x", "5", "", "7"), "x")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(series) != 2 || series[0] != 5.0 || series[1] != 7.0 {
		t.Errorf("Expected [5 7], got %v", series)
	}
}

// TestCoerceNATokens tests that common NA spellings count as missing
func TestCoerceNATokens(t *testing.T) {
	c := NewColumnCoercer(DefaultCoercionConfig())
	series, report, err := c.CoerceWithReport(singleColumn("x", "1", "NA", " nan ", "N/A", "#N/A", "null", "2.5"), "x")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(series) != 2 {
		t.Errorf("Expected 2 values, got %v", series)
	}
	if report.Missing != 5 {
		t.Errorf("Expected 5 missing, got %d", report.Missing)
	}
	if report.Kept() != 2 {
		t.Errorf("Expected 2 kept, got %d", report.Kept())
	}
}

// TestCoercePreservesOrder tests that output order follows row order
func TestCoercePreservesOrder(t *testing.T) {
	c := NewColumnCoercer(DefaultCoercionConfig())
	series, err := c.Coerce(singleColumn("x", "3", "-1.5", "1e3", "", "0", "+2"), "x")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := []float64{3, -1.5, 1000, 0, 2}
	if len(series) != len(want) {
		t.Fatalf("Expected %d values, got %d", len(want), len(series))
	}
	for i := range want {
		if series[i] != want[i] {
			t.Errorf("index %d: expected %v, got %v", i, want[i], series[i])
		}
	}
}

// TestCoerceColumnNotFound tests absent columns
func TestCoerceColumnNotFound(t *testing.T) {
	c := NewColumnCoercer(DefaultCoercionConfig())
	_, err := c.Coerce(singleColumn("x", "1"), "y")
	if !errors.HasCode(err, errors.CodeColumnNotFound) {
		t.Errorf("Expected %s, got %v", errors.CodeColumnNotFound, err)
	}
}

// TestCoerceStrictIsAllOrNothing tests that one bad cell fails the column
func TestCoerceStrictIsAllOrNothing(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
	}{
		{"letters", []string{"1", "abc", "3"}},
		{"thousands separator", []string{"1,234"}},
		{"currency", []string{"$12"}},
		{"infinity", []string{"1", "inf"}},
		{"overflow", []string{"1e400"}},
		{"trailing garbage", []string{"12abc"}},
	}

	c := NewColumnCoercer(DefaultCoercionConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, err := c.Coerce(singleColumn("x", tt.cells...), "x")
			if !errors.HasCode(err, errors.CodeConversion) {
				t.Fatalf("Expected %s, got %v", errors.CodeConversion, err)
			}
			if series != nil {
				t.Errorf("Expected no partial series, got %v", series)
			}
		})
	}
}

// TestCoerceStrictReportsRow tests that the failing row and value are named
func TestCoerceStrictReportsRow(t *testing.T) {
	c := NewColumnCoercer(DefaultCoercionConfig())
	_, err := c.Coerce(singleColumn("AGE", "1", "", "abc"), "AGE")
	if err == nil {
		t.Fatal("Expected error")
	}
	want := `could not convert "abc" in column "AGE" (row 3) to float`
	if got := err.(*errors.AppError).Message; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

// TestCoerceLenient tests per-value skipping
func TestCoerceLenient(t *testing.T) {
	config := DefaultCoercionConfig()
	config.Policy = PolicyLenient
	c := NewColumnCoercer(config)

	series, report, err := c.CoerceWithReport(singleColumn("x", "1", "abc", "", "4"), "x")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(series) != 2 || series[1] != 4 {
		t.Errorf("Expected [1 4], got %v", series)
	}
	if len(report.Rejected) != 1 || report.Rejected[0].Row != 2 || report.Rejected[0].Value != "abc" {
		t.Errorf("Unexpected rejections: %+v", report.Rejected)
	}
	if report.Missing != 1 || report.Total != 4 {
		t.Errorf("Unexpected report: %+v", report)
	}
}

// TestParsePolicy tests policy parsing from configuration
func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input    string
		expected Policy
		hasError bool
	}{
		{"", PolicyStrict, false},
		{"strict", PolicyStrict, false},
		{" Lenient ", PolicyLenient, false},
		{"forgiving", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePolicy(tt.input)
		if (err != nil) != tt.hasError {
			t.Errorf("ParsePolicy(%q) error = %v, hasError %v", tt.input, err, tt.hasError)
		}
		if got != tt.expected {
			t.Errorf("ParsePolicy(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

// TestClassify tests single cell classification
func TestClassify(t *testing.T) {
	c := NewColumnCoercer(DefaultCoercionConfig())
	tests := []struct {
		cell     string
		expected CellClass
		value    float64
	}{
		{" 12.5 ", CellNumeric, 12.5},
		{"", CellMissing, 0},
		{"NA", CellMissing, 0},
		{"twelve", CellInvalid, 0},
	}

	for _, tt := range tests {
		class, val := c.Classify(tt.cell)
		if class != tt.expected || val != tt.value {
			t.Errorf("Classify(%q) = (%v, %v), want (%v, %v)", tt.cell, class, val, tt.expected, tt.value)
		}
	}
}
