package datareadiness

import (
	"testing"

	"datalab/adapters/datareadiness/coercer"
	"datalab/domain/dataset"
)

func TestProfileTable(t *testing.T) {
	table := dataset.NewTable("t.csv",
		[]string{"Geography", "Pop", "Region", "Blank"},
		[][]string{
			{"Autauga", "54571", "South", ""},
			{"Baldwin", "", "South", "NA"},
			{"Barbour", "27457", "South"},
			{"Bibb", "22915", "North"},
		})

	profiler := NewProfilerAdapter(coercer.NewColumnCoercer(coercer.DefaultCoercionConfig()))
	profiles := profiler.ProfileTable(table)

	if len(profiles) != 4 {
		t.Fatalf("Expected 4 profiles, got %d", len(profiles))
	}

	tests := []struct {
		column  string
		kind    ColumnKind
		missing int
		numeric int
	}{
		{"Geography", KindText, 0, 0},
		{"Pop", KindNumeric, 1, 3},
		{"Region", KindCategorical, 0, 0},
		{"Blank", KindEmpty, 4, 0},
	}

	for i, tt := range tests {
		got := profiles[i]
		if got.Column != tt.column {
			t.Errorf("profile %d: expected column %s, got %s", i, tt.column, got.Column)
		}
		if got.Kind != tt.kind {
			t.Errorf("%s: expected kind %s, got %s", tt.column, tt.kind, got.Kind)
		}
		if got.Missing != tt.missing || got.Numeric != tt.numeric {
			t.Errorf("%s: expected missing=%d numeric=%d, got %+v", tt.column, tt.missing, tt.numeric, got)
		}
	}

	if profiles[1].QualityScore != 0.75 {
		t.Errorf("Expected quality 0.75, got %v", profiles[1].QualityScore)
	}
}
