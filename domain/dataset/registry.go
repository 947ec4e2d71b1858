package dataset

import (
	"fmt"
	"strings"
)

// ID identifies one of the fixed datasets.
type ID string

const (
	PopulationID ID = "population"
	HousingID    ID = "housing"
)

// Descriptor describes a dataset the tool knows how to analyze.
type Descriptor struct {
	ID      ID       `json:"id"`
	Title   string   `json:"title"`   // Menu title, e.g. "Population Data"
	Label   string   `json:"label"`   // Short name used in load errors
	File    string   `json:"file"`    // File name inside the data directory
	Columns []string `json:"columns"` // Columns offered for analysis
}

var registry = []Descriptor{
	{
		ID:      PopulationID,
		Title:   "Population Data",
		Label:   "Population",
		File:    "PopChange.csv",
		Columns: []string{"Pop Apr 1", "Pop Jul 1", "Change Pop"},
	},
	{
		ID:      HousingID,
		Title:   "Housing Data",
		Label:   "Housing",
		File:    "Housing.csv",
		Columns: []string{"AGE", "BEDRMS", "BUILT", "ROOMS", "UTILITY"},
	},
}

// Datasets returns the known datasets in menu order.
func Datasets() []Descriptor {
	out := make([]Descriptor, len(registry))
	for i, d := range registry {
		d.Columns = append([]string(nil), d.Columns...)
		out[i] = d
	}
	return out
}

// Lookup finds a dataset by id, ignoring case.
func Lookup(id string) (Descriptor, bool) {
	for _, d := range Datasets() {
		if strings.EqualFold(string(d.ID), strings.TrimSpace(id)) {
			return d, true
		}
	}
	return Descriptor{}, false
}

// HasColumn reports whether column is part of the dataset's vocabulary.
func (d Descriptor) HasColumn(column string) bool {
	for _, c := range d.Columns {
		if c == column {
			return true
		}
	}
	return false
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s (%s)", d.Title, d.File)
}
