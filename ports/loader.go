package ports

import (
	"datalab/domain/dataset"
)

// TableLoader reads a delimited or spreadsheet file into a table
type TableLoader interface {
	Load(path string) (*dataset.Table, error)
}
