package excel

import (
	"fmt"
	"path/filepath"
	"strings"

	"datalab/domain/dataset"
)

// FileType is the on-disk format of a data file
type FileType string

const (
	FileTypeCSV     FileType = "csv"
	FileTypeXLSX    FileType = "xlsx"
	FileTypeUnknown FileType = "unknown"
)

// DetectFileType picks the format from the file extension
func DetectFileType(path string) FileType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FileTypeCSV
	case ".xlsx", ".xlsm":
		return FileTypeXLSX
	}
	return FileTypeUnknown
}

// Loader implements ports.TableLoader on top of DataReader
type Loader struct {
	config LoaderConfig
}

// NewLoader creates a loader with the given options
func NewLoader(config LoaderConfig) *Loader {
	return &Loader{config: config}
}

// Load reads path into a table
func (l *Loader) Load(path string) (*dataset.Table, error) {
	return NewDataReaderWithConfig(path, l.config).ReadTable()
}

func rowLengthMessage(row, got, want int) string {
	return fmt.Sprintf("row %d has %d fields, header has %d", row, got, want)
}
