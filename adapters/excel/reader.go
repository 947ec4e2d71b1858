package excel

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"datalab/domain/dataset"
	"datalab/internal/errors"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// utf8BOM is stripped from the start of CSV files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType FileType
	config   LoaderConfig
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	return NewDataReaderWithConfig(filePath, DefaultLoaderConfig())
}

// NewDataReaderWithConfig creates a data reader with explicit CSV options
func NewDataReaderWithConfig(filePath string, config LoaderConfig) *DataReader {
	return &DataReader{
		filePath: filePath,
		fileType: DetectFileType(filePath),
		config:   config,
	}
}

// ReadTable reads the file into a table. The first record is the header row.
func (r *DataReader) ReadTable() (*dataset.Table, error) {
	logger := zap.L().With(zap.String("path", r.filePath), zap.String("type", string(r.fileType)))
	logger.Debug("Starting to read file")

	if _, err := os.Stat(r.filePath); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileNotFound(r.filePath, err)
		}
		return nil, errors.Wrapf(err, "failed to stat %s", r.filePath)
	}

	var (
		rows [][]string
		err  error
	)
	start := time.Now()
	switch r.fileType {
	case FileTypeCSV:
		rows, err = r.readCSVRows()
	case FileTypeXLSX:
		rows, err = r.readExcelRows()
	default:
		return nil, errors.InvalidInput("unsupported file type: " + filepath.Ext(r.filePath))
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("File read",
		zap.Int("records", len(rows)),
		zap.Float64("elapsed_ms", float64(time.Since(start).Nanoseconds())/1e6))

	return r.processRows(rows)
}

// readExcelRows reads every row of the first sheet
func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.MalformedData(r.filePath, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.EmptyData(r.filePath)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.MalformedData(r.filePath, err)
	}

	// excelize returns empty slices for blank rows; csv skips them, so do we.
	out := rows[:0]
	for _, row := range rows {
		if len(row) > 0 {
			out = append(out, row)
		}
	}
	return out, nil
}

// readCSVRows reads all records, allowing records of varying length
func (r *DataReader) readCSVRows() ([][]string, error) {
	content, err := os.ReadFile(r.filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open CSV file %s", r.filePath)
	}
	content = bytes.TrimPrefix(content, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	if r.config.Comma != 0 {
		reader.Comma = r.config.Comma
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.MalformedData(r.filePath, err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// processRows converts raw string rows into a table
func (r *DataReader) processRows(rows [][]string) (*dataset.Table, error) {
	if len(rows) < 2 {
		return nil, errors.EmptyData(r.filePath)
	}

	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	records := rows[1:]
	for i, record := range records {
		if len(record) > len(headers) {
			return nil, errors.MalformedData(r.filePath,
				errors.InvalidInput(rowLengthMessage(i+1, len(record), len(headers))))
		}
		if r.config.TrimSpaces {
			for j := range record {
				record[j] = strings.TrimSpace(record[j])
			}
		}
	}

	table := dataset.NewTable(filepath.Base(r.filePath), headers, records)
	zap.L().Debug("File processed",
		zap.String("path", r.filePath),
		zap.Int("columns", len(headers)),
		zap.Int("rows", table.Len()))
	return table, nil
}
