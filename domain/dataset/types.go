package dataset

// Row maps column name to the raw cell text. An empty string is a missing cell.
type Row map[string]string

// Table is a loaded dataset. It is built once by a loader and not modified
// afterwards; every row carries every header.
type Table struct {
	Name    string   `json:"name"`    // Source name, usually the file name
	Headers []string `json:"headers"` // Column names in file order
	Rows    []Row    `json:"rows"`
}

// NewTable builds a table from headers and positional records. Short records
// are padded with empty cells; cells beyond the headers are ignored.
func NewTable(name string, headers []string, records [][]string) *Table {
	rows := make([]Row, 0, len(records))
	for _, record := range records {
		row := make(Row, len(headers))
		for i, header := range headers {
			if i < len(record) {
				row[header] = record[i]
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	return &Table{
		Name:    name,
		Headers: append([]string(nil), headers...),
		Rows:    rows,
	}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether column is one of the table's headers.
func (t *Table) HasColumn(column string) bool {
	if t == nil {
		return false
	}
	for _, header := range t.Headers {
		if header == column {
			return true
		}
	}
	return false
}

// Column returns the raw cells of column in row order.
func (t *Table) Column(column string) ([]string, bool) {
	if !t.HasColumn(column) {
		return nil, false
	}
	cells := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		cells[i] = row[column]
	}
	return cells, true
}
