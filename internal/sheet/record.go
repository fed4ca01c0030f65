package sheet

import "strings"

// Record is one data row keyed by header column name.
// Records are built once and never modified.
type Record struct {
	columns []string
	values  map[string]string
}

// NewRecord aligns row to header. Missing trailing cells become "" and
// cells beyond the header are dropped. When the header repeats a name the
// right-most cell wins.
func NewRecord(header, row []string) Record {
	values := make(map[string]string, len(header))
	for i, col := range header {
		if i < len(row) {
			values[col] = row[i]
		} else {
			values[col] = ""
		}
	}
	return Record{columns: header, values: values}
}

// Get returns the raw value for column. An exact header match is tried
// first, then a case-insensitive one. Unknown columns return "".
func (r Record) Get(column string) string {
	if v, ok := r.values[column]; ok {
		return v
	}
	for _, c := range r.columns {
		if strings.EqualFold(c, column) {
			return r.values[c]
		}
	}
	return ""
}

// Has reports whether the header contains column (exact match).
func (r Record) Has(column string) bool {
	_, ok := r.values[column]
	return ok
}

// Columns returns the header the record was built from.
func (r Record) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Map returns a copy of the column/value pairs.
func (r Record) Map() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// BuildRecords treats the first non-blank row as the header and turns every
// later non-blank row into a Record. Header cells are trimmed; data cells
// are kept verbatim.
func BuildRecords(rows [][]string) []Record {
	start := 0
	for start < len(rows) && isBlankRow(rows[start]) {
		start++
	}
	if start >= len(rows) {
		return nil
	}

	header := make([]string, len(rows[start]))
	for i, h := range rows[start] {
		header[i] = strings.TrimSpace(h)
	}

	records := make([]Record, 0, len(rows)-start-1)
	for _, row := range rows[start+1:] {
		if isBlankRow(row) {
			continue
		}
		records = append(records, NewRecord(header, row))
	}
	return records
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
