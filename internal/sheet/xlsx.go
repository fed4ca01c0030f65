package sheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnreadableWorkbook is returned when an XLSX body cannot be opened.
var ErrUnreadableWorkbook = errors.New("unreadable workbook")

// Format is the wire format of the published export.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat converts a config value to a Format. Empty selects CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unknown source format %q (want csv or xlsx)", s)
	}
}

// ReadOptions describes how to decode a source body.
type ReadOptions struct {
	Format   Format
	Text     Options
	MaxBytes int64
}

// Read decodes a whole export body into records.
// Text formats only fail on I/O errors or the size limit.
func Read(r io.Reader, opts ReadOptions) ([]Record, error) {
	if opts.Format == FormatXLSX {
		return ParseXLSX(NewCountingReader(r, opts.MaxBytes))
	}

	text, err := ReadText(r, opts.MaxBytes)
	if err != nil {
		return nil, err
	}
	return Parse(text, opts.Text), nil
}

// ParseXLSX reads the first worksheet of a workbook. Other sheets are
// ignored.
func ParseXLSX(r io.Reader) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		if errors.Is(err, ErrTooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrUnreadableWorkbook, sheets[0], err)
	}
	return BuildRecords(rows), nil
}
