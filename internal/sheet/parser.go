// Package sheet turns a published spreadsheet export into header-keyed records.
//
// Two text grammars are supported:
//
//   - GrammarQuoted (default): CSV-like, double quotes escape delimiters and
//     newlines, a doubled quote inside a quoted field is a literal quote.
//   - GrammarSimple: one record per line, cells split on the delimiter, no
//     quoting at all.
//
// XLSX exports are read from their first sheet with ParseXLSX.
//
// Parsing never fails on malformed text. The worst case is a record with
// too many or too few populated fields.
package sheet

import (
	"fmt"
	"strings"
)

// Grammar selects how delimited text is split into cells.
type Grammar string

const (
	GrammarQuoted Grammar = "quoted"
	GrammarSimple Grammar = "simple"
)

// DefaultDelimiter is the cell separator used by spreadsheet CSV exports.
const DefaultDelimiter = ','

// Options controls text parsing. The zero value parses quoted CSV.
type Options struct {
	Grammar   Grammar
	Delimiter rune
}

func (o Options) delimiter() rune {
	if o.Delimiter == 0 {
		return DefaultDelimiter
	}
	return o.Delimiter
}

// ParseGrammar converts a config value to a Grammar.
// An empty string selects GrammarQuoted.
func ParseGrammar(s string) (Grammar, error) {
	switch Grammar(strings.ToLower(strings.TrimSpace(s))) {
	case "", GrammarQuoted:
		return GrammarQuoted, nil
	case GrammarSimple:
		return GrammarSimple, nil
	default:
		return "", fmt.Errorf("unknown grammar %q (want quoted or simple)", s)
	}
}

// Parse splits text into rows and builds one Record per non-blank data row.
func Parse(text string, opts Options) []Record {
	return BuildRecords(ParseRows(text, opts))
}

// ParseRows splits text into raw rows without interpreting a header.
func ParseRows(text string, opts Options) [][]string {
	if opts.Grammar == GrammarSimple {
		return splitSimple(text, opts.delimiter())
	}
	return splitQuoted(text, opts.delimiter())
}

// splitQuoted scans text one rune at a time.
//
// Outside quotes the delimiter ends a cell and '\n' ends a row. '\r' is
// dropped wherever it appears. A final row without a trailing newline is
// kept when it holds any content or any already completed cell.
func splitQuoted(text string, delim rune) [][]string {
	var (
		rows     [][]string
		row      []string
		cell     strings.Builder
		inQuotes bool
	)

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]

		if c == '\r' {
			continue
		}

		if inQuotes {
			switch {
			case c == '"' && i+1 < len(runes) && runes[i+1] == '"':
				cell.WriteRune('"')
				i++
			case c == '"':
				inQuotes = false
			default:
				cell.WriteRune(c)
			}
			continue
		}

		switch c {
		case '"':
			inQuotes = true
		case delim:
			row = append(row, cell.String())
			cell.Reset()
		case '\n':
			row = append(row, cell.String())
			rows = append(rows, row)
			row = nil
			cell.Reset()
		default:
			cell.WriteRune(c)
		}
	}

	if cell.Len() > 0 || len(row) > 0 {
		row = append(row, cell.String())
		rows = append(rows, row)
	}

	return rows
}

// splitSimple handles exports that never quote. Delimiters inside a value
// cannot be represented.
func splitSimple(text string, delim rune) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, strings.Split(line, string(delim)))
	}
	return rows
}
