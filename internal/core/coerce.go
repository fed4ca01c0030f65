package core

// coerce.go converts raw spreadsheet cells into entry values.
//
// Cells are typed by hand in a shared spreadsheet, so booleans arrive as
// words, digits or glyphs. ToBool resolves them in a fixed order:
//  1. blank is false
//  2. exact truthy/falsy tokens, case-insensitive
//  3. any affirmative glyph (◯ ○ ⭕ ◎) is true
//  4. any negative glyph (× ✕ ✖) is false
//  5. anything else is false

import (
	"strings"
	"unicode"

	"github.com/JonMunkholm/alcheck/internal/sheet"
	"golang.org/x/text/unicode/norm"
)

var (
	truthyTokens = map[string]bool{"true": true, "1": true, "yes": true}
	falsyTokens  = map[string]bool{"false": true, "0": true, "no": true}
)

const (
	affirmativeGlyphs = "◯○⭕◎"
	negativeGlyphs    = "×✕✖"
)

// NormalizeIdentifier trims, lowercases and NFC-composes an identifier.
// Trimming removes Unicode white space and U+FEFF, which sheet exports
// sometimes leave at the start of a cell. NFC makes a decomposed accent
// typed in the form match the composed one stored in the sheet.
// Blank input yields "".
func NormalizeIdentifier(s string) string {
	s = strings.TrimFunc(s, isTrimmable)
	if s == "" {
		return ""
	}
	return norm.NFC.String(strings.ToLower(s))
}

func isTrimmable(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff'
}

// ToBool coerces a raw cell to a flag value. It never fails.
func ToBool(s string) bool {
	v := strings.TrimSpace(s)
	if v == "" {
		return false
	}

	lower := strings.ToLower(v)
	if truthyTokens[lower] {
		return true
	}
	if falsyTokens[lower] {
		return false
	}

	if strings.ContainsAny(v, affirmativeGlyphs) {
		return true
	}
	if strings.ContainsAny(v, negativeGlyphs) {
		return false
	}
	return false
}

// Coerce builds an Entry from rec. Every schema flag is present in the
// result; a column missing from the export reads as false.
func (s Schema) Coerce(rec sheet.Record) Entry {
	flags := make(map[string]bool, len(s.Flags))
	for _, f := range s.Flags {
		flags[f.Key] = ToBool(rec.Get(f.Column))
	}
	return Entry{
		Identifier: NormalizeIdentifier(rec.Get(s.IdentifierColumn)),
		Flags:      flags,
	}
}
