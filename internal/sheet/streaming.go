package sheet

// streaming.go prepares a fetched export body for parsing:
//
//   - CountingReader: tracks bytes read and enforces the size limit
//   - TextReader: drops a UTF-8 BOM and replaces invalid UTF-8 with '?'
//
// The limit is applied to raw bytes, before any rewriting.

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"unicode/utf8"
)

// ErrTooLarge is returned when a source body exceeds the configured limit.
var ErrTooLarge = errors.New("source too large")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CountingReader counts bytes and fails once more than Limit bytes were
// read. A Limit of zero or less disables the check.
type CountingReader struct {
	reader    io.Reader
	BytesRead int64
	Limit     int64
}

// NewCountingReader wraps r with a byte counter and an optional limit.
func NewCountingReader(r io.Reader, limit int64) *CountingReader {
	return &CountingReader{reader: r, Limit: limit}
}

// Read implements io.Reader.
func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	c.BytesRead += int64(n)
	if c.Limit > 0 && c.BytesRead > c.Limit {
		return n, ErrTooLarge
	}
	return n, err
}

// TextReader yields sanitized UTF-8 text.
type TextReader struct {
	br         *bufio.Reader
	bomChecked bool
	pending    []byte
}

// NewTextReader wraps r. The BOM check happens on the first Read.
func NewTextReader(r io.Reader) *TextReader {
	return &TextReader{br: bufio.NewReader(r)}
}

// Read implements io.Reader. A valid U+FFFD in the input is preserved;
// only undecodable bytes are rewritten. A rune that does not fit in p is
// carried over to the next call.
func (t *TextReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if !t.bomChecked {
		t.bomChecked = true
		if head, err := t.br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
			_, _ = t.br.Discard(len(utf8BOM))
		}
	}

	n := copy(p, t.pending)
	t.pending = t.pending[n:]

	var enc [utf8.UTFMax]byte
	for n < len(p) {
		r, size, err := t.br.ReadRune()
		if err != nil {
			if err == io.EOF && n > 0 {
				return n, nil
			}
			return n, err
		}

		if r == utf8.RuneError && size == 1 {
			p[n] = '?'
			n++
			continue
		}

		w := utf8.EncodeRune(enc[:], r)
		c := copy(p[n:], enc[:w])
		n += c
		if c < w {
			t.pending = append(t.pending[:0], enc[c:w]...)
		}
	}
	return n, nil
}

// ReadText drains r through the size limit and the text sanitizer.
func ReadText(r io.Reader, limit int64) (string, error) {
	b, err := io.ReadAll(NewTextReader(NewCountingReader(r, limit)))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
