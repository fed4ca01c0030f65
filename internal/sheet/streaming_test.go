package sheet

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextReader_BOM(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("email,ChargeAL")...),
			expected: "email,ChargeAL",
		},
		{
			name:     "file without BOM",
			input:    []byte("email,ChargeAL"),
			expected: "email,ChargeAL",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "BOM bytes later in the stream are kept",
			input:    append([]byte("a"), 0xEF, 0xBB, 0xBF),
			expected: "a\ufeff",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(NewTextReader(bytes.NewReader(tt.input)))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(got))
		})
	}
}

func TestTextReader_InvalidUTF8(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "valid ASCII",
			input:    []byte("hello,world"),
			expected: "hello,world",
		},
		{
			name:     "valid multibyte",
			input:    []byte("◯,×,⭕"),
			expected: "◯,×,⭕",
		},
		{
			name:     "invalid single byte replaced",
			input:    []byte{'h', 'e', 0x80, 'l', 'o'},
			expected: "he?lo",
		},
		{
			name:     "truncated sequence at EOF",
			input:    []byte{'o', 'k', 0xE2, 0xAD},
			expected: "ok??",
		},
		{
			name:     "literal replacement char preserved",
			input:    []byte("a\ufffdb"),
			expected: "a\ufffdb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(NewTextReader(bytes.NewReader(tt.input)))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(got))
		})
	}
}

func TestTextReader_SmallBuffers(t *testing.T) {
	input := strings.Repeat("⭕✖", 200)
	r := NewTextReader(strings.NewReader(input))

	var out bytes.Buffer
	buf := make([]byte, 5)
	for {
		n, err := r.Read(buf)
		out.Write(buf[:n])
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	assert.Equal(t, input, out.String())
}

func TestCountingReader_Limit(t *testing.T) {
	cr := NewCountingReader(strings.NewReader("0123456789"), 4)
	_, err := io.ReadAll(cr)
	assert.True(t, errors.Is(err, ErrTooLarge))

	cr = NewCountingReader(strings.NewReader("0123456789"), 0)
	b, err := io.ReadAll(cr)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(b))
	assert.Equal(t, int64(10), cr.BytesRead)
}

func TestReadText(t *testing.T) {
	text, err := ReadText(bytes.NewReader(append([]byte{0xEF, 0xBB, 0xBF}, "email\n"...)), 1024)
	require.NoError(t, err)
	assert.Equal(t, "email\n", text)

	_, err = ReadText(strings.NewReader(strings.Repeat("x", 2048)), 1024)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestRead_BOMHeaderIsClean(t *testing.T) {
	body := append([]byte{0xEF, 0xBB, 0xBF}, "email,ChargeAL\na@b.com,yes\n"...)
	recs, err := Read(bytes.NewReader(body), ReadOptions{Format: FormatCSV})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "a@b.com", recs[0].Get("email"))
}
