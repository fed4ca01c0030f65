package core

import (
	"testing"

	"github.com/JonMunkholm/alcheck/internal/sheet"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{" A@B.com ", "a@b.com"},
		{"a@b.com", "a@b.com"},
		{"\tUSER@Example.ORG\n", "user@example.org"},
		{"\ufeffa@b.com", "a@b.com"},
		{"\u00a0A@B.com\ufeff", "a@b.com"},
		{"\ufeff", ""},
		// decomposed e + combining acute composes to U+00E9
		{"JOSE\u0301@x.io", "jos\u00e9@x.io"},
	}

	for _, tt := range tests {
		got := NormalizeIdentifier(tt.in)
		if got != tt.want {
			t.Errorf("NormalizeIdentifier(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if again := NormalizeIdentifier(got); again != got {
			t.Errorf("NormalizeIdentifier not idempotent: %q -> %q", got, again)
		}
	}
}

func TestToBool(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"  ", false},
		{"TRUE", true},
		{"true", true},
		{" Yes ", true},
		{"1", true},
		{"false", false},
		{"No", false},
		{"0", false},
		{"◯", true},
		{"○", true},
		{"⭕", true},
		{"◎", true},
		{"×", false},
		{"✕", false},
		{"✖", false},
		{"maybe", false},
		{"2", false},
		{"ok ◯", true},
		{"◯ ×", true},
		{"x", false},
	}

	for _, tt := range tests {
		if got := ToBool(tt.in); got != tt.want {
			t.Errorf("ToBool(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToBool_CanonicalTokensRoundTrip(t *testing.T) {
	for _, b := range []bool{true, false} {
		s := "false"
		if b {
			s = "true"
		}
		assert.Equal(t, b, ToBool(s))
	}
}

func TestSchemaCoerce(t *testing.T) {
	s := testSchema()

	rows := sheet.Parse("email,ChargeAL,NFTCollabAL\n A@B.com ,◯,×\nc@d.com,yes\n", sheet.Options{})
	if assert.Len(t, rows, 2) {
		first := s.Coerce(rows[0])
		assert.Equal(t, "a@b.com", first.Identifier)
		assert.Equal(t, map[string]bool{"chargeAL": true, "nftCollabAL": false}, first.Flags)

		// short row: missing trailing cell reads as false
		second := s.Coerce(rows[1])
		assert.Equal(t, "c@d.com", second.Identifier)
		assert.True(t, second.Flag("chargeAL"))
		assert.False(t, second.Flag("nftCollabAL"))
		assert.Len(t, second.Flags, len(s.Flags))
	}
}

func TestSchemaCoerce_MissingColumns(t *testing.T) {
	s := testSchema()

	rec := sheet.NewRecord([]string{"name"}, []string{"alice"})
	got := s.Coerce(rec)

	assert.Equal(t, "", got.Identifier)
	assert.Equal(t, map[string]bool{"chargeAL": false, "nftCollabAL": false}, got.Flags)
}

func testSchema() Schema {
	return Schema{
		Name:             "test",
		IdentifierColumn: "email",
		Flags: []FlagSpec{
			{Key: "chargeAL", Column: "ChargeAL", Label: "Charge AL"},
			{Key: "nftCollabAL", Column: "NFTCollabAL", Label: "NFT Collab AL"},
		},
	}
}
