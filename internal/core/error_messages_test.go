package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/JonMunkholm/alcheck/internal/fetch"
	"github.com/JonMunkholm/alcheck/internal/sheet"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "nil error returns empty",
			err:      nil,
			wantCode: "",
		},
		{
			name:     "empty query",
			err:      ErrEmptyIdentifier,
			wantCode: "QRY001",
		},
		{
			name:     "status error",
			err:      &fetch.Error{URL: "https://example.test/x", StatusCode: 404, Message: "HTTP status 404"},
			wantCode: "SRC002",
		},
		{
			name:     "status error through load error",
			err:      &LoadError{Source: "s", Err: &fetch.Error{StatusCode: 500, Message: "HTTP status 500"}},
			wantCode: "SRC002",
		},
		{
			name:     "oversized body",
			err:      &LoadError{Source: "s", Err: sheet.ErrTooLarge},
			wantCode: "SRC003",
		},
		{
			name:     "unreadable workbook",
			err:      fmt.Errorf("%w: zip: not a valid zip file", sheet.ErrUnreadableWorkbook),
			wantCode: "SRC004",
		},
		{
			name:     "deadline maps to timeout",
			err:      &fetch.Error{Message: "HTTP request failed", Cause: context.DeadlineExceeded},
			wantCode: "SRC005",
		},
		{
			name:     "connection refused maps correctly",
			err:      errors.New("dial tcp 127.0.0.1:1: connect: connection refused"),
			wantCode: "SRC001",
		},
		{
			name:     "other transport failure",
			err:      &fetch.Error{Message: "HTTP request failed", Cause: errors.New("EOF")},
			wantCode: "SRC001",
		},
		{
			name:     "rate limit maps correctly",
			err:      errors.New("rate limit exceeded"),
			wantCode: "RATE001",
		},
		{
			name:     "case insensitive matching",
			err:      errors.New("Missing API Key"),
			wantCode: "AUTH001",
		},
		{
			name:     "unknown error returns default",
			err:      errors.New("some random internal error"),
			wantCode: "ERR000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if tt.wantCode != "" && got.Message == "" {
				t.Errorf("MapError() message is empty for code %s", got.Code)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(ErrEmptyIdentifier)

	expected := "Please enter an email address. Type the email address you registered with (QRY001)"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}

	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}
