package core

// error_messages.go maps technical errors to messages a participant can act
// on. Each message carries a code that support staff can look up:
//
//	SRC001 - Source unreachable: network failure, DNS, refused connection
//	SRC002 - Source rejected the request: non-2xx status (often unpublished sheet)
//	SRC003 - Source too large: body exceeded SOURCE_MAX_BYTES
//	SRC004 - Source unreadable: XLSX export could not be opened
//	SRC005 - Source timed out: SOURCE_FETCH_TIMEOUT or request deadline hit
//	QRY001 - Empty query: no email address entered
//	RATE001 - Rate limited: too many requests from one client
//	AUTH001 - Missing or invalid API key on an admin endpoint
//	ERR000 - Unknown error: check the server logs
//
// Typed errors are matched first with errors.Is/As. Anything else falls
// through to case-insensitive substring patterns; the first match wins.

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/alcheck/internal/fetch"
	"github.com/JonMunkholm/alcheck/internal/sheet"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgSourceUnreachable = UserMessage{
		Message: "Failed to load the spreadsheet",
		Action:  "Check the URL and publish settings, then try again",
		Code:    "SRC001",
	}
	msgSourceTooLarge = UserMessage{
		Message: "The spreadsheet export is larger than allowed",
		Action:  "Remove unused rows or raise SOURCE_MAX_BYTES",
		Code:    "SRC003",
	}
	msgSourceUnreadable = UserMessage{
		Message: "The spreadsheet export could not be read",
		Action:  "Check that the export format matches SOURCE_FORMAT",
		Code:    "SRC004",
	}
	msgSourceTimeout = UserMessage{
		Message: "Loading the spreadsheet timed out",
		Action:  "Please try again in a few moments",
		Code:    "SRC005",
	}
	msgEmptyQuery = UserMessage{
		Message: "Please enter an email address",
		Action:  "Type the email address you registered with",
		Code:    "QRY001",
	}
	msgUnknown = UserMessage{
		Message: "An unexpected error occurred",
		Action:  "Please try again or contact support",
		Code:    "ERR000",
	}
)

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns is consulted after typed matching. Specific patterns come
// before general ones.
var errorPatterns = []errorPattern{
	{pattern: "deadline exceeded", msg: msgSourceTimeout},
	{pattern: "timeout", msg: msgSourceTimeout},
	{pattern: "connection refused", msg: msgSourceUnreachable},
	{pattern: "no such host", msg: msgSourceUnreachable},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
	{
		pattern: "api key",
		msg: UserMessage{
			Message: "This action requires a valid API key",
			Action:  "Send the X-API-Key header",
			Code:    "AUTH001",
		},
	},
}

// MapError converts err into a UserMessage. A nil error yields the zero
// UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return msgEmptyQuery
	}
	if errors.Is(err, sheet.ErrTooLarge) {
		return msgSourceTooLarge
	}
	if errors.Is(err, sheet.ErrUnreadableWorkbook) {
		return msgSourceUnreadable
	}

	var ferr *fetch.Error
	if errors.As(err, &ferr) && ferr.StatusCode != 0 {
		return UserMessage{
			Message: fmt.Sprintf("The spreadsheet source answered %d %s", ferr.StatusCode, http.StatusText(ferr.StatusCode)),
			Action:  "Make sure the sheet is published to the web",
			Code:    "SRC002",
		}
	}

	lower := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(lower, p.pattern) {
			return p.msg
		}
	}

	if ferr != nil {
		return msgSourceUnreachable
	}
	return msgUnknown
}

// FormatUserError returns "Message. Action (Code)" for plain-text output.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Code == "" {
		return ""
	}
	if msg.Action == "" {
		return fmt.Sprintf("%s (%s)", msg.Message, msg.Code)
	}
	return fmt.Sprintf("%s. %s (%s)", msg.Message, msg.Action, msg.Code)
}
