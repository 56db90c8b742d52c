package core

// # Error Codes Reference
//
// Every error a Service operation returns maps to a UserMessage carrying a
// short code that users can quote to support.
//
// # Not Found (NF001-NF099)
//
//	NF001 - list not found
//	NF002 - item not found
//	NF003 - category not found
//	NF004 - name not found
//
// # Conflicts (CF001-CF099)
//
//	CF001 - category already exists (create or rename onto a taken name)
//	CF002 - name already exists (catalog rename onto a taken name)
//	CF003 - missing reference (item created on a list that does not exist)
//	CF000 - any other conflict
//
// # Validation (VAL001)
//
//	VAL001 - a field is empty, too long or malformed
//
// # Storage (DB004-DB099, REQ001-REQ002)
//
// Storage failures are matched on the technical error text, case-insensitive,
// first match wins:
//
//	REQ001 - "context canceled"
//	REQ002 - "context deadline exceeded"
//	DB004  - "connection refused"
//	DB005  - "connection reset"
//	DB006  - "timeout"
//	DB007  - "deadlock"
//	DB008  - "database is locked"
//
// # Default (ERR000)
//
// Fallback when nothing matches. Check the application logs (search for the
// request_id) for the technical error.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var notFoundCodes = map[string]string{
	"list":     "NF001",
	"item":     "NF002",
	"category": "NF003",
	"name":     "NF004",
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text to user messages. More specific
// patterns come first.
var errorPatterns = []errorPattern{
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again in a few moments",
			Code:    "REQ002",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB005",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "deadlock",
		msg: UserMessage{
			Message: "Database was busy with conflicting operations",
			Action:  "Please try again",
			Code:    "DB007",
		},
	},
	{
		pattern: "database is locked",
		msg: UserMessage{
			Message: "Database is busy",
			Action:  "Please try again",
			Code:    "DB008",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts an error to a user-friendly message. Not-found, conflict
// and validation errors keep their own reason as the message; storage and
// unknown errors are matched against the known patterns.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindNotFound:
			code, ok := notFoundCodes[e.Entity]
			if !ok {
				code = "NF000"
			}
			return UserMessage{
				Message: capitalize(e.Msg),
				Action:  "Refresh and try again",
				Code:    code,
			}
		case KindConflict:
			return conflictMessage(e)
		case KindValidation:
			return UserMessage{
				Message: capitalize(e.Msg),
				Action:  "Correct the value and resubmit",
				Code:    "VAL001",
			}
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

func conflictMessage(e *Error) UserMessage {
	msg := UserMessage{Message: capitalize(e.Msg), Code: "CF000", Action: "Reload and try again"}
	switch {
	case strings.HasSuffix(e.Msg, "missing row"):
		msg.Code = "CF003"
		msg.Action = "Make sure the list still exists"
	case e.Entity == "category":
		msg.Code = "CF001"
		msg.Action = "Pick a different category name or use the existing one"
	case e.Entity == "name":
		msg.Code = "CF002"
		msg.Action = "Pick a different name or edit the existing entry"
	}
	return msg
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
