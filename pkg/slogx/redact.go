package slogx

import (
	"log/slog"
	"strings"
)

// RedactedValue replaces the value of any sensitive attribute.
const RedactedValue = "[REDACTED]"

var sensitiveKeys = map[string]struct{}{
	"password":      {},
	"password_hash": {},
	"token":         {},
	"session_token": {},
	"cookie":        {},
	"authorization": {},
	"pepper":        {},
}

// Redact is a slog ReplaceAttr hook that blanks credential-bearing attributes,
// matching keys case-insensitively.
func Redact(_ []string, a slog.Attr) slog.Attr {
	if _, ok := sensitiveKeys[strings.ToLower(a.Key)]; ok {
		return slog.String(a.Key, RedactedValue)
	}
	return a
}
