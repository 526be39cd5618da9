package tui

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/naveenspark/folio/pkg/client"
)

// formatTime renders a relative timestamp for feed and comment displays.
func formatTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if maxLen < 1 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// cleanTitle strips markdown headers and collapses whitespace so list rows
// show "Title" instead of "## Title".
func cleanTitle(raw string) string {
	s := strings.ReplaceAll(raw, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")

	for strings.HasPrefix(s, "#") {
		s = strings.TrimLeft(s, "#")
		s = strings.TrimLeft(s, " ")
	}

	return strings.Join(strings.Fields(s), " ")
}

// errorText turns an API error into a short status line.
func errorText(err error) string {
	var ve *client.ValidationError
	var he *client.HTTPError
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case client.IsNotFound(err):
		return "not found"
	case client.IsStatus(err, http.StatusUnauthorized):
		return "not authenticated -- sign in on the Account tab (3)"
	case client.IsNetwork(err):
		return "backend is unreachable"
	case errors.As(err, &he):
		return he.Message
	}
	return err.Error()
}
