package logutil

import "unicode/utf8"

// TruncateForLog shortens s to at most maxLen runes, marking the cut with "...".
// Remote error bodies pass through here before they reach a log line or an error detail.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen]) + "..."
}
