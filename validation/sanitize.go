package validation

import (
	"regexp"
	"strings"
)

var stripPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[<>]`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+=`),
	regexp.MustCompile(`(?i)\b(alert|confirm|prompt|console)\b`),
}

// SanitizeInput strips angle brackets, javascript: prefixes, inline event handler
// attributes and the words alert, confirm, prompt and console, then trims the result.
// Passes repeat until nothing changes, so the output is stable under another call.
//
// This is a best effort filter for free text. It does not make input safe to embed in
// HTML or scripts; output must still be encoded for the context it is written to.
func SanitizeInput(input string) string {
	out := input
	for {
		next := sanitizeOnce(out)
		if next == out {
			return next
		}
		out = next
	}
}

func sanitizeOnce(s string) string {
	for _, re := range stripPatterns {
		s = re.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(s)
}

// SanitizeFields applies SanitizeInput to every string value of a form record.
func SanitizeFields(record map[string]any) map[string]any {
	out := make(map[string]any, len(record))
	for k, v := range record {
		if s, ok := v.(string); ok {
			out[k] = SanitizeInput(s)
			continue
		}
		out[k] = v
	}
	return out
}
