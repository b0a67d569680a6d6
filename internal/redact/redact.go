// Package redact provides utilities for redacting sensitive information from strings
// before they are logged. Provider errors can echo request URLs, API keys and
// fragments of user content; this package strips those before they reach a log line.
package redact

import (
	"regexp"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Order matters: specific key formats run before the generic assignment pattern
// so that the placeholder names the kind of secret that was removed.
var rules = []rule{
	// Google API keys, as used by the Gemini API.
	{regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`), RedactedKeyPlaceholder},
	// key=... query parameters in request URLs echoed by HTTP clients.
	{regexp.MustCompile(`(?i)([?&](?:key|api_key|access_token)=)[^&\s"']+`), "${1}" + RedactedKeyPlaceholder},
	// Authorization headers.
	{regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/=]{8,}`), "Bearer " + RedactedCredentialPlaceholder},
	// Generic key/secret/token assignments.
	{
		regexp.MustCompile(`(?i)((?:api[_-]?key|token|secret|password)['"]?\s*[:=]\s*['"]?)[A-Za-z0-9_\-.~+/]{8,}`),
		"${1}" + RedactedCredentialPlaceholder,
	},
	// Email addresses.
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), RedactedEmailPlaceholder},
	// Stack trace fragments.
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), "[STACK_TRACE_REDACTED]"},
	// Absolute file paths.
	{regexp.MustCompile(`(?:^|\s)(/[\w.-]+){2,}`), " " + RedactedPathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(\\[^\\\s]+)+`), RedactedPathPlaceholder},
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
