// Package redact strips sensitive information from strings before they are
// logged. Error messages bubbling up from the database layer can carry
// connection strings, SQL fragments, or file paths; everything passing
// through the API error logging goes through here first.
package redact

import "regexp"

// RedactionPlaceholder is the generic replacement for matched content.
const RedactionPlaceholder = "[REDACTED]"

// rule pairs a pattern with its replacement placeholder.
type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

var rules = []rule{
	// Database connection strings with inline credentials.
	{regexp.MustCompile(`(?i)(postgres|postgresql|mysql|db|database)://[^@\s]+@`), "[REDACTED_CREDENTIAL]"},

	// Passwords and secrets in key=value or key: value form.
	{regexp.MustCompile(`(?i)(password|passwd|pwd|secret|token)([=:\s]['"]?)[^'"&\s]{3,}`), "[REDACTED_CREDENTIAL]"},

	// SQL statements leaking through driver errors.
	{regexp.MustCompile(`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(?:FROM|INTO|SET|TABLE)(?:[\s\w,*()='"]+)?`), "[REDACTED_SQL]"},

	// Absolute file paths.
	{regexp.MustCompile(`(/[\w.-]+){2,}`), "[REDACTED_PATH]"},

	// Host:port pairs from dial errors.
	{regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`), "[REDACTED_HOST]"},

	// Panic output with goroutine dumps.
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), "[STACK_TRACE_REDACTED]"},
}

// String redacts sensitive information from the input string.
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

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
