// Package redact scrubs credentials, personal data and infrastructure details
// from error text before it is logged. Database errors in particular echo
// connection strings, SQL and the offending key values (course titles,
// logins, partner emails), none of which belong in logs.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
	HostPlaceholder       = "[REDACTED_HOST]"
	PathPlaceholder       = "[REDACTED_PATH]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	StackTracePlaceholder = "[STACK_TRACE_REDACTED]"
	ValuePlaceholder      = "[REDACTED_VALUE]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules run in order; earlier rules remove text later ones would misread.
var rules = []rule{
	{
		regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`),
		StackTracePlaceholder,
	},
	{
		// userinfo of postgres connection URLs
		regexp.MustCompile(`(?i)\b((?:postgres(?:ql)?|pgx)://)[^\s@/]+@`),
		"${1}" + CredentialPlaceholder + "@",
	},
	{
		regexp.MustCompile(`(?i)\b(password|passwd|pwd)\s*[=:]\s*['"]?[^'"&\s]+['"]?`),
		"${1}=" + CredentialPlaceholder,
	},
	{
		// Postgres constraint details: Key (name)=(Go 101) already exists.
		regexp.MustCompile(`Key \(([^)]*)\)=\(([^)]*)\)`),
		"Key (${1})=(" + ValuePlaceholder + ")",
	},
	{
		regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		EmailPlaceholder,
	},
	{
		// Upper-case SQL only, so prose such as "failed to update course" survives.
		regexp.MustCompile(`\b(?:SELECT|INSERT|UPDATE|DELETE)\b[^\n;]*?\b(?:FROM|INTO|SET)\b[^\n;]*`),
		SQLPlaceholder,
	},
	{
		regexp.MustCompile(`(?:/[\w.-]+){2,}`),
		PathPlaceholder,
	},
	{
		regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}(?::\d{1,5})?\b`),
		HostPlaceholder,
	},
	{
		regexp.MustCompile(`\b(?:[A-Za-z0-9-]+\.)+[A-Za-z]{2,}:\d{1,5}\b`),
		HostPlaceholder,
	},
}

// String returns input with every sensitive fragment replaced by its placeholder.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error is String applied to err.Error(). A nil error yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
