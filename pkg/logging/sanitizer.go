// Package logging builds the process logger and scrubs credentials from values
// that end up in log lines.
package logging

import (
	"regexp"
)

// RedactedText replaces every credential found in a logged value.
const RedactedText = "[REDACTED]"

var (
	// password=..., pwd=..., pass=... up to the next ; & or whitespace.
	// Covers JDBC query strings and SQL Server ;key=value properties.
	passwordPattern = regexp.MustCompile(`(?i)\b(password|pwd|pass)=[^;&\s]+`)

	// user:pass@host in URL-style JDBC and driver DSNs.
	userInfoPattern = regexp.MustCompile(`://[^:/\s]+:[^@\s]+@`)

	// user:pass@tcp(host) in go-sql-driver/mysql DSNs.
	mysqlDSNPattern = regexp.MustCompile(`^[^:/\s]+:[^@\s]+@(tcp|unix)\(`)
)

// SanitizeConnectionString removes credentials from a JDBC URL or driver DSN.
func SanitizeConnectionString(connStr string) string {
	if connStr == "" {
		return ""
	}
	sanitized := passwordPattern.ReplaceAllString(connStr, "${1}="+RedactedText)
	sanitized = userInfoPattern.ReplaceAllString(sanitized, "://"+RedactedText+"@")
	return mysqlDSNPattern.ReplaceAllString(sanitized, RedactedText+"@${1}(")
}

// SanitizeError returns err's message with credentials removed.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeConnectionString(err.Error())
}
