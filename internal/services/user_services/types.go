package user_services

import "strings"

// Logger interface for all user services
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// maskEmail keeps enough of an address to correlate log lines.
func maskEmail(email string) string {
	local, domain, found := strings.Cut(email, "@")
	if !found {
		return email[:min(2, len(email))] + "****"
	}
	return local[:min(2, len(local))] + "****@" + domain
}
