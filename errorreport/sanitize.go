package errorreport

import (
	"context"
	"regexp"
)

const (
	genericMessage = "An error occurred. Please try again later."
	unknownMessage = "unknown error"
)

var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(api[_-]?key)[^\s]*`),
	regexp.MustCompile(`(?i)(auth[_-]?token)[^\s]*`),
	regexp.MustCompile(`(?i)(password)[^\s]*`),
	regexp.MustCompile(`(?i)(secret)[^\s]*`),
	regexp.MustCompile(`(?i)(supabase)[^\s]*`),
	regexp.MustCompile(`(?i)(connection[_-]?string)[^\s]*`),
}

// SanitizeErrorMessage redacts whatever follows a sensitive word up to the next space.
func SanitizeErrorMessage(message string) string {
	for _, re := range sensitivePatterns {
		message = re.ReplaceAllString(message, "${1}:[REDACTED]")
	}
	return message
}

// APIError is the message shown to API clients.
type APIError struct {
	Message string `json:"message"`
}

// HandleAPIError reports err and returns what the client may see: a generic message in
// production, the sanitized error text otherwise.
func (r *Reporter) HandleAPIError(ctx context.Context, err error) APIError {
	if err == nil {
		return APIError{Message: unknownMessage}
	}
	r.Report(ctx, err, SeverityError, nil)
	if r.production {
		return APIError{Message: genericMessage}
	}
	return APIError{Message: SanitizeErrorMessage(err.Error())}
}
