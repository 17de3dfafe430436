package request

import (
	"regexp"
	"strings"

	"github.com/workbay/workbay/internal/platform/apperr"
)

// Patterns that suggest a client pasted credentials or secrets into a
// request body. Matching text is rejected before it ever reaches storage.
var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)api[_-]?key`),
	regexp.MustCompile(`(?i)password`),
	regexp.MustCompile(`(?i)secret`),
	regexp.MustCompile(`(?i)\btoken\b`),
	regexp.MustCompile(`(?i)access[_-]?key`),
	regexp.MustCompile(`(?i)private[_-]?key`),
	regexp.MustCompile(`(?i)\bauth\b`),
	regexp.MustCompile(`(?i)credential`),
}

// screenContent rejects request text that appears to contain secrets.
func screenContent(fields ...string) error {
	joined := strings.Join(fields, "\n")

	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(joined) {
			return apperr.Unprocessable("Request content appears to contain sensitive data (keys, passwords, or credentials). Please remove it and resubmit.")
		}
	}

	return nil
}
