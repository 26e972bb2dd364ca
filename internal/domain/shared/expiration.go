package shared

import (
	"time"

	"helpdesk/internal/shared/biztime"
)

// IsExpired reports whether expiresAt has passed.
// A nil expiresAt never expires.
func IsExpired(expiresAt *time.Time) bool {
	if expiresAt == nil {
		return false
	}
	return !biztime.NowUTC().Before(*expiresAt)
}
