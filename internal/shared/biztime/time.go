// Package biztime provides the business timezone used for display.
// Records travel and are compared in UTC; only rendering converts to the
// business timezone.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "America/Sao_Paulo"

	DateLayout     = "02/01/2006"
	DateTimeLayout = "02/01/2006 15:04"
)

var (
	bizLocation *time.Location
	bizMu       sync.RWMutex
)

// Init sets the business timezone. An empty tz selects DefaultTimezone.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("load business timezone %q: %w", tz, err)
	}
	bizMu.Lock()
	bizLocation = loc
	bizMu.Unlock()
	return nil
}

// location returns the business timezone, falling back to UTC when the
// timezone database is unavailable.
func location() *time.Location {
	bizMu.RLock()
	loc := bizLocation
	bizMu.RUnlock()
	if loc != nil {
		return loc
	}
	if err := Init(""); err != nil {
		return time.UTC
	}
	return location()
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatDateTime renders t in the business timezone; the zero time renders as "-".
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(location()).Format(DateTimeLayout)
}

// FormatDate renders the date part of t in the business timezone.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(location()).Format(DateLayout)
}
