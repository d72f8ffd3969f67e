// Package weather supplies the "weather" line of a podcast script. No
// forecast provider is wired; the source reports the current local time.
package weather

import (
	"context"
	"time"
)

// ReportLayout is the timestamp layout used in reports.
const ReportLayout = "Monday, January 2, 2006 15:04 MST"

// Source produces a short weather/time report.
type Source interface {
	Report(ctx context.Context) (string, error)
}

// Clock returns the current time.
type Clock func() time.Time

// LocalTime reports the current local timestamp.
type LocalTime struct {
	now Clock
	loc *time.Location
}

// NewLocalTime creates a source. A nil clock uses time.Now; a nil location uses time.Local.
func NewLocalTime(now Clock, loc *time.Location) *LocalTime {
	if now == nil {
		now = time.Now
	}

	if loc == nil {
		loc = time.Local
	}

	return &LocalTime{now: now, loc: loc}
}

// Report implements Source.
func (s *LocalTime) Report(context.Context) (string, error) {
	return s.now().In(s.loc).Format(ReportLayout), nil
}

var _ Source = (*LocalTime)(nil)
