package domain

import (
	"fmt"
	"time"
)

// DateLayout is the format of window boundaries in settings and file names.
const DateLayout = "2006-01-02"

// Window is the half-open interval [Start, End) bounding post extraction.
// Start is midnight UTC of the start date; End is midnight UTC of the end
// date, so posts created on the end date are excluded.
type Window struct {
	Start time.Time
	End   time.Time

	// StartLabel and EndLabel are the dates as configured, used in file names.
	StartLabel string
	EndLabel   string
}

// ParseWindow builds a Window from two YYYY-MM-DD dates.
func ParseWindow(start, end string) (Window, error) {
	s, err := time.ParseInLocation(DateLayout, start, time.UTC)
	if err != nil {
		return Window{}, fmt.Errorf("%w: start date %q: expected YYYY-MM-DD", ErrConfiguration, start)
	}
	e, err := time.ParseInLocation(DateLayout, end, time.UTC)
	if err != nil {
		return Window{}, fmt.Errorf("%w: end date %q: expected YYYY-MM-DD", ErrConfiguration, end)
	}
	if !s.Before(e) {
		return Window{}, fmt.Errorf("%w: start date %s must be before end date %s", ErrConfiguration, start, end)
	}
	return Window{
		Start:      s,
		End:        e,
		StartLabel: start,
		EndLabel:   end,
	}, nil
}

// Contains reports whether t falls within [Start, End).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Before reports whether t is older than the window start.
func (w Window) Before(t time.Time) bool {
	return t.Before(w.Start)
}

// String returns the window as "start to end".
func (w Window) String() string {
	return w.StartLabel + " to " + w.EndLabel
}
