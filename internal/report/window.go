package report

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	clockLayout    = "15:04"
	dateTimeLayout = "2006-01-02 15:04"
)

var ErrInvalidWindow = errors.New("window start is after window end")

// TimeWindow is an inclusive [Start, End] range compared at minute precision.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	w := TimeWindow{Start: start.Truncate(time.Minute), End: end.Truncate(time.Minute)}
	if w.Start.After(w.End) {
		return TimeWindow{}, fmt.Errorf("%w: %s > %s", ErrInvalidWindow,
			w.Start.Format(dateTimeLayout), w.End.Format(dateTimeLayout))
	}
	return w, nil
}

// Contains reports whether t falls inside the window once its seconds are dropped.
func (w TimeWindow) Contains(t time.Time) bool {
	t = t.Truncate(time.Minute)
	return !t.Before(w.Start) && !t.After(w.End)
}

func (w TimeWindow) String() string {
	return w.Start.Format(dateTimeLayout) + " -> " + w.End.Format(dateTimeLayout)
}

// ParseTimeArg accepts either "HH:MM" (applied to the date of now) or
// "YYYY-MM-DD HH:MM", both in now's location.
func ParseTimeArg(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	loc := now.Location()

	if t, err := time.ParseInLocation(dateTimeLayout, value, loc); err == nil {
		return t, nil
	}

	clock, err := time.ParseInLocation(clockLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: use HH:MM or YYYY-MM-DD HH:MM", value)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), nil
}

// WindowFromArgs builds the report window from CLI values. daysBack is
// subtracted from the start only.
func WindowFromArgs(start, end string, daysBack int, now time.Time) (TimeWindow, error) {
	s, err := ParseTimeArg(start, now)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("start: %w", err)
	}
	e, err := ParseTimeArg(end, now)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("end: %w", err)
	}
	if daysBack < 0 {
		return TimeWindow{}, fmt.Errorf("days must not be negative, got %d", daysBack)
	}
	return NewTimeWindow(s.AddDate(0, 0, -daysBack), e)
}
