package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWindow(t *testing.T, start, end string) TimeWindow {
	t.Helper()
	s, err := time.ParseInLocation(dateTimeLayout, start, time.UTC)
	require.NoError(t, err)
	e, err := time.ParseInLocation(dateTimeLayout, end, time.UTC)
	require.NoError(t, err)
	w, err := NewTimeWindow(s, e)
	require.NoError(t, err)
	return w
}

func TestTimeWindow_ContainsIsInclusive(t *testing.T) {
	w := mustWindow(t, "2024-01-01 10:00", "2024-01-01 11:00")

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"start boundary", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), true},
		{"end boundary", time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC), true},
		{"seconds past end are dropped", time.Date(2024, 1, 1, 11, 0, 59, 999, time.UTC), true},
		{"inside", time.Date(2024, 1, 1, 10, 15, 0, 0, time.UTC), true},
		{"one minute before", time.Date(2024, 1, 1, 9, 59, 59, 0, time.UTC), false},
		{"one minute after", time.Date(2024, 1, 1, 11, 1, 0, 0, time.UTC), false},
		{"other offset same instant", time.Date(2024, 1, 1, 12, 30, 0, 0, time.FixedZone("+0200", 2*3600)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.Contains(tt.at))
		})
	}
}

func TestNewTimeWindow_RejectsReversed(t *testing.T) {
	start := time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)
	_, err := NewTimeWindow(start, start.Add(-time.Minute))
	require.ErrorIs(t, err, ErrInvalidWindow)
}

func TestParseTimeArg(t *testing.T) {
	now := time.Date(2024, 3, 5, 8, 42, 17, 0, time.UTC)

	got, err := ParseTimeArg("10:00", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), got)

	got, err = ParseTimeArg("2024-01-01 23:15", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 23, 15, 0, 0, time.UTC), got)

	for _, bad := range []string{"", "25:00", "tomorrow", "2024-01-01", "2024/01/01 10:00"} {
		_, err := ParseTimeArg(bad, now)
		assert.Error(t, err, bad)
	}
}

func TestWindowFromArgs_DaysBackMovesStartOnly(t *testing.T) {
	now := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)

	w, err := WindowFromArgs("10:00", "11:00", 2, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 3, 10, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 3, 5, 11, 0, 0, 0, time.UTC), w.End)

	_, err = WindowFromArgs("12:00", "11:00", 0, now)
	require.ErrorIs(t, err, ErrInvalidWindow)

	_, err = WindowFromArgs("10:00", "11:00", -1, now)
	require.Error(t, err)

	_, err = WindowFromArgs("nope", "11:00", 0, now)
	require.Error(t, err)
}
