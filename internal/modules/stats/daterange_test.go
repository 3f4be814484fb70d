package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveRangeWindows(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		token string
		start time.Time
	}{
		{Range1Day, now.AddDate(0, 0, -1)},
		{Range7Days, now.AddDate(0, 0, -7)},
		{Range30Days, now.AddDate(0, 0, -30)},
		{Range90Days, now.AddDate(0, 0, -90)},
		{Range1Year, now.AddDate(-1, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			start, end := resolveRangeAt(tt.token, now)
			assert.True(t, start.Equal(tt.start), "start = %v, want %v", start, tt.start)
			assert.True(t, end.Equal(now))
			assert.True(t, start.Before(end))
		})
	}
}

func TestResolveRangeUnknownTokenFallsBack(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	want := now.AddDate(0, 0, -30)

	for _, token := range []string{"", "bananas", "30DAYS", "7 days"} {
		start, end := resolveRangeAt(token, now)
		assert.True(t, start.Equal(want), "token %q: start = %v, want %v", token, start, want)
		assert.True(t, end.Equal(now))
	}
}

func TestResolveRangeIsRelative(t *testing.T) {
	earlier := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	later := earlier.Add(48 * time.Hour)

	startA, _ := resolveRangeAt(Range7Days, earlier)
	startB, _ := resolveRangeAt(Range7Days, later)
	assert.Equal(t, 48*time.Hour, startB.Sub(startA))
}
