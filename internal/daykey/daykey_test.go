package daykey_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/dailydle/internal/daykey"
)

func paris(t *testing.T) *daykey.Resolver {
	t.Helper()
	r, err := daykey.LoadResolver(daykey.DefaultTimezone)
	require.NoError(t, err)
	return r
}

func TestResolver_Key(t *testing.T) {
	r := paris(t)

	tests := []struct {
		name string
		at   time.Time
		want daykey.Key
	}{
		{"winter midnight is next day in paris", time.Date(2025, 1, 14, 23, 0, 0, 0, time.UTC), "2025-1-15"},
		{"winter late evening", time.Date(2025, 1, 14, 22, 59, 59, 0, time.UTC), "2025-1-14"},
		{"summer offset is two hours", time.Date(2025, 7, 1, 22, 0, 0, 0, time.UTC), "2025-7-2"},
		{"summer just before midnight", time.Date(2025, 7, 1, 21, 59, 0, 0, time.UTC), "2025-7-1"},
		{"no padding in month or day", time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC), "2025-3-5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Key(tt.at))
		})
	}
}

func TestResolver_KeyStableAcrossSpringForward(t *testing.T) {
	r := paris(t)

	// 2025-03-30 runs from 23:00Z on the 29th to 22:00Z on the 30th: 23 hours.
	start := time.Date(2025, 3, 29, 23, 0, 0, 0, time.UTC)
	for offset := time.Duration(0); offset < 23*time.Hour; offset += 30 * time.Minute {
		assert.Equal(t, daykey.Key("2025-3-30"), r.Key(start.Add(offset)), "offset %v", offset)
	}
	assert.Equal(t, daykey.Key("2025-3-31"), r.Key(start.Add(23*time.Hour)))
}

func TestResolver_KeyStableAcrossFallBack(t *testing.T) {
	r := paris(t)

	// 2025-10-26 runs from 22:00Z on the 25th to 23:00Z on the 26th: 25 hours.
	start := time.Date(2025, 10, 25, 22, 0, 0, 0, time.UTC)
	for offset := time.Duration(0); offset < 25*time.Hour; offset += 30 * time.Minute {
		assert.Equal(t, daykey.Key("2025-10-26"), r.Key(start.Add(offset)), "offset %v", offset)
	}
	assert.Equal(t, daykey.Key("2025-10-27"), r.Key(start.Add(25*time.Hour)))
}

func TestResolver_TodayAndYesterday(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 30, 0, 0, time.UTC)
	r, err := daykey.LoadResolver(daykey.DefaultTimezone, daykey.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	assert.Equal(t, daykey.Key("2025-3-1"), r.Today())
	assert.Equal(t, daykey.Key("2025-2-28"), r.Yesterday())
}

func TestResolver_UntilNextDay(t *testing.T) {
	r := paris(t)

	// Midnight in paris on the spring-forward day: the day only lasts 23 hours.
	assert.Equal(t, 23*time.Hour, r.UntilNextDay(time.Date(2025, 3, 29, 23, 0, 0, 0, time.UTC)))
	// Midnight on the fall-back day lasts 25 hours.
	assert.Equal(t, 25*time.Hour, r.UntilNextDay(time.Date(2025, 10, 25, 22, 0, 0, 0, time.UTC)))
	// 23:59:30 local winter time.
	assert.Equal(t, 30*time.Second, r.UntilNextDay(time.Date(2025, 1, 14, 22, 59, 30, 0, time.UTC)))
}

func TestPrevious(t *testing.T) {
	tests := []struct {
		in, want daykey.Key
	}{
		{"2025-3-31", "2025-3-30"},
		{"2025-3-1", "2025-2-28"},
		{"2024-3-1", "2024-2-29"},
		{"2025-1-1", "2024-12-31"},
		{"2025-10-27", "2025-10-26"},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			got, err := daykey.Previous(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrevious_TwiceStepsTwoDaysAcrossDST(t *testing.T) {
	for _, k := range []daykey.Key{"2025-3-31", "2025-3-30", "2025-10-27", "2025-10-26"} {
		one, err := daykey.Previous(k)
		require.NoError(t, err)
		two, err := daykey.Previous(one)
		require.NoError(t, err)

		from, _ := k.Date()
		to, _ := two.Date()
		assert.Equal(t, -2, from.DaysUntil(to), "from %s", k)
	}
}

func TestPrevious_InvalidKey(t *testing.T) {
	_, err := daykey.Previous("yesterday")
	assert.Error(t, err)
}

func TestIsOnOrBefore_UsesCalendarOrder(t *testing.T) {
	tests := []struct {
		a, b daykey.Key
		want bool
	}{
		// String order would say "2025-10-2" < "2025-9-30".
		{"2025-10-2", "2025-9-30", false},
		{"2025-9-30", "2025-10-2", true},
		{"2025-1-11", "2025-11-1", true},
		{"2025-11-1", "2025-1-11", false},
		{"2025-5-5", "2025-5-5", true},
		{"2024-12-31", "2025-1-1", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.a)+"_"+string(tt.b), func(t *testing.T) {
			got, err := daykey.IsOnOrBefore(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse(t *testing.T) {
	k, err := daykey.Parse("2025-03-05")
	require.NoError(t, err)
	assert.Equal(t, daykey.Key("2025-3-5"), k)

	for _, bad := range []string{"", "2025-3", "2025-13-1", "2025-2-30", "2025-x-1", "2025-0-1", "2025--1"} {
		_, err := daykey.Parse(bad)
		assert.Error(t, err, "input %q", bad)
	}
}
