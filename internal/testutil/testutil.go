package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vytor/dailydle/internal/daykey"
	"github.com/vytor/dailydle/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
func NewTestDB(t *testing.T) *sql.DB {
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	return database.DB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// Clock is a settable time source for resolvers under test.
type Clock struct {
	now time.Time
}

func NewClock(now time.Time) *Clock { return &Clock{now: now} }

func (c *Clock) Now() time.Time { return c.now }

func (c *Clock) Set(now time.Time) { c.now = now }

func (c *Clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// ParisResolver returns a Europe/Paris resolver driven by clock.
func ParisResolver(t *testing.T, clock *Clock) *daykey.Resolver {
	r, err := daykey.LoadResolver(daykey.DefaultTimezone, daykey.WithClock(clock.Now))
	require.NoError(t, err)
	return r
}

// ParisNoon returns noon in Paris on the given date.
func ParisNoon(t *testing.T, year int, month time.Month, day int) time.Time {
	loc, err := time.LoadLocation(daykey.DefaultTimezone)
	require.NoError(t, err)
	return time.Date(year, month, day, 12, 0, 0, 0, loc)
}
