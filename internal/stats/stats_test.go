package stats_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/dailydle/internal/models"
	"github.com/vytor/dailydle/internal/repository"
	"github.com/vytor/dailydle/internal/repository/memory"
	"github.com/vytor/dailydle/internal/stats"
	"github.com/vytor/dailydle/internal/testutil"
	"github.com/vytor/dailydle/internal/testutil/mocks"
)

const player = "player-1"

func newStore(t *testing.T) (*stats.Store, *memory.KVRepository, *testutil.Clock) {
	t.Helper()
	clock := testutil.NewClock(testutil.ParisNoon(t, 2025, time.March, 29))
	kv := memory.NewKVRepository()
	return stats.NewStore(kv, testutil.ParisResolver(t, clock)), kv, clock
}

func TestStore_LoadMissingIsZero(t *testing.T) {
	store, _, _ := newStore(t)
	st := store.Load(context.Background(), player)
	assert.Equal(t, 0, st.GamesPlayed)
	assert.NotNil(t, st.GuessDistribution)
}

func TestStore_LoadCorruptIsZero(t *testing.T) {
	store, kv, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, player, repository.StatsKey, "[]"))

	st := store.Load(ctx, player)
	assert.Equal(t, stats.Zero(), st)
}

func TestStore_RecordFirstWin(t *testing.T) {
	store, _, _ := newStore(t)
	ctx := context.Background()

	st, err := store.RecordWin(ctx, player, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, st.GamesPlayed)
	assert.Equal(t, 1, st.GamesWon)
	assert.Equal(t, 1, st.CurrentStreak)
	assert.Equal(t, 1, st.MaxStreak)
	assert.Equal(t, map[int]int{3: 1}, st.GuessDistribution)

	assert.Equal(t, st, store.Load(ctx, player))
}

func TestStore_StreakAcrossConsecutiveDaysAndDST(t *testing.T) {
	store, _, clock := newStore(t)
	ctx := context.Background()

	// 2025-3-29, 3-30 (23 hour day), 3-31.
	for i := 0; i < 3; i++ {
		_, err := store.RecordWin(ctx, player, 2+i)
		require.NoError(t, err)
		clock.Advance(24 * time.Hour)
	}

	st := store.Load(ctx, player)
	assert.Equal(t, 3, st.CurrentStreak)
	assert.Equal(t, 3, st.MaxStreak)
	assert.Equal(t, map[int]int{2: 1, 3: 1, 4: 1}, st.GuessDistribution)
	assert.Equal(t, "2025-3-31", st.LastWinDate.String())
}

func TestStore_MissedDayResetsStreak(t *testing.T) {
	store, _, clock := newStore(t)
	ctx := context.Background()

	_, err := store.RecordWin(ctx, player, 4)
	require.NoError(t, err)
	clock.Advance(24 * time.Hour)
	_, err = store.RecordWin(ctx, player, 4)
	require.NoError(t, err)

	clock.Advance(48 * time.Hour)
	st, err := store.RecordWin(ctx, player, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, st.CurrentStreak)
	assert.Equal(t, 2, st.MaxStreak)
	assert.Equal(t, 3, st.GamesWon)
	assert.Equal(t, map[int]int{1: 1, 4: 2}, st.GuessDistribution)
}

func TestStore_LegacyRecordKeepsIncrementing(t *testing.T) {
	store, kv, _ := newStore(t)
	ctx := context.Background()

	legacy, err := json.Marshal(models.AggregateStats{
		GamesPlayed:       5,
		GamesWon:          4,
		CurrentStreak:     2,
		MaxStreak:         3,
		GuessDistribution: map[int]int{2: 4},
	})
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, player, repository.StatsKey, string(legacy)))

	st, err := store.RecordWin(ctx, player, 2)
	require.NoError(t, err)
	assert.Equal(t, 6, st.GamesPlayed)
	assert.Equal(t, 3, st.CurrentStreak)
	assert.Equal(t, 3, st.MaxStreak)
	assert.Equal(t, 5, st.GuessDistribution[2])
}

func TestStore_RejectsNonPositiveGuessCount(t *testing.T) {
	store, kv, _ := newStore(t)
	_, err := store.RecordWin(context.Background(), player, 0)
	assert.Error(t, err)
	assert.Equal(t, 0, kv.Len())
}

func TestStore_WriteErrorIsReturned(t *testing.T) {
	kv := new(mocks.MockKeyValueStore)
	kv.On("Get", mock.Anything, player, repository.StatsKey).Return("", false, nil)
	kv.On("Set", mock.Anything, player, repository.StatsKey, mock.AnythingOfType("string")).Return(errors.New("read-only"))

	clock := testutil.NewClock(testutil.ParisNoon(t, 2025, time.March, 29))
	store := stats.NewStore(kv, testutil.ParisResolver(t, clock))

	_, err := store.RecordWin(context.Background(), player, 3)
	assert.ErrorContains(t, err, "read-only")
	kv.AssertExpectations(t)
}

func TestStore_ReadErrorLeavesRecordUntouched(t *testing.T) {
	kv := new(mocks.MockKeyValueStore)
	locked := errors.New("database is locked")
	kv.On("Get", mock.Anything, player, repository.StatsKey).Return("", false, locked)

	clock := testutil.NewClock(testutil.ParisNoon(t, 2025, time.March, 29))
	store := stats.NewStore(kv, testutil.ParisResolver(t, clock))

	_, err := store.RecordWin(context.Background(), player, 4)
	require.Error(t, err)
	assert.ErrorIs(t, err, locked)
	kv.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	assert.Equal(t, stats.Zero(), store.Load(context.Background(), player))
}

func TestWinPercentage(t *testing.T) {
	tests := []struct {
		name        string
		played, won int
		want        int
	}{
		{"no games", 0, 0, 0},
		{"one in three", 3, 1, 33},
		{"two in three rounds up", 3, 2, 67},
		{"all won", 4, 4, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stats.WinPercentage(models.AggregateStats{GamesPlayed: tt.played, GamesWon: tt.won})
			assert.Equal(t, tt.want, got)
		})
	}
}
