// Package stats keeps each player's cross-day win counters.
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/vytor/dailydle/internal/daykey"
	"github.com/vytor/dailydle/internal/logger"
	"github.com/vytor/dailydle/internal/models"
	"github.com/vytor/dailydle/internal/repository"
)

// Store loads and updates AggregateStats.
//
// RecordWin is a read followed by a write with nothing in between to stop a
// second caller for the same scope. Two concurrent wins can lose one
// increment; the last write wins.
type Store struct {
	kv   repository.KeyValueStore
	days *daykey.Resolver
}

func NewStore(kv repository.KeyValueStore, days *daykey.Resolver) *Store {
	return &Store{kv: kv, days: days}
}

// Zero returns empty stats with a usable distribution map.
func Zero() models.AggregateStats {
	return models.AggregateStats{GuessDistribution: map[int]int{}}
}

// Load returns the stored stats for scope. Missing, unreadable or corrupt
// records read as zero.
func (s *Store) Load(ctx context.Context, scope string) models.AggregateStats {
	st, err := s.load(ctx, scope)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("stats").Warn("stats read failed, using zero: %v", err)
		return Zero()
	}
	return st
}

// load is Load without the fallback for backend errors. Missing and corrupt
// records still read as zero.
func (s *Store) load(ctx context.Context, scope string) (models.AggregateStats, error) {
	raw, found, err := s.kv.Get(ctx, scope, repository.StatsKey)
	if err != nil {
		return models.AggregateStats{}, err
	}
	if !found || raw == "" {
		return Zero(), nil
	}

	var st models.AggregateStats
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		logger.FromContext(ctx).WithPrefix("stats").Warn("stats payload unreadable, using zero: %v", err)
		return Zero(), nil
	}
	if st.GuessDistribution == nil {
		st.GuessDistribution = map[int]int{}
	}
	return st, nil
}

// RecordWin counts one won game that took guessCount guesses and persists
// the result.
//
// The streak grows when the previous win was yesterday and restarts at 1
// otherwise. Records written before lastWinDate existed keep growing the
// streak, since their history cannot be checked. A failed read is returned
// and nothing is written.
func (s *Store) RecordWin(ctx context.Context, scope string, guessCount int) (models.AggregateStats, error) {
	if guessCount < 1 {
		return models.AggregateStats{}, fmt.Errorf("record win: guess count %d", guessCount)
	}

	st, err := s.load(ctx, scope)
	if err != nil {
		return models.AggregateStats{}, fmt.Errorf("load stats: %w", err)
	}
	today := s.days.Today()

	st.GamesPlayed++
	st.GamesWon++
	switch st.LastWinDate {
	case "", s.days.Yesterday():
		st.CurrentStreak++
	case today:
		if st.CurrentStreak == 0 {
			st.CurrentStreak = 1
		}
	default:
		st.CurrentStreak = 1
	}
	if st.CurrentStreak > st.MaxStreak {
		st.MaxStreak = st.CurrentStreak
	}
	st.GuessDistribution[guessCount]++
	st.LastWinDate = today

	payload, err := json.Marshal(st)
	if err != nil {
		return models.AggregateStats{}, fmt.Errorf("encode stats: %w", err)
	}
	if err := s.kv.Set(ctx, scope, repository.StatsKey, string(payload)); err != nil {
		return models.AggregateStats{}, fmt.Errorf("save stats: %w", err)
	}

	logger.FromContext(ctx).WithPrefix("stats").
		Info("win recorded: day=%s, guesses=%d, streak=%d", today, guessCount, st.CurrentStreak)
	return st, nil
}

// WinPercentage is the rounded share of played games that were won, or 0
// before any game has been played.
func WinPercentage(st models.AggregateStats) int {
	if st.GamesPlayed <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(st.GamesWon) / float64(st.GamesPlayed)))
}

// View pairs st with its derived values.
func View(st models.AggregateStats) models.StatsView {
	return models.StatsView{AggregateStats: st, WinPercentage: WinPercentage(st)}
}
