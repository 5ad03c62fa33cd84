// Package progress persists the current day's attempt for each player.
package progress

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vytor/dailydle/internal/daykey"
	"github.com/vytor/dailydle/internal/logger"
	"github.com/vytor/dailydle/internal/models"
	"github.com/vytor/dailydle/internal/repository"
)

// Store reads and writes DailyAttempt records. A stored attempt only counts
// while its day key equals today's; anything else reads as absent.
type Store struct {
	kv   repository.KeyValueStore
	days *daykey.Resolver
}

func NewStore(kv repository.KeyValueStore, days *daykey.Resolver) *Store {
	return &Store{kv: kv, days: days}
}

// Load returns today's attempt for scope, or nil when nothing is stored,
// the payload cannot be decoded, the backend read fails, or the attempt
// belongs to another day. All four cases mean "start fresh".
func (s *Store) Load(ctx context.Context, scope string) *models.DailyAttempt {
	log := logger.FromContext(ctx).WithPrefix("progress")

	raw, found, err := s.kv.Get(ctx, scope, repository.ProgressKey)
	if err != nil {
		log.Warn("progress read failed, starting fresh: %v", err)
		return nil
	}
	if !found || raw == "" {
		return nil
	}

	var attempt models.DailyAttempt
	if err := json.Unmarshal([]byte(raw), &attempt); err != nil {
		log.Warn("progress payload unreadable, starting fresh: %v", err)
		return nil
	}

	today := s.days.Today()
	if attempt.Date != today {
		log.Debug("discarding stale progress: stored=%s, today=%s", attempt.Date, today)
		return nil
	}
	return &attempt
}

// Save replaces the stored attempt with today's key and the given fields.
// Backend errors are returned to the caller.
func (s *Store) Save(ctx context.Context, scope string, guesses []models.Monster, won, hint1Revealed, hint2Revealed bool) (models.DailyAttempt, error) {
	attempt := models.DailyAttempt{
		Date:          s.days.Today(),
		Guesses:       make([]string, 0, len(guesses)),
		GuessIDs:      make([]int64, 0, len(guesses)),
		Won:           won,
		Hint1Revealed: hint1Revealed,
		Hint2Revealed: hint2Revealed,
	}
	for _, m := range guesses {
		attempt.Guesses = append(attempt.Guesses, m.Name)
		attempt.GuessIDs = append(attempt.GuessIDs, m.ID)
	}

	payload, err := json.Marshal(attempt)
	if err != nil {
		return models.DailyAttempt{}, fmt.Errorf("encode progress: %w", err)
	}
	if err := s.kv.Set(ctx, scope, repository.ProgressKey, string(payload)); err != nil {
		return models.DailyAttempt{}, fmt.Errorf("save progress: %w", err)
	}

	logger.FromContext(ctx).WithPrefix("progress").
		Debug("progress saved: day=%s, guesses=%d, won=%t", attempt.Date, len(guesses), won)
	return attempt, nil
}

// Lookup resolves stored guesses against the current catalog.
type Lookup interface {
	ByID(id int64) (models.Monster, bool)
	ByName(name string) (models.Monster, bool)
}

// Recover maps a stored attempt's guesses back to catalog monsters, in
// order. Ids are preferred when the record carries one per guess; otherwise
// names are used. Guesses the catalog no longer knows are dropped.
func Recover(attempt *models.DailyAttempt, lookup Lookup) []models.Monster {
	if attempt == nil {
		return nil
	}

	useIDs := len(attempt.GuessIDs) == len(attempt.Guesses)
	out := make([]models.Monster, 0, len(attempt.Guesses))
	for i, name := range attempt.Guesses {
		if useIDs {
			if m, ok := lookup.ByID(attempt.GuessIDs[i]); ok {
				out = append(out, m)
				continue
			}
		}
		if m, ok := lookup.ByName(name); ok {
			out = append(out, m)
		}
	}
	return out
}
