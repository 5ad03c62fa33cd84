package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vytor/dailydle/internal/daykey"
	"github.com/vytor/dailydle/internal/repository"
)

// TargetCache remembers which monster was the target on each day, shared by
// every player. It only serves past days, so yesterday's answer survives
// later catalog edits. Today's target always comes from the selector.
type TargetCache struct {
	kv repository.KeyValueStore
}

func NewTargetCache(kv repository.KeyValueStore) *TargetCache {
	return &TargetCache{kv: kv}
}

func targetKey(day daykey.Key) string {
	return repository.TargetKeyPrefix + string(day)
}

// Record stores id as day's target, replacing any earlier entry.
func (c *TargetCache) Record(ctx context.Context, day daykey.Key, id int64) error {
	if err := c.kv.Set(ctx, repository.GlobalScope, targetKey(day), strconv.FormatInt(id, 10)); err != nil {
		return fmt.Errorf("record target for %s: %w", day, err)
	}
	return nil
}

// Lookup returns the recorded target id for day.
func (c *TargetCache) Lookup(ctx context.Context, day daykey.Key) (int64, bool, error) {
	raw, found, err := c.kv.Get(ctx, repository.GlobalScope, targetKey(day))
	if err != nil {
		return 0, false, fmt.Errorf("lookup target for %s: %w", day, err)
	}
	if !found {
		return 0, false, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("lookup target for %s: bad id %q", day, raw)
	}
	return id, true, nil
}
