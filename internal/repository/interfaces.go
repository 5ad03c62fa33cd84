package repository

import (
	"context"
)

// Well-known keys. Each lives in the scope of one client installation
// (a player) except target entries, which live in GlobalScope.
const (
	ProgressKey     = "dailydle-progress"
	StatsKey        = "dailydle-stats"
	TargetKeyPrefix = "dailydle-target-"
)

// GlobalScope holds entries shared by every player.
const GlobalScope = "_global"

// KeyValueStore is the persistence backend: opaque string values under
// string keys, partitioned by scope. Writes are last-writer-wins.
type KeyValueStore interface {
	// Get returns the value under key, with found=false when nothing is stored.
	Get(ctx context.Context, scope, key string) (value string, found bool, err error)
	// Set stores value under key, replacing whatever was there.
	Set(ctx context.Context, scope, key, value string) error
	// Ping checks the backend is reachable.
	Ping(ctx context.Context) error
}
