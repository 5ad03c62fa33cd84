// Package selection picks the daily target monster.
//
// The pick is a pure function of the day key and the catalog, so every
// client computes the same target with no coordination and no stored
// schedule. For each monster a score is derived from "<day key>-<id>"; the
// highest score wins. To keep the target from repeating on consecutive days,
// the winner is swapped for the runner-up whenever it equals the previous
// day's pick, checked over a bounded lookback window.
package selection

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/vytor/dailydle/internal/daykey"
	"github.com/vytor/dailydle/internal/models"
)

// DefaultLookback is how many previous days feed the anti-repeat check.
const DefaultLookback = 10

// ErrEmptyCatalog means there is nothing to pick from. Callers should treat
// it as a fatal misconfiguration.
var ErrEmptyCatalog = errors.New("selection: catalog is empty")

// Murmur3 fmix32 constants.
const (
	mixC1 uint32 = 0x85ebca6b
	mixC2 uint32 = 0xc2b2ae35
)

// hashString is the 31-multiplier string hash in wrapping int32 arithmetic,
// over the bytes of s. Day keys and ids are ASCII so bytes and UTF-16 code
// units coincide.
func hashString(s string) int32 {
	var h int32
	for i := 0; i < len(s); i++ {
		h = (h << 5) - h + int32(s[i])
	}
	return h
}

// mix spreads every input bit across the output so neighbouring ids and
// neighbouring days do not produce correlated scores.
func mix(h uint32) uint32 {
	h ^= h >> 16
	h *= mixC1
	h ^= h >> 13
	h *= mixC2
	h ^= h >> 16
	return h
}

// Score is the deterministic score of monster id on day. Any
// reimplementation must reproduce it bit for bit.
func Score(day daykey.Key, id int64) uint32 {
	return mix(uint32(hashString(string(day) + "-" + strconv.FormatInt(id, 10))))
}

// Rank returns the highest and second-highest scoring monsters of pool for
// day in a single pass. Ties keep the earlier pool entry. With a single
// candidate both results are that candidate. pool must not be empty.
func Rank(pool []models.Monster, day daykey.Key) (best, second models.Monster) {
	best, second = pool[0], pool[0]
	bestScore := Score(day, pool[0].ID)
	haveSecond := false
	var secondScore uint32

	for _, m := range pool[1:] {
		s := Score(day, m.ID)
		switch {
		case s > bestScore:
			second, secondScore, haveSecond = best, bestScore, true
			best, bestScore = m, s
		case !haveSecond || s > secondScore:
			second, secondScore, haveSecond = m, s, true
		}
	}
	return best, second
}

// Select returns the target for day, avoiding a repeat of the previous
// day's pick as computed with lookback-1 days of history.
//
// The recursion select(d, n) = swap(best(d)) if select(d-1, n-1) == best(d)
// is unrolled into a forward pass from the oldest day in the window, which
// yields the same result in O(lookback) rankings.
func Select(catalog []models.Monster, day daykey.Key, lookback int) (models.Monster, error) {
	if len(catalog) == 0 {
		return models.Monster{}, ErrEmptyCatalog
	}
	target, err := day.Date()
	if err != nil {
		return models.Monster{}, fmt.Errorf("selection: %w", err)
	}
	avail, err := availability(catalog)
	if err != nil {
		return models.Monster{}, err
	}
	if lookback < 0 {
		lookback = 0
	}

	var (
		prev     models.Monster
		havePrev bool
	)
	for back := lookback; back >= 0; back-- {
		d := target.AddDays(-back)
		best, second := Rank(eligible(catalog, avail, d), d.Key())

		pick := best
		if havePrev && prev.ID == best.ID {
			pick = second
		}
		prev, havePrev = pick, true
	}
	return prev, nil
}

// Schedule returns the targets for days consecutive days starting at from.
func Schedule(catalog []models.Monster, from daykey.Key, days, lookback int) ([]models.Monster, error) {
	start, err := from.Date()
	if err != nil {
		return nil, fmt.Errorf("selection: %w", err)
	}
	out := make([]models.Monster, 0, days)
	for i := 0; i < days; i++ {
		m, err := Select(catalog, start.AddDays(i).Key(), lookback)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// availability parses each monster's availability date once. A zero Date
// means the monster has always been available.
func availability(catalog []models.Monster) ([]daykey.Date, error) {
	out := make([]daykey.Date, len(catalog))
	for i, m := range catalog {
		if m.AvailableFrom == "" {
			continue
		}
		d, err := m.AvailableFrom.Date()
		if err != nil {
			return nil, fmt.Errorf("selection: monster %d availability: %w", m.ID, err)
		}
		out[i] = d
	}
	return out, nil
}

// eligible filters catalog to monsters available on d, falling back to the
// whole catalog when nothing is available yet.
func eligible(catalog []models.Monster, avail []daykey.Date, d daykey.Date) []models.Monster {
	pool := make([]models.Monster, 0, len(catalog))
	for i, m := range catalog {
		if avail[i] == (daykey.Date{}) || avail[i].OnOrBefore(d) {
			pool = append(pool, m)
		}
	}
	if len(pool) == 0 {
		return catalog
	}
	return pool
}
