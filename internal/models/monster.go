package models

import "github.com/vytor/dailydle/internal/daykey"

// Monster is one catalog entry eligible to be a daily target.
// Catalog records are loaded once and never mutated.
type Monster struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Ecosystem     string     `json:"ecosystem"`
	Race          string     `json:"race"`
	Color         string     `json:"color"`
	LevelMin      int        `json:"level_min"`
	LevelMax      int        `json:"level_max"`
	HPMin         int        `json:"hp_min"`
	HPMax         int        `json:"hp_max"`
	Image         string     `json:"image,omitempty"`
	AvailableFrom daykey.Key `json:"available_from,omitempty"`
}

// Range is an inclusive numeric interval.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Overlaps reports whether r and o share at least one value.
func (r Range) Overlaps(o Range) bool {
	return r.Min <= o.Max && o.Min <= r.Max
}

func (m Monster) Level() Range { return Range{Min: m.LevelMin, Max: m.LevelMax} }

func (m Monster) HP() Range { return Range{Min: m.HPMin, Max: m.HPMax} }
