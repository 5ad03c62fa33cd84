package models

import "github.com/vytor/dailydle/internal/daykey"

// AggregateStats holds a player's cross-day counters.
type AggregateStats struct {
	GamesPlayed       int         `json:"gamesPlayed"`
	GamesWon          int         `json:"gamesWon"`
	CurrentStreak     int         `json:"currentStreak"`
	MaxStreak         int         `json:"maxStreak"`
	GuessDistribution map[int]int `json:"guessDistribution"`
	LastWinDate       daykey.Key  `json:"lastWinDate,omitempty"`
}

// StatsView is AggregateStats plus derived values for display.
type StatsView struct {
	AggregateStats
	WinPercentage int `json:"winPercentage"`
}
