package models

import "github.com/vytor/dailydle/internal/daykey"

// HintState describes both hints for the current attempt. Revealed values
// are only filled in once the player has revealed the matching hint.
type HintState struct {
	ImageUnlocked         bool   `json:"imageUnlocked"`
	ImageRevealed         bool   `json:"imageRevealed"`
	Image                 string `json:"image,omitempty"`
	GuessesUntilImage     int    `json:"guessesUntilImage"`
	EcosystemUnlocked     bool   `json:"ecosystemUnlocked"`
	EcosystemRevealed     bool   `json:"ecosystemRevealed"`
	Ecosystem             string `json:"ecosystem,omitempty"`
	GuessesUntilEcosystem int    `json:"guessesUntilEcosystem"`
	Used                  int    `json:"used"`
}

// GameState is everything a client needs to render today's game.
type GameState struct {
	Day              daykey.Key    `json:"day"`
	Guesses          []GuessResult `json:"guesses"`
	Won              bool          `json:"won"`
	Hints            HintState     `json:"hints"`
	Target           *Monster      `json:"target,omitempty"`
	Share            string        `json:"share,omitempty"`
	Yesterday        *Monster      `json:"yesterday,omitempty"`
	Stats            StatsView     `json:"stats"`
	SecondsUntilNext int64         `json:"secondsUntilNext"`
}

// GuessOutcome is returned after a guess is accepted.
type GuessOutcome struct {
	Result GuessResult `json:"result"`
	State  GameState   `json:"state"`
}
