package models

import "github.com/vytor/dailydle/internal/daykey"

// DailyAttempt is the persisted record of one player's guesses for one day.
// It is replaced wholesale on every save and discarded once Date is no
// longer today.
type DailyAttempt struct {
	Date          daykey.Key `json:"date"`
	Guesses       []string   `json:"guesses"`
	GuessIDs      []int64    `json:"guessIds,omitempty"`
	Won           bool       `json:"won"`
	Hint1Revealed bool       `json:"hint1Revealed,omitempty"`
	Hint2Revealed bool       `json:"hint2Revealed,omitempty"`
}

// Hint identifies one of the two reveals a player can unlock.
type Hint int

const (
	HintImage     Hint = 1
	HintEcosystem Hint = 2
)

// Guesses needed before each hint can be revealed.
const (
	HintImageThreshold     = 5
	HintEcosystemThreshold = 8
)

// Threshold returns the guess count that unlocks h, or 0 for unknown hints.
func (h Hint) Threshold() int {
	switch h {
	case HintImage:
		return HintImageThreshold
	case HintEcosystem:
		return HintEcosystemThreshold
	default:
		return 0
	}
}

func (h Hint) Valid() bool { return h.Threshold() > 0 }
