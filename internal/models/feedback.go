package models

// Status grades one attribute of a guess against the target.
type Status string

const (
	StatusExact   Status = "exact"
	StatusClose   Status = "close"
	StatusNoMatch Status = "no-match"
)

// Direction tells the player where the target's numeric value lies.
type Direction string

const (
	DirectionNone   Direction = ""
	DirectionHigher Direction = "higher"
	DirectionLower  Direction = "lower"
)

type AttributeFeedback struct {
	Value     string    `json:"value"`
	Status    Status    `json:"status"`
	Direction Direction `json:"direction,omitempty"`
}

// Feedback is the per-attribute grading of one guess, in display order.
type Feedback struct {
	Ecosystem AttributeFeedback `json:"ecosystem"`
	Race      AttributeFeedback `json:"race"`
	Color     AttributeFeedback `json:"color"`
	Level     AttributeFeedback `json:"level"`
	HP        AttributeFeedback `json:"hp"`
}

// Cells returns the attributes in display order.
func (f Feedback) Cells() []AttributeFeedback {
	return []AttributeFeedback{f.Ecosystem, f.Race, f.Color, f.Level, f.HP}
}

type GuessResult struct {
	Monster  Monster  `json:"monster"`
	Feedback Feedback `json:"feedback"`
	Correct  bool     `json:"correct"`
}
