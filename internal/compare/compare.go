// Package compare grades a guessed monster against the day's target.
package compare

import (
	"strconv"
	"strings"

	"github.com/vytor/dailydle/internal/catalog"
	"github.com/vytor/dailydle/internal/models"
)

// Func grades guess against target. The game service depends on this shape
// so a different grading scheme can be swapped in.
type Func func(guess, target models.Monster) models.Feedback

// Monsters is the default Func.
//
// Ecosystem and race are exact or no-match. Colors are comma-separated sets:
// equal sets are exact, intersecting sets are close. Level and HP ranges are
// exact when equal and close when they overlap; otherwise the direction
// points from the guess toward the target.
func Monsters(guess, target models.Monster) models.Feedback {
	return models.Feedback{
		Ecosystem: categorical(guess.Ecosystem, target.Ecosystem),
		Race:      categorical(guess.Race, target.Race),
		Color:     colors(guess.Color, target.Color),
		Level:     numeric(guess.Level(), target.Level()),
		HP:        numeric(guess.HP(), target.HP()),
	}
}

// Guess grades guess with fn and reports whether it hit the target.
func Guess(fn Func, guess, target models.Monster) models.GuessResult {
	return models.GuessResult{
		Monster:  guess,
		Feedback: fn(guess, target),
		Correct:  guess.ID == target.ID,
	}
}

func categorical(guess, target string) models.AttributeFeedback {
	status := models.StatusNoMatch
	if catalog.Normalize(guess) == catalog.Normalize(target) {
		status = models.StatusExact
	}
	return models.AttributeFeedback{Value: guess, Status: status}
}

func colors(guess, target string) models.AttributeFeedback {
	g, t := colorSet(guess), colorSet(target)

	shared := 0
	for c := range g {
		if t[c] {
			shared++
		}
	}

	status := models.StatusNoMatch
	switch {
	case shared > 0 && shared == len(g) && shared == len(t):
		status = models.StatusExact
	case shared > 0:
		status = models.StatusClose
	}
	return models.AttributeFeedback{Value: guess, Status: status}
}

func colorSet(s string) map[string]bool {
	set := map[string]bool{}
	for _, part := range strings.Split(s, ",") {
		if c := catalog.Normalize(part); c != "" {
			set[c] = true
		}
	}
	return set
}

func numeric(guess, target models.Range) models.AttributeFeedback {
	fb := models.AttributeFeedback{Value: formatRange(guess), Status: models.StatusNoMatch}
	switch {
	case guess == target:
		fb.Status = models.StatusExact
		return fb
	case guess.Overlaps(target):
		fb.Status = models.StatusClose
	}

	switch {
	case target.Min > guess.Min, target.Min == guess.Min && target.Max > guess.Max:
		fb.Direction = models.DirectionHigher
	default:
		fb.Direction = models.DirectionLower
	}
	return fb
}

func formatRange(r models.Range) string {
	if r.Min == r.Max {
		return strconv.Itoa(r.Min)
	}
	return strconv.Itoa(r.Min) + "-" + strconv.Itoa(r.Max)
}

// Emoji renders a status as a share-grid square.
func Emoji(s models.Status) string {
	switch s {
	case models.StatusExact:
		return "🟩"
	case models.StatusClose:
		return "🟧"
	default:
		return "🟥"
	}
}
