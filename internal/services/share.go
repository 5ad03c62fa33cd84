package services

import (
	"fmt"
	"strings"

	"github.com/vytor/dailydle/internal/compare"
	"github.com/vytor/dailydle/internal/models"
)

// ShareTitle heads every shared result.
const ShareTitle = "Ankamadle"

// ShareText renders a spoiler-free summary: a header line, then one row of
// squares per guess in attribute display order.
func ShareText(target string, results []models.GuessResult) string {
	plural := ""
	if len(results) > 1 {
		plural = "s"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s en %d essai%s", ShareTitle, target, len(results), plural)
	for _, r := range results {
		b.WriteByte('\n')
		for _, cell := range r.Feedback.Cells() {
			b.WriteString(compare.Emoji(cell.Status))
		}
	}
	return b.String()
}
