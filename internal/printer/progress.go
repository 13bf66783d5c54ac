package printer

import (
	"fmt"
	"math"
	"strings"

	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/playback"
)

const progressBarWidth = 20

// FormatProgress returns the one line playback HUD of a simulated day: the
// progress bar, the day and the names of the active tasks.
func FormatProgress(p playback.Progress) string {
	filled := int(math.Round(p.Fraction * progressBarWidth))
	filled = min(max(filled, 0), progressBarWidth)
	bar := strings.Repeat("#", filled) + strings.Repeat(".", progressBarWidth-filled)

	names := make([]string, 0, len(p.Active))
	for _, t := range p.Active {
		names = append(names, t.Name)
	}
	active := "-"
	if len(names) > 0 {
		active = strings.Join(names, ", ")
	}

	return fmt.Sprintf("[%s] %s (%d/%d) %s", bar, model.FormatDate(p.Date), p.Index+1, p.Total, active)
}
