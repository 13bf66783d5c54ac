package printer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/playback"
	"github.com/slok/fourd/internal/printer"
)

func TestFormatProgress(t *testing.T) {
	tests := map[string]struct {
		progress playback.Progress
		exp      string
	}{
		"A day with active tasks should show their names.": {
			progress: playback.Progress{
				Date:     model.NewDate(2024, 1, 3),
				Index:    2,
				Total:    10,
				Fraction: 0.3,
				Active:   []playback.TaskRef{{ID: 1, Name: "Excavation"}, {ID: 2, Name: "Formwork"}},
			},
			exp: "[######..............] 2024-01-03 (3/10) Excavation, Formwork",
		},
		"A day without active tasks should show a dash.": {
			progress: playback.Progress{
				Date:     model.NewDate(2024, 1, 10),
				Index:    9,
				Total:    10,
				Fraction: 1,
			},
			exp: "[####################] 2024-01-10 (10/10) -",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.exp, printer.FormatProgress(test.progress))
		})
	}
}
