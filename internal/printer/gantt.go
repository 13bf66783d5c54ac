package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/timeline"
)

const ganttNameWidth = 20

// GanttTextPrinter draws the timeline chart with characters, one column per day.
type GanttTextPrinter struct {
	writer io.Writer
}

// NewGanttTextPrinter creates a new text Gantt printer.
func NewGanttTextPrinter(w io.Writer) *GanttTextPrinter {
	return &GanttTextPrinter{writer: w}
}

var ganttGlyphs = map[model.TaskType]byte{
	model.TaskTypeBuild:     '#',
	model.TaskTypeDemolish:  'x',
	model.TaskTypeTemporary: '=',
}

// PrintChart prints the chart rows. Critical tasks are marked with '*', empty
// weekend cells with '.' and the empty cells of the current day with ':'.
func (g *GanttTextPrinter) PrintChart(chart timeline.Chart) error {
	l := chart.Layout
	if l.Empty() {
		fmt.Fprintln(g.writer, "No tasks")
		return nil
	}

	fmt.Fprintf(g.writer, "%s .. %s (%s)\n", model.FormatDate(l.Range.Min), model.FormatDate(l.Range.Max), FormatDays(l.Range.Len()))

	var header strings.Builder
	for _, d := range l.Days {
		header.WriteString(strconv.Itoa(d.Date.Day() % 10))
	}
	fmt.Fprintf(g.writer, "%-*s |%s|\n", ganttNameWidth+7, "", header.String())

	for _, b := range l.Bars {
		mark := " "
		if chart.Critical[b.TaskID] {
			mark = "*"
		}
		fmt.Fprintf(g.writer, "%s %4d %-*s |%s|\n", mark, b.TaskID, ganttNameWidth, truncate(b.Name, ganttNameWidth), ganttCells(l.Days, b))
	}

	for _, w := range chart.Warnings {
		fmt.Fprintf(g.writer, "Warning: %s\n", w)
	}
	fmt.Fprintln(g.writer, "# build  x demolish  = temporary  * critical  . weekend  : today")

	return nil
}

func ganttCells(days []timeline.Day, b timeline.Bar) string {
	glyph, ok := ganttGlyphs[b.Type]
	if !ok {
		glyph = '#'
	}

	cells := make([]byte, len(days))
	for i, d := range days {
		switch {
		case i >= b.StartIndex && i <= b.EndIndex:
			cells[i] = glyph
		case d.Today:
			cells[i] = ':'
		case d.Weekend:
			cells[i] = '.'
		default:
			cells[i] = ' '
		}
	}
	return string(cells)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}
