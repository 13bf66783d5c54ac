package printer

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/timeline"
)

const (
	svgHeaderHeight  = 20
	svgCriticalColor = "#c0392b"
	svgLinkColor     = "#555555"
)

var svgTypeColors = map[model.TaskType]string{
	model.TaskTypeBuild:     "#4a90d9",
	model.TaskTypeDemolish:  "#d9534f",
	model.TaskTypeTemporary: "#f0ad4e",
}

// SVGPrinter draws the timeline chart as an SVG document using the chart geometry.
type SVGPrinter struct {
	writer io.Writer
}

// NewSVGPrinter creates a new SVG printer.
func NewSVGPrinter(w io.Writer) *SVGPrinter {
	return &SVGPrinter{writer: w}
}

// PrintChart prints the chart SVG document.
func (s *SVGPrinter) PrintChart(chart timeline.Chart) error {
	l := chart.Layout
	g := chart.Geometry
	width := g.Width
	height := svgHeaderHeight + g.Height(l)

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%s" height="%s" viewBox="0 0 %s %s" xmlns="http://www.w3.org/2000/svg">
<defs>
<marker id="arrow" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="6" markerHeight="6" orient="auto"><path d="M 0 0 L 10 5 L 0 10 z" fill="%s"/></marker>
<marker id="arrow-critical" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="6" markerHeight="6" orient="auto"><path d="M 0 0 L 10 5 L 0 10 z" fill="%s"/></marker>
<style>
text { font-family: Arial, sans-serif; font-size: 10px; fill: #333333; }
</style>
</defs>
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, num(width), num(height), num(width), num(height), svgLinkColor, svgCriticalColor))

	if l.Empty() {
		svg.WriteString(`<text x="4" y="14">No tasks</text>` + "\n")
		svg.WriteString("</svg>\n")
		_, err := io.WriteString(s.writer, svg.String())
		return err
	}

	// Day columns and labels.
	dayWidth := width / float64(len(l.Days))
	for i, d := range l.Days {
		x := float64(i) * dayWidth
		if d.Weekend {
			svg.WriteString(fmt.Sprintf(`<rect class="weekend" x="%s" y="0" width="%s" height="%s" fill="#f2f2f2"/>`+"\n",
				num(x), num(dayWidth), num(height)))
		}
		svg.WriteString(fmt.Sprintf(`<text x="%s" y="14" text-anchor="middle">%d</text>`+"\n",
			num(x+dayWidth/2), d.Date.Day()))
	}

	svg.WriteString(fmt.Sprintf(`<g transform="translate(0,%d)">`+"\n", svgHeaderHeight))

	// Task bars.
	for _, b := range l.Bars {
		r := g.BarRect(b)
		fill, ok := svgTypeColors[b.Type]
		if !ok {
			fill = "#7f8c8d"
		}
		stroke := "none"
		if chart.Critical[b.TaskID] {
			stroke = svgCriticalColor
		}

		svg.WriteString(fmt.Sprintf(`<rect class="bar" data-task="%d" x="%s" y="%s" width="%s" height="%s" rx="2" fill="%s" stroke="%s" stroke-width="2"><title>%s</title></rect>`+"\n",
			b.TaskID, num(r.X), num(r.Y), num(r.Width), num(r.Height), fill, stroke, escapeXML(b.Name)))

		if b.PercentComplete != nil && *b.PercentComplete > 0 {
			svg.WriteString(fmt.Sprintf(`<rect class="progress" x="%s" y="%s" width="%s" height="%s" fill="#000000" fill-opacity="0.2"/>`+"\n",
				num(r.X), num(r.Y), num(r.Width*float64(*b.PercentComplete)/100), num(r.Height)))
		}

		svg.WriteString(fmt.Sprintf(`<text x="%s" y="%s">%s</text>`+"\n",
			num(r.X+4), num(r.Y+r.Height/2+3), escapeXML(b.Name)))
	}

	// Dependency connectors.
	for _, c := range chart.Connectors {
		points := make([]string, 0, len(c.Points))
		for _, p := range c.Points {
			points = append(points, num(p.X)+","+num(p.Y))
		}

		class, color, marker := "connector", svgLinkColor, "arrow"
		if c.Critical {
			class, color, marker = "connector critical", svgCriticalColor, "arrow-critical"
		}
		svg.WriteString(fmt.Sprintf(`<polyline class="%s" data-from="%d" data-to="%d" points="%s" fill="none" stroke="%s" stroke-width="1.5" marker-end="url(#%s)"/>`+"\n",
			class, c.From, c.To, strings.Join(points, " "), color, marker))
	}

	svg.WriteString("</g>\n")

	if l.Today != nil {
		x := l.Today.Left*width + dayWidth/2
		svg.WriteString(fmt.Sprintf(`<line class="today" x1="%s" y1="0" x2="%s" y2="%s" stroke="#e67e22" stroke-width="2" stroke-dasharray="4 2"/>`+"\n",
			num(x), num(x), num(height)))
	}

	svg.WriteString("</svg>\n")

	_, err := io.WriteString(s.writer, svg.String())
	return err
}

// num formats a pixel value with at most 2 decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// escapeXML escapes task names so they can't break the document, characters
// not allowed in XML are replaced.
func escapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
