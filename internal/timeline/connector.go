package timeline

import "math"

// Geometry maps the layout fractions and rows to pixels.
type Geometry struct {
	Width     float64
	RowHeight float64
	BarHeight float64
	// Epsilon is the vertical distance under which two bars are in the same row.
	Epsilon float64
}

// DefaultGeometry returns the default timeline geometry.
func DefaultGeometry() Geometry {
	return Geometry{
		Width:     1000,
		RowHeight: 28,
		BarHeight: 18,
		Epsilon:   0.5,
	}
}

// Point is a pixel coordinate.
type Point struct {
	X float64
	Y float64
}

// Rect is a pixel rectangle.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// BarRect returns the pixel rectangle of a bar, vertically centered on its row.
func (g Geometry) BarRect(b Bar) Rect {
	return Rect{
		X:      b.Left * g.Width,
		Y:      float64(b.Row)*g.RowHeight + (g.RowHeight-g.BarHeight)/2,
		Width:  b.Width * g.Width,
		Height: g.BarHeight,
	}
}

// Height returns the pixel height needed to draw all the layout rows.
func (g Geometry) Height(l Layout) float64 {
	return float64(len(l.Bars)) * g.RowHeight
}

// Connector is the routed path from a predecessor bar to a successor bar.
type Connector struct {
	From     int
	To       int
	Points   []Point
	Critical bool
}

// Connectors routes a connector for every resolvable dependency of the layout
// bars, from the predecessor right edge to the successor left edge. Connectors
// between bars of the same row are straight, the rest are orthogonal with the
// vertical segment at the horizontal midpoint between both edges.
//
// Dependencies on missing tasks are skipped. A connector is critical when both
// of its tasks are on the critical set.
func Connectors(l Layout, g Geometry, critical map[int]bool) []Connector {
	byTask := make(map[int]Bar, len(l.Bars))
	for _, b := range l.Bars {
		byTask[b.TaskID] = b
	}

	connectors := []Connector{}
	for _, succ := range l.Bars {
		for _, depID := range succ.Dependencies {
			pred, ok := byTask[depID]
			if !ok {
				continue
			}

			pr := g.BarRect(pred)
			sr := g.BarRect(succ)
			from := Point{X: pr.X + pr.Width, Y: pr.Y + pr.Height/2}
			to := Point{X: sr.X, Y: sr.Y + sr.Height/2}

			var points []Point
			if math.Abs(to.Y-from.Y) < g.Epsilon {
				points = []Point{from, to}
			} else {
				mid := (from.X + to.X) / 2
				points = []Point{
					from,
					{X: mid, Y: from.Y},
					{X: mid, Y: to.Y},
					to,
				}
			}

			connectors = append(connectors, Connector{
				From:     pred.TaskID,
				To:       succ.TaskID,
				Points:   points,
				Critical: critical[pred.TaskID] && critical[succ.TaskID],
			})
		}
	}

	return connectors
}
