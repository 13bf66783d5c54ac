// Package viewer has the contracts of the external 3D model viewer that the
// schedule engine drives: isolating element sets and theming them.
package viewer

import (
	"context"
	"fmt"

	"github.com/slok/fourd/internal/model"
)

// Color is a RGBA color with components between 0 and 1.
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

// String satisfies fmt.Stringer.
func (c Color) String() string {
	return fmt.Sprintf("rgba(%.2f,%.2f,%.2f,%.2f)", c.R, c.G, c.B, c.A)
}

// ColorFromArray returns a color from its RGBA components.
func ColorFromArray(c [4]float64) Color {
	return Color{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// ActiveColor is the color used on the elements of active tasks.
var ActiveColor = Color{R: 0.0, G: 0.55, B: 1.0, A: 0.7}

// Viewer is the visualization collaborator.
type Viewer interface {
	// Isolate shows only the received elements, hiding everything else.
	Isolate(ids []model.ElementID) error
	// ShowAll removes any isolation. This is not the same as isolating an empty list.
	ShowAll() error
	// SetThemingColor colors an element.
	SetThemingColor(id model.ElementID, c Color) error
	// ClearTheming removes the color of all the elements.
	ClearTheming() error
}

// Selection knows the elements currently selected by the user on the viewer.
type Selection interface {
	CurrentSelection(ctx context.Context) ([]model.ElementID, error)
}

// StaticSelection is a Selection with a fixed list of elements.
type StaticSelection []model.ElementID

// CurrentSelection satisfies Selection.
func (s StaticSelection) CurrentSelection(_ context.Context) ([]model.ElementID, error) {
	return append([]model.ElementID{}, s...), nil
}

// Noop is a viewer that ignores every command.
var Noop Viewer = noop{}

type noop struct{}

func (noop) Isolate([]model.ElementID) error              { return nil }
func (noop) ShowAll() error                               { return nil }
func (noop) SetThemingColor(model.ElementID, Color) error { return nil }
func (noop) ClearTheming() error                          { return nil }
