package lib

import (
	"context"

	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/viewer"
)

// Color is an RGBA color with components from 0 to 1.
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

// Viewer is the 3D model viewer driven by the playback.
//
// Implement it to connect the SDK to your viewer. The methods are called from
// the playback goroutine, one at a time.
type Viewer interface {
	// Isolate shows only the received elements, hiding everything else.
	Isolate(ids []ElementID) error
	// ShowAll removes any isolation. This is not the same as isolating an empty list.
	ShowAll() error
	// SetThemingColor colors an element.
	SetThemingColor(id ElementID, c Color) error
	// ClearTheming removes the color of all the elements.
	ClearTheming() error
}

// Selection knows the elements currently selected by the user on the viewer.
type Selection interface {
	CurrentSelection(ctx context.Context) ([]ElementID, error)
}

// StaticSelection is a [Selection] with a fixed list of elements.
type StaticSelection []ElementID

// CurrentSelection satisfies [Selection].
func (s StaticSelection) CurrentSelection(_ context.Context) ([]ElementID, error) {
	return append([]ElementID{}, s...), nil
}

type viewerAdapter struct {
	v Viewer
}

func (a viewerAdapter) Isolate(ids []model.ElementID) error {
	return a.v.Isolate(fromInternalElements(ids))
}

func (a viewerAdapter) ShowAll() error { return a.v.ShowAll() }

func (a viewerAdapter) SetThemingColor(id model.ElementID, c viewer.Color) error {
	return a.v.SetThemingColor(ElementID(id), Color{R: c.R, G: c.G, B: c.B, A: c.A})
}

func (a viewerAdapter) ClearTheming() error { return a.v.ClearTheming() }

type selectionAdapter struct {
	s Selection
}

func (a selectionAdapter) CurrentSelection(ctx context.Context) ([]model.ElementID, error) {
	ids, err := a.s.CurrentSelection(ctx)
	if err != nil {
		return nil, err
	}
	return toInternalElements(ids), nil
}

func toInternalSelection(s Selection) viewer.Selection {
	if s == nil {
		return nil
	}
	return selectionAdapter{s: s}
}
