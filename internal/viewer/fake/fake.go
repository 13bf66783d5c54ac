package fake

import (
	"slices"
	"sync"

	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/viewer"
)

// CallKind is the kind of a recorded viewer call.
type CallKind string

const (
	CallIsolate      CallKind = "isolate"
	CallShowAll      CallKind = "show-all"
	CallSetColor     CallKind = "set-color"
	CallClearTheming CallKind = "clear-theming"
)

// Call is a recorded viewer call.
type Call struct {
	Kind     CallKind
	Elements []model.ElementID
	Color    viewer.Color
}

// Viewer is a fake viewer.Viewer that records every call and keeps the
// resulting visibility state.
type Viewer struct {
	calls    []Call
	isolated []model.ElementID
	colors   map[model.ElementID]viewer.Color
	mu       sync.Mutex
}

// NewViewer returns a new fake viewer.
func NewViewer() *Viewer {
	return &Viewer{colors: map[model.ElementID]viewer.Color{}}
}

func (v *Viewer) Isolate(ids []model.ElementID) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.isolated = slices.Clone(ids)
	v.calls = append(v.calls, Call{Kind: CallIsolate, Elements: slices.Clone(ids)})
	return nil
}

func (v *Viewer) ShowAll() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.isolated = nil
	v.calls = append(v.calls, Call{Kind: CallShowAll})
	return nil
}

func (v *Viewer) SetThemingColor(id model.ElementID, c viewer.Color) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.colors[id] = c
	v.calls = append(v.calls, Call{Kind: CallSetColor, Elements: []model.ElementID{id}, Color: c})
	return nil
}

func (v *Viewer) ClearTheming() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.colors = map[model.ElementID]viewer.Color{}
	v.calls = append(v.calls, Call{Kind: CallClearTheming})
	return nil
}

// Calls returns the recorded calls.
func (v *Viewer) Calls() []Call {
	v.mu.Lock()
	defer v.mu.Unlock()

	return slices.Clone(v.calls)
}

// VisibilityCalls returns only the isolate and show all calls.
func (v *Viewer) VisibilityCalls() []Call {
	v.mu.Lock()
	defer v.mu.Unlock()

	var calls []Call
	for _, c := range v.calls {
		if c.Kind == CallIsolate || c.Kind == CallShowAll {
			calls = append(calls, c)
		}
	}
	return calls
}

// Isolated returns the currently isolated elements, nil when everything is shown.
func (v *Viewer) Isolated() []model.ElementID {
	v.mu.Lock()
	defer v.mu.Unlock()

	return slices.Clone(v.isolated)
}

// Colored returns the currently themed elements.
func (v *Viewer) Colored() map[model.ElementID]viewer.Color {
	v.mu.Lock()
	defer v.mu.Unlock()

	colors := make(map[model.ElementID]viewer.Color, len(v.colors))
	for k, c := range v.colors {
		colors[k] = c
	}
	return colors
}
