package term

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/viewer"
)

// Viewer is a viewer.Viewer that writes the received commands as text lines,
// useful to follow a playback on a terminal without a 3D viewer attached.
type Viewer struct {
	w       io.Writer
	theming bool
	mu      sync.Mutex
}

// NewViewer returns a new terminal viewer. Theming commands are only written
// when verbose is enabled.
func NewViewer(w io.Writer, verbose bool) *Viewer {
	return &Viewer{w: w, theming: verbose}
}

func (v *Viewer) Isolate(ids []model.ElementID) error {
	return v.write("isolate %s", formatIDs(ids))
}

func (v *Viewer) ShowAll() error {
	return v.write("show all")
}

func (v *Viewer) SetThemingColor(id model.ElementID, c viewer.Color) error {
	if !v.theming {
		return nil
	}
	return v.write("color %d %s", id, c)
}

func (v *Viewer) ClearTheming() error {
	if !v.theming {
		return nil
	}
	return v.write("clear colors")
}

func (v *Viewer) write(format string, args ...any) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	_, err := fmt.Fprintf(v.w, "viewer: "+format+"\n", args...)
	return err
}

func formatIDs(ids []model.ElementID) string {
	s := make([]string, 0, len(ids))
	for _, id := range ids {
		s = append(s, strconv.Itoa(int(id)))
	}
	return "[" + strings.Join(s, " ") + "]"
}
