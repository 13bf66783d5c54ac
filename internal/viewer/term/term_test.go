package term_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/viewer"
	"github.com/slok/fourd/internal/viewer/term"
)

func TestViewer(t *testing.T) {
	tests := map[string]struct {
		verbose bool
		exp     string
	}{
		"Non verbose viewer should only write visibility commands": {
			verbose: false,
			exp:     "viewer: isolate [1 2]\nviewer: show all\n",
		},

		"Verbose viewer should write theming commands": {
			verbose: true,
			exp: "viewer: clear colors\n" +
				"viewer: color 1 rgba(0.00,0.55,1.00,0.70)\n" +
				"viewer: isolate [1 2]\n" +
				"viewer: show all\n",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			v := term.NewViewer(&buf, test.verbose)

			require.NoError(t, v.ClearTheming())
			require.NoError(t, v.SetThemingColor(1, viewer.ActiveColor))
			require.NoError(t, v.Isolate([]model.ElementID{1, 2}))
			require.NoError(t, v.ShowAll())

			assert.Equal(t, test.exp, buf.String())
		})
	}
}
