package script

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/stretchy"
	"github.com/agiangrant/stretchy/internal/config"
)

const swipeTOML = `
width = 300.0

[header]
height = 212.0
background = ["a.png", "b.png", "c.png"]

[[steps]]
do = "down"
x = 250.0
y = 50.0

[[steps]]
do = "move"
x = 240.0
y = 50.0
after_ms = 10

[[steps]]
do = "move"
x = 100.0
y = 50.0
after_ms = 190

[[steps]]
do = "up"
x = 50.0
y = 50.0
after_ms = 100

[[steps]]
do = "settle"
`

const scrollYAML = `
width: 300
header:
  height: 212
  background: [a.png, b.png]
steps:
  - do: scroll
    y: 53
  - do: scroll
    y: 106
    after_ms: 20
  - do: scroll
    y: 212
    after_ms: 20
`

func TestDecodeKeepsDefaults(t *testing.T) {
	s, err := Decode([]byte(swipeTOML), config.FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, 300.0, s.Width)
	assert.Equal(t, 667.0, s.Viewport)
	assert.Equal(t, " / ", s.Header.Pager.Separator)
	assert.Equal(t, 16, s.Scroll.EventThrottleMS)
	require.Len(t, s.Steps, 5)
	assert.Equal(t, ActionSettle, s.Steps[4].Do)
	assert.Equal(t, 190, s.Steps[2].AfterMS)
}

func TestDecodeRejectsBadScripts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{"no steps", "width: 300\n", "Script.Steps"},
		{"unknown action", "steps:\n  - do: jump\n", "Script.Steps[0].Do"},
		{"negative delay", "steps:\n  - do: down\n    after_ms: -5\n", "Script.Steps[0].AfterMS"},
		{"bad width", "width: 0\nsteps:\n  - do: settle\n", "Script.Width"},
		{"bad header", "header:\n  height: 0\nsteps:\n  - do: settle\n", "Script.Header.Height"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input), config.FormatYAML)
			var verr *config.ValidationError
			require.ErrorAs(t, err, &verr)

			var fields []string
			for _, f := range verr.Fields {
				fields = append(fields, f.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestRunSwipeAdvancesGallery(t *testing.T) {
	s, err := Decode([]byte(swipeTOML), config.FormatTOML)
	require.NoError(t, err)

	records, err := Run(context.Background(), s, nil)
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.False(t, records[0].Claimed, "touch down alone is not claimed")
	assert.True(t, records[1].Claimed)
	assert.Equal(t, stretchy.DragDragging, records[2].State)
	assert.InDelta(t, 0.5, records[2].Frame.Index, 1e-9)
	assert.InDelta(t, -150, records[2].Frame.TranslateX, 1e-9)
	assert.Equal(t, stretchy.DragSettling, records[3].State)

	last := records[4]
	assert.Equal(t, stretchy.DragIdle, last.State)
	assert.Equal(t, 1, last.Index)
	assert.Equal(t, "2 / 3", last.Pager)
	assert.InDelta(t, -300, last.Frame.TranslateX, 1e-9)
	assert.Equal(t, 5, last.Step)
	assert.Greater(t, last.At, records[3].At)
	assert.Greater(t, last.Updates, records[3].Updates, "settle frames reach the renderer")
}

func TestRunScrollComposesHeader(t *testing.T) {
	s, err := Decode([]byte(scrollYAML), config.FormatYAML)
	require.NoError(t, err)

	records, err := Run(context.Background(), s, nil)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.InDelta(t, 0.75, records[0].Frame.Opacity, 1e-9)
	assert.InDelta(t, 0.5, records[1].Frame.Opacity, 1e-9)
	assert.InDelta(t, 53, records[1].Frame.TranslateY, 1e-9)
	assert.InDelta(t, 0, records[2].Frame.Opacity, 1e-9)
	assert.Equal(t, "1 / 2", records[2].Pager)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	s, err := Decode([]byte(swipeTOML), config.FormatTOML)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records, err := Run(ctx, s, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, records)
}

func TestSessionGoTo(t *testing.T) {
	s := Default()
	s.Width = 300
	s.Header.Background = []string{"a.png", "b.png", "c.png"}

	sess, err := NewSession(&s, nil)
	require.NoError(t, err)

	_, err = sess.Apply(Step{Do: ActionGoTo, Index: 2, Animated: true})
	require.NoError(t, err)
	_, err = sess.Apply(Step{Do: ActionSettle})
	require.NoError(t, err)

	assert.Equal(t, []int{2}, sess.Changes())
	assert.Equal(t, "3 / 3", sess.Snapshot(2, ActionSettle).Pager)
}

func TestLoadResolvesConfigReference(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "header.yaml"), []byte(
		"header:\n  height: 150\n  background: [x.png, y.png]\n"), 0o644))
	scriptPath := filepath.Join(dir, "swipe.yaml")
	require.NoError(t, os.WriteFile(scriptPath, []byte(
		"config: header.yaml\nsteps:\n  - do: settle\n"), 0o644))

	s, err := Load(scriptPath)
	require.NoError(t, err)
	assert.Equal(t, 150.0, s.Header.Height)
	assert.Equal(t, []string{"x.png", "y.png"}, s.Header.Background)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(filepath.Join(dir, "swipe.json"))
	assert.ErrorIs(t, err, config.ErrUnsupportedFormat)
}

func TestRunScrollToUsesConfiguredEasing(t *testing.T) {
	s, err := Decode([]byte(`
width: 300
header:
  height: 200
scroll:
  easing: linear
  scroll_to_ms: 100
steps:
  - {do: scrollto, y: 120, animated: true}
  - {do: frames, frames: 4}
  - {do: settle}
`), config.FormatYAML)
	require.NoError(t, err)

	records, err := Run(context.Background(), s, nil)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, 0.0, records[0].Frame.ScrollY)
	// One frame starts the clock, three cover half the duration
	assert.InDelta(t, 60, records[1].Frame.ScrollY, 1e-3)
	assert.InDelta(t, 120, records[2].Frame.ScrollY, 1e-9)
}
