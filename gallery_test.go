package stretchy

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/stretchy/internal/logging"
	"github.com/agiangrant/stretchy/retained"
)

type countingLocker struct{ begins, ends int }

func (l *countingLocker) BeginDrag() { l.begins++ }
func (l *countingLocker) EndDrag()   { l.ends++ }

func TestGalleryStateMachine(t *testing.T) {
	loop := retained.NewLoop(retained.DefaultLoopConfig())
	locker := &countingLocker{}
	g := NewGallery(loop, GalleryConfig{Length: 3, Locker: locker})
	g.SetWidth(300)
	d := newDriver(loop, g.Responder())

	assert.Equal(t, DragIdle, g.State())

	d.touch(retained.TouchDown, 200, 50, 16)
	assert.Equal(t, DragIdle, g.State(), "touch down alone does not capture")

	d.touch(retained.TouchMove, 190, 50, 10)
	assert.Equal(t, DragDragging, g.State())
	assert.Equal(t, 1, locker.begins)
	assert.False(t, g.GoTo(2, true), "programmatic paging waits for the finger")

	d.touch(retained.TouchUp, 40, 50, 100)
	assert.Equal(t, DragSettling, g.State())
	assert.Equal(t, 1, locker.ends)

	d.settle()
	assert.Equal(t, DragIdle, g.State())
	assert.Equal(t, 1, g.Index())
}

func TestGalleryCancelSettlesLikeRelease(t *testing.T) {
	loop := retained.NewLoop(retained.DefaultLoopConfig())
	var changes []int
	g := NewGallery(loop, GalleryConfig{Length: 2, OnChange: func(i int) { changes = append(changes, i) }})
	g.SetWidth(100)
	d := newDriver(loop, g.Responder())

	d.touch(retained.TouchDown, 90, 10, 16)
	d.touch(retained.TouchMove, 80, 10, 10)
	d.touch(retained.TouchMove, 20, 10, 200)
	d.touch(retained.TouchCancel, 20, 10, 200)
	d.settle()

	assert.Equal(t, []int{1}, changes)
	assert.Equal(t, 1.0, g.Value().Value())
}

func TestGalleryCancelAbandonsGesture(t *testing.T) {
	tests := []struct {
		name     string
		drive    func(d *driver)
		wantEnds int
	}{
		{
			name:  "idle",
			drive: func(*driver) {},
		},
		{
			name: "dragging",
			drive: func(d *driver) {
				d.touch(retained.TouchDown, 200, 50, 16)
				d.touch(retained.TouchMove, 190, 50, 10)
				d.touch(retained.TouchMove, 80, 50, 100)
			},
			wantEnds: 1,
		},
		{
			name: "settling",
			drive: func(d *driver) {
				d.swipe(250, 100, 50, 50, 100)
				d.frames(1)
			},
			wantEnds: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loop := retained.NewLoop(retained.DefaultLoopConfig())
			locker := &countingLocker{}
			var changes []int
			g := NewGallery(loop, GalleryConfig{
				Length:   3,
				Locker:   locker,
				OnChange: func(i int) { changes = append(changes, i) },
			})
			g.SetWidth(300)
			d := newDriver(loop, g.Responder())

			tt.drive(d)
			g.Cancel()
			d.settle()

			assert.Equal(t, DragIdle, g.State())
			assert.Equal(t, 0.0, g.Value().Value())
			assert.Equal(t, 0, g.Index())
			assert.Equal(t, tt.wantEnds, locker.ends)
			assert.Equal(t, locker.begins, locker.ends)
			assert.Empty(t, changes)
			assert.False(t, g.Responder().IsResponder())
		})
	}
}

func TestGalleryWithoutElements(t *testing.T) {
	g := NewGallery(retained.NewLoop(retained.LoopConfig{}), GalleryConfig{})
	assert.Nil(t, g.Responder())
	assert.False(t, g.GoTo(1, false))
	assert.Equal(t, 0, g.Len())
}

func TestGalleryLogsTransitions(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := logging.New(logging.Options{Level: "debug", Writer: buf})
	require.NoError(t, err)

	loop := retained.NewLoop(retained.DefaultLoopConfig())
	g := NewGallery(loop, GalleryConfig{Length: 3, Logger: log})
	g.SetWidth(300)
	d := newDriver(loop, g.Responder())

	d.swipe(250, 100, 50, 50, 100)
	d.settle()

	out := buf.String()
	assert.True(t, strings.Contains(out, `"message":"gallery drag granted"`), out)
	assert.True(t, strings.Contains(out, `"message":"gallery drag released"`), out)
	assert.True(t, strings.Contains(out, `"message":"gallery settled"`), out)
	assert.True(t, strings.Contains(out, `"component":"gallery"`), out)
}
