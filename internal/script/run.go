package script

import (
	"context"
	"fmt"
	"time"

	"github.com/agiangrant/stretchy"
	"github.com/agiangrant/stretchy/internal/config"
	"github.com/agiangrant/stretchy/internal/logging"
	"github.com/agiangrant/stretchy/retained"
)

// Epoch is the virtual clock origin of every replay.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Record is the observable state after one step.
type Record struct {
	Step    int
	Do      string
	At      time.Duration // Virtual time since the start of the replay
	Claimed bool          // The gallery held the touch after this step
	State   stretchy.DragState
	Index   int // Committed gallery index
	Pager   string
	Updates int // Node updates handed to the renderer so far
	Frame   stretchy.HeaderFrame
}

// Session is a scroll view on a virtual clock that scripted steps drive.
type Session struct {
	loop    *retained.Loop
	view    *stretchy.ScrollView
	now     time.Time
	changes []int
	updates int
}

// NewSession builds a ScrollView for s and lays it out.
func NewSession(s *Script, log *logging.Logger) (*Session, error) {
	headerCfg, err := stretchy.HeaderConfigFromFile(s.Header)
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	headerCfg.Logger = log

	sess := &Session{now: Epoch}
	headerCfg.OnHeaderChange = func(index int) {
		sess.changes = append(sess.changes, index)
	}

	sess.loop = retained.NewLoop(retained.DefaultLoopConfig())
	sess.loop.SetNow(Epoch)

	body := retained.Container().SetSize(s.Width, s.Viewport*2)
	sess.view, err = stretchy.NewScrollView(sess.loop, headerCfg, ScrollProps(s.Scroll), body)
	if err != nil {
		return nil, err
	}
	sess.view.Layout(s.Width, s.Viewport)

	sess.loop.Tree().SetRoot(sess.view.Node())
	sess.loop.OnFrame(func(_ time.Time, updates []retained.Update) {
		sess.updates += len(updates)
	})
	return sess, nil
}

// ScrollProps converts a scroll configuration section.
func ScrollProps(f config.ScrollFile) stretchy.ScrollProps {
	return stretchy.ScrollProps{
		ScrollEventThrottle: time.Duration(f.EventThrottleMS) * time.Millisecond,
		ScrollEnabled:       f.Enabled,
		ScrollTo: retained.ScrollToConfig{
			Duration: time.Duration(f.ScrollToMS) * time.Millisecond,
			Easing:   retained.EasingByName(f.Easing),
		},
	}
}

// View returns the driven scroll view.
func (s *Session) View() *stretchy.ScrollView { return s.view }

// Loop returns the session's frame loop.
func (s *Session) Loop() *retained.Loop { return s.loop }

// Now returns the virtual time.
func (s *Session) Now() time.Time { return s.now }

// Updates returns how many node updates frames have collected.
func (s *Session) Updates() int { return s.updates }

// Changes returns every index the header reported, in order.
func (s *Session) Changes() []int {
	return append([]int(nil), s.changes...)
}

// Apply performs one step and reports whether the gallery claimed it.
func (s *Session) Apply(step Step) (bool, error) {
	s.now = s.now.Add(time.Duration(step.AfterMS) * time.Millisecond)

	switch step.Do {
	case ActionDown, ActionMove, ActionUp, ActionCancel:
		phase, ok := retained.ParseTouchPhase(step.Do)
		if !ok {
			return false, fmt.Errorf("unknown touch phase %q", step.Do)
		}
		return s.loop.DispatchTouch(s.view, retained.NewTouchEvent(phase, step.X, step.Y, s.now)), nil
	case ActionScroll:
		s.view.HandleScroll(step.Y, s.now)
	case ActionScrollTo:
		s.loop.SetNow(s.now)
		s.view.Surface().ScrollTo(0, step.Y, step.Animated)
	case ActionFrames:
		s.Frames(step.Frames)
	case ActionSettle:
		s.Settle()
	case ActionGoTo:
		s.view.Header().GoTo(step.Index, step.Animated)
	default:
		return false, fmt.Errorf("unknown action %q", step.Do)
	}
	return s.view.IsResponder(), nil
}

// Frames advances the clock by n frame intervals, stepping the loop each time.
func (s *Session) Frames(n int) {
	for i := 0; i < n; i++ {
		s.now = s.now.Add(s.loop.FrameInterval())
		s.loop.Step(s.now)
	}
}

// Settle steps frames until no animation is running.
func (s *Session) Settle() {
	s.now = s.loop.Settle(s.now, maxSettleFrames)
}

const maxSettleFrames = 600

// Snapshot records the current state.
func (s *Session) Snapshot(i int, do string) Record {
	h := s.view.Header()
	rec := Record{
		Step:    i,
		Do:      do,
		At:      s.now.Sub(Epoch),
		Claimed: s.view.IsResponder(),
		State:   h.Gallery().State(),
		Index:   h.Gallery().Index(),
		Updates: s.updates,
		Frame:   h.Frame(),
	}
	if p := h.Pager(); p != nil {
		rec.Pager = p.Text()
	}
	return rec
}

// Run replays every step of s and returns one record per step. The context
// is checked between steps.
func Run(ctx context.Context, s *Script, log *logging.Logger) ([]Record, error) {
	sess, err := NewSession(s, log)
	if err != nil {
		return nil, err
	}
	defer sess.view.Close()

	records := make([]Record, 0, len(s.Steps))
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return records, err
		}
		if _, err := sess.Apply(step); err != nil {
			return records, fmt.Errorf("step %d: %w", i+1, err)
		}
		records = append(records, sess.Snapshot(i+1, step.Do))
	}
	return records, nil
}
