// Package preview provides a bubbletea terminal preview of a stretchy header.
//
// Keys synthesize the touches and scroll frames a host would deliver; the
// header runs on the session's virtual clock, one frame per tick.
package preview

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agiangrant/stretchy/internal/script"
)

// ScrollStep is how far one scroll key moves the surface.
const ScrollStep = 24.0

// FrameMsg advances the header by one frame.
type FrameMsg time.Time

// Model is the bubbletea model for the preview.
type Model struct {
	width, height int
	quitting      bool

	session *script.Session
	keys    KeyMap
	help    help.Model
	err     error
}

// New creates a preview model driving sess.
func New(sess *script.Session) Model {
	return Model{
		session: sess,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
}

// Session returns the driven session.
func (m Model) Session() *script.Session { return m.session }

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.frameCmd()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch t := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = t.Width, t.Height
		m.help.Width = t.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(t, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(t, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(t, m.keys.Next):
			m.err = m.swipe(1)
		case key.Matches(t, m.keys.Prev):
			m.err = m.swipe(-1)
		case key.Matches(t, m.keys.ScrollDown):
			m.err = m.scrollBy(ScrollStep)
		case key.Matches(t, m.keys.ScrollUp):
			m.err = m.scrollBy(-ScrollStep)
		case key.Matches(t, m.keys.Top):
			m.session.View().Surface().ScrollTo(0, 0, true)
		}

	case FrameMsg:
		m.session.Frames(1)
		return m, m.frameCmd()
	}

	return m, nil
}

func (m Model) frameCmd() tea.Cmd {
	return tea.Tick(m.session.Loop().FrameInterval(), func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// swipe drags across most of the header toward dir (1 pages forward, -1
// back) and releases it.
func (m Model) swipe(dir float64) error {
	w := m.session.View().Header().Composer().Width()
	if w <= 0 {
		return nil
	}
	x0 := w/2 + dir*w/4
	x1 := x0 - dir*w*0.6
	y := m.session.View().Header().Height() / 4

	steps := []script.Step{
		{Do: script.ActionDown, X: x0, Y: y},
		{Do: script.ActionMove, X: x0 - dir*10, Y: y, AfterMS: 16},
		{Do: script.ActionMove, X: x1, Y: y, AfterMS: 100},
		{Do: script.ActionUp, X: x1, Y: y, AfterMS: 16},
	}
	for _, s := range steps {
		if _, err := m.session.Apply(s); err != nil {
			return err
		}
	}
	return nil
}

func (m Model) scrollBy(dy float64) error {
	y := m.session.View().Surface().ScrollY() + dy
	_, err := m.session.Apply(script.Step{Do: script.ActionScroll, Y: y, AfterMS: 20})
	return err
}
