package stretchy

import (
	"github.com/agiangrant/stretchy/retained"
)

// ScrollView is a plain scroll container with a stretchy header as its first
// child.
type ScrollView struct {
	*container
}

// NewScrollView builds the surface, the header and the scroll binding.
// children follow the header in order.
func NewScrollView(loop *retained.Loop, header HeaderConfig, props ScrollProps, children ...*retained.Node) (*ScrollView, error) {
	surface := retained.NewScrollView(loop.Animations())
	c, err := newContainer(loop, surface, header, props)
	if err != nil {
		return nil, err
	}

	surface.AddChildren(c.header.Node())
	surface.AddChildren(children...)
	c.mount(props)

	return &ScrollView{container: c}, nil
}

// Surface returns the underlying scroll surface.
func (s *ScrollView) Surface() *retained.ScrollView { return s.surface }

// Node returns the surface node.
func (s *ScrollView) Node() *retained.Node { return s.surface.Node }
