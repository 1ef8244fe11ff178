package retained

import "sync"

// ============================================================================
// List Views
// ============================================================================
//
// ListView and SectionListView stand in for the host's list components. They
// build every row eagerly; windowing is the host renderer's business.

// RenderItemFunc builds the node for one list item.
type RenderItemFunc func(item any, index int) *Node

// ListView is a scrollable list with an optional header slot.
type ListView struct {
	*ScrollView

	mu         sync.Mutex
	header     *Node
	items      []any
	renderItem RenderItemFunc
}

// NewListView creates an empty list surface.
func NewListView(registry *AnimationRegistry) *ListView {
	return &ListView{ScrollView: newScrollView(NewNode(KindList), registry)}
}

// SetHeader installs n in the header slot, replacing any previous header.
func (l *ListView) SetHeader(n *Node) *ListView {
	l.mu.Lock()
	l.header = n
	l.mu.Unlock()
	l.rebuild()
	return l
}

// Header returns the node in the header slot.
func (l *ListView) Header() *Node {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.header
}

// SetData replaces the items and re-renders.
func (l *ListView) SetData(items []any, render RenderItemFunc) *ListView {
	l.mu.Lock()
	l.items = append([]any(nil), items...)
	l.renderItem = render
	l.mu.Unlock()
	l.rebuild()
	return l
}

// Len returns the number of items.
func (l *ListView) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

func (l *ListView) rebuild() {
	l.mu.Lock()
	header := l.header
	items := l.items
	render := l.renderItem
	l.mu.Unlock()

	rows := make([]*Node, 0, len(items)+1)
	if header != nil {
		rows = append(rows, header)
	}
	if render != nil {
		for i, item := range items {
			if row := render(item, i); row != nil {
				rows = append(rows, row)
			}
		}
	}
	replaceChildren(l.Node, rows)
}

// Section is one group of a SectionListView.
type Section struct {
	Title string
	Data  []any
}

// RenderSectionHeaderFunc builds the node for a section header.
type RenderSectionHeaderFunc func(section Section, index int) *Node

// SectionListView is a scrollable list of sections with an optional header slot.
type SectionListView struct {
	*ScrollView

	mu                  sync.Mutex
	header              *Node
	sections            []Section
	renderItem          RenderItemFunc
	renderSectionHeader RenderSectionHeaderFunc
}

// NewSectionListView creates an empty sectioned list surface.
func NewSectionListView(registry *AnimationRegistry) *SectionListView {
	return &SectionListView{ScrollView: newScrollView(NewNode(KindSectionList), registry)}
}

// SetHeader installs n in the header slot.
func (l *SectionListView) SetHeader(n *Node) *SectionListView {
	l.mu.Lock()
	l.header = n
	l.mu.Unlock()
	l.rebuild()
	return l
}

// Header returns the node in the header slot.
func (l *SectionListView) Header() *Node {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.header
}

// SetSections replaces the sections and re-renders.
func (l *SectionListView) SetSections(sections []Section, renderItem RenderItemFunc, renderHeader RenderSectionHeaderFunc) *SectionListView {
	l.mu.Lock()
	l.sections = append([]Section(nil), sections...)
	l.renderItem = renderItem
	l.renderSectionHeader = renderHeader
	l.mu.Unlock()
	l.rebuild()
	return l
}

// Sections returns a copy of the sections.
func (l *SectionListView) Sections() []Section {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Section(nil), l.sections...)
}

func (l *SectionListView) rebuild() {
	l.mu.Lock()
	header := l.header
	sections := l.sections
	renderItem := l.renderItem
	renderHeader := l.renderSectionHeader
	l.mu.Unlock()

	var rows []*Node
	if header != nil {
		rows = append(rows, header)
	}
	for si, section := range sections {
		if renderHeader != nil {
			if n := renderHeader(section, si); n != nil {
				rows = append(rows, n)
			}
		}
		if renderItem == nil {
			continue
		}
		for i, item := range section.Data {
			if n := renderItem(item, i); n != nil {
				rows = append(rows, n)
			}
		}
	}
	replaceChildren(l.Node, rows)
}

// replaceChildren swaps n's children for rows.
func replaceChildren(n *Node, rows []*Node) {
	for _, c := range n.Children() {
		n.RemoveChild(c)
	}
	n.AddChildren(rows...)
}
