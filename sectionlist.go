package stretchy

import (
	"github.com/agiangrant/stretchy/retained"
)

// SectionListProps configures a SectionList.
type SectionListProps struct {
	ScrollProps
	Sections            []retained.Section
	RenderItem          retained.RenderItemFunc
	RenderSectionHeader retained.RenderSectionHeaderFunc
}

// SectionList is a sectioned list whose header slot holds a stretchy header.
type SectionList struct {
	*container
	list *retained.SectionListView
}

// NewSectionList builds the list, the header and the scroll binding.
func NewSectionList(loop *retained.Loop, header HeaderConfig, props SectionListProps) (*SectionList, error) {
	list := retained.NewSectionListView(loop.Animations())
	c, err := newContainer(loop, list.ScrollView, header, props.ScrollProps)
	if err != nil {
		return nil, err
	}

	list.SetSections(props.Sections, props.RenderItem, props.RenderSectionHeader)
	list.SetHeader(c.header.Node())
	c.mount(props.ScrollProps)

	return &SectionList{container: c, list: list}, nil
}

// List returns the underlying section list surface.
func (s *SectionList) List() *retained.SectionListView { return s.list }

// Node returns the list node.
func (s *SectionList) Node() *retained.Node { return s.list.Node }

// SetSections replaces the sections. The header stays in its slot.
func (s *SectionList) SetSections(sections []retained.Section, renderItem retained.RenderItemFunc, renderHeader retained.RenderSectionHeaderFunc) {
	s.list.SetSections(sections, renderItem, renderHeader)
}
