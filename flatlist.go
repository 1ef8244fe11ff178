package stretchy

import (
	"github.com/agiangrant/stretchy/retained"
)

// FlatListProps configures a FlatList.
type FlatListProps struct {
	ScrollProps
	Data       []any
	RenderItem retained.RenderItemFunc
}

// FlatList is a list whose header slot holds a stretchy header.
type FlatList struct {
	*container
	list *retained.ListView
}

// NewFlatList builds the list, the header and the scroll binding.
func NewFlatList(loop *retained.Loop, header HeaderConfig, props FlatListProps) (*FlatList, error) {
	list := retained.NewListView(loop.Animations())
	c, err := newContainer(loop, list.ScrollView, header, props.ScrollProps)
	if err != nil {
		return nil, err
	}

	list.SetData(props.Data, props.RenderItem)
	list.SetHeader(c.header.Node())
	c.mount(props.ScrollProps)

	return &FlatList{container: c, list: list}, nil
}

// List returns the underlying list surface.
func (f *FlatList) List() *retained.ListView { return f.list }

// Node returns the list node.
func (f *FlatList) Node() *retained.Node { return f.list.Node }

// SetData replaces the items. The header stays in its slot.
func (f *FlatList) SetData(items []any, render retained.RenderItemFunc) {
	f.list.SetData(items, render)
}
