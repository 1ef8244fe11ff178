package retained

import (
	"sync"
	"sync/atomic"
)

// NodeID uniquely identifies a node in the tree.
// IDs are stable across updates and used for delta tracking.
type NodeID uint64

var nextNodeID atomic.Uint64

func newNodeID() NodeID {
	return NodeID(nextNodeID.Add(1))
}

// NodeKind identifies the type of node for rendering.
type NodeKind string

const (
	KindContainer   NodeKind = "container"
	KindHStack      NodeKind = "hstack"
	KindImage       NodeKind = "image"
	KindText        NodeKind = "text"
	KindScrollView  NodeKind = "scroll_view"
	KindList        NodeKind = "list"
	KindSectionList NodeKind = "section_list"
)

// Overflow controls whether children may draw outside a node's bounds.
type Overflow string

const (
	OverflowVisible Overflow = "visible"
	OverflowHidden  Overflow = "hidden"
)

// Dirty flags for delta tracking
const (
	DirtyOpacity uint64 = 1 << iota
	DirtyTransform
	DirtyOverflow
	DirtySize
	DirtyBackground
	DirtyContent
	DirtyVisible
	DirtyChildren
	DirtyScroll
)

// Node is a retained render element. The engine writes animated properties
// onto nodes; the host reads them when drawing.
type Node struct {
	mu sync.RWMutex

	id       NodeID
	kind     NodeKind
	parent   *Node
	children []*Node

	width, height float64

	// Visual properties
	opacity         float64
	scale           float64
	translateX      float64
	translateY      float64
	overflow        Overflow
	backgroundColor uint32 // RGBA, 0 is transparent
	visible         bool

	// Content
	text        string
	imageSource string

	// Custom data for application use
	data any

	dirtyMask uint64

	// Reference to tree for update dispatch
	tree *Tree
}

// NewNode creates a node with default visual properties.
func NewNode(kind NodeKind) *Node {
	return &Node{
		id:       newNodeID(),
		kind:     kind,
		opacity:  1,
		scale:    1,
		overflow: OverflowVisible,
		visible:  true,
	}
}

// Container creates a container node with children.
func Container(children ...*Node) *Node {
	n := NewNode(KindContainer)
	n.AddChildren(children...)
	return n
}

// HStack creates a horizontal stack with children.
func HStack(children ...*Node) *Node {
	n := NewNode(KindHStack)
	n.AddChildren(children...)
	return n
}

// Image creates an image node for the given source.
func Image(source string) *Node {
	n := NewNode(KindImage)
	n.imageSource = source
	return n
}

// Text creates a text node.
func Text(text string) *Node {
	n := NewNode(KindText)
	n.text = text
	return n
}

// ID returns the node's identifier.
func (n *Node) ID() NodeID { return n.id }

// Kind returns the node's kind.
func (n *Node) Kind() NodeKind { return n.kind }

// markDirty records changed properties and notifies the tree. Caller holds n.mu.
func (n *Node) markDirty(mask uint64) {
	n.dirtyMask |= mask
	if n.tree != nil {
		n.tree.notifyUpdate(n, mask)
	}
}

// DirtyMask returns the accumulated dirty flags.
func (n *Node) DirtyMask() uint64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.dirtyMask
}

// ClearDirty resets the dirty flags after the host has consumed them.
func (n *Node) ClearDirty() {
	n.mu.Lock()
	n.dirtyMask = 0
	n.mu.Unlock()
}

// ============================================================================
// Hierarchy
// ============================================================================

// AddChildren appends children and attaches them to this node's tree.
func (n *Node) AddChildren(children ...*Node) *Node {
	n.mu.Lock()
	tree := n.tree
	for _, c := range children {
		if c == nil {
			continue
		}
		c.mu.Lock()
		c.parent = n
		c.mu.Unlock()
		n.children = append(n.children, c)
	}
	n.markDirty(DirtyChildren)
	n.mu.Unlock()

	if tree != nil {
		for _, c := range children {
			if c != nil {
				tree.attach(c)
			}
		}
	}
	return n
}

// PrependChild inserts child before all existing children.
func (n *Node) PrependChild(child *Node) *Node {
	if child == nil {
		return n
	}
	n.mu.Lock()
	tree := n.tree
	child.mu.Lock()
	child.parent = n
	child.mu.Unlock()
	n.children = append([]*Node{child}, n.children...)
	n.markDirty(DirtyChildren)
	n.mu.Unlock()

	if tree != nil {
		tree.attach(child)
	}
	return n
}

// RemoveChild detaches child if present.
func (n *Node) RemoveChild(child *Node) {
	n.mu.Lock()
	tree := n.tree
	removed := false
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			removed = true
			break
		}
	}
	if removed {
		n.markDirty(DirtyChildren)
	}
	n.mu.Unlock()

	if removed {
		child.mu.Lock()
		child.parent = nil
		child.mu.Unlock()
		if tree != nil {
			tree.detach(child)
		}
	}
}

// Children returns a copy of the children.
func (n *Node) Children() []*Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.parent
}

// ============================================================================
// Properties
// ============================================================================

// SetSize sets width and height.
func (n *Node) SetSize(width, height float64) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.width != width || n.height != height {
		n.width, n.height = width, height
		n.markDirty(DirtySize)
	}
	return n
}

// Size returns width and height.
func (n *Node) Size() (width, height float64) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.width, n.height
}

// SetOpacity sets the opacity (0.0 to 1.0).
func (n *Node) SetOpacity(opacity float64) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.opacity != opacity {
		n.opacity = opacity
		n.markDirty(DirtyOpacity)
	}
	return n
}

// Opacity returns the opacity.
func (n *Node) Opacity() float64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.opacity
}

// SetScale sets the uniform scale around the node's center.
func (n *Node) SetScale(scale float64) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.scale != scale {
		n.scale = scale
		n.markDirty(DirtyTransform)
	}
	return n
}

// Scale returns the uniform scale.
func (n *Node) Scale() float64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.scale
}

// SetTranslate sets the translation applied after layout.
func (n *Node) SetTranslate(x, y float64) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.translateX != x || n.translateY != y {
		n.translateX, n.translateY = x, y
		n.markDirty(DirtyTransform)
	}
	return n
}

// SetTranslateX sets only the horizontal translation.
func (n *Node) SetTranslateX(x float64) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.translateX != x {
		n.translateX = x
		n.markDirty(DirtyTransform)
	}
	return n
}

// SetTranslateY sets only the vertical translation.
func (n *Node) SetTranslateY(y float64) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.translateY != y {
		n.translateY = y
		n.markDirty(DirtyTransform)
	}
	return n
}

// Translate returns the translation.
func (n *Node) Translate() (x, y float64) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.translateX, n.translateY
}

// SetOverflow sets the overflow mode.
func (n *Node) SetOverflow(overflow Overflow) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.overflow != overflow {
		n.overflow = overflow
		n.markDirty(DirtyOverflow)
	}
	return n
}

// Overflow returns the overflow mode.
func (n *Node) Overflow() Overflow {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.overflow
}

// SetBackgroundColor sets the background color (RGBA).
func (n *Node) SetBackgroundColor(color uint32) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.backgroundColor != color {
		n.backgroundColor = color
		n.markDirty(DirtyBackground)
	}
	return n
}

// BackgroundColor returns the background color (RGBA).
func (n *Node) BackgroundColor() uint32 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.backgroundColor
}

// SetVisible sets whether the node is rendered.
func (n *Node) SetVisible(visible bool) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.visible != visible {
		n.visible = visible
		n.markDirty(DirtyVisible)
	}
	return n
}

// Visible reports whether the node is rendered.
func (n *Node) Visible() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.visible
}

// SetText sets the text content.
func (n *Node) SetText(text string) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.text != text {
		n.text = text
		n.markDirty(DirtyContent)
	}
	return n
}

// Text returns the text content.
func (n *Node) Text() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.text
}

// ImageSource returns the image source path or URL.
func (n *Node) ImageSource() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.imageSource
}

// SetData sets custom application data.
func (n *Node) SetData(data any) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.data = data
	return n
}

// Data returns custom application data.
func (n *Node) Data() any {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.data
}
