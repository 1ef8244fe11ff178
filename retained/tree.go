package retained

import (
	"sync"
	"sync/atomic"
)

// UpdateType identifies what kind of update occurred.
type UpdateType uint8

const (
	UpdateProperty UpdateType = iota // Node property changed
	UpdateAdd                        // Node added to tree
	UpdateRemove                     // Node removed from tree
)

// Update represents a single node state change.
// These are batched and handed to the host renderer each frame.
type Update struct {
	Type      UpdateType
	NodeID    NodeID
	DirtyMask uint64 // Which properties changed (for UpdateProperty)
	Node      *Node  // Reference for full state access
}

// Tree manages the node hierarchy and collects per-frame updates.
type Tree struct {
	mu   sync.RWMutex
	root *Node

	// Node registry for ID lookups
	nodes sync.Map // map[NodeID]*Node

	// Frame tracking
	frameNumber atomic.Uint64

	// Pending updates collector
	pendingMu sync.Mutex
	pending   []Update

	// Dirty tracking - set immediately on any update, cleared on CollectUpdates
	hasDirty atomic.Bool
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// SetRoot replaces the root node.
func (t *Tree) SetRoot(root *Node) {
	t.mu.Lock()
	old := t.root
	t.root = root
	t.mu.Unlock()

	if old != nil {
		t.detach(old)
	}
	if root != nil {
		t.attach(root)
	}
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.root
}

// Find looks up a node by ID.
func (t *Tree) Find(id NodeID) *Node {
	if n, ok := t.nodes.Load(id); ok {
		return n.(*Node)
	}
	return nil
}

// Frame returns the current frame number.
func (t *Tree) Frame() uint64 {
	return t.frameNumber.Load()
}

// HasDirty reports whether any updates are pending.
func (t *Tree) HasDirty() bool {
	return t.hasDirty.Load()
}

// CollectUpdates returns and clears pending updates, advancing the frame.
func (t *Tree) CollectUpdates() []Update {
	t.pendingMu.Lock()
	updates := t.pending
	t.pending = nil
	t.hasDirty.Store(false)
	t.pendingMu.Unlock()

	t.frameNumber.Add(1)
	return updates
}

// attach registers n and its subtree.
func (t *Tree) attach(n *Node) {
	n.mu.Lock()
	n.tree = t
	children := make([]*Node, len(n.children))
	copy(children, n.children)
	n.mu.Unlock()

	t.nodes.Store(n.id, n)
	t.push(Update{Type: UpdateAdd, NodeID: n.id, Node: n})

	for _, c := range children {
		t.attach(c)
	}
}

// detach unregisters n and its subtree.
func (t *Tree) detach(n *Node) {
	n.mu.Lock()
	n.tree = nil
	children := make([]*Node, len(n.children))
	copy(children, n.children)
	n.mu.Unlock()

	t.nodes.Delete(n.id)
	t.push(Update{Type: UpdateRemove, NodeID: n.id, Node: n})

	for _, c := range children {
		t.detach(c)
	}
}

// notifyUpdate is called by nodes (holding their own lock) when properties change.
func (t *Tree) notifyUpdate(n *Node, mask uint64) {
	t.push(Update{Type: UpdateProperty, NodeID: n.id, DirtyMask: mask, Node: n})
}

func (t *Tree) push(u Update) {
	t.pendingMu.Lock()
	t.pending = append(t.pending, u)
	t.pendingMu.Unlock()
	t.hasDirty.Store(true)
}
