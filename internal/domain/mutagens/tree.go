package mutagens

import (
	"bytes"

	m "gooze.dev/pkg/fuzzmut/internal/model"
)

const (
	openParen  = '('
	closeParen = ')'
)

// NodeID is a handle into a Tree's node arena.
type NodeID int

// NoNode is the handle of a missing node.
const NoNode NodeID = -1

type treeNode struct {
	label    []byte
	parent   NodeID
	children []NodeID
	alive    bool
}

// Tree is a rooted, ordered, multi-child tree whose nodes live in an arena.
// Parents own their children: deleting a node frees its whole subtree and
// returns the slots to a free list.
type Tree struct {
	nodes []treeNode
	free  []NodeID
	root  NodeID
	count int
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{root: NoNode}
}

// Root returns the root handle, or NoNode for an empty tree.
func (t *Tree) Root() NodeID {
	return t.root
}

// Len returns the number of live nodes.
func (t *Tree) Len() int {
	return t.count
}

// Valid reports whether id refers to a live node.
func (t *Tree) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes) && t.nodes[id].alive
}

// Label returns the label of id.
func (t *Tree) Label(id NodeID) []byte {
	return t.nodes[id].label
}

// SetLabel overwrites the label of id with a copy of label.
func (t *Tree) SetLabel(id NodeID, label []byte) {
	t.nodes[id].label = bytes.Clone(label)
}

// Parent returns the parent of id, or NoNode for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	return t.nodes[id].parent
}

// Children returns the ordered children of id. The slice must not be modified.
func (t *Tree) Children(id NodeID) []NodeID {
	return t.nodes[id].children
}

func (t *Tree) alloc(label []byte, parent NodeID) NodeID {
	node := treeNode{label: label, parent: parent, alive: true}
	t.count++

	if n := len(t.free); n > 0 {
		id := t.free[n-1]
		t.free = t.free[:n-1]
		t.nodes[id] = node

		return id
	}

	t.nodes = append(t.nodes, node)

	return NodeID(len(t.nodes) - 1)
}

// SetRoot creates the root node. The tree must be empty.
func (t *Tree) SetRoot(label []byte) (NodeID, error) {
	if t.root != NoNode {
		return NoNode, m.NewUsageError("tree already has a root")
	}

	t.root = t.alloc(bytes.Clone(label), NoNode)

	return t.root, nil
}

// AddChild appends a new node labelled label as the last child of parent.
func (t *Tree) AddChild(parent NodeID, label []byte) (NodeID, error) {
	if !t.Valid(parent) {
		return NoNode, m.NewUsageError("parent %d is not a live node", parent)
	}

	id := t.alloc(bytes.Clone(label), parent)
	t.nodes[parent].children = append(t.nodes[parent].children, id)

	return id, nil
}

// Delete frees id and its subtree and unlinks it from its parent. Deleting
// the root empties the tree.
func (t *Tree) Delete(id NodeID) error {
	if !t.Valid(id) {
		return m.NewIndexOutOfRangeError("node %d is not a live node", id)
	}

	if parent := t.nodes[id].parent; parent != NoNode {
		siblings := t.nodes[parent].children
		for i, child := range siblings {
			if child == id {
				t.nodes[parent].children = append(siblings[:i:i], siblings[i+1:]...)
				break
			}
		}
	} else {
		t.root = NoNode
	}

	t.release(id)

	return nil
}

func (t *Tree) release(id NodeID) {
	stack := []NodeID{id}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		stack = append(stack, t.nodes[current].children...)
		t.nodes[current] = treeNode{parent: NoNode}
		t.free = append(t.free, current)
		t.count--
	}
}

// PreOrder lists live nodes parent before children, children in order.
func (t *Tree) PreOrder() []NodeID {
	if t.root == NoNode {
		return nil
	}

	order := make([]NodeID, 0, t.count)
	stack := []NodeID{t.root}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, current)

		children := t.nodes[current].children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	return order
}

// SubtreeSize returns the number of nodes in the subtree rooted at id.
func (t *Tree) SubtreeSize(id NodeID) int {
	size := 1
	for _, child := range t.nodes[id].children {
		size += t.SubtreeSize(child)
	}

	return size
}

// snapshot is a detached deep copy of a subtree.
type snapshot struct {
	label    []byte
	children []snapshot
}

func (t *Tree) snapshot(id NodeID) snapshot {
	node := t.nodes[id]
	snap := snapshot{label: bytes.Clone(node.label), children: make([]snapshot, len(node.children))}

	for i, child := range node.children {
		snap.children[i] = t.snapshot(child)
	}

	return snap
}

// graft materializes snap as the last child of parent.
func (t *Tree) graft(parent NodeID, snap snapshot) NodeID {
	id := t.alloc(bytes.Clone(snap.label), parent)
	t.nodes[parent].children = append(t.nodes[parent].children, id)

	for _, child := range snap.children {
		t.graft(id, child)
	}

	return id
}

// DuplicateSubtree deep-copies the label and subtree of a non-root node and
// appends the copy as the last child of newParent.
func (t *Tree) DuplicateSubtree(id, newParent NodeID) (NodeID, error) {
	if !t.Valid(id) {
		return NoNode, m.NewIndexOutOfRangeError("node %d is not a live node", id)
	}

	if id == t.root {
		return NoNode, m.NewUsageError("cannot duplicate the root node")
	}

	if !t.Valid(newParent) {
		return NoNode, m.NewUsageError("new parent %d is not a live node", newParent)
	}

	return t.graft(newParent, t.snapshot(id)), nil
}

// replaceChild swaps the child at slot of parent for a grafted snapshot,
// freeing the old subtree, and returns the new child.
func (t *Tree) replaceChild(parent NodeID, slot int, snap snapshot) NodeID {
	old := t.nodes[parent].children[slot]
	t.release(old)

	id := t.graft(parent, snap)
	children := t.nodes[parent].children
	children[slot] = id
	t.nodes[parent].children = children[:len(children)-1]

	return id
}

// Serialize writes label + ("(" + child + ")")* in pre-order.
func (t *Tree) Serialize() []byte {
	var buf bytes.Buffer
	if t.root != NoNode {
		t.serialize(&buf, t.root)
	}

	return buf.Bytes()
}

func (t *Tree) serialize(buf *bytes.Buffer, id NodeID) {
	node := t.nodes[id]
	buf.Write(node.label)

	for _, child := range node.children {
		buf.WriteByte(openParen)
		t.serialize(buf, child)
		buf.WriteByte(closeParen)
	}
}

// ParseTree builds a tree from Tree := Label Child*, Child := "(" Tree ")".
// Any syntax violation is an unexpected error; there is no partial parse.
func ParseTree(data []byte) (*Tree, error) {
	if len(data) == 0 {
		return nil, m.NewUnexpectedError("empty tree input")
	}

	tree := NewTree()

	var (
		stack []NodeID
		label []byte
	)

	for pos, c := range data {
		switch c {
		case openParen:
			id, err := tree.open(stack, label, pos)
			if err != nil {
				return nil, err
			}

			stack = append(stack, id)
			label = label[:0]
		case closeParen:
			if len(stack) == 0 {
				return nil, m.NewUnexpectedError("unmatched ')' at offset %d", pos)
			}

			if len(label) > 0 {
				if _, err := tree.AddChild(stack[len(stack)-1], label); err != nil {
					return nil, err
				}

				label = label[:0]
			}

			stack = stack[:len(stack)-1]
		default:
			label = append(label, c)
		}
	}

	if len(stack) > 0 {
		return nil, m.NewUnexpectedError("%d unmatched '('", len(stack))
	}

	if len(label) > 0 {
		if tree.root != NoNode {
			return nil, m.NewUnexpectedError("trailing label %q after tree", label)
		}

		if _, err := tree.SetRoot(label); err != nil {
			return nil, err
		}
	}

	return tree, nil
}

// open resolves the node pushed by an opening parenthesis. A pending label
// becomes a new node under the stack top (or the root); an empty label
// reopens a parent so A(B)(C) attaches C to A.
func (t *Tree) open(stack []NodeID, label []byte, pos int) (NodeID, error) {
	if len(label) > 0 {
		switch {
		case t.root == NoNode:
			return t.SetRoot(label)
		case len(stack) == 0:
			return t.AddChild(t.root, label)
		default:
			return t.AddChild(stack[len(stack)-1], label)
		}
	}

	if len(stack) == 0 {
		if t.root == NoNode {
			return NoNode, m.NewUnexpectedError("'(' at offset %d has no node to attach to", pos)
		}

		return t.root, nil
	}

	children := t.nodes[stack[len(stack)-1]].children
	if len(children) == 0 {
		return NoNode, m.NewUnexpectedError("'(' at offset %d has no prior sibling", pos)
	}

	return children[len(children)-1], nil
}
