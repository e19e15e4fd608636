package mst

import "errors"

var (
	// ErrInvalidSize is returned by [NewTree] when size is zero, and by [Build]
	// when fewer than two nodes are given or the store covers fewer nodes than
	// requested.
	ErrInvalidSize = errors.New("tree needs at least one node")

	// ErrInvalidIndex is returned when a node index is outside [0, n).
	ErrInvalidIndex = errors.New("node index out of range")

	// ErrAttachmentConflict is returned by [Build] when it tries to attach a
	// node that is already in the tree. This cannot happen unless the builder
	// itself is broken, so callers should treat it as fatal rather than retry.
	ErrAttachmentConflict = errors.New("node already attached to tree")

	// ErrIncompleteTraversal is returned by [Preorder] when the walk from the
	// root does not reach every attached node, which means the tree is not the
	// single rooted component it is supposed to be.
	ErrIncompleteTraversal = errors.New("traversal did not visit every node")
)

// noParent marks a node that has not been attached yet.
const noParent = -1

// Tree is a rooted tree over node indices [0, n) with the root fixed at 0.
// It is mutated only through Insert during construction and read-only after.
// Children keep the order they were inserted in; that order is what makes the
// preorder output deterministic.
type Tree struct {
	parent   []int
	children [][]int
	edges    int
}

// NewTree creates an empty tree over size nodes. Node 0 is implicitly the root
// and counts as attached from the start.
func NewTree(size int) (*Tree, error) {
	if size == 0 {
		return nil, ErrInvalidSize
	}
	parent := make([]int, size)
	for i := range parent {
		parent[i] = noParent
	}
	return &Tree{
		parent:   parent,
		children: make([][]int, size),
	}, nil
}

// Size returns the number of nodes the tree was created for.
func (t *Tree) Size() int { return len(t.parent) }

// Insert attaches child under parent and reports whether the edge was added.
// It returns false without modifying the tree when child is already attached
// (or is the root). Children are appended in insertion order.
func (t *Tree) Insert(parent, child int) (bool, error) {
	if parent < 0 || parent >= len(t.parent) || child < 0 || child >= len(t.parent) {
		return false, ErrInvalidIndex
	}
	if t.Contains(child) {
		return false, nil
	}
	t.parent[child] = parent
	t.children[parent] = append(t.children[parent], child)
	t.edges++
	return true, nil
}

// Contains reports whether node is attached to the tree. The root always is;
// nodes outside [0, n) never are.
func (t *Tree) Contains(node int) bool {
	if node < 0 || node >= len(t.parent) {
		return false
	}
	return node == 0 || t.parent[node] != noParent
}

// Children returns the direct children of node in insertion order.
// The returned slice is owned by the tree and must not be modified.
func (t *Tree) Children(node int) ([]int, error) {
	if node < 0 || node >= len(t.children) {
		return nil, ErrInvalidIndex
	}
	return t.children[node], nil
}

// Edges returns the number of edges inserted so far. A complete tree over n
// nodes has exactly n−1.
func (t *Tree) Edges() int { return t.edges }
