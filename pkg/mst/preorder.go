package mst

import (
	"github.com/lennoxho/img-sort/pkg/pairwise"
)

// Preorder walks the tree depth-first from the root and returns the visit
// order: each node appears exactly once, immediately before its descendants,
// with sibling subtrees in child-insertion order.
//
// The walk uses an explicit stack; children are pushed in reverse so popping
// restores insertion order. If the walk does not reach Edges()+1 nodes the
// tree is not a single rooted component and ErrIncompleteTraversal is
// returned. Preorder holds no state between calls: the same tree always
// produces the same sequence.
func Preorder(t *Tree) ([]int, error) {
	order := make([]int, 0, t.Edges()+1)
	stack := make([]int, 0, t.Edges()+1)
	stack = append(stack, 0)

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, node)

		children, err := t.Children(node)
		if err != nil {
			return nil, err
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	if len(order) != t.Edges()+1 {
		return nil, ErrIncompleteTraversal
	}
	return order, nil
}

// Order is the composed entry point: it builds the spanning tree for n items
// from store and returns the preorder permutation of [0, n).
//
// Order does not release the store; callers that care about peak memory should
// call Build and Preorder separately and release the store in between.
func Order(n int, store *pairwise.Table) ([]int, error) {
	tree, err := Build(n, store)
	if err != nil {
		return nil, err
	}
	return Preorder(tree)
}
