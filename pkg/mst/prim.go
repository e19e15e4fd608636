package mst

import (
	"fmt"

	"github.com/lennoxho/img-sort/pkg/pairwise"
)

// candidate tracks the best known attachment point for a node that is not yet
// in the tree. It is discarded once the node attaches.
type candidate struct {
	source int     // best tree-side endpoint found so far
	node   int     // the unattached node itself
	cost   float64 // distance from source to node
}

// Build computes a minimum spanning tree over the complete graph described by
// store, rooted at node 0. It requires n >= 2 and a store covering at least n
// items whose cells have all been written.
//
// The builder keeps one candidate per unattached node and, for each of the n−1
// attachments, does a flat scan for the cheapest candidate followed by a
// relaxation pass against the newly attached node. Both the scan and the
// relaxation resolve ties toward the later arrival (<=), and removal from the
// candidate set is swap-with-last; together these fix the exact tree produced
// for tied inputs, so identical input always yields an identical order.
func Build(n int, store *pairwise.Table) (*Tree, error) {
	if n < 2 {
		return nil, ErrInvalidSize
	}
	if store.N() < n {
		return nil, fmt.Errorf("store covers %d items, need %d: %w", store.N(), n, ErrInvalidSize)
	}

	tree, err := NewTree(n)
	if err != nil {
		return nil, err
	}

	// Seed every candidate from the root's row: node 0 is the only tree
	// member, so its distances are the best (and only) attachment costs known.
	row, err := store.Row(0)
	if err != nil {
		return nil, err
	}
	active := make([]candidate, 0, n-1)
	for pair, cost := range row {
		other := pair.Y
		if other == 0 {
			other = pair.X
		}
		if other >= n {
			break
		}
		active = append(active, candidate{source: 0, node: other, cost: cost})
	}

	for len(active) > 0 {
		// Flat scan for the cheapest candidate; later entries win ties.
		best := 0
		for i := 1; i < len(active); i++ {
			if active[i].cost <= active[best].cost {
				best = i
			}
		}
		next := active[best]
		active[best] = active[len(active)-1]
		active = active[:len(active)-1]

		ok, err := tree.Insert(next.source, next.node)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAttachmentConflict
		}

		// Relax the frontier against the node that just attached.
		for i := range active {
			cost, err := store.Get(next.node, active[i].node)
			if err != nil {
				return nil, err
			}
			if cost <= active[i].cost {
				active[i].source = next.node
				active[i].cost = cost
			}
		}
	}

	return tree, nil
}
