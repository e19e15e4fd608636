// Package mst builds a minimum spanning tree over a complete pairwise-distance
// graph and linearizes it into a deterministic item order.
//
// The builder is a dense-graph Prim variant: because every pair of nodes has an
// edge, a flat O(n) scan-and-update per attachment beats a decrease-key heap in
// practice (no heap overhead, better cache locality) at the same O(n²) total
// cost. Ties resolve toward the candidate seen last in scan order; this makes
// the produced tree — and therefore the final order — reproducible even when
// distances collide.
//
// A preorder walk of the tree from node 0 yields the output permutation:
// each node appears immediately before its subtree, so items that attached to
// each other cheaply end up adjacent.
package mst
