// Package pairwise provides a compact symmetric store for pairwise distances.
//
// A Table holds one value per unordered pair of indices in [0, n), packed into
// a flat triangular array of n·(n−1)/2 cells. Storing each pair once halves
// the memory of a dense n×n matrix and avoids the diagonal entirely, which
// matters because the pairwise stage dominates memory for large collections.
//
// The typical lifecycle is: allocate, fill every cell exactly once (safe to do
// from concurrent workers as long as each worker owns disjoint cells), read
// many times while building a spanning tree, then Release the backing storage
// before the traversal stage runs.
package pairwise
