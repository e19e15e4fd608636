package pairwise

import (
	"errors"
	"iter"
	"math"
)

var (
	// ErrInvalidSize is returned by [New] when the requested size is zero.
	// A table over zero items has no pairs and no meaningful shape.
	ErrInvalidSize = errors.New("table size must be at least 1")

	// ErrInvalidIndex is returned when an index is outside [0, n).
	ErrInvalidIndex = errors.New("index out of range")

	// ErrSelfPair is returned when both indices of a pair are equal.
	// The table has no diagonal; a distance from an item to itself is undefined.
	ErrSelfPair = errors.New("pair indices must differ")

	// ErrInvalidValue is returned by [Table.Set] for NaN, infinite, or negative
	// values. Rejecting them here keeps the spanning-tree builder free of
	// NaN-poisoned comparisons.
	ErrInvalidValue = errors.New("distance must be a finite non-negative number")
)

// Pair is an unordered pair of item indices with X < Y.
type Pair struct {
	X, Y int
}

// Table is a triangular-packed symmetric distance store over n item indices.
// Get and Set treat (x, y) and (y, x) as the same cell.
//
// Table is not safe for concurrent mutation of the same cell, but concurrent
// Sets to distinct cells do not require synchronization.
type Table struct {
	n     int
	cells []float64
}

// New creates a table for n items with every cell initialized to fill.
// It allocates exactly n·(n−1)/2 cells; for n == 1 the table is empty but valid.
func New(n int, fill float64) (*Table, error) {
	if n == 0 {
		return nil, ErrInvalidSize
	}
	cells := make([]float64, n*(n-1)/2)
	if fill != 0 {
		for i := range cells {
			cells[i] = fill
		}
	}
	return &Table{n: n, cells: cells}, nil
}

// N returns the number of items the table was created for.
func (t *Table) N() int { return t.n }

// Cells returns the number of stored cells, n·(n−1)/2.
func (t *Table) Cells() int { return len(t.cells) }

// index maps an unordered pair to its cell. Callers must validate first.
func (t *Table) index(x, y int) int {
	if y < x {
		x, y = y, x
	}
	// y > x >= 0
	return y*(y-1)/2 + x
}

func (t *Table) check(x, y int) error {
	if x < 0 || x >= t.n || y < 0 || y >= t.n {
		return ErrInvalidIndex
	}
	if x == y {
		return ErrSelfPair
	}
	return nil
}

// Get returns the stored value for the unordered pair (x, y).
func (t *Table) Get(x, y int) (float64, error) {
	if err := t.check(x, y); err != nil {
		return 0, err
	}
	return t.cells[t.index(x, y)], nil
}

// Set overwrites the cell for the unordered pair (x, y). The last writer wins;
// callers filling the table concurrently must ensure each cell has exactly one
// producer.
func (t *Table) Set(x, y int, value float64) error {
	if err := t.check(x, y); err != nil {
		return err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return ErrInvalidValue
	}
	t.cells[t.index(x, y)] = value
	return nil
}

// All returns an iterator over every cell exactly once, in canonical order:
// pairs sorted by the larger index, then by the smaller — (0,1), (0,2), (1,2),
// (0,3), (1,3), (2,3), … The iterator is restartable.
func (t *Table) All() iter.Seq2[Pair, float64] {
	return func(yield func(Pair, float64) bool) {
		i := 0
		for y := 1; y < t.n; y++ {
			for x := 0; x < y; x++ {
				if !yield(Pair{X: x, Y: y}, t.cells[i]) {
					return
				}
				i++
			}
		}
	}
}

// Row returns an iterator over the n−1 pairs touching node, in ascending order
// of the other index, skipping node itself.
func (t *Table) Row(node int) (iter.Seq2[Pair, float64], error) {
	if node < 0 || node >= t.n {
		return nil, ErrInvalidIndex
	}
	return func(yield func(Pair, float64) bool) {
		for other := 0; other < t.n; other++ {
			if other == node {
				continue
			}
			p := Pair{X: other, Y: node}
			if node < other {
				p = Pair{X: node, Y: other}
			}
			if !yield(p, t.cells[t.index(other, node)]) {
				return
			}
		}
	}, nil
}

// Release drops the backing storage so it can be reclaimed. The table is the
// dominant memory consumer of an ordering run; callers should release it as
// soon as the spanning tree is built. Any access after Release will panic.
func (t *Table) Release() {
	t.cells = nil
}
