package mst

import (
	"errors"
	"testing"
)

func TestNewTreeZeroSize(t *testing.T) {
	if _, err := NewTree(0); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("NewTree(0) error = %v, want ErrInvalidSize", err)
	}
}

func TestTreeRootIsAttached(t *testing.T) {
	tree, err := NewTree(3)
	if err != nil {
		t.Fatalf("NewTree error: %v", err)
	}
	if !tree.Contains(0) {
		t.Error("root should be attached in an empty tree")
	}
	if tree.Contains(1) || tree.Contains(2) {
		t.Error("non-root nodes should not be attached yet")
	}
	if tree.Edges() != 0 {
		t.Errorf("Edges() = %d, want 0", tree.Edges())
	}
}

func TestTreeInsert(t *testing.T) {
	tree, err := NewTree(4)
	if err != nil {
		t.Fatalf("NewTree error: %v", err)
	}

	ok, err := tree.Insert(0, 2)
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if !ok {
		t.Fatal("first Insert should attach the child")
	}
	if !tree.Contains(2) {
		t.Error("child should be attached after Insert")
	}
	if tree.Edges() != 1 {
		t.Errorf("Edges() = %d, want 1", tree.Edges())
	}

	// Re-inserting an attached child is a no-op, not an error.
	ok, err = tree.Insert(1, 2)
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if ok {
		t.Error("Insert of an attached child should report false")
	}
	if tree.Edges() != 1 {
		t.Errorf("Edges() after no-op = %d, want 1", tree.Edges())
	}

	// The root can never be re-attached.
	ok, err = tree.Insert(2, 0)
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if ok {
		t.Error("Insert of the root should report false")
	}
}

func TestTreeContainsOutOfRange(t *testing.T) {
	tree, err := NewTree(3)
	if err != nil {
		t.Fatalf("NewTree error: %v", err)
	}
	// Out-of-range nodes are simply not attached, not a panic.
	for _, node := range []int{-1, 3, 100} {
		if tree.Contains(node) {
			t.Errorf("Contains(%d) = true, want false", node)
		}
	}
}

func TestTreeInsertInvalidIndex(t *testing.T) {
	tree, err := NewTree(3)
	if err != nil {
		t.Fatalf("NewTree error: %v", err)
	}
	if _, err := tree.Insert(0, 3); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("Insert(0,3) error = %v, want ErrInvalidIndex", err)
	}
	if _, err := tree.Insert(-1, 1); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("Insert(-1,1) error = %v, want ErrInvalidIndex", err)
	}
}

func TestTreeChildrenOrder(t *testing.T) {
	tree, err := NewTree(5)
	if err != nil {
		t.Fatalf("NewTree error: %v", err)
	}
	for _, child := range []int{3, 1, 4} {
		if _, err := tree.Insert(0, child); err != nil {
			t.Fatalf("Insert error: %v", err)
		}
	}

	children, err := tree.Children(0)
	if err != nil {
		t.Fatalf("Children error: %v", err)
	}
	want := []int{3, 1, 4}
	if len(children) != len(want) {
		t.Fatalf("Children(0) = %v, want %v", children, want)
	}
	for i := range want {
		if children[i] != want[i] {
			t.Fatalf("Children(0) = %v, want %v", children, want)
		}
	}

	if _, err := tree.Children(5); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("Children(5) error = %v, want ErrInvalidIndex", err)
	}
}

func TestPreorderSingleNode(t *testing.T) {
	tree, err := NewTree(1)
	if err != nil {
		t.Fatalf("NewTree error: %v", err)
	}
	order, err := Preorder(tree)
	if err != nil {
		t.Fatalf("Preorder error: %v", err)
	}
	if len(order) != 1 || order[0] != 0 {
		t.Errorf("Preorder = %v, want [0]", order)
	}
}

func TestPreorderSiblingOrder(t *testing.T) {
	// 0 -> {2, 1}, 2 -> {3}. Siblings must come out in insertion order and
	// each subtree must finish before the next sibling starts.
	tree, err := NewTree(4)
	if err != nil {
		t.Fatalf("NewTree error: %v", err)
	}
	for _, e := range [][2]int{{0, 2}, {2, 3}, {0, 1}} {
		if _, err := tree.Insert(e[0], e[1]); err != nil {
			t.Fatalf("Insert error: %v", err)
		}
	}

	order, err := Preorder(tree)
	if err != nil {
		t.Fatalf("Preorder error: %v", err)
	}
	want := []int{0, 2, 3, 1}
	if len(order) != len(want) {
		t.Fatalf("Preorder = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("Preorder = %v, want %v", order, want)
		}
	}

	// Deterministic across calls.
	again, err := Preorder(tree)
	if err != nil {
		t.Fatalf("Preorder error: %v", err)
	}
	for i := range want {
		if again[i] != order[i] {
			t.Fatal("Preorder should be identical across calls")
		}
	}
}

func TestPreorderDisconnected(t *testing.T) {
	// Node 1 hangs off node 2, but 2 was never attached, so the walk from the
	// root cannot reach the edge.
	tree, err := NewTree(3)
	if err != nil {
		t.Fatalf("NewTree error: %v", err)
	}
	if _, err := tree.Insert(2, 1); err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if _, err := Preorder(tree); !errors.Is(err, ErrIncompleteTraversal) {
		t.Errorf("Preorder error = %v, want ErrIncompleteTraversal", err)
	}
}
