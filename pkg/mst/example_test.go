package mst_test

import (
	"fmt"

	"github.com/lennoxho/img-sort/pkg/mst"
	"github.com/lennoxho/img-sort/pkg/pairwise"
)

func ExampleOrder() {
	// Four items: 0 and 2 are near each other, as are 1 and 3.
	table, _ := pairwise.New(4, 0)
	_ = table.Set(0, 1, 5)
	_ = table.Set(0, 2, 1)
	_ = table.Set(0, 3, 9)
	_ = table.Set(1, 2, 2)
	_ = table.Set(1, 3, 1)
	_ = table.Set(2, 3, 8)

	order, _ := mst.Order(4, table)
	fmt.Println("Order:", order)
	// Output:
	// Order: [0 2 1 3]
}

func ExampleBuild() {
	table, _ := pairwise.New(3, 0)
	_ = table.Set(0, 1, 2)
	_ = table.Set(0, 2, 1)
	_ = table.Set(1, 2, 3)

	tree, _ := mst.Build(3, table)
	children, _ := tree.Children(0)
	fmt.Println("Edges:", tree.Edges())
	fmt.Println("Children of root:", children)
	// Output:
	// Edges: 2
	// Children of root: [2 1]
}
