package mst

import (
	"bytes"
	"fmt"
)

// ToDOT returns a Graphviz DOT representation of the tree, rooted at node 0.
//
// If labels[i] exists, node i is rendered with that label; otherwise its index
// is used. The labels slice is not modified. The output can be fed to the dot
// tool or rendered programmatically.
func ToDOT(t *Tree, labels []string) string {
	var buf bytes.Buffer
	buf.WriteString("digraph mst {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, shape=box, style=\"filled,rounded\", fillcolor=white];\n")
	buf.WriteString("  edge [arrowhead=none];\n\n")

	for node := 0; node < t.Size(); node++ {
		fmt.Fprintf(&buf, "  n%d [label=%q];\n", node, nodeLabel(node, labels))
	}
	buf.WriteString("\n")
	writeDOTEdges(&buf, t, 0)

	buf.WriteString("}\n")
	return buf.String()
}

func writeDOTEdges(buf *bytes.Buffer, t *Tree, node int) {
	children, err := t.Children(node)
	if err != nil {
		return
	}
	for _, child := range children {
		fmt.Fprintf(buf, "  n%d -> n%d;\n", node, child)
		writeDOTEdges(buf, t, child)
	}
}

func nodeLabel(node int, labels []string) string {
	if node < len(labels) && labels[node] != "" {
		return labels[node]
	}
	return fmt.Sprintf("%d", node)
}
