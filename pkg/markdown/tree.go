package markdown

import (
	"fmt"
	"strings"

	"github.com/mholzen/threadtree/pkg/binarytree"
)

var sidePrefix = map[binarytree.Side]string{
	binarytree.Left:  "L",
	binarytree.Right: "R",
}

// Outline renders the tree as a nested markdown list. Links are written as
// "L: V1" and expanded; threads as "L~> V0" (or "L~> nil") and never followed.
func Outline(root binarytree.Node) string {
	if root == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("- " + Label(root))
	writeChildren(&b, root, 1)
	return b.String()
}

func writeChildren(b *strings.Builder, n binarytree.Node, indentLevel int) {
	indent := strings.Repeat("  ", indentLevel)
	for _, side := range []binarytree.Side{binarytree.Left, binarytree.Right} {
		child, tag := binarytree.Child(n, side)
		switch {
		case tag == binarytree.Thread:
			fmt.Fprintf(b, "\n%s- %s~> %s", indent, sidePrefix[side], Label(child))
		case child != nil:
			fmt.Fprintf(b, "\n%s- %s: %s", indent, sidePrefix[side], Label(child))
			writeChildren(b, child, indentLevel+1)
		}
	}
}

// Label names a node by its String method.
func Label(n binarytree.Node) string {
	if n == nil {
		return "nil"
	}
	if s, ok := n.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%p", n)
}
