package driver

import (
	"encoding/json"
	"fmt"
	"io"
)

// Node is a parse-tree node. A leaf holds a shifted token and has no
// production; an inner node holds the production its reduce applied.
type Node struct {
	Symbol     string
	Production string
	Children   []*Node
}

// MarshalJSON keeps the serialized shape stable: production is null for
// leaves and children is always an array, even when empty.
func (n *Node) MarshalJSON() ([]byte, error) {
	var prod *string
	if n.Production != "" {
		prod = &n.Production
	}
	children := n.Children
	if children == nil {
		children = []*Node{}
	}
	return json.Marshal(&struct {
		Symbol     string  `json:"symbol"`
		Production *string `json:"production"`
		Children   []*Node `json:"children"`
	}{
		Symbol:     n.Symbol,
		Production: prod,
		Children:   children,
	})
}

// PrintTree prints a parse tree in a ruled-line format like:
//
//	E
//	├─ E
//	│  └─ T
//	│     └─ id
//	├─ +
//	└─ T
//	   └─ id
func PrintTree(w io.Writer, node *Node) {
	printTree(w, node, "", "")
}

func printTree(w io.Writer, node *Node, ruledLine string, childRuledLinePrefix string) {
	if node == nil {
		return
	}

	fmt.Fprintf(w, "%v%v\n", ruledLine, node.Symbol)

	num := len(node.Children)
	for i, child := range node.Children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(w, child, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
	}
}
