package tree

// Node is a node of a fitted tree. Internal nodes split on Attribute with one
// child per value in Values; leaves predict Class. Internal nodes also carry
// the majority label of their training rows in Class, which is returned when
// a record's value has no child.
type Node struct {
	Leaf      bool
	Class     string
	Attribute string
	Values    []string
	Children  map[string]*Node

	// Branch that leads to this node; empty on the root.
	EdgeAttribute string
	EdgeValue     string

	Samples     int
	Entropy     float64
	Gain        float64
	ClassCounts map[string]int
}

// Child returns the child reached with value.
func (n *Node) Child(value string) (*Node, bool) {
	c, ok := n.Children[value]
	return c, ok
}

// Depth returns the number of edges on the longest path to a leaf.
func (n *Node) Depth() int {
	if n.Leaf {
		return 0
	}
	depth := 0
	for _, c := range n.Children {
		if d := c.Depth() + 1; d > depth {
			depth = d
		}
	}
	return depth
}

// NodeCount returns the number of nodes in the subtree rooted at n.
func (n *Node) NodeCount() int {
	count := 1
	for _, c := range n.Children {
		count += c.NodeCount()
	}
	return count
}

// LeafCount returns the number of leaves in the subtree rooted at n.
func (n *Node) LeafCount() int {
	if n.Leaf {
		return 1
	}
	count := 0
	for _, c := range n.Children {
		count += c.LeafCount()
	}
	return count
}
