package phylo

/*
Sanitization collapses internal edges whose support falls below the database
threshold. A collapsed node is removed and its children are promoted onto the
parent, inheriting the collapsed edge's length. The pass repeats until no
low-support node remains, then ids are re-assigned in pre-order so identical
inputs always number identically. An internal node with no recorded support
is treated as support zero.
*/

////////////////////////////////////////////////////////////////////////////////

// Sanitize collapses low-support internal nodes in place and renumbers the
// tree. The root is never removed.
func Sanitize(root *Clade, minSupport float64) {
	for collapseOnce(root, minSupport) {
	}
	root.assignIDs(0)
}

func collapseOnce(node *Clade, minSupport float64) bool {
	collapsed := false
	promoted := make([]*Clade, 0, len(node.Children))
	for _, child := range node.Children {
		if child.IsInternal() && supportOf(child) < minSupport {
			for _, grandchild := range child.Children {
				grandchild.Length += child.Length
				promoted = append(promoted, grandchild)
			}
			collapsed = true
			continue
		}
		promoted = append(promoted, child)
	}
	node.Children = promoted
	for _, child := range node.Children {
		if !child.IsLeaf() && collapseOnce(child, minSupport) {
			collapsed = true
		}
	}
	return collapsed
}

func supportOf(c *Clade) float64 {
	if c.Support == nil {
		return 0
	}
	return *c.Support
}
