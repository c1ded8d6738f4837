package syntax

// Parents maps every element under root to its parent node.
func Parents(root *Node) map[Element]*Node {
	parents := make(map[Element]*Node)
	Walk(root, func(e Element) bool {
		if n, ok := e.(*Node); ok {
			for _, c := range n.Children {
				parents[c] = n
			}
		}
		return true
	})
	return parents
}

// NodeAt returns the chain of nodes containing offset, outermost first. An
// offset equal to a node's end is not inside it, except for the root.
func NodeAt(root *Node, offset int) []*Node {
	path := []*Node{root}
	n := root
	for {
		var next *Node
		for _, c := range n.Children {
			cn, ok := c.(*Node)
			if !ok {
				continue
			}
			if offset >= cn.Start && offset < cn.End {
				next = cn
				break
			}
		}
		if next == nil {
			return path
		}
		path = append(path, next)
		n = next
	}
}

// EnclosingCall returns the outermost call-like node that owns the given
// do-block, walking outward through chained calls whose callee position
// holds the owner. It returns nil when block is not a do-block owned by a
// call.
func EnclosingCall(root *Node, block *Node) *Node {
	if block == nil || block.Kind != KindDoBlock {
		return nil
	}
	parents := Parents(root)

	owner := parents[block]
	if owner == nil || !owner.Kind.IsCall() {
		return nil
	}

	for {
		outer := parents[owner]
		if outer == nil || !outer.Kind.IsCall() {
			return owner
		}
		sig := outer.Significant()
		if len(sig) == 0 || sig[0] != Element(owner) {
			return owner
		}
		owner = outer
	}
}
