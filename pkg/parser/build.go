package parser

import (
	"github.com/walteh/exsyntax/pkg/syntax"
)

// build replays the event log into a tree. Nodes are attached to their
// parent lazily, on their first significant token, so trivia emitted before
// a node's first token lands in the parent instead. Nodes that never receive
// a token are discarded.
func (s *Stream) build() *syntax.Node {
	var root *syntax.Node
	var stack []*syntax.Node
	var chain []syntax.NodeKind

	// stack[:attached] hangs off the tree; the frames above it have not
	// seen a significant token yet.
	attached := 0

	attach := func() {
		for ; attached < len(stack); attached++ {
			parent := stack[attached-1]
			parent.Children = append(parent.Children, stack[attached])
		}
	}

	for i := 0; i < len(s.events); i++ {
		ev := s.events[i]
		switch ev.kind {
		case evOpen:
			chain = chain[:0]
			if ev.node != syntax.KindInvalid {
				chain = append(chain, ev.node)
			}
			idx, fp := i, ev.forwardParent
			for fp != 0 {
				idx += fp
				parent := s.events[idx]
				if parent.kind == evOpen && parent.node != syntax.KindInvalid {
					chain = append(chain, parent.node)
				}
				fp = parent.forwardParent
				s.events[idx].kind = evTombstone
			}
			for j := len(chain) - 1; j >= 0; j-- {
				n := &syntax.Node{Kind: chain[j]}
				if len(stack) == 0 {
					attached = 1
					if root == nil {
						root = n
					}
				}
				stack = append(stack, n)
			}
		case evClose:
			if len(stack) == 0 {
				continue
			}
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			attached = min(attached, len(stack))
			if len(n.Children) > 0 {
				n.Start, _ = n.Children[0].Span()
				_, n.End = n.Children[len(n.Children)-1].Span()
			}
		case evToken:
			if len(stack) == 0 {
				continue
			}
			tok := s.tokens[ev.tok]
			leaf := &syntax.Leaf{Token: tok, Text: tok.Text(s.src)}
			target := len(stack) - 1
			if tok.Kind.IsTrivia() {
				target = max(attached-1, 0)
			} else {
				attach()
			}
			n := stack[target]
			n.Children = append(n.Children, leaf)
		}
	}

	if root == nil {
		root = &syntax.Node{Kind: syntax.KindFile}
	}
	root.Start = 0
	root.End = len(s.src)
	return root
}
