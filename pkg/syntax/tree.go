// Package syntax holds the immutable concrete syntax tree produced by the
// parser.
//
// A tree is lossless: every byte of the source belongs to exactly one Leaf,
// and walking the leaves in order reproduces the source. Nodes only group
// leaves; a node's range is always the union of its children's ranges.
//
//	File
//	 ├── Def
//	 │    ├── Leaf(Identifier "def")
//	 │    ├── Leaf(Whitespace " ")
//	 │    ├── Arguments
//	 │    │    └── Call ...
//	 │    └── DoBlock
//	 │         ├── Leaf(Do "do")
//	 │         ├── Block ...
//	 │         └── Leaf(End "end")
//	 └── Leaf(EOL "\n")
package syntax

import (
	"strings"

	"github.com/walteh/exsyntax/pkg/token"
)

// Element is either a *Node or a *Leaf.
type Element interface {
	Span() (start, end int)
	element()
}

// Leaf is a token placed in the tree, with its source text.
type Leaf struct {
	token.Token
	Text string
}

func (l *Leaf) Span() (int, int) { return l.Start, l.End }
func (*Leaf) element()           {}

// Node is an interior tree node.
type Node struct {
	Kind     NodeKind
	Start    int
	End      int
	Children []Element
}

func (n *Node) Span() (int, int) { return n.Start, n.End }
func (*Node) element()           {}

// Nodes returns the direct child nodes, skipping leaves.
func (n *Node) Nodes() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if cn, ok := c.(*Node); ok {
			out = append(out, cn)
		}
	}
	return out
}

// Significant returns the direct children that are nodes or non-trivia leaves.
func (n *Node) Significant() []Element {
	var out []Element
	for _, c := range n.Children {
		if l, ok := c.(*Leaf); ok && l.Kind.IsTrivia() {
			continue
		}
		out = append(out, c)
	}
	return out
}

// FirstLeaf returns the first non-trivia leaf under n, or nil.
func (n *Node) FirstLeaf() *Leaf {
	for _, c := range n.Children {
		switch c := c.(type) {
		case *Leaf:
			if !c.Kind.IsTrivia() {
				return c
			}
		case *Node:
			if l := c.FirstLeaf(); l != nil {
				return l
			}
		}
	}
	return nil
}

// Text returns the source text spanned by n.
func (n *Node) Text() string {
	var sb strings.Builder
	Walk(n, func(e Element) bool {
		if l, ok := e.(*Leaf); ok {
			sb.WriteString(l.Text)
		}
		return true
	})
	return sb.String()
}

// Tree is the result of one parse.
type Tree struct {
	Source string
	Tokens []token.Token
	Root   *Node
}

// Leaves returns every leaf in source order.
func (t *Tree) Leaves() []*Leaf {
	out := make([]*Leaf, 0, len(t.Tokens))
	Walk(t.Root, func(e Element) bool {
		if l, ok := e.(*Leaf); ok {
			out = append(out, l)
		}
		return true
	})
	return out
}

// Text reconstructs the source from the leaves.
func (t *Tree) Text() string {
	return t.Root.Text()
}

// Errors returns every Error node, outermost first.
func (t *Tree) Errors() []*Node {
	var out []*Node
	Walk(t.Root, func(e Element) bool {
		if n, ok := e.(*Node); ok && n.Kind == KindError {
			out = append(out, n)
		}
		return true
	})
	return out
}

// HasErrors reports whether the tree holds any Error node or BadCharacter leaf.
func (t *Tree) HasErrors() bool {
	found := false
	Walk(t.Root, func(e Element) bool {
		switch e := e.(type) {
		case *Node:
			found = found || e.Kind == KindError
		case *Leaf:
			found = found || e.Kind == token.BadCharacter
		}
		return !found
	})
	return found
}

// Walk visits e and its descendants depth first in source order. Returning
// false from fn skips the children of the current element.
func Walk(e Element, fn func(Element) bool) {
	if !fn(e) {
		return
	}
	if n, ok := e.(*Node); ok {
		for _, c := range n.Children {
			Walk(c, fn)
		}
	}
}
