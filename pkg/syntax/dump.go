package syntax

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/walteh/exsyntax/pkg/token"
)

// Sexp renders the significant structure of e as an S-expression: nodes as
// "(Kind children...)", non-trivia leaves as their text. Literal text inside
// quoted literals is Go-quoted so whitespace stays visible.
//
//	1 + 2 * 3   =>   (BinaryOp (Literal 1) + (BinaryOp (Literal 2) * (Literal 3)))
func Sexp(e Element) string {
	var sb strings.Builder
	writeSexp(&sb, e)
	return sb.String()
}

func writeSexp(sb *strings.Builder, e Element) {
	switch e := e.(type) {
	case *Leaf:
		if e.Kind.IsStringContent() {
			sb.WriteString(strconv.Quote(e.Text))
			return
		}
		sb.WriteString(e.Text)
	case *Node:
		sb.WriteString("(")
		sb.WriteString(e.Kind.String())
		for _, c := range e.Children {
			if l, ok := c.(*Leaf); ok && l.Kind.IsTrivia() {
				continue
			}
			sb.WriteString(" ")
			writeSexp(sb, c)
		}
		sb.WriteString(")")
	}
}

// Dump renders the full tree, trivia included, one element per line.
func Dump(e Element) string {
	var sb strings.Builder
	writeDump(&sb, e, 0)
	return sb.String()
}

func writeDump(sb *strings.Builder, e Element, depth int) {
	indent := strings.Repeat("  ", depth)
	switch e := e.(type) {
	case *Leaf:
		fmt.Fprintf(sb, "%s%s [%d,%d) %q\n", indent, e.Kind, e.Start, e.End, e.Text)
	case *Node:
		fmt.Fprintf(sb, "%s%s [%d,%d)\n", indent, e.Kind, e.Start, e.End)
		for _, c := range e.Children {
			writeDump(sb, c, depth+1)
		}
	}
}

// Tokens renders a token slice one token per line, for debugging the lexer.
func Tokens(src string, toks []token.Token) string {
	var sb strings.Builder
	for _, t := range toks {
		fmt.Fprintf(&sb, "%-20s [%d,%d) %q\n", t.Kind, t.Start, t.End, t.Text(src))
	}
	return sb.String()
}
