package parser

import (
	"github.com/walteh/exsyntax/pkg/syntax"
	"github.com/walteh/exsyntax/pkg/token"
)

func quotedKind(opener token.Kind) syntax.NodeKind {
	switch opener {
	case token.Charlist, token.CharlistHeredoc:
		return syntax.KindCharlist
	case token.Sigil:
		return syntax.KindSigil
	case token.QuotedAtom:
		return syntax.KindAtom
	}
	return syntax.KindString
}

// parseQuoted parses a quoted literal from its opener through its closer.
// Without a closer the literal runs to end of input and becomes an Error.
func (p *Parser) parseQuoted() Completed {
	m := p.s.Mark()
	kind := quotedKind(p.kind())
	p.bump()

	for {
		switch k := p.kind(); {
		case k.IsStringContent():
			p.bump()
		case k == token.InterpolationStart:
			p.parseInterpolation()
		case k.IsStringCloser():
			p.bump()
			return m.Done(kind)
		default:
			return m.Done(syntax.KindError)
		}
	}
}

// parseInterpolation parses "#{...}". The enclosing context is hidden: only
// the interpolation's own closer ends it.
func (p *Parser) parseInterpolation() Completed {
	m := p.s.Mark()
	p.bump()

	closers, blocks, noDo := p.closers, p.blocks, p.noDo
	p.closers, p.blocks, p.noDo = []token.Kind{token.InterpolationEnd}, 0, false
	p.parseStatements(never, false)
	p.closers, p.blocks, p.noDo = closers, blocks, noDo

	if !p.eat(token.InterpolationEnd) {
		return m.Done(syntax.KindError)
	}
	return m.Done(syntax.KindInterpolation)
}
