package parser

import (
	"github.com/walteh/exsyntax/pkg/syntax"
	"github.com/walteh/exsyntax/pkg/token"
)

// parseSequence parses comma-separated items up to, not including, close.
// A keyword list may form the tail. It reports false when the sequence ended
// without reaching close: at end of input, at a closer owned further out,
// or at a new line that lacks a separating comma.
func (p *Parser) parseSequence(close token.Kind, item func() Completed) bool {
	closeAt := -1
	for {
		k := p.kind()
		switch {
		case k == close:
			return true
		case p.owned(k):
			return false
		case p.atKeywordKey():
			p.parseKeywordList(close)
		case !canStartExpr(k):
			m := p.s.Mark()
			p.bump()
			m.Done(syntax.KindError)
			continue
		default:
			item()
		}

		for {
			if p.eat(token.Comma) {
				break
			}
			k := p.kind()
			if k == close || p.owned(k) {
				break
			}
			if p.s.NewlineBefore() && closeAt < p.s.next {
				if closeAt = p.closerAhead(close); closeAt < 0 {
					return false
				}
			}
			m := p.s.Mark()
			if canStartExpr(k) {
				item()
			} else {
				p.bump()
			}
			m.Done(syntax.KindError)
		}
	}
}

// parseContainer parses open, a sequence of items, and the matching closer.
// An unterminated container becomes an Error node.
func (p *Parser) parseContainer(open token.Kind, kind syntax.NodeKind, item func() Completed) Completed {
	m := p.s.Mark()
	p.bump()
	close := open.Closer()
	ok := false
	p.nest(close, func() {
		ok = p.parseSequence(close, item) && p.eat(close)
	})
	if !ok {
		return m.Done(syntax.KindError)
	}
	return m.Done(kind)
}

func (p *Parser) parseList() Completed {
	return p.parseContainer(token.LBracket, syntax.KindList, p.parseListItem)
}

// parseListItem parses one list element, including a cons tail "h | t".
func (p *Parser) parseListItem() Completed {
	c := p.parseElement()
	if !p.at(token.Pipe) || !c.Valid() {
		return c
	}
	m := c.Precede()
	p.bump()
	if !canStartExpr(p.kind()) {
		return m.Done(syntax.KindError)
	}
	p.parseExpr()
	return m.Done(syntax.KindBinaryOp)
}

// parseElement parses one container element. A literal or bracketed element
// followed directly by a boundary is taken as is; anything else is reparsed
// as a full expression.
func (p *Parser) parseElement() Completed {
	if c, ok := p.tryElement(); ok {
		return c
	}
	return p.parseExpr()
}

// tryElement speculatively parses a literal or bracketed primary and keeps
// it only when a boundary follows. Bracketed primaries are not tried while
// another attempt is in progress, which keeps nested retries linear.
func (p *Parser) tryElement() (Completed, bool) {
	k := p.kind()
	bracketed := k.IsOpener() || k == token.Percent
	if !isScalar(k) && (!bracketed || p.speculating) {
		return Completed{}, false
	}

	speculating := p.speculating
	p.speculating = true
	m := p.s.Mark()
	c := p.parsePrimary()
	p.speculating = speculating

	if c.Valid() && p.atBoundary() {
		m.Drop()
		return c, true
	}
	m.Rollback()
	return Completed{}, false
}

// parseKeywordList parses "key: value" pairs. close is the closer of the
// enclosing container, or eof for no-parens call arguments.
func (p *Parser) parseKeywordList(close token.Kind) Completed {
	m := p.s.Mark()
	for {
		if p.atKeywordKey() {
			p.parseKeywordPair()
		} else if canStartExpr(p.kind()) && !p.s.NewlineBefore() {
			e := p.s.Mark()
			p.parseExpr()
			e.Done(syntax.KindError)
		} else {
			break
		}

		if !p.at(token.Comma) {
			break
		}
		next := p.s.NthKind(1)
		if next == close || (close == eof && !canStartExpr(next) && next != token.KwIdentifier) {
			break
		}
		p.bump()
	}
	return m.Done(syntax.KindKeywordList)
}

func (p *Parser) parseKeywordPair() Completed {
	m := p.s.Mark()
	if p.at(token.KwIdentifier) {
		p.bump()
	} else {
		p.parseQuoted()
	}
	if !canStartExpr(p.kind()) {
		return m.Done(syntax.KindError)
	}
	p.parseExpr()
	return m.Done(syntax.KindKeywordPair)
}

// parseParenArgs parses "(args)" after a callee.
func (p *Parser) parseParenArgs() Completed {
	return p.parseContainer(token.LParen, syntax.KindArguments, p.parseExpr)
}

// parseNoParensArgs parses the arguments of a call written without
// parentheses. Calls nested in them never take a do-block.
func (p *Parser) parseNoParensArgs() Completed {
	m := p.s.Mark()
	noDo := p.noDo
	p.noDo = true
	defer func() { p.noDo = noDo }()

	for {
		if p.atKeywordKey() {
			p.parseKeywordList(eof)
			break
		}
		if !canStartExpr(p.kind()) {
			break
		}
		p.parseExpr()
		if !p.at(token.Comma) {
			break
		}
		next := p.s.NthKind(1)
		if !canStartExpr(next) && next != token.KwIdentifier {
			break
		}
		p.bump()
	}
	return m.Done(syntax.KindArguments)
}

// parseMap parses "%{...}".
func (p *Parser) parseMap() Completed {
	m := p.s.Mark()
	p.bump()
	if !p.parseMapBody() {
		return m.Done(syntax.KindError)
	}
	return m.Done(syntax.KindMap)
}

// parseStruct parses "%Name{...}" where Name is an alias, a variable, or
// __MODULE__.
func (p *Parser) parseStruct() Completed {
	m := p.s.Mark()
	p.bump()

	switch p.kind() {
	case token.Alias:
		a := p.s.Mark()
		p.bump()
		for p.at(token.Dot) && p.s.NthKind(1) == token.Alias {
			p.bump()
			p.bump()
		}
		a.Done(syntax.KindAlias)
	case token.Identifier:
		a := p.s.Mark()
		p.bump()
		a.Done(syntax.KindIdentifier)
	case token.At:
		p.parsePrefix(syntax.KindAttribute, bpAt)
	case token.Caret:
		p.parsePrefix(syntax.KindUnaryOp, bpAt)
	default:
		return m.Done(syntax.KindError)
	}

	if !p.at(token.LBrace) || p.s.SpaceBefore() {
		return m.Done(syntax.KindError)
	}
	p.bump()
	if !p.parseMapBody() {
		return m.Done(syntax.KindError)
	}
	return m.Done(syntax.KindStruct)
}

// parseMapBody parses the entries of a map or struct after the opening
// brace, through the closing brace.
func (p *Parser) parseMapBody() bool {
	ok := false
	p.nest(token.RBrace, func() {
		if p.at(token.RBrace) {
			ok = p.eat(token.RBrace)
			return
		}
		switch p.classifyMap() {
		case mapUpdate:
			u := p.s.Mark()
			if canStartExpr(p.kind()) {
				p.parseExprBP(bpPipe + 1)
			}
			p.eat(token.Pipe)
			ok = p.parseSequence(token.RBrace, p.parseAssocPair)
			u.Done(syntax.KindMapUpdate)
		case mapAssoc:
			ok = p.parseSequence(token.RBrace, p.parseAssocPair)
		default:
			ok = p.parseSequence(token.RBrace, p.parseStrayEntry)
		}
		ok = ok && p.eat(token.RBrace)
	})
	return ok
}

// parseAssocPair parses "key => value".
func (p *Parser) parseAssocPair() Completed {
	key := p.parseAssocKey()
	if !key.Valid() {
		return key
	}
	m := key.Precede()
	if !p.eat(token.FatArrow) || !canStartExpr(p.kind()) {
		return m.Done(syntax.KindError)
	}
	p.parseExprBP(bpAssoc)
	return m.Done(syntax.KindAssocPair)
}

func (p *Parser) parseAssocKey() Completed {
	if c, ok := p.tryElement(); ok {
		return c
	}
	return p.parseExprBP(bpAssoc + 1)
}

// parseStrayEntry parses an element of a keyword-style map that is not a
// keyword pair.
func (p *Parser) parseStrayEntry() Completed {
	m := p.s.Mark()
	p.parseExpr()
	return m.Done(syntax.KindError)
}
