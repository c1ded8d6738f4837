package parser

import (
	"github.com/walteh/exsyntax/pkg/syntax"
	"github.com/walteh/exsyntax/pkg/token"
)

func (p *Parser) parseExpr() Completed {
	return p.parseExprBP(0)
}

// parseExprBP parses an expression whose operators all bind at least as
// tightly as minBP. The caller must have checked canStartExpr.
func (p *Parser) parseExprBP(minBP int) Completed {
	if !p.enter() {
		return p.tooDeep()
	}
	defer p.leave()

	lhs := p.parseUnary()
	for lhs.Valid() {
		op, ok := p.infixAt()
		if !ok || op.lbp < minBP {
			break
		}

		m := lhs.Precede()
		for i := 0; i < op.width; i++ {
			p.bump()
		}

		if !canStartExpr(p.kind()) {
			lhs = m.Done(syntax.KindError)
			break
		}
		p.parseExprBP(op.rbp)

		kind := syntax.KindBinaryOp
		if op.op == token.Range {
			kind = syntax.KindRange
			if p.at(token.StepOp) && bpStep >= minBP && !p.s.NewlineBefore() {
				p.bump()
				if !canStartExpr(p.kind()) {
					lhs = m.Done(syntax.KindError)
					break
				}
				p.parseExprBP(bpStep)
				kind = syntax.KindStepRange
			}
		}
		lhs = m.Done(kind)
	}
	return lhs
}

// parseUnary parses prefix operators, then a primary with its postfix
// chain.
func (p *Parser) parseUnary() Completed {
	k := p.kind()
	switch {
	case isUnary(k):
		return p.parsePrefix(syntax.KindUnaryOp, bpUnary)
	case k == token.Ampersand:
		if p.s.NthKind(1) == token.Integer && !p.s.SpaceAfter() {
			// &1 is a capture argument, not a capture of an expression.
			m := p.s.Mark()
			p.bump()
			p.bump()
			return p.parsePostfix(m.Done(syntax.KindCapture))
		}
		return p.parsePrefix(syntax.KindCapture, bpCapture+1)
	case k == token.At:
		if !p.enter() {
			return p.tooDeep()
		}
		defer p.leave()
		m := p.s.Mark()
		p.bump()
		if !canStartPrimary(p.kind()) {
			return m.Done(syntax.KindError)
		}
		p.parsePrimary()
		return p.parsePostfix(m.Done(syntax.KindAttribute))
	}
	return p.parsePostfix(p.parsePrimary())
}

func (p *Parser) parsePrefix(kind syntax.NodeKind, operandBP int) Completed {
	m := p.s.Mark()
	p.bump()
	if !canStartExpr(p.kind()) {
		return m.Done(syntax.KindError)
	}
	p.parseExprBP(operandBP)
	return m.Done(kind)
}

// parsePostfix applies dot, access, and call suffixes to lhs.
func (p *Parser) parsePostfix(lhs Completed) Completed {
	for lhs.Valid() {
		switch {
		case p.at(token.Dot):
			lhs = p.parseDotSuffix(lhs)
		case p.at(token.LBracket) && !p.s.SpaceBefore():
			m := lhs.Precede()
			p.bump()
			ok := false
			p.nest(token.RBracket, func() {
				switch {
				case p.atKeywordKey():
					p.parseKeywordList(token.RBracket)
				case canStartExpr(p.kind()):
					p.parseExpr()
				}
				ok = p.eat(token.RBracket)
			})
			if !ok {
				return m.Done(syntax.KindError)
			}
			lhs = m.Done(syntax.KindAccess)
		default:
			return lhs
		}
	}
	return lhs
}

func (p *Parser) parseDotSuffix(lhs Completed) Completed {
	m := lhs.Precede()
	p.bump() // .

	switch k := p.kind(); {
	case k == token.Alias && !p.s.NewlineBefore():
		p.bump()
		if lhs.Kind() == syntax.KindAlias {
			return m.Done(syntax.KindAlias)
		}
		return m.Done(syntax.KindDotAccess)

	case k == token.Identifier && !p.s.NewlineBefore():
		p.bump()
		if p.parseCallTail() {
			return m.Done(syntax.KindRemoteCall)
		}
		return m.Done(syntax.KindDotAccess)

	case k.IsStringOpener() && !p.s.NewlineBefore():
		p.parseQuoted()
		if p.parseCallTail() {
			return m.Done(syntax.KindRemoteCall)
		}
		return m.Done(syntax.KindDotAccess)

	case k == token.LParen && !p.s.SpaceBefore():
		p.parseParenArgs()
		p.maybeDoBlock()
		return m.Done(syntax.KindAnonCall)

	case k.IsOperator() && p.s.NthKind(1) == token.LParen:
		// Kernel.+(1, 2)
		p.bump()
		p.parseParenArgs()
		return m.Done(syntax.KindRemoteCall)

	case k == token.LBrace:
		p.parseContainer(token.LBrace, syntax.KindTuple, p.parseElement)
		return m.Done(syntax.KindMultiAlias)
	}
	return m.Done(syntax.KindError)
}

// parseCallTail parses whatever makes the callee just consumed a call:
// parenthesized arguments, no-parens arguments, or a bare do-block. It
// reports whether any was found.
func (p *Parser) parseCallTail() bool {
	switch {
	case p.at(token.LParen) && !p.s.SpaceBefore():
		p.parseParenArgs()
		p.maybeDoBlock()
		return true
	case p.atNoParensArgs():
		p.parseNoParensArgs()
		p.maybeDoBlock()
		return true
	case p.at(token.Do) && !p.noDo && !p.s.NewlineBefore():
		p.parseDoBlock()
		return true
	}
	return false
}

func (p *Parser) maybeDoBlock() {
	if p.at(token.Do) && !p.noDo && !p.s.NewlineBefore() {
		p.parseDoBlock()
	}
}

// atNoParensArgs reports whether the identifier just consumed is followed
// by arguments without parentheses: whitespace, then an expression on the
// same line. A sign only starts an argument when it touches its operand, so
// "f -1" is a call and "f - 1" is subtraction.
func (p *Parser) atNoParensArgs() bool {
	if !p.s.SpaceBefore() || p.s.NewlineBefore() {
		return false
	}
	switch k := p.kind(); k {
	case token.Plus, token.Minus:
		return !p.s.SpaceAfter()
	case token.Not:
		return p.s.NthKind(1) != token.In
	case token.KwIdentifier:
		return true
	case token.Ellipsis:
		return false
	default:
		return canStartExpr(k)
	}
}

func (p *Parser) parsePrimary() Completed {
	if !p.enter() {
		return p.tooDeep()
	}
	defer p.leave()

	k := p.kind()
	switch {
	case isScalar(k):
		m := p.s.Mark()
		p.bump()
		if k == token.Atom {
			return m.Done(syntax.KindAtom)
		}
		return m.Done(syntax.KindLiteral)
	case k.IsStringOpener():
		return p.parseQuoted()
	case k == token.Identifier:
		return p.parseIdentifier()
	case k == token.Alias:
		m := p.s.Mark()
		p.bump()
		return m.Done(syntax.KindAlias)
	case k == token.Ellipsis:
		m := p.s.Mark()
		p.bump()
		return m.Done(syntax.KindIdentifier)
	case k == token.LBracket:
		return p.parseList()
	case k == token.LBrace:
		return p.parseContainer(token.LBrace, syntax.KindTuple, p.parseElement)
	case k == token.BinaryOpen:
		return p.parseContainer(token.BinaryOpen, syntax.KindBitstring, p.parseElement)
	case k == token.PercentBrace:
		return p.parseMap()
	case k == token.Percent:
		return p.parseStruct()
	case k == token.LParen:
		return p.parseParens()
	case k == token.Fn:
		return p.parseFn()
	}
	return Completed{}
}

func (p *Parser) parseIdentifier() Completed {
	m := p.s.Mark()
	name := p.s.Text()
	p.bump()

	kind := syntax.KindIdentifier
	switch {
	case p.at(token.LParen) && !p.s.SpaceBefore():
		p.parseParenArgs()
		p.maybeDoBlock()
		kind = syntax.KindCall
	case p.atNoParensArgs():
		p.parseNoParensArgs()
		p.maybeDoBlock()
		kind = syntax.KindNoParensCall
	case p.at(token.Do) && !p.noDo && !p.s.NewlineBefore():
		p.parseDoBlock()
		kind = syntax.KindCall
	}

	if kind != syntax.KindIdentifier {
		if sf, ok := syntax.SpecialForms[name]; ok {
			kind = sf
		}
	}
	return m.Done(kind)
}
