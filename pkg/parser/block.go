package parser

import (
	"github.com/walteh/exsyntax/pkg/syntax"
	"github.com/walteh/exsyntax/pkg/token"
)

func never() bool { return false }

// inBlock runs fn inside a do/fn body, where "end" and the section keywords
// belong to the block being parsed.
func (p *Parser) inBlock(fn func()) {
	noDo := p.noDo
	p.noDo = false
	p.blocks++
	defer func() {
		p.noDo = noDo
		p.blocks--
	}()
	fn()
}

// parseDoBlock parses "do ... end" with its optional after/else/catch/rescue
// sections.
func (p *Parser) parseDoBlock() Completed {
	m := p.s.Mark()
	p.bump() // do

	ok := false
	p.inBlock(func() {
		p.parseBody()
		for isSection(p.kind()) {
			s := p.s.Mark()
			p.bump()
			p.parseBody()
			s.Done(syntax.KindBlockSection)
		}
		ok = p.eat(token.End)
	})
	if !ok {
		return m.Done(syntax.KindError)
	}
	return m.Done(syntax.KindDoBlock)
}

// parseBody parses the contents of a block or section: stab clauses when
// the first statement is a clause head, plain statements otherwise.
func (p *Parser) parseBody() {
	if p.atClauseHead() {
		p.parseClauses()
		return
	}
	b := p.s.Mark()
	p.parseStatements(never, false)
	b.Done(syntax.KindBlock)
}

func (p *Parser) parseClauses() {
	for {
		k := p.kind()
		if p.owned(k) {
			return
		}
		if k == token.Semicolon {
			p.bump()
			continue
		}
		if !canStartExpr(k) && k != token.Arrow {
			p.recover(never)
			continue
		}
		p.parseClause()
	}
}

// parseClause parses "head -> body". The head is a comma-separated argument
// list, possibly guarded with "when"; it may be empty.
func (p *Parser) parseClause() Completed {
	m := p.s.Mark()
	for canStartExpr(p.kind()) {
		p.parseExpr()
		if !p.at(token.Comma) {
			break
		}
		p.bump()
	}
	if !p.eat(token.Arrow) {
		return m.Done(syntax.KindError)
	}

	b := p.s.Mark()
	p.parseStatements(p.atClauseHead, false)
	b.Done(syntax.KindBlock)
	return m.Done(syntax.KindStabClause)
}

// parseFn parses "fn clauses end".
func (p *Parser) parseFn() Completed {
	m := p.s.Mark()
	p.bump() // fn

	ok := false
	p.inBlock(func() {
		p.parseClauses()
		ok = p.eat(token.End)
	})
	if !ok {
		return m.Done(syntax.KindError)
	}
	return m.Done(syntax.KindFn)
}

// parseParens parses a parenthesized expression, block, or clause list.
func (p *Parser) parseParens() Completed {
	m := p.s.Mark()
	p.bump()

	ok := false
	p.nest(token.RParen, func() {
		if p.atClauseHead() {
			p.parseClauses()
		} else {
			p.parseStatements(never, true)
		}
		ok = p.eat(token.RParen)
	})
	if !ok {
		return m.Done(syntax.KindError)
	}
	return m.Done(syntax.KindParens)
}
