// Package parser builds an error-tolerant concrete syntax tree from Elixir
// source.
//
// Parsing never fails. Input the grammar cannot place is wrapped in Error
// nodes and parsing resumes at the next point where a construct can start,
// so every call returns a complete, lossless tree.
package parser

import (
	"github.com/walteh/exsyntax/pkg/lexer"
	"github.com/walteh/exsyntax/pkg/syntax"
	"github.com/walteh/exsyntax/pkg/token"
)

const DefaultMaxDepth = 512

type Options struct {
	// MaxDepth bounds grammar recursion. Input nested deeper than this is
	// wrapped in Error nodes instead of being parsed. Zero means
	// DefaultMaxDepth.
	MaxDepth int
}

// Parse tokenizes and parses src with default options.
func Parse(src string) *syntax.Tree {
	return ParseWithOptions(src, Options{})
}

func ParseWithOptions(src string, opts Options) *syntax.Tree {
	return ParseTokens(src, lexer.Tokenize(src), opts)
}

// ParseTokens parses an already tokenized source. toks must cover src
// exactly, as produced by lexer.Tokenize.
func ParseTokens(src string, toks []token.Token, opts Options) (tree *syntax.Tree) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}

	p := &Parser{
		s:        NewStream(src, toks),
		maxDepth: opts.MaxDepth,
	}

	defer func() {
		if r := recover(); r != nil {
			tree = fallback(src, toks)
		}
	}()

	p.parseFile()
	return &syntax.Tree{Source: src, Tokens: toks, Root: p.s.build()}
}

// fallback wraps every token in a single Error node under the file.
func fallback(src string, toks []token.Token) *syntax.Tree {
	s := NewStream(src, toks)
	file := s.Mark()
	m := s.Mark()
	s.drain()
	m.Done(syntax.KindError)
	file.Done(syntax.KindFile)
	return &syntax.Tree{Source: src, Tokens: toks, Root: s.build()}
}

type Parser struct {
	s *Stream

	depth    int
	maxDepth int

	// noDo is set while parsing the arguments of a no-parens call; calls
	// inside them leave any following do-block to the outer call.
	noDo bool

	// closers holds the closing tokens of enclosing containers, innermost last.
	closers []token.Kind
	// blocks counts enclosing do-blocks and fns.
	blocks int

	speculating bool
}

func (p *Parser) kind() token.Kind { return p.s.Kind() }

func (p *Parser) at(k token.Kind) bool { return p.s.Kind() == k }

func (p *Parser) bump() { p.s.Advance() }

// eat consumes the next token if it is of kind k.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.bump()
		return true
	}
	return false
}

// enter charges one level of the recursion budget. It returns false, with
// nothing charged, once the budget is spent.
func (p *Parser) enter() bool {
	if p.depth >= p.maxDepth {
		return false
	}
	p.depth++
	return true
}

func (p *Parser) leave() { p.depth-- }

// tooDeep wraps the next token in an Error node.
func (p *Parser) tooDeep() Completed {
	m := p.s.Mark()
	p.bump()
	return m.Done(syntax.KindError)
}

// nest runs fn with a fresh bracket context: do-block attachment is reset
// and close is pushed as the innermost expected closer.
func (p *Parser) nest(close token.Kind, fn func()) {
	noDo := p.noDo
	p.noDo = false
	p.closers = append(p.closers, close)
	defer func() {
		p.noDo = noDo
		p.closers = p.closers[:len(p.closers)-1]
	}()
	fn()
}

// owned reports whether k terminates some enclosing construct, which must
// be left for that construct to consume.
func (p *Parser) owned(k token.Kind) bool {
	if k == eof {
		return true
	}
	if (k == token.End || isSection(k)) && p.blocks > 0 {
		return true
	}
	for i := len(p.closers) - 1; i >= 0; i-- {
		if p.closers[i] == k {
			return true
		}
	}
	return false
}

func (p *Parser) parseFile() {
	m := p.s.Mark()
	p.parseStatements(func() bool { return false }, false)
	p.s.drain()
	m.Done(syntax.KindFile)
}

// parseStatements parses expressions separated by newlines or ';' until
// stop reports true or a token owned by an enclosing construct is reached.
// When commas is set, ',' also separates.
func (p *Parser) parseStatements(stop func() bool, commas bool) {
	for {
		k := p.kind()
		if p.owned(k) || stop() {
			return
		}
		if k == token.Semicolon || (commas && k == token.Comma) {
			p.bump()
			continue
		}
		if !canStartExpr(k) {
			p.recover(stop)
			continue
		}

		p.parseExpr()

		k = p.kind()
		if p.owned(k) || stop() || k == token.Semicolon || (commas && k == token.Comma) || p.s.NewlineBefore() {
			continue
		}
		p.recover(stop)
	}
}

// recover wraps stray input in one Error node. It always consumes at least
// one token, then continues to the end of the line, a token owned by an
// enclosing construct, or a special-form word.
func (p *Parser) recover(stop func() bool) {
	m := p.s.Mark()
	first := true
	for {
		k := p.kind()
		if !first && (p.s.NewlineBefore() || p.owned(k) || stop() || p.atSpecialForm()) {
			break
		}
		if k == eof {
			break
		}
		if first && p.owned(k) {
			p.bump()
		} else if canStartExpr(k) {
			p.parseExpr()
		} else {
			p.bump()
		}
		first = false
	}
	m.Done(syntax.KindError)
}

func (p *Parser) atSpecialForm() bool {
	if p.kind() != token.Identifier {
		return false
	}
	_, ok := syntax.SpecialForms[p.s.Text()]
	return ok
}
