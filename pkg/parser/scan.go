package parser

import (
	"github.com/walteh/exsyntax/pkg/syntax"
	"github.com/walteh/exsyntax/pkg/token"
)

// The scanners below look ahead over the raw token slice without touching
// the cursor or the event log.

// atBoundary reports whether the next token ends a container element.
func (p *Parser) atBoundary() bool {
	switch p.s.Kind() {
	case token.Comma, token.RBrace, token.RParen, token.RBracket, token.BinaryClose,
		token.Pipe, token.FatArrow, eof:
		return true
	}
	return false
}

type mapShape uint8

const (
	mapKeyword mapShape = iota
	mapAssoc
	mapUpdate
)

// classifyMap decides how the body of a map or struct literal reads: an
// update ("%{base | k => v}"), a list of "=>" pairs, or a keyword list. It
// scans at bracket depth zero up to the closing brace.
func (p *Parser) classifyMap() mapShape {
	depth := 0
	sawAssoc := false
	for i := p.s.next; i < len(p.s.tokens); i++ {
		k := p.s.tokens[i].Kind
		switch {
		case k.IsOpener() || k == token.Fn || k == token.Do:
			depth++
		case k.IsCloser() || k == token.End:
			if depth == 0 {
				if sawAssoc {
					return mapAssoc
				}
				return mapKeyword
			}
			depth--
		case depth > 0:
		case k == token.Pipe:
			if !sawAssoc {
				return mapUpdate
			}
		case k == token.FatArrow:
			sawAssoc = true
		case k == token.Comma:
			if sawAssoc {
				return mapAssoc
			}
		}
	}
	if sawAssoc {
		return mapAssoc
	}
	return mapKeyword
}

// atClauseHead reports whether the statement starting at the cursor is the
// head of a stab clause: an "->" appears at depth zero before the statement
// ends. A newline ends the statement unless the line ends in a comma or an
// operator.
func (p *Parser) atClauseHead() bool {
	depth := 0
	prev := token.Invalid
	for i := p.s.next; i < len(p.s.tokens); i++ {
		k := p.s.tokens[i].Kind
		if k.IsTrivia() {
			if k == token.EOL && depth == 0 && prev != token.Invalid && !continuesLine(prev) {
				return false
			}
			continue
		}
		switch {
		case k == token.Arrow:
			if depth == 0 {
				return true
			}
		case k.IsOpener() || k == token.Fn:
			depth++
		case k == token.Do:
			if depth == 0 {
				return false
			}
			depth++
		case k.IsCloser() || k == token.End:
			if depth == 0 {
				return false
			}
			depth--
		case depth == 0 && (k == token.Semicolon || isSection(k)):
			return false
		}
		prev = k
	}
	return false
}

// continuesLine reports whether a line ending in kind k carries on to the
// next line.
func continuesLine(k token.Kind) bool {
	if k == token.Comma || k == token.KwIdentifier {
		return true
	}
	return k.IsOperator() || k.IsOpener() || k == token.When || k == token.And ||
		k == token.Or || k == token.In || k == token.Not
}

// closerAhead returns the token index of the close that ends the current
// container, or -1 when the container is abandoned first: another closer,
// "end", a section keyword, a line starting with a special-form word, or
// the end of input.
func (p *Parser) closerAhead(close token.Kind) int {
	depth := 0
	lineStart := false
	for i := p.s.next; i < len(p.s.tokens); i++ {
		k := p.s.tokens[i].Kind
		if k.IsTrivia() {
			if k == token.EOL && depth == 0 {
				lineStart = true
			}
			continue
		}
		switch {
		case k.IsOpener() || k == token.Fn || k == token.Do:
			depth++
		case k.IsCloser() || k == token.End:
			if depth == 0 {
				if k == close {
					return i
				}
				return -1
			}
			depth--
		case depth > 0:
		case isSection(k):
			return -1
		case lineStart && k == token.Identifier:
			if _, ok := syntax.SpecialForms[p.s.tokens[i].Text(p.s.src)]; ok {
				return -1
			}
		}
		lineStart = false
	}
	return -1
}

// atQuotedKey reports whether the quoted literal starting at the cursor is a
// keyword key, as in ["foo bar": 1]. The answer is in its matching closer.
func (p *Parser) atQuotedKey() bool {
	k := p.s.Kind()
	if k != token.String && k != token.Charlist {
		return false
	}
	level := 0
	for i := p.s.next; i < len(p.s.tokens); i++ {
		k := p.s.tokens[i].Kind
		switch {
		case k.IsStringOpener():
			level++
		case k.IsStringCloser():
			level--
			if level == 0 {
				return k == token.KeywordStringEnd
			}
		}
	}
	return false
}

// atKeywordKey reports whether the cursor is at the key of a keyword pair.
func (p *Parser) atKeywordKey() bool {
	return p.s.Kind() == token.KwIdentifier || p.atQuotedKey()
}

func isSection(k token.Kind) bool {
	switch k {
	case token.After, token.Else, token.Catch, token.Rescue:
		return true
	}
	return false
}
