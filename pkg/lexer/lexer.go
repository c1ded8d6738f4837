// Package lexer turns Elixir source text into a total, gapless token sequence.
//
// The lexer never fails: anything it cannot classify becomes a BadCharacter
// token at least one byte wide, so concatenating the text of every token
// always reproduces the input.
//
// Quoted literals (strings, charlists, heredocs, sigils, quoted atoms) are
// lexed with an explicit mode stack rather than recursion, so interpolation
// may nest to any depth:
//
//	"a #{"b #{c}"}"
//
//	String  StringPart("a ")  InterpolationStart
//	    String  StringPart("b ")  InterpolationStart  Identifier(c)  InterpolationEnd  StringEnd
//	InterpolationEnd  StringEnd
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/walteh/exsyntax/pkg/token"
)

type modeKind uint8

const (
	modeCode modeKind = iota
	modeInterpolation
	modeQuoted
)

type mode struct {
	kind modeKind

	// modeInterpolation: unbalanced '{' seen since the '#{'
	depth int

	// modeQuoted
	closer    string
	heredoc   bool
	interp    bool // escapes and #{} are processed
	modifiers bool // sigil modifiers may trail the closer
	keyword   bool // closer may be followed by ':' to form a keyword key
}

type lexer struct {
	src    string
	pos    int
	tokens []token.Token
	modes  []mode
	last   token.Kind // last non-trivia kind
}

// Tokenize scans src into tokens. The result covers src exactly: the first
// token starts at 0, every token starts where the previous one ended, and the
// last token ends at len(src).
func Tokenize(src string) []token.Token {
	l := &lexer{
		src:    src,
		tokens: make([]token.Token, 0, len(src)/3+1),
		modes:  []mode{{kind: modeCode}},
	}

	for l.pos < len(l.src) {
		start, depth := l.pos, len(l.modes)

		top := len(l.modes) - 1
		if l.modes[top].kind == modeQuoted {
			l.lexQuoted(top)
		} else {
			l.lexCode(top)
		}

		if l.pos == start && len(l.modes) == depth {
			l.badCharacter()
		}
	}

	return l.tokens
}

func (l *lexer) emit(kind token.Kind, start int) {
	l.tokens = append(l.tokens, token.Token{Kind: kind, Start: start, End: l.pos})
	if !kind.IsTrivia() {
		l.last = kind
	}
}

func (l *lexer) push(m mode) {
	l.modes = append(l.modes, m)
}

func (l *lexer) pop() {
	if len(l.modes) > 1 {
		l.modes = l.modes[:len(l.modes)-1]
	}
}

func (l *lexer) peek(offset int) byte {
	if l.pos+offset < len(l.src) {
		return l.src[l.pos+offset]
	}
	return 0
}

func (l *lexer) rest() string {
	return l.src[l.pos:]
}

func (l *lexer) badCharacter() {
	start := l.pos
	_, size := utf8.DecodeRuneInString(l.rest())
	if size < 1 {
		size = 1
	}
	l.pos += size
	l.emit(token.BadCharacter, start)
}

func (l *lexer) lexCode(top int) {
	start := l.pos
	c := l.src[l.pos]

	switch {
	case c == ' ' || c == '\t' || c == '\f' || c == '\v' || (c == '\r' && l.peek(1) != '\n'):
		for l.pos < len(l.src) {
			c := l.src[l.pos]
			if c == ' ' || c == '\t' || c == '\f' || c == '\v' || (c == '\r' && l.peek(1) != '\n') {
				l.pos++
				continue
			}
			break
		}
		l.emit(token.Whitespace, start)
		return

	case c == '\n':
		l.pos++
		l.emit(token.EOL, start)
		return

	case c == '\r':
		l.pos += 2
		l.emit(token.EOL, start)
		return

	case c == '#':
		for l.pos < len(l.src) && l.src[l.pos] != '\n' && !(l.src[l.pos] == '\r' && l.peek(1) == '\n') {
			l.pos++
		}
		l.emit(token.Comment, start)
		return

	case isDigit(c):
		l.lexNumber()
		return

	case c == '"' || c == '\'':
		l.lexQuoteOpen(c)
		return

	case c == ':':
		l.lexColon()
		return

	case c == '?':
		l.lexChar()
		return

	case c == '~':
		if l.lexSigil() {
			return
		}

	case c == '}' && l.modes[top].kind == modeInterpolation:
		if l.modes[top].depth == 0 {
			l.pos++
			l.emit(token.InterpolationEnd, start)
			l.pop()
			return
		}
		l.modes[top].depth--

	case c == '{' && l.modes[top].kind == modeInterpolation:
		l.modes[top].depth++
	}

	if r, _ := utf8.DecodeRuneInString(l.rest()); isNameStart(r) {
		l.lexName()
		return
	}

	if kind, n := matchOperator(l.rest()); n > 0 {
		if kind == token.PercentBrace && l.modes[top].kind == modeInterpolation {
			l.modes[top].depth++
		}
		l.pos += n
		l.emit(kind, start)
		return
	}

	l.badCharacter()
}

func (l *lexer) lexNumber() {
	start := l.pos

	if l.src[l.pos] == '0' {
		var valid func(byte) bool
		switch l.peek(1) {
		case 'x':
			valid = isHexDigit
		case 'o':
			valid = func(c byte) bool { return c >= '0' && c <= '7' }
		case 'b':
			valid = func(c byte) bool { return c == '0' || c == '1' }
		}
		if valid != nil && valid(l.peek(2)) {
			l.pos += 2
			l.digits(valid)
			l.emit(token.Integer, start)
			return
		}
	}

	l.digits(isDigit)
	kind := token.Integer

	if l.peek(0) == '.' && isDigit(l.peek(1)) {
		l.pos++
		l.digits(isDigit)
		kind = token.Float

		if e := l.peek(0); e == 'e' || e == 'E' {
			n := 1
			if s := l.peek(1); s == '+' || s == '-' {
				n = 2
			}
			if isDigit(l.peek(n)) {
				l.pos += n
				l.digits(isDigit)
			}
		}
	}

	l.emit(kind, start)
}

// digits consumes a run of digits accepted by valid, allowing single '_'
// separators between them.
func (l *lexer) digits(valid func(byte) bool) {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if valid(c) {
			l.pos++
			continue
		}
		if c == '_' && valid(l.peek(1)) {
			l.pos++
			continue
		}
		return
	}
}

func (l *lexer) lexName() {
	start := l.pos
	first, _ := utf8.DecodeRuneInString(l.rest())
	alias := first >= 'A' && first <= 'Z'

	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.rest())
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			l.pos += size
			continue
		}
		break
	}

	if !alias {
		switch l.peek(0) {
		case '?':
			l.pos++
		case '!':
			if l.peek(1) != '=' || l.peek(2) == '=' {
				l.pos++
			}
		}
	}

	if l.peek(0) == ':' && l.peek(1) != ':' && isSpaceOrEnd(l.peek(1), l.pos+1 >= len(l.src)) {
		l.pos++
		l.emit(token.KwIdentifier, start)
		return
	}

	text := l.src[start:l.pos]
	if kind, ok := token.Keywords[text]; ok && l.last != token.Dot {
		l.emit(kind, start)
		return
	}

	if alias {
		l.emit(token.Alias, start)
		return
	}
	l.emit(token.Identifier, start)
}

func (l *lexer) lexColon() {
	start := l.pos

	switch next := l.peek(1); {
	case next == ':':
		l.pos += 2
		l.emit(token.Type, start)
		return

	case next == '"' || next == '\'':
		l.pos += 2
		l.emit(token.QuotedAtom, start)
		l.push(mode{kind: modeQuoted, closer: string(next), interp: true})
		return
	}

	l.pos++
	rest := l.rest()

	if r, _ := utf8.DecodeRuneInString(rest); isNameStart(r) {
		for l.pos < len(l.src) {
			r, size := utf8.DecodeRuneInString(l.rest())
			if r == '_' || r == '@' || unicode.IsLetter(r) || unicode.IsDigit(r) {
				l.pos += size
				continue
			}
			break
		}
		if c := l.peek(0); c == '?' || c == '!' {
			l.pos++
		}
		l.emit(token.Atom, start)
		return
	}

	for _, special := range []string{"%{}", "{}", "<<>>", "%", "[]"} {
		if strings.HasPrefix(rest, special) {
			l.pos += len(special)
			l.emit(token.Atom, start)
			return
		}
	}

	if kind, n := matchOperator(rest); n > 0 && (kind.IsOperator() || kind == token.Dot) {
		l.pos += n
		l.emit(token.Atom, start)
		return
	}

	l.emit(token.Colon, start)
}

func (l *lexer) lexChar() {
	start := l.pos
	if l.pos+1 >= len(l.src) {
		l.badCharacter()
		return
	}

	l.pos++
	if l.src[l.pos] == '\\' {
		l.pos += escapeLength(l.rest())
	} else {
		_, size := utf8.DecodeRuneInString(l.rest())
		l.pos += size
	}
	l.emit(token.Char, start)
}

func (l *lexer) lexQuoteOpen(q byte) {
	start := l.pos
	triple := strings.Repeat(string(q), 3)

	if strings.HasPrefix(l.rest(), triple) {
		l.pos += 3
		kind := token.Heredoc
		if q == '\'' {
			kind = token.CharlistHeredoc
		}
		l.emit(kind, start)
		l.push(mode{kind: modeQuoted, closer: triple, heredoc: true, interp: true})
		return
	}

	l.pos++
	kind := token.String
	if q == '\'' {
		kind = token.Charlist
	}
	l.emit(kind, start)
	l.push(mode{kind: modeQuoted, closer: string(q), interp: true, keyword: true})
}

var sigilClosers = map[byte]byte{
	'(': ')', '[': ']', '{': '}', '<': '>', '/': '/', '|': '|', '"': '"', '\'': '\'',
}

func (l *lexer) lexSigil() bool {
	start := l.pos
	i := l.pos + 1
	if i >= len(l.src) {
		return false
	}

	c := l.src[i]
	lower := c >= 'a' && c <= 'z'
	switch {
	case lower:
		i++
	case c >= 'A' && c <= 'Z':
		for i < len(l.src) && ((l.src[i] >= 'A' && l.src[i] <= 'Z') || isDigit(l.src[i])) {
			i++
		}
	default:
		return false
	}

	if i >= len(l.src) {
		return false
	}

	rest := l.src[i:]
	if strings.HasPrefix(rest, `"""`) || strings.HasPrefix(rest, `'''`) {
		l.pos = i + 3
		l.emit(token.Sigil, start)
		l.push(mode{kind: modeQuoted, closer: rest[:3], heredoc: true, interp: lower, modifiers: true})
		return true
	}

	closer, ok := sigilClosers[l.src[i]]
	if !ok {
		return false
	}
	l.pos = i + 1
	l.emit(token.Sigil, start)
	l.push(mode{kind: modeQuoted, closer: string(closer), interp: lower, modifiers: true})
	return true
}

// lexQuoted consumes one item inside a quoted literal: the closer, an
// interpolation opener, an escape sequence, or a run of literal text.
func (l *lexer) lexQuoted(top int) {
	m := l.modes[top]
	start := l.pos

	if n := l.closerAt(m, l.pos); n > 0 {
		l.pos += n
		kind := token.StringEnd

		if m.modifiers {
			for l.pos < len(l.src) && l.src[l.pos] >= 'a' && l.src[l.pos] <= 'z' {
				l.pos++
			}
		} else if m.keyword && l.peek(0) == ':' && l.peek(1) != ':' && isSpaceOrEnd(l.peek(1), l.pos+1 >= len(l.src)) {
			l.pos++
			kind = token.KeywordStringEnd
		}

		l.emit(kind, start)
		l.pop()
		return
	}

	if m.interp {
		if strings.HasPrefix(l.rest(), "#{") {
			l.pos += 2
			l.emit(token.InterpolationStart, start)
			l.push(mode{kind: modeInterpolation})
			return
		}
		if l.src[l.pos] == '\\' {
			n := escapeLength(l.rest())
			kind := token.Escape
			if !validEscape(l.src[l.pos : l.pos+n]) {
				kind = token.InvalidEscape
			}
			l.pos += n
			l.emit(kind, start)
			return
		}
	}

	for l.pos < len(l.src) {
		if l.closerAt(m, l.pos) > 0 {
			break
		}
		c := l.src[l.pos]
		if m.interp && (c == '\\' || (c == '#' && l.peek(1) == '{')) {
			break
		}
		if c == '\\' && strings.HasPrefix(l.src[l.pos+1:], m.closer[:1]) {
			l.pos += 2
			continue
		}
		l.pos++
	}

	if l.pos > start {
		l.emit(token.StringPart, start)
	}
}

// closerAt returns the width of the literal's closing delimiter at i, or 0.
// A heredoc closer may be indented and must start its line.
func (l *lexer) closerAt(m mode, i int) int {
	if !m.heredoc {
		if strings.HasPrefix(l.src[i:], m.closer) {
			return len(m.closer)
		}
		return 0
	}

	if i > 0 && l.src[i-1] != '\n' {
		return 0
	}
	j := i
	for j < len(l.src) && (l.src[j] == ' ' || l.src[j] == '\t') {
		j++
	}
	if strings.HasPrefix(l.src[j:], m.closer) {
		return j - i + len(m.closer)
	}
	return 0
}

// escapeLength returns the byte length of the escape sequence starting with
// the backslash at s[0]. It is always at least 1.
func escapeLength(s string) int {
	if len(s) < 2 {
		return 1
	}

	switch s[1] {
	case 'x':
		n := 2
		for n < len(s) && n < 4 && isHexDigit(s[n]) {
			n++
		}
		return n
	case 'u':
		if len(s) > 2 && s[2] == '{' {
			n := 3
			for n < len(s) && n < 9 && isHexDigit(s[n]) {
				n++
			}
			if n > 3 && n < len(s) && s[n] == '}' {
				return n + 1
			}
			return 2
		}
		n := 2
		for n < len(s) && n < 6 && isHexDigit(s[n]) {
			n++
		}
		if n == 6 {
			return n
		}
		return 2
	case '\r':
		if len(s) > 2 && s[2] == '\n' {
			return 3
		}
	}

	_, size := utf8.DecodeRuneInString(s[1:])
	return 1 + size
}

func validEscape(esc string) bool {
	if len(esc) < 2 {
		return false
	}
	switch esc[1] {
	case 'x':
		return len(esc) > 2
	case 'u':
		if len(esc) > 2 && esc[2] == '{' {
			return len(esc) > 4 && esc[len(esc)-1] == '}'
		}
		return len(esc) > 2
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isSpaceOrEnd(c byte, atEnd bool) bool {
	return atEnd || c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
