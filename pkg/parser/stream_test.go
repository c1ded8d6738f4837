package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/exsyntax/pkg/lexer"
	"github.com/walteh/exsyntax/pkg/syntax"
	"github.com/walteh/exsyntax/pkg/token"
)

func newTestParser(src string) *Parser {
	return &Parser{s: NewStream(src, lexer.Tokenize(src)), maxDepth: DefaultMaxDepth}
}

func TestStream_SkipsTrivia(t *testing.T) {
	s := NewStream("  foo # c\n  bar", lexer.Tokenize("  foo # c\n  bar"))

	assert.Equal(t, token.Identifier, s.Kind())
	assert.Equal(t, "foo", s.Text())
	assert.Equal(t, 2, s.Offset())
	assert.True(t, s.SpaceBefore())
	assert.False(t, s.NewlineBefore())

	s.Advance()
	assert.Equal(t, "bar", s.Text())
	assert.True(t, s.NewlineBefore())
	assert.Equal(t, eof, s.NthKind(1))

	s.Advance()
	assert.True(t, s.EOF())
	assert.Equal(t, eof, s.Kind())
	assert.Equal(t, 15, s.Offset())
}

func TestMarker_Rollback(t *testing.T) {
	src := "a b c"
	s := NewStream(src, lexer.Tokenize(src))

	s.Advance()
	pos, events := s.Position(), len(s.events)

	m := s.Mark()
	inner := s.Mark()
	s.Advance()
	inner.Done(syntax.KindIdentifier)
	s.Advance()

	m.Rollback()
	assert.Equal(t, pos, s.Position())
	assert.Len(t, s.events, events)
	assert.Equal(t, "b", s.Text())

	// markers taken after the rollback point are stale
	assert.False(t, inner.Done(syntax.KindIdentifier).Valid())
}

func TestMarker_DropKeepsTokens(t *testing.T) {
	src := "a b"
	s := NewStream(src, lexer.Tokenize(src))

	file := s.Mark()
	m := s.Mark()
	s.Advance()
	m.Drop()
	s.Advance()
	file.Done(syntax.KindFile)

	root := s.build()
	assert.Equal(t, "(File a b)", syntax.Sexp(root))
}

func TestCompleted_Precede(t *testing.T) {
	src := "a + b"
	s := NewStream(src, lexer.Tokenize(src))

	file := s.Mark()
	lhs := s.Mark()
	s.Advance()
	c := lhs.Done(syntax.KindIdentifier)

	m := c.Precede()
	s.Advance()
	r := s.Mark()
	s.Advance()
	r.Done(syntax.KindIdentifier)
	m.Done(syntax.KindBinaryOp)
	file.Done(syntax.KindFile)

	root := s.build()
	assert.Equal(t, "(File (BinaryOp (Identifier a) + (Identifier b)))", syntax.Sexp(root))
	assert.Equal(t, 0, root.Nodes()[0].Start)
}

func TestScanners_ClassifyMap(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected mapShape
	}{
		{name: "update", body: "a | b: 1}", expected: mapUpdate},
		{name: "update with assoc", body: "a | b => 1}", expected: mapUpdate},
		{name: "assoc", body: "a => 1, b => 2}", expected: mapAssoc},
		{name: "keyword", body: "a: 1, b: 2}", expected: mapKeyword},
		{name: "pipe nested in brackets", body: "a: [h | t]}", expected: mapKeyword},
		{name: "pipe after assoc", body: "a => b | c}", expected: mapAssoc},
		{name: "unterminated", body: "a => 1", expected: mapAssoc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser(tt.body)
			assert.Equal(t, tt.expected, p.classifyMap())
		})
	}
}

func TestScanners_ClauseHead(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "simple", input: "x -> x", expected: true},
		{name: "guarded", input: "x when x > 0 -> x", expected: true},
		{name: "multi line head", input: "a,\n b -> a", expected: true},
		{name: "arrow on next line", input: "a\n -> a", expected: false},
		{name: "arrow inside fn", input: "fn x -> x end", expected: false},
		{name: "arrow inside brackets", input: "[x -> x]", expected: false},
		{name: "stops at do", input: "foo do x -> x end", expected: false},
		{name: "stops at end", input: "x end -> y", expected: false},
		{name: "stops at semicolon", input: "x; y -> z", expected: false},
		{name: "empty head", input: "-> x", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser(tt.input)
			assert.Equal(t, tt.expected, p.atClauseHead())
		})
	}
}

func TestScanners_QuotedKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "keyword", input: `"a b": 1`, expected: true},
		{name: "plain string", input: `"a b" <> c`, expected: false},
		{name: "interpolated keyword", input: `"a #{"b"}": 1`, expected: true},
		{name: "charlist keyword", input: `'a': 1`, expected: true},
		{name: "unterminated", input: `"a`, expected: false},
		{name: "not a string", input: `a: 1`, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser(tt.input)
			assert.Equal(t, tt.expected, p.atQuotedKey())
		})
	}
}

func TestScanners_DoNotMoveTheStream(t *testing.T) {
	inputs := []string{
		"%{a | b: 1}",
		"x when y -> z",
		`"k": v`,
		"fn -> end",
		"",
	}

	for _, src := range inputs {
		t.Run(src, func(t *testing.T) {
			p := newTestParser(src)
			if !p.s.EOF() {
				p.bump()
			}
			pos, next, events := p.s.Position(), p.s.next, len(p.s.events)

			p.classifyMap()
			p.atClauseHead()
			p.atQuotedKey()
			p.atKeywordKey()
			p.atBoundary()
			p.atNoParensArgs()

			require.Equal(t, pos, p.s.Position())
			require.Equal(t, next, p.s.next)
			require.Equal(t, events, len(p.s.events))
		})
	}
}
