package lexer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/exsyntax/pkg/lexer"
	"github.com/walteh/exsyntax/pkg/token"
)

func significant(src string) []token.Kind {
	var out []token.Kind
	for _, t := range lexer.Tokenize(src) {
		if !t.Kind.IsTrivia() {
			out = append(out, t.Kind)
		}
	}
	return out
}

func texts(src string) []string {
	var out []string
	for _, t := range lexer.Tokenize(src) {
		out = append(out, t.Text(src))
	}
	return out
}

func TestTokenize_Kinds(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []token.Kind
	}{
		{
			name:     "match",
			input:    "foo = 1",
			expected: []token.Kind{token.Identifier, token.Match, token.Integer},
		},
		{
			name:     "numbers",
			input:    "1_000 0x1F 1.5e-3 0b101 0o17 3.14",
			expected: []token.Kind{token.Integer, token.Integer, token.Float, token.Integer, token.Integer, token.Float},
		},
		{
			name:     "range is not a float",
			input:    "1..10//2",
			expected: []token.Kind{token.Integer, token.Range, token.Integer, token.StepOp, token.Integer},
		},
		{
			name:     "keyword identifier",
			input:    "[foo: 1, do: 2]",
			expected: []token.Kind{token.LBracket, token.KwIdentifier, token.Integer, token.Comma, token.KwIdentifier, token.Integer, token.RBracket},
		},
		{
			name:     "type operator is not a keyword",
			input:    "foo :: bar",
			expected: []token.Kind{token.Identifier, token.Type, token.Identifier},
		},
		{
			name:     "atoms",
			input:    `:ok :foo? :+ :"quoted" :%{} :user@host`,
			expected: []token.Kind{token.Atom, token.Atom, token.Atom, token.QuotedAtom, token.StringPart, token.StringEnd, token.Atom, token.Atom},
		},
		{
			name:     "keywords",
			input:    "fn x when x in y -> true and not false or nil end",
			expected: []token.Kind{token.Fn, token.Identifier, token.When, token.Identifier, token.In, token.Identifier, token.Arrow, token.True, token.And, token.Not, token.False, token.Or, token.Nil, token.End},
		},
		{
			name:     "keyword after dot is a name",
			input:    "x.do",
			expected: []token.Kind{token.Identifier, token.Dot, token.Identifier},
		},
		{
			name:     "aliases",
			input:    "Foo.Bar.baz()",
			expected: []token.Kind{token.Alias, token.Dot, token.Alias, token.Dot, token.Identifier, token.LParen, token.RParen},
		},
		{
			name:     "identifier suffixes",
			input:    "valid? save! a!=b",
			expected: []token.Kind{token.Identifier, token.Identifier, token.Identifier, token.NotEqual, token.Identifier},
		},
		{
			name:     "longest operator wins",
			input:    "a ||| b <<< c <~> d |> e === f ... g",
			expected: []token.Kind{token.Identifier, token.OrOrOr, token.Identifier, token.ShiftLeft, token.Identifier, token.BothArrowTilde, token.Identifier, token.PipeRight, token.Identifier, token.StrictEqual, token.Identifier, token.Ellipsis, token.Identifier},
		},
		{
			name:     "containers",
			input:    "<<1>> %{} %Foo{} {}",
			expected: []token.Kind{token.BinaryOpen, token.Integer, token.BinaryClose, token.PercentBrace, token.RBrace, token.Percent, token.Alias, token.LBrace, token.RBrace, token.LBrace, token.RBrace},
		},
		{
			name:     "defaults and step",
			input:    `a \\ b // c`,
			expected: []token.Kind{token.Identifier, token.Default, token.Identifier, token.StepOp, token.Identifier},
		},
		{
			name:     "chars",
			input:    `?a ?\n ?\\`,
			expected: []token.Kind{token.Char, token.Char, token.Char},
		},
		{
			name:     "string with interpolation",
			input:    `"a #{b} c"`,
			expected: []token.Kind{token.String, token.StringPart, token.InterpolationStart, token.Identifier, token.InterpolationEnd, token.StringPart, token.StringEnd},
		},
		{
			name:  "nested interpolation",
			input: `"a #{"b #{c}"}"`,
			expected: []token.Kind{
				token.String, token.StringPart, token.InterpolationStart,
				token.String, token.StringPart, token.InterpolationStart, token.Identifier, token.InterpolationEnd, token.StringEnd,
				token.InterpolationEnd, token.StringEnd,
			},
		},
		{
			name:  "braces inside interpolation",
			input: `"#{%{a: {1}}}"`,
			expected: []token.Kind{
				token.String, token.InterpolationStart,
				token.PercentBrace, token.KwIdentifier, token.LBrace, token.Integer, token.RBrace, token.RBrace,
				token.InterpolationEnd, token.StringEnd,
			},
		},
		{
			name:     "escapes",
			input:    `"a\nb\xZZ"`,
			expected: []token.Kind{token.String, token.StringPart, token.Escape, token.StringPart, token.InvalidEscape, token.StringPart, token.StringEnd},
		},
		{
			name:     "quoted keyword key",
			input:    `["key": 1]`,
			expected: []token.Kind{token.LBracket, token.String, token.StringPart, token.KeywordStringEnd, token.Integer, token.RBracket},
		},
		{
			name:     "charlist",
			input:    `'abc'`,
			expected: []token.Kind{token.Charlist, token.StringPart, token.StringEnd},
		},
		{
			name:     "sigil with modifiers",
			input:    `~r/a+/iu`,
			expected: []token.Kind{token.Sigil, token.StringPart, token.StringEnd},
		},
		{
			name:     "uppercase sigil has no interpolation",
			input:    `~S(a #{b})`,
			expected: []token.Kind{token.Sigil, token.StringPart, token.StringEnd},
		},
		{
			name:     "heredoc",
			input:    "\"\"\"\n  hello \"quoted\"\n  \"\"\"",
			expected: []token.Kind{token.Heredoc, token.StringPart, token.StringEnd},
		},
		{
			name:     "unterminated string runs to end",
			input:    `"abc`,
			expected: []token.Kind{token.String, token.StringPart},
		},
		{
			name:     "bad character",
			input:    "1 ` 2",
			expected: []token.Kind{token.Integer, token.BadCharacter, token.Integer},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, significant(tt.input))
		})
	}
}

func TestTokenize_Trivia(t *testing.T) {
	src := "foo # note\r\n\tbar\n"
	toks := lexer.Tokenize(src)

	kinds := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}

	assert.Equal(t, []token.Kind{
		token.Identifier, token.Whitespace, token.Comment, token.EOL, token.Whitespace, token.Identifier, token.EOL,
	}, kinds)
	assert.Equal(t, []string{"foo", " ", "# note", "\r\n", "\t", "bar", "\n"}, texts(src))
}

func TestTokenize_Texts(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "heredoc closer keeps its indentation",
			input:    "\"\"\"\n  a\n  \"\"\"",
			expected: []string{`"""`, "\n  a\n", `  """`},
		},
		{
			name:     "sigil closer keeps modifiers",
			input:    "~r/x/i",
			expected: []string{"~r/", "x", "/i"},
		},
		{
			name:     "keyword closer keeps the colon",
			input:    `"a b": 1`,
			expected: []string{`"`, "a b", `":`, " ", "1"},
		},
		{
			name:     "quoted atom",
			input:    `:"a b"`,
			expected: []string{`:"`, "a b", `"`},
		},
		{
			name:     "multibyte bad character is one token",
			input:    "€",
			expected: []string{"€"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, texts(tt.input))
		})
	}
}

func TestTokenize_Escapes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		kind     token.Kind
		expected string
	}{
		{name: "newline", input: `"\n"`, kind: token.Escape, expected: `\n`},
		{name: "two hex digits", input: `"\x4F"`, kind: token.Escape, expected: `\x4F`},
		{name: "hex without digits", input: `"\xZZ"`, kind: token.InvalidEscape, expected: `\x`},
		{name: "four hex digits", input: `"\u00e9"`, kind: token.Escape, expected: `\u00e9`},
		{name: "short unicode", input: `"\u12"`, kind: token.InvalidEscape, expected: `\u`},
		{name: "braced unicode", input: `"\u{1F600}"`, kind: token.Escape, expected: `\u{1F600}`},
		{name: "empty braced unicode", input: `"\u{}"`, kind: token.InvalidEscape, expected: `\u`},
		{name: "unclosed braced unicode", input: `"\u{12"`, kind: token.InvalidEscape, expected: `\u`},
		{name: "escaped quote", input: `"\""`, kind: token.Escape, expected: `\"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := lexer.Tokenize(tt.input)
			require.Greater(t, len(toks), 1)

			esc := toks[1]
			assert.Equal(t, tt.kind, esc.Kind)
			assert.Equal(t, tt.expected, esc.Text(tt.input))
			assert.Equal(t, token.StringEnd, toks[len(toks)-1].Kind)
		})
	}
}

var coverageInputs = []string{
	"",
	"defmodule Foo do\n  def bar(x), do: x + 1\nend\n",
	`"unterminated #{interp`,
	`"#{"#{"#{deep}"}"}"`,
	"~w[a b c]a ~S\"\"\"\nraw\n\"\"\"",
	"?",
	"\\",
	"\x00\xff\xfe",
	"%{a | b: 1} <<x::8>> &(&1 + 1) @attr",
	"'''\nheredoc charlist\n'''",
	"a\r\rb\r\n",
	"\"\\",
	"#{}}}",
}

func TestTokenize_Coverage(t *testing.T) {
	for _, src := range coverageInputs {
		t.Run(strings.ReplaceAll(src, "\n", `\n`), func(t *testing.T) {
			assertCovers(t, src, lexer.Tokenize(src))
		})
	}
}

func assertCovers(t testing.TB, src string, toks []token.Token) {
	t.Helper()

	pos := 0
	var sb strings.Builder
	for _, tok := range toks {
		require.Equal(t, pos, tok.Start, "gap before %s", tok)
		require.Greater(t, tok.End, tok.Start, "empty token %s", tok)
		sb.WriteString(tok.Text(src))
		pos = tok.End
	}
	require.Equal(t, len(src), pos)
	require.Equal(t, src, sb.String())
}

func FuzzTokenize(f *testing.F) {
	for _, src := range coverageInputs {
		f.Add(src)
	}
	f.Fuzz(func(t *testing.T, src string) {
		assertCovers(t, src, lexer.Tokenize(src))
	})
}
