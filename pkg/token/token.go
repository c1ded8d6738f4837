// Package token defines the closed set of lexical kinds produced by the Elixir
// tokenizer and the Token value that carries them.
package token

import "fmt"

// Kind identifies the lexical class of a token.
type Kind uint8

const (
	Invalid Kind = iota

	// trivia
	Whitespace
	Comment
	EOL

	// literals
	Integer
	Float
	Char

	// string family
	String          // "
	Heredoc         // """
	Charlist        // '
	CharlistHeredoc // '''
	Sigil           // ~r/ (letter plus opening delimiter)
	QuotedAtom      // :" or :'
	StringPart
	Escape
	InvalidEscape
	InterpolationStart
	InterpolationEnd
	StringEnd        // closing delimiter, sigil modifiers included
	KeywordStringEnd // closing delimiter followed by ':'

	Atom

	// names
	Identifier
	KwIdentifier
	Alias

	// keywords
	Do
	End
	Fn
	When
	In
	Not
	And
	Or
	True
	False
	Nil
	After
	Else
	Catch
	Rescue

	// operators
	Match                 // =
	Equal                 // ==
	NotEqual              // !=
	StrictEqual           // ===
	StrictNotEqual        // !==
	MatchRegex            // =~
	Less                  // <
	Greater               // >
	LessEqual             // <=
	GreaterEqual          // >=
	AndAnd                // &&
	OrOr                  // ||
	AndAndAnd             // &&&
	OrOrOr                // |||
	Bang                  // !
	Caret                 // ^
	CaretCaretCaret       // ^^^
	TildeTildeTilde       // ~~~
	Plus                  // +
	Minus                 // -
	Star                  // *
	Slash                 // /
	Power                 // **
	PlusPlus              // ++
	MinusMinus            // --
	PlusPlusPlus          // +++
	MinusMinusMinus       // ---
	Concat                // <>
	Range                 // ..
	Ellipsis              // ...
	StepOp                // //
	Pipe                  // |
	PipeRight             // |>
	ShiftLeft             // <<<
	ShiftRight            // >>>
	LeftDoubleArrowTilde  // <<~
	RightDoubleArrowTilde // ~>>
	LeftArrowTilde        // <~
	RightArrowTilde       // ~>
	BothArrowTilde        // <~>
	LeftPipeRight         // <|>
	Type                  // ::
	Default               // \\
	Arrow                 // ->
	LeftArrow             // <-
	FatArrow              // =>
	Ampersand             // &
	At                    // @

	// delimiters
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	BinaryOpen  // <<
	BinaryClose // >>

	// punctuation
	Dot
	Comma
	Colon
	Semicolon
	Percent
	PercentBrace // %{

	BadCharacter

	kindCount
)

// Token is a half-open byte range [Start, End) of the source tagged with a Kind.
type Token struct {
	Kind  Kind
	Start int
	End   int
}

// Text returns the slice of src covered by the token.
func (t Token) Text(src string) string {
	if t.Start < 0 || t.End > len(src) || t.Start > t.End {
		return ""
	}
	return src[t.Start:t.End]
}

// Len is the byte length of the token.
func (t Token) Len() int {
	return t.End - t.Start
}

func (t Token) String() string {
	return fmt.Sprintf("%s@%d:%d", t.Kind, t.Start, t.End)
}

// IsTrivia reports whether the kind carries no syntax (whitespace, comments, newlines).
func (k Kind) IsTrivia() bool {
	return k == Whitespace || k == Comment || k == EOL
}

// IsKeyword reports whether the kind is one of the bare-word keywords.
func (k Kind) IsKeyword() bool {
	return k >= Do && k <= Rescue
}

// IsOperator reports whether the kind is an operator token.
func (k Kind) IsOperator() bool {
	return k >= Match && k <= At
}

// IsStringOpener reports whether the kind opens a quoted literal.
func (k Kind) IsStringOpener() bool {
	return k >= String && k <= QuotedAtom
}

// IsStringContent reports whether the kind only appears between a quoted
// literal's opener and closer, outside interpolations.
func (k Kind) IsStringContent() bool {
	return k == StringPart || k == Escape || k == InvalidEscape
}

// IsStringCloser reports whether the kind closes a quoted literal.
func (k Kind) IsStringCloser() bool {
	return k == StringEnd || k == KeywordStringEnd
}

// IsOpener reports whether the kind opens a bracketed container.
func (k Kind) IsOpener() bool {
	switch k {
	case LParen, LBracket, LBrace, PercentBrace, BinaryOpen:
		return true
	}
	return false
}

// IsCloser reports whether the kind closes a bracketed container.
func (k Kind) IsCloser() bool {
	switch k {
	case RParen, RBracket, RBrace, BinaryClose:
		return true
	}
	return false
}

// Closer returns the closing kind that pairs with an opener, or Invalid.
func (k Kind) Closer() Kind {
	switch k {
	case LParen:
		return RParen
	case LBracket:
		return RBracket
	case LBrace, PercentBrace:
		return RBrace
	case BinaryOpen:
		return BinaryClose
	}
	return Invalid
}
