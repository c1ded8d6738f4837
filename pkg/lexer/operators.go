package lexer

import (
	"strings"

	"github.com/walteh/exsyntax/pkg/token"
)

type operator struct {
	text string
	kind token.Kind
}

// operators is ordered longest first so the first prefix match is the
// longest one.
var operators = []operator{
	{"===", token.StrictEqual},
	{"!==", token.StrictNotEqual},
	{"...", token.Ellipsis},
	{"<<<", token.ShiftLeft},
	{">>>", token.ShiftRight},
	{"<<~", token.LeftDoubleArrowTilde},
	{"~>>", token.RightDoubleArrowTilde},
	{"<~>", token.BothArrowTilde},
	{"<|>", token.LeftPipeRight},
	{"|||", token.OrOrOr},
	{"&&&", token.AndAndAnd},
	{"^^^", token.CaretCaretCaret},
	{"~~~", token.TildeTildeTilde},
	{"+++", token.PlusPlusPlus},
	{"---", token.MinusMinusMinus},

	{"==", token.Equal},
	{"!=", token.NotEqual},
	{"=~", token.MatchRegex},
	{"<=", token.LessEqual},
	{">=", token.GreaterEqual},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"|>", token.PipeRight},
	{"++", token.PlusPlus},
	{"--", token.MinusMinus},
	{"<>", token.Concat},
	{"..", token.Range},
	{"**", token.Power},
	{"->", token.Arrow},
	{"<-", token.LeftArrow},
	{"=>", token.FatArrow},
	{"::", token.Type},
	{`\\`, token.Default},
	{"//", token.StepOp},
	{"<~", token.LeftArrowTilde},
	{"~>", token.RightArrowTilde},
	{"<<", token.BinaryOpen},
	{">>", token.BinaryClose},
	{"%{", token.PercentBrace},

	{"=", token.Match},
	{"<", token.Less},
	{">", token.Greater},
	{"+", token.Plus},
	{"-", token.Minus},
	{"*", token.Star},
	{"/", token.Slash},
	{"|", token.Pipe},
	{"!", token.Bang},
	{"^", token.Caret},
	{"&", token.Ampersand},
	{"@", token.At},
	{".", token.Dot},
	{",", token.Comma},
	{":", token.Colon},
	{";", token.Semicolon},
	{"%", token.Percent},
	{"(", token.LParen},
	{")", token.RParen},
	{"[", token.LBracket},
	{"]", token.RBracket},
	{"{", token.LBrace},
	{"}", token.RBrace},
}

// matchOperator returns the longest operator, delimiter or punctuation token
// that prefixes s, and its byte length (0 when none matches).
func matchOperator(s string) (token.Kind, int) {
	for _, op := range operators {
		if strings.HasPrefix(s, op.text) {
			return op.kind, len(op.text)
		}
	}
	return token.Invalid, 0
}
