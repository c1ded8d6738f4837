package parser

import (
	"github.com/walteh/exsyntax/pkg/token"
)

// Binding powers, lowest first. Right-associative operators parse their
// right operand at the same power; left-associative ones at power+1.
const (
	bpArrowLeft = 40 // <- \\
	bpWhen      = 50
	bpType      = 60 // ::
	bpPipe      = 70 // |
	bpAssoc     = 80 // =>
	bpCapture   = 90 // &
	bpMatch     = 100
	bpOr        = 120
	bpAnd       = 130
	bpCompare   = 140
	bpRelation  = 150
	bpArrow     = 160 // |> <<< >>> ~> ...
	bpIn        = 170
	bpXor       = 180 // ^^^
	bpStep      = 190 // //
	bpConcat    = 200 // ++ -- <> ..
	bpAdd       = 210
	bpMul       = 220
	bpPower     = 230
	bpUnary     = 300
	bpAt        = 320
)

type infix struct {
	lbp, rbp int
	width    int // significant tokens making up the operator
	op       token.Kind
}

func left(bp int) (int, int)  { return bp, bp + 1 }
func right(bp int) (int, int) { return bp, bp }

var infixTable = func() map[token.Kind][2]int {
	t := map[token.Kind][2]int{}
	set := func(assoc func(int) (int, int), bp int, kinds ...token.Kind) {
		l, r := assoc(bp)
		for _, k := range kinds {
			t[k] = [2]int{l, r}
		}
	}
	set(left, bpArrowLeft, token.LeftArrow, token.Default)
	set(right, bpWhen, token.When)
	set(right, bpType, token.Type)
	set(right, bpPipe, token.Pipe)
	set(right, bpMatch, token.Match)
	set(left, bpOr, token.OrOr, token.OrOrOr, token.Or)
	set(left, bpAnd, token.AndAnd, token.AndAndAnd, token.And)
	set(left, bpCompare, token.Equal, token.NotEqual, token.MatchRegex, token.StrictEqual, token.StrictNotEqual)
	set(left, bpRelation, token.Less, token.Greater, token.LessEqual, token.GreaterEqual)
	set(left, bpArrow, token.PipeRight, token.ShiftLeft, token.ShiftRight, token.LeftDoubleArrowTilde,
		token.RightDoubleArrowTilde, token.LeftArrowTilde, token.RightArrowTilde, token.BothArrowTilde,
		token.LeftPipeRight)
	set(left, bpIn, token.In)
	set(left, bpXor, token.CaretCaretCaret)
	set(right, bpStep, token.StepOp)
	set(right, bpConcat, token.PlusPlus, token.MinusMinus, token.PlusPlusPlus, token.MinusMinusMinus,
		token.Concat, token.Range)
	set(left, bpAdd, token.Plus, token.Minus)
	set(left, bpMul, token.Star, token.Slash)
	set(left, bpPower, token.Power)
	return t
}()

// leadingOperators may begin a line and still continue the expression on
// the line above.
var leadingOperators = map[token.Kind]bool{
	token.PipeRight:             true,
	token.ShiftLeft:             true,
	token.ShiftRight:            true,
	token.LeftDoubleArrowTilde:  true,
	token.RightDoubleArrowTilde: true,
	token.LeftArrowTilde:        true,
	token.RightArrowTilde:       true,
	token.BothArrowTilde:        true,
	token.LeftPipeRight:         true,
	token.And:                   true,
	token.Or:                    true,
	token.AndAnd:                true,
	token.OrOr:                  true,
	token.AndAndAnd:             true,
	token.OrOrOr:                true,
	token.When:                  true,
	token.Concat:                true,
	token.PlusPlus:              true,
	token.MinusMinus:            true,
	token.Type:                  true,
	token.Pipe:                  true,
}

// infixAt returns the binary operator at the cursor, if any. "not in" is
// the one operator spelled with two tokens.
func (p *Parser) infixAt() (infix, bool) {
	k := p.s.Kind()
	if k == token.Not && p.s.NthKind(1) == token.In {
		if p.s.NewlineBefore() {
			return infix{}, false
		}
		return infix{lbp: bpIn, rbp: bpIn + 1, width: 2, op: token.In}, true
	}
	bp, ok := infixTable[k]
	if !ok {
		return infix{}, false
	}
	if p.s.NewlineBefore() && !leadingOperators[k] {
		return infix{}, false
	}
	return infix{lbp: bp[0], rbp: bp[1], width: 1, op: k}, true
}

func isUnary(k token.Kind) bool {
	switch k {
	case token.Plus, token.Minus, token.Bang, token.Caret, token.Not, token.TildeTildeTilde:
		return true
	}
	return false
}

// canStartPrimary reports whether k begins an operand without a prefix operator.
func canStartPrimary(k token.Kind) bool {
	switch k {
	case token.Integer, token.Float, token.Char, token.True, token.False, token.Nil,
		token.Atom, token.Identifier, token.Alias, token.Fn, token.Ellipsis,
		token.LParen, token.LBracket, token.LBrace, token.PercentBrace, token.Percent, token.BinaryOpen:
		return true
	}
	return k.IsStringOpener()
}

// canStartExpr reports whether k begins an expression.
func canStartExpr(k token.Kind) bool {
	return canStartPrimary(k) || isUnary(k) || k == token.Ampersand || k == token.At
}

// isScalar reports whether k is a complete one-token operand.
func isScalar(k token.Kind) bool {
	switch k {
	case token.Integer, token.Float, token.Char, token.True, token.False, token.Nil, token.Atom:
		return true
	}
	return false
}
