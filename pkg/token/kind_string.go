package token

import "fmt"

var kindNames = [kindCount]string{
	Invalid:               "Invalid",
	Whitespace:            "Whitespace",
	Comment:               "Comment",
	EOL:                   "EOL",
	Integer:               "Integer",
	Float:                 "Float",
	Char:                  "Char",
	String:                "String",
	Heredoc:               "Heredoc",
	Charlist:              "Charlist",
	CharlistHeredoc:       "CharlistHeredoc",
	Sigil:                 "Sigil",
	QuotedAtom:            "QuotedAtom",
	StringPart:            "StringPart",
	Escape:                "Escape",
	InvalidEscape:         "InvalidEscape",
	InterpolationStart:    "InterpolationStart",
	InterpolationEnd:      "InterpolationEnd",
	StringEnd:             "StringEnd",
	KeywordStringEnd:      "KeywordStringEnd",
	Atom:                  "Atom",
	Identifier:            "Identifier",
	KwIdentifier:          "KwIdentifier",
	Alias:                 "Alias",
	Do:                    "Do",
	End:                   "End",
	Fn:                    "Fn",
	When:                  "When",
	In:                    "In",
	Not:                   "Not",
	And:                   "And",
	Or:                    "Or",
	True:                  "True",
	False:                 "False",
	Nil:                   "Nil",
	After:                 "After",
	Else:                  "Else",
	Catch:                 "Catch",
	Rescue:                "Rescue",
	Match:                 "Match",
	Equal:                 "Equal",
	NotEqual:              "NotEqual",
	StrictEqual:           "StrictEqual",
	StrictNotEqual:        "StrictNotEqual",
	MatchRegex:            "MatchRegex",
	Less:                  "Less",
	Greater:               "Greater",
	LessEqual:             "LessEqual",
	GreaterEqual:          "GreaterEqual",
	AndAnd:                "AndAnd",
	OrOr:                  "OrOr",
	AndAndAnd:             "AndAndAnd",
	OrOrOr:                "OrOrOr",
	Bang:                  "Bang",
	Caret:                 "Caret",
	CaretCaretCaret:       "CaretCaretCaret",
	TildeTildeTilde:       "TildeTildeTilde",
	Plus:                  "Plus",
	Minus:                 "Minus",
	Star:                  "Star",
	Slash:                 "Slash",
	Power:                 "Power",
	PlusPlus:              "PlusPlus",
	MinusMinus:            "MinusMinus",
	PlusPlusPlus:          "PlusPlusPlus",
	MinusMinusMinus:       "MinusMinusMinus",
	Concat:                "Concat",
	Range:                 "Range",
	Ellipsis:              "Ellipsis",
	StepOp:                "StepOp",
	Pipe:                  "Pipe",
	PipeRight:             "PipeRight",
	ShiftLeft:             "ShiftLeft",
	ShiftRight:            "ShiftRight",
	LeftDoubleArrowTilde:  "LeftDoubleArrowTilde",
	RightDoubleArrowTilde: "RightDoubleArrowTilde",
	LeftArrowTilde:        "LeftArrowTilde",
	RightArrowTilde:       "RightArrowTilde",
	BothArrowTilde:        "BothArrowTilde",
	LeftPipeRight:         "LeftPipeRight",
	Type:                  "Type",
	Default:               "Default",
	Arrow:                 "Arrow",
	LeftArrow:             "LeftArrow",
	FatArrow:              "FatArrow",
	Ampersand:             "Ampersand",
	At:                    "At",
	LParen:                "LParen",
	RParen:                "RParen",
	LBracket:              "LBracket",
	RBracket:              "RBracket",
	LBrace:                "LBrace",
	RBrace:                "RBrace",
	BinaryOpen:            "BinaryOpen",
	BinaryClose:           "BinaryClose",
	Dot:                   "Dot",
	Comma:                 "Comma",
	Colon:                 "Colon",
	Semicolon:             "Semicolon",
	Percent:               "Percent",
	PercentBrace:          "PercentBrace",
	BadCharacter:          "BadCharacter",
}

func (k Kind) String() string {
	if k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Keywords maps the bare-word keyword spellings to their kinds.
var Keywords = map[string]Kind{
	"do":     Do,
	"end":    End,
	"fn":     Fn,
	"when":   When,
	"in":     In,
	"not":    Not,
	"and":    And,
	"or":     Or,
	"true":   True,
	"false":  False,
	"nil":    Nil,
	"after":  After,
	"else":   Else,
	"catch":  Catch,
	"rescue": Rescue,
}
