package syntax

import "fmt"

// NodeKind is the closed set of syntactic forms a Node can take.
type NodeKind uint8

const (
	KindInvalid NodeKind = iota

	KindFile
	KindError

	// literals
	KindLiteral
	KindAtom
	KindString
	KindCharlist
	KindSigil
	KindInterpolation

	// names
	KindIdentifier
	KindAlias
	KindMultiAlias

	// containers
	KindList
	KindTuple
	KindMap
	KindMapUpdate
	KindStruct
	KindBitstring
	KindKeywordList
	KindKeywordPair
	KindAssocPair
	KindParens

	// operators
	KindUnaryOp
	KindBinaryOp
	KindRange
	KindStepRange
	KindCapture
	KindAttribute

	// calls and access
	KindCall
	KindNoParensCall
	KindRemoteCall
	KindAnonCall
	KindDotAccess
	KindAccess
	KindArguments

	// blocks
	KindDoBlock
	KindBlockSection
	KindBlock
	KindFn
	KindStabClause

	// special forms
	KindDefModule
	KindDef
	KindDefMacro
	KindDefGuard
	KindDefStruct
	KindDefException
	KindDefProtocol
	KindDefImpl
	KindImport
	KindRequire
	KindUse
	KindAliasForm
	KindFor
	KindQuote
	KindUnquote
	KindUnquoteSplicing
	KindCase
	KindCond
	KindWith
	KindTry
	KindReceive
	KindRaise
	KindThrow
	KindSend
	KindSuper

	nodeKindCount
)

var nodeKindNames = [nodeKindCount]string{
	KindInvalid:         "Invalid",
	KindFile:            "File",
	KindError:           "Error",
	KindLiteral:         "Literal",
	KindAtom:            "Atom",
	KindString:          "String",
	KindCharlist:        "Charlist",
	KindSigil:           "Sigil",
	KindInterpolation:   "Interpolation",
	KindIdentifier:      "Identifier",
	KindAlias:           "Alias",
	KindMultiAlias:      "MultiAlias",
	KindList:            "List",
	KindTuple:           "Tuple",
	KindMap:             "Map",
	KindMapUpdate:       "MapUpdate",
	KindStruct:          "Struct",
	KindBitstring:       "Bitstring",
	KindKeywordList:     "KeywordList",
	KindKeywordPair:     "KeywordPair",
	KindAssocPair:       "AssocPair",
	KindParens:          "Parens",
	KindUnaryOp:         "UnaryOp",
	KindBinaryOp:        "BinaryOp",
	KindRange:           "Range",
	KindStepRange:       "StepRange",
	KindCapture:         "Capture",
	KindAttribute:       "Attribute",
	KindCall:            "Call",
	KindNoParensCall:    "NoParensCall",
	KindRemoteCall:      "RemoteCall",
	KindAnonCall:        "AnonCall",
	KindDotAccess:       "DotAccess",
	KindAccess:          "Access",
	KindArguments:       "Arguments",
	KindDoBlock:         "DoBlock",
	KindBlockSection:    "BlockSection",
	KindBlock:           "Block",
	KindFn:              "Fn",
	KindStabClause:      "StabClause",
	KindDefModule:       "DefModule",
	KindDef:             "Def",
	KindDefMacro:        "DefMacro",
	KindDefGuard:        "DefGuard",
	KindDefStruct:       "DefStruct",
	KindDefException:    "DefException",
	KindDefProtocol:     "DefProtocol",
	KindDefImpl:         "DefImpl",
	KindImport:          "Import",
	KindRequire:         "Require",
	KindUse:             "Use",
	KindAliasForm:       "AliasForm",
	KindFor:             "For",
	KindQuote:           "Quote",
	KindUnquote:         "Unquote",
	KindUnquoteSplicing: "UnquoteSplicing",
	KindCase:            "Case",
	KindCond:            "Cond",
	KindWith:            "With",
	KindTry:             "Try",
	KindReceive:         "Receive",
	KindRaise:           "Raise",
	KindThrow:           "Throw",
	KindSend:            "Send",
	KindSuper:           "Super",
}

func (k NodeKind) String() string {
	if k < nodeKindCount && nodeKindNames[k] != "" {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", uint8(k))
}

// SpecialForms maps the identifier spellings that introduce special forms to
// the node kind their call takes. Elixir has no reserved words, so these are
// only recognized when the identifier is used in call position.
var SpecialForms = map[string]NodeKind{
	"defmodule":        KindDefModule,
	"def":              KindDef,
	"defp":             KindDef,
	"defmacro":         KindDefMacro,
	"defmacrop":        KindDefMacro,
	"defguard":         KindDefGuard,
	"defguardp":        KindDefGuard,
	"defstruct":        KindDefStruct,
	"defexception":     KindDefException,
	"defprotocol":      KindDefProtocol,
	"defimpl":          KindDefImpl,
	"import":           KindImport,
	"require":          KindRequire,
	"use":              KindUse,
	"alias":            KindAliasForm,
	"for":              KindFor,
	"quote":            KindQuote,
	"unquote":          KindUnquote,
	"unquote_splicing": KindUnquoteSplicing,
	"case":             KindCase,
	"cond":             KindCond,
	"with":             KindWith,
	"try":              KindTry,
	"receive":          KindReceive,
	"raise":            KindRaise,
	"throw":            KindThrow,
	"send":             KindSend,
	"super":            KindSuper,
}

// IsSpecialForm reports whether k is one of the special-form kinds.
func (k NodeKind) IsSpecialForm() bool {
	return k >= KindDefModule && k <= KindSuper
}

// IsCall reports whether nodes of kind k are call-like: they may own
// arguments and a do-block.
func (k NodeKind) IsCall() bool {
	switch k {
	case KindCall, KindNoParensCall, KindRemoteCall, KindAnonCall:
		return true
	}
	return k.IsSpecialForm()
}

// IsContainer reports whether k is a bracketed literal container.
func (k NodeKind) IsContainer() bool {
	switch k {
	case KindList, KindTuple, KindMap, KindStruct, KindBitstring:
		return true
	}
	return false
}
