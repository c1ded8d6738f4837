// Package diagnostic turns the anomalies recorded in a syntax tree into
// positioned diagnostics.
package diagnostic

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/exsyntax/pkg/parser"
	"github.com/walteh/exsyntax/pkg/position"
	"github.com/walteh/exsyntax/pkg/syntax"
	"github.com/walteh/exsyntax/pkg/token"
)

type Severity string

const (
	SeverityError       Severity = "error"
	SeverityWarning     Severity = "warning"
	SeverityInformation Severity = "info"
)

// Code names the class of anomaly a diagnostic reports.
type Code string

const (
	CodeSyntax        Code = "syntax-error"
	CodeUnterminated  Code = "unterminated"
	CodeBadCharacter  Code = "bad-character"
	CodeInvalidEscape Code = "invalid-escape"
)

var messages = map[Code]string{
	CodeSyntax:        "syntax error",
	CodeUnterminated:  "unterminated construct",
	CodeBadCharacter:  "unexpected character",
	CodeInvalidEscape: "invalid escape sequence",
}

// Diagnostic represents a single diagnostic message
type Diagnostic struct {
	Message  string
	Code     Code
	Location position.RawPosition
	Range    position.Range
	Severity Severity
}

// FromTree collects one diagnostic per Error node, bad character, and
// invalid escape in tree, ordered by offset. Nested Error nodes each report.
func FromTree(tree *syntax.Tree) []*Diagnostic {
	ix := position.NewIndex(tree.Source)
	var out []*Diagnostic

	lastEnd := 0
	for _, t := range tree.Tokens {
		if !t.Kind.IsTrivia() {
			lastEnd = t.End
		}
	}

	add := func(code Code, sev Severity, start, end int) {
		loc := position.NewBasicPosition(tree.Source[start:end], start)
		out = append(out, &Diagnostic{
			Message:  messages[code],
			Code:     code,
			Location: loc,
			Range:    ix.GetRange(loc),
			Severity: sev,
		})
	}

	syntax.Walk(tree.Root, func(e syntax.Element) bool {
		switch e := e.(type) {
		case *syntax.Node:
			if e.Kind == syntax.KindError {
				add(errorCode(e, lastEnd), SeverityError, e.Start, e.End)
			}
		case *syntax.Leaf:
			switch e.Kind {
			case token.BadCharacter:
				add(CodeBadCharacter, SeverityError, e.Start, e.End)
			case token.InvalidEscape:
				add(CodeInvalidEscape, SeverityWarning, e.Start, e.End)
			}
		}
		return true
	})

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Location.Offset < out[j].Location.Offset
	})
	return out
}

// errorCode separates constructs left open at end of input from other
// syntax errors. lastEnd is the end of the last significant token.
func errorCode(n *syntax.Node, lastEnd int) Code {
	if n.End < lastEnd {
		return CodeSyntax
	}
	first := n.FirstLeaf()
	if first == nil {
		return CodeSyntax
	}
	switch k := first.Kind; {
	case k.IsOpener(), k.IsStringOpener(), k == token.Do, k == token.Fn, k == token.InterpolationStart:
		return CodeUnterminated
	}
	for _, c := range n.Nodes() {
		if c.Kind == syntax.KindDoBlock || c.Kind == syntax.KindFn {
			return CodeUnterminated
		}
	}
	return CodeSyntax
}

// GetDiagnostics parses src and reports its diagnostics.
func GetDiagnostics(ctx context.Context, src string, opts parser.Options) []*Diagnostic {
	diags := FromTree(parser.ParseWithOptions(src, opts))
	zerolog.Ctx(ctx).Debug().Int("count", len(diags)).Msg("collected diagnostics")
	return diags
}

func HasErrors(diags []*Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Formatter renders the diagnostics of one file.
type Formatter interface {
	Format(file string, src string, diags []*Diagnostic) ([]byte, error)
}

// TextFormatter prints one "file:line:col: severity: message" line per
// diagnostic. Columns count grapheme clusters, expanding tabs to TabWidth.
// With Color set the severity is colored whether or not the output is a
// terminal.
type TextFormatter struct {
	TabWidth int
	Color    bool
}

var severityColors = map[Severity]color.Attribute{
	SeverityError:       color.FgRed,
	SeverityWarning:     color.FgYellow,
	SeverityInformation: color.FgCyan,
}

func (f *TextFormatter) severity(s Severity) string {
	if !f.Color {
		return string(s)
	}
	c := color.New(severityColors[s])
	c.EnableColor()
	return c.Sprint(s)
}

func (f *TextFormatter) Format(file string, src string, diags []*Diagnostic) ([]byte, error) {
	ix := position.NewIndex(src)
	var sb strings.Builder
	for _, d := range diags {
		col := ix.DisplayColumn(d.Location.Offset, f.TabWidth)
		fmt.Fprintf(&sb, "%s:%d:%d: %s: %s (%s)\n", file, d.Range.Start.Line+1, col+1, f.severity(d.Severity), d.Message, d.Code)
	}
	return []byte(sb.String()), nil
}

// JSONFormatter emits LSP-shaped diagnostics: 0-based ranges and numeric
// severities.
type JSONFormatter struct{}

type jsonPlace struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type jsonRange struct {
	Start jsonPlace `json:"start"`
	End   jsonPlace `json:"end"`
}

type jsonDiagnostic struct {
	File     string    `json:"file"`
	Severity int       `json:"severity"`
	Code     Code      `json:"code"`
	Message  string    `json:"message"`
	Range    jsonRange `json:"range"`
}

func lspSeverity(s Severity) int {
	switch s {
	case SeverityError:
		return 1
	case SeverityWarning:
		return 2
	}
	return 3
}

func (f *JSONFormatter) Format(file string, _ string, diags []*Diagnostic) ([]byte, error) {
	result := make([]jsonDiagnostic, 0, len(diags))
	for _, d := range diags {
		result = append(result, jsonDiagnostic{
			File:     file,
			Severity: lspSeverity(d.Severity),
			Code:     d.Code,
			Message:  d.Message,
			Range: jsonRange{
				Start: jsonPlace{Line: d.Range.Start.Line, Character: d.Range.Start.Character},
				End:   jsonPlace{Line: d.Range.End.Line, Character: d.Range.End.Character},
			},
		})
	}
	b, err := json.Marshal(result)
	if err != nil {
		return nil, errors.Errorf("marshalling diagnostics: %w", err)
	}
	return append(b, '\n'), nil
}

// NewFormatter returns the formatter registered under name. colored only
// affects the text format.
func NewFormatter(name string, tabWidth int, colored bool) (Formatter, error) {
	switch name {
	case "", "text":
		return &TextFormatter{TabWidth: tabWidth, Color: colored}, nil
	case "json":
		return &JSONFormatter{}, nil
	}
	return nil, errors.Errorf("unknown format %q", name)
}
