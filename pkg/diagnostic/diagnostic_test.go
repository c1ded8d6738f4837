package diagnostic_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/exsyntax/pkg/diagnostic"
	"github.com/walteh/exsyntax/pkg/parser"
	"github.com/walteh/exsyntax/pkg/position"
)

func codes(diags []*diagnostic.Diagnostic) []diagnostic.Code {
	out := make([]diagnostic.Code, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func TestGetDiagnostics(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected []diagnostic.Code
	}{
		{
			name:     "valid_source",
			source:   "defmodule A do\n  def f(x), do: x + 1\nend\n",
			expected: []diagnostic.Code{},
		},
		{
			name:     "unterminated_list",
			source:   "[1, 2",
			expected: []diagnostic.Code{diagnostic.CodeUnterminated},
		},
		{
			name:     "unterminated_string",
			source:   `x = "abc`,
			expected: []diagnostic.Code{diagnostic.CodeUnterminated},
		},
		{
			name:     "bad_character_inside_error",
			source:   "a ` b",
			expected: []diagnostic.Code{diagnostic.CodeSyntax, diagnostic.CodeBadCharacter},
		},
		{
			name:     "invalid_escape",
			source:   `"a\xZZ"`,
			expected: []diagnostic.Code{diagnostic.CodeInvalidEscape},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := diagnostic.GetDiagnostics(context.Background(), tt.source, parser.Options{})
			assert.Equal(t, tt.expected, codes(got))
		})
	}
}

func TestFromTree_Positions(t *testing.T) {
	src := "[1, 2"
	diags := diagnostic.FromTree(parser.Parse(src))
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, diagnostic.SeverityError, d.Severity)
	assert.Equal(t, "unterminated construct", d.Message)
	assert.Equal(t, position.NewBasicPosition("[1, 2", 0), d.Location)
	assert.Equal(t, position.Range{
		Start: position.Place{Line: 0, Character: 0},
		End:   position.Place{Line: 0, Character: 5},
	}, d.Range)
}

func TestFromTree_EveryErrorReports(t *testing.T) {
	tree := parser.Parse("a ` b\n) c\n")
	diags := diagnostic.FromTree(tree)

	errs := 0
	for _, d := range diags {
		if d.Code != diagnostic.CodeBadCharacter {
			errs++
		}
	}
	assert.Equal(t, len(tree.Errors()), errs)
	assert.True(t, diagnostic.HasErrors(diags))

	for i := 1; i < len(diags); i++ {
		assert.LessOrEqual(t, diags[i-1].Location.Offset, diags[i].Location.Offset)
	}
}

func TestFromTree_InvalidEscapeIsWarning(t *testing.T) {
	diags := diagnostic.FromTree(parser.Parse(`"a\xZZ"`))
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostic.SeverityWarning, diags[0].Severity)
	assert.Equal(t, 2, diags[0].Location.Offset)
	assert.False(t, diagnostic.HasErrors(diags))
}

func TestTextFormatter(t *testing.T) {
	src := "\t[1"
	diags := diagnostic.FromTree(parser.Parse(src))

	f, err := diagnostic.NewFormatter("text", 4, false)
	require.NoError(t, err)

	out, err := f.Format("lib/a.ex", src, diags)
	require.NoError(t, err)
	assert.Equal(t, "lib/a.ex:1:5: error: unterminated construct (unterminated)\n", string(out))
}

func TestTextFormatter_Color(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{
			name:     "error",
			source:   "[1",
			expected: "a.ex:1:1: \x1b[31merror\x1b[0m: unterminated construct (unterminated)\n",
		},
		{
			name:     "warning",
			source:   `"\xZZ"`,
			expected: "a.ex:1:2: \x1b[33mwarning\x1b[0m: invalid escape sequence (invalid-escape)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := diagnostic.NewFormatter("text", 4, true)
			require.NoError(t, err)

			out, err := f.Format("a.ex", tt.source, diagnostic.FromTree(parser.Parse(tt.source)))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	src := "[1, 2"
	diags := diagnostic.FromTree(parser.Parse(src))

	f, err := diagnostic.NewFormatter("json", 0, true)
	require.NoError(t, err)

	out, err := f.Format("a.ex", src, diags)
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"file": "a.ex",
		"severity": 1,
		"code": "unterminated",
		"message": "unterminated construct",
		"range": {"start": {"line": 0, "character": 0}, "end": {"line": 0, "character": 5}}
	}]`, string(out))
}

func TestNewFormatter_Unknown(t *testing.T) {
	_, err := diagnostic.NewFormatter("xml", 0, false)
	require.Error(t, err)
}
