package tokens

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "a.ex", []byte("x = 1 # one\n"), 0644))

	tests := []struct {
		name     string
		args     []string
		stdin    string
		expected []string
	}{
		{
			name: "all_tokens",
			args: []string{"a.ex"},
			expected: []string{
				`Identifier           [0,1) "x"`,
				`Whitespace           [1,2) " "`,
				`Match                [2,3) "="`,
				`Whitespace           [3,4) " "`,
				`Integer              [4,5) "1"`,
				`Whitespace           [5,6) " "`,
				`Comment              [6,11) "# one"`,
				`EOL                  [11,12) "\n"`,
			},
		},
		{
			name: "significant_only",
			args: []string{"--significant", "a.ex"},
			expected: []string{
				`Identifier           [0,1) "x"`,
				`Match                [2,3) "="`,
				`Integer              [4,5) "1"`,
			},
		},
		{
			name:  "stdin",
			args:  []string{"-"},
			stdin: ":ok",
			expected: []string{
				`Atom                 [0,3) ":ok"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := newCommand(&Handler{fs: fs})
			cmd.SetArgs(tt.args)
			cmd.SetIn(strings.NewReader(tt.stdin))
			cmd.SetOut(&out)

			require.NoError(t, cmd.ExecuteContext(context.Background()))
			assert.Equal(t, strings.Join(tt.expected, "\n")+"\n", out.String())
		})
	}
}

func TestTokens_MissingFile(t *testing.T) {
	cmd := newCommand(&Handler{fs: afero.NewMemMapFs()})
	cmd.SetArgs([]string{"nope.ex"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	require.Error(t, cmd.ExecuteContext(context.Background()))
}
