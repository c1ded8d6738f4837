package diff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/walteh/exsyntax/pkg/diff"
)

func TestSexp(t *testing.T) {
	tests := []struct {
		name     string
		want     string
		got      string
		contains []string
	}{
		{
			name: "equal",
			want: "(File (Literal 1))",
			got:  "(File (Literal 1))",
		},
		{
			name:     "changed leaf",
			want:     "(File (BinaryOp (Literal 1) + (Literal 2)))",
			got:      "(File (BinaryOp (Literal 1) - (Literal 2)))",
			contains: []string{"➖", "➕", "    (Literal 1) +", "    (Literal 1) -"},
		},
		{
			name:     "paren leaves stay inline",
			want:     "(File (Call f (Arguments ( ))))",
			got:      "(File (Call g (Arguments ( ))))",
			contains: []string{"  (Call f", "    (Arguments ( ))))"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := diff.Sexp(tt.want, tt.got)
			if len(tt.contains) == 0 {
				assert.Empty(t, out)
				return
			}
			for _, c := range tt.contains {
				assert.Contains(t, out, c)
			}
		})
	}
}

func TestDiffExportedOnly(t *testing.T) {
	type pair struct {
		Key   string
		Value int
	}

	assert.Empty(t, diff.DiffExportedOnly(pair{"a", 1}, pair{"a", 1}))

	out := diff.DiffExportedOnly(pair{"a", 1}, pair{"a", 2})
	assert.Contains(t, out, "ACTUAL")
	assert.Contains(t, out, "➕")
	assert.Contains(t, out, "➖")
}
