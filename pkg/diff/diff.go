// Package diff renders readable differences for test failures.
package diff

import (
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/kylelemons/godebug/diff"
)

func DiffExportedOnly[T any](want T, got T) string {
	printer := pp.New()
	printer.SetExportedOnly(true)
	printer.SetColoringEnabled(false)
	return render(diff.Diff(printer.Sprint(got), printer.Sprint(want)))
}

// Sexp diffs two S-expression dumps laid out one node per line.
func Sexp(want, got string) string {
	if want == got {
		return ""
	}
	return render(diff.Diff(layout(got), layout(want)))
}

func render(abc string) string {
	if abc == "" {
		return ""
	}
	str := "\n\n"
	str += "to convert ACTUAL ⏩️ EXPECTED:\n\n"
	str += "add:    ➕\n"
	str += "remove: ➖\n"
	str += "\n"
	str += strings.ReplaceAll(strings.ReplaceAll(abc, "\n-", "\n➖"), "\n+", "\n➕")
	return str
}

// layout breaks an S-expression before every node opener, indenting by
// depth. A node opener is "(" followed by a kind name at the start of the
// text or after a space; a lone "(" or ")" between spaces is a leaf.
func layout(s string) string {
	var sb strings.Builder
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '(' && (i == 0 || s[i-1] == ' ') && i+1 < len(s) && s[i+1] >= 'A' && s[i+1] <= 'Z':
			if i > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(strings.Repeat("  ", depth))
			depth++
			sb.WriteByte(c)
		case c == ')' && i > 0 && s[i-1] != ' ' && depth > 0:
			depth--
			sb.WriteByte(c)
		case c == ' ' && i+1 < len(s) && s[i+1] == '(' && i+2 < len(s) && s[i+2] >= 'A' && s[i+2] <= 'Z':
			// the newline replaces the separator
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
