// Package position converts byte offsets into line and character
// positions for reporting.
package position

import (
	"fmt"
	"sort"

	"github.com/apparentlymart/go-textseg/v13/textseg"
)

// Place is a 0-based line and a 0-based byte offset within that line.
type Place struct {
	Line      int
	Character int
}

func (p Place) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Character+1)
}

type Range struct {
	Start Place
	End   Place
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// RawPosition is a span of source text at a byte offset.
type RawPosition struct {
	// Offset is the byte offset in the source text
	Offset int
	// Text is the actual text at this position
	Text string
}

func NewBasicPosition(text string, offset int) RawPosition {
	return RawPosition{Text: text, Offset: offset}
}

func (p RawPosition) Length() int {
	return len(p.Text)
}

func (p RawPosition) End() int {
	return p.Offset + p.Length()
}

func (p RawPosition) String() string {
	return fmt.Sprintf("%s@%d", p.Text, p.Offset)
}

// Index maps byte offsets of one text to lines. Only '\n' ends a line; a
// '\r' before it stays at the end of the line it terminates.
type Index struct {
	text  string
	lines []int
}

func NewIndex(text string) *Index {
	lines := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &Index{text: text, lines: lines}
}

func (ix *Index) LineCount() int {
	return len(ix.lines)
}

func (ix *Index) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(ix.text) {
		return len(ix.text)
	}
	return offset
}

// Place returns the line and character of offset. Offsets outside the text
// are clamped to it.
func (ix *Index) Place(offset int) Place {
	offset = ix.clamp(offset)
	line := sort.Search(len(ix.lines), func(i int) bool { return ix.lines[i] > offset }) - 1
	return Place{Line: line, Character: offset - ix.lines[line]}
}

// Offset is the inverse of Place. Characters past the end of a line clamp to
// the line's end.
func (ix *Index) Offset(p Place) int {
	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(ix.lines) {
		return len(ix.text)
	}
	start := ix.lines[p.Line]
	end := ix.lineEnd(p.Line)
	if p.Character < 0 {
		return start
	}
	if start+p.Character > end {
		return end
	}
	return start + p.Character
}

func (ix *Index) lineEnd(line int) int {
	if line+1 < len(ix.lines) {
		return ix.lines[line+1] - 1
	}
	return len(ix.text)
}

// Line returns the text of line n without its terminator.
func (ix *Index) Line(n int) string {
	if n < 0 || n >= len(ix.lines) {
		return ""
	}
	s := ix.text[ix.lines[n]:ix.lineEnd(n)]
	if len(s) > 0 && s[len(s)-1] == '\r' {
		s = s[:len(s)-1]
	}
	return s
}

func (ix *Index) Range(start, end int) Range {
	return Range{Start: ix.Place(start), End: ix.Place(end)}
}

// GetRange returns the range covered by p in the indexed text.
func (ix *Index) GetRange(p RawPosition) Range {
	return ix.Range(p.Offset, p.End())
}

// DisplayColumn returns the 0-based column of offset as rendered in a
// terminal: one column per grapheme cluster, tabs advancing to the next
// multiple of tabWidth.
func (ix *Index) DisplayColumn(offset, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 1
	}
	offset = ix.clamp(offset)
	p := ix.Place(offset)
	rest := []byte(ix.text[ix.lines[p.Line]:offset])

	col := 0
	for len(rest) > 0 {
		advance, cluster, err := textseg.ScanGraphemeClusters(rest, true)
		if err != nil || advance == 0 {
			break
		}
		if len(cluster) == 1 && cluster[0] == '\t' {
			col += tabWidth - col%tabWidth
		} else {
			col++
		}
		rest = rest[advance:]
	}
	return col
}
