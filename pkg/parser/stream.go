package parser

import (
	"github.com/walteh/exsyntax/pkg/syntax"
	"github.com/walteh/exsyntax/pkg/token"
)

// eof is the kind reported once every significant token is consumed.
const eof = token.Invalid

type eventKind uint8

const (
	evTombstone eventKind = iota
	evOpen
	evClose
	evToken
)

// event is one step of tree construction. Opens carry the node kind (set
// when the marker completes) and, when the node was later wrapped by
// Precede, the relative index of the wrapping open.
type event struct {
	kind          eventKind
	node          syntax.NodeKind
	forwardParent int
	tok           int
}

// Stream is a cursor over a token slice that records tree-building events.
// Trivia is skipped transparently by every query; it is emitted into the
// event log just before the next significant token is consumed.
type Stream struct {
	src    string
	tokens []token.Token
	pos    int // next unconsumed token, trivia included
	next   int // next significant token at or after pos
	events []event
}

func NewStream(src string, tokens []token.Token) *Stream {
	s := &Stream{src: src, tokens: tokens}
	s.sync()
	return s
}

func (s *Stream) sync() {
	i := s.pos
	for i < len(s.tokens) && s.tokens[i].Kind.IsTrivia() {
		i++
	}
	s.next = i
}

// Kind is the kind of the next significant token, or eof.
func (s *Stream) Kind() token.Kind {
	if s.next >= len(s.tokens) {
		return eof
	}
	return s.tokens[s.next].Kind
}

// Text is the source text of the next significant token.
func (s *Stream) Text() string {
	if s.next >= len(s.tokens) {
		return ""
	}
	return s.tokens[s.next].Text(s.src)
}

// Offset is the start of the next significant token, or len(src) at the end.
func (s *Stream) Offset() int {
	if s.next >= len(s.tokens) {
		return len(s.src)
	}
	return s.tokens[s.next].Start
}

// Position is the raw cursor, trivia included. Scanners never change it.
func (s *Stream) Position() int {
	return s.pos
}

func (s *Stream) EOF() bool {
	return s.next >= len(s.tokens)
}

// NthKind returns the kind of the n-th significant token ahead (0 is Kind()).
func (s *Stream) NthKind(n int) token.Kind {
	i := s.next
	for i < len(s.tokens) {
		if !s.tokens[i].Kind.IsTrivia() {
			if n == 0 {
				return s.tokens[i].Kind
			}
			n--
		}
		i++
	}
	return eof
}

// NewlineBefore reports whether a line break separates the last consumed
// token from the next significant one.
func (s *Stream) NewlineBefore() bool {
	for i := s.pos; i < s.next && i < len(s.tokens); i++ {
		if s.tokens[i].Kind == token.EOL {
			return true
		}
	}
	return false
}

// SpaceBefore reports whether any trivia precedes the next significant token.
func (s *Stream) SpaceBefore() bool {
	return s.next > s.pos
}

// SpaceAfter reports whether trivia directly follows the next significant token.
func (s *Stream) SpaceAfter() bool {
	i := s.next + 1
	return i >= len(s.tokens) || s.tokens[i].Kind.IsTrivia()
}

// Advance consumes the next significant token along with the trivia before it.
func (s *Stream) Advance() {
	if s.next >= len(s.tokens) {
		return
	}
	for i := s.pos; i <= s.next; i++ {
		s.events = append(s.events, event{kind: evToken, tok: i})
	}
	s.pos = s.next + 1
	s.sync()
}

// drain consumes every remaining token, trivia included.
func (s *Stream) drain() {
	for i := s.pos; i < len(s.tokens); i++ {
		s.events = append(s.events, event{kind: evToken, tok: i})
	}
	s.pos = len(s.tokens)
	s.next = s.pos
}

// Marker is an open, not yet committed node start.
type Marker struct {
	s     *Stream
	event int
	pos   int
	trunc int
}

// Mark starts a node at the current position.
func (s *Stream) Mark() Marker {
	idx := len(s.events)
	s.events = append(s.events, event{kind: evOpen})
	return Marker{s: s, event: idx, pos: s.pos, trunc: idx}
}

func (m Marker) live() bool {
	return m.s != nil && m.event < len(m.s.events) && m.s.events[m.event].kind == evOpen
}

// Done commits everything consumed since the marker as a node of kind.
func (m Marker) Done(kind syntax.NodeKind) Completed {
	if !m.live() {
		return Completed{}
	}
	m.s.events[m.event].node = kind
	m.s.events = append(m.s.events, event{kind: evClose})
	return Completed{s: m.s, event: m.event, pos: m.pos, kind: kind}
}

// Drop discards the marker; consumed tokens stay with the enclosing node.
func (m Marker) Drop() {
	if !m.live() {
		return
	}
	if m.event == len(m.s.events)-1 {
		m.s.events = m.s.events[:m.event]
		return
	}
	m.s.events[m.event].kind = evTombstone
}

// Rollback restores the cursor to where the marker was taken and discards
// every event recorded since, including nested markers and nodes.
func (m Marker) Rollback() {
	if m.s == nil || m.trunc > len(m.s.events) {
		return
	}
	m.s.events = m.s.events[:m.trunc]
	m.s.pos = m.pos
	m.s.sync()
}

// Completed is a committed node that can still be wrapped by a parent.
type Completed struct {
	s     *Stream
	event int
	pos   int
	kind  syntax.NodeKind
}

func (c Completed) Valid() bool {
	return c.s != nil
}

func (c Completed) Kind() syntax.NodeKind {
	return c.kind
}

// Precede opens a new node that starts where c starts and will contain it.
func (c Completed) Precede() Marker {
	if c.s == nil {
		return Marker{}
	}
	m := c.s.Mark()
	c.s.events[c.event].forwardParent = m.event - c.event
	m.pos = c.pos
	m.trunc = c.event
	return m
}
