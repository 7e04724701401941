// Package position describes locations inside a GraphQL document.
//
// Index, Line and Char are all zero based. Rendering for clients happens at
// the response boundary, which is where the one based translation lives.
package position

import "fmt"

// Position is a single point in the input: the byte index plus the line and
// character the lexer was on when it reached that byte.
type Position struct {
	Index int
	Line  int
	Char  int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d:%d", p.Index, p.Line, p.Char)
}

// Before reports whether p comes before another in the input.
// Byte index order is total, line/char only exist for rendering.
func (p Position) Before(another Position) bool {
	return p.Index < another.Index
}

// Span wraps a start/end Position pair around a syntactic element.
// Start must never come after End.
type Span struct {
	Start Position
	End   Position
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// ZeroWidth returns a Span pointing at a single position,
// used for diagnostics that reference a point instead of a range.
func ZeroWidth(at Position) Span {
	return Span{Start: at, End: at}
}

// StartEnd builds a Span from two positions.
func StartEnd(start, end Position) Span {
	return Span{Start: start, End: end}
}

func (s Span) IsSet() bool {
	return s.Start != s.End || s.Start.Index != 0 || s.Start.Line != 0 || s.Start.Char != 0
}
