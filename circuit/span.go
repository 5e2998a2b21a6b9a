package circuit

import "fmt"

// Position identifies a location in source text. All fields are zero-based;
// Offset counts bytes and Column counts runes within the line.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) advance(r rune, width int) Position {
	p.Offset += width
	if r == '\n' {
		p.Line++
		p.Column = 0
	} else {
		p.Column++
	}
	return p
}

// Span is the half-open source range [Start, End).
type Span struct {
	Start Position
	End   Position
}

func pointSpan(p Position) Span {
	return Span{Start: p, End: p}
}

// narrow collapses the span to a zero-width span at its end.
func (s Span) narrow() Span {
	return pointSpan(s.End)
}

// extend grows the span so that it ends where other ends.
func (s Span) extend(other Span) Span {
	s.End = other.End
	return s
}

// Len reports the span width in bytes.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// IsZero reports whether the span covers no characters.
func (s Span) IsZero() bool {
	return s.Len() == 0
}

// Text returns the slice of source covered by the span. Out of range spans
// yield an empty string.
func (s Span) Text(source string) string {
	if s.Start.Offset < 0 || s.End.Offset > len(source) || s.Start.Offset > s.End.Offset {
		return ""
	}
	return source[s.Start.Offset:s.End.Offset]
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.Start.Line+1, s.Start.Column+1, s.End.Line+1, s.End.Column+1)
}
