// Package fix applies offset-based replacements to source text.
package fix

// Span replaces the bytes [Start, End) of a text with Text.
type Span struct {
	// Start is the byte index where the replacement begins (inclusive).
	Start int

	// End is the byte index where the replacement ends (exclusive).
	End int

	// Text is the replacement text.
	Text string
}

// Len returns the number of original bytes the span covers.
func (s Span) Len() int {
	return s.End - s.Start
}

// Shift returns the span moved by delta bytes.
func (s Span) Shift(delta int) Span {
	s.Start += delta
	s.End += delta
	return s
}

// SpanSet accumulates spans collected while walking a tree.
type SpanSet struct {
	Spans []Span
}

// Replace adds a span that replaces bytes [start, end) with text.
func (b *SpanSet) Replace(start, end int, text string) {
	b.Spans = append(b.Spans, Span{Start: start, End: end, Text: text})
}

// Append adds spans, moving each by delta bytes. It is used to lift spans
// found in an embedded snippet into the coordinates of the enclosing text.
func (b *SpanSet) Append(spans []Span, delta int) {
	for _, span := range spans {
		b.Spans = append(b.Spans, span.Shift(delta))
	}
}

// Len returns the number of collected spans.
func (b *SpanSet) Len() int {
	return len(b.Spans)
}
