package fix

import "strings"

// Apply rewrites text with spans that were prepared with Prepare.
// Untouched ranges are copied verbatim.
func Apply(text string, spans []Span) string {
	if len(spans) == 0 {
		return text
	}

	delta := 0
	for _, span := range spans {
		delta += len(span.Text) - span.Len()
	}

	var out strings.Builder
	out.Grow(len(text) + max(delta, 0))

	cursor := 0
	for _, span := range spans {
		out.WriteString(text[cursor:span.Start])
		out.WriteString(span.Text)
		cursor = span.End
	}
	out.WriteString(text[cursor:])

	return out.String()
}

// Rewrite prepares spans against text and applies them.
func Rewrite(text string, spans []Span) (string, error) {
	prepared, err := Prepare(spans, len(text))
	if err != nil {
		return "", err
	}
	return Apply(text, prepared), nil
}
