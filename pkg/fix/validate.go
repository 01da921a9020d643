package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// ValidationError describes a span whose range does not fit the text.
type ValidationError struct {
	Span    Span
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid span [%d:%d]: %s", e.Span.Start, e.Span.End, e.Message)
}

// ConflictError describes two overlapping spans.
type ConflictError struct {
	First  Span
	Second Span
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping spans: [%d:%d] and [%d:%d]",
		e.First.Start, e.First.End,
		e.Second.Start, e.Second.End)
}

// Validate checks that every span satisfies 0 <= Start <= End <= textLen.
// It returns the first violation found.
func Validate(spans []Span, textLen int) error {
	for _, span := range spans {
		if span.Start < 0 {
			return &ValidationError{Span: span, Message: "start offset is negative"}
		}
		if span.End < span.Start {
			return &ValidationError{Span: span, Message: "end offset is before start offset"}
		}
		if span.End > textLen {
			return &ValidationError{
				Span:    span,
				Message: fmt.Sprintf("end offset %d exceeds text length %d", span.End, textLen),
			}
		}
	}
	return nil
}

// Sort orders spans by start offset, then end offset. Equal spans keep
// their collection order.
func Sort(spans []Span) {
	slices.SortStableFunc(spans, func(a, b Span) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.End, b.End)
	})
}

// DetectConflicts reports the first pair of overlapping spans in a sorted
// slice. Spans that only touch at a boundary do not overlap.
func DetectConflicts(spans []Span) error {
	for i := 1; i < len(spans); i++ {
		prev := spans[i-1]
		curr := spans[i]
		if curr.Start < prev.End {
			return &ConflictError{First: prev, Second: curr}
		}
	}
	return nil
}

// Prepare validates, sorts and checks spans for overlaps. The input slice
// is not modified.
func Prepare(spans []Span, textLen int) ([]Span, error) {
	if len(spans) == 0 {
		return nil, nil
	}

	if err := Validate(spans, textLen); err != nil {
		return nil, err
	}

	sorted := slices.Clone(spans)
	Sort(sorted)

	if err := DetectConflicts(sorted); err != nil {
		return nil, err
	}

	return sorted, nil
}
