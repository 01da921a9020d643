package extract

import (
	"maps"
	"slices"

	"github.com/yaklabco/langex/pkg/fix"
)

// TextMap maps generated keys to the text they replaced.
type TextMap map[string]string

// Merge copies every entry of other into m. Entries already in m are
// overwritten; keys are unique within a run so this only happens for the
// same text.
func (m TextMap) Merge(other TextMap) {
	maps.Copy(m, other)
}

// Keys returns the keys in sorted order.
func (m TextMap) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}

// WarningKind is a machine-readable warning category.
type WarningKind string

// Warning kinds.
const (
	// WarningTemplateLiteral marks a template literal with interpolations
	// that needs manual conversion.
	WarningTemplateLiteral WarningKind = "template-literal"

	// WarningInterpolation marks a value that already carries
	// interpolation markers.
	WarningInterpolation WarningKind = "interpolation-markers"

	// WarningSkippedBlock marks a document block that could not be
	// processed, e.g. a pug template.
	WarningSkippedBlock WarningKind = "skipped-block"

	// WarningUnparsedExpression marks a template expression the script
	// parser rejected; text inside it was not extracted.
	WarningUnparsedExpression WarningKind = "unparsed-expression"
)

// Warning describes text that was found but not rewritten.
type Warning struct {
	Message string      `json:"message"`
	Value   string      `json:"value"`
	Key     string      `json:"key,omitempty"`
	Exps    []string    `json:"exps,omitempty"`
	Kind    WarningKind `json:"kind,omitempty"`

	// Offset is the byte offset of the construct in the extracted text.
	Offset int `json:"offset"`
}

// Result is the outcome of one extraction.
type Result struct {
	// TextMap holds every extracted key and its text.
	TextMap TextMap

	// Text is the rewritten source.
	Text string

	// Warnings lists constructs that need manual attention.
	Warnings []Warning

	// Spans are the replacements applied to produce Text, sorted by
	// offset.
	Spans []fix.Span
}

func newResult() *Result {
	return &Result{TextMap: TextMap{}}
}

// Changed reports whether any replacement was applied.
func (r *Result) Changed() bool {
	return len(r.Spans) > 0
}

// shiftWarnings moves every warning offset by delta.
func shiftWarnings(warnings []Warning, delta int) []Warning {
	shifted := make([]Warning, len(warnings))
	for i, w := range warnings {
		w.Offset += delta
		shifted[i] = w
	}
	return shifted
}
