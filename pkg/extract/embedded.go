package extract

import (
	"context"
	"fmt"

	"github.com/yaklabco/langex/pkg/jsast"
	"github.com/yaklabco/langex/pkg/textutil"
)

// embedded is the outcome of extracting an expression found inside
// another document.
type embedded struct {
	text     string
	changed  bool
	textMap  TextMap
	warnings []Warning
}

// extractExpression extracts text from a JavaScript expression embedded in
// a larger document, such as a v-bind value. The expression is wrapped in
// parentheses so object literals parse as expressions, walked with the
// run's key generator, and the synthetic parentheses are stripped from the
// result. Warning offsets are relative to the start of expr.
func (e *Extractor) extractExpression(
	ctx context.Context, expr string, dialect jsast.Dialect, call CallPolicy,
) (*embedded, error) {
	res, err := e.extractScript(ctx, textutil.WrapBrackets(expr), dialect, call)
	if err != nil {
		return nil, fmt.Errorf("expression %q: %w", snippet(expr), err)
	}

	out := &embedded{
		text:     expr,
		changed:  res.Changed(),
		textMap:  res.TextMap,
		warnings: shiftWarnings(res.Warnings, -1),
	}
	if out.changed {
		out.text = textutil.RemoveBrackets(res.Text)
	}
	return out, nil
}

// snippet shortens s for error messages.
func snippet(s string) string {
	const limit = 40
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
