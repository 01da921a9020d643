package extract

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/yaklabco/langex/internal/logging"
	"github.com/yaklabco/langex/pkg/checker"
	"github.com/yaklabco/langex/pkg/fix"
	"github.com/yaklabco/langex/pkg/jsast"
	"github.com/yaklabco/langex/pkg/textutil"
)

const templateLiteralMessage = "template literal with interpolations needs manual conversion"

// ExtractScript extracts text from JavaScript or TypeScript source and
// replaces it with calls rendered by call. JSX elements are handled when
// the dialect's grammar accepts them.
func (e *Extractor) ExtractScript(ctx context.Context, code string, dialect jsast.Dialect, call CallPolicy) (*Result, error) {
	return e.extractScript(ctx, code, dialect, call)
}

// ExtractJSX extracts text from JSX or TSX source. DialectTS is upgraded
// to DialectTSX because the plain TypeScript grammar rejects JSX.
func (e *Extractor) ExtractJSX(ctx context.Context, code string, dialect jsast.Dialect, call CallPolicy) (*Result, error) {
	if dialect == jsast.DialectTS {
		dialect = jsast.DialectTSX
	}
	return e.extractScript(ctx, code, dialect, call)
}

func (e *Extractor) extractScript(ctx context.Context, code string, dialect jsast.Dialect, call CallPolicy) (*Result, error) {
	root, err := e.parser.Parse(ctx, code, dialect)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", dialect, err)
	}

	w := &scriptWalker{
		ex:      e,
		call:    call,
		textMap: TextMap{},
	}
	if err := w.walk(root, 0); err != nil {
		return nil, err
	}

	spans, err := fix.Prepare(w.spans.Spans, len(code))
	if err != nil {
		return nil, fmt.Errorf("prepare replacements: %w", err)
	}

	logging.FromContext(ctx).Debug("script extracted",
		logging.FieldDialect, dialect,
		logging.FieldKeysExtracted, len(w.textMap),
		logging.FieldWarnings, len(w.warnings),
	)

	return &Result{
		TextMap:  w.textMap,
		Text:     fix.Apply(code, spans),
		Warnings: w.warnings,
		Spans:    spans,
	}, nil
}

// scriptWalker collects replacements for one parsed script.
type scriptWalker struct {
	ex       *Extractor
	call     CallPolicy
	spans    fix.SpanSet
	textMap  TextMap
	warnings []Warning
}

func (w *scriptWalker) walk(n *jsast.Node, depth int) error {
	if n == nil {
		return nil
	}
	if depth > w.ex.maxDepth {
		return &jsast.DepthError{Limit: w.ex.maxDepth, Offset: n.Range.Start}
	}

	switch n.Kind {
	case jsast.KindLiteral:
		w.literal(n)
		return nil
	case jsast.KindTemplateLiteral:
		if len(n.List(jsast.FieldExpressions)) == 0 {
			w.plainTemplate(n)
			return nil
		}
		w.interpolatedTemplate(n)
	case jsast.KindJSXText:
		w.jsxText(n)
		return nil
	case jsast.KindJSXAttribute:
		return w.jsxAttribute(n, depth)
	case jsast.KindCallExpression:
		if w.ex.isTranslateCall(calleeName(n.Child(jsast.FieldCallee)), w.call) {
			return nil
		}
	case jsast.KindExpressionStatement:
		// Directive prologues such as "use strict".
		if n.Child(jsast.FieldExpression).Is(jsast.KindLiteral) {
			return nil
		}
	}

	for _, child := range childNodes(n) {
		if err := w.walk(child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// accept runs the checker on text and records a warning for borderline
// rejections.
func (w *scriptWalker) accept(text string, offset int) bool {
	ok, notice := w.ex.checker.ValueNeedsExtraction(text)
	if notice != nil {
		w.warnings = append(w.warnings, noticeWarning(notice, text, offset))
	}
	return ok
}

// record assigns a key to text and stores it in the map.
func (w *scriptWalker) record(text string) string {
	key := w.ex.keys.Generate(text)
	w.textMap[key] = text
	return key
}

func (w *scriptWalker) literal(n *jsast.Node) {
	if len(n.Raw) < 2 {
		return
	}
	text := textutil.FormatValue(n.Value)
	if !w.accept(text, n.Range.Start) {
		return
	}
	key := w.record(text)
	w.spans.Replace(n.Range.Start, n.Range.End, w.call.Render(key))
}

func (w *scriptWalker) plainTemplate(n *jsast.Node) {
	quasis := n.List(jsast.FieldQuasis)
	if len(quasis) != 1 {
		return
	}
	text := textutil.FormatValue(quasis[0].Value)
	if !w.accept(text, n.Range.Start) {
		return
	}
	key := w.record(text)
	w.spans.Replace(n.Range.Start, n.Range.End, w.call.Render(key))
}

//nolint:gochecknoglobals // compiled once
var placeholderPattern = regexp.MustCompile(`\{\d+\}`)

// interpolatedTemplate reports a template literal with substitutions. The
// text is rendered with numbered placeholders and a key is reserved for it,
// but the literal is left in place and stays out of the text map.
func (w *scriptWalker) interpolatedTemplate(n *jsast.Node) {
	quasis := n.List(jsast.FieldQuasis)
	exprs := n.List(jsast.FieldExpressions)

	var value strings.Builder
	exps := make([]string, 0, len(exprs))
	for i, quasi := range quasis {
		value.WriteString(quasi.Raw)
		if i < len(exprs) {
			value.WriteString("{" + strconv.Itoa(i) + "}")
		}
	}
	for _, expr := range exprs {
		if name, ok := memberProperty(expr); ok {
			exps = append(exps, name)
		}
	}

	text := value.String()
	bare := placeholderPattern.ReplaceAllString(text, "")
	if ok, _ := w.ex.checker.ValueNeedsExtraction(bare); !ok {
		return
	}

	w.warnings = append(w.warnings, Warning{
		Message: templateLiteralMessage,
		Value:   text,
		Key:     w.ex.keys.Generate(text),
		Exps:    exps,
		Kind:    WarningTemplateLiteral,
		Offset:  n.Range.Start,
	})
}

// jsxText replaces the text between JSX tags. Surrounding whitespace stays
// in place so indentation survives.
func (w *scriptWalker) jsxText(n *jsast.Node) {
	start, end := textutil.TrimmedRange(n.Raw)
	if start == end {
		return
	}
	text := textutil.CondenseWhitespace(html.UnescapeString(n.Raw[start:end]))
	if !w.accept(text, n.Range.Start+start) {
		return
	}
	key := w.record(text)
	w.spans.Replace(n.Range.Start+start, n.Range.Start+end, "{"+w.call.Render(key)+"}")
}

// jsxAttribute replaces string attribute values with an expression
// container. Expression values are walked unless the attribute is one
// whose value is never text, such as className or key.
func (w *scriptWalker) jsxAttribute(n *jsast.Node, depth int) error {
	value := n.Child(jsast.FieldValue)
	if value == nil {
		return nil
	}

	if value.Kind == jsast.KindLiteral {
		if !w.ex.checker.AttributeNeedsExtraction(n.Name) {
			return nil
		}
		text := textutil.FormatValue(value.Value)
		if !w.accept(text, value.Range.Start) {
			return nil
		}
		key := w.record(text)
		w.spans.Replace(value.Range.Start, value.Range.End, "{"+w.call.Render(key)+"}")
		return nil
	}

	if !w.ex.checker.AttributeNeedsExtraction(n.Name) && !checker.IsEventHandler(n.Name) {
		return nil
	}
	return w.walk(value, depth+1)
}

func noticeWarning(notice *checker.Notice, text string, offset int) Warning {
	kind := WarningKind(notice.Reason)
	if notice.Reason == checker.ReasonInterpolation {
		kind = WarningInterpolation
	}
	return Warning{
		Message: notice.Message,
		Value:   text,
		Kind:    kind,
		Offset:  offset,
	}
}
