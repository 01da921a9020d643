package extract

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/yaklabco/langex/internal/logging"
	"github.com/yaklabco/langex/pkg/fix"
	"github.com/yaklabco/langex/pkg/jsast"
	"github.com/yaklabco/langex/pkg/textutil"
	"github.com/yaklabco/langex/pkg/vue"
)

// forAliasPattern splits a v-for expression into alias and source.
//
//nolint:gochecknoglobals // compiled once
var forAliasPattern = regexp.MustCompile(`^([\s\S]*?)\s+(?:in|of)\s+([\s\S]*)$`)

// ExtractTemplate extracts text from a Vue template and replaces it with
// calls rendered by call. Expressions inside directives and interpolations
// are extracted with the script walker in the given dialect, which should
// match the component's script blocks.
//
// Object and array values and v-for sources must parse. Any other
// expression the parser rejects is left as is with an
// unparsed-expression warning.
func (e *Extractor) ExtractTemplate(
	ctx context.Context, template string, dialect jsast.Dialect, call CallPolicy,
) (*Result, error) {
	root, err := vue.Parse(template)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	w := &templateWalker{
		ex:      e,
		ctx:     ctx,
		src:     template,
		dialect: dialect,
		call:    call,
		textMap: TextMap{},
	}

	w.walk(root, 0)
	if w.err != nil {
		return nil, w.err
	}

	spans, err := fix.Prepare(w.spans.Spans, len(template))
	if err != nil {
		return nil, fmt.Errorf("prepare replacements: %w", err)
	}

	logging.FromContext(ctx).Debug("template extracted",
		logging.FieldKeysExtracted, len(w.textMap),
		logging.FieldWarnings, len(w.warnings),
	)

	return &Result{
		TextMap:  w.textMap,
		Text:     fix.Apply(template, spans),
		Warnings: w.warnings,
		Spans:    spans,
	}, nil
}

// templateWalker collects replacements for one template. The first error
// stops the walk.
type templateWalker struct {
	ex       *Extractor
	ctx      context.Context //nolint:containedctx // scoped to one walk
	src      string
	dialect  jsast.Dialect
	call     CallPolicy
	spans    fix.SpanSet
	textMap  TextMap
	warnings []Warning
	err      error
}

// walk visits n and its descendants in document order, failing with
// ErrTooDeep past the extractor's depth limit.
func (w *templateWalker) walk(n *vue.Node, depth int) {
	if w.err != nil {
		return
	}
	if depth > w.ex.maxDepth {
		w.err = &jsast.DepthError{Limit: w.ex.maxDepth, Offset: n.Range.Start}
		return
	}
	if !w.visit(n) {
		return
	}
	for _, child := range n.Children {
		w.walk(child, depth+1)
	}
}

func (w *templateWalker) visit(n *vue.Node) bool {
	if w.err != nil {
		return false
	}

	switch n.Type {
	case vue.NodeElement:
		if isRawTextTag(n.Tag) {
			return false
		}
		if _, ok := n.Attr("v-pre"); ok {
			return false
		}
		for _, attr := range n.Attrs {
			if w.err = w.attribute(attr); w.err != nil {
				return false
			}
		}
	case vue.NodeText:
		w.text(n)
	case vue.NodeInterpolation:
		w.err = w.interpolation(n)
	case vue.NodeRoot, vue.NodeComment:
	}
	return w.err == nil
}

func isRawTextTag(tag string) bool {
	return strings.EqualFold(tag, "script") || strings.EqualFold(tag, "style")
}

func (w *templateWalker) accept(text string, offset int) bool {
	ok, notice := w.ex.checker.ValueNeedsExtraction(text)
	if notice != nil {
		w.warnings = append(w.warnings, noticeWarning(notice, text, offset))
	}
	return ok
}

func (w *templateWalker) record(text string) string {
	key := w.ex.keys.Generate(text)
	w.textMap[key] = text
	return key
}

func (w *templateWalker) attribute(attr vue.Attribute) error {
	name, arg, ok := attr.Directive()
	switch {
	case !ok:
		w.staticAttribute(attr)
		return nil
	case name == "for":
		return w.forSource(attr)
	case name == "bind":
		if arg == "" || strings.HasPrefix(arg, "[") || !w.ex.checker.AttributeNeedsExtraction(arg) {
			return nil
		}
		return w.boundValue(attr)
	case name == "html", name == "text":
		return w.boundValue(attr)
	}
	return nil
}

// staticAttribute turns title="Save" into :title="$t('save')".
func (w *templateWalker) staticAttribute(attr vue.Attribute) {
	if !attr.HasValue || !w.ex.checker.AttributeNeedsExtraction(attr.Name) {
		return
	}
	text := textutil.FormatValue(html.UnescapeString(attr.Value))
	if !w.accept(text, attr.ValueRange.Start) {
		return
	}
	key := w.record(text)
	w.spans.Replace(attr.ValueRange.Start, attr.ValueRange.End, `"`+w.call.Render(key)+`"`)
	w.spans.Replace(attr.NameRange.Start, attr.NameRange.End, ":"+attr.Name)
}

// forSource extracts text from the source list of a v-for.
func (w *templateWalker) forSource(attr vue.Attribute) error {
	if !attr.HasValue {
		return nil
	}
	loc := forAliasPattern.FindStringSubmatchIndex(attr.Value)
	if loc == nil {
		return nil
	}
	content := attr.ValueContentRange()
	source := vue.Range{Start: content.Start + loc[4], End: content.Start + loc[5]}
	return w.expression(source, true)
}

// boundValue handles the value of v-bind, v-html and v-text. A plain
// string literal gets a key directly; anything else is walked as an
// expression.
func (w *templateWalker) boundValue(attr vue.Attribute) error {
	if !attr.HasValue {
		return nil
	}
	content := attr.ValueContentRange()
	start, end := textutil.TrimmedRange(w.src[content.Start:content.End])
	r := vue.Range{Start: content.Start + start, End: content.Start + end}
	if r.Len() == 0 {
		return nil
	}

	expr := vue.Text(w.src, r)
	if lit, ok := stringLiteral(expr); ok {
		text := textutil.FormatValue(lit)
		if !w.accept(text, r.Start) {
			return nil
		}
		key := w.record(text)
		w.spans.Replace(r.Start, r.End, w.call.Render(key))
		return nil
	}
	return w.expression(r, isStructured(expr))
}

// text replaces a text node with an interpolation. Whitespace around the
// text stays in place.
func (w *templateWalker) text(n *vue.Node) {
	raw := vue.Text(w.src, n.ContentRange)
	start, end := textutil.TrimmedRange(raw)
	if start == end {
		return
	}
	text := textutil.CondenseWhitespace(html.UnescapeString(raw[start:end]))
	offset := n.ContentRange.Start
	if !w.accept(text, offset+start) {
		return
	}
	key := w.record(text)
	w.spans.Replace(offset+start, offset+end, "{{ "+w.call.Render(key)+" }}")
}

// interpolation handles "{{ ... }}". A lone string literal replaces the
// whole interpolation; other expressions are walked.
func (w *templateWalker) interpolation(n *vue.Node) error {
	raw := vue.Text(w.src, n.ContentRange)
	start, end := textutil.TrimmedRange(raw)
	if start == end {
		return nil
	}
	r := vue.Range{Start: n.ContentRange.Start + start, End: n.ContentRange.Start + end}

	if lit, ok := stringLiteral(raw[start:end]); ok {
		text := strings.TrimSpace(textutil.FormatValue(lit))
		if !w.accept(text, r.Start) {
			return nil
		}
		key := w.record(text)
		w.spans.Replace(n.Range.Start, n.Range.End, "{{ "+w.call.Render(key)+" }}")
		return nil
	}
	return w.expression(r, false)
}

// expression extracts text from the script expression covering r and
// replaces r with the rewritten expression. When strict is false a syntax
// error only produces a warning.
func (w *templateWalker) expression(r vue.Range, strict bool) error {
	expr := vue.Text(w.src, r)
	if strings.TrimSpace(expr) == "" {
		return nil
	}

	sub, err := w.ex.extractExpression(w.ctx, expr, w.dialect, w.call)
	if err != nil {
		if !strict && errors.Is(err, ErrParse) {
			w.warnings = append(w.warnings, Warning{
				Message: "expression could not be parsed; text inside it was not extracted",
				Value:   expr,
				Kind:    WarningUnparsedExpression,
				Offset:  r.Start,
			})
			return nil
		}
		return fmt.Errorf("template offset %d: %w", r.Start, err)
	}

	w.textMap.Merge(sub.textMap)
	w.warnings = append(w.warnings, shiftWarnings(sub.warnings, r.Start)...)
	if sub.changed {
		w.spans.Replace(r.Start, r.End, sub.text)
	}
	return nil
}

// isStructured reports whether expr is an object or array value, which
// may hold text nested anywhere inside it.
func isStructured(expr string) bool {
	return strings.HasPrefix(expr, "{") || strings.HasPrefix(expr, "[")
}

// stringLiteral reports whether expr is exactly one quoted string without
// substitutions and returns its decoded body.
func stringLiteral(expr string) (string, bool) {
	if len(expr) < 2 {
		return "", false
	}
	quote := expr[0]
	if quote != '\'' && quote != '"' && quote != '`' {
		return "", false
	}
	if expr[len(expr)-1] != quote {
		return "", false
	}

	body := expr[1 : len(expr)-1]
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\\':
			if i == len(body)-1 {
				return "", false
			}
			i++
		case quote:
			return "", false
		case '$':
			if quote == '`' && i+1 < len(body) && body[i+1] == '{' {
				return "", false
			}
		}
	}
	return textutil.CookString(body), true
}
