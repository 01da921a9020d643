// Package extract finds user-facing text in JavaScript, TypeScript, JSX and
// Vue sources, replaces it with translation calls and collects the
// replaced text into a key map.
//
// An Extractor represents one run. It owns the key generator, so the same
// text always maps to the same key within the run and different texts never
// share a key. An Extractor is not safe for concurrent use; create one per
// document or batch.
package extract

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/langex/internal/logging"
	"github.com/yaklabco/langex/pkg/checker"
	"github.com/yaklabco/langex/pkg/jsast"
	"github.com/yaklabco/langex/pkg/keygen"
	"github.com/yaklabco/langex/pkg/parser/treesitter"
)

// ScriptParser parses JavaScript or TypeScript into a jsast tree with byte
// offsets. Implementations must return an error rather than a partial tree
// when the source does not parse.
type ScriptParser interface {
	Parse(ctx context.Context, src string, dialect jsast.Dialect) (*jsast.Node, error)
}

// Errors returned by extraction. They match with errors.Is.
var (
	ErrParse   = jsast.ErrParse
	ErrTooDeep = jsast.ErrTooDeep
)

// DefaultMaxDepth bounds the nesting the walkers descend into.
const DefaultMaxDepth = treesitter.DefaultMaxDepth

// Extractor extracts text from one or more documents that share a key
// space.
type Extractor struct {
	parser    ScriptParser
	checker   *checker.Checker
	keys      *keygen.Generator
	translate map[string]struct{}
	maxDepth  int
	logger    *log.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithParser sets the script parser.
func WithParser(p ScriptParser) Option {
	return func(e *Extractor) {
		e.parser = p
	}
}

// WithChecker sets the extraction policy.
func WithChecker(c *checker.Checker) Option {
	return func(e *Extractor) {
		e.checker = c
	}
}

// WithGenerator sets the key generator. Generators carry run state, so
// sharing one between extractors makes them share a key space.
func WithGenerator(g *keygen.Generator) Option {
	return func(e *Extractor) {
		e.keys = g
	}
}

// WithTranslateFunctions replaces the callees whose arguments are left
// alone.
func WithTranslateFunctions(names ...string) Option {
	return func(e *Extractor) {
		e.translate = make(map[string]struct{}, len(names))
		for _, name := range names {
			e.translate[name] = struct{}{}
		}
	}
}

// WithMaxDepth sets the nesting limit. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.maxDepth = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Extractor) {
		e.logger = l
	}
}

// New creates an Extractor. Without options it parses with tree-sitter,
// applies checker.Default and generates unprefixed keys.
func New(opts ...Option) *Extractor {
	e := &Extractor{maxDepth: DefaultMaxDepth}
	WithTranslateFunctions(DefaultTranslateFunctions()...)(e)

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = logging.Default()
	}
	if e.parser == nil {
		e.parser = treesitter.New(treesitter.WithMaxDepth(e.maxDepth))
	}
	if e.checker == nil {
		e.checker = checker.Default()
	}
	if e.keys == nil {
		e.keys = keygen.New(keygen.WithLogger(e.logger))
	}
	return e
}

// Keys returns the run's key generator.
func (e *Extractor) Keys() *keygen.Generator {
	return e.keys
}

// isTranslateCall reports whether name is a translation function for the
// given call policy.
func (e *Extractor) isTranslateCall(name string, call CallPolicy) bool {
	if name == "" {
		return false
	}
	if name == call.Prefix {
		return true
	}
	_, ok := e.translate[name]
	return ok
}
