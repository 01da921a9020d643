// Package treesitter parses JavaScript, TypeScript and JSX with tree-sitter
// and maps the concrete syntax tree onto jsast.
package treesitter

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/yaklabco/langex/pkg/jsast"
)

// DefaultMaxDepth bounds the nesting accepted by Parse.
const DefaultMaxDepth = 1000

// snippetLen is the number of bytes quoted around a syntax error.
const snippetLen = 24

// Parser implements the script parser used by the extractor. It holds no
// tree-sitter state and is safe for concurrent use.
type Parser struct {
	maxDepth int
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth sets the nesting limit. Values below 1 select
// DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MaxDepth returns the configured nesting limit.
func (p *Parser) MaxDepth() int {
	return p.maxDepth
}

func language(dialect jsast.Dialect) *sitter.Language {
	switch dialect {
	case jsast.DialectTS:
		return typescript.GetLanguage()
	case jsast.DialectTSX:
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// Parse converts src into a jsast.Program.
//
// Any ERROR or MISSING node in the tree-sitter output makes the whole parse
// fail with a *jsast.ParseError; partial trees are never returned.
func (p *Parser) Parse(ctx context.Context, src string, dialect jsast.Dialect) (*jsast.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(language(dialect))

	content := []byte(src)
	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", dialect, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		offset := firstErrorOffset(root)
		return nil, &jsast.ParseError{
			Dialect: dialect,
			Offset:  offset,
			Snippet: snippet(src, offset),
		}
	}

	m := newMapper(content, p.maxDepth)
	program, err := m.mapNode(root, 0)
	if err != nil {
		return nil, err
	}
	return program, nil
}

// firstErrorOffset returns the start of the first ERROR or MISSING node.
func firstErrorOffset(n *sitter.Node) int {
	if n.IsMissing() || n.Type() == "ERROR" {
		return int(n.StartByte())
	}
	for i := range int(n.ChildCount()) {
		child := n.Child(i)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		return firstErrorOffset(child)
	}
	return int(n.StartByte())
}

func snippet(src string, offset int) string {
	if offset < 0 || offset > len(src) {
		return ""
	}
	end := min(offset+snippetLen, len(src))
	return strings.ToValidUTF8(src[offset:end], "")
}
