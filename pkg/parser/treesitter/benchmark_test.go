package treesitter_test

import (
	"context"
	"strings"
	"testing"

	"github.com/yaklabco/langex/pkg/jsast"
	"github.com/yaklabco/langex/pkg/parser/treesitter"
)

func benchmarkSource() string {
	var sb strings.Builder
	for i := range 200 {
		sb.WriteString("export function greet")
		sb.WriteString(strings.Repeat("x", i%7))
		sb.WriteString("(name) {\n  return notify(\"Welcome back\", `Hello ${name}`)\n}\n")
	}
	return sb.String()
}

func BenchmarkParseJS(b *testing.B) {
	src := benchmarkSource()
	parser := treesitter.New()
	ctx := context.Background()
	b.ResetTimer()
	for range b.N {
		if _, err := parser.Parse(ctx, src, jsast.DialectJS); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseTSX(b *testing.B) {
	src := "export const Card = () => <div title=\"Profile\">Hello there</div>\n"
	parser := treesitter.New()
	ctx := context.Background()
	b.ResetTimer()
	for range b.N {
		if _, err := parser.Parse(ctx, src, jsast.DialectTSX); err != nil {
			b.Fatal(err)
		}
	}
}
