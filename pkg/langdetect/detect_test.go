package langdetect_test

import (
	"testing"

	"github.com/yaklabco/langex/pkg/jsast"
	"github.com/yaklabco/langex/pkg/langdetect"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		content string
		kind    langdetect.Kind
		dialect jsast.Dialect
	}{
		{"vue component", "src/App.vue", "<template></template>", langdetect.KindVue, jsast.DialectJS},
		{"javascript", "src/main.js", "const a = 1\n", langdetect.KindScript, jsast.DialectJS},
		{"module javascript", "src/main.mjs", "export const a = 1\n", langdetect.KindScript, jsast.DialectJS},
		{"jsx", "src/App.jsx", "export default () => <div />\n", langdetect.KindJSX, jsast.DialectJS},
		{"tsx", "src/App.tsx", "export default () => <div />\n", langdetect.KindJSX, jsast.DialectTSX},
		{"typescript", "src/api.ts", "export const a: number = 1\n", langdetect.KindScript, jsast.DialectTS},
		{"uppercase extension", "src/API.TS", "export const a = 1\n", langdetect.KindScript, jsast.DialectTS},
		{"markdown", "README.md", "# Title\n", langdetect.KindUnknown, ""},
		{"no extension", "Makefile", "all:\n", langdetect.KindUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := langdetect.Classify(tt.path, []byte(tt.content))
			if got.Kind != tt.kind {
				t.Errorf("Classify(%q).Kind = %q, want %q", tt.path, got.Kind, tt.kind)
			}
			if got.Dialect != tt.dialect {
				t.Errorf("Classify(%q).Dialect = %q, want %q", tt.path, got.Dialect, tt.dialect)
			}
			if got.Supported() != (tt.kind != langdetect.KindUnknown) {
				t.Errorf("Classify(%q).Supported() = %v", tt.path, got.Supported())
			}
		})
	}
}

func TestClassify_QtTranslationFile(t *testing.T) {
	t.Parallel()

	content := []byte(`<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE TS>
<TS version="2.1" language="de_DE">
<context>
    <name>MainWindow</name>
</context>
</TS>
`)
	got := langdetect.Classify("i18n/app_de.ts", content)
	if got.Supported() {
		t.Errorf("Classify() = %+v, want unsupported", got)
	}
	if got.Reason == "" {
		t.Error("expected a reason for skipping")
	}
}

func TestClassify_WithoutContent(t *testing.T) {
	t.Parallel()

	got := langdetect.Classify("src/api.ts", nil)
	if got.Kind != langdetect.KindScript || got.Dialect != jsast.DialectTS {
		t.Errorf("Classify() = %+v, want TypeScript script", got)
	}
}

func TestIsVendored(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"node_modules/vue/index.js", true},
		{"web/node_modules/lodash/lodash.js", true},
		{"src/components/Button.vue", false},
	}

	for _, tt := range tests {
		if got := langdetect.IsVendored(tt.path); got != tt.want {
			t.Errorf("IsVendored(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestClassify_VendoredPathSkipped(t *testing.T) {
	t.Parallel()

	got := langdetect.Classify("node_modules/vue/index.js", []byte("const a = 1\n"))
	if got.Supported() {
		t.Errorf("Classify() = %+v, want unsupported", got)
	}
}

func TestExtensions(t *testing.T) {
	t.Parallel()

	for _, ext := range langdetect.Extensions() {
		if !langdetect.Classify("file"+ext, nil).Supported() {
			t.Errorf("extension %s is listed but not classified", ext)
		}
	}
}
