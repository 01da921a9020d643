// Package langdetect classifies source files for extraction.
// It uses go-enry to tell real scripts apart from files that merely share
// an extension, such as Qt Linguist ".ts" translation files, and to spot
// vendored or generated code.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/langex/pkg/jsast"
)

// Kind selects the extractor used for a file.
type Kind string

// File kinds.
const (
	KindUnknown Kind = ""
	KindScript  Kind = "script"
	KindJSX     Kind = "jsx"
	KindVue     Kind = "vue"
)

// Source describes how a file should be extracted.
type Source struct {
	Kind    Kind
	Dialect jsast.Dialect

	// Reason explains why a file is KindUnknown.
	Reason string
}

// Supported reports whether the file can be extracted.
func (s Source) Supported() bool {
	return s.Kind != KindUnknown
}

// Extensions returns every extension Classify recognises.
func Extensions() []string {
	return []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts", ".vue"}
}

// Classify inspects path and content. Content may be nil, in which case
// only the extension and path are used.
func Classify(path string, content []byte) Source {
	ext := strings.ToLower(filepath.Ext(path))

	if IsVendored(path) {
		return Source{Reason: "vendored path"}
	}
	if content != nil && enry.IsGenerated(path, content) {
		return Source{Reason: "generated or minified file"}
	}

	switch ext {
	case ".vue":
		return Source{Kind: KindVue, Dialect: jsast.DialectJS}
	case ".jsx":
		return Source{Kind: KindJSX, Dialect: jsast.DialectJS}
	case ".tsx":
		return Source{Kind: KindJSX, Dialect: jsast.DialectTSX}
	case ".js", ".mjs", ".cjs":
		return Source{Kind: KindScript, Dialect: jsast.DialectJS}
	case ".ts", ".mts", ".cts":
		if content != nil && language(path, content) == "XML" {
			return Source{Reason: "XML translation file"}
		}
		return Source{Kind: KindScript, Dialect: jsast.DialectTS}
	}

	return Source{Reason: "unsupported extension " + ext}
}

// IsVendored reports whether path lies in a dependency or build output
// directory such as node_modules.
func IsVendored(path string) bool {
	return enry.IsVendor(filepath.ToSlash(path))
}

// language returns the linguist language of a file, resolving ambiguous
// extensions by content.
func language(path string, content []byte) string {
	return enry.GetLanguage(filepath.Base(path), content)
}
