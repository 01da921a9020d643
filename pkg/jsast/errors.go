package jsast

import (
	"errors"
	"fmt"
)

// Dialect selects the grammar used to parse a script.
type Dialect string

// Supported dialects. JSX is accepted by DialectJS and DialectTSX.
const (
	DialectJS  Dialect = "js"
	DialectTS  Dialect = "ts"
	DialectTSX Dialect = "tsx"
)

// ParseDialect maps a language name or file extension to a Dialect.
func ParseDialect(lang string) (Dialect, bool) {
	switch lang {
	case "", "js", "javascript", "jsx", "mjs", "cjs", ".js", ".jsx", ".mjs", ".cjs":
		return DialectJS, true
	case "ts", "typescript", "mts", "cts", ".ts", ".mts", ".cts":
		return DialectTS, true
	case "tsx", ".tsx":
		return DialectTSX, true
	}
	return "", false
}

var (
	// ErrParse is returned when the source contains a syntax error.
	ErrParse = errors.New("syntax error")

	// ErrTooDeep is returned when a tree nests deeper than the configured
	// limit.
	ErrTooDeep = errors.New("syntax tree too deep")
)

// ParseError locates a syntax error.
type ParseError struct {
	Dialect Dialect
	Offset  int
	Snippet string
}

func (e *ParseError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("%s: syntax error at offset %d", e.Dialect, e.Offset)
	}
	return fmt.Sprintf("%s: syntax error at offset %d near %q", e.Dialect, e.Offset, e.Snippet)
}

// Is makes errors.Is(err, ErrParse) succeed.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// DepthError reports where the depth limit was exceeded.
type DepthError struct {
	Limit  int
	Offset int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("syntax tree deeper than %d levels at offset %d", e.Limit, e.Offset)
}

// Is makes errors.Is(err, ErrTooDeep) succeed.
func (e *DepthError) Is(target error) bool {
	return target == ErrTooDeep
}
