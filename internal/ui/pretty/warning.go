package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/langex/pkg/analysis"
)

// FormatWarning formats a single warning for terminal output.
func (s *Styles) FormatWarning(entry *analysis.WarningEntry, showContext bool, sourceLine string) string {
	var builder strings.Builder

	location := s.FilePath.Render(entry.FilePath)
	if entry.Line > 0 {
		location += s.Location.Render(fmt.Sprintf(":%d:%d", entry.Line, entry.Column))
	}

	// Main line: location  warning  message  (kind)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.Warning.Render("warning"),
		s.Message.Render(entry.Message),
		s.Kind.Render("("+entry.Kind+")"),
	))

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, entry.Column))
	}

	if entry.Value != "" {
		builder.WriteString("    " + s.Dim.Render("Text:") + " " + s.Value.Render(entry.Value) + "\n")
	}
	if entry.Key != "" {
		line := "    " + s.Dim.Render("Key:") + "  " + s.Key.Render(entry.Key)
		if len(entry.Exps) > 0 {
			line += s.Dim.Render(" [" + strings.Join(entry.Exps, ", ") + "]")
		}
		builder.WriteString(line + "\n")
	}

	return builder.String()
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	const indent = "        "

	var builder strings.Builder
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")
	if column > 0 {
		builder.WriteString(indent + strings.Repeat(" ", column-1) + s.Caret.Render("^") + "\n")
	}
	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, keys, warnings int) string {
	header := s.FilePath.Render(path)

	var parts []string
	if keys > 0 {
		parts = append(parts, plural(keys, "key", "keys"))
	}
	if warnings > 0 {
		parts = append(parts, plural(warnings, "warning", "warnings"))
	}
	if len(parts) > 0 {
		header += s.Dim.Render(" (" + strings.Join(parts, ", ") + ")")
	}
	return header
}

// FormatFileError formats a file that could not be processed.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s\n", s.FilePath.Render(path), s.Error.Render(fmt.Sprintf("error: %v", err)))
}

// plural returns "1 key" or "3 keys".
func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
