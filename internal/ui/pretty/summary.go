package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/langex/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 keys extracted from 3 files, 2 warnings, 3 files written".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.KeysExtracted == 0 && stats.Warnings == 0 && stats.FilesErrored == 0 {
		return s.Success.Render("No translatable text found") +
			s.Dim.Render(fmt.Sprintf(" (%s checked)", plural(stats.FilesProcessed, "file", "files"))) + "\n"
	}

	parts := []string{
		fmt.Sprintf("%s extracted from %s",
			plural(stats.KeysExtracted, "key", "keys"),
			plural(stats.FilesChanged, "file", "files")),
	}

	if stats.Warnings > 0 {
		parts = append(parts, s.Warning.Render(plural(stats.Warnings, "warning", "warnings")))
	}
	if stats.Conflicts > 0 {
		parts = append(parts, s.Warning.Render(plural(stats.Conflicts, "conflict", "conflicts")))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(plural(stats.FilesErrored, "file", "files")+" failed"))
	}
	if stats.FilesModified > 0 {
		parts = append(parts, s.Success.Render(plural(stats.FilesModified, "file", "files")+" written"))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, value int, style func(...string) string) {
		builder.WriteString(fmt.Sprintf("  %-19s", label+":") + style(strconv.Itoa(value)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files checked", stats.FilesProcessed, s.SummaryValue.Render)
	if stats.FilesSkipped > 0 {
		row("Files skipped", stats.FilesSkipped, s.Dim.Render)
	}
	if stats.FilesChanged > 0 {
		row("Files changed", stats.FilesChanged, s.SummaryValue.Render)
	}
	if stats.FilesModified > 0 {
		row("Files written", stats.FilesModified, s.Success.Render)
	}
	if stats.FilesRekeyed > 0 {
		row("Files re-keyed", stats.FilesRekeyed, s.SummaryValue.Render)
	}
	if stats.FilesErrored > 0 {
		row("Files failed", stats.FilesErrored, s.Failure.Render)
	}

	builder.WriteString("\n")
	row("Keys extracted", stats.KeysExtracted, s.SummaryValue.Render)
	if stats.Warnings > 0 {
		row("Warnings", stats.Warnings, s.Warning.Render)
	}
	if stats.Conflicts > 0 {
		row("Conflicts", stats.Conflicts, s.Warning.Render)
	}

	builder.WriteString("\n")
	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Extraction failed for some files"))
	case stats.Warnings > 0 || stats.Conflicts > 0:
		builder.WriteString(s.Warning.Render("Extraction completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Extraction complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}
