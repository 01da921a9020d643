package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/langex/internal/ui/pretty"
	"github.com/yaklabco/langex/pkg/analysis"
)

// Table layout constants for summary output.
const (
	tableWidth        = 80 // Width of table separators.
	kindColWidth      = 30 // Width of the warning kind column.
	fileColWidth      = 56 // Width of the file path column.
	numColWidth       = 8  // Width of numeric columns.
	maxFilePathLength = 54 // Maximum characters for file path before truncation.
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryRenderer formats results as aggregated per-file and per-kind
// tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if len(report.ByFile) == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No translatable text found"))
		return nil
	}

	r.renderFileTable(report.ByFile)
	if len(report.ByKind) > 0 {
		fmt.Fprintln(r.out)
		r.renderKindTable(report.ByKind)
	}

	fmt.Fprintln(r.out)
	r.renderTotals(report.Totals)

	return nil
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	// Header - pad first, then style
	fmt.Fprintf(r.out, "%s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Keys", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Status", numColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, file := range files {
		path := file.Path
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		paddedPath := padRight(path, fileColWidth)
		status := ""
		switch {
		case file.Error != "":
			paddedPath = r.styles.TableErrorRow.Render(paddedPath)
			status = "failed"
		case file.Warnings > 0:
			paddedPath = r.styles.TableWarnRow.Render(paddedPath)
		}
		if file.Changed {
			status = "changed"
		}

		fmt.Fprintf(r.out, "%s %s %s %s\n",
			paddedPath,
			padLeft(strconv.Itoa(file.Keys), numColWidth),
			padLeft(strconv.Itoa(file.Warnings), numColWidth),
			padLeft(status, numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderKindTable(kinds []analysis.KindAnalysis) {
	fmt.Fprintln(r.out, r.styles.Bold.Render("Warnings Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	fmt.Fprintf(r.out, "%s %s %s\n",
		r.styles.TableHeader.Render(padRight("Kind", kindColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Files", numColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, kind := range kinds {
		fmt.Fprintf(r.out, "%s %s %s\n",
			r.styles.TableWarnRow.Render(padRight(kind.Kind, kindColWidth)),
			padLeft(strconv.Itoa(kind.Warnings), numColWidth),
			padLeft(strconv.Itoa(len(kind.Files)), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	parts := []string{
		fmt.Sprintf("%d %s in %d %s",
			totals.Keys, pluralWord(totals.Keys, "key", "keys"),
			totals.FilesChanged, pluralWord(totals.FilesChanged, "file", "files")),
	}

	if totals.Warnings > 0 {
		parts = append(parts, r.styles.Warning.Render(
			fmt.Sprintf("%d %s", totals.Warnings, pluralWord(totals.Warnings, "warning", "warnings"))))
	}
	if totals.Conflicts > 0 {
		parts = append(parts, r.styles.Warning.Render(
			fmt.Sprintf("%d %s", totals.Conflicts, pluralWord(totals.Conflicts, "conflict", "conflicts"))))
	}
	if totals.FilesErrored > 0 {
		parts = append(parts, r.styles.Error.Render(fmt.Sprintf("%d failed", totals.FilesErrored)))
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+strings.Join(parts, ", "))
}
