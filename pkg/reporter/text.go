package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/langex/internal/ui/pretty"
	"github.com/yaklabco/langex/pkg/analysis"
	"github.com/yaklabco/langex/pkg/runner"
)

// TextReporter formats results as styled terminal output grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to process."))
		}
		return 0, nil
	}

	for i := range result.Files {
		r.reportFile(&result.Files[i])
	}

	writeConflicts(r.bw, r.styles, result)

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return issueCount(result), nil
}

func (r *TextReporter) reportFile(file *runner.FileOutcome) {
	path := analysis.DisplayPath(file)

	if file.Error != nil {
		fmt.Fprint(r.bw, r.styles.FormatFileError(path, file.Error))
		return
	}
	if file.Result == nil {
		return
	}

	warnings := analysis.WarningEntries(file)
	keys := len(file.Result.TextMap)
	if len(warnings) == 0 && (keys == 0 || !r.opts.ShowKeys) {
		return
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, keys, len(warnings)))

	if r.opts.ShowKeys {
		for _, key := range file.Result.TextMap.Keys() {
			fmt.Fprintf(r.bw, "  %s %s %q\n",
				r.styles.Key.Render(key),
				r.styles.Dim.Render("="),
				file.Result.TextMap[key],
			)
		}
	}

	for i := range warnings {
		var sourceLine string
		if r.opts.ShowContext {
			sourceLine = file.SourceLine(warnings[i].Line)
		}
		fmt.Fprint(r.bw, r.styles.FormatWarning(&warnings[i], r.opts.ShowContext, sourceLine))
	}

	// Blank line between files
	fmt.Fprintln(r.bw)
}

// writeConflicts lists catalog entries that could not be added.
func writeConflicts(w io.Writer, styles *pretty.Styles, result *runner.Result) {
	if result.Catalog == nil {
		return
	}
	conflicts := result.Catalog.Conflicts()
	if len(conflicts) == 0 {
		return
	}

	fmt.Fprintln(w, styles.Warning.Render("Catalog conflicts:"))
	for _, conflict := range conflicts {
		fmt.Fprintf(w, "  %s\n", conflict.String())
	}
	fmt.Fprintln(w)
}
