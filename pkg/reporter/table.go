package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/langex/internal/ui/pretty"
	"github.com/yaklabco/langex/pkg/analysis"
	"github.com/yaklabco/langex/pkg/runner"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// TableReporter lists every extracted entry and warning in a table.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, getTerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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
		file := &result.Files[i]
		if file.Error != nil {
			fmt.Fprint(r.bw, r.styles.FormatFileError(analysis.DisplayPath(file), file.Error))
		}
	}

	if r.opts.PerFile {
		r.reportPerFile(result)
	} else {
		fmt.Fprint(r.bw, r.formatter.FormatTable(result))
	}

	writeConflicts(r.bw, r.styles, result)

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return issueCount(result), nil
}

// reportPerFile outputs a separate table for each file with entries.
func (r *TableReporter) reportPerFile(result *runner.Result) {
	for i := range result.Files {
		file := result.Files[i]
		if len(pretty.FileRows(&file)) == 0 {
			continue
		}

		fmt.Fprintln(r.bw)
		fmt.Fprintln(r.bw, r.styles.Bold.Render(analysis.DisplayPath(&file)))
		fmt.Fprint(r.bw, r.formatter.FormatTable(&runner.Result{Files: []runner.FileOutcome{file}}))
	}
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
