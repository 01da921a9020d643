package pretty

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/langex/pkg/analysis"
	"github.com/yaklabco/langex/pkg/runner"
)

// Table formatting constants.
const (
	warningSymbol    = "!"
	tablePadding     = 2
	tableColumnCount = 4 // FILE, LOC, KEY, TEXT
	markerWidth      = 3
	minFileWidth     = 16
	minLocWidth      = 7
	minKeyWidth      = 16
	minTextWidth     = 30
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableRow is a single row of the extraction table: an extracted entry or
// a warning.
type TableRow struct {
	File     string
	Location string
	Key      string
	Text     string
	Warning  bool
	Offset   int
}

// TableFormatter formats extraction results as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

type columnWidths struct {
	file int
	loc  int
	key  int
	text int
}

// FormatTable formats the entries and warnings of every file, grouped by
// file.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil {
		return ""
	}

	var groups [][]TableRow
	for i := range result.Files {
		if rows := FileRows(&result.Files[i]); len(rows) > 0 {
			groups = append(groups, rows)
		}
	}
	if len(groups) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(groups)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths) + "\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")

	for i, group := range groups {
		if i > 0 {
			builder.WriteString(t.formatSeparator(widths, lightSeparator) + "\n")
		}
		for _, row := range group {
			builder.WriteString(t.formatRow(row, widths) + "\n")
		}
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")
	builder.WriteString(t.formatLegend() + "\n")

	return builder.String()
}

// FileRows returns the table rows of one file ordered by offset. Each
// extracted key is placed at its first replacement.
func FileRows(outcome *runner.FileOutcome) []TableRow {
	if outcome.Result == nil {
		return nil
	}

	path := analysis.DisplayPath(outcome)
	keys := outcome.Result.TextMap.Keys()
	// Longer keys first so "a.b_2" is not matched by "a.b".
	slices.SortStableFunc(keys, func(a, b string) int { return cmp.Compare(len(b), len(a)) })

	placed := make(map[string]bool, len(keys))
	rows := make([]TableRow, 0, len(keys)+len(outcome.Result.Warnings))

	for _, span := range outcome.Result.Spans {
		for _, key := range keys {
			if placed[key] || !strings.Contains(span.Text, "'"+key+"'") {
				continue
			}
			placed[key] = true
			rows = append(rows, entryRow(outcome, path, key, span.Start))
			break
		}
	}
	for _, key := range outcome.Result.TextMap.Keys() {
		if !placed[key] {
			rows = append(rows, entryRow(outcome, path, key, -1))
		}
	}

	for _, w := range outcome.Result.Warnings {
		rows = append(rows, TableRow{
			File:     path,
			Location: location(outcome, w.Offset),
			Key:      w.Key,
			Text:     w.Value,
			Warning:  true,
			Offset:   w.Offset,
		})
	}

	slices.SortStableFunc(rows, func(a, b TableRow) int { return cmp.Compare(a.Offset, b.Offset) })
	return rows
}

func entryRow(outcome *runner.FileOutcome, path, key string, offset int) TableRow {
	return TableRow{
		File:     path,
		Location: location(outcome, offset),
		Key:      key,
		Text:     outcome.Result.TextMap[key],
		Offset:   offset,
	}
}

func location(outcome *runner.FileOutcome, offset int) string {
	line, column := outcome.Position(offset)
	if line == 0 {
		return ""
	}
	return fmt.Sprintf("%d:%d", line, column)
}

// calculateColumnWidths determines column widths from content, shrinking
// TEXT and then FILE to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(groups [][]TableRow) columnWidths {
	widths := columnWidths{
		file: minFileWidth,
		loc:  minLocWidth,
		key:  minKeyWidth,
		text: minTextWidth,
	}

	for _, group := range groups {
		for _, row := range group {
			widths.file = max(widths.file, len(row.File))
			widths.loc = max(widths.loc, len(row.Location))
			widths.key = max(widths.key, len(row.Key))
			widths.text = max(widths.text, len(row.Text))
		}
	}

	if excess := t.totalWidth(widths) - t.termWidth; excess > 0 {
		widths.text = max(minTextWidth, widths.text-excess)
	}
	if excess := t.totalWidth(widths) - t.termWidth; excess > 0 {
		widths.file = max(minFileWidth, widths.file-excess)
	}

	return widths
}

func (t *TableFormatter) totalWidth(widths columnWidths) int {
	return widths.file + widths.loc + widths.key + widths.text + tablePadding*tableColumnCount + markerWidth
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s   ",
		widths.file, "FILE",
		widths.loc, "LOC",
		widths.key, "KEY",
		widths.text, "TEXT",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.totalWidth(widths)))
}

// formatRow formats a row; warning rows are highlighted and marked.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	marker := " "
	if row.Warning {
		marker = warningSymbol
	}

	content := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %s",
		widths.file, truncateFilePath(row.File, widths.file),
		widths.loc, truncateString(row.Location, widths.loc),
		widths.key, truncateString(row.Key, widths.key),
		widths.text, truncateString(row.Text, widths.text),
		marker,
	)
	return t.rowStyle(row).Render(content)
}

func (t *TableFormatter) rowStyle(row TableRow) lipgloss.Style {
	if row.Warning {
		return t.styles.TableWarnRow
	}
	return lipgloss.NewStyle()
}

func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s = needs manual conversion", warningSymbol))
	}
	sample := t.styles.TableWarnRow.Render(" warning ")
	return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s %s = needs manual conversion", sample, warningSymbol))
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, keeping the file name.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
