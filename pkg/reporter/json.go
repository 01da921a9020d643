package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/langex/pkg/analysis"
	"github.com/yaklabco/langex/pkg/catalog"
	"github.com/yaklabco/langex/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version   string             `json:"version"`
	Files     []JSONFileResult   `json:"files"`
	Catalog   map[string]any     `json:"catalog"`
	Conflicts []catalog.Conflict `json:"conflicts,omitempty"`
	Summary   JSONSummary        `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path     string                  `json:"path"`
	Kind     string                  `json:"kind,omitempty"`
	Prefix   string                  `json:"prefix,omitempty"`
	TextMap  map[string]string       `json:"textMap"`
	Warnings []analysis.WarningEntry `json:"warnings"`
	Changed  bool                    `json:"changed"`
	Modified bool                    `json:"modified,omitempty"`
	Backup   bool                    `json:"backup,omitempty"`
	Rekeyed  bool                    `json:"rekeyed,omitempty"`
	Skipped  string                  `json:"skipped,omitempty"`
	Diff     string                  `json:"diff,omitempty"`
	Error    string                  `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked  int `json:"filesChecked"`
	FilesChanged  int `json:"filesChanged"`
	FilesModified int `json:"filesModified"`
	FilesSkipped  int `json:"filesSkipped"`
	FilesErrored  int `json:"filesErrored"`
	FilesRekeyed  int `json:"filesRekeyed"`
	Keys          int `json:"keys"`
	Warnings      int `json:"warnings"`
	Conflicts     int `json:"conflicts"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildJSONOutput(result)

	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.Warnings + output.Summary.Conflicts, nil
}

func buildJSONOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: analysis.ReportVersion,
		Files:   make([]JSONFileResult, 0),
		Catalog: map[string]any{},
	}

	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesChecked:  stats.FilesProcessed,
		FilesChanged:  stats.FilesChanged,
		FilesModified: stats.FilesModified,
		FilesSkipped:  stats.FilesSkipped,
		FilesErrored:  stats.FilesErrored,
		FilesRekeyed:  stats.FilesRekeyed,
		Keys:          stats.KeysExtracted,
		Warnings:      stats.Warnings,
		Conflicts:     stats.Conflicts,
	}

	if result.Catalog != nil {
		output.Catalog = result.Catalog.Nested()
		output.Conflicts = result.Catalog.Conflicts()
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for i := range result.Files {
		output.Files = append(output.Files, jsonFile(&result.Files[i]))
	}

	return output
}

func jsonFile(file *runner.FileOutcome) JSONFileResult {
	fileResult := JSONFileResult{
		Path:     analysis.DisplayPath(file),
		Kind:     string(file.Source.Kind),
		Prefix:   file.Prefix,
		TextMap:  map[string]string{},
		Warnings: make([]analysis.WarningEntry, 0),
		Changed:  file.Changed(),
		Modified: file.Written,
		Backup:   file.BackupCreated,
		Rekeyed:  file.Rekeyed,
		Diff:     file.Diff.String(),
	}

	switch {
	case file.Error != nil:
		fileResult.Error = file.Error.Error()
	case file.Skipped:
		fileResult.Skipped = file.Source.Reason
		if fileResult.Skipped == "" {
			fileResult.Skipped = "unsupported"
		}
	case file.Result != nil:
		fileResult.TextMap = file.Result.TextMap
		fileResult.Warnings = analysis.WarningEntries(file)
	}

	return fileResult
}
