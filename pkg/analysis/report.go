package analysis

import "time"

// Report contains pre-computed views of an extraction run.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Warnings is the flat list for detailed output.
	Warnings []WarningEntry `json:"warnings,omitempty"`

	// ByFile groups extraction results by file path.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByKind groups warnings by kind.
	ByKind []KindAnalysis `json:"byKind,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// WarningEntry represents a single warning in the report.
type WarningEntry struct {
	FilePath string   `json:"filePath"`
	Kind     string   `json:"kind"`
	Message  string   `json:"message"`
	Value    string   `json:"value"`
	Key      string   `json:"key,omitempty"`
	Exps     []string `json:"exps,omitempty"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Offset   int      `json:"offset"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files             int `json:"filesChecked"`
	FilesChanged      int `json:"filesChanged"`
	FilesModified     int `json:"filesModified"`
	FilesWithWarnings int `json:"filesWithWarnings"`
	FilesErrored      int `json:"filesErrored"`
	FilesSkipped      int `json:"filesSkipped"`
	Keys              int `json:"keys"`
	Warnings          int `json:"warnings"`
	Conflicts         int `json:"conflicts"`
}

// HasWarnings returns true if there are any warnings or catalog conflicts.
func (t Totals) HasWarnings() bool {
	return t.Warnings > 0 || t.Conflicts > 0
}

// HasErrors returns true if any file failed.
func (t Totals) HasErrors() bool {
	return t.FilesErrored > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path     string   `json:"path"`
	Keys     int      `json:"keys"`
	Warnings int      `json:"warnings"`
	Changed  bool     `json:"changed"`
	Error    string   `json:"error,omitempty"`
	Kinds    []string `json:"kinds,omitempty"`
}

// KindAnalysis contains aggregated data for a single warning kind.
type KindAnalysis struct {
	Kind     string   `json:"kind"`
	Warnings int      `json:"warnings"`
	Files    []string `json:"files,omitempty"`
}
