package runner

import (
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/langex/pkg/catalog"
	"github.com/yaklabco/langex/pkg/extract"
	"github.com/yaklabco/langex/pkg/fix"
	"github.com/yaklabco/langex/pkg/fsutil"
	"github.com/yaklabco/langex/pkg/langdetect"
)

// FileOutcome is the result of processing one file.
type FileOutcome struct {
	// Path is the absolute file path.
	Path string

	// RelPath is Path relative to the working directory, slash-separated.
	RelPath string

	// Source is the detected file kind.
	Source langdetect.Source

	// Prefix is the key prefix used for the file.
	Prefix string

	// Result holds the extraction result. Nil when the file was skipped
	// or failed.
	Result *extract.Result

	// Diff is set in dry-run or diff mode for changed files.
	Diff *fix.Diff

	// Skipped is true when the file kind is not extractable.
	Skipped bool

	// Rekeyed is true when the file was extracted again to avoid keys
	// already holding other text.
	Rekeyed bool

	// Written is true when the rewritten source was saved.
	Written bool

	// BackupCreated is true when a backup was made before writing.
	BackupCreated bool

	// Error is set if the file could not be processed.
	Error error

	// Content is the source as read, before any rewrite.
	Content string

	info *fsutil.FileInfo
}

// Changed reports whether extraction rewrote the file.
func (o *FileOutcome) Changed() bool {
	return o.Result != nil && o.Result.Changed()
}

// Position converts a byte offset in Content to a 1-based line and
// column. Columns count runes.
func (o *FileOutcome) Position(offset int) (line, column int) {
	if offset < 0 || offset > len(o.Content) {
		return 0, 0
	}
	before := o.Content[:offset]
	line = strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return line, utf8.RuneCountInString(before[lineStart:]) + 1
}

// SourceLine returns the 1-based line of Content without its newline.
func (o *FileOutcome) SourceLine(line int) string {
	if line < 1 {
		return ""
	}
	rest := o.Content
	for range line - 1 {
		i := strings.IndexByte(rest, '\n')
		if i < 0 {
			return ""
		}
		rest = rest[i+1:]
	}
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimSuffix(rest, "\r")
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesSkipped    int
	FilesErrored    int

	// FilesChanged counts files with at least one replacement.
	FilesChanged int

	// FilesModified counts files written to disk.
	FilesModified int

	// FilesRekeyed counts files extracted twice to resolve key clashes.
	FilesRekeyed int

	KeysExtracted int
	Warnings      int

	// Conflicts counts catalog entries that could not be added.
	Conflicts int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each discovered file, ordered by
	// path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Catalog holds every extracted text, merged in path order on top of
	// the seed catalog.
	Catalog *catalog.Catalog

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasFailures reports whether any file could not be processed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasWarnings reports whether extraction produced warnings or catalog
// conflicts.
func (r *Result) HasWarnings() bool {
	if r == nil {
		return false
	}
	return r.Stats.Warnings > 0 || r.Stats.Conflicts > 0
}

// accumulate updates the stats with a finished file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
		return
	case outcome.Skipped:
		r.Stats.FilesSkipped++
		return
	case outcome.Result == nil:
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.KeysExtracted += len(outcome.Result.TextMap)
	r.Stats.Warnings += len(outcome.Result.Warnings)

	if outcome.Changed() {
		r.Stats.FilesChanged++
	}
	if outcome.Written {
		r.Stats.FilesModified++
	}
	if outcome.Rekeyed {
		r.Stats.FilesRekeyed++
	}
}
