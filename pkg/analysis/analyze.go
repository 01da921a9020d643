// Package analysis aggregates runner results into report views.
package analysis

import (
	"cmp"
	"slices"
	"time"

	"github.com/yaklabco/langex/pkg/extract"
	"github.com/yaklabco/langex/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	kindMap   map[string]*KindAnalysis
	kindFiles map[string]map[string]bool
	files     []FileAnalysis
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		kindMap:   make(map[string]*KindAnalysis),
		kindFiles: make(map[string]map[string]bool),
	}
}

// DisplayPath returns the path shown for an outcome: the relative path when
// known, otherwise the absolute one.
func DisplayPath(outcome *runner.FileOutcome) string {
	if outcome.RelPath != "" {
		return outcome.RelPath
	}
	return outcome.Path
}

// warningKind returns the kind of w, defaulting to "notice".
func warningKind(w extract.Warning) string {
	if w.Kind == "" {
		return "notice"
	}
	return string(w.Kind)
}

func (ctx *analysisContext) getOrCreateKindAnalysis(kind string) *KindAnalysis {
	if _, ok := ctx.kindMap[kind]; !ok {
		ctx.kindMap[kind] = &KindAnalysis{Kind: kind}
		ctx.kindFiles[kind] = make(map[string]bool)
	}
	return ctx.kindMap[kind]
}

// createWarningEntry builds a WarningEntry with its line and column.
func createWarningEntry(outcome *runner.FileOutcome, path string, w extract.Warning) WarningEntry {
	line, column := outcome.Position(w.Offset)
	return WarningEntry{
		FilePath: path,
		Kind:     warningKind(w),
		Message:  w.Message,
		Value:    w.Value,
		Key:      w.Key,
		Exps:     w.Exps,
		Line:     line,
		Column:   column,
		Offset:   w.Offset,
	}
}

// WarningEntries returns the warnings of one outcome with their positions.
func WarningEntries(outcome *runner.FileOutcome) []WarningEntry {
	if outcome.Result == nil {
		return nil
	}
	path := DisplayPath(outcome)
	entries := make([]WarningEntry, 0, len(outcome.Result.Warnings))
	for _, w := range outcome.Result.Warnings {
		entries = append(entries, createWarningEntry(outcome, path, w))
	}
	return entries
}

func (ctx *analysisContext) buildByKind(opts Options) []KindAnalysis {
	result := make([]KindAnalysis, 0, len(ctx.kindMap))
	for kind, ka := range ctx.kindMap {
		for f := range ctx.kindFiles[kind] {
			ka.Files = append(ka.Files, f)
		}
		slices.Sort(ka.Files)
		result = append(result, *ka)
	}
	sortKindAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

// Analyze transforms a runner.Result into a Report.
// It performs a single pass through the outcomes to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	ctx := newAnalysisContext()
	report.Totals.Conflicts = result.Stats.Conflicts

	for i := range result.Files {
		outcome := &result.Files[i]
		report.Totals.Files++
		path := DisplayPath(outcome)

		if outcome.Error != nil {
			report.Totals.FilesErrored++
			ctx.files = append(ctx.files, FileAnalysis{Path: path, Error: outcome.Error.Error()})
			continue
		}
		if outcome.Skipped {
			report.Totals.FilesSkipped++
			continue
		}
		if outcome.Result == nil {
			continue
		}

		fa := FileAnalysis{
			Path:     path,
			Keys:     len(outcome.Result.TextMap),
			Warnings: len(outcome.Result.Warnings),
			Changed:  outcome.Changed(),
		}
		report.Totals.Keys += fa.Keys
		report.Totals.Warnings += fa.Warnings
		if fa.Changed {
			report.Totals.FilesChanged++
		}
		if outcome.Written {
			report.Totals.FilesModified++
		}
		if fa.Warnings > 0 {
			report.Totals.FilesWithWarnings++
		}

		kinds := make(map[string]bool)
		for _, w := range outcome.Result.Warnings {
			kind := warningKind(w)
			kinds[kind] = true

			ka := ctx.getOrCreateKindAnalysis(kind)
			ka.Warnings++
			ctx.kindFiles[kind][path] = true

			if opts.IncludeWarnings {
				report.Warnings = append(report.Warnings, createWarningEntry(outcome, path, w))
			}
		}
		for kind := range kinds {
			fa.Kinds = append(fa.Kinds, kind)
		}
		slices.Sort(fa.Kinds)

		if fa.Keys > 0 || fa.Warnings > 0 {
			ctx.files = append(ctx.files, fa)
		}
	}

	if opts.IncludeByKind {
		report.ByKind = ctx.buildByKind(opts)
	}
	if opts.IncludeByFile {
		sortFileAnalysis(ctx.files, opts.SortBy, opts.SortDesc)
		report.ByFile = ctx.files
	}

	return report
}

func sortKindAnalysis(kinds []KindAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(kinds, func(left, right KindAnalysis) int {
		if sortBy == SortByAlpha {
			return cmp.Compare(left.Kind, right.Kind)
		}
		result := cmp.Compare(left.Warnings, right.Warnings)
		if desc {
			result = -result
		}
		if result == 0 {
			result = cmp.Compare(left.Kind, right.Kind)
		}
		return result
	})
}

func sortFileAnalysis(files []FileAnalysis, sortBy SortField, desc bool) {
	slices.SortStableFunc(files, func(left, right FileAnalysis) int {
		if sortBy == SortByAlpha {
			return cmp.Compare(left.Path, right.Path)
		}
		result := cmp.Compare(left.Warnings, right.Warnings)
		if result == 0 {
			result = cmp.Compare(left.Keys, right.Keys)
		}
		if desc {
			result = -result
		}
		if result == 0 {
			result = cmp.Compare(left.Path, right.Path)
		}
		return result
	})
}
