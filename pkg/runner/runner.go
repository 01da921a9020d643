package runner

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/yaklabco/langex/internal/logging"
	"github.com/yaklabco/langex/pkg/catalog"
	"github.com/yaklabco/langex/pkg/extract"
	"github.com/yaklabco/langex/pkg/fix"
	"github.com/yaklabco/langex/pkg/fsutil"
	"github.com/yaklabco/langex/pkg/keygen"
	"github.com/yaklabco/langex/pkg/langdetect"
)

// Runner orchestrates multi-file extraction.
type Runner struct {
	logger *log.Logger
}

// New creates a Runner. A nil logger selects logging.Default().
func New(logger *log.Logger) *Runner {
	if logger == nil {
		logger = logging.Default()
	}
	return &Runner{logger: logger}
}

// Run discovers files under opts.Paths and extracts them.
//
// Files are read and extracted concurrently, each with its own Extractor.
// Their key maps are then merged into the catalog in path order; a file
// whose keys clash with texts merged before it is extracted again with
// those keys reserved, so results do not depend on the job count.
// Finally changed files are diffed or written.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	cfg := opts.effectiveConfig()

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	opts.WorkingDir = workDir

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	st, err := newSettings(cfg)
	if err != nil {
		return nil, err
	}

	cat := catalog.New()
	if opts.Catalog != nil {
		for key, text := range opts.Catalog.All() {
			cat.Add(key, text, "")
		}
	}

	result := &Result{
		Files:   make([]FileOutcome, 0, len(files)),
		Catalog: cat,
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	r.logger.Debug("extracting", logging.FieldFilesDiscovered, len(files), logging.FieldJobs, jobs)

	outcomes := r.extractAll(ctx, files, workDir, st, jobs, opts.Catalog)
	r.reconcile(ctx, outcomes, st, cat)
	r.finishAll(ctx, outcomes, st, jobs)

	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	result.Stats.Conflicts = len(cat.Conflicts())

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

// extractAll reads and extracts every file on a bounded pool and returns
// the outcomes sorted by path. The seed catalog is only read.
func (r *Runner) extractAll(
	ctx context.Context,
	files []string,
	workDir string,
	st *settings,
	jobs int,
	seed *catalog.Catalog,
) []FileOutcome {
	p := pool.NewWithResults[FileOutcome]().WithMaxGoroutines(jobs)

	for _, path := range files {
		p.Go(func() FileOutcome {
			outcome := FileOutcome{Path: path, RelPath: relSlash(path, workDir)}
			r.extractFile(ctx, &outcome, st, seed)
			return outcome
		})
	}

	outcomes := p.Wait()
	slices.SortFunc(outcomes, func(a, b FileOutcome) int {
		return strings.Compare(a.Path, b.Path)
	})
	return outcomes
}

// extractFile reads (once), classifies and extracts one file. A non-nil
// reserved catalog seeds the key generator.
func (r *Runner) extractFile(ctx context.Context, outcome *FileOutcome, st *settings, reserved *catalog.Catalog) {
	if err := ctx.Err(); err != nil {
		outcome.Error = err
		return
	}

	if outcome.info == nil {
		content, info, err := fsutil.ReadFile(ctx, outcome.Path)
		if err != nil {
			outcome.Error = err
			return
		}
		outcome.Content = string(content)
		outcome.info = info
		outcome.Source = langdetect.Classify(outcome.RelPath, content)
	}

	if !outcome.Source.Supported() {
		outcome.Skipped = true
		r.logger.Debug("skipped", logging.FieldPath, outcome.RelPath, logging.FieldReason, outcome.Source.Reason)
		return
	}

	outcome.Result = nil
	outcome.Prefix = st.keyPrefixFor(outcome.RelPath)
	gen := keygen.New(
		keygen.WithPrefix(outcome.Prefix),
		keygen.WithMaxLength(st.maxKeyLength),
		keygen.WithLogger(r.logger.With(logging.FieldPath, outcome.RelPath)),
	)
	if reserved != nil {
		for key, text := range reserved.All() {
			gen.Reserve(key, text)
		}
	}

	ext := extract.New(
		extract.WithChecker(st.checker),
		extract.WithGenerator(gen),
		extract.WithTranslateFunctions(st.translate...),
		extract.WithLogger(r.logger),
	)

	res, err := extractSource(ctx, ext, outcome.Source, outcome.Content, st.policies)
	if err != nil {
		outcome.Error = fmt.Errorf("%s: %w", outcome.RelPath, err)
		return
	}
	outcome.Result = res

	r.logger.Debug("extracted",
		logging.FieldPath, outcome.RelPath,
		logging.FieldKeysExtracted, len(res.TextMap),
		logging.FieldWarnings, len(res.Warnings),
	)
	for _, w := range res.Warnings {
		r.logger.Debug(w.Message,
			logging.FieldPath, outcome.RelPath,
			logging.FieldOffset, w.Offset,
			logging.FieldText, w.Value,
		)
	}
}

// extractSource picks the extractor entry point for the file kind.
func extractSource(
	ctx context.Context,
	ext *extract.Extractor,
	src langdetect.Source,
	text string,
	policies extract.Policies,
) (*extract.Result, error) {
	switch src.Kind {
	case langdetect.KindVue:
		return ext.ExtractVue(ctx, text, policies)
	case langdetect.KindJSX:
		return ext.ExtractJSX(ctx, text, src.Dialect, policies.JSX)
	default:
		return ext.ExtractScript(ctx, text, src.Dialect, policies.ScriptPolicy(false, src.Dialect))
	}
}

// reconcile merges the key maps into cat in path order, re-extracting
// files whose keys clash with earlier entries.
func (r *Runner) reconcile(ctx context.Context, outcomes []FileOutcome, st *settings, cat *catalog.Catalog) {
	for i := range outcomes {
		outcome := &outcomes[i]
		if outcome.Result == nil {
			continue
		}

		if clashes := cat.Clashes(outcome.Result.TextMap); len(clashes) > 0 {
			r.logger.Debug("re-keying", logging.FieldPath, outcome.RelPath, logging.FieldKey, clashes[0])
			r.extractFile(ctx, outcome, st, cat)
			if outcome.Result == nil {
				continue
			}
			outcome.Rekeyed = true
		}

		cat.Merge(outcome.Result.TextMap, outcome.RelPath)
	}
}

// finishAll diffs and writes changed files on a bounded pool.
func (r *Runner) finishAll(ctx context.Context, outcomes []FileOutcome, st *settings, jobs int) {
	if !st.write && !st.wantDiff {
		return
	}

	p := pool.New().WithMaxGoroutines(jobs)
	for i := range outcomes {
		outcome := &outcomes[i]
		if !outcome.Changed() {
			continue
		}
		p.Go(func() {
			r.finishFile(ctx, outcome, st)
		})
	}
	p.Wait()
}

func (r *Runner) finishFile(ctx context.Context, outcome *FileOutcome, st *settings) {
	if st.wantDiff {
		diff, err := fix.GenerateDiff(outcome.RelPath, outcome.Content, outcome.Result.Text)
		if err != nil {
			outcome.Error = err
			return
		}
		outcome.Diff = diff
	}

	if !st.write {
		return
	}

	created, err := fsutil.ReplaceFile(ctx, outcome.info, []byte(outcome.Result.Text), st.backup)
	outcome.BackupCreated = created
	if err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", outcome.RelPath, err)
		return
	}
	outcome.Written = true

	r.logger.Debug("written", logging.FieldPath, outcome.RelPath, logging.FieldBackup, created)
}
