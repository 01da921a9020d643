package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/langex/internal/configloader"
	"github.com/yaklabco/langex/internal/logging"
	"github.com/yaklabco/langex/pkg/analysis"
	"github.com/yaklabco/langex/pkg/catalog"
	"github.com/yaklabco/langex/pkg/config"
	"github.com/yaklabco/langex/pkg/fsutil"
	"github.com/yaklabco/langex/pkg/reporter"
	"github.com/yaklabco/langex/pkg/runner"
)

// catalogFilePermissions is the file mode for written catalogs.
const catalogFilePermissions = 0o644

type extractFlags struct {
	root       string
	format     string
	include    []string
	yes        bool
	showKeys   bool
	noContext  bool
	compact    bool
	perFile    bool
	sortBy     string
	followLink bool
}

func newExtractCommand() *cobra.Command {
	var cfg config.Config
	flags := &extractFlags{}

	cmd := &cobra.Command{
		Use:     "extract [paths...]",
		Aliases: []string{"x"},
		Short:   "Extract hard-coded text into translation keys",
		Long:    extractLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, &cfg, flags)
		},
	}

	addExtractFlags(cmd, &cfg, flags)

	return cmd
}

const extractLongDescription = `Find user-visible text in JavaScript, TypeScript, JSX and Vue
single-file components and replace it with translate calls.

By default every supported file under the current directory is extracted
and the result is reported without touching any file. Use --write to
rewrite sources in place and --catalog to save the key/text catalog.

Examples:
  langex extract                          # Report what would be extracted
  langex extract src/components           # Extract a single directory
  langex extract --dry-run                # Show unified diffs
  langex extract --write --catalog locales/en.json
  langex extract --prefix-from-path       # Keys like components.user_card.save
  langex extract --format json            # Machine-readable output`

func addExtractFlags(cmd *cobra.Command, cfg *config.Config, flags *extractFlags) {
	cmd.Flags().StringVar(&cfg.KeyPrefix, "prefix", "", "prefix joined to every generated key")
	cmd.Flags().BoolVar(&cfg.PrefixFromPath, "prefix-from-path", false, "derive a key prefix from each file path")
	cmd.Flags().IntVar(&cfg.MaxKeyLength, "max-key-length", 0, "maximum slug length of generated keys (0 = default)")
	cmd.Flags().BoolVarP(&cfg.Write, "write", "w", false, "rewrite source files in place")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show unified diffs without writing")
	cmd.Flags().StringVar(&cfg.Catalog, "catalog", "", "write the nested JSON catalog to this file")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json, diff, summary, table")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&cfg.Ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only extract paths matching these globs")
	cmd.Flags().StringSliceVar(&cfg.Extensions, "extensions", nil, "restrict discovery to these extensions")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when writing")
	cmd.Flags().BoolVar(&cfg.Strict, "strict", false, "exit with code 2 when warnings remain")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "do not ask for confirmation before --write")
	cmd.Flags().StringVar(&flags.root, "root", "", "project root for config discovery and key prefixes (default: current directory)")
	cmd.Flags().BoolVar(&flags.followLink, "follow-symlinks", false, "follow directory symlinks")
	cmd.Flags().BoolVar(&flags.showKeys, "show-keys", false, "list extracted keys in text output")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source lines under warnings")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVar(&flags.perFile, "per-file", false, "output a separate table for each file (table format)")
	cmd.Flags().StringVar(&flags.sortBy, "sort", string(analysis.SortByCount),
		"order of summary tables: count or alpha")
}

func runExtract(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *extractFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if flags.format != "" {
		format, err := config.ParseFormat(flags.format)
		if err != nil {
			return err
		}
		cliCfg.Format = format
	}

	sortBy := analysis.SortField(flags.sortBy)
	if sortBy != analysis.SortByCount && sortBy != analysis.SortByAlpha {
		return fmt.Errorf("invalid sort %q: must be count or alpha", flags.sortBy)
	}

	workDir, err := resolveRoot(flags.root)
	if err != nil {
		return err
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}
	cfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldPaths, loadResult.LoadedFrom)
	}
	logger.Debug("configuration loaded",
		logging.FieldConfig, loadResult.Paths.Explicit,
		logging.FieldWorkingDir, workDir,
		logging.FieldPrefix, cfg.KeyPrefix,
		logging.FieldWrite, cfg.Write,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
	)

	if cfg.Write && !cfg.DryRun && !flags.yes && isInteractive() {
		ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(),
			fmt.Sprintf("Rewrite source files under %s in place?", workDir))
		if err != nil {
			return err
		}
		if !ok {
			logger.Info("aborted; no files were changed")
			return nil
		}
	}

	catalogPath := resolveCatalogPath(cfg.Catalog, workDir)
	seed, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}

	result, err := runner.New(logger).Run(ctx, runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     normalizeExtensions(cfg.Extensions),
		IncludeGlobs:   flags.include,
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: flags.followLink,
		Jobs:           cfg.Jobs,
		Config:         cfg,
		Catalog:        seed,
	})
	if err != nil {
		return errors.Join(errors.New("extraction run failed"), err)
	}

	logger.Debug("extraction finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldKeysExtracted, result.Stats.KeysExtracted,
	)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      cfg.Format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		ShowKeys:    flags.showKeys,
		Compact:     flags.compact,
		PerFile:     flags.perFile,
		SortBy:      sortBy,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if catalogPath != "" && !cfg.DryRun {
		if err := writeCatalog(ctx, catalogPath, result.Catalog); err != nil {
			return err
		}
	}

	return resultError(ExitCodeFromResult(result, cfg.Strict))
}

// resolveRoot returns the absolute project root, defaulting to the
// process working directory.
func resolveRoot(root string) (string, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("root: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("root %s is not a directory", root)
	}
	return abs, nil
}

func resolveCatalogPath(path, workDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workDir, path)
}

// normalizeExtensions lowercases extensions and adds the leading dot.
func normalizeExtensions(exts []string) []string {
	if len(exts) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return normalized
}

// loadCatalog reads an existing catalog. A missing file yields nil.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	cat, err := catalog.Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

func writeCatalog(ctx context.Context, path string, cat *catalog.Catalog) error {
	data, err := cat.MarshalJSON()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create catalog directory: %w", err)
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, data, catalogFilePermissions)
	if err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}

	logging.Default().Debug("catalog", logging.FieldPath, path, logging.FieldWrite, written)
	return nil
}

// isInteractive returns true if stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// confirm asks a yes/no question; the default answer is no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s [y/N] ", question); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
