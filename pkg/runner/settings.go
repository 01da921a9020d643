package runner

import (
	"fmt"

	"github.com/yaklabco/langex/pkg/checker"
	"github.com/yaklabco/langex/pkg/config"
	"github.com/yaklabco/langex/pkg/extract"
	"github.com/yaklabco/langex/pkg/fsutil"
)

// Policies resolves the call policies of cfg, falling back to
// extract.DefaultPolicies for empty entries.
func Policies(cfg *config.Config) extract.Policies {
	policies := extract.DefaultPolicies()
	if cfg == nil {
		return policies
	}

	override := func(p *extract.CallPolicy, prefix string) {
		if prefix != "" {
			p.Prefix = prefix
		}
	}
	override(&policies.Script, cfg.Calls.Script)
	override(&policies.Setup, cfg.Calls.Setup)
	override(&policies.Template, cfg.Calls.Template)
	override(&policies.JSX, cfg.Calls.JSX)

	return policies
}

// CheckerOptions resolves the checker policy of cfg on top of
// checker.DefaultOptions.
func CheckerOptions(cfg *config.Config) checker.Options {
	opts := checker.DefaultOptions()
	if cfg == nil {
		return opts
	}

	c := cfg.Checker
	if c.MinLength > 0 {
		opts.MinLength = c.MinLength
	}
	opts.SkipURLs = c.SkipURLsOrDefault()
	if c.ExcludedAttributes != nil {
		opts.ExcludedAttributes = c.ExcludedAttributes
	}
	if c.AllowedAttributes != nil {
		opts.AllowedAttributes = c.AllowedAttributes
	}
	opts.IgnorePatterns = c.IgnorePatterns

	return opts
}

// BackupConfig resolves the backup behavior of cfg.
func BackupConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	mode := fsutil.BackupMode(cfg.Backups.Mode)
	if mode == "" {
		mode = fsutil.BackupModeSidecar
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    mode,
	}
}

// settings is the immutable per-run setup shared by every worker.
type settings struct {
	checker        *checker.Checker
	policies       extract.Policies
	translate      []string
	keyPrefix      string
	prefixFromPath bool
	maxKeyLength   int
	backup         fsutil.BackupConfig
	write          bool
	wantDiff       bool
}

func newSettings(cfg *config.Config) (*settings, error) {
	chk, err := checker.New(CheckerOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("checker: %w", err)
	}

	translate := cfg.TranslateFunctions
	if len(translate) == 0 {
		translate = extract.DefaultTranslateFunctions()
	}

	return &settings{
		checker:        chk,
		policies:       Policies(cfg),
		translate:      translate,
		keyPrefix:      cfg.KeyPrefix,
		prefixFromPath: cfg.PrefixFromPath,
		maxKeyLength:   cfg.MaxKeyLength,
		backup:         BackupConfig(cfg),
		write:          cfg.Write && !cfg.DryRun,
		wantDiff:       cfg.DryRun || cfg.Format == config.FormatDiff,
	}, nil
}
