// Package runner provides multi-file extraction orchestration: discovery,
// a bounded worker pool, cross-file key reconciliation and safe writes.
package runner

import (
	"github.com/yaklabco/langex/pkg/catalog"
	"github.com/yaklabco/langex/pkg/config"
	"github.com/yaklabco/langex/pkg/langdetect"
)

// Options controls a multi-file extraction run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// to derive path-based key prefixes. Defaults to the process working
	// directory.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// to process. Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs, when set, restrict discovery to matching paths.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files or directories. These merge ignore
	// rules from config and CLI (--ignore).
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config

	// Catalog seeds the run with existing translations. Their keys are
	// kept for the same text and never reused for different text. The
	// run's result extends a clone of it.
	Catalog *catalog.Catalog
}

// DefaultExtensions returns every extension langex can extract from.
func DefaultExtensions() []string {
	return langdetect.Extensions()
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveConfig() *config.Config {
	if o.Config == nil {
		return config.NewConfig()
	}
	return o.Config
}
