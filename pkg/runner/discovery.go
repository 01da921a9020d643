package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/langex/pkg/langdetect"
)

// Discover finds source files matching opts under the working directory.
// Hidden and vendored directories (node_modules, dist, ...) are skipped
// during the walk. It returns a sorted list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	filter, err := newFileFilter(opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			// Explicit files bypass the hidden and vendored directory rules.
			if filter.matchesFile(absPath, workDir) {
				add(absPath)
			}
			continue
		}

		discovered, err := walkDirectory(ctx, absPath, workDir, filter, opts.FollowSymlinks)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	slices.Sort(files)
	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walkDirectory recursively walks root and returns matching files.
func walkDirectory(ctx context.Context, root, workDir string, filter *fileFilter, followSymlinks bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(entry.Name(), ".") || filter.skipsDirectory(path, workDir) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // inaccessible targets are skipped
			}
			if info.IsDir() {
				if !followSymlinks {
					return nil
				}
				// Walk the target; WalkDir uses Lstat on its root, which
				// would otherwise stop at the link.
				subFiles, err := walkDirectory(ctx, realPath, workDir, filter, followSymlinks)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if filter.matchesFile(path, workDir) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// pattern is a compiled ignore or include glob.
type pattern struct {
	source string
	glob   glob.Glob

	// baseOnly patterns carry no separator and match the file name.
	baseOnly bool
}

// fileFilter applies the extension, include and exclude rules.
type fileFilter struct {
	extensions []string
	include    []pattern
	exclude    []pattern
}

func newFileFilter(opts Options) (*fileFilter, error) {
	include, err := compilePatterns(opts.IncludeGlobs)
	if err != nil {
		return nil, err
	}
	exclude, err := compilePatterns(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	exts := make([]string, 0, len(opts.effectiveExtensions()))
	for _, ext := range opts.effectiveExtensions() {
		exts = append(exts, strings.ToLower(ext))
	}

	return &fileFilter{extensions: exts, include: include, exclude: exclude}, nil
}

// CompileGlob compiles a discovery glob. "*" stays within one path
// segment, "**" crosses segments.
func CompileGlob(source string) (glob.Glob, error) {
	g, err := glob.Compile(filepath.ToSlash(source), '/')
	if err != nil {
		return nil, fmt.Errorf("invalid glob %q: %w", source, err)
	}
	return g, nil
}

func compilePatterns(sources []string) ([]pattern, error) {
	patterns := make([]pattern, 0, len(sources))
	for _, source := range sources {
		g, err := CompileGlob(source)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, pattern{
			source:   source,
			glob:     g,
			baseOnly: !strings.Contains(source, "/"),
		})
	}
	return patterns, nil
}

// match reports whether the slash-separated relative path matches. A
// leading "**/" also matches at the top level.
func (p pattern) match(rel string) bool {
	if p.glob.Match(rel) {
		return true
	}
	if p.baseOnly {
		return p.glob.Match(rel[strings.LastIndex(rel, "/")+1:])
	}
	if rest, ok := strings.CutPrefix(p.source, "**/"); ok {
		return !strings.Contains(rel, "/") && matchSimple(rest, rel)
	}
	return false
}

func matchSimple(source, name string) bool {
	g, err := CompileGlob(source)
	return err == nil && g.Match(name)
}

func matchAny(patterns []pattern, rel string) bool {
	for _, p := range patterns {
		if p.match(rel) {
			return true
		}
	}
	return false
}

func relSlash(path, workDir string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// skipsDirectory reports whether a directory is excluded or vendored.
func (f *fileFilter) skipsDirectory(path, workDir string) bool {
	rel := relSlash(path, workDir)
	if langdetect.IsVendored(rel + "/") {
		return true
	}
	return matchAny(f.exclude, rel) || matchAny(f.exclude, rel+"/")
}

// matchesFile checks a file against the extension, exclude and include
// rules.
func (f *fileFilter) matchesFile(path, workDir string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(f.extensions, ext) {
		return false
	}

	rel := relSlash(path, workDir)
	if matchAny(f.exclude, rel) {
		return false
	}
	if len(f.include) > 0 && !matchAny(f.include, rel) {
		return false
	}
	return true
}
