package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/langex/internal/cli"
	"github.com/yaklabco/langex/internal/configloader"
	"github.com/yaklabco/langex/pkg/reporter"
)

// newProject creates a temporary project root. The .git marker keeps
// config discovery inside it.
func newProject(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func readCatalog(t *testing.T, path string) map[string]any {
	t.Helper()
	var nested map[string]any
	require.NoError(t, json.Unmarshal([]byte(readFile(t, path)), &nested))
	return nested
}

func TestIntegration_ExtractJSON(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{
		"src/a.js":    "const a = 'Hello world'\n",
		"src/App.vue": "<template><p>Good morning</p></template>\n",
	})

	stdout, _, err := execute(t, "extract", "--root", dir, "--format", "json", "--color", "never")
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))

	assert.Equal(t, 2, output.Summary.Keys)
	assert.Equal(t, 2, output.Summary.FilesChanged)
	assert.Zero(t, output.Summary.FilesModified)
	assert.Equal(t, map[string]any{"good_morning": "Good morning", "hello_world": "Hello world"}, output.Catalog)
	require.Len(t, output.Files, 2)

	assert.Equal(t, "const a = 'Hello world'\n", readFile(t, filepath.Join(dir, "src/a.js")), "sources are untouched")
}

func TestIntegration_WriteWithCatalog(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{
		"src/components/UserCard.vue": "<template><button>Send message</button></template>\n",
	})

	_, _, err := execute(t, "extract", "--root", dir, "src",
		"--write", "--yes", "--no-backups",
		"--prefix-from-path", "--catalog", "locales/en.json",
		"--format", "summary", "--color", "never")
	require.NoError(t, err)

	assert.Equal(t,
		"<template><button>{{ $t('components.user_card.send_message') }}</button></template>\n",
		readFile(t, filepath.Join(dir, "src/components/UserCard.vue")))

	catalog := readCatalog(t, filepath.Join(dir, "locales/en.json"))
	assert.Equal(t, map[string]any{
		"components": map[string]any{
			"user_card": map[string]any{"send_message": "Send message"},
		},
	}, catalog)

	_, err = os.Stat(filepath.Join(dir, "src/components/UserCard.vue.langex.bak"))
	assert.True(t, os.IsNotExist(err))
}

func TestIntegration_ExistingCatalogKeysAreReused(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{
		"a.js":            "const a = 'Hello world'\n",
		"locales/en.json": "{\n  \"greeting\": \"Hello world\"\n}\n",
	})

	_, _, err := execute(t, "extract", "--root", dir, "--write", "--yes", "--catalog", "locales/en.json", "--color", "never")
	require.NoError(t, err)

	assert.Equal(t, "const a = this.$t('greeting')\n", readFile(t, filepath.Join(dir, "a.js")))
	assert.Equal(t, map[string]any{"greeting": "Hello world"}, readCatalog(t, filepath.Join(dir, "locales/en.json")))
}

func TestIntegration_DryRun(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{"a.js": "const a = 'Hello world'\n"})

	stdout, _, err := execute(t, "extract", "--root", dir, "--dry-run", "--format", "diff",
		"--catalog", "en.json", "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, stdout, "+const a = this.$t('hello_world')")
	assert.Equal(t, "const a = 'Hello world'\n", readFile(t, filepath.Join(dir, "a.js")))
	_, err = os.Stat(filepath.Join(dir, "en.json"))
	assert.True(t, os.IsNotExist(err), "dry run writes no catalog")
}

func TestIntegration_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{
		".langex.yml": "key_prefix: app\ncalls:\n  script: i18n.t\nignore:\n  - \"legacy/**\"\n",
		"a.js":        "notify('Upload failed')\n",
		"legacy/b.js": "notify('Old text')\n",
	})

	stdout, _, err := execute(t, "extract", "--root", dir, "--format", "json", "--color", "never")
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))
	assert.Equal(t, map[string]any{"app": map[string]any{"upload_failed": "Upload failed"}}, output.Catalog)
	require.Len(t, output.Files, 1)
}

func TestIntegration_StrictWarnings(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{"a.js": "const a = `Hello ${name}, welcome`\n"})

	_, _, err := execute(t, "extract", "--root", dir, "--color", "never")
	require.NoError(t, err, "warnings alone do not fail")

	_, _, err = execute(t, "extract", "--root", dir, "--strict", "--color", "never")
	require.ErrorIs(t, err, cli.ErrWarningsFound)
	assert.Equal(t, cli.ExitWarnings, cli.ExitCode(err))
}

func TestIntegration_ParseFailure(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{
		"bad.js":  "const = ;\n",
		"good.js": "const a = 'Hello world'\n",
	})

	stdout, _, err := execute(t, "extract", "--root", dir, "--color", "never")
	require.ErrorIs(t, err, cli.ErrExtractionFailed)
	assert.Equal(t, cli.ExitFailures, cli.ExitCode(err))
	assert.Contains(t, stdout, "bad.js")
}

func TestIntegration_InvalidFlags(t *testing.T) {
	t.Parallel()

	dir := newProject(t, nil)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"format", []string{"--format", "xml"}, "unknown output format"},
		{"sort", []string{"--sort", "random"}, "invalid sort"},
		{"jobs", []string{"--jobs", "-1"}, "jobs must be >= 0"},
		{"root", []string{"--root", filepath.Join(dir, "missing")}, "root"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"extract", "--root", dir}, tt.args...)
			_, _, err := execute(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	dir := newProject(t, nil)
	path := filepath.Join(dir, configloader.DefaultProjectConfig)

	_, _, err := execute(t, "init", "--output", path)
	require.NoError(t, err)

	result, err := configloader.Load(t.Context(), configloader.LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	})
	require.NoError(t, err)
	assert.Equal(t, path, result.Paths.Project)
	assert.Equal(t, "this.$t", result.Config.Calls.Script)
	assert.Equal(t, []string{"dist/**", "**/*.spec.ts"}, result.Config.Ignore)

	_, _, err = execute(t, "init", "--output", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "init", "--output", path, "--force", "--full")
	require.NoError(t, err)
}

func TestIntegration_InitJSONPrints(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "init", "--format", "json")
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &parsed))
	assert.Contains(t, parsed, "calls")
}
