package runner_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/langex/internal/logging"
	"github.com/yaklabco/langex/pkg/catalog"
	"github.com/yaklabco/langex/pkg/config"
	"github.com/yaklabco/langex/pkg/extract"
	"github.com/yaklabco/langex/pkg/fsutil"
	"github.com/yaklabco/langex/pkg/runner"
)

func newRunner() *runner.Runner {
	var buf bytes.Buffer
	return runner.New(logging.NewWithWriter(&buf, "error"))
}

func run(t *testing.T, dir string, cfg *config.Config, jobs int) *runner.Result {
	t.Helper()
	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Jobs:       jobs,
		Config:     cfg,
	})
	require.NoError(t, err)
	return result
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func outcomeFor(t *testing.T, result *runner.Result, rel string) runner.FileOutcome {
	t.Helper()
	for _, outcome := range result.Files {
		if outcome.RelPath == rel {
			return outcome
		}
	}
	t.Fatalf("no outcome for %s", rel)
	return runner.FileOutcome{}
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result := run(t, t.TempDir(), nil, 0)
	assert.Zero(t, result.Stats.FilesDiscovered)
	assert.Empty(t, result.Files)
	assert.Zero(t, result.Catalog.Len())
	assert.False(t, result.HasFailures())
}

func TestRunner_Run_ExtractsWithoutWriting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/a.js":    "const a = 'Hello world'\n",
		"src/App.vue": "<template><p>Good morning</p></template>\n",
		"README.md":   "# Title\n",
	})

	result := run(t, dir, config.NewConfig(), 2)

	assert.Equal(t, 2, result.Stats.FilesDiscovered)
	assert.Equal(t, 2, result.Stats.FilesProcessed)
	assert.Equal(t, 2, result.Stats.FilesChanged)
	assert.Zero(t, result.Stats.FilesModified)
	assert.Equal(t, 2, result.Stats.KeysExtracted)
	assert.Equal(t, []string{"good_morning", "hello_world"}, result.Catalog.Keys())

	vue := outcomeFor(t, result, "src/App.vue")
	require.NotNil(t, vue.Result)
	assert.Equal(t, "<template><p>{{ $t('good_morning') }}</p></template>\n", vue.Result.Text)
	assert.Nil(t, vue.Diff)
	assert.False(t, vue.Written)

	assert.Equal(t, "const a = 'Hello world'\n", readFile(t, filepath.Join(dir, "src/a.js")))
}

func TestRunner_Run_Write(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/a.js":    "const a = 'Hello world'\n",
		"src/b.ts":    "export const b: string = 'Saved successfully'\n",
		"src/App.jsx": "export const App = () => <p>Welcome home</p>\n",
		"src/none.js": "const n = 1\n",
	})

	cfg := config.NewConfig()
	cfg.Write = true
	result := run(t, dir, cfg, 0)

	assert.Equal(t, 3, result.Stats.FilesModified)
	assert.Equal(t, "const a = this.$t('hello_world')\n", readFile(t, filepath.Join(dir, "src/a.js")))
	assert.Equal(t, "export const b: string = t('saved_successfully')\n", readFile(t, filepath.Join(dir, "src/b.ts")))
	assert.Equal(t, "export const App = () => <p>{t('welcome_home')}</p>\n", readFile(t, filepath.Join(dir, "src/App.jsx")))

	assert.Equal(t, "const a = 'Hello world'\n", readFile(t, filepath.Join(dir, "src/a.js"+fsutil.BackupSuffix)))
	assert.True(t, outcomeFor(t, result, "src/a.js").BackupCreated)

	_, err := os.Stat(filepath.Join(dir, "src/none.js"+fsutil.BackupSuffix))
	assert.True(t, os.IsNotExist(err), "unchanged files are not backed up")
}

func TestRunner_Run_WriteWithoutBackups(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.js": "alert('Profile updated')\n"})

	cfg := config.NewConfig()
	cfg.Write = true
	cfg.NoBackups = true
	run(t, dir, cfg, 1)

	assert.Equal(t, "alert(this.$t('profile_updated'))\n", readFile(t, filepath.Join(dir, "a.js")))
	_, err := os.Stat(filepath.Join(dir, "a.js"+fsutil.BackupSuffix))
	assert.True(t, os.IsNotExist(err))
}

func TestRunner_Run_DryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.js": "const a = 'Hello world'\n"})

	cfg := config.NewConfig()
	cfg.Write = true
	cfg.DryRun = true
	result := run(t, dir, cfg, 1)

	outcome := outcomeFor(t, result, "a.js")
	require.NotNil(t, outcome.Diff)
	assert.True(t, outcome.Diff.HasChanges())
	assert.Contains(t, outcome.Diff.String(), "+const a = this.$t('hello_world')")
	assert.False(t, outcome.Written)
	assert.Equal(t, "const a = 'Hello world'\n", readFile(t, filepath.Join(dir, "a.js")))
}

func TestRunner_Run_CrossFileKeyClash(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"a.js": "const a = 'Hello world'\n",
		"b.js": "const b = 'Hello, world!'\n",
		"c.js": "const c = 'Hello world'\n",
	}

	for _, jobs := range []int{1, 4} {
		dir := t.TempDir()
		writeTree(t, dir, files)

		result := run(t, dir, config.NewConfig(), jobs)

		text, ok := result.Catalog.Get("hello_world")
		require.True(t, ok)
		assert.Equal(t, "Hello world", text)
		text, ok = result.Catalog.Get("hello_world_2")
		require.True(t, ok)
		assert.Equal(t, "Hello, world!", text)
		assert.Empty(t, result.Catalog.Conflicts())

		b := outcomeFor(t, result, "b.js")
		assert.True(t, b.Rekeyed)
		assert.Equal(t, "const b = this.$t('hello_world_2')\n", b.Result.Text)
		assert.False(t, outcomeFor(t, result, "c.js").Rekeyed, "same text keeps its key")
		assert.Equal(t, 1, result.Stats.FilesRekeyed)
	}
}

func TestRunner_Run_PrefixFromPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/components/UserCard.vue": "<template><button>Send message</button></template>\n",
	})

	cfg := config.NewConfig()
	cfg.KeyPrefix = "app"
	cfg.PrefixFromPath = true
	result := run(t, dir, cfg, 1)

	outcome := outcomeFor(t, result, "src/components/UserCard.vue")
	assert.Equal(t, "app.components.user_card", outcome.Prefix)
	assert.Equal(t, []string{"app.components.user_card.send_message"}, result.Catalog.Keys())
}

func TestRunner_Run_SeedCatalog(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.js": "const a = 'Hello world'\nconst b = 'Goodbye'\n"})

	seed := catalog.New()
	seed.Add("greeting", "Hello world", "")

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Config:     config.NewConfig(),
		Catalog:    seed,
	})
	require.NoError(t, err)

	outcome := outcomeFor(t, result, "a.js")
	assert.Equal(t, "const a = this.$t('greeting')\nconst b = this.$t('goodbye')\n", outcome.Result.Text)
	assert.Equal(t, []string{"goodbye", "greeting"}, result.Catalog.Keys())
	assert.Equal(t, 1, seed.Len(), "seed catalog is not modified")
}

func TestRunner_Run_CustomCalls(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.js": "notify('Upload failed')\n"})

	cfg := config.NewConfig()
	cfg.Calls.Script = "i18n.t"
	result := run(t, dir, cfg, 1)

	assert.Equal(t, "notify(i18n.t('upload_failed'))\n", outcomeFor(t, result, "a.js").Result.Text)
}

func TestRunner_Run_ParseErrorIsPerFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"bad.js":  "const = ;\n",
		"good.js": "const a = 'Hello world'\n",
	})

	result := run(t, dir, config.NewConfig(), 2)

	assert.True(t, result.HasFailures())
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 1, result.Stats.FilesProcessed)
	require.ErrorIs(t, outcomeFor(t, result, "bad.js").Error, extract.ErrParse)
	assert.Equal(t, []string{"hello_world"}, result.Catalog.Keys())
}

func TestRunner_Run_SkipsVendoredExplicitFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"node_modules/lib/index.js": "const a = 'Hello world'\n"})

	result, err := newRunner().Run(context.Background(), runner.Options{
		Paths:      []string{"node_modules/lib/index.js"},
		WorkingDir: dir,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.FilesSkipped)
	assert.True(t, result.Files[0].Skipped)
	assert.Zero(t, result.Catalog.Len())
}

func TestRunner_Run_Warnings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.js": "const a = `Hello ${name}, welcome`\n"})

	result := run(t, dir, config.NewConfig(), 1)

	assert.Equal(t, 1, result.Stats.Warnings)
	assert.True(t, result.HasWarnings())
	assert.False(t, result.HasFailures())
}

func TestRunner_Run_InvalidIgnorePattern(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Checker.IgnorePatterns = []string{"("}

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.js": ""})

	_, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.Error(t, err)
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner().Run(ctx, runner.Options{WorkingDir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
}
