package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/langex/pkg/catalog"
	"github.com/yaklabco/langex/pkg/extract"
	"github.com/yaklabco/langex/pkg/fix"
	"github.com/yaklabco/langex/pkg/langdetect"
	"github.com/yaklabco/langex/pkg/reporter"
	"github.com/yaklabco/langex/pkg/runner"
)

func sampleResult(t *testing.T) *runner.Result {
	t.Helper()

	original := "const a = 'Hello world'\nconst b = `Hi ${user.name}`\n"
	rewritten := "const a = this.$t('hello_world')\nconst b = `Hi ${user.name}`\n"
	diff, err := fix.GenerateDiff("src/a.js", original, rewritten)
	require.NoError(t, err)

	cat := catalog.New()
	cat.Add("hello_world", "Hello world", "src/a.js")
	cat.Add("hello_world", "Hello, world!", "src/b.js")

	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path:    "/work/src/a.js",
				RelPath: "src/a.js",
				Source:  langdetect.Source{Kind: langdetect.KindScript},
				Content: original,
				Result: &extract.Result{
					TextMap: extract.TextMap{"hello_world": "Hello world"},
					Text:    rewritten,
					Spans:   []fix.Span{{Start: 10, End: 23, Text: "this.$t('hello_world')"}},
					Warnings: []extract.Warning{{
						Message: "template literal needs manual conversion",
						Value:   "Hi {0}",
						Key:     "hi_0",
						Exps:    []string{"name"},
						Kind:    extract.WarningTemplateLiteral,
						Offset:  34,
					}},
				},
				Diff: diff,
			},
			{
				Path:    "/work/src/bad.ts",
				RelPath: "src/bad.ts",
				Error:   errors.New("parse failed"),
			},
			{
				Path:    "/work/README.md",
				RelPath: "README.md",
				Skipped: true,
				Source:  langdetect.Source{Reason: "unsupported extension .md"},
			},
		},
		Stats: runner.Stats{
			FilesDiscovered: 3,
			FilesProcessed:  1,
			FilesChanged:    1,
			FilesErrored:    1,
			FilesSkipped:    1,
			KeysExtracted:   1,
			Warnings:        1,
			Conflicts:       1,
		},
		Catalog: cat,
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	got, err := reporter.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, reporter.FormatText, got)

	got, err = reporter.ParseFormat("table")
	require.NoError(t, err)
	assert.Equal(t, reporter.FormatTable, got)

	_, err = reporter.ParseFormat("sarif")
	require.Error(t, err)
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "text reporter", format: reporter.FormatText},
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "diff reporter", format: reporter.FormatDiff},
		{name: "table reporter", format: reporter.FormatTable},
		{name: "summary reporter", format: reporter.FormatSummary},
		{name: "empty defaults to text", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{Writer: &buf, Format: tt.format, Color: "never"})
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, rep)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func TestTextReporter_NilResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Contains(t, buf.String(), "No files to process")
}

func TestTextReporter_Report(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowContext: true,
		ShowSummary: true,
		ShowKeys:    true,
	})

	count, err := rep.Report(context.Background(), sampleResult(t))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	out := buf.String()
	assert.Contains(t, out, "src/a.js (1 key, 1 warning)\n")
	assert.Contains(t, out, "  hello_world = \"Hello world\"\n")
	assert.Contains(t, out, "  src/a.js:2:11  warning  template literal needs manual conversion  (template-literal)\n")
	assert.Contains(t, out, "        const b = `Hi ${user.name}`\n")
	assert.Contains(t, out, "src/bad.ts: error: parse failed\n")
	assert.NotContains(t, out, "README.md")
	assert.Contains(t, out, "Catalog conflicts:\n")
	assert.Contains(t, out, `src/b.js: key "hello_world" already holds "Hello world", dropped "Hello, world!"`)
	assert.Contains(t, out, "1 key extracted from 1 file, 1 warning, 1 conflict, 1 file failed\n")
}

func TestTextReporter_HidesKeysByDefault(t *testing.T) {
	t.Parallel()

	result := sampleResult(t)
	result.Files[0].Result.Warnings = nil

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"})
	_, err := rep.Report(context.Background(), result)
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), "src/a.js")
	assert.NotContains(t, buf.String(), "hello_world =")
}

func TestJSONReporter_Report(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf})

	count, err := rep.Report(context.Background(), sampleResult(t))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.0.0", output.Version)
	require.Len(t, output.Files, 3)

	a := output.Files[0]
	assert.Equal(t, "src/a.js", a.Path)
	assert.Equal(t, "script", a.Kind)
	assert.Equal(t, map[string]string{"hello_world": "Hello world"}, a.TextMap)
	assert.True(t, a.Changed)
	assert.Contains(t, a.Diff, "+const a = this.$t('hello_world')")
	require.Len(t, a.Warnings, 1)
	assert.Equal(t, 2, a.Warnings[0].Line)
	assert.Equal(t, "hi_0", a.Warnings[0].Key)

	assert.Equal(t, "parse failed", output.Files[1].Error)
	assert.Equal(t, "unsupported extension .md", output.Files[2].Skipped)

	assert.Equal(t, map[string]any{"hello_world": "Hello world"}, output.Catalog)
	require.Len(t, output.Conflicts, 1)
	assert.Equal(t, catalog.ConflictText, output.Conflicts[0].Kind)

	assert.Equal(t, reporter.JSONSummary{
		FilesChecked: 1,
		FilesChanged: 1,
		FilesSkipped: 1,
		FilesErrored: 1,
		Keys:         1,
		Warnings:     1,
		Conflicts:    1,
	}, output.Summary)
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true})
	_, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.True(t, json.Valid(buf.Bytes()))
}

func TestDiffReporter_Report(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewDiffReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	count, err := rep.Report(context.Background(), sampleResult(t))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	out := buf.String()
	assert.Contains(t, out, "diff --git a/src/a.js b/src/a.js\n--- a/src/a.js\n+++ b/src/a.js\n")
	assert.Contains(t, out, "-const a = 'Hello world'\n")
	assert.Contains(t, out, "+const a = this.$t('hello_world')\n")
	assert.Contains(t, out, "src/bad.ts: error: parse failed\n")
	assert.Contains(t, out, "1 file changed, 1 insertion(+), 1 deletion(-)\n")
}

func TestDiffReporter_NoChanges(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewDiffReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	count, err := rep.Report(context.Background(), &runner.Result{})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, buf.String())
}

func TestSummaryReporter_Report(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatSummary, Color: "never"})
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), sampleResult(t))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	out := buf.String()
	assert.Contains(t, out, "Files Summary")
	assert.Contains(t, out, "Warnings Summary")
	assert.Contains(t, out, "template-literal")
	assert.Contains(t, out, "changed")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "Total: 1 key in 1 file, 1 warning, 1 conflict, 1 failed\n")
}

func TestSummaryReporter_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatSummary, Color: "never"})
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), &runner.Result{})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, "No translatable text found\n", buf.String())
}

func TestTableReporter_Report(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTableReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	count, err := rep.Report(context.Background(), sampleResult(t))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	out := buf.String()
	assert.Contains(t, out, " FILE")
	assert.Contains(t, out, "hello_world")
	assert.Contains(t, out, "Hi {0}")
	assert.Contains(t, out, "Legend")
	assert.Contains(t, out, "src/bad.ts: error: parse failed\n")
}

func TestTableReporter_PerFile(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTableReporter(reporter.Options{Writer: &buf, Color: "never", PerFile: true})

	_, err := rep.Report(context.Background(), sampleResult(t))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "\nsrc/a.js\n")
	assert.Equal(t, 1, strings.Count(buf.String(), "Legend"))
}
