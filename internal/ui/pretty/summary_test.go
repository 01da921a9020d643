package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/langex/internal/ui/pretty"
	"github.com/yaklabco/langex/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "nothing found",
			stats: runner.Stats{FilesProcessed: 4},
			want:  "No translatable text found (4 files checked)\n",
		},
		{
			name:  "single file",
			stats: runner.Stats{FilesProcessed: 1, FilesChanged: 1, KeysExtracted: 1},
			want:  "1 key extracted from 1 file\n",
		},
		{
			name: "everything",
			stats: runner.Stats{
				FilesProcessed: 5,
				FilesChanged:   3,
				FilesModified:  3,
				FilesErrored:   1,
				KeysExtracted:  12,
				Warnings:       2,
				Conflicts:      1,
			},
			want: "12 keys extracted from 3 files, 2 warnings, 1 conflict, 1 file failed, 3 files written\n",
		},
		{
			name:  "only failures",
			stats: runner.Stats{FilesErrored: 2},
			want:  "0 keys extracted from 0 files, 2 files failed\n",
		},
	}

	styles := pretty.NewStyles(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	got := styles.FormatSummary(runner.Stats{
		FilesProcessed: 10,
		FilesChanged:   4,
		FilesRekeyed:   1,
		KeysExtracted:  15,
		Warnings:       3,
	})

	assert.Contains(t, got, "Summary")
	assert.Contains(t, got, "  Files checked:     10\n")
	assert.Contains(t, got, "  Files changed:     4\n")
	assert.Contains(t, got, "  Files re-keyed:    1\n")
	assert.Contains(t, got, "  Keys extracted:    15\n")
	assert.Contains(t, got, "  Warnings:          3\n")
	assert.NotContains(t, got, "Files written")
	assert.Contains(t, got, "Extraction completed with warnings")
}

func TestFormatSummary_Status(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Contains(t, styles.FormatSummary(runner.Stats{FilesProcessed: 2}), "Extraction complete\n")
	assert.Contains(t, styles.FormatSummary(runner.Stats{FilesErrored: 1}), "Extraction failed for some files")
	assert.Contains(t, styles.FormatSummary(runner.Stats{Conflicts: 1}), "Extraction completed with warnings")
}
