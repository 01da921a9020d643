package runner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/langex/pkg/extract"
	"github.com/yaklabco/langex/pkg/fix"
	"github.com/yaklabco/langex/pkg/runner"
)

func TestFileOutcome_Position(t *testing.T) {
	t.Parallel()

	outcome := runner.FileOutcome{Content: "const a = 1\nconst é = 'Hi there'\n"}

	tests := []struct {
		offset     int
		wantLine   int
		wantColumn int
	}{
		{0, 1, 1},
		{6, 1, 7},
		{12, 2, 1},
		{23, 2, 11},
		{-1, 0, 0},
		{1000, 0, 0},
	}

	for _, tt := range tests {
		line, column := outcome.Position(tt.offset)
		assert.Equal(t, tt.wantLine, line, "offset %d", tt.offset)
		assert.Equal(t, tt.wantColumn, column, "offset %d", tt.offset)
	}
}

func TestFileOutcome_SourceLine(t *testing.T) {
	t.Parallel()

	outcome := runner.FileOutcome{Content: "first\r\nsecond\nthird"}

	assert.Equal(t, "first", outcome.SourceLine(1))
	assert.Equal(t, "second", outcome.SourceLine(2))
	assert.Equal(t, "third", outcome.SourceLine(3))
	assert.Empty(t, outcome.SourceLine(4))
	assert.Empty(t, outcome.SourceLine(0))
}

func TestResult_Flags(t *testing.T) {
	t.Parallel()

	var nilResult *runner.Result
	assert.False(t, nilResult.HasFailures())
	assert.False(t, nilResult.HasWarnings())

	changed := runner.FileOutcome{Result: &extract.Result{Spans: []fix.Span{{Start: 0, End: 1, Text: "x"}}}}
	assert.True(t, changed.Changed())
	assert.False(t, (&runner.FileOutcome{}).Changed())
}
