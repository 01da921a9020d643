package checker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/langex/pkg/checker"
)

func TestValueNeedsExtraction(t *testing.T) {
	t.Parallel()

	chk := checker.Default()

	tests := []struct {
		name   string
		value  string
		want   bool
		reason checker.Reason
	}{
		{"sentence", "Hello World", true, checker.ReasonNone},
		{"capitalised word", "Facebook", true, checker.ReasonNone},
		{"acronym", "PDF", true, checker.ReasonNone},
		{"chinese", "你好世界", true, checker.ReasonNone},
		{"punctuated sentence", "It's close to midnight!", true, checker.ReasonNone},
		{"empty", "", false, checker.ReasonEmpty},
		{"whitespace", "  \n\t ", false, checker.ReasonEmpty},
		{"punctuation only", "--- !!", false, checker.ReasonNoLetters},
		{"numeric", "3.14", false, checker.ReasonNoLetters},
		{"url", "https://example.com/path", false, checker.ReasonURL},
		{"mailto", "mailto:someone@example.com", false, checker.ReasonURL},
		{"single letter", "A", false, checker.ReasonTooShort},
		{"lowercase word", "main", false, checker.ReasonIdentifier},
		{"camelCase", "userName", false, checker.ReasonIdentifier},
		{"PascalCase", "UserProfile", false, checker.ReasonIdentifier},
		{"dotted key", "app.hello_world", false, checker.ReasonIdentifier},
		{"kebab", "btn-primary", false, checker.ReasonIdentifier},
		{"class list", "btn btn-primary", false, checker.ReasonClassList},
		{"lowercase phrase", "hello there", true, checker.ReasonNone},
		{"mustache", "Hello {{ name }}", false, checker.ReasonInterpolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, _ := chk.ValueNeedsExtraction(tt.value)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.reason, chk.Classify(tt.value))
		})
	}
}

func TestValueNeedsExtraction_InterpolationNotice(t *testing.T) {
	t.Parallel()

	ok, notice := checker.Default().ValueNeedsExtraction("Total: ${count}")
	assert.False(t, ok)
	require.NotNil(t, notice)
	assert.Equal(t, checker.ReasonInterpolation, notice.Reason)

	ok, notice = checker.Default().ValueNeedsExtraction("main")
	assert.False(t, ok)
	assert.Nil(t, notice, "plain rejections are silent")
}

func TestIgnorePatterns(t *testing.T) {
	t.Parallel()

	chk, err := checker.New(checker.Options{
		MinLength:      1,
		IgnorePatterns: []string{`^TODO`},
	})
	require.NoError(t, err)

	ok, _ := chk.ValueNeedsExtraction("TODO fix this")
	assert.False(t, ok)
	assert.Equal(t, checker.ReasonIgnored, chk.Classify("TODO fix this"))

	ok, _ = chk.ValueNeedsExtraction("A")
	assert.True(t, ok, "min length 1 accepts a single letter")
}

func TestNew_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := checker.New(checker.Options{IgnorePatterns: []string{"("}})
	assert.Error(t, err)
}

func TestAttributeNeedsExtraction(t *testing.T) {
	t.Parallel()

	chk := checker.Default()

	tests := []struct {
		name string
		want bool
	}{
		{"title", true},
		{"label", true},
		{"placeholder", true},
		{":label", true},
		{"v-bind:title", true},
		{"alt", true},
		{"aria-label", true},
		{"class", false},
		{"className", false},
		{"style", false},
		{"id", false},
		{"ref", false},
		{":key", false},
		{"onClick", false},
		{"onclick", false},
		{"onmouseenter", false},
		{"onboarding", true},
		{"online-label", true},
		{"one-time-hint", true},
		{"@click", false},
		{"v-on:submit", false},
		{"data-testid", false},
		{"aria-hidden", false},
		{"v-if", false},
		{"#default", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, chk.AttributeNeedsExtraction(tt.name))
		})
	}
}

func TestIsEventHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"@click", true},
		{"v-on:submit", true},
		{"onClick", true},
		{"onPointerDown", true},
		{"onclick", true},
		{"onkeydown", true},
		{"ononline", true},
		{"on", false},
		{"onboarding", false},
		{"online-label", false},
		{"one-time-hint", false},
		{"title", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, checker.IsEventHandler(tt.name))
		})
	}
}

func TestBareAttributeName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "label", checker.BareAttributeName(":label"))
	assert.Equal(t, "label", checker.BareAttributeName("v-bind:label"))
	assert.Equal(t, "label", checker.BareAttributeName("label"))
}
