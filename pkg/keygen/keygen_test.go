package keygen_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/langex/internal/logging"
	"github.com/yaklabco/langex/pkg/keygen"
)

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"sentence", "Hello World", "hello_world"},
		{"punctuation", "Hello, World!", "hello_world"},
		{"apostrophe", "It's here", "it_s_here"},
		{"camel case", "fooBar", "foo_bar"},
		{"acronym", "HTTPServer error", "http_server_error"},
		{"surrounding space", "  Save  ", "save"},
		{"chinese", "你好", "ni_hao"},
		{"mixed chinese", "Hello世界", "hello_shi_jie"},
		{"accents", "Crème brûlée", "creme_brulee"},
		{"cyrillic", "Привет", "privet"},
		{"integer", "42", "n_42"},
		{"decimal", "3.14", "n_3_14"},
		{"truncated", "The quick brown fox jumps over the lazy dog", "the_quick_brown_fox_jumps_over_t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, keygen.Slug(tt.text, keygen.DefaultMaxLength))
		})
	}
}

func TestSlug_MaxLength(t *testing.T) {
	t.Parallel()

	slug := keygen.Slug("Please confirm your email address before continuing", 32)
	assert.LessOrEqual(t, len(slug), 32)
	assert.False(t, strings.HasSuffix(slug, "_"))
	assert.Equal(t, "please", keygen.Slug("Please confirm", 7))
}

func TestSlug_NothingToKeep(t *testing.T) {
	t.Parallel()

	slug := keygen.Slug("!!! ???", keygen.DefaultMaxLength)
	assert.Regexp(t, `^k_[0-9a-f]{8}$`, slug)
	assert.Equal(t, slug, keygen.Slug("!!! ???", keygen.DefaultMaxLength), "stable across calls")
	assert.NotEqual(t, slug, keygen.Slug("???", keygen.DefaultMaxLength))
}

func TestTransliterate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain ascii", keygen.Transliterate("plain ascii"))
	assert.Equal(t, " zhong wen ", keygen.Transliterate("中文"))
	assert.Equal(t, "Cafe", keygen.Transliterate("Café"))
}

func TestGenerate_SameTextSameKey(t *testing.T) {
	t.Parallel()

	gen := keygen.New()
	first := gen.Generate("Same Text")
	second := gen.Generate("Same Text")

	assert.Equal(t, "same_text", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, gen.Len())
}

func TestGenerate_Collision(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	gen := keygen.New(keygen.WithLogger(logging.NewWithWriter(&buf, "warn")))

	assert.Equal(t, "hello_world", gen.Generate("Hello World"))
	assert.Equal(t, "hello_world_2", gen.Generate("Hello, World!"))
	assert.Equal(t, "hello_world_3", gen.Generate("hello world"))
	assert.Equal(t, "hello_world_2", gen.Generate("Hello, World!"))

	assert.Equal(t, 2, gen.Renamed())
	assert.Contains(t, buf.String(), "key duplicate fixed")
}

func TestGenerate_SuffixAlreadyTaken(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	gen := keygen.New(keygen.WithLogger(logging.NewWithWriter(&buf, "error")))

	assert.Equal(t, "save_2", gen.Generate("Save 2"))
	assert.Equal(t, "save", gen.Generate("Save"))
	assert.Equal(t, "save_3", gen.Generate("save!"), "skips the suffix owned by other text")
	assert.Equal(t, "save_2_2", gen.Generate("save-2"))
}

func TestGenerate_Prefix(t *testing.T) {
	t.Parallel()

	gen := keygen.New(keygen.WithPrefix("app"))
	key := gen.Generate("Hello World")

	assert.Equal(t, "app.hello_world", key)
	assert.Equal(t, "app", gen.Prefix())

	got, ok := gen.Lookup("Hello World")
	require.True(t, ok)
	assert.Equal(t, key, got)

	_, ok = gen.Lookup("missing")
	assert.False(t, ok)
}

func TestGenerate_UniqueAcrossManyTexts(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	gen := keygen.New(keygen.WithLogger(logging.NewWithWriter(&buf, "error")))

	texts := []string{
		"Submit", "submit", "SUBMIT", "Submit!", "Submit 2", "submit_2",
		"取消", "Cancel", "cancel", "42", "4.2", "★", "☆",
	}

	seen := make(map[string]string)
	for _, text := range texts {
		key := gen.Generate(text)
		if other, dup := seen[key]; dup {
			t.Fatalf("key %q assigned to both %q and %q", key, other, text)
		}
		seen[key] = text
	}
	assert.Len(t, seen, len(texts))
}

func TestGenerate_OrderDeterminesKeys(t *testing.T) {
	t.Parallel()

	run := func() []string {
		var buf bytes.Buffer
		gen := keygen.New(keygen.WithLogger(logging.NewWithWriter(&buf, "error")))
		return []string{gen.Generate("OK"), gen.Generate("ok"), gen.Generate("Ok!")}
	}

	assert.Equal(t, run(), run())
}

func TestReserve(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	gen := keygen.New(keygen.WithPrefix("app"), keygen.WithLogger(logging.NewWithWriter(&buf, "error")))
	gen.Reserve("app.hello_world", "Hello World")
	gen.Reserve("other.save", "Save")

	assert.Equal(t, "app.hello_world", gen.Generate("Hello World"))
	assert.Equal(t, "app.hello_world_2", gen.Generate("Hello, World!"), "reserved key is not reused")
	assert.Equal(t, "app.save", gen.Generate("Save"), "keys of other prefixes are ignored")
}
