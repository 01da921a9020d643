package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/langex/pkg/config"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		modify    func(cfg *config.Config)
		wantField string
		warning   bool
	}{
		{
			name:      "unknown format",
			modify:    func(cfg *config.Config) { cfg.Format = "sarif" },
			wantField: "format",
		},
		{
			name:      "negative jobs",
			modify:    func(cfg *config.Config) { cfg.Jobs = -1 },
			wantField: "jobs",
		},
		{
			name:      "negative max key length",
			modify:    func(cfg *config.Config) { cfg.MaxKeyLength = -5 },
			wantField: "max_key_length",
		},
		{
			name:      "unknown backup mode",
			modify:    func(cfg *config.Config) { cfg.Backups.Mode = "git" },
			wantField: "backups.mode",
		},
		{
			name:      "call with parentheses",
			modify:    func(cfg *config.Config) { cfg.Calls.Script = "this.$t()" },
			wantField: "calls.script",
		},
		{
			name:      "call with spaces",
			modify:    func(cfg *config.Config) { cfg.Calls.Setup = "use i18n" },
			wantField: "calls.setup",
		},
		{
			name:      "bad ignore regexp",
			modify:    func(cfg *config.Config) { cfg.Checker.IgnorePatterns = []string{"ok", "(unclosed"} },
			wantField: "checker.ignore_patterns[1]",
		},
		{
			name:      "negative min length",
			modify:    func(cfg *config.Config) { cfg.Checker.MinLength = -1 },
			wantField: "checker.min_length",
		},
		{
			name: "allowed and excluded",
			modify: func(cfg *config.Config) {
				cfg.Checker.ExcludedAttributes = []string{"title"}
				cfg.Checker.AllowedAttributes = []string{"title"}
			},
			wantField: "checker.allowed_attributes",
			warning:   true,
		},
		{
			name:      "unsupported extension",
			modify:    func(cfg *config.Config) { cfg.Extensions = []string{"vue", ".md"} },
			wantField: "extensions[1]",
			warning:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.modify(cfg)
			result := Validate(cfg)

			if tt.warning {
				assert.True(t, result.Valid())
				require.Len(t, result.Warnings, 1)
				assert.Equal(t, tt.wantField, result.Warnings[0].Field)
				return
			}

			require.False(t, result.Valid())
			require.Len(t, result.Errors, 1)
			assert.Equal(t, tt.wantField, result.Errors[0].Field)
		})
	}
}

func TestValidate_AcceptsDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Calls = config.CallsConfig{Script: "this.$t", Setup: "t", Template: "$t", JSX: "i18n.t"}
	cfg.Ignore = []string{"dist/**", "**/*.spec.ts"}
	cfg.Extensions = []string{".vue", ".TSX"}

	result := Validate(cfg)
	assert.True(t, result.Valid())
	assert.False(t, result.HasWarnings())
	assert.True(t, Validate(nil).Valid())
}

func TestValidateWithFile(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Jobs = -2

	result := ValidateWithFile(cfg, ".langex.yml")
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ".langex.yml: jobs: jobs must be >= 0 (0 means auto)", result.Errors[0].Error())
	assert.Equal(t, []string{"error: .langex.yml: jobs: jobs must be >= 0 (0 means auto)"}, result.AllMessages())
}

func TestMerge(t *testing.T) {
	t.Parallel()

	skip := false
	base := config.NewConfig()
	base.KeyPrefix = "base"
	base.Ignore = []string{"dist/**"}
	base.Calls.Script = "this.$t"
	base.Checker.MinLength = 3

	override := &config.Config{
		Ignore:  []string{"build/**"},
		Calls:   config.CallsConfig{JSX: "i18n.t"},
		Checker: config.CheckerConfig{SkipURLs: &skip},
	}

	merged := merge(base, override)

	assert.Equal(t, "base", merged.KeyPrefix)
	assert.Equal(t, []string{"build/**"}, merged.Ignore)
	assert.Equal(t, "this.$t", merged.Calls.Script)
	assert.Equal(t, "i18n.t", merged.Calls.JSX)
	assert.Equal(t, 3, merged.Checker.MinLength)
	require.NotNil(t, merged.Checker.SkipURLs)
	assert.False(t, *merged.Checker.SkipURLs)

	merged.Ignore[0] = "changed"
	assert.Equal(t, "build/**", override.Ignore[0], "merged slices are copies")

	assert.Same(t, base, merge(base, nil))
	assert.Same(t, override, merge(nil, override))
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	assert.Nil(t, MergeAll())

	merged := MergeAll(
		&config.Config{KeyPrefix: "a", Jobs: 2},
		&config.Config{KeyPrefix: "b"},
		&config.Config{Strict: true},
	)
	assert.Equal(t, "b", merged.KeyPrefix)
	assert.Equal(t, 2, merged.Jobs)
	assert.True(t, merged.Strict)
}

func TestEnvVars(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "LANGEX_CALLS_JSX", GetEnvVarName("calls.jsx"))
	assert.Equal(t, "LANGEX_NO_BACKUPS", GetEnvVarName("no_backups"))
	assert.Empty(t, GetEnvVarName("flavor"))

	vars := ListEnvVars()
	assert.Len(t, vars, len(envMappings))
	assert.Contains(t, vars, "LANGEX_KEY_PREFIX")
}

func TestLoadFromLookup(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"LANGEX_MIN_LENGTH": "4",
		"LANGEX_EXTENSIONS": ".vue,.ts",
		"LANGEX_STRICT":     "true",
		"LANGEX_FORMAT":     "",
	}
	lookup := func(name string) (string, bool) {
		value, ok := env[name]
		return value, ok
	}

	cfg := config.NewConfig()
	require.NoError(t, loadFromLookup(cfg, lookup))
	assert.Equal(t, 4, cfg.Checker.MinLength)
	assert.Equal(t, []string{".vue", ".ts"}, cfg.Extensions)
	assert.True(t, cfg.Strict)
	assert.Equal(t, config.FormatText, cfg.Format, "empty values are ignored")

	env["LANGEX_JOBS"] = "many"
	require.ErrorContains(t, loadFromLookup(cfg, lookup), "LANGEX_JOBS")
}
