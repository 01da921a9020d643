package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/langex/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies slices", func(t *testing.T) {
		original := &config.Config{
			Ignore:             []string{"dist/**", "vendor/**"},
			TranslateFunctions: []string{"$t"},
			Checker: config.CheckerConfig{
				ExcludedAttributes: []string{"class"},
			},
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original.Ignore, clone.Ignore)

		clone.Ignore[0] = "changed"
		clone.TranslateFunctions[0] = "changed"
		clone.Checker.ExcludedAttributes[0] = "changed"
		assert.Equal(t, "dist/**", original.Ignore[0])
		assert.Equal(t, "$t", original.TranslateFunctions[0])
		assert.Equal(t, "class", original.Checker.ExcludedAttributes[0])
	})

	t.Run("deep copies skip_urls", func(t *testing.T) {
		skip := false
		original := &config.Config{Checker: config.CheckerConfig{SkipURLs: &skip}}

		clone := original.Clone()
		require.NotNil(t, clone.Checker.SkipURLs)
		*clone.Checker.SkipURLs = true
		assert.False(t, *original.Checker.SkipURLs)
	})

	t.Run("preserves CLI fields", func(t *testing.T) {
		original := config.NewConfig()
		original.Write = true
		original.DryRun = true
		original.Jobs = 4
		original.Strict = true
		original.Format = config.FormatJSON

		clone := original.Clone()
		assert.True(t, clone.Write)
		assert.True(t, clone.DryRun)
		assert.Equal(t, 4, clone.Jobs)
		assert.True(t, clone.Strict)
		assert.Equal(t, config.FormatJSON, clone.Format)
	})
}

func TestFromYAML(t *testing.T) {
	data := []byte(`
key_prefix: home
prefix_from_path: true
max_key_length: 40
calls:
  script: this.$t
  setup: t
translate_functions: [$t, i18n.t]
checker:
  min_length: 3
  skip_urls: false
  allowed_attributes: [aria-label]
ignore: ["dist/**"]
catalog: locales/en.json
backups:
  enabled: false
  mode: none
`)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, "home", cfg.KeyPrefix)
	assert.True(t, cfg.PrefixFromPath)
	assert.Equal(t, 40, cfg.MaxKeyLength)
	assert.Equal(t, "this.$t", cfg.Calls.Script)
	assert.Equal(t, "t", cfg.Calls.Setup)
	assert.Empty(t, cfg.Calls.Template)
	assert.Equal(t, []string{"$t", "i18n.t"}, cfg.TranslateFunctions)
	assert.Equal(t, 3, cfg.Checker.MinLength)
	assert.False(t, cfg.Checker.SkipURLsOrDefault())
	assert.Equal(t, []string{"aria-label"}, cfg.Checker.AllowedAttributes)
	assert.Equal(t, []string{"dist/**"}, cfg.Ignore)
	assert.Equal(t, "locales/en.json", cfg.Catalog)
	assert.Equal(t, "none", cfg.Backups.Mode)
}

func TestFromYAML_Empty(t *testing.T) {
	cfg, err := config.FromYAML([]byte("\n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.KeyPrefix)
	assert.True(t, cfg.Checker.SkipURLsOrDefault())
}

func TestFromYAML_UnknownField(t *testing.T) {
	_, err := config.FromYAML([]byte("key_prefx: home\n"))
	require.Error(t, err)
}

func TestToYAML_RoundTrip(t *testing.T) {
	original := config.NewConfig()
	original.KeyPrefix = "app"
	original.Calls.Template = "$t"
	original.Ignore = []string{"dist/**"}
	original.Write = true

	data, err := original.ToYAML()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "write")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, "app", parsed.KeyPrefix)
	assert.Equal(t, "$t", parsed.Calls.Template)
	assert.Equal(t, []string{"dist/**"}, parsed.Ignore)
	assert.Equal(t, original.Backups, parsed.Backups)
	assert.False(t, parsed.Write)
}

func TestToYAMLWithHeader(t *testing.T) {
	cfg := &config.Config{KeyPrefix: "app"}

	data, err := cfg.ToYAMLWithHeader("# header")
	require.NoError(t, err)
	assert.Contains(t, string(data), "# header\n\nkey_prefix: app\n")
}
