package config_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/langex/pkg/config"
)

func templateOptions(full bool, format string) config.TemplateOptions {
	return config.TemplateOptions{
		Full:   full,
		Format: format,
		CallDefaults: config.CallsConfig{
			Script: "this.$t", Setup: "t", Template: "$t", JSX: "t",
		},
		ExcludedAttributes: []string{"class", "id", "v-model"},
	}
}

func TestGenerateTemplate_Minimal(t *testing.T) {
	data, err := config.GenerateTemplate(templateOptions(false, "yaml"))
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "# langex configuration"))
	assert.Contains(t, text, "\n# key_prefix: \"\"\n")
	assert.Contains(t, text, "\ncalls:\n  script: \"this.$t\"\n")

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Empty(t, cfg.KeyPrefix)
	assert.Equal(t, "this.$t", cfg.Calls.Script)
	assert.Equal(t, "$t", cfg.Calls.Template)
	assert.Equal(t, "sidecar", cfg.Backups.Mode)
	assert.Empty(t, cfg.Checker.ExcludedAttributes)
}

func TestGenerateTemplate_Full(t *testing.T) {
	data, err := config.GenerateTemplate(templateOptions(true, "yaml"))
	require.NoError(t, err)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.MaxKeyLength)
	assert.Equal(t, []string{"class", "id", "v-model"}, cfg.Checker.ExcludedAttributes)
	assert.Equal(t, []string{"^[A-Z_]+$"}, cfg.Checker.IgnorePatterns)
	assert.Equal(t, "locales/en.json", cfg.Catalog)
	assert.Equal(t, "t", cfg.Calls.JSX)
}

func TestGenerateTemplate_JSON(t *testing.T) {
	data, err := config.GenerateTemplate(templateOptions(false, "json"))
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Contains(t, parsed, "calls")
	assert.Contains(t, parsed, "checker")
	assert.Equal(t, false, parsed["prefix_from_path"])
}
