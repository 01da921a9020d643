// Package config defines core configuration types for langex.
// These types are pure data structures; loading and layering live in
// internal/configloader.
package config

// BackupsConfig controls backup behavior when rewriting sources.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar" or "none"
}

// CallsConfig holds the call prefixes rendered around generated keys.
// Empty fields fall back to the built-in defaults.
type CallsConfig struct {
	// Script is used in options-API script blocks and plain .js files.
	Script string `mapstructure:"script" yaml:"script,omitempty"`

	// Setup is used in <script setup> blocks and TypeScript sources.
	Setup string `mapstructure:"setup" yaml:"setup,omitempty"`

	// Template is used inside Vue templates.
	Template string `mapstructure:"template" yaml:"template,omitempty"`

	// JSX is used in .jsx and .tsx files.
	JSX string `mapstructure:"jsx" yaml:"jsx,omitempty"`
}

// CheckerConfig tunes which literals are considered translatable.
type CheckerConfig struct {
	// MinLength is the minimum trimmed length of extracted text.
	MinLength int `mapstructure:"min_length" yaml:"min_length,omitempty"`

	// SkipURLs rejects URL-looking values. Nil keeps the default (true).
	SkipURLs *bool `mapstructure:"skip_urls" yaml:"skip_urls,omitempty"`

	// ExcludedAttributes replaces the default list of attributes that are
	// never extracted.
	ExcludedAttributes []string `mapstructure:"excluded_attributes" yaml:"excluded_attributes,omitempty"`

	// AllowedAttributes re-enables specific data-/aria- attributes.
	AllowedAttributes []string `mapstructure:"allowed_attributes" yaml:"allowed_attributes,omitempty"`

	// IgnorePatterns are regular expressions for values to leave alone.
	IgnorePatterns []string `mapstructure:"ignore_patterns" yaml:"ignore_patterns,omitempty"`
}

// OutputFormat specifies how results are reported.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
	FormatTable   OutputFormat = "table"
)

// Config is the root configuration structure for langex.
type Config struct {
	// KeyPrefix is dot-joined in front of every generated key.
	KeyPrefix string `mapstructure:"key_prefix" yaml:"key_prefix,omitempty"`

	// PrefixFromPath derives a per-file key prefix from the path relative
	// to the working directory, e.g. "components.user_card" for
	// src/components/UserCard.vue. It is joined after KeyPrefix.
	PrefixFromPath bool `mapstructure:"prefix_from_path" yaml:"prefix_from_path,omitempty"`

	// MaxKeyLength caps the slug part of a key (0 selects the default).
	MaxKeyLength int `mapstructure:"max_key_length" yaml:"max_key_length,omitempty"`

	// Calls sets the translate call prefixes per context.
	Calls CallsConfig `mapstructure:"calls" yaml:"calls,omitempty"`

	// TranslateFunctions are callee names whose arguments are already
	// translated and must not be extracted again.
	TranslateFunctions []string `mapstructure:"translate_functions" yaml:"translate_functions,omitempty"`

	// Checker tunes literal classification.
	Checker CheckerConfig `mapstructure:"checker" yaml:"checker,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// Extensions limits discovery to these extensions (default: all
	// supported source extensions).
	Extensions []string `mapstructure:"extensions" yaml:"extensions,omitempty"`

	// Catalog is the path of the nested JSON catalog to write.
	Catalog string `mapstructure:"catalog" yaml:"catalog,omitempty"`

	// Backups configures backup behavior when writing.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Write rewrites source files in place.
	Write bool `mapstructure:"-" yaml:"-"`

	// DryRun reports the changes as diffs without writing.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `mapstructure:"-" yaml:"-"`

	// Strict turns extraction warnings into a failing exit code.
	Strict bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// SkipURLsOrDefault reports the effective URL policy.
func (c CheckerConfig) SkipURLsOrDefault() bool {
	if c.SkipURLs == nil {
		return true
	}
	return *c.SkipURLs
}
