package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/langex/pkg/config"
)

// envVarPrefix is the prefix for all langex environment variables.
const envVarPrefix = "LANGEX_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
	help  string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"KEY_PREFIX":       {"key_prefix", envTypeString, "Prefix joined to every generated key"},
	"PREFIX_FROM_PATH": {"prefix_from_path", envTypeBool, "Derive key prefixes from file paths: true or false"},
	"MAX_KEY_LENGTH":   {"max_key_length", envTypeInt, "Maximum slug length of generated keys"},
	"CATALOG":          {"catalog", envTypeString, "Path of the nested JSON catalog to write"},
	"WRITE":            {"write", envTypeBool, "Rewrite sources in place: true or false"},
	"DRY_RUN":          {"dry_run", envTypeBool, "Dry-run mode: true or false"},
	"JOBS":             {"jobs", envTypeInt, "Number of parallel workers (0 = auto)"},
	"FORMAT":           {"format", envTypeString, "Output format: text, json, diff, summary, or table"},
	"STRICT":           {"strict", envTypeBool, "Fail when extraction produced warnings: true or false"},
	"BACKUPS_ENABLED":  {"backups.enabled", envTypeBool, "Enable backups when writing: true or false"},
	"BACKUPS_MODE":     {"backups.mode", envTypeString, "Backup mode: sidecar or none"},
	"NO_BACKUPS":       {"no_backups", envTypeBool, "Disable backups: true or false"},
	"IGNORE":           {"ignore", envTypeSlice, "Comma-separated list of ignore patterns"},
	"EXTENSIONS":       {"extensions", envTypeSlice, "Comma-separated list of source extensions"},
	"CALLS_SCRIPT":     {"calls.script", envTypeString, "Translate call in scripts, e.g. this.$t"},
	"CALLS_SETUP":      {"calls.setup", envTypeString, "Translate call in <script setup> and TypeScript"},
	"CALLS_TEMPLATE":   {"calls.template", envTypeString, "Translate call in Vue templates"},
	"CALLS_JSX":        {"calls.jsx", envTypeString, "Translate call in JSX"},
	"MIN_LENGTH":       {"checker.min_length", envTypeInt, "Minimum length of extracted text"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with LANGEX_ (e.g., LANGEX_KEY_PREFIX).
func LoadFromEnv(cfg *config.Config) error {
	return loadFromLookup(cfg, os.LookupEnv)
}

// loadFromLookup applies the mapped variables found by lookup. Empty
// values are ignored. Variables are applied in name order so errors are
// reported deterministically.
func loadFromLookup(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range envSuffixes() {
		envVar := envVarPrefix + suffix
		value, ok := lookup(envVar)
		if !ok || value == "" {
			continue
		}

		if err := applyEnvValue(cfg, envMappings[suffix], value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func envSuffixes() []string {
	suffixes := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		suffixes = append(suffixes, suffix)
	}
	slices.Sort(suffixes)
	return suffixes
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "key_prefix":
		cfg.KeyPrefix = value
	case "catalog":
		cfg.Catalog = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "backups.mode":
		cfg.Backups.Mode = value
	case "calls.script":
		cfg.Calls.Script = value
	case "calls.setup":
		cfg.Calls.Setup = value
	case "calls.template":
		cfg.Calls.Template = value
	case "calls.jsx":
		cfg.Calls.JSX = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "prefix_from_path":
		cfg.PrefixFromPath = value
	case "write":
		cfg.Write = value
	case "dry_run":
		cfg.DryRun = value
	case "strict":
		cfg.Strict = value
	case "backups.enabled":
		cfg.Backups.Enabled = value
	case "no_backups":
		cfg.NoBackups = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "max_key_length":
		cfg.MaxKeyLength = value
	case "checker.min_length":
		cfg.Checker.MinLength = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	case "extensions":
		cfg.Extensions = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported environment variable with its
// description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.help
	}
	return vars
}
