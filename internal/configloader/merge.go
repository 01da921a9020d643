package configloader

import (
	"slices"

	"github.com/yaklabco/langex/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Nested sections merge field by field
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.KeyPrefix != "" {
		result.KeyPrefix = override.KeyPrefix
	}
	if override.MaxKeyLength != 0 {
		result.MaxKeyLength = override.MaxKeyLength
	}
	if override.Catalog != "" {
		result.Catalog = override.Catalog
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// false is the zero value, so a later layer can switch these on but
	// never off.
	if override.PrefixFromPath {
		result.PrefixFromPath = true
	}
	if override.Write {
		result.Write = true
	}
	if override.DryRun {
		result.DryRun = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}
	if override.Strict {
		result.Strict = true
	}

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}

	result.Calls = mergeCalls(base.Calls, override.Calls)
	result.Checker = mergeChecker(base.Checker, override.Checker)

	if override.TranslateFunctions != nil {
		result.TranslateFunctions = slices.Clone(override.TranslateFunctions)
	}
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}
	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}

	return &result
}

func mergeCalls(base, override config.CallsConfig) config.CallsConfig {
	result := base
	if override.Script != "" {
		result.Script = override.Script
	}
	if override.Setup != "" {
		result.Setup = override.Setup
	}
	if override.Template != "" {
		result.Template = override.Template
	}
	if override.JSX != "" {
		result.JSX = override.JSX
	}
	return result
}

func mergeChecker(base, override config.CheckerConfig) config.CheckerConfig {
	result := base
	if override.MinLength != 0 {
		result.MinLength = override.MinLength
	}
	if override.SkipURLs != nil {
		skip := *override.SkipURLs
		result.SkipURLs = &skip
	}
	if override.ExcludedAttributes != nil {
		result.ExcludedAttributes = slices.Clone(override.ExcludedAttributes)
	}
	if override.AllowedAttributes != nil {
		result.AllowedAttributes = slices.Clone(override.AllowedAttributes)
	}
	if override.IgnorePatterns != nil {
		result.IgnorePatterns = slices.Clone(override.IgnorePatterns)
	}
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
