package config

import "fmt"

// Formats lists every supported output format.
func Formats() []OutputFormat {
	return []OutputFormat{FormatText, FormatJSON, FormatDiff, FormatSummary, FormatTable}
}

// IsValid reports whether f is a known output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatDiff, FormatSummary, FormatTable:
		return true
	default:
		return false
	}
}

// ParseFormat converts a flag value to an OutputFormat. The empty string
// selects FormatText.
func ParseFormat(s string) (OutputFormat, error) {
	if s == "" {
		return FormatText, nil
	}
	f := OutputFormat(s)
	if !f.IsValid() {
		return "", fmt.Errorf("unknown output format %q; must be one of: text, json, diff, summary, table", s)
	}
	return f, nil
}
