package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value. Otherwise the
	// template is mostly commented out.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// CallDefaults supplies the default call prefixes shown in the
	// template, keyed by context name.
	CallDefaults CallsConfig

	// ExcludedAttributes lists the default excluded attributes.
	ExcludedAttributes []string
}

// templateSetting documents one top-level setting.
type templateSetting struct {
	doc     string
	key     string
	value   string
	minimal bool
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON(opts)
	}

	var buf strings.Builder
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n")

	for _, setting := range templateSettings(opts) {
		buf.WriteString("\n# ")
		buf.WriteString(wrapComment(setting.doc, commentWrapWidth))
		buf.WriteString("\n")

		active := opts.Full || setting.minimal
		for line := range strings.SplitSeq(setting.key+": "+setting.value, "\n") {
			if !active {
				buf.WriteString("# ")
			}
			buf.WriteString(strings.TrimRight(line, " "))
			buf.WriteString("\n")
		}
	}

	return []byte(buf.String()), nil
}

func templateSettings(opts TemplateOptions) []templateSetting {
	calls := opts.CallDefaults
	return []templateSetting{
		{
			doc:   "Prefix joined to every generated key, e.g. home.welcome_back",
			key:   "key_prefix",
			value: `""`,
		},
		{
			doc:   "Derive the key prefix from each file path (src/components/UserCard.vue becomes components.user_card)",
			key:   "prefix_from_path",
			value: "false",
		},
		{
			doc:   "Maximum length of the slug part of a key",
			key:   "max_key_length",
			value: "32",
		},
		{
			doc: "Translate call rendered around each key, per context",
			key: "calls",
			value: fmt.Sprintf("\n  script: %q\n  setup: %q\n  template: %q\n  jsx: %q",
				calls.Script, calls.Setup, calls.Template, calls.JSX),
			minimal: true,
		},
		{
			doc:   "Functions whose arguments are already translated",
			key:   "translate_functions",
			value: "\n  - $t\n  - t\n  - i18n.t",
		},
		{
			doc: "Literal classification",
			key: "checker",
			value: "\n  min_length: 2\n  skip_urls: true\n  excluded_attributes:\n" +
				yamlList(opts.ExcludedAttributes, "    ") +
				"\n  allowed_attributes:\n    - aria-label\n  ignore_patterns:\n    - '^[A-Z_]+$'",
		},
		{
			doc:     "File patterns to ignore (glob patterns)",
			key:     "ignore",
			value:   "\n  - \"dist/**\"\n  - \"**/*.spec.ts\"",
			minimal: true,
		},
		{
			doc:   "Restrict discovery to these extensions",
			key:   "extensions",
			value: "\n  - .vue\n  - .ts",
		},
		{
			doc:   "Write extracted texts to this nested JSON catalog",
			key:   "catalog",
			value: "locales/en.json",
		},
		{
			doc:     "Backups of rewritten sources: sidecar or none",
			key:     "backups",
			value:   "\n  enabled: true\n  mode: sidecar",
			minimal: true,
		},
	}
}

func yamlList(items []string, indent string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, indent+"- "+item)
	}
	return strings.Join(lines, "\n")
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n# ")
}

// templateToJSON renders the default settings as JSON. JSON has no
// comments, so the full setting set is always written.
func templateToJSON(opts TemplateOptions) ([]byte, error) {
	cfg := map[string]any{
		"key_prefix":       "",
		"prefix_from_path": false,
		"max_key_length":   32,
		"calls": map[string]string{
			"script":   opts.CallDefaults.Script,
			"setup":    opts.CallDefaults.Setup,
			"template": opts.CallDefaults.Template,
			"jsx":      opts.CallDefaults.JSX,
		},
		"checker": map[string]any{
			"min_length":          2,
			"skip_urls":           true,
			"excluded_attributes": opts.ExcludedAttributes,
		},
		"ignore": []string{"dist/**"},
		"backups": map[string]any{
			"enabled": true,
			"mode":    "sidecar",
		},
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# langex configuration
# See: https://github.com/yaklabco/langex`
}
