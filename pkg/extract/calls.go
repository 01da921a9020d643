package extract

import (
	"strings"

	"github.com/yaklabco/langex/pkg/jsast"
)

// CallPolicy renders the call expression that replaces extracted text.
type CallPolicy struct {
	// Prefix is the callee, e.g. "this.$t" or "t".
	Prefix string
}

// Render returns the call for key, e.g. "t('app.hello')".
func (p CallPolicy) Render(key string) string {
	return p.Prefix + "('" + key + "')"
}

// Policies selects the call form per context.
type Policies struct {
	// Script is used for plain <script> blocks and JavaScript files.
	Script CallPolicy

	// Setup is used for <script setup> and TypeScript blocks.
	Setup CallPolicy

	// Template is used inside Vue templates.
	Template CallPolicy

	// JSX is used for JSX and TSX files.
	JSX CallPolicy
}

// DefaultPolicies returns the call forms of a vue-i18n project.
func DefaultPolicies() Policies {
	return Policies{
		Script:   CallPolicy{Prefix: "this.$t"},
		Setup:    CallPolicy{Prefix: "t"},
		Template: CallPolicy{Prefix: "$t"},
		JSX:      CallPolicy{Prefix: "t"},
	}
}

// ScriptPolicy returns the policy for a script block.
func (p Policies) ScriptPolicy(setup bool, dialect jsast.Dialect) CallPolicy {
	if setup || dialect != jsast.DialectJS {
		return p.Setup
	}
	return p.Script
}

// DefaultTranslateFunctions are callees whose arguments are never
// extracted again.
func DefaultTranslateFunctions() []string {
	return []string{
		"$t", "$tc", "$te", "$d", "$n",
		"t", "tc", "te",
		"i18n.t", "i18n.global.t",
		"this.$t", "this.$tc", "this.$te",
	}
}

// calleeName returns the dotted name of a callee such as "this.$t", or ""
// for computed or complex callees.
func calleeName(n *jsast.Node) string {
	switch n.Kind {
	case jsast.KindIdentifier:
		return n.Name
	case jsast.KindMemberExpression:
		if n.Computed {
			return ""
		}
		object := n.Child(jsast.FieldObject)
		property := n.Child(jsast.FieldProperty)
		if object == nil || property == nil {
			return ""
		}
		base := calleeName(object)
		if base == "" || property.Name == "" {
			return ""
		}
		return base + "." + property.Name
	case jsast.KindParenthesizedExpression, jsast.KindTSExpression:
		if inner := n.Child(jsast.FieldExpression); inner != nil {
			return calleeName(inner)
		}
	}
	return ""
}

// memberProperty returns the property name of a non-computed member
// expression.
func memberProperty(n *jsast.Node) (string, bool) {
	if n == nil || n.Kind != jsast.KindMemberExpression || n.Computed {
		return "", false
	}
	property := n.Child(jsast.FieldProperty)
	if property == nil || property.Kind != jsast.KindIdentifier {
		return "", false
	}
	return strings.TrimPrefix(property.Name, "#"), true
}
