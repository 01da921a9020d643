// Package checker decides whether a literal value or attribute is worth
// extracting into a translation catalog.
package checker

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Reason classifies why a value was rejected.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonEmpty         Reason = "empty"
	ReasonInterpolation Reason = "interpolation"
	ReasonNoLetters     Reason = "no-letters"
	ReasonURL           Reason = "url"
	ReasonTooShort      Reason = "too-short"
	ReasonIdentifier    Reason = "identifier"
	ReasonClassList     Reason = "class-list"
	ReasonIgnored       Reason = "ignored"
)

// Notice is a borderline rejection that should be surfaced to the user.
type Notice struct {
	Reason  Reason
	Message string
}

// DefaultExcludedAttributes lists attribute names whose values are never
// user-facing text.
func DefaultExcludedAttributes() []string {
	return []string{
		"class", "className", "style", "id", "ref", "key", "src", "href", "to",
		"name", "type", "for", "htmlFor", "rel", "target", "width", "height",
		"lang", "is", "slot", "role", "method", "action", "xmlns", "v-model",
		"tabindex", "tabIndex",
	}
}

// Options configures a Checker.
type Options struct {
	// MinLength is the minimum number of runes (after trimming) a value must
	// have. Values below 1 are treated as 1.
	MinLength int

	// SkipURLs rejects values that look like URLs.
	SkipURLs bool

	// ExcludedAttributes are attribute names never extracted.
	ExcludedAttributes []string

	// AllowedAttributes override the data-/aria- exclusion for specific
	// names (e.g. "aria-label").
	AllowedAttributes []string

	// IgnorePatterns are regular expressions; matching values are skipped.
	IgnorePatterns []string
}

// DefaultOptions returns the default checker policy.
func DefaultOptions() Options {
	return Options{
		MinLength:          2,
		SkipURLs:           true,
		ExcludedAttributes: DefaultExcludedAttributes(),
		AllowedAttributes:  []string{"aria-label", "aria-placeholder", "aria-description"},
	}
}

// Checker applies an extraction policy. It is immutable after construction
// and safe for concurrent use.
type Checker struct {
	minLength int
	skipURLs  bool
	excluded  map[string]struct{}
	allowed   map[string]struct{}
	ignore    []*regexp.Regexp
}

// New builds a Checker from opts. It fails when an ignore pattern does not
// compile.
func New(opts Options) (*Checker, error) {
	chk := &Checker{
		minLength: max(opts.MinLength, 1),
		skipURLs:  opts.SkipURLs,
		excluded:  toSet(opts.ExcludedAttributes),
		allowed:   toSet(opts.AllowedAttributes),
	}

	for _, pattern := range opts.IgnorePatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile ignore pattern %q: %w", pattern, err)
		}
		chk.ignore = append(chk.ignore, re)
	}

	return chk, nil
}

// Default returns a Checker with DefaultOptions.
func Default() *Checker {
	chk, _ := New(DefaultOptions()) //nolint:errcheck // default options carry no patterns
	return chk
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

//nolint:gochecknoglobals // compiled once
var (
	urlPattern        = regexp.MustCompile(`^(?:[a-zA-Z][a-zA-Z0-9+.\-]*://|mailto:|tel:|//[\w\-]+\.)\S*$`)
	identifierPattern = regexp.MustCompile(`^[A-Za-z_$][\w$.\-/:]*$`)
	classTokenPattern = regexp.MustCompile(`^[a-z][a-z0-9_\-]*$`)
)

// ValueNeedsExtraction reports whether text should become a catalog entry.
// The returned Notice is non-nil for borderline rejections worth a warning.
func (c *Checker) ValueNeedsExtraction(text string) (bool, *Notice) {
	reason := c.Classify(text)
	if reason == ReasonInterpolation {
		return false, &Notice{
			Reason:  reason,
			Message: "value contains interpolation markers",
		}
	}
	return reason == ReasonNone, nil
}

// Classify returns the reason text would be rejected, or ReasonNone when it
// should be extracted.
func (c *Checker) Classify(text string) Reason {
	trimmed := strings.TrimSpace(text)
	switch {
	case trimmed == "":
		return ReasonEmpty
	case hasInterpolationMarkers(trimmed):
		return ReasonInterpolation
	case !strings.ContainsFunc(trimmed, unicode.IsLetter):
		return ReasonNoLetters
	case c.skipURLs && urlPattern.MatchString(trimmed):
		return ReasonURL
	case utf8.RuneCountInString(trimmed) < c.minLength:
		return ReasonTooShort
	case isIdentifierLike(trimmed):
		return ReasonIdentifier
	case isClassList(trimmed):
		return ReasonClassList
	}
	for _, re := range c.ignore {
		if re.MatchString(trimmed) {
			return ReasonIgnored
		}
	}
	return ReasonNone
}

func hasInterpolationMarkers(s string) bool {
	return strings.Contains(s, "{{") || strings.Contains(s, "}}") || strings.Contains(s, "${")
}

// isIdentifierLike reports whether s is a single code-like token: a
// lower-case word, snake/kebab/dotted/path names or camelCase. Capitalised
// words and acronyms are treated as text.
func isIdentifierLike(s string) bool {
	if !identifierPattern.MatchString(s) {
		return false
	}
	if strings.ContainsAny(s, "_.-/:$") {
		return true
	}

	first, _ := utf8.DecodeRuneInString(s)
	if unicode.IsLower(first) {
		return true
	}

	// PascalCase with an inner upper-case letter after a lower-case one,
	// e.g. "UserProfile". Acronyms like "PDF" and words like "Hello" pass.
	prevLower := false
	for _, r := range s {
		if unicode.IsUpper(r) && prevLower {
			return true
		}
		prevLower = unicode.IsLower(r)
	}
	return false
}

// isClassList reports whether s looks like a list of CSS class names.
func isClassList(s string) bool {
	tokens := strings.Fields(s)
	if len(tokens) < 2 {
		return false
	}
	separated := false
	for _, tok := range tokens {
		if !classTokenPattern.MatchString(tok) {
			return false
		}
		if strings.ContainsAny(tok, "-_") {
			separated = true
		}
	}
	return separated
}

// AttributeNeedsExtraction reports whether the value of an attribute with
// the given name may hold user-facing text. Binding sigils are ignored.
func (c *Checker) AttributeNeedsExtraction(name string) bool {
	name = BareAttributeName(name)
	if name == "" {
		return false
	}

	if _, ok := c.allowed[name]; ok {
		return true
	}
	if _, ok := c.excluded[name]; ok {
		return false
	}

	if IsEventHandler(name) {
		return false
	}
	if strings.HasPrefix(name, "data-") || strings.HasPrefix(name, "aria-") {
		return false
	}
	if strings.HasPrefix(name, "v-") || strings.HasPrefix(name, "#") {
		return false
	}

	return true
}

// BareAttributeName strips Vue binding prefixes from an attribute name.
func BareAttributeName(name string) string {
	switch {
	case strings.HasPrefix(name, "v-bind:"):
		return strings.TrimPrefix(name, "v-bind:")
	case strings.HasPrefix(name, ":"):
		return strings.TrimPrefix(name, ":")
	case strings.HasPrefix(name, "."):
		return strings.TrimPrefix(name, ".")
	}
	return name
}

// IsEventHandler matches "@click", "v-on:click", JSX handlers such as
// "onClick" and lowercase DOM handlers such as "onclick". Names like
// "onboarding" are not handlers.
func IsEventHandler(name string) bool {
	if strings.HasPrefix(name, "@") || strings.HasPrefix(name, "v-on:") {
		return true
	}
	event, ok := strings.CutPrefix(name, "on")
	if !ok || event == "" {
		return false
	}
	if r, _ := utf8.DecodeRuneInString(event); unicode.IsUpper(r) {
		return true
	}
	return domEvents[event]
}

// domEvents are the lowercase names of DOM events, as used in "on"
// attributes.
//
//nolint:gochecknoglobals // Read-only lookup table.
var domEvents = map[string]bool{
	"abort": true, "animationend": true, "animationiteration": true, "animationstart": true,
	"auxclick": true, "beforeinput": true, "beforeunload": true, "blur": true,
	"cancel": true, "canplay": true, "canplaythrough": true, "change": true,
	"click": true, "close": true, "contextmenu": true, "copy": true, "cut": true,
	"dblclick": true, "drag": true, "dragend": true, "dragenter": true, "dragleave": true,
	"dragover": true, "dragstart": true, "drop": true, "durationchange": true,
	"ended": true, "error": true, "focus": true, "focusin": true, "focusout": true,
	"formdata": true, "hashchange": true, "input": true, "invalid": true,
	"keydown": true, "keypress": true, "keyup": true,
	"load": true, "loadeddata": true, "loadedmetadata": true, "loadstart": true,
	"message": true, "mousedown": true, "mouseenter": true, "mouseleave": true,
	"mousemove": true, "mouseout": true, "mouseover": true, "mouseup": true,
	"offline": true, "online": true, "pagehide": true, "pageshow": true, "paste": true,
	"pause": true, "play": true, "playing": true, "pointercancel": true,
	"pointerdown": true, "pointerenter": true, "pointerleave": true, "pointermove": true,
	"pointerout": true, "pointerover": true, "pointerup": true, "popstate": true,
	"progress": true, "ratechange": true, "reset": true, "resize": true,
	"scroll": true, "scrollend": true, "search": true, "seeked": true, "seeking": true,
	"select": true, "selectionchange": true, "stalled": true, "storage": true,
	"submit": true, "suspend": true, "timeupdate": true, "toggle": true,
	"touchcancel": true, "touchend": true, "touchmove": true, "touchstart": true,
	"transitionend": true, "unload": true, "volumechange": true, "waiting": true,
	"wheel": true,
}
