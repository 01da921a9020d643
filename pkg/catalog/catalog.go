// Package catalog collects extracted texts into a translation catalog keyed
// by dotted names and renders it as nested JSON.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
)

// ErrInvalid is returned when catalog data cannot be loaded.
var ErrInvalid = errors.New("invalid catalog")

// ConflictKind classifies a rejected catalog entry.
type ConflictKind string

// Conflict kinds.
const (
	// ConflictText marks a key that was already bound to another text.
	ConflictText ConflictKind = "text"

	// ConflictShape marks a key that is both a leaf and a parent, such as
	// "home" and "home.title".
	ConflictShape ConflictKind = "shape"
)

// Conflict describes an entry that was not added.
type Conflict struct {
	Kind     ConflictKind `json:"kind"`
	Key      string       `json:"key"`
	Existing string       `json:"existing"`
	Text     string       `json:"text"`
	Source   string       `json:"source,omitempty"`
}

func (c Conflict) String() string {
	if c.Kind == ConflictShape {
		return fmt.Sprintf("%s: key %q clashes with %q", c.Source, c.Key, c.Existing)
	}
	return fmt.Sprintf("%s: key %q already holds %q, dropped %q", c.Source, c.Key, c.Existing, c.Text)
}

// Catalog is a flat key to text map. The first text added for a key wins.
// A Catalog is not safe for concurrent use.
type Catalog struct {
	entries   map[string]string
	conflicts []Conflict
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{entries: make(map[string]string)}
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Get returns the text stored for key.
func (c *Catalog) Get(key string) (string, bool) {
	text, ok := c.entries[key]
	return text, ok
}

// Keys returns every key in sorted order.
func (c *Catalog) Keys() []string {
	return slices.Sorted(maps.Keys(c.entries))
}

// All yields every entry in key order.
func (c *Catalog) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, key := range c.Keys() {
			if !yield(key, c.entries[key]) {
				return
			}
		}
	}
}

// Conflicts returns the conflicts recorded so far.
func (c *Catalog) Conflicts() []Conflict {
	return c.conflicts
}

// Add stores text under key. It returns false and records a conflict when
// the key holds a different text or clashes with an existing parent or
// leaf.
func (c *Catalog) Add(key, text, source string) bool {
	if existing, ok := c.entries[key]; ok {
		if existing == text {
			return true
		}
		c.conflicts = append(c.conflicts, Conflict{
			Kind: ConflictText, Key: key, Existing: existing, Text: text, Source: source,
		})
		return false
	}

	if clash, ok := c.shapeClash(key); ok {
		c.conflicts = append(c.conflicts, Conflict{
			Kind: ConflictShape, Key: key, Existing: clash, Text: text, Source: source,
		})
		return false
	}

	c.entries[key] = text
	return true
}

// Merge adds every entry of texts in key order and returns the number of
// entries that conflicted.
func (c *Catalog) Merge(texts map[string]string, source string) int {
	rejected := 0
	for _, key := range slices.Sorted(maps.Keys(texts)) {
		if !c.Add(key, texts[key], source) {
			rejected++
		}
	}
	return rejected
}

// Clashes returns the keys of texts that Add would reject, in key order.
// Nothing is recorded.
func (c *Catalog) Clashes(texts map[string]string) []string {
	var keys []string
	for _, key := range slices.Sorted(maps.Keys(texts)) {
		if existing, ok := c.entries[key]; ok {
			if existing != texts[key] {
				keys = append(keys, key)
			}
			continue
		}
		if _, ok := c.shapeClash(key); ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// shapeClash reports an existing key that is a prefix path of key, or of
// which key is a prefix path.
func (c *Catalog) shapeClash(key string) (string, bool) {
	parts := strings.Split(key, ".")
	for i := 1; i < len(parts); i++ {
		parent := strings.Join(parts[:i], ".")
		if _, ok := c.entries[parent]; ok {
			return parent, true
		}
	}

	prefix := key + "."
	for existing := range c.entries {
		if strings.HasPrefix(existing, prefix) {
			return existing, true
		}
	}
	return "", false
}

// Nested converts the dotted keys into nested maps, so "home.title"
// becomes {"home": {"title": ...}}.
func (c *Catalog) Nested() map[string]any {
	root := make(map[string]any)
	for _, key := range c.Keys() {
		set(root, strings.Split(key, "."), c.entries[key])
	}
	return root
}

func set(node map[string]any, path []string, text string) {
	for _, part := range path[:len(path)-1] {
		child, ok := node[part].(map[string]any)
		if !ok {
			child = make(map[string]any)
			node[part] = child
		}
		node = child
	}
	node[path[len(path)-1]] = text
}

// MarshalJSON renders the nested catalog with two-space indentation and
// sorted keys. HTML characters are not escaped.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c.Nested()); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}

// Load parses nested catalog JSON into a Catalog. Non-string leaves are
// rejected.
func Load(data []byte) (*Catalog, error) {
	var nested map[string]any
	if len(bytes.TrimSpace(data)) == 0 {
		return New(), nil
	}
	if err := json.Unmarshal(data, &nested); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	c := New()
	if err := flatten(c, "", nested); err != nil {
		return nil, err
	}
	return c, nil
}

func flatten(c *Catalog, prefix string, node map[string]any) error {
	for _, key := range slices.Sorted(maps.Keys(node)) {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch value := node[key].(type) {
		case string:
			c.entries[full] = value
		case map[string]any:
			if err := flatten(c, full, value); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: key %q holds %T, want string or object", ErrInvalid, full, value)
		}
	}
	return nil
}
