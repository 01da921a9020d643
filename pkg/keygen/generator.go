// Package keygen turns literal text into stable, unique catalog keys.
package keygen

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/langex/internal/logging"
)

// Generator assigns keys for one extraction run. Identical text always maps
// to the same key and different text never shares a key. A Generator is not
// safe for concurrent use; give each run its own.
type Generator struct {
	prefix    string
	maxLength int
	logger    *log.Logger

	// textKeys maps source text to the full key it was given.
	textKeys map[string]string

	// seenCounts tracks how many times each candidate slug has been
	// produced, used for generating collision suffixes.
	seenCounts map[string]int

	// assigned holds every unprefixed key handed out.
	assigned map[string]struct{}

	renamed int
}

// Option configures a Generator.
type Option func(*Generator)

// WithPrefix namespaces every key as "prefix.key".
func WithPrefix(prefix string) Option {
	return func(g *Generator) {
		g.prefix = prefix
	}
}

// WithMaxLength caps the slug part of a key. Values below 1 select
// DefaultMaxLength.
func WithMaxLength(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxLength = n
		}
	}
}

// WithLogger sets the logger that reports collision renames.
func WithLogger(logger *log.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a Generator with empty run state.
func New(opts ...Option) *Generator {
	gen := &Generator{
		maxLength:  DefaultMaxLength,
		textKeys:   make(map[string]string),
		seenCounts: make(map[string]int),
		assigned:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(gen)
	}
	if gen.logger == nil {
		gen.logger = logging.Default()
	}
	return gen
}

// Generate returns the key for text, assigning a new one on first sight.
func (g *Generator) Generate(text string) string {
	if key, ok := g.textKeys[text]; ok {
		return key
	}

	candidate := Slug(text, g.maxLength)
	key := g.uniqueKey(candidate)
	g.assigned[key] = struct{}{}

	full := key
	if g.prefix != "" {
		full = g.prefix + "." + key
	}
	g.textKeys[text] = full

	return full
}

func (g *Generator) uniqueKey(candidate string) string {
	if !g.isTaken(candidate) {
		g.seenCounts[candidate] = 1
		return candidate
	}

	key, count := g.nextFree(candidate)
	g.seenCounts[candidate] = count
	g.renamed++
	g.logger.Warn("key duplicate fixed", logging.FieldKey, candidate, logging.FieldRenamed, key)

	return key
}

func (g *Generator) isTaken(candidate string) bool {
	if g.seenCounts[candidate] > 0 {
		return true
	}
	_, ok := g.assigned[candidate]
	return ok
}

// nextFree returns the first "candidate_<n>" not yet assigned, starting
// after the running count for candidate.
func (g *Generator) nextFree(candidate string) (string, int) {
	count := max(g.seenCounts[candidate], 1)
	for {
		count++
		key := candidate + "_" + strconv.Itoa(count)
		if _, taken := g.assigned[key]; !taken {
			return key, count
		}
	}
}

// Reserve records that key already holds text, for example in an existing
// catalog. Generate then returns key for text and never hands key to a
// different text. Keys outside the generator's prefix are ignored.
func (g *Generator) Reserve(key, text string) {
	local := key
	if g.prefix != "" {
		var ok bool
		if local, ok = strings.CutPrefix(key, g.prefix+"."); !ok {
			return
		}
	}
	g.assigned[local] = struct{}{}
	if _, seen := g.textKeys[text]; !seen {
		g.textKeys[text] = key
	}
}

// Lookup returns the key previously assigned to text.
func (g *Generator) Lookup(text string) (string, bool) {
	key, ok := g.textKeys[text]
	return key, ok
}

// Prefix returns the configured key prefix.
func (g *Generator) Prefix() string {
	return g.prefix
}

// Len returns the number of distinct texts seen in this run.
func (g *Generator) Len() int {
	return len(g.textKeys)
}

// Renamed returns how many keys received a collision suffix.
func (g *Generator) Renamed() int {
	return g.renamed
}
