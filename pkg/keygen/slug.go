package keygen

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMaxLength is the default cap on the slug part of a key.
const DefaultMaxLength = 32

const slugCacheSize = 4096

//nolint:gochecknoglobals // compiled once, shared by every generator
var (
	numericPattern = regexp.MustCompile(`^[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?$`)
	slugCache      = mustCache()
)

func mustCache() *lru.Cache[string, string] {
	cache, err := lru.New[string, string](slugCacheSize)
	if err != nil {
		panic(err)
	}
	return cache
}

// Slug converts text into a snake_case key fragment of at most maxLength
// bytes. Numeric text becomes "n_<value>"; text with nothing to keep becomes
// "k_<hash>". Results are memoised.
func Slug(text string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	cacheKey := strconv.Itoa(maxLength) + "\x00" + text
	if slug, ok := slugCache.Get(cacheKey); ok {
		return slug
	}

	slug := computeSlug(text, maxLength)
	slugCache.Add(cacheKey, slug)
	return slug
}

func computeSlug(text string, maxLength int) string {
	trimmed := strings.TrimSpace(text)
	if numericPattern.MatchString(trimmed) {
		return truncate("n_"+snakeCase(strings.ReplaceAll(trimmed, ".", "_")), maxLength)
	}

	slug := truncate(snakeCase(Transliterate(trimmed)), maxLength)
	if slug == "" {
		return hashKey(text)
	}
	return slug
}

func truncate(slug string, maxLength int) string {
	if len(slug) > maxLength {
		slug = slug[:maxLength]
	}
	return strings.Trim(slug, "_")
}

func hashKey(text string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(text)) // hash.Hash.Write never fails
	return fmt.Sprintf("k_%08x", h.Sum32())
}

// snakeCase lower-cases s and joins its words with underscores. Words are
// split on anything that is not an ASCII letter or digit and on case
// boundaries: "fooBar" and "HTTPServer" become "foo_bar" and "http_server".
func snakeCase(s string) string {
	var words []string
	var word []rune

	flush := func() {
		if len(word) > 0 {
			words = append(words, strings.ToLower(string(word)))
			word = word[:0]
		}
	}

	rs := []rune(s)
	for i, r := range rs {
		if !isWordRune(r) {
			flush()
			continue
		}
		if len(word) > 0 && unicode.IsUpper(r) {
			prev := word[len(word)-1]
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		word = append(word, r)
	}
	flush()

	return strings.Join(words, "_")
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
