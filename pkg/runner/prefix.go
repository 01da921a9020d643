package runner

import (
	"path"
	"strings"

	"github.com/yaklabco/langex/pkg/keygen"
)

// PathPrefix derives a key prefix from a slash-separated relative path:
// a leading "src" directory, the extension and a trailing "index" are
// dropped and each remaining segment is slugged, so
// "src/components/UserCard.vue" becomes "components.user_card".
func PathPrefix(rel string) string {
	rel = strings.TrimSuffix(rel, path.Ext(rel))

	var parts []string
	for _, part := range strings.Split(rel, "/") {
		if part != "" && part != "." && part != ".." {
			parts = append(parts, part)
		}
	}
	if len(parts) > 1 && parts[0] == "src" {
		parts = parts[1:]
	}
	if n := len(parts); n > 1 && strings.EqualFold(parts[n-1], "index") {
		parts = parts[:n-1]
	}

	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		segments = append(segments, keygen.Slug(part, keygen.DefaultMaxLength))
	}
	return strings.Join(segments, ".")
}

// keyPrefixFor returns the prefix for the file at rel.
func (s *settings) keyPrefixFor(rel string) string {
	if !s.prefixFromPath {
		return s.keyPrefix
	}
	fromPath := PathPrefix(rel)
	switch {
	case s.keyPrefix == "":
		return fromPath
	case fromPath == "":
		return s.keyPrefix
	default:
		return s.keyPrefix + "." + fromPath
	}
}
