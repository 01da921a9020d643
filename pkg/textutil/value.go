// Package textutil provides small normalisation helpers for literal values
// found in source code.
package textutil

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// isQuote reports whether b is one of the JavaScript string delimiters.
func isQuote(b byte) bool {
	return b == '\'' || b == '"' || b == '`'
}

// FormatValue strips matching quote characters from both ends of s.
// Quotes are only removed when the first and last characters are equal, so
// a value like `"it's` is returned unchanged.
func FormatValue(s string) string {
	if s == "" || s[0] != s[len(s)-1] {
		return s
	}

	start, end := 0, len(s)
	for start < end && isQuote(s[start]) {
		start++
	}
	for end > start && isQuote(s[end-1]) {
		end--
	}
	return s[start:end]
}

// RemoveBrackets strips one leading "(" and one trailing ")" from s.
// It undoes the synthetic wrapping applied before parsing an embedded
// expression.
func RemoveBrackets(s string) string {
	s = strings.TrimPrefix(s, "(")
	return strings.TrimSuffix(s, ")")
}

// WrapBrackets wraps s in parentheses so it parses as a single expression.
func WrapBrackets(s string) string {
	return "(" + s + ")"
}

// CondenseWhitespace collapses every newline together with the spaces around
// it into a single space, matching how HTML renders wrapped template text.
func CondenseWhitespace(s string) string {
	if !strings.Contains(s, "\n") {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s))

	i := 0
	for i < len(s) {
		if s[i] != ' ' && s[i] != '\n' && s[i] != '\r' && s[i] != '\t' {
			buf.WriteByte(s[i])
			i++
			continue
		}

		j := i
		sawNewline := false
		for j < len(s) && (s[j] == ' ' || s[j] == '\n' || s[j] == '\r' || s[j] == '\t') {
			if s[j] == '\n' {
				sawNewline = true
			}
			j++
		}
		if sawNewline {
			buf.WriteByte(' ')
		} else {
			buf.WriteString(s[i:j])
		}
		i = j
	}

	return buf.String()
}

// TrimmedRange returns the byte offsets [start, end) of s without its
// leading and trailing whitespace. For a blank string start == end.
func TrimmedRange(s string) (int, int) {
	start := 0
	for start < len(s) && isSpace(s[start]) {
		start++
	}
	end := len(s)
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return start, end
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	default:
		return false
	}
}

// CookString decodes the escape sequences of a JavaScript string literal
// body (the text between the quotes). Unknown escapes keep the escaped
// character, as JavaScript does.
func CookString(raw string) string {
	if !strings.Contains(raw, `\`) {
		return raw
	}

	var buf strings.Builder
	buf.Grow(len(raw))

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			buf.WriteByte(c)
			continue
		}

		i++
		switch esc := raw[i]; esc {
		case 'n':
			buf.WriteByte('\n')
		case 't':
			buf.WriteByte('\t')
		case 'r':
			buf.WriteByte('\r')
		case 'b':
			buf.WriteByte('\b')
		case 'f':
			buf.WriteByte('\f')
		case 'v':
			buf.WriteByte('\v')
		case '0':
			buf.WriteByte(0)
		case '\n':
			// Line continuation.
		case '\r':
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
		case 'x':
			if r, n, ok := parseHex(raw[i+1:], 2); ok {
				buf.WriteRune(r)
				i += n
			} else {
				buf.WriteByte(esc)
			}
		case 'u':
			r, n, ok := parseUnicodeEscape(raw[i+1:])
			if ok {
				buf.WriteRune(r)
				i += n
			} else {
				buf.WriteByte(esc)
			}
		default:
			buf.WriteByte(esc)
		}
	}

	return buf.String()
}

// parseUnicodeEscape parses the part after `\u`: either four hex digits or a
// braced code point. It returns the rune and the number of bytes consumed.
func parseUnicodeEscape(s string) (rune, int, bool) {
	if strings.HasPrefix(s, "{") {
		closing := strings.IndexByte(s, '}')
		if closing < 2 {
			return 0, 0, false
		}
		r, _, ok := parseHex(s[1:closing], closing-1)
		if !ok || !utf8.ValidRune(r) {
			return 0, 0, false
		}
		return r, closing + 1, true
	}
	return parseHex(s, 4)
}

// parseHex parses exactly n hex digits from the start of s.
func parseHex(s string, n int) (rune, int, bool) {
	if len(s) < n {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(s[:n], 16, 32)
	if err != nil {
		return 0, 0, false
	}
	return rune(v), n, true
}
