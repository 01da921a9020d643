package keygen

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mozillazg/go-pinyin"
	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Transliterate renders text in Latin script. Runs of Han characters become
// tone-less pinyin syllables separated by spaces; accented Latin letters lose
// their marks; anything else non-ASCII goes through unidecode. ASCII input
// is returned unchanged.
func Transliterate(text string) string {
	if isASCII(text) {
		return text
	}

	out := romanizeHan(text)
	if isASCII(out) {
		return out
	}

	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), out)
	if err == nil {
		out = stripped
	}
	if isASCII(out) {
		return out
	}
	return unidecode.Unidecode(out)
}

// romanizeHan replaces each run of Han characters with its pinyin reading,
// keeping the surrounding text as it is.
func romanizeHan(text string) string {
	if !strings.ContainsFunc(text, isHan) {
		return text
	}

	args := pinyin.NewArgs()
	args.Style = pinyin.Normal

	var buf strings.Builder
	buf.Grow(len(text) * 2)

	var run []rune
	flush := func() {
		if len(run) == 0 {
			return
		}
		syllables := pinyin.LazyPinyin(string(run), args)
		buf.WriteByte(' ')
		buf.WriteString(strings.Join(syllables, " "))
		buf.WriteByte(' ')
		run = run[:0]
	}

	for _, r := range text {
		if isHan(r) {
			run = append(run, r)
			continue
		}
		flush()
		buf.WriteRune(r)
	}
	flush()

	return buf.String()
}

func isHan(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
