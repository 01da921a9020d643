package vue_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/langex/pkg/vue"
)

func BenchmarkParse(b *testing.B) {
	src := "<div>" + strings.Repeat(`<p class="row" :title="'Hi'">Hello {{ name }}</p>`, 200) + "</div>"
	b.ResetTimer()
	for range b.N {
		if _, err := vue.Parse(src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSplitSFC(b *testing.B) {
	src := "<template>\n  <p>Hello</p>\n</template>\n<script setup>\nconst a = 'Hi'\n</script>\n<style>\np { color: red }\n</style>\n"
	b.ResetTimer()
	for range b.N {
		if _, err := vue.SplitSFC(src); err != nil {
			b.Fatal(err)
		}
	}
}
