package runner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/langex/pkg/runner"
)

func TestPathPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rel  string
		want string
	}{
		{"src/components/UserCard.vue", "components.user_card"},
		{"src/App.vue", "app"},
		{"src/pages/settings/index.ts", "pages.settings"},
		{"views/user-profile/Header.tsx", "views.user_profile.header"},
		{"./src/main.js", "main"},
		{"index.js", "index"},
		{"src", "src"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, runner.PathPrefix(tt.rel))
		})
	}
}
