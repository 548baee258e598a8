package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenarioFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/first-light.yaml")
	require.NoError(t, err)

	assert.Equal(t, "first-light", s.Name)
	assert.NotEmpty(t, s.Description)
	assert.True(t, s.Golden)
	require.NotEmpty(t, s.Steps)
	assert.Equal(t, "signup", s.Steps[0].Op)
	assert.Equal(t, "nyx", s.Steps[0].Args["username"])
	require.NotEmpty(t, s.Assertions)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	// "assertion" (singular) is a typo for "assertions".
	path := writeScenarioFile(t, `
name: typo
description: unknown field should be rejected
steps:
  - op: logout
assertion:
  - type: theme
    theme: theme-void
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
}

func TestLoadScenario_RequiresSteps(t *testing.T) {
	path := writeScenarioFile(t, `
name: empty
description: no steps
steps: []
golden: true
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
}

func TestLoadScenario_RequiresAssertionsOrGolden(t *testing.T) {
	path := writeScenarioFile(t, `
name: aimless
description: nothing is checked
steps:
  - op: logout
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assertions, golden, or both")
}

func TestValidateAssertion(t *testing.T) {
	tests := []struct {
		name      string
		assertion Assertion
		wantErr   bool
	}{
		{"valid count", Assertion{Type: AssertCount, Collection: "posts", Count: 1}, false},
		{"count without collection", Assertion{Type: AssertCount, Count: 1}, true},
		{"valid role", Assertion{Type: AssertRole, User: "nyx", Role: "moderator"}, false},
		{"role without user", Assertion{Type: AssertRole, Role: "moderator"}, true},
		{"valid friends", Assertion{Type: AssertFriends, User: "nyx"}, false},
		{"requests without user", Assertion{Type: AssertRequests}, true},
		{"valid reactions", Assertion{Type: AssertReactions, Post: "Dawn"}, false},
		{"reactions without post", Assertion{Type: AssertReactions}, true},
		{"valid theme", Assertion{Type: AssertTheme, Theme: "theme-void"}, false},
		{"theme without theme", Assertion{Type: AssertTheme}, true},
		{"session allows empty user", Assertion{Type: AssertSession}, false},
		{"missing type", Assertion{}, true},
		{"unknown type", Assertion{Type: "telepathy"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAssertion(0, &tt.assertion)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
