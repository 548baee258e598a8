package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runPass runs a scenario and fails the test unless every step and
// assertion passed.
func runPass(t *testing.T, scenario *Scenario) {
	t.Helper()
	result, err := Run(scenario)
	require.NoError(t, err)
	require.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestAssertReactions_ResolvesUsernames(t *testing.T) {
	runPass(t, &Scenario{
		Name:        "reactions-usernames",
		Description: "reaction assertions compare usernames, not ids",
		Steps: []Step{
			{Op: "signup", Args: map[string]any{"username": "nyx", "password": "pw"}},
			{Op: "add_post", Args: map[string]any{"title": "Dawn", "content": "x"}},
			{Op: "dislike_post", Args: map[string]any{"title": "Dawn"}},
		},
		Assertions: []Assertion{
			{Type: AssertReactions, Post: "Dawn", Dislikes: []string{"nyx"}},
		},
	})
}

func TestAssertSession_LoggedOut(t *testing.T) {
	runPass(t, &Scenario{
		Name:        "session-logged-out",
		Description: "an empty session assertion matches the logged-out state",
		Steps: []Step{
			{Op: "signup", Args: map[string]any{"username": "nyx", "password": "pw"}},
			{Op: "logout"},
		},
		Assertions: []Assertion{{Type: AssertSession}},
	})
}

func TestAssertionError_Message(t *testing.T) {
	err := &AssertionError{
		Type:     AssertTheme,
		Expected: "theme theme-dawn",
		Actual:   "theme theme-void",
	}
	assert.Contains(t, err.Error(), "assertion failed: theme")
	assert.Contains(t, err.Error(), "Expected: theme theme-dawn")
	assert.Contains(t, err.Error(), "Actual: theme theme-void")
}

func TestAssertFriends_OrderMatters(t *testing.T) {
	scenario := &Scenario{
		Name:        "friends-order",
		Description: "friend assertions compare the full ordered list",
		Steps: []Step{
			{Op: "signup", Args: map[string]any{"username": "ash", "password": "pw"}},
			{Op: "signup", Args: map[string]any{"username": "brim", "password": "pw"}},
			{Op: "send_friend_request", Args: map[string]any{"username": "ash"}},
			{Op: "login", Args: map[string]any{"username": "ash", "password": "pw"}},
			{Op: "accept_friend_request", Args: map[string]any{"username": "brim"}},
		},
		Assertions: []Assertion{
			{Type: AssertFriends, User: "ash", Users: []string{"cole", "brim"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
}
