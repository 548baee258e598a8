package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aeterist/aeterist/internal/model"
)

func TestSignupLoginScenario(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.Signup(ctx, "nyx", "pw1"))

	err := a.Signup(ctx, "nyx", "pw2")
	require.Error(t, err, "duplicate username must be rejected")
	require.Equal(t, ErrCodeUsernameTaken, CodeOf(err))

	require.NoError(t, a.Login(ctx, "nyx", "pw1"))

	err = a.Login(ctx, "nyx", "wrong")
	require.Equal(t, ErrCodeBadCredentials, CodeOf(err))
}

func TestSignup_SetsSessionAndDefaults(t *testing.T) {
	a, _ := newTestApp(t)

	u := signup(t, a, "nyx", "pw1")

	require.Equal(t, model.RoleUser, u.Role)
	require.NotEmpty(t, u.ID)
	require.Empty(t, u.Friends)
	require.Empty(t, u.FriendRequests)
	require.NotEmpty(t, u.Bio)
}

func TestSignup_RejectsEmptyFields(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	require.Equal(t, ErrCodeInvalidInput, CodeOf(a.Signup(ctx, "  ", "pw")))
	require.Equal(t, ErrCodeInvalidInput, CodeOf(a.Signup(ctx, "nyx", "")))
}

func TestSignup_NormalizesUsername(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.Signup(ctx, "  nyx ", "pw1"))

	// Same name with surrounding whitespace is the same account.
	require.Equal(t, ErrCodeUsernameTaken, CodeOf(a.Signup(ctx, "nyx", "pw2")))
	require.NoError(t, a.Login(ctx, " nyx  ", "pw1"))
}

func TestLogin_UnknownUser(t *testing.T) {
	a, _ := newTestApp(t)

	err := a.Login(context.Background(), "ghost", "pw")
	require.Equal(t, ErrCodeBadCredentials, CodeOf(err))

	_, active := a.CurrentUser()
	require.False(t, active, "failed login must not open a session")
}

func TestLogout_ClearsSession(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	signup(t, a, "nyx", "pw1")
	require.NoError(t, a.Logout(ctx))

	_, active := a.CurrentUser()
	require.False(t, active)

	// Logout while logged out still succeeds.
	require.NoError(t, a.Logout(ctx))
}

func TestSession_SurvivesRestart(t *testing.T) {
	a, kv := newTestApp(t)

	signup(t, a, "nyx", "pw1")

	u, active := reopen(t, kv).CurrentUser()
	require.True(t, active, "session subject is persisted and rehydrated")
	require.Equal(t, "nyx", u.Username)
}

func TestAuthenticatedOpsRequireSession(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	bio := "x"
	cases := map[string]error{
		"updateUser":     a.UpdateUser(ctx, UserUpdate{Bio: &bio}),
		"toggleLike":     a.ToggleLikePost(ctx, "p-1"),
		"sendRequest":    a.SendFriendRequest(ctx, "lynni"),
		"deletePost":     a.DeletePost(ctx, "p-1"),
		"sendGlobal":     func() error { _, err := a.SendGlobalMessage(ctx, "hi"); return err }(),
		"deleteCalendar": a.DeleteCalendarEvent(ctx, "2026-01-01"),
	}
	for name, err := range cases {
		require.Truef(t, IsNotAuthenticated(err), "%s: got %v", name, err)
	}
}
