package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aeterist/aeterist/internal/model"
	"github.com/aeterist/aeterist/internal/store"
	"github.com/aeterist/aeterist/internal/testutil"
)

func testOwner() model.User {
	return model.User{
		ID:             "u_root",
		Username:       "lynni",
		Password:       "ownerpw",
		Bio:            "Site Owner.",
		Role:           model.RoleOwner,
		Friends:        []string{},
		FriendRequests: []string{},
	}
}

// newTestApp builds an App on a fresh in-memory store with deterministic
// ids and timestamps. The bootstrap owner "lynni" exists and no session
// is active.
func newTestApp(t *testing.T) (*App, *store.Store) {
	t.Helper()
	kv, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	a := New(context.Background(), kv, testOwner(), "theme-void",
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithIDGenerator(testutil.NewCountingIDGenerator()),
		WithClock(testutil.NewDeterministicClock(1000, 1)),
	)
	return a, kv
}

// reopen hydrates a second App from the same store, simulating the next
// process start.
func reopen(t *testing.T, kv *store.Store) *App {
	t.Helper()
	return New(context.Background(), kv, testOwner(), "theme-void",
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithIDGenerator(testutil.NewCountingIDGenerator()),
		WithClock(testutil.NewDeterministicClock(2000, 1)),
	)
}

// signup is a test shorthand that fails the test on error.
func signup(t *testing.T, a *App, username, password string) model.User {
	t.Helper()
	require.NoError(t, a.Signup(context.Background(), username, password))
	u, ok := a.CurrentUser()
	require.True(t, ok)
	return u
}

func TestNew_FreshStoreHasBootstrapOwnerOnly(t *testing.T) {
	a, _ := newTestApp(t)

	users := a.Users()
	require.Len(t, users, 1)
	owner, ok := users["lynni"]
	require.True(t, ok)
	require.Equal(t, model.RoleOwner, owner.Role)

	_, active := a.CurrentUser()
	require.False(t, active)
	require.Equal(t, "theme-void", a.Theme())
}

func TestGetUserByID_IndexTracksCollection(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	u := signup(t, a, "nyx", "pw1")

	got, ok := a.GetUserByID(u.ID)
	require.True(t, ok)
	require.Equal(t, "nyx", got.Username)

	// Index follows collection mutations.
	bio := "changed"
	require.NoError(t, a.UpdateUser(ctx, UserUpdate{Bio: &bio}))
	got, ok = a.GetUserByID(u.ID)
	require.True(t, ok)
	require.Equal(t, "changed", got.Bio)

	_, ok = a.GetUserByID("u-unknown")
	require.False(t, ok)
}

func TestSetTheme(t *testing.T) {
	a, kv := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.SetTheme(ctx, "theme-dawn"))
	require.Equal(t, "theme-dawn", a.Theme())

	err := a.SetTheme(ctx, "")
	require.Error(t, err)
	require.Equal(t, ErrCodeInvalidInput, CodeOf(err))

	require.Equal(t, "theme-dawn", reopen(t, kv).Theme())
}
