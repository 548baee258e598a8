package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeterist/aeterist/internal/model"
)

func TestUpdateUser_MergesPartialFields(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	signup(t, a, "nyx", "pw1")

	bio := "chronicler"
	require.NoError(t, a.UpdateUser(ctx, UserUpdate{Bio: &bio}))

	// Collection copy updated, untouched fields preserved.
	u, _ := a.GetUserByUsername("nyx")
	assert.Equal(t, "chronicler", u.Bio)
	assert.Equal(t, "pw1", u.Password)

	// Session copy updated too.
	session, _ := a.CurrentUser()
	assert.Equal(t, "chronicler", session.Bio)

	pic := "https://example.com/nyx.png"
	pw := "pw2"
	require.NoError(t, a.UpdateUser(ctx, UserUpdate{ProfilePicture: &pic, Password: &pw}))

	u, _ = a.GetUserByUsername("nyx")
	assert.Equal(t, "chronicler", u.Bio, "earlier merge survives later partials")
	assert.Equal(t, pic, u.ProfilePicture)

	require.NoError(t, a.Logout(ctx))
	require.NoError(t, a.Login(ctx, "nyx", "pw2"), "password change takes effect")
}

func TestUpdateUserRole_OwnerOnly(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	signup(t, a, "nyx", "pw1")
	signup(t, a, "mod", "pw2")

	// A plain user cannot assign roles.
	err := a.UpdateUserRole(ctx, "nyx", model.RoleModerator)
	require.True(t, IsForbidden(err))

	require.NoError(t, a.Login(ctx, "lynni", "ownerpw"))
	require.NoError(t, a.UpdateUserRole(ctx, "mod", model.RoleModerator))

	u, _ := a.GetUserByUsername("mod")
	assert.Equal(t, model.RoleModerator, u.Role)

	// Even a co-owner cannot assign roles; only the owner may.
	require.NoError(t, a.UpdateUserRole(ctx, "nyx", model.RoleCoOwner))
	require.NoError(t, a.Login(ctx, "nyx", "pw1"))
	err = a.UpdateUserRole(ctx, "mod", model.RoleUser)
	require.True(t, IsForbidden(err))
}

func TestUpdateUserRole_NeverSelf(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.Login(ctx, "lynni", "ownerpw"))

	err := a.UpdateUserRole(ctx, "lynni", model.RoleUser)
	require.Equal(t, ErrCodeSelfTarget, CodeOf(err))

	u, _ := a.GetUserByUsername("lynni")
	assert.Equal(t, model.RoleOwner, u.Role, "owner role unchanged")
}

func TestUpdateUserRole_Validation(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.Login(ctx, "lynni", "ownerpw"))

	require.True(t, IsNotFound(a.UpdateUserRole(ctx, "ghost", model.RoleModerator)))
	require.Equal(t, ErrCodeInvalidInput, CodeOf(a.UpdateUserRole(ctx, "ghost2", model.Role("wizard"))))
}
