package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeterist/aeterist/internal/model"
	"github.com/aeterist/aeterist/internal/store"
)

// Builds a world with every collection populated, rehydrates it into a
// second App, and verifies the round trip.
func TestPersistence_RoundTrip(t *testing.T) {
	a, kv := newTestApp(t)
	ctx := context.Background()

	alba := signup(t, a, "alba", "pw")
	brim := signup(t, a, "brim", "pw")

	post, err := a.AddPost(ctx, PostDraft{Title: "T", Content: "C"})
	require.NoError(t, err)
	comment, err := a.AddComment(ctx, post.ID, "first")
	require.NoError(t, err)
	require.NoError(t, a.ToggleLikePost(ctx, post.ID))

	require.NoError(t, a.SendFriendRequest(ctx, "alba"))
	gmsg, err := a.SendGlobalMessage(ctx, "hail")
	require.NoError(t, err)
	dm, err := a.SendMessage(ctx, alba.ID, "psst")
	require.NoError(t, err)

	require.NoError(t, a.Login(ctx, "lynni", "ownerpw"))
	scripture, err := a.UpdateScripture(ctx, "", "Genesis", "text")
	require.NoError(t, err)
	require.NoError(t, a.AddCalendarEvent(ctx, model.CalendarEvent{
		Date: "2026-03-01", Title: "Vigil", Description: "dusk",
	}))
	require.NoError(t, a.SetTheme(ctx, "theme-dawn"))

	b := reopen(t, kv)

	require.Len(t, b.Users(), 3)
	gotBrim, ok := b.GetUserByUsername("brim")
	require.True(t, ok)
	assert.Equal(t, brim.ID, gotBrim.ID)

	gotAlba, _ := b.GetUserByUsername("alba")
	assert.Equal(t, []string{brim.ID}, gotAlba.FriendRequests)

	require.Len(t, b.Posts(), 1)
	gotPost := b.Posts()[0]
	assert.Equal(t, post.ID, gotPost.ID)
	assert.Equal(t, []string{brim.ID}, gotPost.Likes)
	assert.Equal(t, []string{}, gotPost.Dislikes)

	require.Len(t, b.Comments(), 1)
	assert.Equal(t, comment.ID, b.Comments()[0].ID)

	require.Len(t, b.GlobalMessages(), 1)
	assert.Equal(t, gmsg.ID, b.GlobalMessages()[0].ID)

	require.Len(t, b.Messages(), 1)
	assert.Equal(t, dm.ID, b.Messages()[0].ID)

	require.Len(t, b.Scriptures(), 1)
	assert.Equal(t, scripture.ID, b.Scriptures()[0].ID)

	event, ok := b.EventOn("2026-03-01")
	require.True(t, ok)
	assert.Equal(t, "Vigil", event.Title)

	assert.Equal(t, "theme-dawn", b.Theme())

	session, active := b.CurrentUser()
	require.True(t, active)
	assert.Equal(t, "lynni", session.Username)
}

// A rejected command leaves the persisted state untouched.
func TestPersistence_NoWriteOnPreconditionFailure(t *testing.T) {
	a, kv := newTestApp(t)
	ctx := context.Background()

	signup(t, a, "nyx", "pw1")
	post, err := a.AddPost(ctx, PostDraft{Title: "T", Content: "C"})
	require.NoError(t, err)

	before, _, err := kv.Get(ctx, store.KeyPosts)
	require.NoError(t, err)

	signup(t, a, "bystander", "pw")
	require.True(t, IsForbidden(a.DeletePost(ctx, post.ID)))

	after, _, err := kv.Get(ctx, store.KeyPosts)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

// Unauthenticated moderation attempts change nothing, in memory or on
// disk.
func TestAuthorizationEnforcement_NoStateChange(t *testing.T) {
	a, kv := newTestApp(t)
	ctx := context.Background()

	// Seed moderated content as the owner.
	require.NoError(t, a.Login(ctx, "lynni", "ownerpw"))
	gmsg, err := a.SendGlobalMessage(ctx, "decree")
	require.NoError(t, err)
	_, err = a.UpdateScripture(ctx, "", "Genesis", "v1")
	require.NoError(t, err)

	signup(t, a, "plain", "pw")

	require.True(t, IsForbidden(a.DeleteGlobalMessage(ctx, gmsg.ID)))
	_, err = a.UpdateScripture(ctx, "", "Heresy", "nope")
	require.True(t, IsForbidden(err))
	require.True(t, IsForbidden(a.AddCalendarEvent(ctx, model.CalendarEvent{Date: "2026-01-01", Title: "x"})))
	require.True(t, IsForbidden(a.UpdateUserRole(ctx, "lynni", model.RoleUser)))

	b := reopen(t, kv)
	assert.Len(t, b.GlobalMessages(), 1)
	assert.Len(t, b.Scriptures(), 1)
	assert.Empty(t, b.CalendarEvents())
	owner, _ := b.GetUserByUsername("lynni")
	assert.Equal(t, model.RoleOwner, owner.Role)
}
