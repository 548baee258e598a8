package app

import (
	"context"

	"github.com/aeterist/aeterist/internal/model"
	"github.com/aeterist/aeterist/internal/store"
)

// PostDraft carries the author-supplied fields of a new post.
type PostDraft struct {
	Title     string
	Content   string
	MediaURL  string
	MediaType model.MediaType
}

// AddPost prepends a new post to the feed (most-recent-first order) with
// a fresh id, the session subject's author fields, and empty reaction
// sets.
func (a *App) AddPost(ctx context.Context, draft PostDraft) (model.Post, error) {
	u, err := a.requireSession()
	if err != nil {
		return model.Post{}, err
	}

	post := model.Post{
		ID:        a.ids.NewID(idPrefixPost),
		Title:     draft.Title,
		Content:   draft.Content,
		UserID:    u.ID,
		Username:  u.Username,
		CreatedAt: a.clock.NowMillis(),
		MediaURL:  draft.MediaURL,
		MediaType: draft.MediaType,
		Likes:     []string{},
		Dislikes:  []string{},
	}
	a.posts = append([]model.Post{post}, a.posts...)

	a.logger.Debug("post added", "id", post.ID, "author", u.Username)
	if err := a.persist(ctx, store.KeyPosts); err != nil {
		return model.Post{}, err
	}
	return post, nil
}

// DeletePost removes a post and cascades to all its comments.
// Allowed for the author or any moderation role.
func (a *App) DeletePost(ctx context.Context, postID string) error {
	u, err := a.requireSession()
	if err != nil {
		return err
	}

	idx := a.findPost(postID)
	if idx < 0 {
		return errNotFound("post", postID)
	}
	if a.posts[idx].UserID != u.ID && !u.Role.CanModerate() {
		return errForbidden("not the author and not a moderator")
	}

	a.posts = append(a.posts[:idx], a.posts[idx+1:]...)

	kept := make([]model.Comment, 0, len(a.comments))
	for _, c := range a.comments {
		if c.PostID != postID {
			kept = append(kept, c)
		}
	}
	a.comments = kept

	a.logger.Debug("post deleted", "id", postID, "by", u.Username)
	return a.persist(ctx, store.KeyPosts, store.KeyComments)
}

// ToggleLikePost toggles the session subject's membership in the post's
// likes. Liking always clears the subject from dislikes, keeping the
// two sets disjoint.
func (a *App) ToggleLikePost(ctx context.Context, postID string) error {
	u, err := a.requireSession()
	if err != nil {
		return err
	}

	idx := a.findPost(postID)
	if idx < 0 {
		return errNotFound("post", postID)
	}

	post := &a.posts[idx]
	if containsString(post.Likes, u.ID) {
		post.Likes = removeString(post.Likes, u.ID)
	} else {
		post.Likes = append(post.Likes, u.ID)
	}
	post.Dislikes = removeString(post.Dislikes, u.ID)

	return a.persist(ctx, store.KeyPosts)
}

// ToggleDislikePost is the symmetric toggle on dislikes, clearing likes.
func (a *App) ToggleDislikePost(ctx context.Context, postID string) error {
	u, err := a.requireSession()
	if err != nil {
		return err
	}

	idx := a.findPost(postID)
	if idx < 0 {
		return errNotFound("post", postID)
	}

	post := &a.posts[idx]
	if containsString(post.Dislikes, u.ID) {
		post.Dislikes = removeString(post.Dislikes, u.ID)
	} else {
		post.Dislikes = append(post.Dislikes, u.ID)
	}
	post.Likes = removeString(post.Likes, u.ID)

	return a.persist(ctx, store.KeyPosts)
}

// AddComment appends a comment to a live post (chronological order).
func (a *App) AddComment(ctx context.Context, postID, content string) (model.Comment, error) {
	u, err := a.requireSession()
	if err != nil {
		return model.Comment{}, err
	}
	if a.findPost(postID) < 0 {
		return model.Comment{}, errNotFound("post", postID)
	}

	comment := model.Comment{
		ID:        a.ids.NewID(idPrefixComment),
		PostID:    postID,
		UserID:    u.ID,
		Username:  u.Username,
		Content:   content,
		CreatedAt: a.clock.NowMillis(),
	}
	a.comments = append(a.comments, comment)

	if err := a.persist(ctx, store.KeyComments); err != nil {
		return model.Comment{}, err
	}
	return comment, nil
}

// DeleteComment removes a comment. Allowed for the author or any
// moderation role.
func (a *App) DeleteComment(ctx context.Context, commentID string) error {
	u, err := a.requireSession()
	if err != nil {
		return err
	}

	idx := -1
	for i, c := range a.comments {
		if c.ID == commentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errNotFound("comment", commentID)
	}
	if a.comments[idx].UserID != u.ID && !u.Role.CanModerate() {
		return errForbidden("not the author and not a moderator")
	}

	a.comments = append(a.comments[:idx], a.comments[idx+1:]...)
	return a.persist(ctx, store.KeyComments)
}

// findPost returns the feed index of a post id, or -1.
func (a *App) findPost(postID string) int {
	for i, p := range a.posts {
		if p.ID == postID {
			return i
		}
	}
	return -1
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// removeString allocates a fresh slice so snapshots handed out earlier
// never alias the mutated reaction or friend sets.
func removeString(list []string, s string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
