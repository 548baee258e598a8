package app

import (
	"context"

	"github.com/aeterist/aeterist/internal/model"
	"github.com/aeterist/aeterist/internal/store"
)

// UserUpdate is a partial update of the session subject's own record.
// Nil fields are left unchanged.
//
// Username and id are deliberately not updatable: username is the
// collection's primary key and id is the cross-reference key for friend
// lists, likes, and message endpoints; rewriting either would
// desynchronize every index that points at the user.
type UserUpdate struct {
	Bio            *string
	ProfilePicture *string
	Password       *string
}

// UpdateUser merges the partial update into the session subject's
// record, both in the collection and in the session copy.
func (a *App) UpdateUser(ctx context.Context, update UserUpdate) error {
	session, err := a.requireSession()
	if err != nil {
		return err
	}

	u, ok := a.users[session.Username]
	if !ok {
		// Session subject always resolves; hydration guarantees it.
		return errNotFound("user", session.Username)
	}
	if update.Bio != nil {
		u.Bio = *update.Bio
	}
	if update.ProfilePicture != nil {
		u.ProfilePicture = *update.ProfilePicture
	}
	if update.Password != nil {
		u.Password = *update.Password
	}
	a.setUser(u)

	return a.persist(ctx, store.KeyUsers, store.KeyCurrentUser)
}

// UpdateUserRole reassigns another user's role. Only the owner may do
// this, and never to itself.
func (a *App) UpdateUserRole(ctx context.Context, username string, role model.Role) error {
	session, err := a.requireSession()
	if err != nil {
		return err
	}
	if session.Role != model.RoleOwner {
		return errForbidden("only the owner may assign roles")
	}
	if model.ParseRole(string(role)) != role {
		return errInvalidInput("unknown role " + string(role))
	}

	username = model.NormalizeUsername(username)
	if username == session.Username {
		return &OpError{Code: ErrCodeSelfTarget, Message: "cannot change own role", Subject: username}
	}
	u, ok := a.users[username]
	if !ok {
		return errNotFound("user", username)
	}

	u.Role = role
	a.setUser(u)

	a.logger.Debug("role updated", "username", username, "role", role)
	return a.persist(ctx, store.KeyUsers)
}
