package app

import (
	"context"

	"github.com/aeterist/aeterist/internal/model"
	"github.com/aeterist/aeterist/internal/store"
)

// Bio given to freshly signed-up accounts.
const newUserBio = "New disciple."

// Login sets the session subject after a credential check.
// Passwords are plaintext equality by design - the store is fully
// trusted and there is no server to verify against.
func (a *App) Login(ctx context.Context, username, password string) error {
	username = model.NormalizeUsername(username)
	u, ok := a.users[username]
	if !ok || u.Password != password {
		return &OpError{Code: ErrCodeBadCredentials, Message: "wrong username or password", Subject: username}
	}

	session := u
	a.currentUser = &session
	a.logger.Debug("login", "username", username)
	return a.persist(ctx, store.KeyCurrentUser)
}

// Logout clears the session subject. Always succeeds.
func (a *App) Logout(ctx context.Context) error {
	a.currentUser = nil
	return a.persist(ctx, store.KeyCurrentUser)
}

// Signup creates a new account with the default role and sets it as the
// session subject.
func (a *App) Signup(ctx context.Context, username, password string) error {
	username = model.NormalizeUsername(username)
	if username == "" {
		return errInvalidInput("username must not be empty")
	}
	if password == "" {
		return errInvalidInput("password must not be empty")
	}
	if _, taken := a.users[username]; taken {
		return &OpError{Code: ErrCodeUsernameTaken, Message: "username already taken", Subject: username}
	}

	u := model.User{
		ID:             a.ids.NewID(idPrefixUser),
		Username:       username,
		Password:       password,
		Bio:            newUserBio,
		Role:           model.RoleUser,
		Friends:        []string{},
		FriendRequests: []string{},
	}
	a.users[username] = u
	a.rebuildUserIndex()

	session := u
	a.currentUser = &session

	a.logger.Debug("signup", "username", username, "id", u.ID)
	return a.persist(ctx, store.KeyUsers, store.KeyCurrentUser)
}

// requireSession returns the session subject or a NOT_AUTHENTICATED
// failure. Every authenticated command starts here.
func (a *App) requireSession() (model.User, error) {
	if a.currentUser == nil {
		return model.User{}, errNotAuthenticated()
	}
	return *a.currentUser, nil
}

// requireModerator returns the session subject if it holds a
// content-moderation role (moderator, co-owner, or owner).
func (a *App) requireModerator() (model.User, error) {
	u, err := a.requireSession()
	if err != nil {
		return model.User{}, err
	}
	if !u.Role.CanModerate() {
		return model.User{}, errForbidden("requires a moderation role")
	}
	return u, nil
}
