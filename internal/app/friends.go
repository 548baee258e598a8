package app

import (
	"context"

	"github.com/aeterist/aeterist/internal/model"
	"github.com/aeterist/aeterist/internal/store"
)

// SendFriendRequest appends the session subject's id to the target's
// pending inbound requests. Rejected when the target is the subject
// itself, does not exist, or the relationship already exists in either
// form (friend or pending request).
func (a *App) SendFriendRequest(ctx context.Context, targetUsername string) error {
	u, err := a.requireSession()
	if err != nil {
		return err
	}

	targetUsername = model.NormalizeUsername(targetUsername)
	if targetUsername == u.Username {
		return &OpError{Code: ErrCodeSelfTarget, Message: "cannot befriend yourself", Subject: targetUsername}
	}
	target, ok := a.users[targetUsername]
	if !ok {
		return errNotFound("user", targetUsername)
	}
	if containsString(target.FriendRequests, u.ID) || containsString(target.Friends, u.ID) {
		return &OpError{Code: ErrCodeDuplicate, Message: "already friends or request pending", Subject: targetUsername}
	}

	target.FriendRequests = append(target.FriendRequests, u.ID)
	a.setUser(target)

	a.logger.Debug("friend request sent", "from", u.Username, "to", targetUsername)
	return a.persist(ctx, store.KeyUsers)
}

// AcceptFriendRequest adds requester and subject to each other's friend
// lists and removes the requester from the subject's pending requests.
// Friend symmetry: after this, each side lists the other.
func (a *App) AcceptFriendRequest(ctx context.Context, requesterID string) error {
	u, err := a.requireSession()
	if err != nil {
		return err
	}
	if requesterID == u.ID {
		return &OpError{Code: ErrCodeSelfTarget, Message: "cannot accept own request", Subject: requesterID}
	}
	requester, ok := a.usersByID[requesterID]
	if !ok {
		return errNotFound("user", requesterID)
	}

	self := a.users[u.Username]
	if !containsString(self.Friends, requesterID) {
		self.Friends = append(self.Friends, requesterID)
	}
	self.FriendRequests = removeString(self.FriendRequests, requesterID)

	if !containsString(requester.Friends, self.ID) {
		requester.Friends = append(requester.Friends, self.ID)
	}

	a.setUser(self)
	a.setUser(requester)

	a.logger.Debug("friend request accepted", "user", u.Username, "requester", requester.Username)
	return a.persist(ctx, store.KeyUsers, store.KeyCurrentUser)
}

// DeclineFriendRequest removes the requester from the subject's pending
// requests. Declining an id that was never pending is a harmless no-op.
func (a *App) DeclineFriendRequest(ctx context.Context, requesterID string) error {
	u, err := a.requireSession()
	if err != nil {
		return err
	}

	self := a.users[u.Username]
	self.FriendRequests = removeString(self.FriendRequests, requesterID)
	a.setUser(self)

	return a.persist(ctx, store.KeyUsers, store.KeyCurrentUser)
}

// RemoveFriend removes each side from the other's friend list.
func (a *App) RemoveFriend(ctx context.Context, friendID string) error {
	u, err := a.requireSession()
	if err != nil {
		return err
	}
	friend, ok := a.usersByID[friendID]
	if !ok {
		return errNotFound("user", friendID)
	}

	self := a.users[u.Username]
	self.Friends = removeString(self.Friends, friendID)
	friend.Friends = removeString(friend.Friends, self.ID)

	a.setUser(self)
	a.setUser(friend)

	a.logger.Debug("friend removed", "user", u.Username, "friend", friend.Username)
	return a.persist(ctx, store.KeyUsers, store.KeyCurrentUser)
}

// Friends returns the session subject's friends, resolved to users.
func (a *App) Friends() ([]model.User, error) {
	u, err := a.requireSession()
	if err != nil {
		return nil, err
	}
	return a.resolveIDs(a.users[u.Username].Friends), nil
}

// PendingRequests returns the users behind the session subject's
// pending inbound friend requests.
func (a *App) PendingRequests() ([]model.User, error) {
	u, err := a.requireSession()
	if err != nil {
		return nil, err
	}
	return a.resolveIDs(a.users[u.Username].FriendRequests), nil
}

// resolveIDs maps user ids to users, silently skipping ids that no
// longer resolve.
func (a *App) resolveIDs(ids []string) []model.User {
	out := make([]model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := a.usersByID[id]; ok {
			out = append(out, u)
		}
	}
	return out
}
