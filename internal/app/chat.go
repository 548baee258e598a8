package app

import (
	"context"

	"github.com/aeterist/aeterist/internal/model"
	"github.com/aeterist/aeterist/internal/store"
)

// SendGlobalMessage appends to the shared broadcast log. The sender's
// username and picture are snapshotted at send time; later profile
// edits do not rewrite history.
func (a *App) SendGlobalMessage(ctx context.Context, text string) (model.GlobalMessage, error) {
	u, err := a.requireSession()
	if err != nil {
		return model.GlobalMessage{}, err
	}

	msg := model.GlobalMessage{
		ID:                   a.ids.NewID(idPrefixGlobalMessage),
		SenderID:             u.ID,
		SenderUsername:       u.Username,
		SenderProfilePicture: u.ProfilePicture,
		Text:                 text,
		Timestamp:            a.clock.NowMillis(),
	}
	a.globalMessages = append(a.globalMessages, msg)

	if err := a.persist(ctx, store.KeyGlobalMessages); err != nil {
		return model.GlobalMessage{}, err
	}
	return msg, nil
}

// DeleteGlobalMessage removes a broadcast message. Moderation roles
// only - authors cannot delete their own broadcasts.
func (a *App) DeleteGlobalMessage(ctx context.Context, messageID string) error {
	if _, err := a.requireModerator(); err != nil {
		return err
	}

	idx := -1
	for i, msg := range a.globalMessages {
		if msg.ID == messageID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errNotFound("global message", messageID)
	}

	a.globalMessages = append(a.globalMessages[:idx], a.globalMessages[idx+1:]...)
	return a.persist(ctx, store.KeyGlobalMessages)
}

// SendMessage appends a direct message to the receiver.
func (a *App) SendMessage(ctx context.Context, receiverID, text string) (model.Message, error) {
	u, err := a.requireSession()
	if err != nil {
		return model.Message{}, err
	}
	if _, ok := a.usersByID[receiverID]; !ok {
		return model.Message{}, errNotFound("user", receiverID)
	}

	msg := model.Message{
		ID:         a.ids.NewID(idPrefixMessage),
		SenderID:   u.ID,
		ReceiverID: receiverID,
		Text:       text,
		Timestamp:  a.clock.NowMillis(),
	}
	a.messages = append(a.messages, msg)

	if err := a.persist(ctx, store.KeyMessages); err != nil {
		return model.Message{}, err
	}
	return msg, nil
}

// Conversation returns the direct messages between the session subject
// and one partner, in chronological order. A conversation is the
// unordered endpoint pair.
func (a *App) Conversation(partnerID string) ([]model.Message, error) {
	u, err := a.requireSession()
	if err != nil {
		return nil, err
	}

	var out []model.Message
	for _, msg := range a.messages {
		if (msg.SenderID == u.ID && msg.ReceiverID == partnerID) ||
			(msg.SenderID == partnerID && msg.ReceiverID == u.ID) {
			out = append(out, msg)
		}
	}
	return out, nil
}
