// Package harness provides a conformance testing framework for the
// state store.
//
// Scenarios are YAML files describing a sequence of operations and a
// set of final-state assertions. Each scenario runs against a fresh
// in-memory store with deterministic ids and timestamps, so repeated
// runs produce identical state and golden snapshots.
//
// Entities are referenced by natural handles rather than generated
// ids: users by username, posts by title, comments and messages by
// their text. The harness resolves handles against live state before
// dispatching each operation, which keeps scenario files readable and
// independent of the id scheme.
package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aeterist/aeterist/internal/app"
	"github.com/aeterist/aeterist/internal/model"
	"github.com/aeterist/aeterist/internal/store"
	"github.com/aeterist/aeterist/internal/testutil"
)

// Deterministic bootstrap environment shared by all scenarios.
const (
	harnessTheme         = "theme-void"
	harnessOwnerUsername = "lynni"
	harnessOwnerPassword = "ownerpw"
)

// bootstrapOwner is the owner account every scenario starts with.
func bootstrapOwner() model.User {
	return model.User{
		ID:             "u_root",
		Username:       harnessOwnerUsername,
		Password:       harnessOwnerPassword,
		Bio:            "Site Owner.",
		Role:           model.RoleOwner,
		Friends:        []string{},
		FriendRequests: []string{},
	}
}

// Harness executes one scenario against one App instance.
type Harness struct {
	app *app.App
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// Deterministic id and clock helpers ensure reproducible results.
//
// The returned error covers infrastructure faults (store failures,
// unknown ops); precondition failures and assertion mismatches are
// reported through the Result instead.
func Run(scenario *Scenario) (*Result, error) {
	result, _, err := run(scenario)
	return result, err
}

// run is the shared executor behind Run and RunWithGolden. It returns
// the App so callers can snapshot final state.
func run(scenario *Scenario) (*Result, *app.App, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	a := app.New(context.Background(), st, bootstrapOwner(), harnessTheme,
		app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		app.WithIDGenerator(testutil.NewCountingIDGenerator()),
		app.WithClock(testutil.NewDeterministicClock(1000, 1)),
	)

	h := &Harness{app: a}
	ctx := context.Background()

	result := NewResult()
	for i, step := range scenario.Steps {
		err := h.executeStep(ctx, step)
		code := string(app.CodeOf(err))
		if err != nil && code == "" {
			return nil, nil, fmt.Errorf("step %d (%s): %w", i, step.Op, err)
		}

		result.Steps = append(result.Steps, StepOutcome{Op: step.Op, Error: code})
		if code != step.ExpectError {
			result.AddError(fmt.Sprintf("step %d (%s): expected error %q, got %q",
				i, step.Op, step.ExpectError, code))
		}
	}

	for i, assertion := range scenario.Assertions {
		if err := h.evaluateAssertion(assertion); err != nil {
			result.AddError(fmt.Sprintf("assertion %d: %v", i, err))
		}
	}

	return result, a, nil
}

// executeStep dispatches one operation. Returned OpErrors are
// precondition failures matched against expect_error; any other error
// aborts the scenario.
func (h *Harness) executeStep(ctx context.Context, step Step) error {
	args := step.Args
	switch step.Op {
	case "signup":
		return h.app.Signup(ctx, str(args, "username"), str(args, "password"))
	case "login":
		return h.app.Login(ctx, str(args, "username"), str(args, "password"))
	case "logout":
		return h.app.Logout(ctx)

	case "update_user":
		var update app.UserUpdate
		if v, ok := args["bio"].(string); ok {
			update.Bio = &v
		}
		if v, ok := args["picture"].(string); ok {
			update.ProfilePicture = &v
		}
		if v, ok := args["password"].(string); ok {
			update.Password = &v
		}
		return h.app.UpdateUser(ctx, update)
	case "update_role":
		return h.app.UpdateUserRole(ctx, str(args, "username"), model.Role(str(args, "role")))

	case "add_post":
		_, err := h.app.AddPost(ctx, app.PostDraft{
			Title:     str(args, "title"),
			Content:   str(args, "content"),
			MediaURL:  str(args, "media_url"),
			MediaType: model.MediaType(str(args, "media_type")),
		})
		return err
	case "delete_post":
		id, err := h.postID(str(args, "title"))
		if err != nil {
			return err
		}
		return h.app.DeletePost(ctx, id)
	case "like_post":
		id, err := h.postID(str(args, "title"))
		if err != nil {
			return err
		}
		return h.app.ToggleLikePost(ctx, id)
	case "dislike_post":
		id, err := h.postID(str(args, "title"))
		if err != nil {
			return err
		}
		return h.app.ToggleDislikePost(ctx, id)

	case "add_comment":
		id, err := h.postID(str(args, "post"))
		if err != nil {
			return err
		}
		_, err = h.app.AddComment(ctx, id, str(args, "content"))
		return err
	case "delete_comment":
		id, err := h.commentID(str(args, "content"))
		if err != nil {
			return err
		}
		return h.app.DeleteComment(ctx, id)

	case "send_friend_request":
		return h.app.SendFriendRequest(ctx, str(args, "username"))
	case "accept_friend_request":
		id, err := h.userID(str(args, "username"))
		if err != nil {
			return err
		}
		return h.app.AcceptFriendRequest(ctx, id)
	case "decline_friend_request":
		id, err := h.userID(str(args, "username"))
		if err != nil {
			return err
		}
		return h.app.DeclineFriendRequest(ctx, id)
	case "remove_friend":
		id, err := h.userID(str(args, "username"))
		if err != nil {
			return err
		}
		return h.app.RemoveFriend(ctx, id)

	case "send_global_message":
		_, err := h.app.SendGlobalMessage(ctx, str(args, "text"))
		return err
	case "delete_global_message":
		id, err := h.globalMessageID(str(args, "text"))
		if err != nil {
			return err
		}
		return h.app.DeleteGlobalMessage(ctx, id)
	case "send_message":
		id, err := h.userID(str(args, "to"))
		if err != nil {
			return err
		}
		_, err = h.app.SendMessage(ctx, id, str(args, "text"))
		return err

	case "update_scripture":
		// An existing entry with the same title is updated in place;
		// otherwise a new entry is created.
		id := ""
		for _, s := range h.app.Scriptures() {
			if s.Title == str(args, "title") {
				id = s.ID
				break
			}
		}
		_, err := h.app.UpdateScripture(ctx, id, str(args, "title"), str(args, "content"))
		return err

	case "add_calendar_event":
		return h.app.AddCalendarEvent(ctx, model.CalendarEvent{
			Date:        str(args, "date"),
			Title:       str(args, "title"),
			Description: str(args, "description"),
		})
	case "delete_calendar_event":
		return h.app.DeleteCalendarEvent(ctx, str(args, "date"))

	case "set_theme":
		return h.app.SetTheme(ctx, str(args, "theme"))

	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
}

// userID resolves a username handle. Unknown handles become NOT_FOUND
// so scenarios can expect them.
func (h *Harness) userID(username string) (string, error) {
	u, ok := h.app.GetUserByUsername(username)
	if !ok {
		return "", &app.OpError{Code: app.ErrCodeNotFound, Message: "user not found", Subject: username}
	}
	return u.ID, nil
}

// postID resolves a post-title handle.
func (h *Harness) postID(title string) (string, error) {
	for _, p := range h.app.Posts() {
		if p.Title == title {
			return p.ID, nil
		}
	}
	return "", &app.OpError{Code: app.ErrCodeNotFound, Message: "post not found", Subject: title}
}

// commentID resolves a comment-content handle.
func (h *Harness) commentID(content string) (string, error) {
	for _, c := range h.app.Comments() {
		if c.Content == content {
			return c.ID, nil
		}
	}
	return "", &app.OpError{Code: app.ErrCodeNotFound, Message: "comment not found", Subject: content}
}

// globalMessageID resolves a broadcast-text handle.
func (h *Harness) globalMessageID(text string) (string, error) {
	for _, m := range h.app.GlobalMessages() {
		if m.Text == text {
			return m.ID, nil
		}
	}
	return "", &app.OpError{Code: app.ErrCodeNotFound, Message: "global message not found", Subject: text}
}

// str reads a string argument, tolerating absent keys.
func str(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}
