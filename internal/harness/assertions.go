package harness

import (
	"fmt"
)

// AssertionError is returned when a final-state assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion failed: %s\n  Expected: %s\n  Actual: %s",
		e.Type, e.Expected, e.Actual)
}

// evaluateAssertion checks one assertion against the final state.
func (h *Harness) evaluateAssertion(a Assertion) error {
	switch a.Type {
	case AssertCount:
		return h.assertCount(a)
	case AssertRole:
		return h.assertRole(a)
	case AssertFriends, AssertRequests:
		return h.assertRelations(a)
	case AssertReactions:
		return h.assertReactions(a)
	case AssertTheme:
		return h.assertTheme(a)
	case AssertSession:
		return h.assertSession(a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func (h *Harness) assertCount(a Assertion) error {
	var actual int
	switch a.Collection {
	case "users":
		actual = len(h.app.Users())
	case "posts":
		actual = len(h.app.Posts())
	case "comments":
		actual = len(h.app.Comments())
	case "globalMessages":
		actual = len(h.app.GlobalMessages())
	case "messages":
		actual = len(h.app.Messages())
	case "scriptures":
		actual = len(h.app.Scriptures())
	case "calendarEvents":
		actual = len(h.app.CalendarEvents())
	default:
		return fmt.Errorf("unknown collection %q", a.Collection)
	}

	if actual != a.Count {
		return &AssertionError{
			Type:     AssertCount,
			Expected: fmt.Sprintf("%d entries in %s", a.Count, a.Collection),
			Actual:   fmt.Sprintf("%d entries", actual),
		}
	}
	return nil
}

func (h *Harness) assertRole(a Assertion) error {
	u, ok := h.app.GetUserByUsername(a.User)
	if !ok {
		return &AssertionError{
			Type:     AssertRole,
			Expected: fmt.Sprintf("user %s with role %s", a.User, a.Role),
			Actual:   "user not found",
		}
	}
	if string(u.Role) != a.Role {
		return &AssertionError{
			Type:     AssertRole,
			Expected: fmt.Sprintf("user %s with role %s", a.User, a.Role),
			Actual:   fmt.Sprintf("role %s", u.Role),
		}
	}
	return nil
}

// assertRelations covers friends and requests: both compare an ordered
// id list against expected usernames.
func (h *Harness) assertRelations(a Assertion) error {
	u, ok := h.app.GetUserByUsername(a.User)
	if !ok {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("user %s", a.User),
			Actual:   "user not found",
		}
	}

	ids := u.Friends
	if a.Type == AssertRequests {
		ids = u.FriendRequests
	}

	actual := h.usernamesOf(ids)
	if !stringSlicesEqual(actual, a.Users) {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%s of %s = %v", a.Type, a.User, a.Users),
			Actual:   fmt.Sprintf("%v", actual),
		}
	}
	return nil
}

func (h *Harness) assertReactions(a Assertion) error {
	for _, p := range h.app.Posts() {
		if p.Title != a.Post {
			continue
		}
		likes := h.usernamesOf(p.Likes)
		dislikes := h.usernamesOf(p.Dislikes)
		if !stringSlicesEqual(likes, a.Likes) || !stringSlicesEqual(dislikes, a.Dislikes) {
			return &AssertionError{
				Type:     AssertReactions,
				Expected: fmt.Sprintf("likes=%v dislikes=%v", a.Likes, a.Dislikes),
				Actual:   fmt.Sprintf("likes=%v dislikes=%v", likes, dislikes),
			}
		}
		return nil
	}
	return &AssertionError{
		Type:     AssertReactions,
		Expected: fmt.Sprintf("post %q", a.Post),
		Actual:   "post not found",
	}
}

func (h *Harness) assertTheme(a Assertion) error {
	if actual := h.app.Theme(); actual != a.Theme {
		return &AssertionError{
			Type:     AssertTheme,
			Expected: fmt.Sprintf("theme %s", a.Theme),
			Actual:   fmt.Sprintf("theme %s", actual),
		}
	}
	return nil
}

func (h *Harness) assertSession(a Assertion) error {
	u, active := h.app.CurrentUser()
	switch {
	case a.User == "" && active:
		return &AssertionError{
			Type:     AssertSession,
			Expected: "no active session",
			Actual:   fmt.Sprintf("signed in as %s", u.Username),
		}
	case a.User != "" && !active:
		return &AssertionError{
			Type:     AssertSession,
			Expected: fmt.Sprintf("signed in as %s", a.User),
			Actual:   "no active session",
		}
	case a.User != "" && u.Username != a.User:
		return &AssertionError{
			Type:     AssertSession,
			Expected: fmt.Sprintf("signed in as %s", a.User),
			Actual:   fmt.Sprintf("signed in as %s", u.Username),
		}
	}
	return nil
}

// usernamesOf maps user ids to usernames, keeping order. Ids that no
// longer resolve render as "?" so mismatches stay visible.
func (h *Harness) usernamesOf(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if u, ok := h.app.GetUserByID(id); ok {
			out = append(out, u.Username)
		} else {
			out = append(out, "?"+id)
		}
	}
	return out
}

// stringSlicesEqual treats nil and empty as equal.
func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
