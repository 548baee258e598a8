// Package hydrate validates and normalizes persisted state into
// well-formed in-memory collections.
//
// Stored data is untrusted: keys may be absent, hold the wrong shape, or
// fail to parse. Hydration substitutes safe defaults per collection and
// never panics. If the store itself cannot be read, the entire persisted
// state is cleared and a clean bootstrap state is returned - a deliberate
// full-reset policy, not a partial-recovery one.
package hydrate

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	"github.com/aeterist/aeterist/internal/model"
	"github.com/aeterist/aeterist/internal/store"
)

// State is the fully hydrated in-memory state.
type State struct {
	// Users is keyed by username, the primary lookup key.
	Users          map[string]model.User
	Posts          []model.Post
	Comments       []model.Comment
	CurrentUser    *model.User
	GlobalMessages []model.GlobalMessage
	Messages       []model.Message
	Scriptures     []model.Scripture
	CalendarEvents []model.CalendarEvent
	Theme          string
}

// Load reads every collection from the key-value store and hydrates it.
//
// bootstrap is the owner account installed when the users collection is
// absent or malformed. defaultTheme is used when no theme is persisted.
func Load(ctx context.Context, kv *store.Store, bootstrap model.User, defaultTheme string, logger *slog.Logger) *State {
	raw := make(map[string]string, len(store.AllKeys))
	for _, key := range store.AllKeys {
		value, ok, err := kv.Get(ctx, key)
		if err != nil {
			// Storage itself is unreadable. Wipe and start clean.
			logger.Error("persisted state unreadable, resetting store",
				"key", key, "error", err)
			if clearErr := kv.Clear(ctx); clearErr != nil {
				logger.Error("store reset failed", "error", clearErr)
			}
			return Bootstrap(bootstrap, defaultTheme)
		}
		if ok {
			raw[key] = value
		}
	}

	users := hydrateUsers(raw, bootstrap, logger)

	return &State{
		Users:          users,
		Posts:          hydratePosts(raw[store.KeyPosts]),
		Comments:       decodeList[model.Comment](raw[store.KeyComments]),
		CurrentUser:    hydrateCurrentUser(raw[store.KeyCurrentUser], users),
		GlobalMessages: decodeList[model.GlobalMessage](raw[store.KeyGlobalMessages]),
		Messages:       decodeList[model.Message](raw[store.KeyMessages]),
		Scriptures:     decodeList[model.Scripture](raw[store.KeyScriptures]),
		CalendarEvents: decodeList[model.CalendarEvent](raw[store.KeyCalendarEvents]),
		Theme:          hydrateTheme(raw, defaultTheme),
	}
}

// Bootstrap returns the clean initial state: the bootstrap owner, empty
// collections, no session, default theme.
func Bootstrap(owner model.User, defaultTheme string) *State {
	return &State{
		Users:          map[string]model.User{owner.Username: owner},
		Posts:          []model.Post{},
		Comments:       []model.Comment{},
		GlobalMessages: []model.GlobalMessage{},
		Messages:       []model.Message{},
		Scriptures:     []model.Scripture{},
		CalendarEvents: []model.CalendarEvent{},
		Theme:          defaultTheme,
	}
}

// hydrateUsers parses the users collection. The stored shape is an
// object mapping username to user. Absent, non-object, or array values
// fall back to the bootstrap owner. Entries missing an id or username
// are dropped; optional fields get defaults.
func hydrateUsers(raw map[string]string, bootstrap model.User, logger *slog.Logger) map[string]model.User {
	value, ok := raw[store.KeyUsers]
	if !ok {
		return map[string]model.User{bootstrap.Username: bootstrap}
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal([]byte(value), &entries); err != nil || entries == nil {
		// A stored JSON null unmarshals into a nil map without error;
		// it is not an object either and gets the same fallback.
		logger.Warn("users collection has wrong shape, falling back to bootstrap owner")
		return map[string]model.User{bootstrap.Username: bootstrap}
	}

	users := make(map[string]model.User, len(entries))
	for _, entry := range entries {
		if !isJSONObject(entry) {
			continue
		}
		var u model.User
		if err := json.Unmarshal(entry, &u); err != nil {
			continue
		}
		u.Username = model.NormalizeUsername(u.Username)
		if u.ID == "" || u.Username == "" {
			continue
		}
		u.Role = model.ParseRole(string(u.Role))
		if u.Friends == nil {
			u.Friends = []string{}
		}
		if u.FriendRequests == nil {
			u.FriendRequests = []string{}
		}
		// Re-key by the user's own normalized username, not the stored
		// key, so NFD forms stay reachable through the normalizing
		// lookup paths.
		users[u.Username] = u
	}
	return users
}

// hydratePosts parses the posts collection, defaulting missing like and
// dislike sets to empty.
func hydratePosts(value string) []model.Post {
	posts := decodeList[model.Post](value)
	for i := range posts {
		if posts[i].Likes == nil {
			posts[i].Likes = []string{}
		}
		if posts[i].Dislikes == nil {
			posts[i].Dislikes = []string{}
		}
	}
	return posts
}

// hydrateCurrentUser restores the session subject only if its username
// still resolves in the hydrated users collection. The collection copy
// wins over the stored session copy.
func hydrateCurrentUser(value string, users map[string]model.User) *model.User {
	if value == "" {
		return nil
	}
	var stored model.User
	if err := json.Unmarshal([]byte(value), &stored); err != nil {
		return nil
	}
	if u, ok := users[stored.Username]; ok {
		return &u
	}
	return nil
}

func hydrateTheme(raw map[string]string, defaultTheme string) string {
	value, ok := raw[store.KeyTheme]
	if !ok {
		return defaultTheme
	}
	var theme string
	if err := json.Unmarshal([]byte(value), &theme); err != nil || theme == "" {
		return defaultTheme
	}
	return theme
}

// decodeList parses a JSON array of objects. A missing value, a
// non-array value, or a parse failure yields an empty list; elements
// that are not objects are filtered out.
func decodeList[T any](value string) []T {
	out := []T{}
	if value == "" {
		return out
	}
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(value), &elements); err != nil {
		return out
	}
	for _, element := range elements {
		if !isJSONObject(element) {
			continue
		}
		var item T
		if err := json.Unmarshal(element, &item); err != nil {
			continue
		}
		out = append(out, item)
	}
	return out
}

// isJSONObject reports whether the raw value is a JSON object.
// Filters out null, numbers, strings, and nested arrays, which would
// otherwise decode to zero values.
func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
