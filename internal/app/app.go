package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/aeterist/aeterist/internal/hydrate"
	"github.com/aeterist/aeterist/internal/model"
	"github.com/aeterist/aeterist/internal/store"
)

// App is the authoritative in-memory state store and mutation layer.
//
// It owns every collection (users, posts, comments, global messages,
// direct messages, scriptures, calendar events), the session subject,
// and the theme. Each mutation validates its preconditions against the
// session/authorization gate, applies the change, and mirrors every
// touched collection to the key-value store in a single transaction.
//
// App is NOT safe for concurrent use. The system model is one logical
// actor executing one command at a time to completion; multiple
// processes sharing a store see last-write-wins per collection key with
// no conflict resolution.
//
// INVARIANTS:
//   - usersByID is derived from users and rebuilt on every users change,
//     never mutated independently
//   - currentUser, when set, is a copy of the matching users entry
//   - likes and dislikes are disjoint per post
//   - comments always reference a live post
//   - at most one calendar event per date
type App struct {
	kv     *store.Store
	logger *slog.Logger
	ids    IDGenerator
	clock  Clock

	users          map[string]model.User // by username, primary key
	usersByID      map[string]model.User // derived index
	posts          []model.Post          // newest first
	comments       []model.Comment       // chronological
	globalMessages []model.GlobalMessage // chronological
	messages       []model.Message       // chronological
	scriptures     []model.Scripture
	calendarEvents []model.CalendarEvent
	currentUser    *model.User
	theme          string
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

// WithIDGenerator replaces the id generator.
// Use testutil.CountingIDGenerator for deterministic ids in tests.
func WithIDGenerator(ids IDGenerator) Option {
	return func(a *App) { a.ids = ids }
}

// WithClock replaces the timestamp source.
// Use testutil.DeterministicClock for reproducible timestamps in tests.
func WithClock(clock Clock) Option {
	return func(a *App) { a.clock = clock }
}

// New constructs the App by hydrating persisted state from the store.
// Constructed once at process start; bootstrap and defaultTheme are the
// hydration fallbacks for a fresh or corrupt store.
func New(ctx context.Context, kv *store.Store, bootstrap model.User, defaultTheme string, opts ...Option) *App {
	a := &App{
		kv:     kv,
		logger: slog.Default(),
		ids:    UUIDGenerator{},
		clock:  SystemClock{},
	}
	for _, opt := range opts {
		opt(a)
	}

	state := hydrate.Load(ctx, kv, bootstrap, defaultTheme, a.logger)
	a.users = state.Users
	a.posts = state.Posts
	a.comments = state.Comments
	a.globalMessages = state.GlobalMessages
	a.messages = state.Messages
	a.scriptures = state.Scriptures
	a.calendarEvents = state.CalendarEvents
	a.currentUser = state.CurrentUser
	a.theme = state.Theme
	a.rebuildUserIndex()

	return a
}

// rebuildUserIndex recomputes the id->User index from the
// username-keyed collection. Called whenever users changes.
func (a *App) rebuildUserIndex() {
	a.usersByID = make(map[string]model.User, len(a.users))
	for _, u := range a.users {
		a.usersByID[u.ID] = u
	}
}

// setUser writes a user record into the collection, refreshes the
// derived index, and refreshes the session copy if the record belongs
// to the session subject.
func (a *App) setUser(u model.User) {
	a.users[u.Username] = u
	a.rebuildUserIndex()
	if a.currentUser != nil && a.currentUser.ID == u.ID {
		session := u
		a.currentUser = &session
	}
}

// persist serializes the named collections and writes them to the
// key-value store in one transaction. Called exactly once per completed
// mutation with every collection the command touched.
func (a *App) persist(ctx context.Context, keys ...string) error {
	entries := make(map[string]string, len(keys))
	for _, key := range keys {
		value, err := a.marshalCollection(key)
		if err != nil {
			return fmt.Errorf("persist %q: %w", key, err)
		}
		entries[key] = value
	}
	if err := a.kv.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("persist: %w", err)
	}
	return nil
}

func (a *App) marshalCollection(key string) (string, error) {
	var v any
	switch key {
	case store.KeyUsers:
		v = a.users
	case store.KeyPosts:
		v = a.posts
	case store.KeyComments:
		v = a.comments
	case store.KeyCurrentUser:
		v = a.currentUser
	case store.KeyGlobalMessages:
		v = a.globalMessages
	case store.KeyMessages:
		v = a.messages
	case store.KeyScriptures:
		v = a.scriptures
	case store.KeyCalendarEvents:
		v = a.calendarEvents
	case store.KeyTheme:
		v = a.theme
	default:
		return "", fmt.Errorf("unknown collection key %q", key)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Users returns a copy of the users collection, keyed by username.
func (a *App) Users() map[string]model.User {
	users := make(map[string]model.User, len(a.users))
	for username, u := range a.users {
		users[username] = u
	}
	return users
}

// Usernames returns all usernames in sorted order.
func (a *App) Usernames() []string {
	names := make([]string, 0, len(a.users))
	for username := range a.users {
		names = append(names, username)
	}
	sort.Strings(names)
	return names
}

// GetUserByID resolves a user by the stable cross-reference key.
func (a *App) GetUserByID(id string) (model.User, bool) {
	u, ok := a.usersByID[id]
	return u, ok
}

// GetUserByUsername resolves a user by the primary lookup key.
func (a *App) GetUserByUsername(username string) (model.User, bool) {
	u, ok := a.users[model.NormalizeUsername(username)]
	return u, ok
}

// Posts returns the feed, newest first.
func (a *App) Posts() []model.Post {
	return append([]model.Post(nil), a.posts...)
}

// Comments returns all comments in chronological order.
func (a *App) Comments() []model.Comment {
	return append([]model.Comment(nil), a.comments...)
}

// CommentsFor returns the comments of one post in chronological order.
func (a *App) CommentsFor(postID string) []model.Comment {
	var out []model.Comment
	for _, c := range a.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out
}

// GlobalMessages returns the broadcast log in chronological order.
func (a *App) GlobalMessages() []model.GlobalMessage {
	return append([]model.GlobalMessage(nil), a.globalMessages...)
}

// Messages returns the full direct-message log in chronological order.
func (a *App) Messages() []model.Message {
	return append([]model.Message(nil), a.messages...)
}

// Scriptures returns all scripture entries.
func (a *App) Scriptures() []model.Scripture {
	return append([]model.Scripture(nil), a.scriptures...)
}

// CalendarEvents returns all calendar events.
func (a *App) CalendarEvents() []model.CalendarEvent {
	return append([]model.CalendarEvent(nil), a.calendarEvents...)
}

// CurrentUser returns the session subject, if any.
func (a *App) CurrentUser() (model.User, bool) {
	if a.currentUser == nil {
		return model.User{}, false
	}
	return *a.currentUser, true
}

// Theme returns the active theme identifier.
func (a *App) Theme() string {
	return a.theme
}

// SetTheme sets and persists the theme preference.
func (a *App) SetTheme(ctx context.Context, theme string) error {
	if theme == "" {
		return errInvalidInput("theme must not be empty")
	}
	a.theme = theme
	return a.persist(ctx, store.KeyTheme)
}
