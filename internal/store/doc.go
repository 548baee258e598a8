// Package store provides the persistent key-value mirror for the
// in-memory state.
//
// The persisted layout is one row per top-level collection key (users,
// posts, comments, currentUser, globalMessages, messages, scriptures,
// calendarEvents, theme) with the JSON serialization of that collection
// as the value. SQLite with WAL mode backs the table; a single connection
// serializes writers.
package store
