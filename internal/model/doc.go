// Package model defines the entity types of the Aeterist state store:
// users, posts, comments, chat messages, scriptures, and calendar events.
//
// All identifiers are opaque strings. JSON tags match the persisted
// layout, so these types round-trip directly through the key-value store.
package model
