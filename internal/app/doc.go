// Package app implements the core of the system: the in-memory entity
// store, the session/authorization gate, and the mutation/command layer.
//
// Control flow: callers (CLI commands, the test harness) invoke
// operations on App. Each operation consults the session gate, validates
// its preconditions, mutates the in-memory collections, and mirrors
// every touched collection to the key-value store in a single
// transaction. Precondition failures are *OpError values and mutate
// nothing; only infrastructure faults surface as other errors.
//
// Hydration runs once, inside New, reading the key-value store into the
// entity store. The store is never read back afterwards.
package app
