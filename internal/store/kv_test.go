package store

import (
	"context"
	"reflect"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGet_MissingKey(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	value, ok, err := s.Get(ctx, "users")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if ok {
		t.Errorf("Get() on missing key reported ok, value=%q", value)
	}
}

func TestSet_ThenGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "theme", `"theme-void"`); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	value, ok, err := s.Get(ctx, "theme")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !ok || value != `"theme-void"` {
		t.Errorf("Get() = (%q, %v), want (%q, true)", value, ok, `"theme-void"`)
	}
}

func TestSet_ReplacesPreviousValue(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "posts", "[]"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := s.Set(ctx, "posts", `[{"id":"p1"}]`); err != nil {
		t.Fatalf("second Set() failed: %v", err)
	}

	value, _, err := s.Get(ctx, "posts")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if value != `[{"id":"p1"}]` {
		t.Errorf("Get() = %q after overwrite", value)
	}
}

func TestSetMany_WritesAllEntries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	entries := map[string]string{
		"users":    `{}`,
		"posts":    `[]`,
		"comments": `[]`,
	}
	if err := s.SetMany(ctx, entries); err != nil {
		t.Fatalf("SetMany() failed: %v", err)
	}

	for key, want := range entries {
		value, ok, err := s.Get(ctx, key)
		if err != nil {
			t.Fatalf("Get(%q) failed: %v", key, err)
		}
		if !ok || value != want {
			t.Errorf("Get(%q) = (%q, %v), want (%q, true)", key, value, ok, want)
		}
	}
}

func TestSetMany_EmptyIsNoop(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetMany(context.Background(), nil); err != nil {
		t.Fatalf("SetMany(nil) failed: %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "currentUser", `{"id":"u1"}`); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := s.Delete(ctx, "currentUser"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	_, ok, err := s.Get(ctx, "currentUser")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if ok {
		t.Error("key still present after Delete()")
	}

	// Deleting an absent key is fine.
	if err := s.Delete(ctx, "currentUser"); err != nil {
		t.Fatalf("Delete() of absent key failed: %v", err)
	}
}

func TestClear_RemovesEverything(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SetMany(ctx, map[string]string{"users": "{}", "posts": "[]"}); err != nil {
		t.Fatalf("SetMany() failed: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}

	keys, err := s.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys() failed: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("Keys() = %v after Clear(), want empty", keys)
	}
}

func TestKeys_Sorted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, key := range []string{"theme", "users", "posts"} {
		if err := s.Set(ctx, key, "x"); err != nil {
			t.Fatalf("Set(%q) failed: %v", key, err)
		}
	}

	keys, err := s.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys() failed: %v", err)
	}
	want := []string{"posts", "theme", "users"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("Keys() = %v, want %v", keys, want)
	}
}
