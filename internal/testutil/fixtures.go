package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/roach88/ritual/internal/model"
	"github.com/roach88/ritual/internal/store"
)

// NewStore opens a SQLite store in a temp dir, closed on cleanup.
func NewStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "ritual.db"))
	if err != nil {
		t.Fatalf("store.Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// NewRepository returns a repository over a fresh store.
func NewRepository(t *testing.T) (*store.Repository, *store.Store) {
	t.Helper()
	s := NewStore(t)
	return store.NewRepository(s, nil), s
}

// Routine builds an active routine whose habits are named names and have
// ids "h1", "h2", ...
func Routine(target string, names ...string) model.Routine {
	habits := make([]model.Habit, len(names))
	for i, name := range names {
		habits[i] = model.Habit{ID: fmt.Sprintf("h%d", i+1), Name: name}
	}
	return model.Routine{
		Habits:      habits,
		TargetTime:  target,
		BlockedApps: []string{},
		IsActive:    true,
	}
}

// HabitIDs lists the ids of r's habits in order.
func HabitIDs(r model.Routine) []string {
	ids := make([]string, len(r.Habits))
	for i, h := range r.Habits {
		ids[i] = h.ID
	}
	return ids
}
