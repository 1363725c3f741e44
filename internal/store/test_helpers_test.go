package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/ritual/internal/model"
)

// createTestStore opens a fresh SQLite store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRepository returns a repository over a fresh store.
func createTestRepository(t *testing.T) (*Repository, *Store) {
	t.Helper()
	s := createTestStore(t)
	return NewRepository(s, nil), s
}

// day returns a fixed local instant on the given date.
func day(year int, month time.Month, d, hour, minute int) time.Time {
	return time.Date(year, month, d, hour, minute, 0, 0, time.Local)
}

// failingKV fails every call.
type failingKV struct{}

var errBackend = errors.New("backend down")

func (failingKV) GetString(context.Context, string) (string, bool, error) {
	return "", false, errBackend
}

func (failingKV) SetString(context.Context, string, string) error {
	return errBackend
}

// sampleRoutine is a non-default routine for round-trip tests.
func sampleRoutine() model.Routine {
	return model.Routine{
		Habits: []model.Habit{
			{ID: "a", Name: "Stretch", Icon: "body", Completed: true},
			{ID: "b", Name: "Cold shower", Description: "2 minutes", Duration: 2},
		},
		TargetTime:      "7:15 AM",
		BlockedApps:     []string{"com.reddit.frontpage"},
		IsActive:        false,
		SelectedAudioID: "ocean-waves",
	}
}
