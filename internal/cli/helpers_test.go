package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/ritual/internal/engine"
	"github.com/roach88/ritual/internal/testutil"
)

// cliEnv runs commands against one database with a frozen clock.
type cliEnv struct {
	opts   *RootOptions
	clock  *testutil.FixedClock
	db     string
	config string
}

// newCLIEnv starts at 2026-03-01 05:50 UTC with an empty database, so the
// built-in routines are in effect.
func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	clock := testutil.NewFixedClock(time.Date(2026, 3, 1, 5, 50, 0, 0, time.UTC))
	return &cliEnv{
		opts: &RootOptions{
			Clock: clock,
			IDs:   engine.NewFixedGenerator("new-1", "new-2", "new-3"),
		},
		clock:  clock,
		db:     filepath.Join(dir, "ritual.db"),
		config: filepath.Join(dir, "config.yaml"),
	}
}

// run executes the root command with args and returns stdout.
func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := newRootCommand(e.opts)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(append([]string{"--db", e.db, "--config", e.config}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// mustRun is run that fails the test on error.
func (e *cliEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, "ritual %v", args)
	return out
}

// runJSON executes args with --format json and decodes the data payload
// into v.
func (e *cliEnv) runJSON(t *testing.T, v any, args ...string) {
	t.Helper()
	out := e.mustRun(t, append([]string{"--format", "json"}, args...)...)

	var resp struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	require.Equal(t, "ok", resp.Status)
	require.NoError(t, json.Unmarshal(resp.Data, v))
}
