package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ritual/internal/metrics"
	"github.com/roach88/ritual/internal/model"
	"github.com/roach88/ritual/internal/store"
	"github.com/roach88/ritual/internal/testutil"
)

// fixture bundles an engine with the collaborators tests inspect.
type fixture struct {
	engine  *Engine
	repo    *store.Repository
	kv      *flakyKV
	clock   *testutil.FixedClock
	metrics *metrics.Metrics
}

// flakyKV forwards to a real store until fail is set.
type flakyKV struct {
	store.KV
	fail bool
}

var errDiskFull = errors.New("disk full")

func (f *flakyKV) GetString(ctx context.Context, key string) (string, bool, error) {
	if f.fail {
		return "", false, errDiskFull
	}
	return f.KV.GetString(ctx, key)
}

func (f *flakyKV) SetString(ctx context.Context, key, value string) error {
	if f.fail {
		return errDiskFull
	}
	return f.KV.SetString(ctx, key, value)
}

// newFixture opens an engine at 2026-03-01 06:00 local, with morning and
// night routines of two habits each.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	kv := &flakyKV{KV: testutil.NewStore(t)}
	repo := store.NewRepository(kv, nil)
	require.NoError(t, repo.SaveRoutine(ctx, model.Morning, testutil.Routine("6:00 AM", "Stretch", "Journal")))
	require.NoError(t, repo.SaveRoutine(ctx, model.Night, testutil.Routine("9:30 PM", "Read", "Pray")))

	clock := testutil.At(2026, 3, 1, 6, 0)
	m := metrics.New(prometheus.NewRegistry())
	e, err := Open(ctx, repo,
		WithClock(clock),
		WithMetrics(m),
		WithIDGenerator(NewFixedGenerator("new-1", "new-2", "new-3")),
	)
	require.NoError(t, err)

	return &fixture{engine: e, repo: repo, kv: kv, clock: clock, metrics: m}
}

// completeAll toggles every open habit of t.
func (f *fixture) completeAll(t *testing.T, rt model.RoutineType) {
	t.Helper()
	for _, h := range f.engine.Routine(rt).Habits {
		if !h.Completed {
			require.NoError(t, f.engine.ToggleHabit(context.Background(), rt, h.ID))
		}
	}
}

// persisted reads the routine back from storage.
func (f *fixture) persisted(t *testing.T, rt model.RoutineType) model.Routine {
	t.Helper()
	r, err := f.repo.GetRoutine(context.Background(), rt)
	require.NoError(t, err)
	return r
}
