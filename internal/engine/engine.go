package engine

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/roach88/ritual/internal/metrics"
	"github.com/roach88/ritual/internal/model"
	"github.com/roach88/ritual/internal/store"
)

// Engine holds the two routines and the streak ledger for one user.
//
// Thread-safety model:
//   - mutations and reads: one caller at a time (the UI or CLI)
//   - Subscribe/unsubscribe: safe from any goroutine
type Engine struct {
	repo    *store.Repository
	clock   Clock
	ids     IDGenerator
	logger  *zap.Logger
	metrics *metrics.Metrics

	morning model.Routine
	night   model.Routine
	streak  model.StreakData

	subMu       sync.Mutex
	subscribers map[int]func(Snapshot)
	nextSubID   int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source. Default: SystemClock in time.Local.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithLogger sets the logger. Default: no-op.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithMetrics sets the metrics sink. Default: none.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithIDGenerator sets the habit id source. Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(e *Engine) {
		e.ids = g
	}
}

// New creates an Engine seeded with the default records. Call Load to read
// the persisted state.
func New(repo *store.Repository, opts ...Option) *Engine {
	e := &Engine{
		repo:        repo,
		clock:       SystemClock{},
		ids:         UUIDv7Generator{},
		logger:      zap.NewNop(),
		morning:     store.DefaultRoutine(model.Morning),
		night:       store.DefaultRoutine(model.Night),
		streak:      store.DefaultStreakData(),
		subscribers: make(map[int]func(Snapshot)),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Open creates an Engine and loads persisted state.
func Open(ctx context.Context, repo *store.Repository, opts ...Option) (*Engine, error) {
	e := New(repo, opts...)
	if err := e.Load(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// Load replaces in-memory state with the persisted records.
func (e *Engine) Load(ctx context.Context) error {
	morning, err := e.repo.GetRoutine(ctx, model.Morning)
	if err != nil {
		return storeFailure(model.Morning, "load routine", err)
	}
	night, err := e.repo.GetRoutine(ctx, model.Night)
	if err != nil {
		return storeFailure(model.Night, "load routine", err)
	}
	streak, err := e.repo.GetStreakData(ctx)
	if err != nil {
		return storeFailure("", "load streak data", err)
	}

	e.morning, e.night, e.streak = morning, night, streak
	e.metrics.ObserveStreak(streak)
	e.logger.Debug("State loaded",
		zap.Int("morning_habits", len(morning.Habits)),
		zap.Int("night_habits", len(night.Habits)),
		zap.Int("current_streak", streak.CurrentStreak),
	)
	e.notify()
	return nil
}

// Snapshot is a deep copy of the engine state.
type Snapshot struct {
	Morning model.Routine    `json:"morning"`
	Night   model.Routine    `json:"night"`
	Streak  model.StreakData `json:"streak"`
}

// Routine returns the routine of type t.
func (s Snapshot) Routine(t model.RoutineType) model.Routine {
	if t == model.Morning {
		return s.Morning
	}
	return s.Night
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Morning: e.morning.Clone(),
		Night:   e.night.Clone(),
		Streak:  e.streak.Clone(),
	}
}

// Routine returns a copy of the routine of type t.
func (e *Engine) Routine(t model.RoutineType) model.Routine {
	return e.routine(t).Clone()
}

// Streak returns a copy of the streak ledger.
func (e *Engine) Streak() model.StreakData {
	return e.streak.Clone()
}

// Subscribe registers fn to receive a snapshot after every successful
// mutation and Load. The returned function removes the subscription.
func (e *Engine) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	e.subMu.Lock()
	defer e.subMu.Unlock()

	id := e.nextSubID
	e.nextSubID++
	e.subscribers[id] = fn

	return func() {
		e.subMu.Lock()
		defer e.subMu.Unlock()
		delete(e.subscribers, id)
	}
}

func (e *Engine) notify() {
	e.subMu.Lock()
	if len(e.subscribers) == 0 {
		e.subMu.Unlock()
		return
	}
	fns := make([]func(Snapshot), 0, len(e.subscribers))
	for id := 0; id < e.nextSubID; id++ {
		if fn, ok := e.subscribers[id]; ok {
			fns = append(fns, fn)
		}
	}
	e.subMu.Unlock()

	snap := e.Snapshot()
	for _, fn := range fns {
		fn(snap)
	}
}

func (e *Engine) routine(t model.RoutineType) model.Routine {
	if t == model.Morning {
		return e.morning
	}
	return e.night
}

// saveRoutine persists r, then installs it in memory.
func (e *Engine) saveRoutine(ctx context.Context, t model.RoutineType, r model.Routine, op string) error {
	if err := e.repo.SaveRoutine(ctx, t, r); err != nil {
		return storeFailure(t, op, err)
	}
	if t == model.Morning {
		e.morning = r
	} else {
		e.night = r
	}
	return nil
}

// setStreak installs a ledger the repository already persisted.
func (e *Engine) setStreak(data model.StreakData) {
	e.streak = data
	e.metrics.ObserveStreak(data)
}
