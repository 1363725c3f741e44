package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/roach88/ritual/internal/model"
	"github.com/roach88/ritual/internal/schedule"
	"github.com/roach88/ritual/internal/store"
)

// RoutineState is the derived lifecycle state of a routine.
type RoutineState string

const (
	StateInactive RoutineState = "inactive"
	StateActive   RoutineState = "active"
	StateComplete RoutineState = "complete"
)

// State derives the state of t. Completion wins over isActive.
func (e *Engine) State(t model.RoutineType) RoutineState {
	r := e.routine(t)
	switch {
	case r.IsComplete():
		return StateComplete
	case !r.IsActive:
		return StateInactive
	default:
		return StateActive
	}
}

// IsRoutineComplete reports whether every habit of t is done.
func (e *Engine) IsRoutineComplete(t model.RoutineType) bool {
	return e.routine(t).IsComplete()
}

// CurrentTask returns the first incomplete habit of t.
func (e *Engine) CurrentTask(t model.RoutineType) (model.Habit, bool) {
	return e.routine(t).CurrentTask()
}

// Now returns the engine clock's current time.
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}

// ActiveRoutineType returns the routine whose target time is nearest now.
func (e *Engine) ActiveRoutineType() (model.RoutineType, error) {
	t, err := schedule.ActiveRoutineType(e.morning.TargetTime, e.night.TargetTime, e.clock.Now())
	if err != nil {
		return "", &Error{Code: ErrCodeInvalidTimeFormat, Message: "stored target time unreadable", Err: err}
	}
	return t, nil
}

// Countdown returns the text shown before t's target time, e.g. "3h 5m".
func (e *Engine) Countdown(t model.RoutineType) (string, error) {
	text, err := schedule.CountdownText(e.routine(t).TargetTime, e.clock.Now())
	if err != nil {
		return "", &Error{Code: ErrCodeInvalidTimeFormat, Message: "stored target time unreadable", Routine: t, Err: err}
	}
	return text, nil
}

// TodayCompletion returns today's ledger entry from memory.
func (e *Engine) TodayCompletion() model.DayCompletion {
	return e.streak.CompletionHistory[store.TodayKey(e.clock.Now())]
}

// Stats summarises the ledger over the last days days.
func (e *Engine) Stats(days int) store.Summary {
	return store.Summarize(e.streak, e.clock.Now(), days)
}

// LastActiveDay returns the newest day in the streak ledger, or "" when
// the ledger is empty.
func (e *Engine) LastActiveDay() string {
	last := ""
	for day := range e.streak.CompletionHistory {
		if day > last {
			last = day
		}
	}
	return last
}

// Rollover clears the checked habits of both routines when today is later
// than lastDay. It returns today's key, which the caller passes back next
// time. An empty lastDay falls back to LastActiveDay, so a host starting
// cold still resets habits left over from an earlier day; with an empty
// ledger it only records the day. A lastDay after today never rolls.
//
// Nothing inside the engine schedules this. Every CLI session calls it once
// on open and the watch loop calls it on every tick.
func (e *Engine) Rollover(ctx context.Context, lastDay string) (string, bool, error) {
	today := store.TodayKey(e.clock.Now())
	if lastDay == "" {
		lastDay = e.LastActiveDay()
	}
	if lastDay == "" || lastDay >= today {
		return today, false, nil
	}

	rolled := false
	for _, t := range model.RoutineTypes {
		if e.routine(t).CompletedCount() == 0 {
			continue
		}
		if err := e.ResetDailyHabits(ctx, t); err != nil {
			return lastDay, false, err
		}
		rolled = true
	}
	if rolled {
		e.logger.Info("Day rolled over",
			zap.String("from", lastDay),
			zap.String("to", today),
		)
	}
	return today, rolled, nil
}
