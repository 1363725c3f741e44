package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/roach88/ritual/internal/model"
)

// DayKeyLayout formats ledger keys.
const DayKeyLayout = "2006-01-02"

// TodayKey returns the calendar date of now, in now's location.
func TodayKey(now time.Time) string {
	return now.Format(DayKeyLayout)
}

// TodayCompletion returns today's ledger entry, or a zero entry when none
// has been written yet. The ledger is not modified.
func (r *Repository) TodayCompletion(ctx context.Context, now time.Time) (model.DayCompletion, error) {
	data, err := r.GetStreakData(ctx)
	if err != nil {
		return model.DayCompletion{}, err
	}
	return data.CompletionHistory[TodayKey(now)], nil
}

// MarkRoutineComplete sets today's flag for t and applies the streak
// transition, then persists the whole ledger.
//
// currentStreak grows by one only on the call that turns today from
// "not both done" into "both done". Marking an already-set flag again
// rewrites the ledger without touching the counters.
func (r *Repository) MarkRoutineComplete(ctx context.Context, t model.RoutineType, now time.Time) (model.StreakData, error) {
	data, err := r.GetStreakData(ctx)
	if err != nil {
		return model.StreakData{}, fmt.Errorf("mark %s complete: %w", t, err)
	}

	key := TodayKey(now)
	day := data.CompletionHistory[key]
	wasFull := day.Full()
	if t == model.Morning {
		day.Morning = true
	} else {
		day.Night = true
	}
	data.CompletionHistory[key] = day

	if day.Full() && !wasFull {
		data.CurrentStreak++
		if data.CurrentStreak > data.LongestStreak {
			data.LongestStreak = data.CurrentStreak
		}
		r.logger.Info("Streak extended",
			zap.String("day", key),
			zap.Int("current_streak", data.CurrentStreak),
			zap.Int("longest_streak", data.LongestStreak),
		)
	}

	if err := r.SaveStreakData(ctx, data); err != nil {
		return model.StreakData{}, fmt.Errorf("mark %s complete: %w", t, err)
	}
	return data, nil
}

// MarkRoutineStarted records stamp as today's start time for t. An
// existing stamp is kept. It reports whether the ledger changed.
func (r *Repository) MarkRoutineStarted(ctx context.Context, t model.RoutineType, now time.Time, stamp string) (model.StreakData, bool, error) {
	data, err := r.GetStreakData(ctx)
	if err != nil {
		return model.StreakData{}, false, fmt.Errorf("mark %s started: %w", t, err)
	}

	key := TodayKey(now)
	day := data.CompletionHistory[key]
	if day.StartTime(t) != "" {
		return data, false, nil
	}
	if t == model.Morning {
		day.MorningStartTime = stamp
	} else {
		day.NightStartTime = stamp
	}
	data.CompletionHistory[key] = day

	if err := r.SaveStreakData(ctx, data); err != nil {
		return model.StreakData{}, false, fmt.Errorf("mark %s started: %w", t, err)
	}
	return data, true, nil
}

// RecordViolation increments today's violation counter and persists.
func (r *Repository) RecordViolation(ctx context.Context, now time.Time) (model.StreakData, error) {
	data, err := r.GetStreakData(ctx)
	if err != nil {
		return model.StreakData{}, fmt.Errorf("record violation: %w", err)
	}

	key := TodayKey(now)
	day := data.CompletionHistory[key]
	day.Violations++
	data.CompletionHistory[key] = day

	if err := r.SaveStreakData(ctx, data); err != nil {
		return model.StreakData{}, fmt.Errorf("record violation: %w", err)
	}
	return data, nil
}
