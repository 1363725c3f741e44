package engine

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/ritual/internal/model"
	"github.com/roach88/ritual/internal/schedule"
	"github.com/roach88/ritual/internal/store"
)

// NewHabit describes a habit to append.
type NewHabit struct {
	Name        string
	Description string
	Icon        string
	Duration    int // minutes, 0 when unknown
}

// RoutinePatch lists the fields UpdateRoutine merges. Nil fields are left
// unchanged.
type RoutinePatch struct {
	TargetTime      *string
	IsActive        *bool
	SelectedAudioID *string
	BlockedApps     []string
	Habits          []model.Habit
}

// ToggleHabit flips the completed flag of habitID. An unknown id changes
// nothing but is still persisted, and never runs the completion check.
//
// When the routine is complete afterwards, MarkRoutineComplete fires. This
// happens on every such toggle, so un-completing and re-completing a habit
// fires it again.
func (e *Engine) ToggleHabit(ctx context.Context, t model.RoutineType, habitID string) error {
	r := e.routine(t).Clone()

	found, completed := false, false
	for i := range r.Habits {
		if r.Habits[i].ID == habitID {
			r.Habits[i].Completed = !r.Habits[i].Completed
			found, completed = true, r.Habits[i].Completed
		}
	}

	if err := e.saveRoutine(ctx, t, r, "toggle habit"); err != nil {
		return err
	}

	if !found {
		e.logger.Debug("Toggle ignored: unknown habit",
			zap.String("routine", string(t)),
			zap.String("habit_id", habitID),
		)
		e.notify()
		return nil
	}

	e.metrics.HabitToggled(t, completed)
	e.logger.Debug("Habit toggled",
		zap.String("routine", string(t)),
		zap.String("habit_id", habitID),
		zap.Bool("completed", completed),
	)

	if completed {
		if err := e.stampStart(ctx, t); err != nil {
			return err
		}
	}

	if r.IsComplete() {
		if err := e.markComplete(ctx, t); err != nil {
			return err
		}
	}

	e.notify()
	return nil
}

// stampStart records when work on t began today, once per day.
func (e *Engine) stampStart(ctx context.Context, t model.RoutineType) error {
	now := e.clock.Now()
	if e.streak.CompletionHistory[store.TodayKey(now)].StartTime(t) != "" {
		return nil
	}

	stamp := schedule.FormatTargetTime(now.Hour(), now.Minute())
	data, changed, err := e.repo.MarkRoutineStarted(ctx, t, now, stamp)
	if err != nil {
		return storeFailure(t, "record start time", err)
	}
	if changed {
		e.setStreak(data)
	}
	return nil
}

// AddHabit appends a new, incomplete habit with a fresh id. The name is
// trimmed and NFC-normalised; an empty name is rejected.
//
// Adding to a complete routine makes it incomplete again.
func (e *Engine) AddHabit(ctx context.Context, t model.RoutineType, h NewHabit) (model.Habit, error) {
	name := norm.NFC.String(strings.TrimSpace(h.Name))
	if name == "" {
		return model.Habit{}, &Error{Code: ErrCodeInvalidHabit, Message: "habit name is empty", Routine: t}
	}

	habit := model.Habit{
		ID:          e.ids.Generate(),
		Name:        name,
		Description: strings.TrimSpace(h.Description),
		Icon:        h.Icon,
		Duration:    h.Duration,
	}

	r := e.routine(t).Clone()
	r.Habits = append(r.Habits, habit)
	if err := e.saveRoutine(ctx, t, r, "add habit"); err != nil {
		return model.Habit{}, err
	}

	e.logger.Debug("Habit added",
		zap.String("routine", string(t)),
		zap.String("habit_id", habit.ID),
		zap.String("name", habit.Name),
	)
	e.notify()
	return habit, nil
}

// RemoveHabit removes habitID. It does not run the completion check, even
// if the remaining habits are all done.
func (e *Engine) RemoveHabit(ctx context.Context, t model.RoutineType, habitID string) error {
	cur := e.routine(t)
	r := cur.Clone()
	r.Habits = make([]model.Habit, 0, len(cur.Habits))
	for _, h := range cur.Habits {
		if h.ID != habitID {
			r.Habits = append(r.Habits, h)
		}
	}

	if err := e.saveRoutine(ctx, t, r, "remove habit"); err != nil {
		return err
	}

	e.logger.Debug("Habit removed",
		zap.String("routine", string(t)),
		zap.String("habit_id", habitID),
		zap.Bool("found", len(r.Habits) < len(cur.Habits)),
	)
	e.notify()
	return nil
}

// ReorderHabits replaces the habit sequence with habits. The caller is
// trusted to pass a permutation of the current habits.
func (e *Engine) ReorderHabits(ctx context.Context, t model.RoutineType, habits []model.Habit) error {
	r := e.routine(t).Clone()
	r.Habits = make([]model.Habit, len(habits))
	copy(r.Habits, habits)

	if err := e.saveRoutine(ctx, t, r, "reorder habits"); err != nil {
		return err
	}
	e.notify()
	return nil
}

// SelectAudio stores the audio clip id for t. Playback is not started.
func (e *Engine) SelectAudio(ctx context.Context, t model.RoutineType, audioID string) error {
	return e.UpdateRoutine(ctx, t, RoutinePatch{SelectedAudioID: &audioID})
}

// ToggleActive flips isActive.
func (e *Engine) ToggleActive(ctx context.Context, t model.RoutineType) error {
	active := !e.routine(t).IsActive
	return e.UpdateRoutine(ctx, t, RoutinePatch{IsActive: &active})
}

// UpdateRoutine merges p into the routine and persists it. A malformed
// TargetTime is rejected before anything is written.
func (e *Engine) UpdateRoutine(ctx context.Context, t model.RoutineType, p RoutinePatch) error {
	if p.TargetTime != nil {
		if err := schedule.ValidateTargetTime(*p.TargetTime); err != nil {
			return &Error{Code: ErrCodeInvalidTimeFormat, Message: "target time rejected", Routine: t, Err: err}
		}
	}

	r := e.routine(t).Clone()
	if p.TargetTime != nil {
		r.TargetTime = *p.TargetTime
	}
	if p.IsActive != nil {
		r.IsActive = *p.IsActive
	}
	if p.SelectedAudioID != nil {
		r.SelectedAudioID = *p.SelectedAudioID
	}
	if p.BlockedApps != nil {
		r.BlockedApps = make([]string, len(p.BlockedApps))
		copy(r.BlockedApps, p.BlockedApps)
	}
	if p.Habits != nil {
		r.Habits = make([]model.Habit, len(p.Habits))
		copy(r.Habits, p.Habits)
	}

	if err := e.saveRoutine(ctx, t, r, "update routine"); err != nil {
		return err
	}

	e.logger.Debug("Routine updated",
		zap.String("routine", string(t)),
		zap.String("target_time", r.TargetTime),
		zap.Bool("active", r.IsActive),
	)
	e.notify()
	return nil
}

// MarkRoutineComplete records t as done today and applies the streak rule.
func (e *Engine) MarkRoutineComplete(ctx context.Context, t model.RoutineType) error {
	if err := e.markComplete(ctx, t); err != nil {
		return err
	}
	e.notify()
	return nil
}

func (e *Engine) markComplete(ctx context.Context, t model.RoutineType) error {
	before := e.streak.CurrentStreak
	data, err := e.repo.MarkRoutineComplete(ctx, t, e.clock.Now())
	if err != nil {
		return storeFailure(t, "mark routine complete", err)
	}
	e.setStreak(data)

	grew := data.CurrentStreak > before
	e.metrics.RoutineCompleted(t, grew)
	e.logger.Info("Routine completed",
		zap.String("routine", string(t)),
		zap.Int("current_streak", data.CurrentStreak),
		zap.Bool("streak_extended", grew),
	)
	return nil
}

// RecordViolation increments today's violation counter.
func (e *Engine) RecordViolation(ctx context.Context) error {
	data, err := e.repo.RecordViolation(ctx, e.clock.Now())
	if err != nil {
		return storeFailure("", "record violation", err)
	}
	e.setStreak(data)
	e.metrics.ViolationRecorded()
	e.logger.Info("Violation recorded")
	e.notify()
	return nil
}

// ResetDailyHabits clears every habit's completed flag. The streak ledger
// is not touched.
func (e *Engine) ResetDailyHabits(ctx context.Context, t model.RoutineType) error {
	r := e.routine(t).Clone()
	for i := range r.Habits {
		r.Habits[i].Completed = false
	}

	if err := e.saveRoutine(ctx, t, r, "reset habits"); err != nil {
		return err
	}
	e.logger.Debug("Habits reset", zap.String("routine", string(t)))
	e.notify()
	return nil
}
