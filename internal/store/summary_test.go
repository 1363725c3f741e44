package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/ritual/internal/model"
)

func TestSummarize(t *testing.T) {
	data := model.StreakData{
		CurrentStreak: 2,
		LongestStreak: 4,
		CompletionHistory: map[string]model.DayCompletion{
			"2026-03-07": {Morning: true, Night: true},
			"2026-03-06": {Morning: true, Night: true, Violations: 1},
			"2026-03-05": {Morning: true, Violations: 2},
			"2026-03-03": {Night: true},
			"2026-02-01": {Morning: true, Night: true, Violations: 9}, // outside window
		},
	}

	s := Summarize(data, day(2026, 3, 7, 20, 0), 7)

	assert.Equal(t, "2026-03-01", s.From)
	assert.Equal(t, "2026-03-07", s.To)
	assert.Equal(t, 7, s.Days)
	assert.Equal(t, 4, s.DaysTracked)
	assert.Equal(t, 2, s.FullDays)
	assert.Equal(t, 1, s.MorningOnly)
	assert.Equal(t, 1, s.NightOnly)
	assert.Equal(t, 3, s.Violations)
	assert.InDelta(t, 2.0/7.0, s.CompletionRate, 1e-9)
	assert.Equal(t, 2, s.CurrentStreak)
	assert.Equal(t, 4, s.LongestStreak)
}

func TestSummarize_MinimumOneDay(t *testing.T) {
	s := Summarize(DefaultStreakData(), day(2026, 3, 7, 20, 0), 0)
	assert.Equal(t, 1, s.Days)
	assert.Equal(t, "2026-03-07", s.From)
	assert.Equal(t, 0.0, s.CompletionRate)
}
