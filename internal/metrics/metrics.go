// Package metrics exposes routine and streak counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/roach88/ritual/internal/model"
)

// Metrics holds every collector ritual publishes. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	HabitToggles       *prometheus.CounterVec
	RoutineCompletions *prometheus.CounterVec
	StreakIncrements   prometheus.Counter
	Violations         prometheus.Counter
	CurrentStreak      prometheus.Gauge
	LongestStreak      prometheus.Gauge
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HabitToggles: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ritual_habit_toggles_total",
				Help: "Habit completion flag flips",
			},
			[]string{"routine", "state"}, // state: completed, reopened
		),
		RoutineCompletions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ritual_routine_completions_total",
				Help: "Times a routine was marked complete for the day",
			},
			[]string{"routine"},
		),
		StreakIncrements: f.NewCounter(prometheus.CounterOpts{
			Name: "ritual_streak_increments_total",
			Help: "Days on which both routines were completed",
		}),
		Violations: f.NewCounter(prometheus.CounterOpts{
			Name: "ritual_violations_total",
			Help: "Recorded blocked-app violations",
		}),
		CurrentStreak: f.NewGauge(prometheus.GaugeOpts{
			Name: "ritual_current_streak_days",
			Help: "Current streak length",
		}),
		LongestStreak: f.NewGauge(prometheus.GaugeOpts{
			Name: "ritual_longest_streak_days",
			Help: "Longest streak length",
		}),
	}
}

// HabitToggled counts one flip.
func (m *Metrics) HabitToggled(t model.RoutineType, completed bool) {
	if m == nil {
		return
	}
	state := "reopened"
	if completed {
		state = "completed"
	}
	m.HabitToggles.WithLabelValues(string(t), state).Inc()
}

// RoutineCompleted counts a completion and, when the streak grew, the
// increment.
func (m *Metrics) RoutineCompleted(t model.RoutineType, streakGrew bool) {
	if m == nil {
		return
	}
	m.RoutineCompletions.WithLabelValues(string(t)).Inc()
	if streakGrew {
		m.StreakIncrements.Inc()
	}
}

// ViolationRecorded counts one violation.
func (m *Metrics) ViolationRecorded() {
	if m == nil {
		return
	}
	m.Violations.Inc()
}

// ObserveStreak sets the streak gauges.
func (m *Metrics) ObserveStreak(data model.StreakData) {
	if m == nil {
		return
	}
	m.CurrentStreak.Set(float64(data.CurrentStreak))
	m.LongestStreak.Set(float64(data.LongestStreak))
}
