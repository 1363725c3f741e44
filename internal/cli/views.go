package cli

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/ritual/internal/audio"
	"github.com/roach88/ritual/internal/engine"
	"github.com/roach88/ritual/internal/library"
	"github.com/roach88/ritual/internal/model"
	"github.com/roach88/ritual/internal/schedule"
	"github.com/roach88/ritual/internal/store"
)

// View types are what commands print. JSON output encodes them as they are;
// text output goes through their String methods.

// RoutineView is one routine with its derived state.
type RoutineView struct {
	Type            model.RoutineType    `json:"type"`
	TargetTime      string               `json:"targetTime"`
	State           engine.RoutineState  `json:"state"`
	Countdown       string               `json:"countdown"`
	Completed       int                  `json:"completed"`
	Total           int                  `json:"total"`
	CurrentTask     *model.Habit         `json:"currentTask,omitempty"`
	Habits          []model.Habit        `json:"habits"`
	Styles          []library.HabitStyle `json:"styles"`
	IsActive        bool                 `json:"isActive"`
	SelectedAudioID string               `json:"selectedAudioId,omitempty"`
	BlockedApps     []string             `json:"blockedApps"`
	StartedAt       string               `json:"startedAt,omitempty"`
}

func routineView(e *engine.Engine, t model.RoutineType) (RoutineView, error) {
	r := e.Routine(t)
	countdown, err := e.Countdown(t)
	if err != nil {
		return RoutineView{}, wrapEngineError(fmt.Sprintf("%s routine", t), err)
	}

	v := RoutineView{
		Type:            t,
		TargetTime:      r.TargetTime,
		State:           e.State(t),
		Countdown:       countdown,
		Completed:       r.CompletedCount(),
		Total:           len(r.Habits),
		Habits:          r.Habits,
		IsActive:        r.IsActive,
		SelectedAudioID: r.SelectedAudioID,
		BlockedApps:     r.BlockedApps,
		StartedAt:       e.TodayCompletion().StartTime(t),
	}
	v.Styles = make([]library.HabitStyle, 0, len(r.Habits))
	for _, h := range r.Habits {
		v.Styles = append(v.Styles, library.Style(h.Name, h.Icon))
	}
	if h, ok := r.CurrentTask(); ok {
		v.CurrentTask = &h
	}
	return v, nil
}

func (v RoutineView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s  %d/%d  in %s\n",
		cases.Title(language.English).String(string(v.Type)), v.TargetTime, v.State, v.Completed, v.Total, v.Countdown)
	for _, h := range v.Habits {
		mark := " "
		if h.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "  [%s] %s (%s)", mark, h.Name, h.ID)
		if v.CurrentTask != nil && v.CurrentTask.ID == h.ID {
			b.WriteString("  <- next")
		}
		b.WriteByte('\n')
	}
	if len(v.Habits) == 0 {
		b.WriteString("  (no habits)\n")
	}
	if v.StartedAt != "" {
		fmt.Fprintf(&b, "  started %s\n", v.StartedAt)
	}
	if v.SelectedAudioID != "" {
		fmt.Fprintf(&b, "  alarm %s\n", v.SelectedAudioID)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// StreakView is the streak counters with today's ledger entry.
type StreakView struct {
	Day     string              `json:"day"`
	Current int                 `json:"currentStreak"`
	Longest int                 `json:"longestStreak"`
	Today   model.DayCompletion `json:"today"`
}

func streakView(e *engine.Engine) StreakView {
	s := e.Streak()
	return StreakView{
		Day:     store.TodayKey(e.Now()),
		Current: s.CurrentStreak,
		Longest: s.LongestStreak,
		Today:   e.TodayCompletion(),
	}
}

func doneWord(done bool) string {
	if done {
		return "done"
	}
	return "open"
}

func (v StreakView) String() string {
	return fmt.Sprintf("Streak: %d days (best %d)\nToday %s: morning %s, night %s, %d violations",
		v.Current, v.Longest, v.Day,
		doneWord(v.Today.Morning), doneWord(v.Today.Night), v.Today.Violations)
}

// StatusView is the dashboard: both routines, which one is due, and the
// streak.
type StatusView struct {
	Now      string            `json:"now"`
	Active   model.RoutineType `json:"activeRoutine"`
	Streak   StreakView        `json:"streak"`
	Routines []RoutineView     `json:"routines"`
}

func statusView(e *engine.Engine, only []model.RoutineType) (StatusView, error) {
	active, err := e.ActiveRoutineType()
	if err != nil {
		return StatusView{}, wrapEngineError("active routine", err)
	}
	now := e.Now()
	v := StatusView{
		Now:    schedule.FormatTargetTime(now.Hour(), now.Minute()),
		Active: active,
		Streak: streakView(e),
	}
	for _, t := range only {
		rv, err := routineView(e, t)
		if err != nil {
			return StatusView{}, err
		}
		v.Routines = append(v.Routines, rv)
	}
	return v, nil
}

func (v StatusView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s routine is up\n", v.Now, v.Active)
	b.WriteString(v.Streak.String())
	for _, r := range v.Routines {
		b.WriteString("\n\n")
		b.WriteString(r.String())
	}
	return b.String()
}

// StatsView wraps the ledger summary.
type StatsView struct {
	store.Summary
}

func (v StatsView) String() string {
	return fmt.Sprintf(`%s .. %s (%d days)
Full days:    %d (%.0f%%)
Morning only: %d
Night only:   %d
Violations:   %d
Streak:       %d (best %d)`,
		v.From, v.To, v.Days,
		v.FullDays, v.CompletionRate*100,
		v.MorningOnly, v.NightOnly, v.Violations,
		v.CurrentStreak, v.LongestStreak)
}

// SettingsView wraps the settings record.
type SettingsView struct {
	model.Settings
}

func orNone(s *string) string {
	if s == nil || *s == "" {
		return "none"
	}
	return *s
}

func (v SettingsView) String() string {
	onboarded := "no"
	if v.HasCompletedOnboarding {
		onboarded = "yes"
	}
	return fmt.Sprintf(`Alarm volume:    %.2f
Aggressiveness:  %s
Morning audio:   %s
Night audio:     %s
Onboarding done: %s`,
		v.AlarmVolume, v.NotificationAggressiveness,
		orNone(v.SelectedMorningAudio), orNone(v.SelectedNightAudio), onboarded)
}

// AudioListView is the merged clip catalogue with each routine's selection.
type AudioListView struct {
	Clips   []audio.Entry `json:"clips"`
	Morning string        `json:"morning,omitempty"`
	Night   string        `json:"night,omitempty"`
}

func (v AudioListView) String() string {
	var b strings.Builder
	for i, c := range v.Clips {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-16s %-16s %s", c.ID, c.Name, time.Duration(c.Seconds)*time.Second)
		var tags []string
		if !c.Bundled {
			tags = append(tags, "library")
		}
		if c.Premium {
			tags = append(tags, "premium")
		}
		if c.ID == v.Morning {
			tags = append(tags, "morning")
		}
		if c.ID == v.Night {
			tags = append(tags, "night")
		}
		if len(tags) > 0 {
			fmt.Fprintf(&b, "  [%s]", strings.Join(tags, ", "))
		}
	}
	return b.String()
}

// PreviewView reports a preview request.
type PreviewView struct {
	Clip    audio.Entry `json:"clip"`
	Playing bool        `json:"playing"`
}

func (v PreviewView) String() string {
	if !v.Playing {
		return fmt.Sprintf("%s has no bundled source to preview", v.Clip.Name)
	}
	return fmt.Sprintf("Previewing %s (%s)", v.Clip.Name, time.Duration(v.Clip.Seconds)*time.Second)
}

// LibraryEntry is a predefined habit and whether a routine already has it.
type LibraryEntry struct {
	library.Predefined
	Added bool `json:"added"`
}

// LibraryView lists predefined habits for one routine.
type LibraryView struct {
	Routine model.RoutineType `json:"routine"`
	Habits  []LibraryEntry    `json:"habits"`
}

func (v LibraryView) String() string {
	var b strings.Builder
	for i, h := range v.Habits {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-12s %s", h.Name, h.Icon)
		if h.Added {
			fmt.Fprintf(&b, "  (in %s)", v.Routine)
		}
	}
	return b.String()
}
