package model

import "fmt"

// RoutineType tags one of the two daily routines.
type RoutineType string

const (
	Morning RoutineType = "morning"
	Night   RoutineType = "night"
)

// RoutineTypes lists both routines in display order.
var RoutineTypes = []RoutineType{Morning, Night}

// ParseRoutineType accepts "morning" or "night".
func ParseRoutineType(s string) (RoutineType, error) {
	switch RoutineType(s) {
	case Morning, Night:
		return RoutineType(s), nil
	}
	return "", fmt.Errorf("unknown routine type %q: must be morning or night", s)
}

// Other returns the opposite routine.
func (t RoutineType) Other() RoutineType {
	if t == Morning {
		return Night
	}
	return Morning
}

// Habit is a single checklist item. Identity is ID, unique within its routine.
type Habit struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Duration    int    `json:"duration,omitempty"` // estimated minutes
	Completed   bool   `json:"completed"`
}

// Routine is a daily checklist anchored to a target time such as "6:00 AM".
type Routine struct {
	Habits          []Habit  `json:"habits"`
	TargetTime      string   `json:"targetTime"`
	BlockedApps     []string `json:"blockedApps"` // stored only, never enforced
	IsActive        bool     `json:"isActive"`
	SelectedAudioID string   `json:"selectedAudioId,omitempty"`
}

// IsComplete reports whether the routine has habits and all are completed.
func (r Routine) IsComplete() bool {
	if len(r.Habits) == 0 {
		return false
	}
	for _, h := range r.Habits {
		if !h.Completed {
			return false
		}
	}
	return true
}

// CurrentTask returns the first incomplete habit in sequence order.
func (r Routine) CurrentTask() (Habit, bool) {
	for _, h := range r.Habits {
		if !h.Completed {
			return h, true
		}
	}
	return Habit{}, false
}

// CompletedCount returns how many habits are done.
func (r Routine) CompletedCount() int {
	n := 0
	for _, h := range r.Habits {
		if h.Completed {
			n++
		}
	}
	return n
}

// Clone returns a deep copy. Nil slices come back as empty slices so the
// JSON form is always an array.
func (r Routine) Clone() Routine {
	out := r
	out.Habits = make([]Habit, len(r.Habits))
	copy(out.Habits, r.Habits)
	out.BlockedApps = make([]string, len(r.BlockedApps))
	copy(out.BlockedApps, r.BlockedApps)
	return out
}

// DayCompletion is the ledger entry for one calendar day.
type DayCompletion struct {
	Morning          bool   `json:"morning"`
	Night            bool   `json:"night"`
	Violations       int    `json:"violations"`
	MorningStartTime string `json:"morningStartTime,omitempty"`
	NightStartTime   string `json:"nightStartTime,omitempty"`
}

// Done reports the flag for one routine.
func (d DayCompletion) Done(t RoutineType) bool {
	if t == Morning {
		return d.Morning
	}
	return d.Night
}

// Full reports whether both routines were completed that day.
func (d DayCompletion) Full() bool {
	return d.Morning && d.Night
}

// StartTime returns the recorded start stamp for one routine.
func (d DayCompletion) StartTime(t RoutineType) string {
	if t == Morning {
		return d.MorningStartTime
	}
	return d.NightStartTime
}

// StreakData is the streak counters plus the per-day ledger keyed by
// YYYY-MM-DD.
type StreakData struct {
	CurrentStreak     int                      `json:"currentStreak"`
	LongestStreak     int                      `json:"longestStreak"`
	CompletionHistory map[string]DayCompletion `json:"completionHistory"`
}

// Clone returns a deep copy with a non-nil history map.
func (s StreakData) Clone() StreakData {
	out := s
	out.CompletionHistory = make(map[string]DayCompletion, len(s.CompletionHistory))
	for k, v := range s.CompletionHistory {
		out.CompletionHistory[k] = v
	}
	return out
}

// Aggressiveness levels for notifications.
const (
	AggressivenessLow    = "low"
	AggressivenessMedium = "medium"
	AggressivenessHigh   = "high"
)

// Settings is the process-wide configuration record. The routine engine
// never mutates it.
type Settings struct {
	AlarmVolume                float64 `json:"alarmVolume"`
	NotificationAggressiveness string  `json:"notificationAggressiveness"`
	SelectedMorningAudio       *string `json:"selectedMorningAudio"`
	SelectedNightAudio         *string `json:"selectedNightAudio"`
	HasCompletedOnboarding     bool    `json:"hasCompletedOnboarding"`
}

// AudioClip is an entry of the persisted audio library.
type AudioClip struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Artist    string `json:"artist,omitempty"`
	LocalPath string `json:"localPath,omitempty"`
	RemoteURL string `json:"remoteUrl,omitempty"`
	Duration  int    `json:"duration"` // seconds
	IsPremium bool   `json:"isPremium"`
}
