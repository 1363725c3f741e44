package store

import (
	"slices"

	"github.com/roach88/ritual/internal/model"
)

// Record keys.
const (
	KeyMorningRoutine = "morning_routine"
	KeyNightRoutine   = "night_routine"
	KeyStreakData     = "streak_data"
	KeySettings       = "settings"
	KeyAudioLibrary   = "audio_library"
)

// RecordKeys lists every key the repository reads, in storage order.
var RecordKeys = []string{KeyAudioLibrary, KeyMorningRoutine, KeyNightRoutine, KeySettings, KeyStreakData}

// IsRecordKey reports whether key is one of RecordKeys.
func IsRecordKey(key string) bool {
	return slices.Contains(RecordKeys, key)
}

// RoutineKey maps a routine type to its record key.
func RoutineKey(t model.RoutineType) string {
	if t == model.Morning {
		return KeyMorningRoutine
	}
	return KeyNightRoutine
}

// DefaultRoutine returns a fresh copy of the built-in routine for t.
func DefaultRoutine(t model.RoutineType) model.Routine {
	if t == model.Morning {
		return model.Routine{
			Habits: []model.Habit{
				{ID: "1", Name: "Gratitude Journal"},
				{ID: "2", Name: "Exercise"},
				{ID: "3", Name: "Read 10 Pages"},
			},
			TargetTime: "6:00 AM",
			BlockedApps: []string{
				"com.instagram.android",
				"com.zhiliaoapp.musically", // TikTok
				"com.twitter.android",
				"com.reddit.frontpage",
			},
			IsActive: true,
		}
	}
	return model.Routine{
		Habits: []model.Habit{
			{ID: "1", Name: "Read"},
			{ID: "2", Name: "Pray"},
			{ID: "3", Name: "Journal"},
		},
		TargetTime: "9:30 PM",
		BlockedApps: []string{
			"com.instagram.android",
			"com.zhiliaoapp.musically",
			"com.twitter.android",
		},
		IsActive: true,
	}
}

// DefaultStreakData returns zero counters and an empty history.
func DefaultStreakData() model.StreakData {
	return model.StreakData{CompletionHistory: map[string]model.DayCompletion{}}
}

// DefaultSettings returns the built-in settings record.
func DefaultSettings() model.Settings {
	return model.Settings{
		AlarmVolume:                0.8,
		NotificationAggressiveness: model.AggressivenessMedium,
	}
}

// DefaultAudioLibrary is empty.
func DefaultAudioLibrary() []model.AudioClip {
	return []model.AudioClip{}
}
