package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ritual/internal/engine"
	"github.com/roach88/ritual/internal/model"
)

func TestStatus_JSON(t *testing.T) {
	env := newCLIEnv(t)

	var v StatusView
	env.runJSON(t, &v, "status")

	assert.Equal(t, "5:50 AM", v.Now)
	assert.Equal(t, model.Morning, v.Active)
	require.Len(t, v.Routines, 2)
	assert.Equal(t, "10m", v.Routines[0].Countdown)
	assert.Equal(t, "15h 40m", v.Routines[1].Countdown)
	assert.Equal(t, engine.StateActive, v.Routines[0].State)
	require.NotNil(t, v.Routines[0].CurrentTask)
	assert.Equal(t, "Gratitude Journal", v.Routines[0].CurrentTask.Name)
}

func TestStatus_SingleRoutine(t *testing.T) {
	env := newCLIEnv(t)

	var v StatusView
	env.runJSON(t, &v, "status", "night")
	require.Len(t, v.Routines, 1)
	assert.Equal(t, model.Night, v.Routines[0].Type)
}

func TestToggle_CompletingBothRoutinesExtendsStreak(t *testing.T) {
	env := newCLIEnv(t)

	for _, id := range []string{"1", "2", "3"} {
		env.mustRun(t, "toggle", "morning", id)
	}
	var streak StreakView
	env.runJSON(t, &streak, "streak")
	assert.True(t, streak.Today.Morning)
	assert.Equal(t, "5:50 AM", streak.Today.MorningStartTime)
	assert.Equal(t, 0, streak.Current)

	for _, id := range []string{"1", "2", "3"} {
		env.mustRun(t, "toggle", "night", id)
	}
	env.runJSON(t, &streak, "streak")
	assert.Equal(t, 1, streak.Current)
	assert.Equal(t, 1, streak.Longest)

	// Reopening and finishing a habit again must not count the day twice.
	env.mustRun(t, "toggle", "night", "2")
	env.mustRun(t, "toggle", "night", "2")
	env.runJSON(t, &streak, "streak")
	assert.Equal(t, 1, streak.Current)
}

func TestToggle_Output(t *testing.T) {
	env := newCLIEnv(t)

	var rv RoutineView
	env.runJSON(t, &rv, "toggle", "night", "1")
	assert.Equal(t, 1, rv.Completed)
	assert.Equal(t, 3, rv.Total)
	assert.Equal(t, "2", rv.CurrentTask.ID)
	assert.Equal(t, "5:50 AM", rv.StartedAt)
}

func TestAdd_UsesLibraryIcon(t *testing.T) {
	env := newCLIEnv(t)

	var rv RoutineView
	env.runJSON(t, &rv, "add", "morning", "drink water", "--duration", "2")
	require.Len(t, rv.Habits, 4)
	added := rv.Habits[3]
	assert.Equal(t, "new-1", added.ID)
	assert.Equal(t, "drink water", added.Name)
	assert.Equal(t, "water", added.Icon)
	assert.Equal(t, 2, added.Duration)

	env.runJSON(t, &rv, "add", "morning", "Walk the dog", "--icon", "walk")
	assert.Equal(t, "walk", rv.Habits[4].Icon)

	env.runJSON(t, &rv, "add", "morning", "Floss")
	assert.Empty(t, rv.Habits[5].Icon, "custom habits without --icon store no icon")
	require.Len(t, rv.Styles, 6)
	assert.Equal(t, "add-circle", rv.Styles[5].Icon, "the fallback applies only when rendering")
	assert.Equal(t, "water", rv.Styles[3].Icon)
}

func TestAdd_IconFlagOverridesLibrary(t *testing.T) {
	env := newCLIEnv(t)

	var rv RoutineView
	env.runJSON(t, &rv, "add", "morning", "Read", "--icon", "cafe")
	require.Len(t, rv.Habits, 4)
	assert.Equal(t, "cafe", rv.Habits[3].Icon)

	env.runJSON(t, &rv, "add", "morning", "READ")
	assert.Equal(t, "book", rv.Habits[4].Icon)
}

func TestAddIcon(t *testing.T) {
	assert.Equal(t, "cafe", addIcon("Read", "cafe"))
	assert.Equal(t, "leaf", addIcon("meditate", ""))
	assert.Empty(t, addIcon("Floss", ""))
}

func TestAdd_ReopensCompleteRoutine(t *testing.T) {
	env := newCLIEnv(t)
	for _, id := range []string{"1", "2", "3"} {
		env.mustRun(t, "toggle", "night", id)
	}

	var status StatusView
	env.runJSON(t, &status, "status", "night")
	assert.Equal(t, engine.StateComplete, status.Routines[0].State)

	var rv RoutineView
	env.runJSON(t, &rv, "add", "night", "Stretch")
	assert.Equal(t, engine.StateActive, rv.State)
	assert.Equal(t, "new-1", rv.CurrentTask.ID)
}

func TestRemoveAndReorder(t *testing.T) {
	env := newCLIEnv(t)

	var rv RoutineView
	env.runJSON(t, &rv, "remove", "morning", "2")
	require.Len(t, rv.Habits, 2)
	assert.Equal(t, "1", rv.Habits[0].ID)
	assert.Equal(t, "3", rv.Habits[1].ID)

	env.runJSON(t, &rv, "reorder", "night", "3", "1")
	ids := []string{rv.Habits[0].ID, rv.Habits[1].ID, rv.Habits[2].ID}
	assert.Equal(t, []string{"3", "1", "2"}, ids)

	_, err := env.run(t, "reorder", "night", "9")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = env.run(t, "reorder", "night", "1", "1")
	assert.ErrorContains(t, err, "listed twice")
}

func TestReorderHelper(t *testing.T) {
	habits := []model.Habit{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}

	got, err := reorder(habits, []string{"c", "a"})
	require.NoError(t, err)
	assert.Equal(t, []model.Habit{{ID: "c"}, {ID: "a"}, {ID: "b"}, {ID: "d"}}, got)
	assert.Equal(t, "a", habits[0].ID, "input must not be modified")
}

func TestUpdate(t *testing.T) {
	env := newCLIEnv(t)

	var rv RoutineView
	env.runJSON(t, &rv, "update", "morning", "--time", "5:55 AM", "--blocked-apps", "com.a,com.b")
	assert.Equal(t, "5:55 AM", rv.TargetTime)
	assert.Equal(t, "5m", rv.Countdown)
	assert.Equal(t, []string{"com.a", "com.b"}, rv.BlockedApps)
	assert.True(t, rv.IsActive)

	env.runJSON(t, &rv, "update", "morning", "--active=false")
	assert.False(t, rv.IsActive)
	assert.Equal(t, engine.StateInactive, rv.State)
	assert.Equal(t, "5:55 AM", rv.TargetTime)

	_, err := env.run(t, "update", "morning")
	assert.ErrorContains(t, err, "nothing to update")

	_, err = env.run(t, "update", "morning", "--time", "6:00")
	require.Error(t, err)
	assert.True(t, engine.IsInvalidTime(err))

	var status StatusView
	env.runJSON(t, &status, "status", "morning")
	assert.Equal(t, "5:55 AM", status.Routines[0].TargetTime, "rejected time must not be written")
}

func TestActivate(t *testing.T) {
	env := newCLIEnv(t)

	var rv RoutineView
	env.runJSON(t, &rv, "activate", "night")
	assert.False(t, rv.IsActive)
	env.runJSON(t, &rv, "activate", "night")
	assert.True(t, rv.IsActive)
}

func TestCompleteAndReset(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "toggle", "morning", "1")

	var rv RoutineView
	env.runJSON(t, &rv, "complete", "morning")
	assert.Equal(t, 1, rv.Completed, "complete leaves habits alone")

	var streak StreakView
	env.runJSON(t, &streak, "streak")
	assert.True(t, streak.Today.Morning)

	var status StatusView
	env.runJSON(t, &status, "reset", "all")
	require.Len(t, status.Routines, 2)
	assert.Equal(t, 0, status.Routines[0].Completed)
	assert.True(t, status.Streak.Today.Morning, "reset keeps the ledger")

	_, err := env.run(t, "reset", "noon")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestViolationAndStats(t *testing.T) {
	env := newCLIEnv(t)

	var streak StreakView
	env.runJSON(t, &streak, "violation")
	assert.Equal(t, 1, streak.Today.Violations)
	env.mustRun(t, "violation")

	env.clock.Advance(24 * time.Hour)
	for _, rt := range []string{"morning", "night"} {
		for _, id := range []string{"1", "2", "3"} {
			env.mustRun(t, "toggle", rt, id)
		}
	}

	var stats StatsView
	env.runJSON(t, &stats, "stats", "--days", "7")
	assert.Equal(t, "2026-03-02", stats.To)
	assert.Equal(t, "2026-02-24", stats.From)
	assert.Equal(t, 2, stats.DaysTracked)
	assert.Equal(t, 1, stats.FullDays)
	assert.Equal(t, 2, stats.Violations)
	assert.Equal(t, 1, stats.CurrentStreak)

	_, err := env.run(t, "stats", "--days", "0")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestNewDayClearsHabitsOnNextCommand(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "toggle", "morning", "1")
	env.mustRun(t, "toggle", "night", "2")

	env.clock.Advance(24 * time.Hour)

	var status StatusView
	env.runJSON(t, &status, "status")
	require.Len(t, status.Routines, 2)
	for _, rv := range status.Routines {
		assert.Equal(t, 0, rv.Completed, "%s habits carried over", rv.Type)
	}

	var streak StreakView
	env.runJSON(t, &streak, "streak")
	assert.Equal(t, "2026-03-02", streak.Day)
	assert.False(t, streak.Today.Morning)
}

func TestSettings(t *testing.T) {
	env := newCLIEnv(t)

	var s SettingsView
	env.runJSON(t, &s, "settings", "show")
	assert.InDelta(t, 0.8, s.AlarmVolume, 1e-9)
	assert.Equal(t, model.AggressivenessMedium, s.NotificationAggressiveness)
	assert.Nil(t, s.SelectedMorningAudio)

	env.runJSON(t, &s, "settings", "set", "--volume", "0.5", "--aggressiveness", "high", "--morning-audio", "ocean-waves")
	assert.InDelta(t, 0.5, s.AlarmVolume, 1e-9)
	assert.Equal(t, model.AggressivenessHigh, s.NotificationAggressiveness)
	require.NotNil(t, s.SelectedMorningAudio)
	assert.Equal(t, "ocean-waves", *s.SelectedMorningAudio)

	env.runJSON(t, &s, "settings", "show")
	assert.Equal(t, model.AggressivenessHigh, s.NotificationAggressiveness)

	tests := []struct {
		name string
		args []string
	}{
		{"volume too high", []string{"--volume", "1.5"}},
		{"unknown aggressiveness", []string{"--aggressiveness", "extreme"}},
		{"unknown clip", []string{"--night-audio", "foghorn"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.run(t, append([]string{"settings", "set"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}

	env.runJSON(t, &s, "settings", "set", "--morning-audio", "")
	assert.Nil(t, s.SelectedMorningAudio)
}

func TestAudio(t *testing.T) {
	env := newCLIEnv(t)

	var list AudioListView
	env.runJSON(t, &list, "audio", "list")
	require.Len(t, list.Clips, 5)

	env.runJSON(t, &list, "audio", "add", "rain", "Rain on Tin", "--path", "/music/rain.mp3", "--duration", "30")
	require.Len(t, list.Clips, 6)
	assert.Equal(t, "rain", list.Clips[5].ID)
	assert.False(t, list.Clips[5].Bundled)

	env.runJSON(t, &list, "audio", "add", "rain", "Heavy Rain", "--path", "/music/heavy.mp3")
	require.Len(t, list.Clips, 6, "same id replaces")
	assert.Equal(t, "Heavy Rain", list.Clips[5].Name)

	_, err := env.run(t, "audio", "add", "calm-piano", "Mine", "--path", "/x.mp3")
	assert.ErrorContains(t, err, "bundled")
	_, err = env.run(t, "audio", "add", "wind", "Wind")
	assert.ErrorContains(t, err, "--path or --url")

	var rv RoutineView
	env.runJSON(t, &rv, "audio", "select", "night", "rain")
	assert.Equal(t, "rain", rv.SelectedAudioID)

	env.runJSON(t, &list, "audio", "list")
	assert.Equal(t, "rain", list.Night)

	_, err = env.run(t, "audio", "select", "night", "foghorn")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestAudioPreview(t *testing.T) {
	env := newCLIEnv(t)

	var v PreviewView
	env.runJSON(t, &v, "audio", "preview", "calm-piano")
	assert.True(t, v.Playing)
	assert.Equal(t, "Calm Piano", v.Clip.Name)

	env.mustRun(t, "audio", "add", "rain", "Rain", "--url", "https://example.com/rain.mp3")
	env.runJSON(t, &v, "audio", "preview", "rain")
	assert.False(t, v.Playing)

	out := env.mustRun(t, "audio", "preview", "rain")
	assert.Equal(t, "Rain has no bundled source to preview\n", out)
}

func TestLibrary(t *testing.T) {
	env := newCLIEnv(t)

	var v LibraryView
	env.runJSON(t, &v, "library", "night")
	assert.Equal(t, model.Night, v.Routine)
	require.Len(t, v.Habits, 8)

	added := map[string]bool{}
	for _, h := range v.Habits {
		added[h.Name] = h.Added
	}
	assert.True(t, added["Read"])
	assert.True(t, added["Pray"])
	assert.True(t, added["Journal"])
	assert.False(t, added["Meditate"])
}

func TestDataKeysAndForget(t *testing.T) {
	env := newCLIEnv(t)

	var records RecordsView
	env.runJSON(t, &records, "data", "keys")
	assert.Empty(t, records.Records)
	assert.Contains(t, env.mustRun(t, "data", "keys"), "defaults are in effect")

	env.mustRun(t, "toggle", "night", "1")
	env.mustRun(t, "settings", "set", "--volume", "0.4")

	env.runJSON(t, &records, "data", "keys")
	keys := make([]string, 0, len(records.Records))
	for _, r := range records.Records {
		keys = append(keys, r.Key)
		assert.True(t, r.Known, r.Key)
		assert.True(t, r.Readable, r.Key)
		assert.Positive(t, r.Bytes, r.Key)
	}
	assert.Equal(t, []string{"night_routine", "settings", "streak_data"}, keys)

	var forgot ForgetView
	env.runJSON(t, &forgot, "data", "forget", "night_routine")
	assert.Equal(t, ForgetView{Key: "night_routine", Removed: true}, forgot)

	var rv StatusView
	env.runJSON(t, &rv, "status", "night")
	assert.Equal(t, 0, rv.Routines[0].Completed)

	env.runJSON(t, &forgot, "data", "forget", "night_routine")
	assert.False(t, forgot.Removed)

	_, err := env.run(t, "data", "forget", "kv")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
