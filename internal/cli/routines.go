package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ritual/internal/engine"
	"github.com/roach88/ritual/internal/library"
	"github.com/roach88/ritual/internal/model"
)

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status [morning|night]",
		Short: "Show routines, the due routine, and the streak",
		Long: `Show both routines (or one) with progress, the next open habit, and the
time left before each target time. The routine whose target time is
nearest the current time is reported as up.

Example:
  ritual status
  ritual status night --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			only := model.RoutineTypes
			if len(args) == 1 {
				t, err := parseRoutineArg(args[0])
				if err != nil {
					return err
				}
				only = []model.RoutineType{t}
			}
			return withSession(cmd, rootOpts, func(s *session) error {
				v, err := statusView(s.engine, only)
				if err != nil {
					return err
				}
				return s.out.Success(v)
			})
		},
	}
}

// routineCommand builds a command that takes a routine as its first
// argument, runs mutate, and prints the routine afterwards.
func routineCommand(rootOpts *RootOptions, cmd *cobra.Command, mutate func(cmd *cobra.Command, s *session, t model.RoutineType, args []string) error) *cobra.Command {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		t, err := parseRoutineArg(args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, rootOpts, func(s *session) error {
			if err := mutate(cmd, s, t, args[1:]); err != nil {
				return err
			}
			v, err := routineView(s.engine, t)
			if err != nil {
				return err
			}
			return s.out.Success(v)
		})
	}
	return cmd
}

// NewToggleCommand creates the toggle command.
func NewToggleCommand(rootOpts *RootOptions) *cobra.Command {
	return routineCommand(rootOpts, &cobra.Command{
		Use:   "toggle <routine> <habit-id>",
		Short: "Mark a habit done, or undo it",
		Long: `Flip a habit's completed flag. Finishing the last open habit marks the
routine complete for today; finishing both routines extends the streak.

Example:
  ritual toggle morning 2`,
		Args: cobra.ExactArgs(2),
	}, func(cmd *cobra.Command, s *session, t model.RoutineType, args []string) error {
		if err := s.engine.ToggleHabit(cmd.Context(), t, args[0]); err != nil {
			return wrapEngineError("toggle failed", err)
		}
		return nil
	})
}

// AddOptions holds flags for the add command.
type AddOptions struct {
	Description string
	Icon        string
	Duration    int
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{}
	cmd := routineCommand(rootOpts, &cobra.Command{
		Use:   "add <routine> <name>",
		Short: "Append a habit to a routine",
		Long: `Append a habit. Names from the habit library pick up its icon unless
--icon is given.

Example:
  ritual add morning "Drink Water"
  ritual add night "Stretch hamstrings" --icon body --duration 10`,
		Args: cobra.ExactArgs(2),
	}, func(cmd *cobra.Command, s *session, t model.RoutineType, args []string) error {
		h, err := s.engine.AddHabit(cmd.Context(), t, engine.NewHabit{
			Name:        args[0],
			Description: opts.Description,
			Icon:        addIcon(args[0], opts.Icon),
			Duration:    opts.Duration,
		})
		if err != nil {
			return wrapEngineError("add failed", err)
		}
		s.out.VerboseLog("Added habit %s (%s)", h.Name, h.ID)
		return nil
	})
	cmd.Flags().StringVar(&opts.Description, "description", "", "habit description")
	cmd.Flags().StringVar(&opts.Icon, "icon", "", "icon name from the habit library palette")
	cmd.Flags().IntVar(&opts.Duration, "duration", 0, "estimated minutes")
	return cmd
}

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return routineCommand(rootOpts, &cobra.Command{
		Use:   "remove <routine> <habit-id>",
		Short: "Delete a habit from a routine",
		Args:  cobra.ExactArgs(2),
	}, func(cmd *cobra.Command, s *session, t model.RoutineType, args []string) error {
		if err := s.engine.RemoveHabit(cmd.Context(), t, args[0]); err != nil {
			return wrapEngineError("remove failed", err)
		}
		return nil
	})
}

// NewReorderCommand creates the reorder command.
func NewReorderCommand(rootOpts *RootOptions) *cobra.Command {
	return routineCommand(rootOpts, &cobra.Command{
		Use:   "reorder <routine> <habit-id>...",
		Short: "Move habits to the front in the given order",
		Long: `Put the listed habits first, in the order given. Habits not listed keep
their relative order after them.

Example:
  ritual reorder morning 3 1`,
		Args: cobra.MinimumNArgs(2),
	}, func(cmd *cobra.Command, s *session, t model.RoutineType, args []string) error {
		habits, err := reorder(s.engine.Routine(t).Habits, args)
		if err != nil {
			return err
		}
		if err := s.engine.ReorderHabits(cmd.Context(), t, habits); err != nil {
			return wrapEngineError("reorder failed", err)
		}
		return nil
	})
}

// reorder moves ids to the front of habits. Every id must exist once.
func reorder(habits []model.Habit, ids []string) ([]model.Habit, error) {
	byID := make(map[string]model.Habit, len(habits))
	for _, h := range habits {
		byID[h.ID] = h
	}

	out := make([]model.Habit, 0, len(habits))
	taken := make(map[string]bool, len(ids))
	for _, id := range ids {
		h, ok := byID[id]
		if !ok {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("unknown habit id %q", id))
		}
		if taken[id] {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("habit id %q listed twice", id))
		}
		taken[id] = true
		out = append(out, h)
	}
	for _, h := range habits {
		if !taken[h.ID] {
			out = append(out, h)
		}
	}
	return out, nil
}

// UpdateOptions holds flags for the update command.
type UpdateOptions struct {
	TargetTime  string
	Active      bool
	Audio       string
	BlockedApps []string
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UpdateOptions{}
	cmd := routineCommand(rootOpts, &cobra.Command{
		Use:   "update <routine>",
		Short: "Change a routine's target time, alarm, or blocked apps",
		Long: `Change routine fields. Only flags that are given are applied. The target
time must look like "6:00 AM" or "9:30 PM".

Example:
  ritual update morning --time "5:45 AM"
  ritual update night --active=false
  ritual update night --blocked-apps com.twitter.android,com.reddit.frontpage`,
		Args: cobra.ExactArgs(1),
	}, func(cmd *cobra.Command, s *session, t model.RoutineType, args []string) error {
		var p engine.RoutinePatch
		changed := false
		flags := cmd.Flags()
		if flags.Changed("time") {
			p.TargetTime = &opts.TargetTime
			changed = true
		}
		if flags.Changed("active") {
			p.IsActive = &opts.Active
			changed = true
		}
		if flags.Changed("audio") {
			p.SelectedAudioID = &opts.Audio
			changed = true
		}
		if flags.Changed("blocked-apps") {
			p.BlockedApps = append([]string{}, opts.BlockedApps...)
			changed = true
		}
		if !changed {
			return NewExitError(ExitCommandError, "nothing to update: pass --time, --active, --audio or --blocked-apps")
		}
		if err := s.engine.UpdateRoutine(cmd.Context(), t, p); err != nil {
			return wrapEngineError("update failed", err)
		}
		return nil
	})

	cmd.Flags().StringVar(&opts.TargetTime, "time", "", `target time, e.g. "6:00 AM"`)
	cmd.Flags().BoolVar(&opts.Active, "active", true, "whether the routine is active")
	cmd.Flags().StringVar(&opts.Audio, "audio", "", "alarm clip id")
	cmd.Flags().StringSliceVar(&opts.BlockedApps, "blocked-apps", nil, "app identifiers blocked until the routine is done")
	return cmd
}

// NewActivateCommand creates the activate command.
func NewActivateCommand(rootOpts *RootOptions) *cobra.Command {
	return routineCommand(rootOpts, &cobra.Command{
		Use:   "activate <routine>",
		Short: "Switch a routine on or off",
		Args:  cobra.ExactArgs(1),
	}, func(cmd *cobra.Command, s *session, t model.RoutineType, args []string) error {
		if err := s.engine.ToggleActive(cmd.Context(), t); err != nil {
			return wrapEngineError("activate failed", err)
		}
		return nil
	})
}

// NewCompleteCommand creates the complete command.
func NewCompleteCommand(rootOpts *RootOptions) *cobra.Command {
	return routineCommand(rootOpts, &cobra.Command{
		Use:   "complete <routine>",
		Short: "Record a routine as done today without touching its habits",
		Args:  cobra.ExactArgs(1),
	}, func(cmd *cobra.Command, s *session, t model.RoutineType, args []string) error {
		if err := s.engine.MarkRoutineComplete(cmd.Context(), t); err != nil {
			return wrapEngineError("complete failed", err)
		}
		return nil
	})
}

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <morning|night|all>",
		Short: "Clear habit check marks",
		Long: `Clear every habit's completed flag. The streak and today's ledger entry
are kept. The watch command does this automatically when the day changes.

Example:
  ritual reset all`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			targets := model.RoutineTypes
			if args[0] != "all" {
				t, err := parseRoutineArg(args[0])
				if err != nil {
					return err
				}
				targets = []model.RoutineType{t}
			}
			return withSession(cmd, rootOpts, func(s *session) error {
				for _, t := range targets {
					if err := s.engine.ResetDailyHabits(cmd.Context(), t); err != nil {
						return wrapEngineError("reset failed", err)
					}
				}
				v, err := statusView(s.engine, targets)
				if err != nil {
					return err
				}
				return s.out.Success(v)
			})
		},
	}
}

// addIcon is the icon stored for a new habit: the --icon flag, else the
// predefined habit's icon, else none. The fallback style is applied when
// rendering, not stored.
func addIcon(name, icon string) string {
	if icon != "" {
		return icon
	}
	if p, ok := library.Default().Lookup(name); ok {
		return p.Icon
	}
	return ""
}
