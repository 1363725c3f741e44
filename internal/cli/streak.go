package cli

import (
	"github.com/spf13/cobra"
)

// NewStreakCommand creates the streak command.
func NewStreakCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "streak",
		Short:         "Show the streak and today's ledger entry",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				return s.out.Success(streakView(s.engine))
			})
		},
	}
}

// NewViolationCommand creates the violation command.
func NewViolationCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "violation",
		Short: "Record opening a blocked app before the routine was done",
		Long: `Add one to today's violation count. Violations are reported by stats
and never affect the streak.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				if err := s.engine.RecordViolation(cmd.Context()); err != nil {
					return wrapEngineError("violation failed", err)
				}
				return s.out.Success(streakView(s.engine))
			})
		},
	}
}

// StatsOptions holds flags for the stats command.
type StatsOptions struct {
	Days int
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatsOptions{}
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarise the completion ledger",
		Long: `Count full days, half days, and violations over the last --days days,
today included.

Example:
  ritual stats --days 30`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Days < 1 {
				return NewExitError(ExitCommandError, "--days must be at least 1")
			}
			return withSession(cmd, rootOpts, func(s *session) error {
				return s.out.Success(StatsView{s.engine.Stats(opts.Days)})
			})
		},
	}
	cmd.Flags().IntVar(&opts.Days, "days", 7, "window length in days")
	return cmd
}
