package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ritual/internal/audio"
	"github.com/roach88/ritual/internal/model"
)

// NewSettingsCommand creates the settings command group.
func NewSettingsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change app settings",
	}
	cmd.AddCommand(newSettingsShowCommand(rootOpts))
	cmd.AddCommand(newSettingsSetCommand(rootOpts))
	return cmd
}

func newSettingsShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show",
		Short:         "Print the settings record",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				settings, err := s.repo.GetSettings(cmd.Context())
				if err != nil {
					return WrapExitError(ExitFailure, "failed to read settings", err)
				}
				return s.out.Success(SettingsView{settings})
			})
		},
	}
}

// SettingsSetOptions holds flags for settings set.
type SettingsSetOptions struct {
	Volume         float64
	Aggressiveness string
	MorningAudio   string
	NightAudio     string
	Onboarded      bool
}

func newSettingsSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SettingsSetOptions{}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		Long: `Change the given settings and save the record. Volume is between 0 and
1; aggressiveness is low, medium or high. An empty audio id clears the
selection.

Example:
  ritual settings set --volume 0.5 --aggressiveness high
  ritual settings set --morning-audio ocean-waves`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				ctx := cmd.Context()
				settings, err := s.repo.GetSettings(ctx)
				if err != nil {
					return WrapExitError(ExitFailure, "failed to read settings", err)
				}

				flags := cmd.Flags()
				if flags.Changed("volume") {
					settings.AlarmVolume = opts.Volume
				}
				if flags.Changed("aggressiveness") {
					settings.NotificationAggressiveness = opts.Aggressiveness
				}
				if flags.Changed("morning-audio") {
					settings.SelectedMorningAudio = optionalString(opts.MorningAudio)
				}
				if flags.Changed("night-audio") {
					settings.SelectedNightAudio = optionalString(opts.NightAudio)
				}
				if flags.Changed("onboarded") {
					settings.HasCompletedOnboarding = opts.Onboarded
				}

				library, err := s.repo.GetAudioLibrary(ctx)
				if err != nil {
					return WrapExitError(ExitFailure, "failed to read audio library", err)
				}
				for _, id := range []*string{settings.SelectedMorningAudio, settings.SelectedNightAudio} {
					if id == nil {
						continue
					}
					if _, ok := audio.Find(library, *id); !ok {
						return NewExitError(ExitCommandError, fmt.Sprintf("unknown audio clip %q", *id))
					}
				}

				if err := model.ValidateSettings(settings); err != nil {
					return WrapExitError(ExitCommandError, "invalid settings", err)
				}
				if err := s.repo.SaveSettings(ctx, settings); err != nil {
					return WrapExitError(ExitFailure, "failed to save settings", err)
				}
				return s.out.Success(SettingsView{settings})
			})
		},
	}
	cmd.Flags().Float64Var(&opts.Volume, "volume", 0.8, "alarm volume between 0 and 1")
	cmd.Flags().StringVar(&opts.Aggressiveness, "aggressiveness", "medium", "notification aggressiveness (low|medium|high)")
	cmd.Flags().StringVar(&opts.MorningAudio, "morning-audio", "", "default morning alarm clip id")
	cmd.Flags().StringVar(&opts.NightAudio, "night-audio", "", "default night alarm clip id")
	cmd.Flags().BoolVar(&opts.Onboarded, "onboarded", false, "mark onboarding as completed")
	return cmd
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
