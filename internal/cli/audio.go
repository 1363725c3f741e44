package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ritual/internal/audio"
	"github.com/roach88/ritual/internal/model"
)

// NewAudioCommand creates the audio command group.
func NewAudioCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audio",
		Short: "Manage alarm clips",
	}
	cmd.AddCommand(newAudioListCommand(rootOpts))
	cmd.AddCommand(newAudioSelectCommand(rootOpts))
	cmd.AddCommand(newAudioAddCommand(rootOpts))
	cmd.AddCommand(newAudioPreviewCommand(rootOpts))
	return cmd
}

func newAudioListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List bundled and library clips",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				lib, err := s.repo.GetAudioLibrary(cmd.Context())
				if err != nil {
					return WrapExitError(ExitFailure, "failed to read audio library", err)
				}
				return s.out.Success(AudioListView{
					Clips:   audio.Catalog(lib),
					Morning: s.engine.Routine(model.Morning).SelectedAudioID,
					Night:   s.engine.Routine(model.Night).SelectedAudioID,
				})
			})
		},
	}
}

func newAudioSelectCommand(rootOpts *RootOptions) *cobra.Command {
	return routineCommand(rootOpts, &cobra.Command{
		Use:   "select <routine> <clip-id>",
		Short: "Choose the alarm clip for a routine",
		Args:  cobra.ExactArgs(2),
	}, func(cmd *cobra.Command, s *session, t model.RoutineType, args []string) error {
		lib, err := s.repo.GetAudioLibrary(cmd.Context())
		if err != nil {
			return WrapExitError(ExitFailure, "failed to read audio library", err)
		}
		if _, ok := audio.Find(lib, args[0]); !ok {
			return NewExitError(ExitCommandError, fmt.Sprintf("unknown audio clip %q", args[0]))
		}
		if err := s.engine.SelectAudio(cmd.Context(), t, args[0]); err != nil {
			return wrapEngineError("select failed", err)
		}
		return nil
	})
}

// AudioAddOptions holds flags for audio add.
type AudioAddOptions struct {
	Artist   string
	Path     string
	URL      string
	Duration int
	Premium  bool
}

func newAudioAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AudioAddOptions{}
	cmd := &cobra.Command{
		Use:   "add <clip-id> <name>",
		Short: "Add a clip to the audio library",
		Long: `Add a user clip to the persisted audio library. A clip with the same id
is replaced. Bundled clip ids are reserved.

Example:
  ritual audio add rain "Rain on Tin" --path ~/Music/rain.mp3 --duration 30`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, name := args[0], args[1]
			if audio.IsBundled(id) {
				return NewExitError(ExitCommandError, fmt.Sprintf("clip id %q is bundled", id))
			}
			if opts.Path == "" && opts.URL == "" {
				return NewExitError(ExitCommandError, "one of --path or --url is required")
			}
			return withSession(cmd, rootOpts, func(s *session) error {
				ctx := cmd.Context()
				lib, err := s.repo.GetAudioLibrary(ctx)
				if err != nil {
					return WrapExitError(ExitFailure, "failed to read audio library", err)
				}

				clip := model.AudioClip{
					ID:        id,
					Name:      name,
					Artist:    opts.Artist,
					LocalPath: opts.Path,
					RemoteURL: opts.URL,
					Duration:  opts.Duration,
					IsPremium: opts.Premium,
				}
				replaced := false
				for i := range lib {
					if lib[i].ID == id {
						lib[i] = clip
						replaced = true
					}
				}
				if !replaced {
					lib = append(lib, clip)
				}

				if err := s.repo.SaveAudioLibrary(ctx, lib); err != nil {
					return WrapExitError(ExitFailure, "failed to save audio library", err)
				}
				return s.out.Success(AudioListView{
					Clips:   audio.Catalog(lib),
					Morning: s.engine.Routine(model.Morning).SelectedAudioID,
					Night:   s.engine.Routine(model.Night).SelectedAudioID,
				})
			})
		},
	}
	cmd.Flags().StringVar(&opts.Artist, "artist", "", "artist name")
	cmd.Flags().StringVar(&opts.Path, "path", "", "local file path")
	cmd.Flags().StringVar(&opts.URL, "url", "", "remote URL")
	cmd.Flags().IntVar(&opts.Duration, "duration", 0, "length in seconds")
	cmd.Flags().BoolVar(&opts.Premium, "premium", false, "mark as premium")
	return cmd
}

func newAudioPreviewCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <clip-id>",
		Short: "Check that a clip can be previewed",
		Long: `Start a preview of a clip on the headless player. Only bundled clips
have a preview source.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				lib, err := s.repo.GetAudioLibrary(cmd.Context())
				if err != nil {
					return WrapExitError(ExitFailure, "failed to read audio library", err)
				}
				entry, ok := audio.Find(lib, args[0])
				if !ok {
					return NewExitError(ExitCommandError, fmt.Sprintf("unknown audio clip %q", args[0]))
				}

				var player audio.Player = audio.NewPreviewTracker(s.logger.Named("audio"))
				playing := player.PlayPreview(entry.ID)
				defer player.StopPreview()

				return s.out.Success(PreviewView{Clip: entry, Playing: playing})
			})
		},
	}
}
