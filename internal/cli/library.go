package cli

import (
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"

	"github.com/roach88/ritual/internal/library"
	"github.com/roach88/ritual/internal/model"
)

// NewLibraryCommand creates the library command.
func NewLibraryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "library [morning|night]",
		Short: "List predefined habits",
		Long: `List the predefined habits with their icons, marking the ones the routine
already has (morning by default).

Example:
  ritual library night
  ritual add night "$(ritual library night --format json | jq -r '.data.habits[0].name')"`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := model.Morning
			if len(args) == 1 {
				var err error
				if t, err = parseRoutineArg(args[0]); err != nil {
					return err
				}
			}
			return withSession(cmd, rootOpts, func(s *session) error {
				return s.out.Success(libraryView(library.Default(), s.engine.Routine(t), t))
			})
		},
	}
}

func libraryView(lib *library.Library, r model.Routine, t model.RoutineType) LibraryView {
	fold := cases.Fold()
	existing := make(map[string]bool, len(r.Habits))
	for _, h := range r.Habits {
		existing[fold.String(h.Name)] = true
	}

	v := LibraryView{Routine: t, Habits: make([]LibraryEntry, 0, len(lib.Habits))}
	for _, h := range lib.Habits {
		v.Habits = append(v.Habits, LibraryEntry{Predefined: h, Added: existing[fold.String(h.Name)]})
	}
	return v
}
