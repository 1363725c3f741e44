package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/ritual/internal/store"
)

// NewDataCommand creates the data command group for inspecting raw records.
func NewDataCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Inspect and clear stored records",
	}
	cmd.AddCommand(newDataKeysCommand(rootOpts))
	cmd.AddCommand(newDataForgetCommand(rootOpts))
	return cmd
}

// RecordView describes one stored key.
type RecordView struct {
	Key      string `json:"key"`
	Bytes    int    `json:"bytes"`
	Known    bool   `json:"known"`
	Readable bool   `json:"readable"`
}

// RecordsView lists stored keys.
type RecordsView struct {
	Records []RecordView `json:"records"`
}

func (v RecordsView) String() string {
	if len(v.Records) == 0 {
		return "No stored records; defaults are in effect"
	}
	var b strings.Builder
	for i, r := range v.Records {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%-16s %6d bytes", r.Key, r.Bytes)
		if !r.Known {
			b.WriteString("  unknown key")
		} else if !r.Readable {
			b.WriteString("  unreadable, default in use")
		}
	}
	return b.String()
}

func newDataKeysCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "keys",
		Short:         "List stored keys and whether they decode",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				ctx := cmd.Context()
				keys, err := s.store.Keys(ctx)
				if err != nil {
					return WrapExitError(ExitFailure, "failed to list records", err)
				}
				view := RecordsView{Records: make([]RecordView, 0, len(keys))}
				for _, k := range keys {
					raw, _, err := s.store.GetString(ctx, k)
					if err != nil {
						return WrapExitError(ExitFailure, "failed to read record", err)
					}
					view.Records = append(view.Records, RecordView{
						Key:      k,
						Bytes:    len(raw),
						Known:    store.IsRecordKey(k),
						Readable: json.Valid([]byte(raw)),
					})
				}
				return s.out.Success(view)
			})
		},
	}
}

// ForgetView reports a deleted record.
type ForgetView struct {
	Key     string `json:"key"`
	Removed bool   `json:"removed"`
}

func (v ForgetView) String() string {
	if !v.Removed {
		return fmt.Sprintf("%s was not stored", v.Key)
	}
	return fmt.Sprintf("Forgot %s; its default applies from now on", v.Key)
}

func newDataForgetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "forget <key>",
		Short: "Delete a stored record so its default applies",
		Long: fmt.Sprintf(`Delete one stored record. The next read falls back to the record's
default, as on a fresh database.

Keys: %s

Example:
  ritual data forget night_routine`, strings.Join(store.RecordKeys, ", ")),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !store.IsRecordKey(key) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("unknown record %q (want one of %s)", key, strings.Join(store.RecordKeys, ", ")))
			}
			return withSession(cmd, rootOpts, func(s *session) error {
				ctx := cmd.Context()
				_, found, err := s.store.GetString(ctx, key)
				if err != nil {
					return WrapExitError(ExitFailure, "failed to read record", err)
				}
				if err := s.store.Delete(ctx, key); err != nil {
					return WrapExitError(ExitFailure, "failed to delete record", err)
				}
				s.logger.Info("Record forgotten", zap.String("key", key), zap.Bool("was_stored", found))
				return s.out.Success(ForgetView{Key: key, Removed: found})
			})
		},
	}
}
