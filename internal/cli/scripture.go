package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewScriptureCommand groups the shared scripture store.
func NewScriptureCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scripture",
		Short: "Read and edit scripture entries",
	}
	cmd.AddCommand(newScriptureSetCommand(opts))
	cmd.AddCommand(newScriptureListCommand(opts))
	return cmd
}

func newScriptureSetCommand(opts *RootOptions) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "set <title> <content>",
		Short: "Add or update a scripture entry (moderators only)",
		Long: "Without --id a new entry is created. With --id the matching\n" +
			"entry is updated in place, keeping its author and creation time.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			s, err := a.UpdateScripture(cmd.Context(), id, args[0], args[1])
			if err != nil {
				return wrapOpError(err)
			}
			return newFormatter(opts, cmd.OutOrStdout()).Success(s, func(w io.Writer) {
				fmt.Fprintf(w, "scripture %s saved\n", s.ID)
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "entry to update (omit to create)")
	return cmd
}

func newScriptureListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scripture entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			entries := a.Scriptures()
			return newFormatter(opts, cmd.OutOrStdout()).Success(entries, func(w io.Writer) {
				for _, s := range entries {
					fmt.Fprintf(w, "%s  %s\n%s\n", s.ID, s.Title, s.Content)
				}
			})
		},
	}
}
