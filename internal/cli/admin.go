package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aeterist/aeterist/internal/model"
)

// NewRoleCommand manages user roles. Assignment is owner-only.
func NewRoleCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role",
		Short: "Inspect and assign user roles",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <username> <role>",
		Short: "Assign a role (owner only, never yourself)",
		Long:  "Valid roles: user, moderator, co-owner, owner.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.UpdateUserRole(cmd.Context(), args[0], model.Role(args[1])); err != nil {
				return wrapOpError(err)
			}
			return newFormatter(opts, cmd.OutOrStdout()).Success(nil, func(w io.Writer) {
				fmt.Fprintf(w, "%s is now %s\n", args[0], args[1])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <username>",
		Short: "Show a user's role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			u, ok := a.GetUserByUsername(args[0])
			if !ok {
				return &ExitError{Code: ExitFailure, Message: "no such user: " + args[0]}
			}
			return newFormatter(opts, cmd.OutOrStdout()).Success(u.Role, func(w io.Writer) {
				fmt.Fprintln(w, u.Role)
			})
		},
	})

	return cmd
}

// NewThemeCommand reads and writes the persisted theme preference.
func NewThemeCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or set the theme",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Show the active theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			theme := a.Theme()
			return newFormatter(opts, cmd.OutOrStdout()).Success(theme, func(w io.Writer) {
				fmt.Fprintln(w, theme)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <theme>",
		Short: "Set the theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.SetTheme(cmd.Context(), args[0]); err != nil {
				return wrapOpError(err)
			}
			return newFormatter(opts, cmd.OutOrStdout()).Success(args[0], func(w io.Writer) {
				fmt.Fprintf(w, "theme set to %s\n", args[0])
			})
		},
	})

	return cmd
}
