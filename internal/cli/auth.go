package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aeterist/aeterist/internal/app"
	"github.com/aeterist/aeterist/internal/model"
)

// NewSignupCommand creates a new account and signs it in.
func NewSignupCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "signup <username> <password>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.Signup(cmd.Context(), args[0], args[1]); err != nil {
				return wrapOpError(err)
			}
			u, _ := a.CurrentUser()
			return newFormatter(opts, cmd.OutOrStdout()).Success(u, func(w io.Writer) {
				fmt.Fprintf(w, "welcome, %s (%s)\n", u.Username, u.ID)
			})
		},
	}
}

// NewLoginCommand signs an existing account in.
func NewLoginCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Sign in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.Login(cmd.Context(), args[0], args[1]); err != nil {
				return wrapOpError(err)
			}
			u, _ := a.CurrentUser()
			return newFormatter(opts, cmd.OutOrStdout()).Success(u, func(w io.Writer) {
				fmt.Fprintf(w, "signed in as %s (%s)\n", u.Username, u.Role)
			})
		},
	}
}

// NewLogoutCommand clears the session.
func NewLogoutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.Logout(cmd.Context()); err != nil {
				return wrapOpError(err)
			}
			return newFormatter(opts, cmd.OutOrStdout()).Success(nil, func(w io.Writer) {
				fmt.Fprintln(w, "signed out")
			})
		},
	}
}

// NewWhoamiCommand prints the session subject.
func NewWhoamiCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			u, ok := a.CurrentUser()
			if !ok {
				return &ExitError{Code: ExitFailure, Message: "not signed in"}
			}
			return newFormatter(opts, cmd.OutOrStdout()).Success(u, func(w io.Writer) {
				fmt.Fprintf(w, "%s (%s, role %s)\n", u.Username, u.ID, u.Role)
			})
		},
	}
}

// NewProfileCommand shows or edits the signed-in account's profile.
func NewProfileCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your profile",
	}
	cmd.AddCommand(newProfileShowCommand(opts))
	cmd.AddCommand(newProfileEditCommand(opts))
	return cmd
}

func newProfileShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show [username]",
		Short: "Show a profile (yours by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			var u model.User
			if len(args) == 1 {
				var ok bool
				u, ok = a.GetUserByUsername(args[0])
				if !ok {
					return &ExitError{Code: ExitFailure, Message: "no such user: " + args[0]}
				}
			} else {
				var ok bool
				u, ok = a.CurrentUser()
				if !ok {
					return &ExitError{Code: ExitFailure, Message: "not signed in"}
				}
			}
			u.Password = ""
			return newFormatter(opts, cmd.OutOrStdout()).Success(u, func(w io.Writer) {
				fmt.Fprintf(w, "%s (%s)\nrole: %s\nbio: %s\n", u.Username, u.ID, u.Role, u.Bio)
				if u.ProfilePicture != "" {
					fmt.Fprintf(w, "picture: %s\n", u.ProfilePicture)
				}
			})
		},
	}
}

func newProfileEditCommand(opts *RootOptions) *cobra.Command {
	var bio, picture, password string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit your bio, picture, or password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			var update app.UserUpdate
			if cmd.Flags().Changed("bio") {
				update.Bio = &bio
			}
			if cmd.Flags().Changed("picture") {
				update.ProfilePicture = &picture
			}
			if cmd.Flags().Changed("password") {
				update.Password = &password
			}

			if err := a.UpdateUser(cmd.Context(), update); err != nil {
				return wrapOpError(err)
			}
			u, _ := a.CurrentUser()
			u.Password = ""
			return newFormatter(opts, cmd.OutOrStdout()).Success(u, func(w io.Writer) {
				fmt.Fprintln(w, "profile updated")
			})
		},
	}

	cmd.Flags().StringVar(&bio, "bio", "", "new bio")
	cmd.Flags().StringVar(&picture, "picture", "", "new profile picture URL")
	cmd.Flags().StringVar(&password, "password", "", "new password")
	return cmd
}
