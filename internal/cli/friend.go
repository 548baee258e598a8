package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aeterist/aeterist/internal/model"
)

// NewFriendCommand groups the friend-graph operations. All targets are
// usernames; resolution to ids happens here so the command surface
// never exposes raw ids.
func NewFriendCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "friend",
		Short: "Manage friends and friend requests",
	}
	cmd.AddCommand(newFriendRequestCommand(opts))
	cmd.AddCommand(newFriendAcceptCommand(opts))
	cmd.AddCommand(newFriendDeclineCommand(opts))
	cmd.AddCommand(newFriendRemoveCommand(opts))
	cmd.AddCommand(newFriendListCommand(opts))
	cmd.AddCommand(newFriendPendingCommand(opts))
	return cmd
}

func newFriendRequestCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "request <username>",
		Short: "Send a friend request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.SendFriendRequest(cmd.Context(), args[0]); err != nil {
				return wrapOpError(err)
			}
			return newFormatter(opts, cmd.OutOrStdout()).Success(nil, func(w io.Writer) {
				fmt.Fprintf(w, "request sent to %s\n", args[0])
			})
		},
	}
}

func newFriendAcceptCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "accept <username>",
		Short: "Accept a pending friend request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := resolveUserID(a, args[0])
			if err != nil {
				return err
			}
			if err := a.AcceptFriendRequest(cmd.Context(), id); err != nil {
				return wrapOpError(err)
			}
			return newFormatter(opts, cmd.OutOrStdout()).Success(nil, func(w io.Writer) {
				fmt.Fprintf(w, "now friends with %s\n", args[0])
			})
		},
	}
}

func newFriendDeclineCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decline <username>",
		Short: "Decline a pending friend request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := resolveUserID(a, args[0])
			if err != nil {
				return err
			}
			if err := a.DeclineFriendRequest(cmd.Context(), id); err != nil {
				return wrapOpError(err)
			}
			return newFormatter(opts, cmd.OutOrStdout()).Success(nil, func(w io.Writer) {
				fmt.Fprintf(w, "declined %s\n", args[0])
			})
		},
	}
}

func newFriendRemoveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <username>",
		Short: "Remove a friend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := resolveUserID(a, args[0])
			if err != nil {
				return err
			}
			if err := a.RemoveFriend(cmd.Context(), id); err != nil {
				return wrapOpError(err)
			}
			return newFormatter(opts, cmd.OutOrStdout()).Success(nil, func(w io.Writer) {
				fmt.Fprintf(w, "removed %s\n", args[0])
			})
		},
	}
}

func newFriendListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your friends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			friends, err := a.Friends()
			if err != nil {
				return wrapOpError(err)
			}
			return newFormatter(opts, cmd.OutOrStdout()).Success(friends, printUsernames(friends))
		},
	}
}

func newFriendPendingCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List pending inbound friend requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			pending, err := a.PendingRequests()
			if err != nil {
				return wrapOpError(err)
			}
			return newFormatter(opts, cmd.OutOrStdout()).Success(pending, printUsernames(pending))
		},
	}
}

func printUsernames(users []model.User) func(w io.Writer) {
	return func(w io.Writer) {
		for _, u := range users {
			fmt.Fprintf(w, "%s  %s\n", u.ID, u.Username)
		}
	}
}
