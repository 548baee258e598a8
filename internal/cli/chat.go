package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewChatCommand groups the global broadcast log and direct messages.
func NewChatCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Global chat and direct messages",
	}
	cmd.AddCommand(newChatGlobalCommand(opts))
	cmd.AddCommand(newChatHistoryCommand(opts))
	cmd.AddCommand(newChatDeleteCommand(opts))
	cmd.AddCommand(newChatSendCommand(opts))
	cmd.AddCommand(newChatDMCommand(opts))
	return cmd
}

func newChatGlobalCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "global <text>",
		Short: "Send a message to the global chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			msg, err := a.SendGlobalMessage(cmd.Context(), args[0])
			if err != nil {
				return wrapOpError(err)
			}
			return newFormatter(opts, cmd.OutOrStdout()).Success(msg, func(w io.Writer) {
				fmt.Fprintf(w, "sent %s\n", msg.ID)
			})
		},
	}
}

func newChatHistoryCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the global chat log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			msgs := a.GlobalMessages()
			return newFormatter(opts, cmd.OutOrStdout()).Success(msgs, func(w io.Writer) {
				for _, m := range msgs {
					fmt.Fprintf(w, "%s  %s  %s: %s\n", m.ID, formatMillis(m.Timestamp), m.SenderUsername, m.Text)
				}
			})
		},
	}
}

func newChatDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <message-id>",
		Short: "Delete a global chat message (moderators only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.DeleteGlobalMessage(cmd.Context(), args[0]); err != nil {
				return wrapOpError(err)
			}
			return newFormatter(opts, cmd.OutOrStdout()).Success(nil, func(w io.Writer) {
				fmt.Fprintln(w, "deleted")
			})
		},
	}
}

func newChatSendCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "send <username> <text>",
		Short: "Send a direct message",
		Args:  cobra.ExactArgs(2),
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
			msg, err := a.SendMessage(cmd.Context(), id, args[1])
			if err != nil {
				return wrapOpError(err)
			}
			return newFormatter(opts, cmd.OutOrStdout()).Success(msg, func(w io.Writer) {
				fmt.Fprintf(w, "sent %s\n", msg.ID)
			})
		},
	}
}

func newChatDMCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dm <username>",
		Short: "Show your conversation with one user",
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
			msgs, err := a.Conversation(id)
			if err != nil {
				return wrapOpError(err)
			}
			return newFormatter(opts, cmd.OutOrStdout()).Success(msgs, func(w io.Writer) {
				for _, m := range msgs {
					direction := "->"
					if m.SenderID == id {
						direction = "<-"
					}
					fmt.Fprintf(w, "%s  %s %s %s\n", formatMillis(m.Timestamp), direction, args[0], m.Text)
				}
			})
		},
	}
}
