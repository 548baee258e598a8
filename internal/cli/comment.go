package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewCommentCommand groups the comment operations.
func NewCommentCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Comment on posts",
	}
	cmd.AddCommand(newCommentAddCommand(opts))
	cmd.AddCommand(newCommentListCommand(opts))
	cmd.AddCommand(newCommentDeleteCommand(opts))
	return cmd
}

func newCommentAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <post-id> <content>",
		Short: "Comment on a post",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			comment, err := a.AddComment(cmd.Context(), args[0], args[1])
			if err != nil {
				return wrapOpError(err)
			}
			return newFormatter(opts, cmd.OutOrStdout()).Success(comment, func(w io.Writer) {
				fmt.Fprintf(w, "commented %s\n", comment.ID)
			})
		},
	}
}

func newCommentListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list <post-id>",
		Short: "List a post's comments, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			comments := a.CommentsFor(args[0])
			return newFormatter(opts, cmd.OutOrStdout()).Success(comments, func(w io.Writer) {
				for _, c := range comments {
					fmt.Fprintf(w, "%s  %s  %s: %s\n", c.ID, formatMillis(c.CreatedAt), c.Username, c.Content)
				}
			})
		},
	}
}

func newCommentDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <comment-id>",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.DeleteComment(cmd.Context(), args[0]); err != nil {
				return wrapOpError(err)
			}
			return newFormatter(opts, cmd.OutOrStdout()).Success(nil, func(w io.Writer) {
				fmt.Fprintln(w, "deleted")
			})
		},
	}
}
