package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/aeterist/aeterist/internal/app"
	"github.com/aeterist/aeterist/internal/model"
)

// NewPostCommand groups the feed operations.
func NewPostCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Create, browse, and react to posts",
	}
	cmd.AddCommand(newPostAddCommand(opts))
	cmd.AddCommand(newPostListCommand(opts))
	cmd.AddCommand(newPostDeleteCommand(opts))
	cmd.AddCommand(newPostReactCommand(opts, "like", (*app.App).ToggleLikePost))
	cmd.AddCommand(newPostReactCommand(opts, "dislike", (*app.App).ToggleDislikePost))
	return cmd
}

func newPostAddCommand(opts *RootOptions) *cobra.Command {
	var mediaURL, mediaType string

	cmd := &cobra.Command{
		Use:   "add <title> <content>",
		Short: "Publish a post",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			post, err := a.AddPost(cmd.Context(), app.PostDraft{
				Title:     args[0],
				Content:   args[1],
				MediaURL:  mediaURL,
				MediaType: model.MediaType(mediaType),
			})
			if err != nil {
				return wrapOpError(err)
			}
			return newFormatter(opts, cmd.OutOrStdout()).Success(post, func(w io.Writer) {
				fmt.Fprintf(w, "posted %s\n", post.ID)
			})
		},
	}

	cmd.Flags().StringVar(&mediaURL, "media-url", "", "attachment URL")
	cmd.Flags().StringVar(&mediaType, "media-type", "", "attachment type (image|audio|video)")
	return cmd
}

func newPostListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the feed, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			posts := a.Posts()
			return newFormatter(opts, cmd.OutOrStdout()).Success(posts, func(w io.Writer) {
				for _, p := range posts {
					fmt.Fprintf(w, "%s  %s  %s  (+%d/-%d)  %s\n",
						p.ID, formatMillis(p.CreatedAt), p.Username, len(p.Likes), len(p.Dislikes), p.Title)
				}
			})
		},
	}
}

func newPostDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <post-id>",
		Short: "Delete a post and its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.DeletePost(cmd.Context(), args[0]); err != nil {
				return wrapOpError(err)
			}
			return newFormatter(opts, cmd.OutOrStdout()).Success(nil, func(w io.Writer) {
				fmt.Fprintln(w, "deleted")
			})
		},
	}
}

// newPostReactCommand builds the like and dislike toggles, which differ
// only in the mutation they call.
func newPostReactCommand(opts *RootOptions, verb string, toggle func(*app.App, context.Context, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <post-id>",
		Short: "Toggle your " + verb + " on a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := toggle(a, cmd.Context(), args[0]); err != nil {
				return wrapOpError(err)
			}
			return newFormatter(opts, cmd.OutOrStdout()).Success(nil, func(w io.Writer) {
				fmt.Fprintf(w, "%s toggled\n", verb)
			})
		},
	}
}

// formatMillis renders a unix-millisecond timestamp for text output.
func formatMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
