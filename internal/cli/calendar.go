package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aeterist/aeterist/internal/model"
)

// NewCalendarCommand groups the shared calendar.
func NewCalendarCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Read and edit the shared calendar",
	}
	cmd.AddCommand(newCalendarSetCommand(opts))
	cmd.AddCommand(newCalendarListCommand(opts))
	cmd.AddCommand(newCalendarDeleteCommand(opts))
	return cmd
}

func newCalendarSetCommand(opts *RootOptions) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "set <date> <title>",
		Short: "Set the event for a date (moderators only)",
		Long:  "Dates use the YYYY-MM-DD layout. Each date holds at most one\nevent; setting an occupied date replaces its event.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			event := model.CalendarEvent{Date: args[0], Title: args[1], Description: description}
			if err := a.AddCalendarEvent(cmd.Context(), event); err != nil {
				return wrapOpError(err)
			}
			return newFormatter(opts, cmd.OutOrStdout()).Success(event, func(w io.Writer) {
				fmt.Fprintf(w, "event set for %s\n", event.Date)
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "event description")
	return cmd
}

func newCalendarListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List calendar events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			events := a.CalendarEvents()
			return newFormatter(opts, cmd.OutOrStdout()).Success(events, func(w io.Writer) {
				for _, e := range events {
					fmt.Fprintf(w, "%s  %s", e.Date, e.Title)
					if e.Description != "" {
						fmt.Fprintf(w, "  (%s)", e.Description)
					}
					fmt.Fprintln(w)
				}
			})
		},
	}
}

func newCalendarDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <date>",
		Short: "Delete the event on a date (moderators only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.DeleteCalendarEvent(cmd.Context(), args[0]); err != nil {
				return wrapOpError(err)
			}
			return newFormatter(opts, cmd.OutOrStdout()).Success(nil, func(w io.Writer) {
				fmt.Fprintln(w, "deleted")
			})
		},
	}
}
