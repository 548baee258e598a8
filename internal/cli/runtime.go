package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aeterist/aeterist/internal/app"
	"github.com/aeterist/aeterist/internal/config"
	"github.com/aeterist/aeterist/internal/store"
)

// openApp loads configuration, opens the store, and hydrates the state
// store. The returned cleanup closes the store and must run before the
// process exits.
func openApp(cmd *cobra.Command, opts *RootOptions) (*app.App, func(), error) {
	cfg := config.Load()
	path := opts.Data
	if path == "" {
		path = cfg.DataPath
	}

	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	kv, err := store.Open(path)
	if err != nil {
		return nil, nil, &ExitError{Code: ExitCommandError, Message: "open store", Err: err}
	}

	a := app.New(cmd.Context(), kv, cfg.BootstrapOwner(), cfg.DefaultTheme, app.WithLogger(logger))
	cleanup := func() {
		if err := kv.Close(); err != nil {
			logger.Warn("closing store", "error", err)
		}
	}
	return a, cleanup, nil
}

// resolveUserID maps a username argument to the stable user id used in
// friend lists and message endpoints.
func resolveUserID(a *app.App, username string) (string, error) {
	u, ok := a.GetUserByUsername(username)
	if !ok {
		return "", &ExitError{Code: ExitFailure, Message: "no such user: " + username}
	}
	return u.ID, nil
}
