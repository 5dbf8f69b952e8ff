// Package cli wires configuration, storage and the board store into the
// kanbo command tree. Running kanbo without a subcommand starts the TUI.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kanbo/internal/config"
	"kanbo/internal/kanban/persist"
	"kanbo/internal/kanban/store"
	"kanbo/internal/logs"
	"kanbo/internal/storage"
	"kanbo/internal/tui"
)

// OpenFunc opens the key-value store the board lives in
type OpenFunc func(ctx context.Context, opts storage.Options) (storage.KV, error)

// app holds what every command shares once PersistentPreRunE has run
type app struct {
	flags  config.CLIFlags
	open   OpenFunc
	runTUI func(ctx context.Context, st *store.Store, notice string) error

	cfg    *config.Config
	kv     storage.KV
	store  *store.Store
	seeded bool
}

// Execute runs the command tree and exits non-zero on failure
func Execute() {
	if err := run(context.Background(), os.Args[1:], storage.Open); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, open OpenFunc) error {
	a := &app{open: open, runTUI: func(ctx context.Context, st *store.Store, notice string) error {
		return tui.Run(ctx, st, notice)
	}}
	root := a.rootCmd()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	a.close()
	return err
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "kanbo",
		Short: "A kanban board for the terminal",
		Long: `kanbo keeps a single kanban board of ordered columns and cards.
Running kanbo without a command opens the interactive board. The commands
below operate on the same board without the TUI.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			notice := ""
			if a.seeded {
				notice = "Started with the default board"
			}
			logs.Logger.Infow("Starting app in TUI mode", "backend", a.cfg.Backend)
			return a.runTUI(cmd.Context(), a.store, notice)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.flags.Backend, "backend", "b", "", "Storage backend: file, bolt, s3, redis, memory")
	pf.StringVarP(&a.flags.DataDir, "data-dir", "d", "", "Data directory (default ~/kanbo)")
	pf.StringVar(&a.flags.StorageKey, "key", "", "Storage key the board is saved under")
	pf.StringVar(&a.flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&a.flags.EnvFile, "env-file", "", "Read environment from this file (default ./.env)")
	pf.BoolVar(&a.flags.Ephemeral, "ephemeral", false, "Keep the board in memory only")

	root.AddCommand(
		a.listCmd(),
		a.addCmd(),
		a.editCmd(),
		a.deleteCmd(),
		a.moveCmd(),
		a.exportCmd(),
		a.importCmd(),
		a.resetCmd(),
	)
	return root
}

// setup loads config, opens storage and loads the board
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.flags)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	if err := config.EnsureConfigFile(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create config file: %v\n", err)
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := logs.Initialize(cfg.DataDir, cfg.LogLevel); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not initialize logger: %v\n", err)
	}

	ctx := cmd.Context()
	kv, err := a.open(ctx, cfg.StorageOptions())
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.Backend, err)
	}
	a.kv = kv

	adapter := persist.New(kv, persist.WithKey(cfg.StorageKey))
	a.store = store.New(adapter)
	a.seeded = a.store.Load(ctx)

	logs.Logger.Debugw("Board loaded", "backend", cfg.Backend, "key", adapter.Key(), "seeded", a.seeded)
	return nil
}

func (a *app) close() {
	if a.kv != nil {
		if err := a.kv.Close(); err != nil {
			logs.Logger.Warnw("Failed to close storage", "error", err)
		}
		a.kv = nil
	}
	_ = logs.Close()
}
