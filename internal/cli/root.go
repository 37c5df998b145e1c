// Package cli implements pantryctl, the operator command line for BytePantry.
package cli

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"bytepantry/internal/domain"
	"bytepantry/internal/infra"
	"bytepantry/internal/storage"
)

// StoreOpener opens the configured store. Commands close it when done.
type StoreOpener func(ctx context.Context, logger zerolog.Logger) (domain.Store, error)

// RootOptions holds global flags and shared dependencies for all commands.
type RootOptions struct {
	Verbose   bool
	OpenStore StoreOpener
}

// NewRootCommand creates the pantryctl root command. A nil opener reads the
// same environment as the API process.
func NewRootCommand(open StoreOpener) *cobra.Command {
	if open == nil {
		open = openFromEnv
	}
	opts := &RootOptions{OpenStore: open}

	cmd := &cobra.Command{
		Use:   "pantryctl",
		Short: "BytePantry operator tools",
		Long:  "Operator commands for the BytePantry backend: schema migration, donation centers and pantry provisioning.",
		// main prints the error once.
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewCentersCommand(opts))
	cmd.AddCommand(NewPantryCommand(opts))

	return cmd
}

func openFromEnv(ctx context.Context, logger zerolog.Logger) (domain.Store, error) {
	_ = godotenv.Load()
	cfg, err := infra.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return storage.Open(ctx, cfg, logger)
}

// logger writes to stderr so command output stays clean.
func (o *RootOptions) logger(cmd *cobra.Command) zerolog.Logger {
	level := zerolog.WarnLevel
	if o.Verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Str("cmd", cmd.Name()).
		Logger()
}

// withStore opens the store, runs fn and closes the store.
func (o *RootOptions) withStore(cmd *cobra.Command, fn func(ctx context.Context, store domain.Store, logger zerolog.Logger) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := o.logger(cmd)
	store, err := o.OpenStore(ctx, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("close store")
		}
	}()
	return fn(ctx, store, logger)
}
