package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"bytepantry/internal/domain"
	"bytepantry/internal/pantry"
)

// NewPantryCommand creates the pantry command group.
func NewPantryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pantry",
		Short: "Provision user pantries",
	}
	cmd.AddCommand(newPantryEnsureCommand(rootOpts))
	return cmd
}

func newPantryEnsureCommand(rootOpts *RootOptions) *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:          "ensure",
		Short:        "Create a user's pantry if it does not exist",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withStore(cmd, func(ctx context.Context, store domain.Store, logger zerolog.Logger) error {
				pantryID, err := pantry.NewService(store, store, logger).Ensure(ctx, userID)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "user %d: pantry %d\n", userID, pantryID)
				return err
			})
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user ID")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
