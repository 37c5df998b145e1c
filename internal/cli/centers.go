package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"bytepantry/internal/centers"
	"bytepantry/internal/domain"
)

// NewCentersCommand creates the centers command group.
func NewCentersCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "centers",
		Short: "Manage donation centers",
	}
	cmd.AddCommand(newCentersImportCommand(rootOpts))
	cmd.AddCommand(newCentersListCommand(rootOpts))
	return cmd
}

func newCentersImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Create donation centers from a YAML file",
		Long: `Create donation centers from a YAML list:

  - name: Central Food Bank
    address: 2 Market St`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open centers file: %w", err)
			}
			defer f.Close()

			entries, err := centers.Parse(f)
			if err != nil {
				return err
			}

			return rootOpts.withStore(cmd, func(ctx context.Context, store domain.Store, logger zerolog.Logger) error {
				created, err := centers.Import(ctx, store, entries)
				for _, c := range created {
					logger.Debug().Int64("center_id", c.ID).Str("name", c.Name).Msg("center created")
				}
				if err != nil {
					return fmt.Errorf("imported %d of %d centers: %w", len(created), len(entries), err)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d centers\n", len(created))
				return err
			})
		},
	}
}

func newCentersListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "list",
		Short:        "List donation centers",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withStore(cmd, func(ctx context.Context, store domain.Store, _ zerolog.Logger) error {
				list, err := store.ListDonationCenters(ctx)
				if err != nil {
					return fmt.Errorf("list centers: %w", err)
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tADDRESS")
				for _, c := range list {
					fmt.Fprintf(tw, "%d\t%s\t%s\n", c.ID, c.Name, c.Address)
				}
				return tw.Flush()
			})
		},
	}
}
