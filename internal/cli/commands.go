package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/lister/internal/admin"
	"github.com/JonMunkholm/lister/internal/models"
	"github.com/JonMunkholm/lister/internal/store"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the schema if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Opening the store applies the schema.
			return opts.withStore(cmd.Context(), func(st store.Store) error {
				return opts.print(cmd.OutOrStdout(), map[string]string{"status": "migrated"}, func(w io.Writer) {
					fmt.Fprintln(w, "schema is up to date")
				})
			})
		},
	}
}

// NewResetCommand creates the reset command.
func NewResetCommand(opts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every list, item, category and name",
		Long: `Delete all rows from every table and restart the id sequences.

This cannot be undone. Pass --yes to confirm.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}
			return opts.withStore(cmd.Context(), func(st store.Store) error {
				r := &admin.Resetter{Store: st, Timeout: opts.cfg.Database.ResetTimeout}
				removed, err := r.ResetAll(cmd.Context())
				if err != nil {
					return err
				}
				return opts.print(cmd.OutOrStdout(), removed, func(w io.Writer) {
					fmt.Fprintln(w, "removed:")
					printStats(w, removed)
				})
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the reset")
	return cmd
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print row counts per table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd.Context(), func(st store.Store) error {
				stats, err := st.Stats(cmd.Context())
				if err != nil {
					return err
				}
				return opts.print(cmd.OutOrStdout(), stats, func(w io.Writer) {
					printStats(w, stats)
				})
			})
		},
	}
}

func printStats(w io.Writer, s models.Stats) {
	fmt.Fprintf(w, "  lists:      %d\n", s.Lists)
	fmt.Fprintf(w, "  items:      %d\n", s.Items)
	fmt.Fprintf(w, "  categories: %d\n", s.Categories)
	fmt.Fprintf(w, "  names:      %d\n", s.Names)
}
