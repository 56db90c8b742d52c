// Package cli implements listerctl, the admin command line for the
// shopping-list database.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/lister/internal/config"
	"github.com/JonMunkholm/lister/internal/database"
	"github.com/JonMunkholm/lister/internal/logging"
	"github.com/JonMunkholm/lister/internal/store"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Opener opens the configured store.
type Opener func(ctx context.Context, cfg config.DatabaseConfig) (store.Store, error)

// RootOptions holds global flags and the state shared by subcommands.
type RootOptions struct {
	Format string // "json" | "text"

	cfg  *config.Config
	open Opener
}

// NewRootCommand creates the root command. open defaults to database.Open.
func NewRootCommand(open Opener) *cobra.Command {
	if open == nil {
		open = database.Open
	}
	opts := &RootOptions{open: open}

	cmd := &cobra.Command{
		Use:   "listerctl",
		Short: "Administer the lister database",
		Long:  "Administrative commands for the shared shopping-list service: schema migration, data reset and row counts.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			// Logs go to stderr so --format json output stays parseable.
			slog.SetDefault(slog.New(logging.NewHandler(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)))
			opts.cfg = cfg
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))

	return cmd
}

// withStore opens the store for the duration of fn.
func (o *RootOptions) withStore(ctx context.Context, fn func(st store.Store) error) error {
	st, err := o.open(ctx, o.cfg.Database)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

// print writes v as indented JSON or passes it to text.
func (o *RootOptions) print(w io.Writer, v any, text func(io.Writer)) error {
	if o.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}
