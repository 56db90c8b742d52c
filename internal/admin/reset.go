// Package admin provides administrative operations for database management.
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JonMunkholm/lister/internal/models"
	"github.com/JonMunkholm/lister/internal/store"
)

// DefaultResetTimeout bounds a reset when no timeout is configured.
const DefaultResetTimeout = 30 * time.Second

// Resetter wipes every table of a store.
type Resetter struct {
	Store   store.Store
	Timeout time.Duration
}

// ResetAll deletes all lists, items, categories and catalog names and
// restarts the id sequences. It returns the row counts that were removed.
// This is a destructive operation - use with caution.
func (r *Resetter) ResetAll(ctx context.Context) (models.Stats, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultResetTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	before, err := r.Store.Stats(ctx)
	if err != nil {
		return models.Stats{}, fmt.Errorf("count rows: %w", err)
	}

	if err := r.Store.Reset(ctx); err != nil {
		return models.Stats{}, fmt.Errorf("reset: %w", err)
	}

	slog.Warn("database reset",
		"lists", before.Lists,
		"items", before.Items,
		"categories", before.Categories,
		"names", before.Names,
	)
	return before, nil
}
