package core

import (
	"context"

	"github.com/JonMunkholm/lister/internal/store"
)

// CategoryRegistry keeps a categories row for every category value written
// by an item or name mutation. It holds no state and works on the
// transaction handed to it by the caller.
type CategoryRegistry struct{}

// EnsureExists inserts name into categories unless it is already there.
// An existing row is never touched.
func (CategoryRegistry) EnsureExists(ctx context.Context, q store.Queries, name string) error {
	if err := q.InsertCategoryIfAbsent(ctx, name); err != nil {
		return classify("category.ensure", "category", name, err)
	}
	return nil
}
