package core

import (
	"context"

	"github.com/JonMunkholm/lister/internal/store"
)

// NameUsageTracker maintains the names catalog from item creations.
// Like CategoryRegistry it is stateless.
type NameUsageTracker struct{}

// RecordUse counts one more use of name. A new entry starts at count 1 with
// the given category. An existing entry keeps its category unless a non-nil
// one is given: a creation can reinforce or retarget the affinity but never
// erase it.
//
// Two transactions recording the same new name concurrently race on the
// unique constraint; the loser fails with a Conflict.
func (NameUsageTracker) RecordUse(ctx context.Context, q store.Queries, name string, category *string) error {
	const op = "name.record_use"

	exists, err := q.NameExists(ctx, name)
	if err != nil {
		return classify(op, "name", name, err)
	}

	if exists {
		err = q.IncrementName(ctx, name, category)
	} else {
		err = q.InsertName(ctx, name, category)
	}
	return classify(op, "name", name, err)
}
