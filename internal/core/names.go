package core

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/JonMunkholm/lister/internal/models"
	"github.com/JonMunkholm/lister/internal/store"
)

// UpdateNameParams is a partial update of a catalog entry. A nil Name keeps
// the current text; Category distinguishes omitted from explicit null.
type UpdateNameParams struct {
	Name     *string                 `json:"name" validate:"omitnil,min=1,max=200"`
	Category models.Optional[string] `json:"category" validate:"-"`
}

// ListNames returns the catalog, most used first.
func (s *Service) ListNames(ctx context.Context) ([]models.Name, error) {
	const op = "name.list"

	var names []models.Name
	err := s.observe(ctx, op, func(ctx context.Context) error {
		var err error
		names, err = s.store.ListNames(ctx)
		return classify(op, "name", "", err)
	})
	return names, err
}

// GetName returns one catalog entry.
func (s *Service) GetName(ctx context.Context, id int64) (models.Name, error) {
	const op = "name.get"

	var n models.Name
	err := s.observe(ctx, op, func(ctx context.Context) error {
		var err error
		n, err = s.store.GetName(ctx, id)
		return lookup(op, "name", id, err)
	})
	return n, err
}

// RenameOrUpdateName edits a catalog entry and carries the edit over to every
// item filed under the entry's current name: a new name renames those items
// and a new category recategorizes them. Both cascades select items by the
// name as it was before the call. Renaming onto another entry's name is a
// Conflict.
func (s *Service) RenameOrUpdateName(ctx context.Context, id int64, p UpdateNameParams) (models.Name, error) {
	const op = "name.update"

	if err := validateStruct(op, p); err != nil {
		return models.Name{}, err
	}
	if err := validateVar(op, "category", p.Category.Value, "omitnil,min=1,max=200"); err != nil {
		return models.Name{}, err
	}

	var (
		updated models.Name
		cascade int64
	)
	err := s.inTx(ctx, op, func(ctx context.Context, q store.Queries, log *slog.Logger) error {
		current, err := q.GetName(ctx, id)
		if err != nil {
			return lookup(op, "name", id, err)
		}

		name := current.Name
		if p.Name != nil {
			name = *p.Name
		}
		category := p.Category.Or(current.Category)

		if category != nil {
			if err := s.categories.EnsureExists(ctx, q, *category); err != nil {
				return err
			}
		}

		// Recategorize before renaming so both cascades match the old name.
		if !sameValue(category, current.Category) {
			n, err := q.SetItemCategoryByName(ctx, current.Name, category)
			if err != nil {
				return classify(op, "item", current.Name, err)
			}
			cascade += n
		}
		if name != current.Name {
			n, err := q.RenameItemsByName(ctx, current.Name, name)
			if err != nil {
				return classify(op, "item", current.Name, err)
			}
			cascade += n
		}

		updated, err = q.UpdateName(ctx, id, name, category)
		if err != nil {
			return classify(op, "name", name, err)
		}

		log.Info("name updated", "name_id", id, "from", current.Name, "to", updated.Name, "items", cascade)
		return nil
	})
	if err != nil {
		return models.Name{}, err
	}

	s.metrics.AddCascadeRows("items", cascade)
	return updated, nil
}

// DeleteName removes the catalog entry only; items are untouched.
func (s *Service) DeleteName(ctx context.Context, id int64) error {
	const op = "name.delete"

	return s.observe(ctx, op, func(ctx context.Context) error {
		n, err := s.store.DeleteName(ctx, id)
		if err != nil {
			return classify(op, "name", strconv.FormatInt(id, 10), err)
		}
		if n == 0 {
			return notFound(op, "name", id)
		}
		return nil
	})
}

// SearchNames returns catalog names for autocomplete, most used first.
func (s *Service) SearchNames(ctx context.Context) ([]string, error) {
	const op = "name.search"

	var names []string
	err := s.observe(ctx, op, func(ctx context.Context) error {
		var err error
		names, err = s.store.SearchNames(ctx)
		return classify(op, "name", "", err)
	})
	return names, err
}

// CategoryMappings returns each catalog name with its remembered category.
func (s *Service) CategoryMappings(ctx context.Context) (map[string]*string, error) {
	const op = "name.mappings"

	var m map[string]*string
	err := s.observe(ctx, op, func(ctx context.Context) error {
		var err error
		m, err = s.store.CategoryMappings(ctx)
		return classify(op, "name", "", err)
	})
	return m, err
}

func sameValue(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
