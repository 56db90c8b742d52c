package core

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/lister/internal/models"
	"github.com/JonMunkholm/lister/internal/store"
)

// CreateItemParams is the body of an item creation. The owning list comes
// from the route.
type CreateItemParams struct {
	Name       string         `json:"name" validate:"required,max=200"`
	Amount     pgtype.Numeric `json:"amount" validate:"-"`
	AmountUnit *string        `json:"amountUnit" validate:"omitnil,max=200"`
	Category   *string        `json:"category" validate:"omitnil,min=1,max=200"`
}

// UpdateItemParams is a partial item update. A nil Name, an invalid Amount
// or a nil AmountUnit keeps the stored value. Category distinguishes an
// omitted field from an explicit null, which clears it.
type UpdateItemParams struct {
	Name       *string                 `json:"name" validate:"omitnil,min=1,max=200"`
	Amount     pgtype.Numeric          `json:"amount" validate:"-"`
	AmountUnit *string                 `json:"amountUnit" validate:"omitnil,max=200"`
	Category   models.Optional[string] `json:"category" validate:"-"`
}

// ListItems returns the items of a list in creation order.
func (s *Service) ListItems(ctx context.Context, listID int64) ([]models.Item, error) {
	const op = "item.list"

	var items []models.Item
	err := s.observe(ctx, op, func(ctx context.Context) error {
		if _, err := s.store.GetList(ctx, listID); err != nil {
			return lookup(op, "list", listID, err)
		}
		var err error
		items, err = s.store.ListItemsByList(ctx, listID)
		return classify(op, "item", "", err)
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem returns one item.
func (s *Service) GetItem(ctx context.Context, id int64) (models.Item, error) {
	const op = "item.get"

	var item models.Item
	err := s.observe(ctx, op, func(ctx context.Context) error {
		var err error
		item, err = s.store.GetItem(ctx, id)
		return lookup(op, "item", id, err)
	})
	return item, err
}

// CreateItem adds an item to a list. In the same transaction it registers
// the category, if any, and records one use of the name in the catalog.
func (s *Service) CreateItem(ctx context.Context, listID int64, p CreateItemParams) (models.Item, error) {
	const op = "item.create"

	if err := validateStruct(op, p); err != nil {
		return models.Item{}, err
	}

	var item models.Item
	err := s.inTx(ctx, op, func(ctx context.Context, q store.Queries, log *slog.Logger) error {
		if p.Category != nil {
			if err := s.categories.EnsureExists(ctx, q, *p.Category); err != nil {
				return err
			}
		}

		if err := s.usage.RecordUse(ctx, q, p.Name, p.Category); err != nil {
			return err
		}

		var err error
		item, err = q.InsertItem(ctx, store.InsertItemParams{
			Name:       p.Name,
			Amount:     p.Amount,
			AmountUnit: p.AmountUnit,
			List:       listID,
			Category:   p.Category,
		})
		if err != nil {
			return classify(op, "list", strconv.FormatInt(listID, 10), err)
		}

		log.Info("item created", "item_id", item.ID, "list_id", listID, "name", item.Name)
		return nil
	})
	if err != nil {
		return models.Item{}, err
	}
	return item, nil
}

// UpdateItem applies a partial update. The names catalog entry of the
// effective name is pointed at the effective category on every call, without
// touching its count.
func (s *Service) UpdateItem(ctx context.Context, id int64, p UpdateItemParams) (models.Item, error) {
	const op = "item.update"

	if err := validateStruct(op, p); err != nil {
		return models.Item{}, err
	}
	if err := validateVar(op, "category", p.Category.Value, "omitnil,min=1,max=200"); err != nil {
		return models.Item{}, err
	}

	var item models.Item
	err := s.inTx(ctx, op, func(ctx context.Context, q store.Queries, log *slog.Logger) error {
		current, err := q.GetItem(ctx, id)
		if err != nil {
			return lookup(op, "item", id, err)
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

		// No-op when the name has no catalog entry.
		if _, err := q.SetNameCategory(ctx, name, category); err != nil {
			return classify(op, "name", name, err)
		}

		item, err = q.UpdateItem(ctx, store.UpdateItemParams{
			ID:         id,
			Name:       p.Name,
			Amount:     p.Amount,
			AmountUnit: p.AmountUnit,
			Category:   category,
		})
		if err != nil {
			return lookup(op, "item", id, err)
		}

		log.Info("item updated", "item_id", id, "name", item.Name)
		return nil
	})
	if err != nil {
		return models.Item{}, err
	}
	return item, nil
}

// ToggleItem flips the in-cart flag.
func (s *Service) ToggleItem(ctx context.Context, id int64) (models.Item, error) {
	const op = "item.toggle"

	var item models.Item
	err := s.observe(ctx, op, func(ctx context.Context) error {
		var err error
		item, err = s.store.ToggleItem(ctx, id)
		return lookup(op, "item", id, err)
	})
	if err != nil {
		return models.Item{}, err
	}
	return item, nil
}

// DeleteItem removes an item. The catalog count is left as is.
func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	const op = "item.delete"

	return s.observe(ctx, op, func(ctx context.Context) error {
		n, err := s.store.DeleteItem(ctx, id)
		if err != nil {
			return classify(op, "item", strconv.FormatInt(id, 10), err)
		}
		if n == 0 {
			return notFound(op, "item", id)
		}
		return nil
	})
}
