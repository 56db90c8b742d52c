package core

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/JonMunkholm/lister/internal/models"
	"github.com/JonMunkholm/lister/internal/store"
)

// CategoryParams is the body of a category create or rename.
type CategoryParams struct {
	Name string `json:"name" validate:"required,max=200"`
}

// ListCategories returns all categories by name.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	const op = "category.list"

	var cats []models.Category
	err := s.observe(ctx, op, func(ctx context.Context) error {
		var err error
		cats, err = s.store.ListCategories(ctx)
		return classify(op, "category", "", err)
	})
	return cats, err
}

// GetCategory returns one category.
func (s *Service) GetCategory(ctx context.Context, id int64) (models.Category, error) {
	const op = "category.get"

	var cat models.Category
	err := s.observe(ctx, op, func(ctx context.Context) error {
		var err error
		cat, err = s.store.GetCategory(ctx, id)
		return lookup(op, "category", id, err)
	})
	return cat, err
}

// CreateCategory adds a category. A duplicate name is a Conflict.
func (s *Service) CreateCategory(ctx context.Context, p CategoryParams) (models.Category, error) {
	const op = "category.create"

	if err := validateStruct(op, p); err != nil {
		return models.Category{}, err
	}

	var cat models.Category
	err := s.observe(ctx, op, func(ctx context.Context) error {
		var err error
		cat, err = s.store.InsertCategory(ctx, p.Name)
		return classify(op, "category", p.Name, err)
	})
	if err != nil {
		return models.Category{}, err
	}
	return cat, nil
}

// RenameCategory moves every item and catalog entry filed under the old
// category value to the new one. The new value is inserted as a fresh row,
// references are retargeted, then the old row is deleted, all in one
// transaction. The result carries the new row's id.
//
// Renaming onto any existing category, including the category itself, is a
// Conflict and changes nothing.
func (s *Service) RenameCategory(ctx context.Context, id int64, p CategoryParams) (models.Category, error) {
	const op = "category.rename"

	if err := validateStruct(op, p); err != nil {
		return models.Category{}, err
	}

	var (
		renamed        models.Category
		nItems, nNames int64
	)
	err := s.inTx(ctx, op, func(ctx context.Context, q store.Queries, log *slog.Logger) error {
		old, err := q.GetCategory(ctx, id)
		if err != nil {
			return lookup(op, "category", id, err)
		}

		renamed, err = q.InsertCategory(ctx, p.Name)
		if err != nil {
			return classify(op, "category", p.Name, err)
		}

		if nItems, err = q.RetargetItemCategory(ctx, old.Name, renamed.Name); err != nil {
			return classify(op, "item", old.Name, err)
		}
		if nNames, err = q.RetargetNameCategory(ctx, old.Name, renamed.Name); err != nil {
			return classify(op, "name", old.Name, err)
		}

		if _, err := q.DeleteCategory(ctx, old.ID); err != nil {
			return classify(op, "category", strconv.FormatInt(old.ID, 10), err)
		}

		log.Info("category renamed",
			"from", old.Name, "to", renamed.Name,
			"items", nItems, "names", nNames)
		return nil
	})
	if err != nil {
		return models.Category{}, err
	}

	s.metrics.AddCascadeRows("items", nItems)
	s.metrics.AddCascadeRows("names", nNames)
	return renamed, nil
}

// DeleteCategory removes the category row only. Items and catalog entries
// keep the old value.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	const op = "category.delete"

	return s.observe(ctx, op, func(ctx context.Context) error {
		n, err := s.store.DeleteCategory(ctx, id)
		if err != nil {
			return classify(op, "category", strconv.FormatInt(id, 10), err)
		}
		if n == 0 {
			return notFound(op, "category", id)
		}
		return nil
	})
}
