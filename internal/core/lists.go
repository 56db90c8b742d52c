package core

import (
	"context"
	"strconv"

	"github.com/JonMunkholm/lister/internal/models"
)

// ListParams is the body of a list create or rename.
type ListParams struct {
	Name string `json:"name" validate:"required,max=200"`
}

// ListLists returns every list with its item count.
func (s *Service) ListLists(ctx context.Context) ([]models.ListWithCount, error) {
	const op = "list.list"

	var lists []models.ListWithCount
	err := s.observe(ctx, op, func(ctx context.Context) error {
		var err error
		lists, err = s.store.ListLists(ctx)
		return classify(op, "list", "", err)
	})
	return lists, err
}

func (s *Service) GetList(ctx context.Context, id int64) (models.List, error) {
	const op = "list.get"

	var l models.List
	err := s.observe(ctx, op, func(ctx context.Context) error {
		var err error
		l, err = s.store.GetList(ctx, id)
		return lookup(op, "list", id, err)
	})
	return l, err
}

func (s *Service) CreateList(ctx context.Context, p ListParams) (models.List, error) {
	const op = "list.create"

	if err := validateStruct(op, p); err != nil {
		return models.List{}, err
	}

	var l models.List
	err := s.observe(ctx, op, func(ctx context.Context) error {
		var err error
		l, err = s.store.CreateList(ctx, p.Name)
		return classify(op, "list", p.Name, err)
	})
	return l, err
}

func (s *Service) RenameList(ctx context.Context, id int64, p ListParams) (models.List, error) {
	const op = "list.rename"

	if err := validateStruct(op, p); err != nil {
		return models.List{}, err
	}

	var l models.List
	err := s.observe(ctx, op, func(ctx context.Context) error {
		var err error
		l, err = s.store.RenameList(ctx, id, p.Name)
		return lookup(op, "list", id, err)
	})
	return l, err
}

// DeleteList removes a list together with its items.
func (s *Service) DeleteList(ctx context.Context, id int64) error {
	const op = "list.delete"

	return s.observe(ctx, op, func(ctx context.Context) error {
		n, err := s.store.DeleteList(ctx, id)
		if err != nil {
			return classify(op, "list", strconv.FormatInt(id, 10), err)
		}
		if n == 0 {
			return notFound(op, "list", id)
		}
		return nil
	})
}

// Stats returns row counts per table.
func (s *Service) Stats(ctx context.Context) (models.Stats, error) {
	const op = "stats"

	var st models.Stats
	err := s.observe(ctx, op, func(ctx context.Context) error {
		var err error
		st, err = s.store.Stats(ctx)
		return classify(op, "", "", err)
	})
	return st, err
}
