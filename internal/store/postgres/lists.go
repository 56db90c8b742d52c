package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/JonMunkholm/lister/internal/models"
)

func (q *Queries) ListLists(ctx context.Context) ([]models.ListWithCount, error) {
	rows, err := q.db.Query(ctx, `
		SELECT l.id, l.name, (SELECT COUNT(*) FROM items WHERE items.list = l.id) AS count
		FROM lists l
		ORDER BY l.id ASC`)
	if err != nil {
		return nil, translate(err)
	}
	lists, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.ListWithCount])
	return lists, translate(err)
}

func (q *Queries) GetList(ctx context.Context, id int64) (models.List, error) {
	var l models.List
	err := q.db.QueryRow(ctx, `SELECT id, name FROM lists WHERE id = $1`, id).Scan(&l.ID, &l.Name)
	return l, translate(err)
}

func (q *Queries) CreateList(ctx context.Context, name string) (models.List, error) {
	var l models.List
	err := q.db.QueryRow(ctx,
		`INSERT INTO lists (name) VALUES ($1) RETURNING id, name`, name,
	).Scan(&l.ID, &l.Name)
	return l, translate(err)
}

func (q *Queries) RenameList(ctx context.Context, id int64, name string) (models.List, error) {
	var l models.List
	err := q.db.QueryRow(ctx,
		`UPDATE lists SET name = $1 WHERE id = $2 RETURNING id, name`, name, id,
	).Scan(&l.ID, &l.Name)
	return l, translate(err)
}

func (q *Queries) DeleteList(ctx context.Context, id int64) (int64, error) {
	return q.exec(ctx, `DELETE FROM lists WHERE id = $1`, id)
}

func (q *Queries) Stats(ctx context.Context) (models.Stats, error) {
	var st models.Stats
	err := q.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM lists),
			(SELECT COUNT(*) FROM items),
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM names)`,
	).Scan(&st.Lists, &st.Items, &st.Categories, &st.Names)
	return st, translate(err)
}
