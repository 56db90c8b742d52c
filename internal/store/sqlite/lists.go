package sqlite

import (
	"context"

	"github.com/JonMunkholm/lister/internal/models"
)

func (q *Queries) ListLists(ctx context.Context) ([]models.ListWithCount, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT l.id, l.name, (SELECT COUNT(*) FROM items WHERE items.list = l.id)
		FROM lists l
		ORDER BY l.id ASC`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	lists := []models.ListWithCount{}
	for rows.Next() {
		var l models.ListWithCount
		if err := rows.Scan(&l.ID, &l.Name, &l.Count); err != nil {
			return nil, translate(err)
		}
		lists = append(lists, l)
	}
	return lists, translate(rows.Err())
}

func (q *Queries) GetList(ctx context.Context, id int64) (models.List, error) {
	var l models.List
	err := q.db.QueryRowContext(ctx, `SELECT id, name FROM lists WHERE id = ?`, id).Scan(&l.ID, &l.Name)
	return l, translate(err)
}

func (q *Queries) CreateList(ctx context.Context, name string) (models.List, error) {
	var l models.List
	err := q.db.QueryRowContext(ctx,
		`INSERT INTO lists (name) VALUES (?) RETURNING id, name`, name,
	).Scan(&l.ID, &l.Name)
	return l, translate(err)
}

func (q *Queries) RenameList(ctx context.Context, id int64, name string) (models.List, error) {
	var l models.List
	err := q.db.QueryRowContext(ctx,
		`UPDATE lists SET name = ? WHERE id = ? RETURNING id, name`, name, id,
	).Scan(&l.ID, &l.Name)
	return l, translate(err)
}

func (q *Queries) DeleteList(ctx context.Context, id int64) (int64, error) {
	return q.exec(ctx, `DELETE FROM lists WHERE id = ?`, id)
}

func (q *Queries) Stats(ctx context.Context) (models.Stats, error) {
	var st models.Stats
	err := q.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM lists),
			(SELECT COUNT(*) FROM items),
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM names)`,
	).Scan(&st.Lists, &st.Items, &st.Categories, &st.Names)
	return st, translate(err)
}
