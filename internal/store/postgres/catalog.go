package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/JonMunkholm/lister/internal/models"
)

// Categories

func (q *Queries) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := q.db.Query(ctx, `SELECT id, name FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, translate(err)
	}
	cats, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Category])
	return cats, translate(err)
}

func (q *Queries) GetCategory(ctx context.Context, id int64) (models.Category, error) {
	var c models.Category
	err := q.db.QueryRow(ctx, `SELECT id, name FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	return c, translate(err)
}

func (q *Queries) InsertCategory(ctx context.Context, name string) (models.Category, error) {
	var c models.Category
	err := q.db.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id, name`, name,
	).Scan(&c.ID, &c.Name)
	return c, translate(err)
}

func (q *Queries) InsertCategoryIfAbsent(ctx context.Context, name string) error {
	_, err := q.exec(ctx, `INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
	return err
}

func (q *Queries) DeleteCategory(ctx context.Context, id int64) (int64, error) {
	return q.exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
}

// Names catalog

const nameColumns = `id, name, count, category`

func (q *Queries) ListNames(ctx context.Context) ([]models.Name, error) {
	rows, err := q.db.Query(ctx, `SELECT `+nameColumns+` FROM names ORDER BY count DESC, name ASC`)
	if err != nil {
		return nil, translate(err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Name])
	return names, translate(err)
}

func (q *Queries) GetName(ctx context.Context, id int64) (models.Name, error) {
	var n models.Name
	err := q.db.QueryRow(ctx, `SELECT `+nameColumns+` FROM names WHERE id = $1`, id).
		Scan(&n.ID, &n.Name, &n.Count, &n.Category)
	return n, translate(err)
}

func (q *Queries) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM names WHERE name = $1)`, name).Scan(&exists)
	return exists, translate(err)
}

func (q *Queries) InsertName(ctx context.Context, name string, category *string) error {
	_, err := q.exec(ctx, `INSERT INTO names (name, category, count) VALUES ($1, $2, 1)`, name, category)
	return err
}

func (q *Queries) IncrementName(ctx context.Context, name string, category *string) error {
	_, err := q.exec(ctx, `
		UPDATE names
		SET count = count + 1, category = COALESCE($2, category)
		WHERE name = $1`, name, category)
	return err
}

func (q *Queries) SetNameCategory(ctx context.Context, name string, category *string) (int64, error) {
	return q.exec(ctx, `UPDATE names SET category = $2 WHERE name = $1`, name, category)
}

func (q *Queries) RetargetNameCategory(ctx context.Context, oldCategory, newCategory string) (int64, error) {
	return q.exec(ctx, `UPDATE names SET category = $1 WHERE category = $2`, newCategory, oldCategory)
}

func (q *Queries) UpdateName(ctx context.Context, id int64, name string, category *string) (models.Name, error) {
	var n models.Name
	err := q.db.QueryRow(ctx, `
		UPDATE names SET name = $1, category = $2
		WHERE id = $3
		RETURNING `+nameColumns, name, category, id,
	).Scan(&n.ID, &n.Name, &n.Count, &n.Category)
	return n, translate(err)
}

func (q *Queries) DeleteName(ctx context.Context, id int64) (int64, error) {
	return q.exec(ctx, `DELETE FROM names WHERE id = $1`, id)
}

func (q *Queries) SearchNames(ctx context.Context) ([]string, error) {
	rows, err := q.db.Query(ctx, `SELECT name FROM names ORDER BY count DESC, name ASC`)
	if err != nil {
		return nil, translate(err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	return names, translate(err)
}

func (q *Queries) CategoryMappings(ctx context.Context) (map[string]*string, error) {
	rows, err := q.db.Query(ctx, `SELECT name, category FROM names`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	mappings := make(map[string]*string)
	for rows.Next() {
		var (
			name     string
			category *string
		)
		if err := rows.Scan(&name, &category); err != nil {
			return nil, translate(err)
		}
		mappings[name] = category
	}
	return mappings, translate(rows.Err())
}
