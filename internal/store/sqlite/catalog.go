package sqlite

import (
	"context"

	"github.com/JonMunkholm/lister/internal/models"
)

// Categories

func (q *Queries) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	cats := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, translate(err)
		}
		cats = append(cats, c)
	}
	return cats, translate(rows.Err())
}

func (q *Queries) GetCategory(ctx context.Context, id int64) (models.Category, error) {
	var c models.Category
	err := q.db.QueryRowContext(ctx, `SELECT id, name FROM categories WHERE id = ?`, id).Scan(&c.ID, &c.Name)
	return c, translate(err)
}

func (q *Queries) InsertCategory(ctx context.Context, name string) (models.Category, error) {
	var c models.Category
	err := q.db.QueryRowContext(ctx,
		`INSERT INTO categories (name) VALUES (?) RETURNING id, name`, name,
	).Scan(&c.ID, &c.Name)
	return c, translate(err)
}

func (q *Queries) InsertCategoryIfAbsent(ctx context.Context, name string) error {
	_, err := q.exec(ctx, `INSERT INTO categories (name) VALUES (?) ON CONFLICT (name) DO NOTHING`, name)
	return err
}

func (q *Queries) DeleteCategory(ctx context.Context, id int64) (int64, error) {
	return q.exec(ctx, `DELETE FROM categories WHERE id = ?`, id)
}

// Names catalog

const nameColumns = `id, name, count, category`

func (q *Queries) ListNames(ctx context.Context) ([]models.Name, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+nameColumns+` FROM names ORDER BY count DESC, name ASC`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	names := []models.Name{}
	for rows.Next() {
		var n models.Name
		if err := rows.Scan(&n.ID, &n.Name, &n.Count, &n.Category); err != nil {
			return nil, translate(err)
		}
		names = append(names, n)
	}
	return names, translate(rows.Err())
}

func (q *Queries) GetName(ctx context.Context, id int64) (models.Name, error) {
	var n models.Name
	err := q.db.QueryRowContext(ctx, `SELECT `+nameColumns+` FROM names WHERE id = ?`, id).
		Scan(&n.ID, &n.Name, &n.Count, &n.Category)
	return n, translate(err)
}

func (q *Queries) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM names WHERE name = ?)`, name).Scan(&exists)
	return exists, translate(err)
}

func (q *Queries) InsertName(ctx context.Context, name string, category *string) error {
	_, err := q.exec(ctx, `INSERT INTO names (name, category, count) VALUES (?, ?, 1)`, name, category)
	return err
}

func (q *Queries) IncrementName(ctx context.Context, name string, category *string) error {
	_, err := q.exec(ctx, `
		UPDATE names
		SET count = count + 1, category = COALESCE(?, category)
		WHERE name = ?`, category, name)
	return err
}

func (q *Queries) SetNameCategory(ctx context.Context, name string, category *string) (int64, error) {
	return q.exec(ctx, `UPDATE names SET category = ? WHERE name = ?`, category, name)
}

func (q *Queries) RetargetNameCategory(ctx context.Context, oldCategory, newCategory string) (int64, error) {
	return q.exec(ctx, `UPDATE names SET category = ? WHERE category = ?`, newCategory, oldCategory)
}

func (q *Queries) UpdateName(ctx context.Context, id int64, name string, category *string) (models.Name, error) {
	var n models.Name
	err := q.db.QueryRowContext(ctx, `
		UPDATE names SET name = ?, category = ?
		WHERE id = ?
		RETURNING `+nameColumns, name, category, id,
	).Scan(&n.ID, &n.Name, &n.Count, &n.Category)
	return n, translate(err)
}

func (q *Queries) DeleteName(ctx context.Context, id int64) (int64, error) {
	return q.exec(ctx, `DELETE FROM names WHERE id = ?`, id)
}

func (q *Queries) SearchNames(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT name FROM names ORDER BY count DESC, name ASC`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, translate(err)
		}
		names = append(names, name)
	}
	return names, translate(rows.Err())
}

func (q *Queries) CategoryMappings(ctx context.Context) (map[string]*string, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT name, category FROM names`)
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
