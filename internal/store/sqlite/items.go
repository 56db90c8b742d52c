package sqlite

import (
	"context"

	"github.com/JonMunkholm/lister/internal/models"
	"github.com/JonMunkholm/lister/internal/store"
)

const itemColumns = `id, name, amount, amount_unit, in_cart, list, category`

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (models.Item, error) {
	var it models.Item
	err := row.Scan(&it.ID, &it.Name, &it.Amount, &it.AmountUnit, &it.InCart, &it.List, &it.Category)
	return it, err
}

func (q *Queries) queryItem(ctx context.Context, query string, args ...any) (models.Item, error) {
	it, err := scanItem(q.db.QueryRowContext(ctx, query, args...))
	return it, translate(err)
}

func (q *Queries) ListItemsByList(ctx context.Context, listID int64) ([]models.Item, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE list = ? ORDER BY id ASC`, listID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, translate(err)
		}
		items = append(items, it)
	}
	return items, translate(rows.Err())
}

func (q *Queries) GetItem(ctx context.Context, id int64) (models.Item, error) {
	return q.queryItem(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
}

func (q *Queries) InsertItem(ctx context.Context, arg store.InsertItemParams) (models.Item, error) {
	return q.queryItem(ctx, `
		INSERT INTO items (name, amount, amount_unit, list, category, in_cart)
		VALUES (?, ?, ?, ?, ?, 0)
		RETURNING `+itemColumns,
		arg.Name, arg.Amount, arg.AmountUnit, arg.List, arg.Category,
	)
}

func (q *Queries) UpdateItem(ctx context.Context, arg store.UpdateItemParams) (models.Item, error) {
	return q.queryItem(ctx, `
		UPDATE items
		SET name = COALESCE(?, name),
		    amount = COALESCE(?, amount),
		    amount_unit = COALESCE(?, amount_unit),
		    category = ?
		WHERE id = ?
		RETURNING `+itemColumns,
		arg.Name, arg.Amount, arg.AmountUnit, arg.Category, arg.ID,
	)
}

func (q *Queries) ToggleItem(ctx context.Context, id int64) (models.Item, error) {
	return q.queryItem(ctx,
		`UPDATE items SET in_cart = NOT in_cart WHERE id = ? RETURNING `+itemColumns, id)
}

func (q *Queries) DeleteItem(ctx context.Context, id int64) (int64, error) {
	return q.exec(ctx, `DELETE FROM items WHERE id = ?`, id)
}

func (q *Queries) RenameItemsByName(ctx context.Context, oldName, newName string) (int64, error) {
	return q.exec(ctx, `UPDATE items SET name = ? WHERE name = ?`, newName, oldName)
}

func (q *Queries) SetItemCategoryByName(ctx context.Context, name string, category *string) (int64, error) {
	return q.exec(ctx, `UPDATE items SET category = ? WHERE name = ?`, category, name)
}

func (q *Queries) RetargetItemCategory(ctx context.Context, oldCategory, newCategory string) (int64, error) {
	return q.exec(ctx, `UPDATE items SET category = ? WHERE category = ?`, newCategory, oldCategory)
}
