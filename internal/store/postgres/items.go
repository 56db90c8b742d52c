package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/JonMunkholm/lister/internal/models"
	"github.com/JonMunkholm/lister/internal/store"
)

const itemColumns = `id, name, amount, amount_unit, in_cart, list, category`

func (q *Queries) queryItem(ctx context.Context, sql string, args ...any) (models.Item, error) {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return models.Item{}, translate(err)
	}
	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByPos[models.Item])
	return item, translate(err)
}

func (q *Queries) ListItemsByList(ctx context.Context, listID int64) ([]models.Item, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+itemColumns+` FROM items WHERE list = $1 ORDER BY id ASC`, listID)
	if err != nil {
		return nil, translate(err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Item])
	return items, translate(err)
}

func (q *Queries) GetItem(ctx context.Context, id int64) (models.Item, error) {
	return q.queryItem(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
}

func (q *Queries) InsertItem(ctx context.Context, arg store.InsertItemParams) (models.Item, error) {
	return q.queryItem(ctx, `
		INSERT INTO items (name, amount, amount_unit, list, category, in_cart)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		RETURNING `+itemColumns,
		arg.Name, arg.Amount, arg.AmountUnit, arg.List, arg.Category,
	)
}

func (q *Queries) UpdateItem(ctx context.Context, arg store.UpdateItemParams) (models.Item, error) {
	return q.queryItem(ctx, `
		UPDATE items
		SET name = COALESCE($1, name),
		    amount = COALESCE($2, amount),
		    amount_unit = COALESCE($3, amount_unit),
		    category = $4
		WHERE id = $5
		RETURNING `+itemColumns,
		arg.Name, arg.Amount, arg.AmountUnit, arg.Category, arg.ID,
	)
}

func (q *Queries) ToggleItem(ctx context.Context, id int64) (models.Item, error) {
	return q.queryItem(ctx,
		`UPDATE items SET in_cart = NOT in_cart WHERE id = $1 RETURNING `+itemColumns, id)
}

func (q *Queries) DeleteItem(ctx context.Context, id int64) (int64, error) {
	return q.exec(ctx, `DELETE FROM items WHERE id = $1`, id)
}

func (q *Queries) RenameItemsByName(ctx context.Context, oldName, newName string) (int64, error) {
	return q.exec(ctx, `UPDATE items SET name = $1 WHERE name = $2`, newName, oldName)
}

func (q *Queries) SetItemCategoryByName(ctx context.Context, name string, category *string) (int64, error) {
	return q.exec(ctx, `UPDATE items SET category = $1 WHERE name = $2`, category, name)
}

func (q *Queries) RetargetItemCategory(ctx context.Context, oldCategory, newCategory string) (int64, error) {
	return q.exec(ctx, `UPDATE items SET category = $1 WHERE category = $2`, newCategory, oldCategory)
}
