// Package store defines the persistence contract for lists, items,
// categories and the names catalog.
//
// Two backends implement it: store/postgres (pgx, production) and
// store/sqlite (pure Go SQLite, local use and tests). Both translate driver
// errors into the sentinel errors below so callers never inspect
// driver-specific types.
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/lister/internal/models"
)

var (
	// ErrNoRows is returned when a single-row query matches nothing.
	ErrNoRows = errors.New("no rows in result set")

	// ErrUniqueViolation is returned when a write collides with a unique
	// constraint (categories.name, names.name).
	ErrUniqueViolation = errors.New("unique constraint violation")

	// ErrForeignKeyViolation is returned when a write references a missing
	// row (items.list).
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")
)

// InsertItemParams holds the columns of a new item. InCart is always false.
type InsertItemParams struct {
	Name       string
	Amount     pgtype.Numeric
	AmountUnit *string
	List       int64
	Category   *string
}

// UpdateItemParams holds an item update. Name, Amount and AmountUnit keep
// the stored value when nil/invalid; Category is written exactly.
type UpdateItemParams struct {
	ID         int64
	Name       *string
	Amount     pgtype.Numeric
	AmountUnit *string
	Category   *string
}

// Queries is the set of statements available both on the pool and inside a
// transaction. Statements returning a row return ErrNoRows when nothing
// matched; statements returning int64 report affected rows.
type Queries interface {
	ListLists(ctx context.Context) ([]models.ListWithCount, error)
	GetList(ctx context.Context, id int64) (models.List, error)
	CreateList(ctx context.Context, name string) (models.List, error)
	RenameList(ctx context.Context, id int64, name string) (models.List, error)
	DeleteList(ctx context.Context, id int64) (int64, error)

	ListItemsByList(ctx context.Context, listID int64) ([]models.Item, error)
	GetItem(ctx context.Context, id int64) (models.Item, error)
	InsertItem(ctx context.Context, arg InsertItemParams) (models.Item, error)
	UpdateItem(ctx context.Context, arg UpdateItemParams) (models.Item, error)
	ToggleItem(ctx context.Context, id int64) (models.Item, error)
	DeleteItem(ctx context.Context, id int64) (int64, error)
	RenameItemsByName(ctx context.Context, oldName, newName string) (int64, error)
	SetItemCategoryByName(ctx context.Context, name string, category *string) (int64, error)
	RetargetItemCategory(ctx context.Context, oldCategory, newCategory string) (int64, error)

	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int64) (models.Category, error)
	InsertCategory(ctx context.Context, name string) (models.Category, error)
	InsertCategoryIfAbsent(ctx context.Context, name string) error
	DeleteCategory(ctx context.Context, id int64) (int64, error)

	ListNames(ctx context.Context) ([]models.Name, error)
	GetName(ctx context.Context, id int64) (models.Name, error)
	NameExists(ctx context.Context, name string) (bool, error)
	InsertName(ctx context.Context, name string, category *string) error
	IncrementName(ctx context.Context, name string, category *string) error
	SetNameCategory(ctx context.Context, name string, category *string) (int64, error)
	RetargetNameCategory(ctx context.Context, oldCategory, newCategory string) (int64, error)
	UpdateName(ctx context.Context, id int64, name string, category *string) (models.Name, error)
	DeleteName(ctx context.Context, id int64) (int64, error)
	SearchNames(ctx context.Context) ([]string, error)
	CategoryMappings(ctx context.Context) (map[string]*string, error)

	Stats(ctx context.Context) (models.Stats, error)
}

// Store is a Queries bound to a connection pool plus lifecycle operations.
type Store interface {
	Queries

	// WithTx runs fn inside one transaction. The transaction commits when fn
	// returns nil and rolls back on any error or panic.
	WithTx(ctx context.Context, fn func(q Queries) error) error

	// Migrate creates the schema if it does not exist.
	Migrate(ctx context.Context) error

	// Reset deletes every row and restarts identities.
	Reset(ctx context.Context) error

	Ping(ctx context.Context) error
	Close() error
}
