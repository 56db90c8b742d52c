package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/lister/internal/store"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func strPtr(s string) *string { return &s }

func numeric(t *testing.T, s string) pgtype.Numeric {
	t.Helper()
	var n pgtype.Numeric
	require.NoError(t, n.Scan(s))
	return n
}

func TestSQLiteStore(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	list, err := s.CreateList(ctx, "Groceries")
	require.NoError(t, err)
	assert.NotZero(t, list.ID)

	t.Run("InsertItem round-trips nullable columns", func(t *testing.T) {
		it, err := s.InsertItem(ctx, store.InsertItemParams{
			Name:       "Milk",
			Amount:     numeric(t, "1.50"),
			AmountUnit: strPtr("l"),
			List:       list.ID,
			Category:   strPtr("Dairy"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Milk", it.Name)
		assert.False(t, it.InCart)
		require.NotNil(t, it.Category)
		assert.Equal(t, "Dairy", *it.Category)

		v, err := it.Amount.Value()
		require.NoError(t, err)
		assert.Equal(t, "1.50", v)

		bare, err := s.InsertItem(ctx, store.InsertItemParams{Name: "Salt", List: list.ID})
		require.NoError(t, err)
		assert.False(t, bare.Amount.Valid)
		assert.Nil(t, bare.AmountUnit)
		assert.Nil(t, bare.Category)
	})

	t.Run("InsertItem with unknown list is a foreign key violation", func(t *testing.T) {
		_, err := s.InsertItem(ctx, store.InsertItemParams{Name: "Ghost", List: 9999})
		assert.ErrorIs(t, err, store.ErrForeignKeyViolation)
	})

	t.Run("UpdateItem keeps omitted columns and writes category exactly", func(t *testing.T) {
		it, err := s.InsertItem(ctx, store.InsertItemParams{
			Name: "Eggs", Amount: numeric(t, "12"), List: list.ID, Category: strPtr("Dairy"),
		})
		require.NoError(t, err)

		updated, err := s.UpdateItem(ctx, store.UpdateItemParams{ID: it.ID})
		require.NoError(t, err)
		assert.Equal(t, "Eggs", updated.Name)
		assert.True(t, updated.Amount.Valid)
		assert.Nil(t, updated.Category)
	})

	t.Run("ToggleItem flips in_cart", func(t *testing.T) {
		it, err := s.InsertItem(ctx, store.InsertItemParams{Name: "Bread", List: list.ID})
		require.NoError(t, err)

		toggled, err := s.ToggleItem(ctx, it.ID)
		require.NoError(t, err)
		assert.True(t, toggled.InCart)

		toggled, err = s.ToggleItem(ctx, it.ID)
		require.NoError(t, err)
		assert.False(t, toggled.InCart)
	})

	t.Run("GetItem of missing id returns ErrNoRows", func(t *testing.T) {
		_, err := s.GetItem(ctx, 424242)
		assert.ErrorIs(t, err, store.ErrNoRows)
	})

	t.Run("duplicate category is a unique violation", func(t *testing.T) {
		_, err := s.InsertCategory(ctx, "Bakery")
		require.NoError(t, err)
		_, err = s.InsertCategory(ctx, "Bakery")
		assert.ErrorIs(t, err, store.ErrUniqueViolation)

		require.NoError(t, s.InsertCategoryIfAbsent(ctx, "Bakery"))
		cats, err := s.ListCategories(ctx)
		require.NoError(t, err)
		assert.Len(t, cats, 1)
	})

	t.Run("IncrementName keeps category when none given", func(t *testing.T) {
		require.NoError(t, s.InsertName(ctx, "Apple", strPtr("Fruit")))
		require.NoError(t, s.IncrementName(ctx, "Apple", nil))

		names, err := s.ListNames(ctx)
		require.NoError(t, err)
		require.Len(t, names, 1)
		assert.Equal(t, int64(2), names[0].Count)
		require.NotNil(t, names[0].Category)
		assert.Equal(t, "Fruit", *names[0].Category)
	})

	t.Run("DeleteList cascades to items", func(t *testing.T) {
		other, err := s.CreateList(ctx, "Hardware")
		require.NoError(t, err)
		_, err = s.InsertItem(ctx, store.InsertItemParams{Name: "Nails", List: other.ID})
		require.NoError(t, err)

		n, err := s.DeleteList(ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		items, err := s.ListItemsByList(ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestSQLiteStore_WithTxRollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.WithTx(ctx, func(q store.Queries) error {
		if _, err := q.InsertCategory(ctx, "Produce"); err != nil {
			return err
		}
		_, err := q.InsertCategory(ctx, "Produce")
		return err
	})
	require.ErrorIs(t, err, store.ErrUniqueViolation)

	cats, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestSQLiteStore_Reset(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	l, err := s.CreateList(ctx, "Weekly")
	require.NoError(t, err)
	_, err = s.InsertItem(ctx, store.InsertItemParams{Name: "Tea", List: l.ID})
	require.NoError(t, err)
	require.NoError(t, s.InsertName(ctx, "Tea", nil))

	require.NoError(t, s.Reset(ctx))

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, st.Lists+st.Items+st.Categories+st.Names)

	l, err = s.CreateList(ctx, "Weekly")
	require.NoError(t, err)
	assert.Equal(t, int64(1), l.ID)
}
