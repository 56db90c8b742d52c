package core

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/lister/internal/metrics"
	"github.com/JonMunkholm/lister/internal/models"
	"github.com/JonMunkholm/lister/internal/store"
	"github.com/JonMunkholm/lister/internal/store/sqlite"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := sqlite.New(filepath.Join(t.TempDir(), "lister.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func newTestService(t *testing.T) (*Service, store.Store, models.List) {
	t.Helper()
	st := newTestStore(t)
	svc := NewService(st, WithMetrics(metrics.New("test")))
	list, err := svc.CreateList(context.Background(), ListParams{Name: "Groceries"})
	require.NoError(t, err)
	return svc, st, list
}

func ptr(s string) *string { return &s }

func num(t *testing.T, s string) pgtype.Numeric {
	t.Helper()
	var n pgtype.Numeric
	require.NoError(t, n.Scan(s))
	return n
}

func findName(t *testing.T, svc *Service, name string) (models.Name, bool) {
	t.Helper()
	names, err := svc.ListNames(context.Background())
	require.NoError(t, err)
	for _, n := range names {
		if n.Name == name {
			return n, true
		}
	}
	return models.Name{}, false
}

func categoryNames(t *testing.T, svc *Service) []string {
	t.Helper()
	cats, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, c.Name)
	}
	return out
}

func categoryID(t *testing.T, svc *Service, name string) int64 {
	t.Helper()
	cats, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	for _, c := range cats {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("category %q not found", name)
	return 0
}

func TestCreateItem_RegistersCategoryAndName(t *testing.T) {
	svc, _, list := newTestService(t)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Milk", Category: ptr("Dairy")})
	require.NoError(t, err)

	assert.NotZero(t, item.ID)
	assert.Equal(t, "Milk", item.Name)
	assert.False(t, item.InCart)
	require.NotNil(t, item.Category)
	assert.Equal(t, "Dairy", *item.Category)

	n, ok := findName(t, svc, "Milk")
	require.True(t, ok)
	assert.Equal(t, int64(1), n.Count)
	require.NotNil(t, n.Category)
	assert.Equal(t, "Dairy", *n.Category)

	assert.Equal(t, []string{"Dairy"}, categoryNames(t, svc))
}

func TestCreateItem_NilCategoryKeepsRememberedCategory(t *testing.T) {
	svc, _, list := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Milk", Category: ptr("Dairy")})
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Milk"})
	require.NoError(t, err)

	n, ok := findName(t, svc, "Milk")
	require.True(t, ok)
	assert.Equal(t, int64(2), n.Count)
	require.NotNil(t, n.Category)
	assert.Equal(t, "Dairy", *n.Category)
}

func TestCreateItem_NewCategoryOverwritesAffinity(t *testing.T) {
	svc, _, list := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Milk", Category: ptr("Dairy")})
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Milk", Category: ptr("Drinks")})
	require.NoError(t, err)

	n, _ := findName(t, svc, "Milk")
	require.NotNil(t, n.Category)
	assert.Equal(t, "Drinks", *n.Category)
	assert.ElementsMatch(t, []string{"Dairy", "Drinks"}, categoryNames(t, svc))
}

func TestCreateItem_CountIsMonotonic(t *testing.T) {
	svc, _, list := newTestService(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 5; i++ {
		item, err := svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Eggs"})
		require.NoError(t, err)
		ids = append(ids, item.ID)
	}

	_, err := svc.UpdateItem(ctx, ids[0], UpdateItemParams{Name: ptr("Bread")})
	require.NoError(t, err)
	_, err = svc.ToggleItem(ctx, ids[1])
	require.NoError(t, err)
	require.NoError(t, svc.DeleteItem(ctx, ids[2]))

	n, ok := findName(t, svc, "Eggs")
	require.True(t, ok)
	assert.Equal(t, int64(5), n.Count)
}

func TestCreateItem_UnknownListIsConflict(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, 9999, CreateItemParams{Name: "Ghost", Category: ptr("Spirits")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)

	// Rolled back: no category and no catalog entry.
	stats, err := st.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Categories)
	assert.Zero(t, stats.Names)
}

func TestCreateItem_Validation(t *testing.T) {
	svc, _, list := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		params  CreateItemParams
		wantMsg string
	}{
		{"empty name", CreateItemParams{Name: ""}, "name cannot be empty"},
		{"empty category", CreateItemParams{Name: "Milk", Category: ptr("")}, "category cannot be empty"},
		{"long name", CreateItemParams{Name: strings.Repeat("x", MaxLength+1)}, "name must not exceed 200 characters"},
		{"long unit", CreateItemParams{Name: "Milk", AmountUnit: ptr(strings.Repeat("l", MaxLength+1))}, "amountUnit must not exceed 200 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateItem(ctx, list.ID, tt.params)
			require.ErrorIs(t, err, ErrValidation)
			var e *Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, tt.wantMsg, e.Msg)
		})
	}
}

func TestUpdateItem_PartialUpdateKeepsOmittedFields(t *testing.T) {
	svc, _, list := newTestService(t)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, list.ID, CreateItemParams{
		Name: "Flour", Amount: num(t, "1"), AmountUnit: ptr("kg"), Category: ptr("Baking"),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateItem(ctx, item.ID, UpdateItemParams{Amount: num(t, "5")})
	require.NoError(t, err)

	assert.Equal(t, "Flour", updated.Name)
	v, err := updated.Amount.Value()
	require.NoError(t, err)
	assert.Equal(t, "5", v)
	require.NotNil(t, updated.AmountUnit)
	assert.Equal(t, "kg", *updated.AmountUnit)
	require.NotNil(t, updated.Category)
	assert.Equal(t, "Baking", *updated.Category)
}

func TestUpdateItem_ExplicitNullCategoryClearsItemAndName(t *testing.T) {
	svc, _, list := newTestService(t)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Milk", Category: ptr("Dairy")})
	require.NoError(t, err)

	updated, err := svc.UpdateItem(ctx, item.ID, UpdateItemParams{Category: models.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, updated.Category)

	n, ok := findName(t, svc, "Milk")
	require.True(t, ok)
	assert.Nil(t, n.Category)
	assert.Equal(t, int64(1), n.Count)

	// The category row itself is left alone.
	assert.Equal(t, []string{"Dairy"}, categoryNames(t, svc))
}

func TestUpdateItem_RetargetsCatalogOfEffectiveName(t *testing.T) {
	svc, _, list := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Bread", Category: ptr("Bakery")})
	require.NoError(t, err)
	item, err := svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Rolls", Category: ptr("Frozen")})
	require.NoError(t, err)

	// Renaming the item files Bread under the item's current category.
	updated, err := svc.UpdateItem(ctx, item.ID, UpdateItemParams{Name: ptr("Bread")})
	require.NoError(t, err)
	assert.Equal(t, "Bread", updated.Name)

	bread, _ := findName(t, svc, "Bread")
	require.NotNil(t, bread.Category)
	assert.Equal(t, "Frozen", *bread.Category)
	assert.Equal(t, int64(1), bread.Count)

	rolls, _ := findName(t, svc, "Rolls")
	assert.Equal(t, int64(1), rolls.Count)
}

func TestUpdateItem_NewCategoryIsRegistered(t *testing.T) {
	svc, _, list := newTestService(t)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Apples"})
	require.NoError(t, err)

	_, err = svc.UpdateItem(ctx, item.ID, UpdateItemParams{Category: models.Some("Produce")})
	require.NoError(t, err)

	assert.Equal(t, []string{"Produce"}, categoryNames(t, svc))
	n, _ := findName(t, svc, "Apples")
	require.NotNil(t, n.Category)
	assert.Equal(t, "Produce", *n.Category)
}

func TestUpdateItem_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.UpdateItem(context.Background(), 404, UpdateItemParams{Name: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleItem(t *testing.T) {
	svc, _, list := newTestService(t)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Tea"})
	require.NoError(t, err)

	toggled, err := svc.ToggleItem(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, toggled.InCart)

	_, err = svc.ToggleItem(ctx, 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteItem(t *testing.T) {
	svc, _, list := newTestService(t)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Jam"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(ctx, item.ID))
	assert.ErrorIs(t, svc.DeleteItem(ctx, item.ID), ErrNotFound)

	n, ok := findName(t, svc, "Jam")
	require.True(t, ok, "catalog entry survives item deletion")
	assert.Equal(t, int64(1), n.Count)
}

func TestCreateCategory_Duplicate(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, CategoryParams{Name: "Dairy"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, CategoryParams{Name: "Dairy"})
	require.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), `category "Dairy" already exists`)
}

func TestEnsureExists_Idempotent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	var reg CategoryRegistry

	for i := 0; i < 2; i++ {
		require.NoError(t, st.WithTx(ctx, func(q store.Queries) error {
			return reg.EnsureExists(ctx, q, "Snacks")
		}))
	}

	cats, err := st.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Snacks", cats[0].Name)
}

func TestRenameCategory_CascadesToItemsAndNames(t *testing.T) {
	svc, _, list := newTestService(t)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Milk", Category: ptr("Dairy")})
	require.NoError(t, err)
	other, err := svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Cheese", Category: ptr("Dairy")})
	require.NoError(t, err)
	untouched, err := svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Apples", Category: ptr("Produce")})
	require.NoError(t, err)

	oldID := categoryID(t, svc, "Dairy")
	renamed, err := svc.RenameCategory(ctx, oldID, CategoryParams{Name: "Refrigerated"})
	require.NoError(t, err)
	assert.Equal(t, "Refrigerated", renamed.Name)
	assert.NotEqual(t, oldID, renamed.ID)

	for _, id := range []int64{item.ID, other.ID} {
		got, err := svc.GetItem(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, got.Category)
		assert.Equal(t, "Refrigerated", *got.Category)
	}
	got, err := svc.GetItem(ctx, untouched.ID)
	require.NoError(t, err)
	assert.Equal(t, "Produce", *got.Category)

	mappings, err := svc.CategoryMappings(ctx)
	require.NoError(t, err)
	for name, cat := range mappings {
		require.NotNil(t, cat, name)
		assert.NotEqual(t, "Dairy", *cat, name)
	}
	assert.Equal(t, "Refrigerated", *mappings["Milk"])

	assert.ElementsMatch(t, []string{"Produce", "Refrigerated"}, categoryNames(t, svc))
	_, err = svc.GetCategory(ctx, oldID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRenameCategory_OntoExistingIsConflict(t *testing.T) {
	svc, st, list := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Milk", Category: ptr("Dairy")})
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, CategoryParams{Name: "Cold"})
	require.NoError(t, err)

	before := snapshot(t, st, list.ID)

	_, err = svc.RenameCategory(ctx, categoryID(t, svc, "Dairy"), CategoryParams{Name: "Cold"})
	require.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), `"Cold" already exists`)

	assert.Equal(t, before, snapshot(t, st, list.ID))
}

func TestRenameCategory_SameNameIsConflict(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, CategoryParams{Name: "Dairy"})
	require.NoError(t, err)

	_, err = svc.RenameCategory(ctx, cat.ID, CategoryParams{Name: "Dairy"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRenameCategory_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.RenameCategory(context.Background(), 77, CategoryParams{Name: "X"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRenameCategory_AtomicOnFailure(t *testing.T) {
	steps := []string{"RetargetItemCategory", "RetargetNameCategory", "DeleteCategory"}

	for _, step := range steps {
		t.Run(step, func(t *testing.T) {
			st := newTestStore(t)
			ctx := context.Background()
			setup := NewService(st)

			list, err := setup.CreateList(ctx, ListParams{Name: "Weekly"})
			require.NoError(t, err)
			_, err = setup.CreateItem(ctx, list.ID, CreateItemParams{Name: "Milk", Category: ptr("Dairy")})
			require.NoError(t, err)
			_, err = setup.CreateItem(ctx, list.ID, CreateItemParams{Name: "Yogurt", Category: ptr("Dairy")})
			require.NoError(t, err)
			id := categoryID(t, setup, "Dairy")

			before := snapshot(t, st, list.ID)

			svc := NewService(&failingStore{Store: st, failOn: step})
			_, err = svc.RenameCategory(ctx, id, CategoryParams{Name: "Refrigerated"})
			require.Error(t, err)
			assert.ErrorIs(t, err, errInjected)
			assert.ErrorIs(t, err, ErrStorage)

			assert.Equal(t, before, snapshot(t, st, list.ID))
		})
	}
}

func TestRenameCategory_ConcurrentRenamesToSameName(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.CreateCategory(ctx, CategoryParams{Name: "A"})
	require.NoError(t, err)
	b, err := svc.CreateCategory(ctx, CategoryParams{Name: "B"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []int64{a.ID, b.ID} {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			_, errs[i] = svc.RenameCategory(ctx, id, CategoryParams{Name: "Merged"})
		}(i, id)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflicts)
	assert.Len(t, categoryNames(t, svc), 2)
}

func TestDeleteCategory_DoesNotCascade(t *testing.T) {
	svc, _, list := newTestService(t)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Milk", Category: ptr("Dairy")})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(ctx, categoryID(t, svc, "Dairy")))
	assert.Empty(t, categoryNames(t, svc))

	got, err := svc.GetItem(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Dairy", *got.Category)

	n, _ := findName(t, svc, "Milk")
	require.NotNil(t, n.Category)
	assert.Equal(t, "Dairy", *n.Category)

	assert.ErrorIs(t, svc.DeleteCategory(ctx, 9999), ErrNotFound)
}

func TestRenameOrUpdateName_RenameCascadesToItems(t *testing.T) {
	svc, _, list := newTestService(t)
	ctx := context.Background()

	i1, err := svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Mlik", Category: ptr("Dairy")})
	require.NoError(t, err)
	i2, err := svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Mlik"})
	require.NoError(t, err)
	other, err := svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Bread"})
	require.NoError(t, err)

	n, _ := findName(t, svc, "Mlik")
	updated, err := svc.RenameOrUpdateName(ctx, n.ID, UpdateNameParams{Name: ptr("Milk")})
	require.NoError(t, err)
	assert.Equal(t, "Milk", updated.Name)
	assert.Equal(t, int64(2), updated.Count)
	require.NotNil(t, updated.Category)
	assert.Equal(t, "Dairy", *updated.Category)

	for _, id := range []int64{i1.ID, i2.ID} {
		got, err := svc.GetItem(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Milk", got.Name)
	}
	got, err := svc.GetItem(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bread", got.Name)
}

func TestRenameOrUpdateName_RenameAndRecategorizeTogether(t *testing.T) {
	svc, _, list := newTestService(t)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Mlik", Category: ptr("Dairy")})
	require.NoError(t, err)

	n, _ := findName(t, svc, "Mlik")
	_, err = svc.RenameOrUpdateName(ctx, n.ID, UpdateNameParams{
		Name:     ptr("Milk"),
		Category: models.Some("Refrigerated"),
	})
	require.NoError(t, err)

	got, err := svc.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Milk", got.Name)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Refrigerated", *got.Category)

	assert.ElementsMatch(t, []string{"Dairy", "Refrigerated"}, categoryNames(t, svc))
}

func TestRenameOrUpdateName_NullCategoryClearsItems(t *testing.T) {
	svc, _, list := newTestService(t)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Milk", Category: ptr("Dairy")})
	require.NoError(t, err)

	n, _ := findName(t, svc, "Milk")
	updated, err := svc.RenameOrUpdateName(ctx, n.ID, UpdateNameParams{Category: models.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, updated.Category)

	got, err := svc.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Category)
}

func TestRenameOrUpdateName_OntoExistingIsConflict(t *testing.T) {
	svc, st, list := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Milk"})
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Mlik"})
	require.NoError(t, err)

	before := snapshot(t, st, list.ID)

	n, _ := findName(t, svc, "Mlik")
	_, err = svc.RenameOrUpdateName(ctx, n.ID, UpdateNameParams{Name: ptr("Milk")})
	require.ErrorIs(t, err, ErrConflict)

	assert.Equal(t, before, snapshot(t, st, list.ID))
}

func TestRenameOrUpdateName_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.RenameOrUpdateName(context.Background(), 5, UpdateNameParams{Name: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteName_DoesNotTouchItems(t *testing.T) {
	svc, _, list := newTestService(t)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Milk", Category: ptr("Dairy")})
	require.NoError(t, err)

	n, _ := findName(t, svc, "Milk")
	require.NoError(t, svc.DeleteName(ctx, n.ID))
	assert.ErrorIs(t, svc.DeleteName(ctx, n.ID), ErrNotFound)

	got, err := svc.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Milk", got.Name)

	// A later creation starts the count over.
	_, err = svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Milk"})
	require.NoError(t, err)
	n, _ = findName(t, svc, "Milk")
	assert.Equal(t, int64(1), n.Count)
	assert.Nil(t, n.Category)
}

func TestSearchNames_OrderedByCountThenName(t *testing.T) {
	svc, _, list := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"Bread", "Apples", "Milk", "Milk", "Bread", "Milk"} {
		_, err := svc.CreateItem(ctx, list.ID, CreateItemParams{Name: name})
		require.NoError(t, err)
	}

	names, err := svc.SearchNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Milk", "Bread", "Apples"}, names)
}

func TestLists(t *testing.T) {
	svc, _, list := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Milk"})
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, list.ID, CreateItemParams{Name: "Eggs"})
	require.NoError(t, err)

	lists, err := svc.ListLists(ctx)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, int64(2), lists[0].Count)

	renamed, err := svc.RenameList(ctx, list.ID, ListParams{Name: "Weekend"})
	require.NoError(t, err)
	assert.Equal(t, "Weekend", renamed.Name)

	_, err = svc.RenameList(ctx, 999, ListParams{Name: "Nope"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CreateList(ctx, ListParams{Name: ""})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, svc.DeleteList(ctx, list.ID))
	_, err = svc.ListItems(ctx, list.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Items, "items go with their list")
	assert.Equal(t, int64(2), stats.Names, "catalog survives list deletion")
}

// --- fault injection -------------------------------------------------------

var errInjected = errors.New("injected failure")

// failingStore hands out transactions whose failOn statement fails.
type failingStore struct {
	store.Store
	failOn string
}

func (f *failingStore) WithTx(ctx context.Context, fn func(q store.Queries) error) error {
	return f.Store.WithTx(ctx, func(q store.Queries) error {
		return fn(&failingQueries{Queries: q, failOn: f.failOn})
	})
}

type failingQueries struct {
	store.Queries
	failOn string
}

func (f *failingQueries) RetargetItemCategory(ctx context.Context, oldCategory, newCategory string) (int64, error) {
	if f.failOn == "RetargetItemCategory" {
		return 0, errInjected
	}
	return f.Queries.RetargetItemCategory(ctx, oldCategory, newCategory)
}

func (f *failingQueries) RetargetNameCategory(ctx context.Context, oldCategory, newCategory string) (int64, error) {
	if f.failOn == "RetargetNameCategory" {
		return 0, errInjected
	}
	return f.Queries.RetargetNameCategory(ctx, oldCategory, newCategory)
}

func (f *failingQueries) DeleteCategory(ctx context.Context, id int64) (int64, error) {
	if f.failOn == "DeleteCategory" {
		return 0, errInjected
	}
	return f.Queries.DeleteCategory(ctx, id)
}

// state is everything a cascade can touch.
type state struct {
	Categories []models.Category
	Names      []models.Name
	Items      []models.Item
}

func snapshot(t *testing.T, st store.Store, listID int64) state {
	t.Helper()
	ctx := context.Background()

	cats, err := st.ListCategories(ctx)
	require.NoError(t, err)
	names, err := st.ListNames(ctx)
	require.NoError(t, err)
	items, err := st.ListItemsByList(ctx, listID)
	require.NoError(t, err)

	return state{Categories: cats, Names: names, Items: items}
}
