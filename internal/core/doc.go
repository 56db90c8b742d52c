// Package core provides the business logic of the shopping-list service.
//
// Items refer to categories and catalog names by string value. The database
// does not enforce those references, so every operation in this package that
// changes a referenced value also rewrites each row that copies it, inside
// one store transaction. A failed step rolls the whole operation back.
//
// # Architecture
//
//   - [Service]: the entry point for every operation. Multi-statement
//     mutations run through [store.Store.WithTx].
//   - [CategoryRegistry]: makes sure a category string has a row before an
//     item or catalog entry points at it.
//   - [NameUsageTracker]: counts how often each item name was used and
//     remembers the last category seen with it.
//
// # Rename protocol
//
// [Service.RenameCategory] inserts the new category, moves items and catalog
// entries over, then deletes the old row. The new name colliding with an
// existing category aborts before anything moves.
//
// [Service.RenameOrUpdateName] selects the affected items by the catalog
// entry's old name, for both the rename and the recategorization.
//
// Deleting a category or a catalog name never touches items.
//
// # Error Handling
//
// Every failure is an [*Error] whose kind matches exactly one of
// [ErrNotFound], [ErrConflict], [ErrValidation] and [ErrStorage] under
// errors.Is. [MapError] turns any error into a user message with a support
// code:
//
//   - NF001-NF004: a list, item, category or name does not exist
//   - CF000-CF003: a unique value is taken, or a list is missing
//   - VAL001: a field failed validation
//   - REQ001-REQ002, DB004-DB008: storage and request failures
package core
