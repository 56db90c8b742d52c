package models

import "github.com/jackc/pgx/v5/pgtype"

// List is a named shopping list. Items belong to exactly one list.
type List struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ListWithCount is a List together with the number of items it holds.
type ListWithCount struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Item is a single entry on a list.
type Item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	// Amount is an arbitrary-precision quantity; invalid means "no amount".
	Amount pgtype.Numeric `json:"amount"`

	AmountUnit *string `json:"amountUnit"`
	InCart     bool    `json:"inCart"`
	List       int64   `json:"list"`

	// Category is the category name by value, not a Category.ID.
	Category *string `json:"category"`
}

// Category is a distinct category string. Name is unique.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Name is a catalog entry: an item name, how many times items were created
// with it, and the category most recently associated with it.
type Name struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Count    int64   `json:"count"`
	Category *string `json:"category"`
}

// Stats holds row counts for every table.
type Stats struct {
	Lists      int64 `json:"lists"`
	Items      int64 `json:"items"`
	Categories int64 `json:"categories"`
	Names      int64 `json:"names"`
}
