// Package models defines the rows shared by the store backends, the core
// service and the web layer.
//
// # Value references
//
// Items refer to their category and to their catalog name by string value,
// not by id:
//   - Item.Category holds a Category.Name (or nil)
//   - Item.Name matches a Name.Name in the catalog
//
// Keeping those copies in step is the job of package core; the models
// themselves carry no behavior beyond JSON handling.
package models
