package web

import (
	"net/http"

	"github.com/JonMunkholm/lister/internal/core"
)

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	listID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	items, err := s.service.ListItems(r.Context(), listID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// handleCreateItem adds an item to a list. The item's category is registered
// and its name recorded in the catalog in the same transaction.
func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	listID, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var p core.CreateItemParams
	if !decodeJSON(w, r, &p) {
		return
	}

	item, err := s.service.CreateItem(r.Context(), listID, p)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	item, err := s.service.GetItem(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// handleUpdateItem applies a partial update. A "category": null in the body
// clears the category; leaving the key out keeps it.
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var p core.UpdateItemParams
	if !decodeJSON(w, r, &p) {
		return
	}

	item, err := s.service.UpdateItem(r.Context(), id, p)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleToggleItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	item, err := s.service.ToggleItem(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := s.service.DeleteItem(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
