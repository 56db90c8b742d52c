package web

import (
	"net/http"

	"github.com/JonMunkholm/lister/internal/core"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.service.ListCategories(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var p core.CategoryParams
	if !decodeJSON(w, r, &p) {
		return
	}

	category, err := s.service.CreateCategory(r.Context(), p)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	category, err := s.service.GetCategory(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// handleRenameCategory renames a category and moves every item and catalog
// entry filed under it. The response is the new category row, with a new id.
func (s *Server) handleRenameCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var p core.CategoryParams
	if !decodeJSON(w, r, &p) {
		return
	}

	category, err := s.service.RenameCategory(r.Context(), id, p)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := s.service.DeleteCategory(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListNames(w http.ResponseWriter, r *http.Request) {
	names, err := s.service.ListNames(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleGetName(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	name, err := s.service.GetName(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, name)
}

func (s *Server) handleUpdateName(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var p core.UpdateNameParams
	if !decodeJSON(w, r, &p) {
		return
	}

	name, err := s.service.RenameOrUpdateName(r.Context(), id, p)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, name)
}

func (s *Server) handleDeleteName(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := s.service.DeleteName(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSearchNames returns every catalog name for autocomplete.
func (s *Server) handleSearchNames(w http.ResponseWriter, r *http.Request) {
	names, err := s.service.SearchNames(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleCategoryMappings(w http.ResponseWriter, r *http.Request) {
	mappings, err := s.service.CategoryMappings(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappings)
}
