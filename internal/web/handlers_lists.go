package web

import (
	"net/http"

	"github.com/JonMunkholm/lister/internal/core"
)

func (s *Server) handleListLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.service.ListLists(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	var p core.ListParams
	if !decodeJSON(w, r, &p) {
		return
	}

	list, err := s.service.CreateList(r.Context(), p)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	list, err := s.service.GetList(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleRenameList(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var p core.ListParams
	if !decodeJSON(w, r, &p) {
		return
	}

	list, err := s.service.RenameList(r.Context(), id, p)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleDeleteList deletes the list and, through the foreign key, its items.
func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := s.service.DeleteList(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
