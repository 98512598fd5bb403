package server

import (
	"net/http"

	"github.com/jonathan/intelliresume/internal/export"
	"github.com/jonathan/intelliresume/internal/types"
)

// HistoryResponse is the body returned by GET /history.
type HistoryResponse struct {
	Entries  []types.HistoryEntry `json:"entries"`
	Capacity int                  `json:"capacity"`
}

func (s *Server) handleListHistory(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, HistoryResponse{
		Entries:  s.history.List(),
		Capacity: s.history.Capacity(),
	})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	entry, ok := s.history.Get(id)
	if !ok {
		s.errorResponse(w, r, &ErrNotFound{Resource: "history entry", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, entry)
}

func (s *Server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	found, err := s.history.Delete(r.Context(), id)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if !found {
		s.errorResponse(w, r, &ErrNotFound{Resource: "history entry", ID: id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.history.Clear(r.Context()); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExportHistory downloads the history as a spreadsheet.
func (s *Server) handleExportHistory(w http.ResponseWriter, r *http.Request) {
	data, err := export.HistoryBytes(s.history.List())
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	writeAttachment(w, export.ContentType, "resume_history.xlsx", data)
}
