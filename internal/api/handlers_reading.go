package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/readbit/internal/store"
)

// handleToggleBookmark bookmarks a chunk, or removes the bookmark if the
// chunk already has one.
func (s *Server) handleToggleBookmark(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	var req struct {
		ChunkIndex *int   `json:"chunk_index"`
		Text       string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.ChunkIndex == nil || *req.ChunkIndex < 0 {
		jsonError(w, "chunk_index must be a non-negative integer", http.StatusBadRequest)
		return
	}

	// Validate the chunk exists before bookmarking it.
	doc, err := s.orchestrator.Store().GetDocument(r.Context(), docID)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, "failed to load document: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if *req.ChunkIndex >= len(doc.Chunks) {
		jsonError(w, "chunk_index out of range", http.StatusBadRequest)
		return
	}

	text := req.Text
	if text == "" {
		text = doc.Chunks[*req.ChunkIndex].Text
	}

	added, err := s.orchestrator.Store().ToggleBookmark(r.Context(), docID, *req.ChunkIndex, text)
	if err != nil {
		jsonError(w, "failed to toggle bookmark: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"added":       added,
		"chunk_index": *req.ChunkIndex,
	})
}

// handleListBookmarks returns a document's bookmarks in reading order.
func (s *Server) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	bookmarks, err := s.orchestrator.Store().ListBookmarks(r.Context(), docID)
	if err != nil {
		jsonError(w, "failed to list bookmarks: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"bookmarks": bookmarks})
}

// handleDeleteBookmark removes a bookmark by id.
func (s *Server) handleDeleteBookmark(w http.ResponseWriter, r *http.Request) {
	bookmarkID := chi.URLParam(r, "bookmarkID")
	err := s.orchestrator.Store().DeleteBookmark(r.Context(), bookmarkID)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "bookmark not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, "failed to delete bookmark: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": bookmarkID})
}

// handleSaveProgress records the current reading position.
func (s *Server) handleSaveProgress(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	var req struct {
		CurrentIndex *int `json:"current_index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.CurrentIndex == nil || *req.CurrentIndex < 0 {
		jsonError(w, "current_index must be a non-negative integer", http.StatusBadRequest)
		return
	}

	doc, err := s.orchestrator.Store().GetDocument(r.Context(), docID)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, "failed to load document: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if *req.CurrentIndex >= len(doc.Chunks) {
		jsonError(w, "current_index out of range", http.StatusBadRequest)
		return
	}

	p := store.Progress{
		DocumentID:   docID,
		CurrentIndex: *req.CurrentIndex,
		LastRead:     time.Now(),
	}
	if err := s.orchestrator.Store().SaveProgress(r.Context(), p); err != nil {
		jsonError(w, "failed to save progress: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// handleGetProgress returns the saved reading position.
func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	p, err := s.orchestrator.Store().GetProgress(r.Context(), docID)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "no progress recorded", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, "failed to load progress: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}
