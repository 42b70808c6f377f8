package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/readbit/internal/chunker"
	"github.com/dgallion1/readbit/internal/store"
)

// handleDocumentStats returns chunk statistics for one document.
func (s *Server) handleDocumentStats(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	doc, err := s.orchestrator.Store().GetDocument(r.Context(), docID)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, "failed to load document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(chunker.ChunkStats(doc.Chunks))
}

// handleChunkPreview chunks raw text without persisting anything. The
// reader UI uses this for pasted text and for previewing chunk settings.
func (s *Server) handleChunkPreview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req struct {
		Text       string `json:"text"`
		MaxWords   int    `json:"max_words"`
		Structural *bool  `json:"structural_chunking"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	opts := chunker.Options{
		StructuralChunking: s.cfg.StructuralChunking,
		MaxWords:           s.cfg.MaxChunkWords,
	}
	if req.MaxWords > 0 {
		opts.MaxWords = req.MaxWords
	}
	if req.Structural != nil {
		opts.StructuralChunking = *req.Structural
	}

	chunks := chunker.ChunkText(req.Text, opts)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"chunks": chunks,
		"stats":  chunker.ChunkStats(chunks),
	})
}

// handleIngestStats returns import latency stats and queue depth.
func (s *Server) handleIngestStats(w http.ResponseWriter, r *http.Request) {
	snap := s.orchestrator.Stats().Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"imports":     snap,
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
