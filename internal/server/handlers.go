package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	moltexterrors "github.com/moltext/moltext/pkg/errors"
	"github.com/moltext/moltext/pkg/pipeline"
	"github.com/moltext/moltext/pkg/store"
)

// maxDocumentBytes bounds request bodies to keep decode work sane.
const maxDocumentBytes = 1 << 20

type encodeResponse struct {
	JobID      string `json:"job_id"`
	Name       string `json:"name,omitempty"`
	Notation   string `json:"notation"`
	Components int    `json:"components"`
	Cached     bool   `json:"cached"`
}

type moleculeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Notation  string    `json:"notation"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleEncode runs the pipeline on the posted document without storing it.
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	doc, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentBytes))
	if err != nil {
		s.writeError(w, moltexterrors.Wrap(moltexterrors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{Document: doc})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, encodeResponse{
		JobID:      result.JobID,
		Name:       result.Name,
		Notation:   result.Notation,
		Components: result.Stats.ComponentCount,
		Cached:     result.CacheInfo.EncodeHit,
	})
}

// handleCreate decodes and encodes the posted document, then stores it
// under its document name.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	doc, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentBytes))
	if err != nil {
		s.writeError(w, moltexterrors.Wrap(moltexterrors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{Document: doc})
	if err != nil {
		s.writeError(w, err)
		return
	}
	if result.Name == "" {
		s.writeError(w, moltexterrors.New(moltexterrors.ErrCodeInvalidDocument, "document has no name"))
		return
	}

	rec := &store.Record{
		Name:     result.Name,
		Document: doc,
		Notation: result.Notation,
	}
	// Replace an existing record of the same name.
	if prev, err := s.store.GetByName(r.Context(), result.Name); err == nil {
		rec.ID = prev.ID
		rec.CreatedAt = prev.CreatedAt
	}
	if err := s.store.Put(r.Context(), rec); err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toMoleculeResponse(rec))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]moleculeResponse, len(recs))
	for i, rec := range recs {
		out[i] = toMoleculeResponse(rec)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMoleculeResponse(rec))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), rec.ID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleArtifact renders a stored molecule in the requested format.
func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, moltexterrors.Wrap(moltexterrors.ErrCodeInvalidFormat, err, "artifact format"))
		return
	}

	rec, err := s.store.GetByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Document: rec.Document,
		Formats:  []string{format},
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatPDF:
		return "application/pdf"
	default:
		return "text/plain; charset=utf-8"
	}
}

func toMoleculeResponse(rec *store.Record) moleculeResponse {
	return moleculeResponse{
		ID:        rec.ID,
		Name:      rec.Name,
		Notation:  rec.Notation,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps error codes to HTTP status and emits a JSON body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case moltexterrors.Is(err, moltexterrors.ErrCodeMoleculeNotFound),
		moltexterrors.Is(err, moltexterrors.ErrCodeNotFound),
		moltexterrors.Is(err, moltexterrors.ErrCodeFileNotFound):
		status = http.StatusNotFound
	case moltexterrors.Is(err, moltexterrors.ErrCodeInvalidInput),
		moltexterrors.Is(err, moltexterrors.ErrCodeInvalidDocument),
		moltexterrors.Is(err, moltexterrors.ErrCodeInvalidMolecule),
		moltexterrors.Is(err, moltexterrors.ErrCodeInvalidFormat):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{
		Error: moltexterrors.UserMessage(err),
		Code:  string(moltexterrors.GetCode(err)),
	})
}
