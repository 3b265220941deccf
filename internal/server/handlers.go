package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// maxUploadBytes bounds document uploads.
const maxUploadBytes = 64 << 20

type askRequest struct {
	Question string `json:"question"`
	K        int    `json:"k,omitempty"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "expected multipart form with a file field")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	s.logger.Debug("upload request", zap.String("name", header.Filename), zap.Int("bytes", len(content)))
	result, err := s.ingestor.IngestBytes(header.Filename, content)
	if err != nil {
		s.logger.Error("ingestion failed", zap.String("name", header.Filename), zap.Error(err))
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"id":      result.Doc.ID,
		"name":    result.Doc.Name,
		"pages":   result.Doc.Pages,
		"chunks":  result.Doc.Chunks,
		"summary": result.Summary,
	})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		s.respondError(w, http.StatusBadRequest, "question must not be empty")
		return
	}

	s.logger.Debug("ask request", zap.String("question", req.Question), zap.Int("k", req.K))
	results := s.session.Answer(req.Question, req.K)

	// An empty result set is a valid "no answer found", not an error.
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"question": req.Question,
		"results":  results,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	words := 0
	if v := r.URL.Query().Get("words"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.respondError(w, http.StatusBadRequest, "words must be a non-negative integer")
			return
		}
		words = n
	}

	s.respondJSON(w, http.StatusOK, map[string]string{
		"summary": s.session.Summarize(words),
	})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs := s.session.Documents()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"documents": docs,
		"chunks":    s.session.Len(),
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.session.Reset()
	s.logger.Info("session reset")
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("write response failed", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
