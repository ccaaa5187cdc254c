package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"docqa/internal/domain"
)

const maxUploadBytes = 32 << 20

// UploadResponse is the body returned by POST /upload.
type UploadResponse struct {
	Message string `json:"message"`
}

// AskResponse is the body returned by POST /ask.
type AskResponse struct {
	Answer  string `json:"answer"`
	Context string `json:"context"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "failed to read file")
		return
	}
	s.logger.Debug("upload request", zap.String("filename", header.Filename), zap.Int("bytes", len(content)))

	result, err := s.svc.Upload(r.Context(), header.Filename, content)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedFormat) {
			s.respondError(w, http.StatusBadRequest, domain.ErrUnsupportedFormat.Error())
			return
		}
		s.logger.Error("upload failed", zap.String("filename", header.Filename), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if result.Duplicate {
		s.respondJSON(w, http.StatusOK, UploadResponse{Message: "File already processed"})
		return
	}
	msg := fmt.Sprintf("File processed and %d chunks stored.", result.ChunksStored)
	s.respondJSON(w, http.StatusOK, UploadResponse{Message: msg})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	question := r.FormValue("question")
	if question == "" {
		s.respondError(w, http.StatusBadRequest, "question field is required")
		return
	}
	s.logger.Debug("ask request", zap.String("question", question))

	answer, err := s.svc.Ask(r.Context(), question)
	if err != nil {
		s.logger.Error("ask failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, AskResponse{Answer: answer.Text, Context: answer.Context})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
