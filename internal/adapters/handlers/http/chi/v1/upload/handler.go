package upload

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Figuu/cemse-sub010/internal/core/port"
	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for v1 upload routes
type HandlerV1 struct {
	uploadService port.UploadService
	logger        *slog.Logger
}

// NewUploadHandlerV1 creates HandlerV1
func NewUploadHandlerV1(service port.UploadService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		uploadService: service,
		logger:        logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/sessions", h.StartSessionV1)
	router.Put("/sessions/{sessionID}/parts/{index}", h.UploadPartV1)
	router.Get("/sessions/{sessionID}/status", h.StatusV1)
	router.Post("/sessions/{sessionID}/finalize", h.FinalizeV1)
	router.Get("/artifacts/{artifactID}", h.GetArtifactV1)

	return router
}

// ErrorResponse is the uniform failure body
type ErrorResponse struct {
	Error   string `json:"error"`
	Missing []int  `json:"missing,omitempty"`
}

func (h *HandlerV1) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}

func (h *HandlerV1) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, ErrorResponse{Error: msg})
}
