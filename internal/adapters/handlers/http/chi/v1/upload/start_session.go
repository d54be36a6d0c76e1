package upload

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Figuu/cemse-sub010/internal/core/domain"
	"github.com/google/uuid"
)

// V1StartSessionRequest is the request to open an upload session
type V1StartSessionRequest struct {
	OwnerID    string `json:"owner_id"`
	Category   string `json:"category"`
	FileName   string `json:"filename"`
	SizeBytes  int64  `json:"size_bytes"`
	TotalParts int    `json:"total_parts"`
}

// V1StartSessionResponse is the response to open an upload session
type V1StartSessionResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *HandlerV1) StartSessionV1(w http.ResponseWriter, r *http.Request) {
	var req V1StartSessionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("error decoding start session request", "error", err)
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.OwnerID == "" || req.Category == "" || req.FileName == "" || req.SizeBytes == 0 || req.TotalParts == 0 {
		h.writeError(w, http.StatusBadRequest, "missing param")
		return
	}

	session, err := h.uploadService.StartSession(r.Context(), req.OwnerID, req.Category, req.FileName, req.SizeBytes, req.TotalParts)
	switch {
	case errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrInvalidFileType),
		errors.Is(err, domain.ErrSizeLimitExceeded),
		errors.Is(err, domain.ErrIndexOutOfRange):
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Error("error starting upload session", "error", err)
		h.writeError(w, http.StatusServiceUnavailable, "internal server error")
		return
	default:
		h.writeJSON(w, http.StatusCreated, V1StartSessionResponse{
			SessionID: session.ID,
			ExpiresAt: session.ExpiresAt,
		})
	}
}
