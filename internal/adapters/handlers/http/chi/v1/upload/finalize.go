package upload

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Figuu/cemse-sub010/internal/core/domain"
	"github.com/Figuu/cemse-sub010/internal/core/port"
	"github.com/google/uuid"
)

// V1FinalizeRequest resupplies the session metadata; the service re-validates
// it against the ledger before committing.
type V1FinalizeRequest struct {
	UserID       string `json:"user_id"`
	Category     string `json:"category"`
	OriginalName string `json:"original_name"`
	OriginalSize int64  `json:"original_size"`
	TotalChunks  int    `json:"total_chunks"`
}

// V1FileResponse describes a committed artifact
type V1FileResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
	Category   string    `json:"category"`
}

// V1FinalizeResponse is the finalize success body
type V1FinalizeResponse struct {
	Success bool           `json:"success"`
	File    V1FileResponse `json:"file"`
}

func (h *HandlerV1) FinalizeV1(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionIDParam(w, r)
	if !ok {
		return
	}

	var req V1FinalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("error decoding finalize request", "error", err)
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.UserID == "" || req.Category == "" || req.OriginalName == "" || req.OriginalSize == 0 || req.TotalChunks == 0 {
		h.writeError(w, http.StatusBadRequest, "missing param")
		return
	}

	artifact, url, finErr := h.uploadService.Finalize(r.Context(), port.FinalizeInput{
		SessionID:    sessionID,
		OwnerID:      req.UserID,
		Category:     req.Category,
		OriginalName: req.OriginalName,
		DeclaredSize: req.OriginalSize,
		TotalParts:   req.TotalChunks,
	})

	var incomplete *domain.IncompleteUploadError
	switch {
	case errors.As(finErr, &incomplete):
		h.writeJSON(w, http.StatusConflict, ErrorResponse{
			Error:   finErr.Error(),
			Missing: incomplete.Missing,
		})
		return
	case errors.Is(finErr, domain.ErrSessionNotFound):
		h.writeError(w, http.StatusNotFound, "session not found")
		return
	case errors.Is(finErr, domain.ErrMetadataMismatch):
		h.writeError(w, http.StatusBadRequest, finErr.Error())
		return
	case errors.Is(finErr, domain.ErrSizeMismatch), errors.Is(finErr, domain.ErrChecksumMismatch):
		h.writeError(w, http.StatusConflict, finErr.Error())
		return
	case finErr != nil:
		h.logger.Error("error finalizing upload", "session_id", sessionID, "error", finErr)
		h.writeError(w, http.StatusServiceUnavailable, "internal server error")
		return
	case artifact == nil:
		h.logger.Error("artifact is nil", "session_id", sessionID)
		h.writeError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	default:
		h.writeJSON(w, http.StatusCreated, V1FinalizeResponse{
			Success: true,
			File: V1FileResponse{
				ID:         artifact.ID,
				Name:       artifact.FileName,
				Type:       artifact.ContentType,
				Size:       artifact.ByteLength,
				URL:        url,
				UploadedAt: artifact.CreatedAt,
				Category:   artifact.Category,
			},
		})
	}
}
