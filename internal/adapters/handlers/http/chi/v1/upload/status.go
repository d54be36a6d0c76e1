package upload

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Figuu/cemse-sub010/internal/core/domain"
)

// V1StatusResponse reports completeness and the exact missing indices
type V1StatusResponse struct {
	Complete bool  `json:"complete"`
	Missing  []int `json:"missing"`
}

func (h *HandlerV1) StatusV1(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionIDParam(w, r)
	if !ok {
		return
	}

	totalParts, err := strconv.Atoi(r.URL.Query().Get("total_parts"))
	if err != nil || totalParts <= 0 {
		h.writeError(w, http.StatusBadRequest, "total_parts must be a positive integer")
		return
	}

	status, verifyErr := h.uploadService.VerifyComplete(r.Context(), sessionID, totalParts)
	switch {
	case errors.Is(verifyErr, domain.ErrSessionNotFound):
		h.writeError(w, http.StatusNotFound, "session not found")
		return
	case verifyErr != nil:
		h.logger.Error("error verifying upload", "session_id", sessionID, "error", verifyErr)
		h.writeError(w, http.StatusServiceUnavailable, "internal server error")
		return
	default:
		h.writeJSON(w, http.StatusOK, V1StatusResponse{
			Complete: status.Complete,
			Missing:  status.Missing,
		})
	}
}
