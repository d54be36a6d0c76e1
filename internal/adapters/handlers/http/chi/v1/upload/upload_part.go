package upload

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Figuu/cemse-sub010/internal/core/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxPartMemory bounds how much of the multipart envelope is buffered in
// memory; the part payload itself is streamed from the temp file.
const maxPartMemory = 4 << 20

// V1UploadPartResponse acknowledges one durably stored part
type V1UploadPartResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Index     int       `json:"index"`
	SizeBytes int64     `json:"size_bytes"`
	Checksum  string    `json:"checksum_sha256"`
}

func (h *HandlerV1) UploadPartV1(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionIDParam(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "index must be an integer")
		return
	}

	if err := r.ParseMultipartForm(maxPartMemory); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	totalParts, err := strconv.Atoi(r.FormValue("total_parts"))
	if err != nil || totalParts <= 0 {
		h.writeError(w, http.StatusBadRequest, "total_parts must be a positive integer")
		return
	}

	part, header, err := r.FormFile("part")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "part file is required")
		return
	}
	defer part.Close()

	receipt, recvErr := h.uploadService.ReceivePart(r.Context(), sessionID, index, totalParts, part, header.Size)
	switch {
	case errors.Is(recvErr, domain.ErrSessionNotFound):
		h.writeError(w, http.StatusNotFound, "session not found")
		return
	case errors.Is(recvErr, domain.ErrIndexOutOfRange), errors.Is(recvErr, domain.ErrEmptyPart):
		h.writeError(w, http.StatusBadRequest, recvErr.Error())
		return
	case errors.Is(recvErr, domain.ErrSizeLimitExceeded):
		h.writeError(w, http.StatusRequestEntityTooLarge, recvErr.Error())
		return
	case recvErr != nil:
		h.logger.Error("error receiving part", "session_id", sessionID, "index", index, "error", recvErr)
		h.writeError(w, http.StatusServiceUnavailable, "internal server error")
		return
	default:
		h.writeJSON(w, http.StatusOK, V1UploadPartResponse{
			SessionID: receipt.SessionID,
			Index:     receipt.Index,
			SizeBytes: receipt.ByteLength,
			Checksum:  receipt.ChecksumSHA256,
		})
	}
}

func (h *HandlerV1) sessionIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "sessionID")
	if raw == "" {
		h.writeError(w, http.StatusBadRequest, "session ID is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return uuid.Nil, false
	}
	return id, true
}
