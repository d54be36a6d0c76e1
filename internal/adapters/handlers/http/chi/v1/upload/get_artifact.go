package upload

import (
	"errors"
	"net/http"

	"github.com/Figuu/cemse-sub010/internal/core/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *HandlerV1) GetArtifactV1(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "artifactID")
	artifactID, err := uuid.Parse(raw)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	artifact, url, getErr := h.uploadService.GetArtifact(r.Context(), artifactID)
	switch {
	case errors.Is(getErr, domain.ErrArtifactNotFound):
		h.writeError(w, http.StatusNotFound, "artifact not found")
		return
	case getErr != nil:
		h.logger.Error("error fetching artifact", "artifact_id", artifactID, "error", getErr)
		h.writeError(w, http.StatusServiceUnavailable, "internal server error")
		return
	default:
		h.writeJSON(w, http.StatusOK, V1FileResponse{
			ID:         artifact.ID,
			Name:       artifact.FileName,
			Type:       artifact.ContentType,
			Size:       artifact.ByteLength,
			URL:        url,
			UploadedAt: artifact.CreatedAt,
			Category:   artifact.Category,
		})
	}
}
