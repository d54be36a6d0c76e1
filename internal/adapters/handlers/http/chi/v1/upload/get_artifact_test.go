package upload_test

import (
	"encoding/json"
	"io"
	"log/slog"
	http2 "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Figuu/cemse-sub010/internal/adapters/handlers/http/chi"
	upload2 "github.com/Figuu/cemse-sub010/internal/adapters/handlers/http/chi/v1/upload"
	"github.com/Figuu/cemse-sub010/internal/core/domain"
	"github.com/Figuu/cemse-sub010/internal/core/service/upload"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetArtifactV1(t *testing.T) {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success - artifact returned", func(t *testing.T) {
		// Arrange
		artifactID := uuid.New()
		artifact := &domain.Artifact{
			ID:          artifactID,
			OwnerID:     "user-1",
			Category:    "document",
			FileName:    "report.pdf",
			ContentType: "application/pdf",
			ByteLength:  1024,
			StorageKey:  "document/user-1/1724900000-a1b2c3d4.pdf",
			CreatedAt:   time.Now().UTC(),
		}

		mockService := upload.NewMockUploadService()
		mockService.On("GetArtifact", mock.Anything, artifactID).
			Return(artifact, "https://blob.test/"+artifact.StorageKey, nil)

		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, "", 10<<20)
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodGet, "/api/v1/upload/artifacts/"+artifactID.String(), nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)

		var response upload2.V1FileResponse
		err := json.NewDecoder(w.Body).Decode(&response)
		assert.NoError(t, err)
		assert.Equal(t, artifactID, response.ID)
		assert.Equal(t, "report.pdf", response.Name)
		assert.Equal(t, "https://blob.test/"+artifact.StorageKey, response.URL)
		mockService.AssertExpectations(t)
	})

	t.Run("error - artifact not found", func(t *testing.T) {
		// Arrange
		artifactID := uuid.New()

		mockService := upload.NewMockUploadService()
		mockService.On("GetArtifact", mock.Anything, artifactID).
			Return((*domain.Artifact)(nil), "", domain.ErrArtifactNotFound)

		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, "", 10<<20)
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodGet, "/api/v1/upload/artifacts/"+artifactID.String(), nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusNotFound, w.Code)
	})

	t.Run("error - invalid artifact ID", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, "", 10<<20)
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodGet, "/api/v1/upload/artifacts/not-a-uuid", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
	})
}
