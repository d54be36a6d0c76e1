package upload

import (
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/Figuu/cemse-sub010/internal/config"
	"github.com/Figuu/cemse-sub010/internal/core/domain"
	"github.com/Figuu/cemse-sub010/internal/core/port"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type uploadService struct {
	uow        port.UnitOfWork
	blobStore  port.BlobStore
	events     port.EventPublisher
	categories domain.Categories
	uploadCfg  config.UploadConfig
	logger     *slog.Logger

	// finalizeGroup collapses concurrent finalize calls for the same session
	// into a single execution.
	finalizeGroup singleflight.Group
}

// NewUploadService creates a new upload service
func NewUploadService(
	uow port.UnitOfWork,
	blobStore port.BlobStore,
	events port.EventPublisher,
	categories domain.Categories,
	cfg config.UploadConfig,
	logger *slog.Logger,
) port.UploadService {
	return &uploadService{
		uow:        uow,
		blobStore:  blobStore,
		events:     events,
		categories: categories,
		uploadCfg:  cfg,
		logger:     logger,
	}
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// sanitizeFileName strips everything outside [A-Za-z0-9._-] so the name is
// safe to embed in a storage key.
func sanitizeFileName(name string) string {
	clean := unsafeNameChars.ReplaceAllString(filepath.Base(name), "")
	clean = strings.Trim(clean, ".")
	if clean == "" {
		clean = "file"
	}
	return clean
}

// contentTypeFor resolves a MIME type from the file extension. Unknown
// extensions fall back to application/octet-stream.
func contentTypeFor(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ct := mime.TypeByExtension(ext); ct != "" {
		if mediaType, _, err := mime.ParseMediaType(ct); err == nil {
			return mediaType
		}
	}
	return "application/octet-stream"
}

// partKey builds the transient storage key for one part. The index is
// zero-padded so lexical order equals numeric order.
func partKey(sessionID uuid.UUID, index int) string {
	return fmt.Sprintf("sessions/%s/parts/%05d", sessionID, index)
}

// partPrefix covers every transient object of a session, stale extras included.
func partPrefix(sessionID uuid.UUID) string {
	return fmt.Sprintf("sessions/%s/", sessionID)
}

// artifactKey builds the durable locator: {category}/{ownerID}/{ts}-{rand}{ext}
func artifactKey(ownerID, category, originalName string, now time.Time) string {
	ext := filepath.Ext(sanitizeFileName(originalName))
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s/%s/%d-%s%s", category, ownerID, now.Unix(), random, ext)
}
