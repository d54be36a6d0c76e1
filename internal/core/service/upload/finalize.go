package upload

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/Figuu/cemse-sub010/internal/core/domain"
	"github.com/Figuu/cemse-sub010/internal/core/port"
	"github.com/google/uuid"
)

type finalizeResult struct {
	artifact *domain.Artifact
	url      string
}

// Finalize verifies completeness, reassembles the parts in strict index order
// and commits the artifact. Concurrent calls for the same session collapse
// into a single execution; every caller receives the same result.
func (u *uploadService) Finalize(ctx context.Context, in port.FinalizeInput) (*domain.Artifact, string, error) {
	v, err, _ := u.finalizeGroup.Do(in.SessionID.String(), func() (interface{}, error) {
		return u.finalize(ctx, in)
	})
	if err != nil {
		return nil, "", err
	}

	res := v.(*finalizeResult)
	return res.artifact, res.url, nil
}

func (u *uploadService) finalize(ctx context.Context, in port.FinalizeInput) (*finalizeResult, error) {

	session, err := u.uow.SessionRepo().FindByIDAndOpen(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	// The ledger row may have been tampered with or drifted; the caller must
	// resupply the original metadata and both must agree.
	if session.OwnerID != in.OwnerID ||
		session.Category != in.Category ||
		session.OriginalName != sanitizeFileName(in.OriginalName) ||
		session.DeclaredSize != in.DeclaredSize ||
		session.DeclaredTotalParts != in.TotalParts {
		return nil, domain.ErrMetadataMismatch
	}

	missing, err := u.missingIndices(ctx, in.SessionID, in.TotalParts)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, &domain.IncompleteUploadError{Missing: missing}
	}

	parts, err := u.uow.PartRepo().ListBySession(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	byIndex := make(map[int]domain.Part, len(parts))
	for _, p := range parts {
		byIndex[p.Index] = p
	}

	// Fast ledger-level size check before any byte is read. On mismatch the
	// parts stay in place for inspection.
	var total int64
	for i := 0; i < in.TotalParts; i++ {
		p, ok := byIndex[i]
		if !ok {
			return nil, &domain.IncompleteUploadError{Missing: []int{i}}
		}
		total += p.ByteLength
	}
	if total != in.DeclaredSize {
		return nil, fmt.Errorf("%w: parts total %d bytes, declared %d", domain.ErrSizeMismatch, total, in.DeclaredSize)
	}

	now := time.Now()
	key := artifactKey(session.OwnerID, session.Category, session.OriginalName, now)
	contentType := contentTypeFor(session.OriginalName)

	if err := u.assemble(ctx, byIndex, in.TotalParts, key, in.DeclaredSize, contentType); err != nil {
		return nil, err
	}

	artifact := domain.Artifact{
		ID:          uuid.New(),
		OwnerID:     session.OwnerID,
		Category:    session.Category,
		FileName:    session.OriginalName,
		ContentType: contentType,
		ByteLength:  in.DeclaredSize,
		StorageKey:  key,
		CreatedAt:   now,
	}

	txErr := u.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		if err := uow.ArtifactRepo().Create(ctx, artifact); err != nil {
			return err
		}
		if err := uow.PartRepo().DeleteBySession(ctx, session.ID); err != nil {
			return err
		}
		return uow.SessionRepo().Delete(ctx, session.ID)
	})
	if txErr != nil {
		// The object was written but never referenced; take it back down so
		// nothing half-committed stays visible.
		if rmErr := u.blobStore.RemoveObject(ctx, key); rmErr != nil {
			u.logger.Error("failed to remove unreferenced artifact object", "key", key, "error", rmErr)
		}
		return nil, fmt.Errorf("could not commit artifact: %w", txErr)
	}

	if err := u.blobStore.RemovePrefix(ctx, partPrefix(session.ID)); err != nil {
		u.logger.Warn("failed to remove transient parts", "session_id", session.ID, "error", err)
	}

	if err := u.events.PublishArtifactAssembled(ctx, domain.ArtifactAssembledEvent{
		ArtifactID:  artifact.ID,
		OwnerID:     artifact.OwnerID,
		Category:    artifact.Category,
		FileName:    artifact.FileName,
		ByteLength:  artifact.ByteLength,
		StorageKey:  artifact.StorageKey,
		AssembledAt: artifact.CreatedAt,
	}); err != nil {
		u.logger.Warn("failed to publish artifact event", "artifact_id", artifact.ID, "error", err)
	}

	url, _, err := u.blobStore.PresignedDownloadURL(ctx, key)
	if err != nil {
		u.logger.Warn("failed to presign artifact url", "artifact_id", artifact.ID, "error", err)
	}

	return &finalizeResult{artifact: &artifact, url: url}, nil
}

// assemble streams parts 0..totalParts-1 through a pipe into a single durable
// write. Any read or digest failure tears the pipe down, so the artifact
// object either appears whole or not at all.
func (u *uploadService) assemble(ctx context.Context, byIndex map[int]domain.Part, totalParts int, key string, size int64, contentType string) error {
	pr, pw := io.Pipe()

	go func() {
		for i := 0; i < totalParts; i++ {
			if err := u.copyPart(ctx, byIndex[i], pw); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		pw.Close()
	}()

	if err := u.blobStore.WriteArtifact(ctx, key, pr, size, contentType); err != nil {
		pr.CloseWithError(err)
		return fmt.Errorf("could not assemble artifact: %w", err)
	}
	return nil
}

func (u *uploadService) copyPart(ctx context.Context, part domain.Part, w io.Writer) error {
	rc, err := u.blobStore.ReadPart(ctx, part.StorageKey)
	if err != nil {
		return fmt.Errorf("could not read part %d: %w", part.Index, err)
	}
	defer rc.Close()

	hasher := sha256.New()
	n, err := io.Copy(io.MultiWriter(w, hasher), rc)
	if err != nil {
		return fmt.Errorf("could not copy part %d: %w", part.Index, err)
	}
	if n != part.ByteLength {
		return fmt.Errorf("%w: part %d holds %d bytes, ledger says %d", domain.ErrSizeMismatch, part.Index, n, part.ByteLength)
	}
	if sum := hex.EncodeToString(hasher.Sum(nil)); sum != part.ChecksumSHA256 {
		return fmt.Errorf("%w: part %d", domain.ErrChecksumMismatch, part.Index)
	}
	return nil
}
