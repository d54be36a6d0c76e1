package upload

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/Figuu/cemse-sub010/internal/core/domain"
	"github.com/google/uuid"
)

// ReceivePart durably stores one fragment and records it in the ledger.
// Receiving the same (session, index) twice replaces the stored fragment, so
// client retries are always safe.
func (u *uploadService) ReceivePart(ctx context.Context, sessionID uuid.UUID, index, totalParts int, body io.Reader, byteLength int64) (*domain.PartReceipt, error) {

	session, err := u.uow.SessionRepo().FindByIDAndOpen(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= totalParts {
		return nil, fmt.Errorf("%w: index %d with %d total parts", domain.ErrIndexOutOfRange, index, totalParts)
	}
	if byteLength <= 0 {
		return nil, domain.ErrEmptyPart
	}
	if byteLength > u.uploadCfg.MaxPartSize {
		return nil, fmt.Errorf("%w: part of %d bytes exceeds %d", domain.ErrSizeLimitExceeded, byteLength, u.uploadCfg.MaxPartSize)
	}

	key := partKey(sessionID, index)
	hasher := sha256.New()

	if err := u.blobStore.WritePart(ctx, key, io.TeeReader(body, hasher), byteLength); err != nil {
		return nil, fmt.Errorf("could not store part %d: %w", index, err)
	}
	checksum := hex.EncodeToString(hasher.Sum(nil))

	if err := u.uow.PartRepo().Upsert(ctx, domain.Part{
		SessionID:      sessionID,
		Index:          index,
		ByteLength:     byteLength,
		ChecksumSHA256: checksum,
		StorageKey:     key,
	}); err != nil {
		return nil, fmt.Errorf("could not record part %d: %w", index, err)
	}

	// A live upload keeps its session from expiring under the sweep.
	if err := u.uow.SessionRepo().UpdateExpiresAt(ctx, session.ID, time.Now().Add(u.uploadCfg.SessionTTL)); err != nil {
		return nil, err
	}

	return &domain.PartReceipt{
		SessionID:      sessionID,
		Index:          index,
		ByteLength:     byteLength,
		ChecksumSHA256: checksum,
	}, nil
}
