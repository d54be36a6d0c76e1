package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Figuu/cemse-sub010/internal/core/domain"
	"github.com/Figuu/cemse-sub010/internal/core/port"
	"github.com/google/uuid"
)

type sqlPartRepository struct {
	db SQLQuerier
}

// NewSQLPartRepository creates sqlPartRepository that implements port.PartRepository
func NewSQLPartRepository(db SQLQuerier) port.PartRepository {
	return &sqlPartRepository{db: db}
}

// Upsert records a part; the (session_id, part_index) unique constraint turns
// a resend into a replace.
func (s *sqlPartRepository) Upsert(ctx context.Context, part domain.Part) error {
	query := `
		INSERT INTO upload_part (session_id, part_index, byte_length, checksum_sha256, storage_key)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (session_id, part_index)
		DO UPDATE SET byte_length = EXCLUDED.byte_length,
		              checksum_sha256 = EXCLUDED.checksum_sha256,
		              storage_key = EXCLUDED.storage_key,
		              updated_at = now()`

	_, err := s.db.ExecContext(
		ctx,
		query,
		part.SessionID,
		part.Index,
		part.ByteLength,
		part.ChecksumSHA256,
		part.StorageKey,
	)
	if err != nil {
		return fmt.Errorf("error upserting part: %w", err)
	}
	return nil
}

func (s *sqlPartRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Part, error) {
	query := `
		SELECT session_id, part_index, byte_length, checksum_sha256, storage_key, created_at, updated_at
		FROM upload_part
		WHERE session_id = $1
		ORDER BY part_index ASC`

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error listing parts: %w", err)
	}
	defer rows.Close()

	var parts []domain.Part
	for rows.Next() {
		var row dbPart
		if err := rows.Scan(
			&row.SessionID,
			&row.Index,
			&row.ByteLength,
			&row.ChecksumSHA256,
			&row.StorageKey,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning part: %w", err)
		}
		parts = append(parts, *row.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating parts: %w", err)
	}

	return parts, nil
}

func (s *sqlPartRepository) ListIndices(ctx context.Context, sessionID uuid.UUID) ([]int, error) {
	query := `SELECT part_index FROM upload_part WHERE session_id = $1 ORDER BY part_index ASC`

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error listing part indices: %w", err)
	}
	defer rows.Close()

	var indices []int
	for rows.Next() {
		var index int
		if err := rows.Scan(&index); err != nil {
			return nil, fmt.Errorf("error scanning part index: %w", err)
		}
		indices = append(indices, index)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating part indices: %w", err)
	}

	return indices, nil
}

func (s *sqlPartRepository) DeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	query := `DELETE FROM upload_part WHERE session_id = $1`

	_, err := s.db.ExecContext(ctx, query, sessionID)
	if err != nil {
		return fmt.Errorf("error deleting parts: %w", err)
	}
	return nil
}

type dbPart struct {
	SessionID      uuid.UUID `db:"session_id"`
	Index          int       `db:"part_index"`
	ByteLength     int64     `db:"byte_length"`
	ChecksumSHA256 string    `db:"checksum_sha256"`
	StorageKey     string    `db:"storage_key"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// ToDomain converts db obj to domain
func (p *dbPart) ToDomain() *domain.Part {
	return &domain.Part{
		SessionID:      p.SessionID,
		Index:          p.Index,
		ByteLength:     p.ByteLength,
		ChecksumSHA256: p.ChecksumSHA256,
		StorageKey:     p.StorageKey,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
