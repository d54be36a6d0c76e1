package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Figuu/cemse-sub010/internal/core/domain"
	"github.com/Figuu/cemse-sub010/internal/core/port"
	"github.com/google/uuid"
)

type sqlArtifactRepository struct {
	db SQLQuerier
}

// NewSQLArtifactRepository creates sqlArtifactRepository that implements port.ArtifactRepository
func NewSQLArtifactRepository(db SQLQuerier) port.ArtifactRepository {
	return &sqlArtifactRepository{db: db}
}

// Create inserts a committed artifact
func (s *sqlArtifactRepository) Create(ctx context.Context, artifact domain.Artifact) error {
	query := `
		INSERT INTO artifact (id, owner_id, category, file_name, content_type, byte_length, storage_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(
		ctx,
		query,
		artifact.ID,
		artifact.OwnerID,
		artifact.Category,
		artifact.FileName,
		artifact.ContentType,
		artifact.ByteLength,
		artifact.StorageKey,
		artifact.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting artifact: %w", err)
	}
	return nil
}

// FindByID finds by id
func (s *sqlArtifactRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Artifact, error) {
	query := `
		SELECT id, owner_id, category, file_name, content_type, byte_length, storage_key, created_at
		FROM artifact
		WHERE id = $1`

	var row dbArtifact
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&row.ID,
		&row.OwnerID,
		&row.Category,
		&row.FileName,
		&row.ContentType,
		&row.ByteLength,
		&row.StorageKey,
		&row.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, err
	}

	return row.ToDomain(), nil
}

// ListByOwner lists artifacts belonging to one owner, newest first
func (s *sqlArtifactRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Artifact, error) {
	query := `
		SELECT id, owner_id, category, file_name, content_type, byte_length, storage_key, created_at
		FROM artifact
		WHERE owner_id = $1
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []domain.Artifact
	for rows.Next() {
		var row dbArtifact
		if err := rows.Scan(
			&row.ID,
			&row.OwnerID,
			&row.Category,
			&row.FileName,
			&row.ContentType,
			&row.ByteLength,
			&row.StorageKey,
			&row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning artifact: %w", err)
		}
		artifacts = append(artifacts, *row.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating artifacts: %w", err)
	}

	return artifacts, nil
}

type dbArtifact struct {
	ID          uuid.UUID `db:"id"`
	OwnerID     string    `db:"owner_id"`
	Category    string    `db:"category"`
	FileName    string    `db:"file_name"`
	ContentType string    `db:"content_type"`
	ByteLength  int64     `db:"byte_length"`
	StorageKey  string    `db:"storage_key"`
	CreatedAt   time.Time `db:"created_at"`
}

// ToDomain converts db obj to domain
func (a *dbArtifact) ToDomain() *domain.Artifact {
	return &domain.Artifact{
		ID:          a.ID,
		OwnerID:     a.OwnerID,
		Category:    a.Category,
		FileName:    a.FileName,
		ContentType: a.ContentType,
		ByteLength:  a.ByteLength,
		StorageKey:  a.StorageKey,
		CreatedAt:   a.CreatedAt,
	}
}
