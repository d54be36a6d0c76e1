package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Figuu/cemse-sub010/internal/core/domain"
	"github.com/Figuu/cemse-sub010/internal/core/port"
	"github.com/google/uuid"
)

type sqlUploadSessionRepository struct {
	db SQLQuerier
}

// NewSQLUploadSessionRepository creates a new sqlUploadSessionRepository
func NewSQLUploadSessionRepository(db SQLQuerier) port.UploadSessionRepository {
	return &sqlUploadSessionRepository{db: db}
}

// Create creates an upload session
func (s *sqlUploadSessionRepository) Create(ctx context.Context, session domain.UploadSession) error {
	query := `
		INSERT INTO upload_session (
			id, owner_id, category, original_name, declared_size, declared_total_parts, status, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.OwnerID,
		session.Category,
		session.OriginalName,
		session.DeclaredSize,
		session.DeclaredTotalParts,
		session.Status,
		session.ExpiresAt,
	)
	if err != nil {
		return err
	}
	return nil
}

func (s *sqlUploadSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	query := `
		SELECT id, owner_id, category, original_name, declared_size, declared_total_parts, status, expires_at, created_at, updated_at
		FROM upload_session
		WHERE id = $1`

	return s.scanOne(s.db.QueryRowContext(ctx, query, id))
}

func (s *sqlUploadSessionRepository) FindByIDAndOpen(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	query := `
		SELECT id, owner_id, category, original_name, declared_size, declared_total_parts, status, expires_at, created_at, updated_at
		FROM upload_session
		WHERE id = $1 AND status = 'open'`

	return s.scanOne(s.db.QueryRowContext(ctx, query, id))
}

// UpdateExpiresAt extends the TTL of an open session
func (s *sqlUploadSessionRepository) UpdateExpiresAt(ctx context.Context, id uuid.UUID, expiresAt time.Time) error {
	query := `UPDATE upload_session SET expires_at = $1, updated_at = now() WHERE id = $2 AND status = 'open'`

	result, err := s.db.ExecContext(ctx, query, expiresAt, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return domain.ErrSessionNotFound
	}

	return nil
}

// UpdateStatus updates status
func (s *sqlUploadSessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.UploadSessionStatus) error {
	query := `UPDATE upload_session SET status = $1, updated_at = now() WHERE id = $2`

	result, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return domain.ErrSessionNotFound
	}

	return nil
}

func (s *sqlUploadSessionRepository) FindAllExpired(ctx context.Context, now time.Time) ([]domain.UploadSession, error) {
	query := `
		SELECT id, owner_id, category, original_name, declared_size, declared_total_parts, status, expires_at, created_at, updated_at
		FROM upload_session
		WHERE status = 'open' AND expires_at < $1`

	rows, err := s.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.UploadSession
	for rows.Next() {
		var row dbUploadSession
		if err := rows.Scan(
			&row.ID,
			&row.OwnerID,
			&row.Category,
			&row.OriginalName,
			&row.DeclaredSize,
			&row.DeclaredTotalParts,
			&row.Status,
			&row.ExpiresAt,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, *row.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// Delete removes the session ledger row
func (s *sqlUploadSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM upload_session WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return domain.ErrSessionNotFound
	}

	return nil
}

func (s *sqlUploadSessionRepository) scanOne(row *sql.Row) (*domain.UploadSession, error) {
	var db dbUploadSession
	err := row.Scan(
		&db.ID,
		&db.OwnerID,
		&db.Category,
		&db.OriginalName,
		&db.DeclaredSize,
		&db.DeclaredTotalParts,
		&db.Status,
		&db.ExpiresAt,
		&db.CreatedAt,
		&db.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	return db.ToDomain(), nil
}

type dbUploadSession struct {
	ID                 uuid.UUID `db:"id"`
	OwnerID            string    `db:"owner_id"`
	Category           string    `db:"category"`
	OriginalName       string    `db:"original_name"`
	DeclaredSize       int64     `db:"declared_size"`
	DeclaredTotalParts int       `db:"declared_total_parts"`
	Status             string    `db:"status"`
	ExpiresAt          time.Time `db:"expires_at"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

// ToDomain converts db obj to domain
func (s *dbUploadSession) ToDomain() *domain.UploadSession {
	return &domain.UploadSession{
		ID:                 s.ID,
		OwnerID:            s.OwnerID,
		Category:           s.Category,
		OriginalName:       s.OriginalName,
		DeclaredSize:       s.DeclaredSize,
		DeclaredTotalParts: s.DeclaredTotalParts,
		Status:             domain.UploadSessionStatus(s.Status),
		ExpiresAt:          s.ExpiresAt,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}
