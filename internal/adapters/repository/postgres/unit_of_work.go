package postgres

import (
	"context"
	"database/sql"

	"github.com/Figuu/cemse-sub010/internal/core/port"
)

type sqlUnitOfWork struct {
	db *sql.DB
	tx *sql.Tx
}

func NewUnitOfWork(db *sql.DB) port.UnitOfWork {
	return &sqlUnitOfWork{db: db}
}

func (u *sqlUnitOfWork) SessionRepo() port.UploadSessionRepository {
	if u.tx != nil {
		return NewSQLUploadSessionRepository(u.tx)
	}
	return NewSQLUploadSessionRepository(u.db)
}

func (u *sqlUnitOfWork) PartRepo() port.PartRepository {
	if u.tx != nil {
		return NewSQLPartRepository(u.tx)
	}
	return NewSQLPartRepository(u.db)
}

func (u *sqlUnitOfWork) ArtifactRepo() port.ArtifactRepository {
	if u.tx != nil {
		return NewSQLArtifactRepository(u.tx)
	}
	return NewSQLArtifactRepository(u.db)
}

func (u *sqlUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	uowWithTx := &sqlUnitOfWork{db: u.db, tx: tx}

	if err := fn(uowWithTx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
