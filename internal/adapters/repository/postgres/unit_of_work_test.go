package postgres_test

import (
	"context"
	"testing"

	"github.com/Figuu/cemse-sub010/internal/adapters/repository/postgres"
	"github.com/Figuu/cemse-sub010/internal/core/domain"
	"github.com/Figuu/cemse-sub010/internal/core/port"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSqlUnitOfWork_Execute(t *testing.T) {

	//Arrange
	dbConnection, cleanup, truncate := postgres.NewTestDB(t)
	defer cleanup()

	ctx := context.Background()
	uow := postgres.NewUnitOfWork(dbConnection)
	sessionRepo := postgres.NewSQLUploadSessionRepository(dbConnection)

	t.Run("Should commit when no error", func(t *testing.T) {
		defer truncate()
		session := newTestSession(uuid.New())

		//act
		err := uow.Execute(ctx, func(u port.UnitOfWork) error {
			return u.SessionRepo().Create(ctx, session)
		})

		//assert
		require.NoError(t, err)
		saved, err := sessionRepo.FindByID(ctx, session.ID)
		require.NoError(t, err)
		require.Equal(t, session.ID, saved.ID)
	})

	t.Run("Should rollback when error occurs", func(t *testing.T) {
		defer truncate()
		session := newTestSession(uuid.New())

		//act
		err := uow.Execute(ctx, func(u port.UnitOfWork) error {
			_ = u.SessionRepo().Create(ctx, session)
			return assert.AnError
		})

		//arrange
		require.ErrorIs(t, err, assert.AnError)
		_, err = sessionRepo.FindByID(ctx, session.ID)
		require.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}
