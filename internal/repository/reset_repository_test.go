package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestResetRepo_ResetAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Children first so foreign keys hold throughout the transaction.
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM refresh_tokens").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM blogs").WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec("DELETE FROM users").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	repo := NewResetRepo(db)
	require.NoError(t, repo.ResetAll(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResetRepo_ResetAllRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM refresh_tokens").WillReturnError(errors.New("table locked"))
	mock.ExpectRollback()

	repo := NewResetRepo(db)
	require.Error(t, repo.ResetAll(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
