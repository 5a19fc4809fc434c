package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRepo_ValidateRefresh(t *testing.T) {
	future := time.Now().UTC().Add(time.Hour)
	past := time.Now().UTC().Add(-time.Hour)
	revoked := time.Now().UTC().Add(-time.Minute)

	tests := []struct {
		name      string
		expiresAt time.Time
		revokedAt *time.Time
		wantID    uint64
		wantErr   error
	}{
		{name: "active token", expiresAt: future, wantID: 3},
		{name: "expired token", expiresAt: past, wantErr: sql.ErrNoRows},
		{name: "revoked token", expiresAt: future, revokedAt: &revoked, wantErr: sql.ErrNoRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			rows := sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
				AddRow(3, tt.expiresAt, tt.revokedAt)
			mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM refresh_tokens WHERE token_hash=").
				WithArgs("deadbeef").
				WillReturnRows(rows)

			repo := NewTokenRepo(db)
			id, err := repo.ValidateRefresh(context.Background(), "deadbeef")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestTokenRepo_StoreAndRevoke(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	exp := time.Now().UTC().Add(24 * time.Hour)
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs(uint64(3), "deadbeef", exp).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at=NOW").
		WithArgs("deadbeef").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at=NOW").
		WithArgs(uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	repo := NewTokenRepo(db)
	require.NoError(t, repo.StoreRefresh(context.Background(), 3, "deadbeef", exp))
	require.NoError(t, repo.RevokeByHash(context.Background(), "deadbeef"))
	require.NoError(t, repo.RevokeAllForUser(context.Background(), 3))
	require.NoError(t, mock.ExpectationsWereMet())
}
