package repository

import (
	"context"
	"database/sql"
)

// ResetRepo clears every store. It backs the test-only reset endpoint
// that the end-to-end suite calls before each scenario; the route is
// only registered when the app runs in the "test" environment.
type ResetRepo struct{ DB *sql.DB }

func NewResetRepo(db *sql.DB) *ResetRepo { return &ResetRepo{DB: db} }

// ResetAll deletes all rows from refresh_tokens, blogs and users in one
// transaction, children first so foreign keys never complain. DELETE is
// used instead of TRUNCATE because TRUNCATE performs an implicit commit
// in MySQL and cannot run inside a transaction.
func (r *ResetRepo) ResetAll(ctx context.Context) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	if _, err = tx.ExecContext(ctx, `DELETE FROM refresh_tokens`); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM blogs`); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return err
	}
	return nil
}
