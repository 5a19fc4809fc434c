// Package repository contains data access logic separated from HTTP handlers.
// This file defines repository methods for blog entries: creation, lookup,
// ranked listing, the like counter and owner-guarded deletion. Ownership is
// enforced inside the repository so handlers only translate sentinel errors
// into HTTP status codes.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used for sentinel comparisons

	"github.com/xricefarmer/bloglist-server/internal/model"
)

// BlogRepo encapsulates all database queries related to blogs.  It
// depends on a sql.DB connection which is configured at startup.
type BlogRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewBlogRepo constructs a BlogRepo with the provided DB handle.  This
// function allows dependency injection of the database in tests and at
// startup.  There is no initialization logic beyond assigning the field.
func NewBlogRepo(db *sql.DB) *BlogRepo {
	return &BlogRepo{db: db}
}

// Create inserts a new blog into the database.  On success the blog's
// ID field is populated with the auto-generated value.  After the
// insert, a SELECT is executed to populate the timestamp fields so
// that callers receive a fully populated record.  The Likes field is
// written as given; callers default it to zero when the client omits
// it.
func (r *BlogRepo) Create(ctx context.Context, b *model.Blog) error {
	const qInsert = "INSERT INTO blogs (user_id, title, author, url, likes) VALUES (?, ?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, b.UserID, b.Title, b.Author, b.URL, b.Likes)
	if err != nil {
		return err // propagate DB errors to the caller
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	// Follow-up SELECT to populate default timestamp fields.
	const qSelect = "SELECT user_id, title, author, url, likes, created_at, updated_at FROM blogs WHERE id = ?"
	if err := r.db.QueryRowContext(ctx, qSelect, b.ID).Scan(
		&b.UserID, &b.Title, &b.Author, &b.URL, &b.Likes, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return err
	}
	return nil
}

// GetByID fetches a blog by its ID regardless of owner.  It returns
// ErrBlogNotFound if no row is found.
func (r *BlogRepo) GetByID(ctx context.Context, id uint64) (*model.Blog, error) {
	const q = "SELECT id, user_id, title, author, url, likes, created_at, updated_at FROM blogs WHERE id = ?"
	var b model.Blog
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.UserID, &b.Title, &b.Author, &b.URL, &b.Likes, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return &b, nil
}

// List returns all blogs in insertion order (ascending id).  Ranking is
// the caller's concern; this method exists for consumers that want the
// raw store contents.
func (r *BlogRepo) List(ctx context.Context) ([]*model.Blog, error) {
	const q = `SELECT id, user_id, title, author, url, likes, created_at, updated_at
	           FROM blogs ORDER BY id`
	return r.queryBlogs(ctx, q)
}

// ListRanked returns all blogs ordered by like count descending.  Ties
// keep insertion order (id ascending) so the listing is a stable total
// order and repeated reads of an unchanged store agree. The ordering is
// recomputed by the database on every call; nothing is cached here, so
// a blog created a moment ago is visible to its creator immediately.
func (r *BlogRepo) ListRanked(ctx context.Context) ([]*model.Blog, error) {
	const q = `SELECT id, user_id, title, author, url, likes, created_at, updated_at
	           FROM blogs ORDER BY likes DESC, id ASC`
	return r.queryBlogs(ctx, q)
}

// queryBlogs runs a SELECT returning full blog rows and scans them.
func (r *BlogRepo) queryBlogs(ctx context.Context, q string) ([]*model.Blog, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Blog
	for rows.Next() {
		b := new(model.Blog)
		if err := rows.Scan(&b.ID, &b.UserID, &b.Title, &b.Author, &b.URL, &b.Likes, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Like increments the like counter of a blog by exactly one and returns
// the refreshed record.  The increment happens inside a single UPDATE
// (`likes = likes + 1`) so N concurrent likes always land as +N; there
// is no read-modify-write window to lose updates in.  Returns
// ErrBlogNotFound when the id does not exist.
func (r *BlogRepo) Like(ctx context.Context, id uint64) (*model.Blog, error) {
	const q = `UPDATE blogs
	           SET likes = likes + 1, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrBlogNotFound
	}
	return r.GetByID(ctx, id)
}

// DeleteByIDAndOwner removes a blog provided it belongs to the specified
// owner. If the blog does not exist, sql.ErrNoRows is returned. If the
// blog exists but was created by a different user, ErrForbidden is
// returned. The ownership check and the delete run in one transaction so
// the answer cannot change between the check and the removal.
func (r *BlogRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
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
	// Verify the blog exists and check ownership
	var dbOwnerID uint64
	if err = tx.QueryRowContext(ctx, `SELECT user_id FROM blogs WHERE id = ?`, id).Scan(&dbOwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return err
	}
	if dbOwnerID != ownerID {
		err = ErrForbidden
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}
