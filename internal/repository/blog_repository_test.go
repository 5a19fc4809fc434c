package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xricefarmer/bloglist-server/internal/model"
)

var blogCols = []string{"id", "user_id", "title", "author", "url", "likes", "created_at", "updated_at"}

func blogRow(rows *sqlmock.Rows, id, userID, likes uint64, title string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, userID, title, "Author Name", "http://example.com", likes, now, now)
}

func TestBlogRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO blogs (user_id, title, author, url, likes) VALUES (?, ?, ?, ?, ?)")).
		WithArgs(uint64(1), "New Blog", "Author Name", "http://example.com", uint64(2)).
		WillReturnResult(sqlmock.NewResult(10, 1))
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT user_id, title, author, url, likes, created_at, updated_at FROM blogs WHERE id = ?")).
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"user_id", "title", "author", "url", "likes", "created_at", "updated_at"}).
			AddRow(1, "New Blog", "Author Name", "http://example.com", 2, now, now))

	repo := NewBlogRepo(db)
	b := &model.Blog{UserID: 1, Title: "New Blog", Author: "Author Name", URL: "http://example.com", Likes: 2}
	require.NoError(t, repo.Create(context.Background(), b))
	assert.Equal(t, uint64(10), b.ID)
	assert.Equal(t, uint64(2), b.Likes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogRepo_ListRanked(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The ranking is delegated to the database: likes descending with id
	// ascending as the stable tie-break. The query text is the contract.
	rows := sqlmock.NewRows(blogCols)
	blogRow(rows, 3, 1, 4, "New Blog #3")
	blogRow(rows, 2, 1, 3, "New Blog #2")
	blogRow(rows, 1, 1, 2, "New Blog")
	blogRow(rows, 4, 2, 0, "valo sucks")
	mock.ExpectQuery(`SELECT .+ FROM blogs ORDER BY likes DESC, id ASC`).WillReturnRows(rows)

	repo := NewBlogRepo(db)
	out, err := repo.ListRanked(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 4)
	likes := []uint64{out[0].Likes, out[1].Likes, out[2].Likes, out[3].Likes}
	assert.Equal(t, []uint64{4, 3, 2, 0}, likes)
	assert.Equal(t, "valo sucks", out[3].Title) // zero likes ranks last
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogRepo_Like(t *testing.T) {
	t.Run("increments by exactly one", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE blogs\s+SET likes = likes \+ 1`).
			WithArgs(uint64(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		rows := sqlmock.NewRows(blogCols)
		blogRow(rows, 4, 2, 1, "valo sucks")
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, title, author, url, likes, created_at, updated_at FROM blogs WHERE id = ?")).
			WithArgs(uint64(4)).
			WillReturnRows(rows)

		repo := NewBlogRepo(db)
		b, err := repo.Like(context.Background(), 4)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), b.Likes)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing blog", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE blogs\s+SET likes = likes \+ 1`).
			WithArgs(uint64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewBlogRepo(db)
		_, err = repo.Like(context.Background(), 99)
		require.ErrorIs(t, err, ErrBlogNotFound)
	})
}

func TestBlogRepo_DeleteByIDAndOwner(t *testing.T) {
	tests := []struct {
		name    string
		ownerID uint64
		rowErr  error
		dbOwner uint64
		wantErr error
	}{
		{name: "owner deletes own blog", ownerID: 1, dbOwner: 1},
		{name: "other user is forbidden", ownerID: 2, dbOwner: 1, wantErr: ErrForbidden},
		{name: "missing blog", ownerID: 1, rowErr: sql.ErrNoRows, wantErr: sql.ErrNoRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectBegin()
			q := mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM blogs WHERE id = ?")).
				WithArgs(uint64(5))
			if tt.rowErr != nil {
				q.WillReturnError(tt.rowErr)
			} else {
				q.WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(tt.dbOwner))
			}
			if tt.wantErr == nil {
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM blogs WHERE id = ?")).
					WithArgs(uint64(5)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			} else {
				mock.ExpectRollback()
			}

			repo := NewBlogRepo(db)
			err = repo.DeleteByIDAndOwner(context.Background(), 5, tt.ownerID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBlogRepo_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, title, author, url, likes, created_at, updated_at FROM blogs WHERE id = ?")).
		WithArgs(uint64(42)).
		WillReturnError(sql.ErrNoRows)

	repo := NewBlogRepo(db)
	_, err = repo.GetByID(context.Background(), 42)
	require.ErrorIs(t, err, ErrBlogNotFound)
}
