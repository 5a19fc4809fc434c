package model

import "time"

// Blog represents a single blog entry in the `blogs` table.  A blog
// is created by an authenticated user who becomes its owner; the
// owner is fixed at creation time and never reassigned.  Likes only
// ever grow and the increment happens inside a single SQL UPDATE so
// concurrent likes cannot lose updates.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user ID of the blog's creator (owner).
//  Title     – title of the blog entry.
//  Author    – author named on the entry (free text, not a user).
//  URL       – link to the entry.
//  Likes     – non-negative like counter, defaults to 0.
//  CreatedAt – timestamp when the blog was created.
//  UpdatedAt – timestamp of last update.
type Blog struct {
	ID        uint64    // blogs.id
	UserID    uint64    // blogs.user_id
	Title     string    // blogs.title
	Author    string    // blogs.author
	URL       string    // blogs.url
	Likes     uint64    // blogs.likes
	CreatedAt time.Time // blogs.created_at
	UpdatedAt time.Time // blogs.updated_at
}

// CanDelete reports whether the given user may delete this blog.
// Only the creator of a blog may remove it; the UI uses the same
// predicate to decide whether to render a remove control at all.
func (b *Blog) CanDelete(userID uint64) bool {
	return userID != 0 && userID == b.UserID
}
