// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is trying to
// delete a blog created by someone else, while ErrUsernameExists
// signals that a registration collides with an existing account.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrUsernameExists is returned when a registration reuses a
// username that is already taken. Username uniqueness is enforced
// by a unique index on users.username; the MySQL duplicate-key
// error is mapped to this sentinel so handlers never inspect
// driver error strings themselves.
var ErrUsernameExists = errors.New("username already exists")

// ErrBlogNotFound is returned when a blog cannot be found in the DB.
var ErrBlogNotFound = errors.New("blog not found")
