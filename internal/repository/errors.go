// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrConflict indicates that conflicting state blocks a write,
// while ErrNotFound signals that the requested row does not exist or is
// not visible to the caller.
package repository

import "errors"

// ErrEmailExists is returned when registration hits the unique email
// constraint. Handlers translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a row does not exist or is filtered out
// by a visibility predicate. Handlers translate this into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a delete or update cannot proceed because
// of conflicting state, such as deleting a category that still has films.
// Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")
