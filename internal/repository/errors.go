// Package repository contains data access logic separated from HTTP
// handlers. This file defines sentinel errors shared across the
// repositories so that handlers can translate failure scenarios into
// the right HTTP status without inspecting driver errors.
package repository

import "errors"

// ErrConflict is returned when an insert or update violates a
// uniqueness rule, such as a duplicate category name for the same
// user. Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrGroupNotFound is returned when a group id does not exist.
var ErrGroupNotFound = errors.New("group not found")

// ErrCategoryNotFound is returned when a category id does not exist.
var ErrCategoryNotFound = errors.New("category not found")

// ErrNoteNotFound is returned when a note id does not exist.
var ErrNoteNotFound = errors.New("note not found")
