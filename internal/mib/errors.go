package mib

import "errors"

// NotFoundError and AccessError are two of spec.md §7's taxonomy entries;
// the rest (ParseError, TypeError) live in internal/primitive, and
// StorageError lives in internal/storage.
var (
	ErrNotFound      = errors.New("oid not found")
	ErrAccessDenied  = errors.New("access denied")
	ErrAlreadyExists = errors.New("oid already exists")
)
