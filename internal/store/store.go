// Package store defines the document-store contract the repositories
// are written against, plus the MongoDB implementation of it. Keeping
// the contract narrow (find/insert/update/delete by filter) lets tests
// run against an in-memory fake and keeps store-native id types out of
// the rest of the codebase.
package store

import (
	"context"
	"errors"
)

// Filter selects documents by exact field match. The special key "_id"
// carries the opaque hex identifier; the adapter converts it to the
// store's native id type.
type Filter map[string]any

// Fields is a partial set of document fields to overwrite in an update.
type Fields map[string]any

var (
	// ErrNoDocuments is returned by FindOne when the filter matches nothing.
	ErrNoDocuments = errors.New("store: no documents")

	// ErrDuplicateKey is returned when a write violates a unique index.
	ErrDuplicateKey = errors.New("store: duplicate key")

	// ErrUnavailable wraps transient store failures (connection loss,
	// timeouts). It is the only error in the system a caller may retry.
	ErrUnavailable = errors.New("store: unavailable")
)

// Store is the document-store collaborator. All methods may fail with
// ErrUnavailable; FindOne additionally with ErrNoDocuments and the
// write methods with ErrDuplicateKey.
type Store interface {
	// FindOne decodes the first document matching filter into out.
	FindOne(ctx context.Context, filter Filter, out any) error
	// Find decodes all documents matching filter into out (a pointer to
	// a slice), honoring skip/limit for pagination.
	Find(ctx context.Context, filter Filter, skip, limit int64, out any) error
	// InsertOne stores doc and returns the generated id as a hex string.
	InsertOne(ctx context.Context, doc any) (string, error)
	// UpdateOne overwrites the given fields on the first document
	// matching filter and returns the matched count (0 or 1).
	UpdateOne(ctx context.Context, filter Filter, set Fields) (int64, error)
	// DeleteOne removes the first document matching filter and returns
	// the deleted count (0 or 1).
	DeleteOne(ctx context.Context, filter Filter) (int64, error)
}
