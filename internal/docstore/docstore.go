// Package docstore provides a minimal key-document store: named collections
// of string-keyed field bags. The scheduling engine never sees these untyped
// documents directly; the repository layer validates them into domain types
// immediately after each read.
package docstore

import (
	"context"
	"errors"
)

// ErrNotFound indicates the requested document does not exist.
var ErrNotFound = errors.New("document not found")

// Document is an opaque field bag identified by a key within a collection.
type Document struct {
	Key    string
	Fields map[string]any
}

// Predicate filters documents during a Query scan.
type Predicate func(Document) bool

// Store is the generic document-store contract.
type Store interface {
	// Get returns the document at (collection, key), or ErrNotFound.
	Get(ctx context.Context, collection, key string) (*Document, error)

	// Put creates or replaces the document at (collection, key).
	Put(ctx context.Context, collection, key string, fields map[string]any) error

	// UpdateFields merges partial into the existing document's fields.
	// Fails with ErrNotFound if the document does not exist.
	UpdateFields(ctx context.Context, collection, key string, partial map[string]any) error

	// Delete removes the document at (collection, key).
	// Fails with ErrNotFound if the document does not exist.
	Delete(ctx context.Context, collection, key string) error

	// Query returns all documents in the collection matching pred.
	// A nil pred matches everything. Order is unspecified.
	Query(ctx context.Context, collection string, pred Predicate) ([]Document, error)
}
