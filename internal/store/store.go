// Package store provides generic document persistence. Handlers never
// interpret domain fields; records are opaque documents addressed by the
// "_id" key and grouped into named collections.
package store

import (
	"context"
	"errors"
)

// IDField is the unique key every stored document carries.
const IDField = "_id"

// Document is a free-form record. Field schemas are caller-defined.
type Document = map[string]any

// Filter matches documents by field equality. Nested maps match nested
// objects, so Filter{"user": Filter{"_id": id}} scopes by owner.
type Filter = map[string]any

// ErrNotFound reports a lookup, merge or delete against a missing document.
var ErrNotFound = errors.New("document not found")

// Collection exposes the operations every route handler is built from.
type Collection interface {
	// Insert stores a document, assigning an identifier when absent,
	// and returns the stored document.
	Insert(ctx context.Context, doc Document) (Document, error)
	// FindByID returns the document with the given identifier.
	FindByID(ctx context.Context, id string) (Document, error)
	// FindOneByField returns the first document whose field equals value,
	// in storage order.
	FindOneByField(ctx context.Context, field string, value any) (Document, error)
	// Find returns all documents matching the filter in storage order.
	// A nil or empty filter matches everything.
	Find(ctx context.Context, filter Filter) ([]Document, error)
	// Merge applies a partial document on top of the existing one and
	// returns the result. The identifier is not patchable.
	Merge(ctx context.Context, id string, patch Document) (Document, error)
	// Delete removes the document with the given identifier.
	Delete(ctx context.Context, id string) error
}

// Store hands out collections by name.
type Store interface {
	Collection(name string) Collection
}

// ID extracts the identifier from a document.
func ID(doc Document) string {
	if doc == nil {
		return ""
	}
	id, _ := doc[IDField].(string)
	return id
}
