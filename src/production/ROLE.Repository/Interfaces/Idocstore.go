package interfaces

import "context"

// Document is a snapshot of a stored document joined with its store key.
// Data never contains the id; the adapter strips the key on read and the
// service joins it onto API output.
type Document struct {
	ID   string
	Data map[string]any
}

// Store exposes the document store capabilities the services consume.
// "Document absent" and "zero matches" are ordinary outcomes, never errors:
// Get reports absence through its bool result.
type Store interface {
	// Add persists data in a new document and returns the written snapshot
	// re-read from the store, which is the source of truth for computed
	// fields.
	Add(ctx context.Context, collection string, data map[string]any) (Document, error)

	// Get fetches a document by id. A missing or malformed id yields
	// (Document{}, false, nil).
	Get(ctx context.Context, collection, id string) (Document, bool, error)

	// RunQuery executes a query built with NewQuery.
	RunQuery(ctx context.Context, q Query) ([]Document, error)

	// Update applies a partial merge onto an existing document.
	// Fields absent from partial are left untouched.
	Update(ctx context.Context, collection, id string, partial map[string]any) error

	// Delete physically removes a document. Deleting an absent document
	// is not an error.
	Delete(ctx context.Context, collection, id string) error
}
