// Package store persists the four named record collections.
//
// A Store holds whole collections as opaque JSON blobs; callers read,
// modify and rewrite a collection in full. There is no isolation across
// calls or across processes: two writers against the same backing data
// race at the collection level and the last write wins. The deployment
// target is a single operator, so this is accepted and documented rather
// than papered over with locking.
package store

import (
	"context"
	"errors"
)

// Fixed collection names.
const (
	CollectionInvoices  = "invoices"
	CollectionCustomers = "customers"
	CollectionSettings  = "settings"
	CollectionAnalytics = "analytics"
)

// Collections lists every known collection, in export order.
var Collections = []string{
	CollectionInvoices,
	CollectionCustomers,
	CollectionSettings,
	CollectionAnalytics,
}

// ErrNotFound is returned by Read when a collection has never been written.
var ErrNotFound = errors.New("collection not found")

// Store reads and writes named collections wholesale.
type Store interface {
	// Read returns the raw serialized collection, or ErrNotFound.
	Read(ctx context.Context, collection string) ([]byte, error)

	// Write replaces the collection contents.
	Write(ctx context.Context, collection string, data []byte) error

	// Delete removes the collection. Deleting an absent collection is not
	// an error.
	Delete(ctx context.Context, collection string) error

	Close() error
}
