// Package storage defines the durable key-value contract backing the
// mutable storefront collections.
//
// Every collection is persisted as a single document under its logical key.
// Writes replace the whole document; reads return the latest written
// document (read-after-write consistent). Engines own one key each and
// rewrite it on every mutation.
package storage

import (
	"context"

	"github.com/go-faster/errors"
)

// Collection keys. Each engine writes exactly one of these.
const (
	KeyCart        = "cart"
	KeyWishList    = "wishList"
	KeyOrders      = "orders"
	KeyOrderPlaced = "isOrderPlaced"
)

// ErrNotFound is returned by Load when no document exists under the key.
var ErrNotFound = errors.New("key not found")

// Store persists one document per logical collection key.
type Store interface {
	// Load returns the document stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save replaces the document stored under key.
	Save(ctx context.Context, key string, doc []byte) error
	// Delete removes the document stored under key. Deleting an absent
	// key is not an error.
	Delete(ctx context.Context, key string) error
}
