// Package wishlist owns the wish list collection: product references saved
// for later, unique per product.
package wishlist

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/shoplite/storefront/internal/storage"
)

// Entry references a product saved to the wish list.
type Entry struct {
	ProductID string
}

// Engine owns the wish list collection and its persistence.
type Engine struct {
	store storage.Store

	mu      sync.Mutex
	entries []Entry
}

// NewEngine loads the persisted wish list and returns an engine over it.
// A malformed persisted document is treated as an empty list.
func NewEngine(ctx context.Context, store storage.Store) (*Engine, error) {
	e := &Engine{store: store}

	doc, err := store.Load(ctx, storage.KeyWishList)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return e, nil
	case err != nil:
		return nil, errors.Wrap(err, "load wish list")
	}

	entries, err := decodeEntries(doc)
	if err != nil {
		zctx.From(ctx).Warn("Malformed wish list document, starting empty", zap.Error(err))
		return e, nil
	}
	e.entries = entries
	return e, nil
}

// Add appends an entry for productID unless one already exists.
func (e *Engine) Add(ctx context.Context, productID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.indexLocked(productID) >= 0 {
		return nil
	}
	next := e.snapshotLocked()
	next = append(next, Entry{ProductID: productID})
	return e.commitLocked(ctx, next)
}

// Remove deletes the entry for productID. Absent entries are a no-op.
func (e *Engine) Remove(ctx context.Context, productID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexLocked(productID)
	if idx < 0 {
		return nil
	}
	next := e.snapshotLocked()
	next = append(next[:idx], next[idx+1:]...)
	return e.commitLocked(ctx, next)
}

// Contains reports whether productID is on the wish list.
func (e *Engine) Contains(productID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.indexLocked(productID) >= 0
}

// Count returns the number of entries.
func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.entries)
}

// Items returns a copy of the entries in insertion order.
func (e *Engine) Items() []Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) commitLocked(ctx context.Context, next []Entry) error {
	if err := e.store.Save(ctx, storage.KeyWishList, encodeEntries(next)); err != nil {
		return errors.Wrap(err, "persist wish list")
	}
	e.entries = next
	return nil
}

func (e *Engine) snapshotLocked() []Entry {
	out := make([]Entry, len(e.entries))
	copy(out, e.entries)
	return out
}

func (e *Engine) indexLocked(productID string) int {
	for i := range e.entries {
		if e.entries[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func encodeEntries(entries []Entry) []byte {
	var enc jx.Encoder
	enc.ArrStart()
	for _, entry := range entries {
		enc.ObjStart()
		enc.FieldStart("productId")
		enc.Str(entry.ProductID)
		enc.ObjEnd()
	}
	enc.ArrEnd()
	return enc.Bytes()
}

func decodeEntries(doc []byte) ([]Entry, error) {
	var entries []Entry
	d := jx.DecodeBytes(doc)
	err := d.Arr(func(d *jx.Decoder) error {
		var entry Entry
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			var err error
			switch key {
			case "productId":
				entry.ProductID, err = d.Str()
			default:
				err = d.Skip()
			}
			return err
		}); err != nil {
			return err
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
