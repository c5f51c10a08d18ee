// Package cart owns the shopping cart collection. All mutations go through
// the Engine, which writes the full collection to the store before the
// in-memory state is updated.
package cart

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/shoplite/storefront/internal/domain/catalog"
	"github.com/shoplite/storefront/internal/storage"
)

// MaxQuantity is the per-item quantity ceiling. It is enforced by clamping
// on the add path only; UpdateQuantity trusts the boundary to pre-validate.
const MaxQuantity = 50

// Item is a cart line. PriceCents is the catalog price snapshot captured
// when the product was first added; later catalog changes do not alter it.
type Item struct {
	ProductID  string
	Quantity   int
	PriceCents int64
}

// Engine owns the cart collection and its persistence.
type Engine struct {
	catalog catalog.Repository
	store   storage.Store

	mu    sync.Mutex
	items []Item
}

// NewEngine loads the persisted cart and returns an engine over it.
// A malformed persisted document is treated as an empty cart.
func NewEngine(ctx context.Context, cat catalog.Repository, store storage.Store) (*Engine, error) {
	e := &Engine{catalog: cat, store: store}

	doc, err := store.Load(ctx, storage.KeyCart)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return e, nil
	case err != nil:
		return nil, errors.Wrap(err, "load cart")
	}

	items, err := decodeItems(doc)
	if err != nil {
		zctx.From(ctx).Warn("Malformed cart document, starting empty", zap.Error(err))
		return e, nil
	}
	e.items = items
	return e, nil
}

// Add puts quantity units of the product into the cart. Unknown products
// are a silent no-op. An existing line is incremented and clamped to
// MaxQuantity; a new line gets its price snapshot from the catalog now.
func (e *Engine) Add(ctx context.Context, productID string, quantity int) error {
	p, err := e.catalog.GetByID(ctx, productID)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "lookup product")
	}
	if quantity < 1 {
		quantity = 1
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.snapshotLocked()
	found := false
	for i := range next {
		if next[i].ProductID == productID {
			next[i].Quantity = clamp(next[i].Quantity + quantity)
			found = true
			break
		}
	}
	if !found {
		next = append(next, Item{
			ProductID:  productID,
			Quantity:   clamp(quantity),
			PriceCents: p.PriceCents,
		})
	}
	return e.commitLocked(ctx, next)
}

// Remove deletes the line for productID. Absent lines are a no-op.
func (e *Engine) Remove(ctx context.Context, productID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.snapshotLocked()
	idx := indexOf(next, productID)
	if idx < 0 {
		return nil
	}
	next = append(next[:idx], next[idx+1:]...)
	return e.commitLocked(ctx, next)
}

// UpdateQuantity replaces the quantity of the line for productID without
// clamping; callers validate the range at the boundary. Zero removes the
// line. Absent lines are a no-op.
func (e *Engine) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity == 0 {
		return e.Remove(ctx, productID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.snapshotLocked()
	idx := indexOf(next, productID)
	if idx < 0 {
		return nil
	}
	next[idx].Quantity = quantity
	return e.commitLocked(ctx, next)
}

// Clear empties the cart.
func (e *Engine) Clear(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.commitLocked(ctx, nil)
}

// Items returns a copy of the cart lines in insertion order.
func (e *Engine) Items() []Item {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// TotalQuantity returns the sum of line quantities, not the line count.
func (e *Engine) TotalQuantity() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := 0
	for _, item := range e.items {
		total += item.Quantity
	}
	return total
}

// TotalCostCents returns the sum of price snapshot times quantity.
func (e *Engine) TotalCostCents() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	var total int64
	for _, item := range e.items {
		total += item.PriceCents * int64(item.Quantity)
	}
	return total
}

// commitLocked persists next and, only on success, makes it the in-memory
// collection. A failed write leaves memory and store unchanged.
func (e *Engine) commitLocked(ctx context.Context, next []Item) error {
	if err := e.store.Save(ctx, storage.KeyCart, encodeItems(next)); err != nil {
		return errors.Wrap(err, "persist cart")
	}
	e.items = next
	return nil
}

func (e *Engine) snapshotLocked() []Item {
	out := make([]Item, len(e.items))
	copy(out, e.items)
	return out
}

func indexOf(items []Item, productID string) int {
	for i := range items {
		if items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func clamp(q int) int {
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}
