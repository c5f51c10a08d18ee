package order

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/shoplite/storefront/internal/domain/cart"
	"github.com/shoplite/storefront/internal/pricing"
	"github.com/shoplite/storefront/internal/storage"
)

// placedFlagDoc is the document written under storage.KeyOrderPlaced at
// placement time. It is a JSON string so every store backend accepts it.
var placedFlagDoc = []byte(`"true"`)

// dateLayout formats the human-readable placement date on an order.
const dateLayout = "January 2, 2006"

// PlaceRequest holds the input for placing an order.
type PlaceRequest struct {
	// DeliveryDates annotates cart lines with the chosen delivery date
	// display string, keyed by product id. Missing keys are fine.
	DeliveryDates map[string]string
	// PromoApplied activates the configured discount in the total.
	PromoApplied bool
}

// Engine owns the order history collection and the place/cancel lifecycle.
type Engine struct {
	cart  *cart.Engine
	calc  *pricing.Calculator
	store storage.Store

	mu     sync.Mutex
	orders []Order

	now   func() time.Time
	newID func() string
}

// NewEngine loads the persisted order history and returns an engine over
// it. A malformed persisted document is treated as an empty history.
func NewEngine(ctx context.Context, cartEngine *cart.Engine, calc *pricing.Calculator, store storage.Store) (*Engine, error) {
	e := &Engine{
		cart:  cartEngine,
		calc:  calc,
		store: store,
		now:   time.Now,
		newID: GenerateID,
	}

	doc, err := store.Load(ctx, storage.KeyOrders)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return e, nil
	case err != nil:
		return nil, errors.Wrap(err, "load orders")
	}

	orders, err := decodeOrders(doc)
	if err != nil {
		zctx.From(ctx).Warn("Malformed orders document, starting empty", zap.Error(err))
		return e, nil
	}
	e.orders = orders
	return e, nil
}

// Place freezes the current cart into a new order: it prices the snapshot,
// appends and persists the order, clears the cart, and sets the transient
// placed flag for the next page view. The sequence has no transactional
// rollback; an interruption between steps is an accepted limitation of the
// single-user model.
func (e *Engine) Place(ctx context.Context, req PlaceRequest) (*Order, error) {
	lines := e.cart.Items()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]Item, len(lines))
	pricingItems := make([]pricing.Item, len(lines))
	for i, line := range lines {
		items[i] = Item{
			ProductID:    line.ProductID,
			Quantity:     line.Quantity,
			PriceCents:   line.PriceCents,
			DeliveryDate: req.DeliveryDates[line.ProductID],
		}
		pricingItems[i] = pricing.Item{
			PriceCents: line.PriceCents,
			Quantity:   line.Quantity,
		}
	}
	summary := e.calc.Summarize(pricingItems, req.PromoApplied)

	o := Order{
		ID:         e.newID(),
		Items:      items,
		PriceCents: summary.TotalCents,
		Date:       e.now().Format(dateLayout),
	}

	e.mu.Lock()
	next := append(e.snapshotLocked(), o)
	if err := e.store.Save(ctx, storage.KeyOrders, encodeOrders(next)); err != nil {
		e.mu.Unlock()
		return nil, errors.Wrap(err, "persist orders")
	}
	e.orders = next
	e.mu.Unlock()

	if err := e.cart.Clear(ctx); err != nil {
		return nil, errors.Wrap(err, "clear cart")
	}
	if err := e.store.Save(ctx, storage.KeyOrderPlaced, placedFlagDoc); err != nil {
		return nil, errors.Wrap(err, "set placed flag")
	}
	return &o, nil
}

// Cancel deletes the order with the given id and persists the collection.
// An unknown id is a no-op and writes nothing.
func (e *Engine) Cancel(ctx context.Context, orderID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i := range e.orders {
		if e.orders[i].ID == orderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	next := e.snapshotLocked()
	next = append(next[:idx], next[idx+1:]...)
	if err := e.store.Save(ctx, storage.KeyOrders, encodeOrders(next)); err != nil {
		return errors.Wrap(err, "persist orders")
	}
	e.orders = next
	return nil
}

// Count returns the number of orders in the history.
func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.orders)
}

// Orders returns a copy of the history in placement order.
func (e *Engine) Orders() []Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// ConsumePlacedFlag reports whether an order was just placed and clears
// the flag, so the confirmation shows exactly once.
func (e *Engine) ConsumePlacedFlag(ctx context.Context) (bool, error) {
	_, err := e.store.Load(ctx, storage.KeyOrderPlaced)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "load placed flag")
	}
	if err := e.store.Delete(ctx, storage.KeyOrderPlaced); err != nil {
		return false, errors.Wrap(err, "clear placed flag")
	}
	return true, nil
}

func (e *Engine) snapshotLocked() []Order {
	out := make([]Order, len(e.orders))
	copy(out, e.orders)
	return out
}
