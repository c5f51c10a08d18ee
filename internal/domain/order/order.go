// Package order owns the order history: placement freezes the current cart
// into an immutable record, cancellation deletes a record wholesale. There
// are no intermediate order states.
package order

import (
	"github.com/go-faster/errors"
)

// ErrEmptyCart is returned when placing an order with nothing in the cart.
var ErrEmptyCart = errors.New("cart is empty")

// Item is a frozen cart line, optionally annotated with the delivery date
// the customer chose at checkout.
type Item struct {
	ProductID    string
	Quantity     int
	PriceCents   int64
	DeliveryDate string
}

// Order is an immutable record of a completed checkout.
type Order struct {
	ID         string
	Items      []Item
	PriceCents int64
	Date       string
}
