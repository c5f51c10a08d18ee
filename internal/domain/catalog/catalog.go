// Package catalog holds the immutable product catalog. Products are loaded
// once at startup and never mutated.
package catalog

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents a catalog item available for purchase. PriceCents is
// the list price in cents; cart items snapshot it at add time.
type Product struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Image      string `json:"image"`
	PriceCents int64  `json:"priceCents"`
}

// Repository defines read operations over the product catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	FindByName(ctx context.Context, query string) ([]Product, error)
}

var _ Repository = (*StaticRepository)(nil)

// StaticRepository serves a fixed product list from memory.
type StaticRepository struct {
	list []Product
	byID map[string]Product
}

// NewStaticRepository builds an indexed repository over the given products.
func NewStaticRepository(products []Product) *StaticRepository {
	byID := make(map[string]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &StaticRepository{list: products, byID: byID}
}

// List returns all products in catalog order.
func (r *StaticRepository) List(_ context.Context) ([]Product, error) {
	out := make([]Product, len(r.list))
	copy(out, r.list)
	return out, nil
}

// GetByID returns the product with the given id, or ErrNotFound.
func (r *StaticRepository) GetByID(_ context.Context, id string) (*Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

// FindByName returns products whose name contains query, case-insensitive.
// An empty query matches everything.
func (r *StaticRepository) FindByName(_ context.Context, query string) ([]Product, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []Product
	for _, p := range r.list {
		if query == "" || strings.Contains(strings.ToLower(p.Name), query) {
			out = append(out, p)
		}
	}
	return out, nil
}
