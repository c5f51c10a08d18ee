package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplite/storefront/internal/domain/cart"
	"github.com/shoplite/storefront/internal/domain/catalog"
	"github.com/shoplite/storefront/internal/domain/order"
	"github.com/shoplite/storefront/internal/domain/promo"
	"github.com/shoplite/storefront/internal/domain/wishlist"
	"github.com/shoplite/storefront/internal/pricing"
	"github.com/shoplite/storefront/internal/storage"
)

type memStore struct {
	docs map[string][]byte
}

func (m *memStore) Load(_ context.Context, key string) ([]byte, error) {
	doc, ok := m.docs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return doc, nil
}

func (m *memStore) Save(_ context.Context, key string, doc []byte) error {
	m.docs[key] = doc
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.docs, key)
	return nil
}

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	ctx := context.Background()
	store := &memStore{docs: make(map[string][]byte)}

	cat := catalog.NewStaticRepository([]catalog.Product{
		{ID: "socks", Name: "Athletic Socks", PriceCents: 1090},
		{ID: "ball", Name: "Basketball", PriceCents: 2095},
	})
	cartEngine, err := cart.NewEngine(ctx, cat, store)
	require.NoError(t, err)
	wishlistEngine, err := wishlist.NewEngine(ctx, store)
	require.NoError(t, err)
	calc := pricing.NewCalculator(pricing.DefaultConfig())
	orderEngine, err := order.NewEngine(ctx, cartEngine, calc, store)
	require.NoError(t, err)

	h := New(cat, cartEngine, wishlistEngine, orderEngine, calc,
		promo.NewCodeValidator("demo", nil), &promo.Session{})
	return h.Routes()
}

func do(t *testing.T, mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestProducts(t *testing.T) {
	mux := newTestMux(t)

	rec := do(t, mux, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	products := decode[[]productView](t, rec)
	assert.Len(t, products, 2)
	assert.Equal(t, "$10.90", products[0].PriceDisplay)

	rec = do(t, mux, http.MethodGet, "/api/products?q=basket", "")
	products = decode[[]productView](t, rec)
	require.Len(t, products, 1)
	assert.Equal(t, "ball", products[0].ID)

	rec = do(t, mux, http.MethodGet, "/api/products/socks", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, mux, http.MethodGet, "/api/products/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartFlow(t *testing.T) {
	mux := newTestMux(t)

	rec := do(t, mux, http.MethodPost, "/api/cart/items", `{"productId":"socks","quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[cartView](t, rec)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, int64(2180), view.Summary.SubtotalCents)
	assert.Equal(t, int64(899), view.Summary.ShippingCents)

	// Unknown product: forgiving no-op, cart unchanged.
	rec = do(t, mux, http.MethodPost, "/api/cart/items", `{"productId":"nope"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	view = decode[cartView](t, rec)
	assert.Len(t, view.Items, 1)

	rec = do(t, mux, http.MethodPatch, "/api/cart/items/socks", `{"quantity":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	view = decode[cartView](t, rec)
	assert.Equal(t, 5, view.Items[0].Quantity)

	// Boundary validation: out-of-range update is rejected, cart untouched.
	rec = do(t, mux, http.MethodPatch, "/api/cart/items/socks", `{"quantity":51}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	view = decode[cartView](t, do(t, mux, http.MethodGet, "/api/cart", ""))
	assert.Equal(t, 5, view.Items[0].Quantity)

	// Non-numeric quantity is a bad request.
	rec = do(t, mux, http.MethodPatch, "/api/cart/items/socks", `{"quantity":"three"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Quantity zero removes the line.
	rec = do(t, mux, http.MethodPatch, "/api/cart/items/socks", `{"quantity":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	view = decode[cartView](t, rec)
	assert.Empty(t, view.Items)
}

func TestMoveBetweenCartAndWishList(t *testing.T) {
	mux := newTestMux(t)

	do(t, mux, http.MethodPost, "/api/cart/items", `{"productId":"socks"}`)
	rec := do(t, mux, http.MethodPost, "/api/cart/items/socks/move-to-wishlist", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[cartView](t, rec).Items)

	wl := decode[wishListView](t, do(t, mux, http.MethodGet, "/api/wishlist", ""))
	require.Equal(t, 1, wl.Count)
	assert.Equal(t, "socks", wl.Items[0].ProductID)

	rec = do(t, mux, http.MethodPost, "/api/wishlist/items/socks/move-to-cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[wishListView](t, rec).Count)

	view := decode[cartView](t, do(t, mux, http.MethodGet, "/api/cart", ""))
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)
}

func TestWishListDedupe(t *testing.T) {
	mux := newTestMux(t)

	do(t, mux, http.MethodPost, "/api/wishlist/items", `{"productId":"ball"}`)
	rec := do(t, mux, http.MethodPost, "/api/wishlist/items", `{"productId":"ball"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[wishListView](t, rec).Count)
}

func TestPromo(t *testing.T) {
	mux := newTestMux(t)
	do(t, mux, http.MethodPost, "/api/cart/items", `{"productId":"ball","quantity":5}`)

	// Empty submission is "required", distinct from "invalid".
	recRequired := do(t, mux, http.MethodPost, "/api/promo", `{"code":""}`)
	assert.Equal(t, http.StatusBadRequest, recRequired.Code)
	recInvalid := do(t, mux, http.MethodPost, "/api/promo", `{"code":"bogus"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, recInvalid.Code)
	assert.NotEqual(t,
		decode[promoResponse](t, recRequired).Message,
		decode[promoResponse](t, recInvalid).Message)

	// A rejected code leaves the discount at zero.
	summary := decode[summaryView](t, do(t, mux, http.MethodGet, "/api/checkout/summary", ""))
	assert.Zero(t, summary.DiscountCents)
	assert.False(t, summary.PromoApplied)

	// Valid code, case-insensitive, activates the discount.
	rec := do(t, mux, http.MethodPost, "/api/promo", `{"code":"DEMO"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	summary = decode[summaryView](t, do(t, mux, http.MethodGet, "/api/checkout/summary", ""))
	assert.True(t, summary.PromoApplied)
	// subtotal 10475 → discount 2619
	assert.Equal(t, int64(2619), summary.DiscountCents)

	rec = do(t, mux, http.MethodDelete, "/api/promo", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	summary = decode[summaryView](t, do(t, mux, http.MethodGet, "/api/checkout/summary", ""))
	assert.False(t, summary.PromoApplied)
}

func TestOrderFlow(t *testing.T) {
	mux := newTestMux(t)

	// Placing with an empty cart is a caller error.
	rec := do(t, mux, http.MethodPost, "/api/orders", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	do(t, mux, http.MethodPost, "/api/cart/items", `{"productId":"socks","quantity":2}`)
	rec = do(t, mux, http.MethodPost, "/api/orders",
		`{"deliveryDates":{"socks":"Tuesday, September 1"}}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	placed := decode[orderView](t, rec)
	assert.Regexp(t, `^[a-z0-9]{8}-[a-z0-9]{4}-[a-z0-9]{4}-[a-z0-9]{4}-[a-z0-9]{4}$`, placed.ID)
	require.Len(t, placed.Items, 1)
	assert.Equal(t, "Tuesday, September 1", placed.Items[0].DeliveryDate)

	// The cart was cleared by placement.
	view := decode[cartView](t, do(t, mux, http.MethodGet, "/api/cart", ""))
	assert.Empty(t, view.Items)

	// The confirmation flag shows on the first listing only.
	orders := decode[ordersResponse](t, do(t, mux, http.MethodGet, "/api/orders", ""))
	require.Equal(t, 1, orders.Count)
	assert.True(t, orders.OrderJustPlaced)
	orders = decode[ordersResponse](t, do(t, mux, http.MethodGet, "/api/orders", ""))
	assert.False(t, orders.OrderJustPlaced)

	// Cancel removes the order; cancelling again is a no-op.
	rec = do(t, mux, http.MethodDelete, "/api/orders/"+placed.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, mux, http.MethodDelete, "/api/orders/"+placed.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	orders = decode[ordersResponse](t, do(t, mux, http.MethodGet, "/api/orders", ""))
	assert.Zero(t, orders.Count)
}
