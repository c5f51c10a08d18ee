// Package handler exposes the storefront engines over HTTP JSON. It is the
// presentation collaborator: every mutation goes through an engine
// operation, and boundary validation (quantity range, promo input) lives
// here rather than in the engines.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/shoplite/storefront/internal/domain/cart"
	"github.com/shoplite/storefront/internal/domain/catalog"
	"github.com/shoplite/storefront/internal/domain/order"
	"github.com/shoplite/storefront/internal/domain/promo"
	"github.com/shoplite/storefront/internal/domain/wishlist"
	"github.com/shoplite/storefront/internal/pricing"
)

// Handler serves the storefront API over the engines.
type Handler struct {
	catalog  catalog.Repository
	cart     *cart.Engine
	wishlist *wishlist.Engine
	orders   *order.Engine
	calc     *pricing.Calculator
	promos   promo.Validator
	session  *promo.Session
}

// New constructs a Handler with the required engines.
func New(
	cat catalog.Repository,
	cartEngine *cart.Engine,
	wishlistEngine *wishlist.Engine,
	orderEngine *order.Engine,
	calc *pricing.Calculator,
	promos promo.Validator,
	session *promo.Session,
) *Handler {
	return &Handler{
		catalog:  cat,
		cart:     cartEngine,
		wishlist: wishlistEngine,
		orders:   orderEngine,
		calc:     calc,
		promos:   promos,
		session:  session,
	}
}

// Routes registers all API routes on a new mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/products", h.listProducts)
	mux.HandleFunc("GET /api/products/{id}", h.getProduct)

	mux.HandleFunc("GET /api/cart", h.getCart)
	mux.HandleFunc("POST /api/cart/items", h.addCartItem)
	mux.HandleFunc("PATCH /api/cart/items/{id}", h.updateCartItem)
	mux.HandleFunc("DELETE /api/cart/items/{id}", h.removeCartItem)
	mux.HandleFunc("POST /api/cart/items/{id}/move-to-wishlist", h.moveCartItemToWishList)

	mux.HandleFunc("GET /api/wishlist", h.getWishList)
	mux.HandleFunc("POST /api/wishlist/items", h.addWishListItem)
	mux.HandleFunc("DELETE /api/wishlist/items/{id}", h.removeWishListItem)
	mux.HandleFunc("POST /api/wishlist/items/{id}/move-to-cart", h.moveWishListItemToCart)

	mux.HandleFunc("POST /api/promo", h.applyPromo)
	mux.HandleFunc("DELETE /api/promo", h.resetPromo)
	mux.HandleFunc("GET /api/checkout/summary", h.getSummary)

	mux.HandleFunc("GET /api/orders", h.listOrders)
	mux.HandleFunc("POST /api/orders", h.placeOrder)
	mux.HandleFunc("DELETE /api/orders/{id}", h.cancelOrder)

	return mux
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zctx.From(r.Context()).Error("Encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respondJSON(w, r, status, errorBody{Code: status, Message: message})
}

// respondInternal logs the error and hides the detail from the client.
func respondInternal(w http.ResponseWriter, r *http.Request, err error) {
	zctx.From(r.Context()).Error("Request failed", zap.Error(err))
	respondError(w, r, http.StatusInternalServerError, "internal error")
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, r, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}
