package handler

import (
	"net/http"

	"github.com/shoplite/storefront/internal/domain/cart"
	"github.com/shoplite/storefront/internal/pricing"
	"github.com/shoplite/storefront/pkg/money"
)

type cartItemView struct {
	ProductID    string `json:"productId"`
	Quantity     int    `json:"quantity"`
	PriceCents   int64  `json:"priceCents"`
	PriceDisplay string `json:"priceDisplay"`
}

type summaryView struct {
	SubtotalCents int64  `json:"subtotalCents"`
	ShippingCents int64  `json:"shippingCents"`
	DiscountCents int64  `json:"discountCents"`
	TaxCents      int64  `json:"taxCents"`
	TotalCents    int64  `json:"totalCents"`
	TotalDisplay  string `json:"totalDisplay"`
	PromoApplied  bool   `json:"promoApplied"`
}

type cartView struct {
	Items         []cartItemView `json:"items"`
	TotalQuantity int            `json:"totalQuantity"`
	Summary       summaryView    `json:"summary"`
}

func (h *Handler) cartView() cartView {
	items := h.cart.Items()
	views := make([]cartItemView, 0, len(items))
	pricingItems := make([]pricing.Item, 0, len(items))
	for _, item := range items {
		views = append(views, cartItemView{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			PriceCents:   item.PriceCents,
			PriceDisplay: money.Format(item.PriceCents),
		})
		pricingItems = append(pricingItems, pricing.Item{
			PriceCents: item.PriceCents,
			Quantity:   item.Quantity,
		})
	}

	promoApplied := h.session.Applied()
	s := h.calc.Summarize(pricingItems, promoApplied)
	return cartView{
		Items:         views,
		TotalQuantity: h.cart.TotalQuantity(),
		Summary: summaryView{
			SubtotalCents: s.SubtotalCents,
			ShippingCents: s.ShippingCents,
			DiscountCents: s.DiscountCents,
			TaxCents:      s.TaxCents,
			TotalCents:    s.TotalCents,
			TotalDisplay:  money.Format(s.TotalCents),
			PromoApplied:  promoApplied,
		},
	}
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, h.cartView())
}

func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, h.cartView().Summary)
}

type addCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// addCartItem puts a product in the cart. Unknown products are absorbed as
// a no-op (the engine's forgiving policy); the response is the resulting
// cart either way. A missing quantity defaults to 1.
func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		respondError(w, r, http.StatusBadRequest, "productId is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		respondError(w, r, http.StatusUnprocessableEntity, "quantity must be positive")
		return
	}

	if err := h.cart.Add(r.Context(), req.ProductID, req.Quantity); err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, h.cartView())
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity"`
}

// updateCartItem replaces a line's quantity. The range check lives here:
// the engine trusts the boundary and does not clamp on update. Zero is a
// remove.
func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateCartItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Quantity == nil {
		respondError(w, r, http.StatusBadRequest, "quantity is required")
		return
	}
	qty := *req.Quantity
	if qty < 0 || qty > cart.MaxQuantity {
		respondError(w, r, http.StatusUnprocessableEntity, "quantity must be between 0 and 50")
		return
	}

	if err := h.cart.UpdateQuantity(r.Context(), r.PathValue("id"), qty); err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, h.cartView())
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Remove(r.Context(), r.PathValue("id")); err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, h.cartView())
}

// moveCartItemToWishList removes the line from the cart and adds the
// product to the wish list as two sequential engine operations; nothing
// couples the two collections.
func (h *Handler) moveCartItemToWishList(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.cart.Remove(r.Context(), id); err != nil {
		respondInternal(w, r, err)
		return
	}
	if err := h.wishlist.Add(r.Context(), id); err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, h.cartView())
}
