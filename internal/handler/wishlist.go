package handler

import (
	"net/http"
)

type wishListItemView struct {
	ProductID string `json:"productId"`
	InCart    bool   `json:"inCart"`
}

type wishListView struct {
	Items []wishListItemView `json:"items"`
	Count int                `json:"count"`
}

func (h *Handler) wishListView() wishListView {
	inCart := make(map[string]bool)
	for _, item := range h.cart.Items() {
		inCart[item.ProductID] = true
	}

	entries := h.wishlist.Items()
	views := make([]wishListItemView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, wishListItemView{
			ProductID: entry.ProductID,
			InCart:    inCart[entry.ProductID],
		})
	}
	return wishListView{Items: views, Count: h.wishlist.Count()}
}

func (h *Handler) getWishList(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, h.wishListView())
}

type addWishListItemRequest struct {
	ProductID string `json:"productId"`
}

func (h *Handler) addWishListItem(w http.ResponseWriter, r *http.Request) {
	var req addWishListItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		respondError(w, r, http.StatusBadRequest, "productId is required")
		return
	}

	if err := h.wishlist.Add(r.Context(), req.ProductID); err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, h.wishListView())
}

func (h *Handler) removeWishListItem(w http.ResponseWriter, r *http.Request) {
	if err := h.wishlist.Remove(r.Context(), r.PathValue("id")); err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, h.wishListView())
}

// moveWishListItemToCart removes the entry and adds the product to the
// cart with quantity 1, as two sequential engine operations.
func (h *Handler) moveWishListItemToCart(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.wishlist.Remove(r.Context(), id); err != nil {
		respondInternal(w, r, err)
		return
	}
	if err := h.cart.Add(r.Context(), id, 1); err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, h.wishListView())
}
