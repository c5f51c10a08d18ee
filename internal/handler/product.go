package handler

import (
	"net/http"

	"github.com/go-faster/errors"

	"github.com/shoplite/storefront/internal/domain/catalog"
	"github.com/shoplite/storefront/pkg/money"
)

type productView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Image        string `json:"image"`
	PriceCents   int64  `json:"priceCents"`
	PriceDisplay string `json:"priceDisplay"`
}

func toProductView(p catalog.Product) productView {
	return productView{
		ID:           p.ID,
		Name:         p.Name,
		Image:        p.Image,
		PriceCents:   p.PriceCents,
		PriceDisplay: money.Format(p.PriceCents),
	}
}

// listProducts returns the catalog, optionally filtered by the q query
// parameter (case-insensitive name substring).
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.FindByName(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}
	respondJSON(w, r, http.StatusOK, views)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "product not found")
			return
		}
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toProductView(*p))
}
