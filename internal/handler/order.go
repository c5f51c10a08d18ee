package handler

import (
	"net/http"

	"github.com/go-faster/errors"

	"github.com/shoplite/storefront/internal/domain/order"
	"github.com/shoplite/storefront/pkg/money"
)

type orderItemView struct {
	ProductID    string `json:"productId"`
	Quantity     int    `json:"quantity"`
	PriceCents   int64  `json:"priceCents"`
	DeliveryDate string `json:"deliveryDate,omitempty"`
}

type orderView struct {
	ID           string          `json:"id"`
	Items        []orderItemView `json:"items"`
	PriceCents   int64           `json:"priceCents"`
	PriceDisplay string          `json:"priceDisplay"`
	Date         string          `json:"date"`
}

func toOrderView(o order.Order) orderView {
	items := make([]orderItemView, len(o.Items))
	for i, item := range o.Items {
		items[i] = orderItemView{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			PriceCents:   item.PriceCents,
			DeliveryDate: item.DeliveryDate,
		}
	}
	return orderView{
		ID:           o.ID,
		Items:        items,
		PriceCents:   o.PriceCents,
		PriceDisplay: money.Format(o.PriceCents),
		Date:         o.Date,
	}
}

type ordersResponse struct {
	Orders []orderView `json:"orders"`
	Count  int         `json:"count"`
	// OrderJustPlaced is the one-shot confirmation flag; reading the
	// order list consumes it.
	OrderJustPlaced bool `json:"orderJustPlaced"`
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	placed, err := h.orders.ConsumePlacedFlag(r.Context())
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	all := h.orders.Orders()
	views := make([]orderView, 0, len(all))
	for _, o := range all {
		views = append(views, toOrderView(o))
	}
	respondJSON(w, r, http.StatusOK, ordersResponse{
		Orders:          views,
		Count:           h.orders.Count(),
		OrderJustPlaced: placed,
	})
}

type placeOrderRequest struct {
	// DeliveryDates maps product ids to chosen delivery date strings.
	DeliveryDates map[string]string `json:"deliveryDates"`
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if r.ContentLength != 0 && !decodeBody(w, r, &req) {
		return
	}

	o, err := h.orders.Place(r.Context(), order.PlaceRequest{
		DeliveryDates: req.DeliveryDates,
		PromoApplied:  h.session.Applied(),
	})
	if err != nil {
		if errors.Is(err, order.ErrEmptyCart) {
			respondError(w, r, http.StatusBadRequest, "cart is empty")
			return
		}
		respondInternal(w, r, err)
		return
	}

	// The promo is spent with the order it discounted.
	h.session.Reset()
	respondJSON(w, r, http.StatusCreated, toOrderView(*o))
}

// cancelOrder deletes the order if it exists. Unknown ids are absorbed as
// a no-op, consistent with the engines' forgiving policy.
func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.Cancel(r.Context(), r.PathValue("id")); err != nil {
		respondInternal(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
