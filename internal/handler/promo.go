package handler

import (
	"net/http"

	"github.com/shoplite/storefront/internal/domain/promo"
)

type promoRequest struct {
	Code string `json:"code"`
}

type promoResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// applyPromo validates the submitted code and, when accepted, flips the
// in-memory session flag that feeds the discount. Validation and
// application stay separate steps: a rejected code never touches the flag.
func (h *Handler) applyPromo(w http.ResponseWriter, r *http.Request) {
	var req promoRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result := h.promos.Validate(req.Code)
	body := promoResponse{Status: string(result.Status), Message: result.Message}
	switch result.Status {
	case promo.StatusValid:
		h.session.Apply(req.Code)
		respondJSON(w, r, http.StatusOK, body)
	case promo.StatusRequired:
		respondJSON(w, r, http.StatusBadRequest, body)
	default:
		respondJSON(w, r, http.StatusUnprocessableEntity, body)
	}
}

func (h *Handler) resetPromo(w http.ResponseWriter, r *http.Request) {
	h.session.Reset()
	w.WriteHeader(http.StatusNoContent)
}
