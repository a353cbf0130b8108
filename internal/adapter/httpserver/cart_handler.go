package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Maron09/Product-Store/internal/platform/logger"
	"github.com/Maron09/Product-Store/internal/usecase"
)

type CartHandler struct {
	cart usecase.CartUsecase
	log  logger.Logger
}

func NewCartHandler(cart usecase.CartUsecase, log logger.Logger) *CartHandler {
	return &CartHandler{cart: cart, log: log}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.cart.Get(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "cart retrieved", newCartView(view))
}

func (h *CartHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.cart.GetItem(r.Context(), userIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "cart item retrieved", newCartItemView(item))
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := decodeBody(r, &req); err != nil || req.ProductID == "" {
		respondBadRequest(w, "product_id is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := h.cart.Add(r.Context(), userIDFromContext(r.Context()), req.ProductID, req.Quantity)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusCreated, "item added to cart", newCartItemView(item))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	item, err := h.cart.UpdateQuantity(r.Context(), userIDFromContext(r.Context()), chi.URLParam(r, "id"), req.Quantity)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "cart item updated", newCartItemView(item))
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Remove(r.Context(), userIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "cart item removed", nil)
}
