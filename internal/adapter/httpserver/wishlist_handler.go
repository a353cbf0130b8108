package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Maron09/Product-Store/internal/platform/logger"
	"github.com/Maron09/Product-Store/internal/usecase"
)

type WishlistHandler struct {
	wishlist usecase.WishlistUsecase
	log      logger.Logger
}

func NewWishlistHandler(wishlist usecase.WishlistUsecase, log logger.Logger) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist, log: log}
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.wishlist.List(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "wishlist retrieved", newWishlistViews(items))
}

func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := decodeBody(r, &req); err != nil || req.ProductID == "" {
		respondBadRequest(w, "product_id is required")
		return
	}

	if err := h.wishlist.Add(r.Context(), userIDFromContext(r.Context()), req.ProductID); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusCreated, "product added to wishlist", nil)
}

func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.wishlist.Remove(r.Context(), userIDFromContext(r.Context()), chi.URLParam(r, "product_id")); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "product removed from wishlist", nil)
}
