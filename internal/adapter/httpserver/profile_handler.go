package httpserver

import (
	"net/http"

	"github.com/Maron09/Product-Store/internal/platform/logger"
	"github.com/Maron09/Product-Store/internal/usecase"
)

type ProfileHandler struct {
	profiles usecase.ProfileUsecase
	log      logger.Logger
}

func NewProfileHandler(profiles usecase.ProfileUsecase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, log: log}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.profiles.Get(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "profile retrieved", newProfileView(view))
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName    *string `json:"first_name"`
		LastName     *string `json:"last_name"`
		PhoneNumber  *string `json:"phone_number"`
		BusinessName *string `json:"business_name"`
		Address      *string `json:"address"`
		AvatarURL    *string `json:"avatar_url"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	view, err := h.profiles.Update(r.Context(), userIDFromContext(r.Context()), usecase.ProfileUpdateInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		BusinessName: req.BusinessName,
		Address:      req.Address,
		AvatarURL:    req.AvatarURL,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "profile updated", newProfileView(view))
}
