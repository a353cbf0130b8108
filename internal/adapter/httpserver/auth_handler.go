package httpserver

import (
	"net/http"

	"github.com/Maron09/Product-Store/internal/entity"
	"github.com/Maron09/Product-Store/internal/platform/logger"
	"github.com/Maron09/Product-Store/internal/usecase"
)

type AuthHandler struct {
	auth usecase.AuthUsecase
	log  logger.Logger
}

func NewAuthHandler(auth usecase.AuthUsecase, log logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

type signupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	PhoneNumber     string `json:"phone_number"`
	BusinessName    string `json:"business_name"`
}

func (h *AuthHandler) SignupCustomer(w http.ResponseWriter, r *http.Request) {
	h.signup(w, r, entity.RoleCustomer)
}

func (h *AuthHandler) SignupVendor(w http.ResponseWriter, r *http.Request) {
	h.signup(w, r, entity.RoleVendor)
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request, role entity.Role) {
	var req signupRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.Email == "" {
		respondBadRequest(w, "email is required")
		return
	}

	result, err := h.auth.Register(r.Context(), usecase.RegisterInput{
		Role:            role,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		PhoneNumber:     req.PhoneNumber,
		BusinessName:    req.BusinessName,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	if result.OTPResent {
		respondOK(w, http.StatusOK, "account already registered, OTP resent", newUserView(result.User))
		return
	}
	respondOK(w, http.StatusCreated, "account created, check your email for the OTP", newUserView(result.User))
}

func (h *AuthHandler) VerifyAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OTPCode string `json:"otp_code"`
	}
	if err := decodeBody(r, &req); err != nil || req.OTPCode == "" {
		respondBadRequest(w, "otp_code is required")
		return
	}

	if err := h.auth.VerifyAccount(r.Context(), req.OTPCode); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "account verified", nil)
}

func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeBody(r, &req); err != nil || req.Email == "" {
		respondBadRequest(w, "email is required")
		return
	}

	if err := h.auth.RequestNewOTP(r.Context(), req.Email); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "a new OTP has been sent", nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil || req.Email == "" || req.Password == "" {
		respondBadRequest(w, "email and password are required")
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "login successful", map[string]interface{}{
		"user":   newUserView(result.User),
		"tokens": result.Tokens,
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh"`
	}
	if err := decodeBody(r, &req); err != nil || req.RefreshToken == "" {
		respondBadRequest(w, "refresh token is required")
		return
	}

	pair, err := h.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "tokens refreshed", pair)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh"`
	}
	if err := decodeBody(r, &req); err != nil || req.RefreshToken == "" {
		respondBadRequest(w, "refresh token is required")
		return
	}

	if err := h.auth.Logout(r.Context(), req.RefreshToken); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "logged out", nil)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeBody(r, &req); err != nil || req.Email == "" {
		respondBadRequest(w, "email is required")
		return
	}

	if err := h.auth.RequestPasswordReset(r.Context(), req.Email); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "a reset link has been sent to your email", nil)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token           string `json:"token"`
		NewPassword     string `json:"new_password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := decodeBody(r, &req); err != nil || req.Token == "" {
		respondBadRequest(w, "token is required")
		return
	}

	if err := h.auth.ResetPassword(r.Context(), req.Token, req.NewPassword, req.ConfirmPassword); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "password has been reset", nil)
}
