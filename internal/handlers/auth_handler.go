package handlers

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"daycare-backend/internal/apperr"
	"daycare-backend/internal/middleware"
	"daycare-backend/internal/models"
	"daycare-backend/internal/services"
	"daycare-backend/pkg/utils"
)

type AuthHandler struct {
	Service       *services.AuthService
	SecureCookies bool
	Logger        *zap.Logger
}

func NewAuthHandler(s *services.AuthService, secureCookies bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Service: s, SecureCookies: secureCookies, Logger: logger}
}

// ManagerLogin handles POST /api/auth/manager/login
func (h *AuthHandler) ManagerLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.Service.LoginManager)
}

// BabysitterLogin handles POST /api/auth/babySitter/login
func (h *AuthHandler) BabysitterLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.Service.LoginBabysitter)
}

type loginFunc func(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, fn loginFunc) {
	var req models.LoginRequest
	if err := decode(r, &req); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}

	resp, err := fn(r.Context(), &req)
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}

	data, err := withToken(resp.User, resp.Token)
	if err != nil {
		respondError(h.Logger, w, r, apperr.Internal(err, "failed to encode user"))
		return
	}
	setTokenCookie(w, resp.Token, h.Service.TokenTTL(), h.SecureCookies)
	h.Logger.Info("login", zap.String("role", string(resp.Role)), zap.String("ip", clientIP(r)))
	utils.Success(w, http.StatusOK, "Login successful", utils.Fields{"data": data})
}

// Logout handles POST /api/auth/logout and the babysitter portal logout.
// The cookie is cleared even when the presented token is already invalid.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		claims = h.Service.ClaimsFromToken(middleware.TokenFromRequest(r))
	}
	if err := h.Service.Logout(r.Context(), claims); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	clearTokenCookie(w, h.SecureCookies)
	utils.Success(w, http.StatusOK, "Logout successful", nil)
}

// SetupTOTP handles POST /api/auth/manager/totp/setup
func (h *AuthHandler) SetupTOTP(w http.ResponseWriter, r *http.Request) {
	managerID, _ := middleware.GetUserIDFromContext(r.Context())
	setup, err := h.Service.SetupTOTP(r.Context(), managerID)
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Scan the secret with an authenticator app, then confirm a code",
		utils.Fields{"data": setup})
}

// EnableTOTP handles POST /api/auth/manager/totp/enable
func (h *AuthHandler) EnableTOTP(w http.ResponseWriter, r *http.Request) {
	var req models.TOTPCodeRequest
	if err := decode(r, &req); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	managerID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.Service.EnableTOTP(r.Context(), managerID, req.Code); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Two-factor authentication enabled", nil)
}

// DisableTOTP handles POST /api/auth/manager/totp/disable
func (h *AuthHandler) DisableTOTP(w http.ResponseWriter, r *http.Request) {
	var req models.TOTPCodeRequest
	if err := decode(r, &req); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	managerID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.Service.DisableTOTP(r.Context(), managerID, req.Code); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Two-factor authentication disabled", nil)
}

// clientIP extracts the caller address, preferring proxy headers.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// X-Forwarded-For can contain multiple IPs, take the first one
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
