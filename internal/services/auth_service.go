package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"daycare-backend/internal/apperr"
	"daycare-backend/internal/auth"
	"daycare-backend/internal/metrics"
	"daycare-backend/internal/models"
	"daycare-backend/internal/validation"
)

// AuthService handles logins for both roles, logout revocation and the
// manager second factor.
type AuthService struct {
	Managers    ManagerStore
	Babysitters BabysitterStore
	JWTManager  *auth.JWTManager
	Revoker     TokenRevoker
	Logger      *zap.Logger
}

func NewAuthService(managers ManagerStore, babysitters BabysitterStore, jwtManager *auth.JWTManager,
	revoker TokenRevoker, logger *zap.Logger) *AuthService {
	return &AuthService{
		Managers:    managers,
		Babysitters: babysitters,
		JWTManager:  jwtManager,
		Revoker:     revoker,
		Logger:      logger,
	}
}

func loginFailed(role models.Role, err error) error {
	metrics.LoginAttempts.WithLabelValues(string(role), metrics.ResultFailed).Inc()
	return err
}

// IssueToken signs a session token for id in role.
func (s *AuthService) IssueToken(id int, role models.Role) (string, error) {
	token, _, err := s.JWTManager.GenerateToken(id, role)
	if err != nil {
		return "", apperr.Internal(err, "failed to issue token")
	}
	return token, nil
}

func (s *AuthService) TokenTTL() time.Duration {
	return s.JWTManager.TTL()
}

// LoginManager checks credentials and, when enabled, the TOTP code.
func (s *AuthService) LoginManager(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if validation.Blank(req.Email, req.Password) {
		return nil, apperr.Invalid("Please provide email and password")
	}

	m, err := s.Managers.GetByEmail(ctx, req.Email)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, loginFailed(models.RoleManager, apperr.Unauthorized("Email is not registered"))
	}
	if err != nil {
		return nil, err
	}
	if !auth.VerifyPassword(m.PasswordHash, req.Password) {
		return nil, loginFailed(models.RoleManager, apperr.Unauthorized("Password is incorrect"))
	}

	if m.TOTPEnabled {
		if validation.Blank(req.TOTPCode) {
			return nil, loginFailed(models.RoleManager, apperr.Unauthorized("TOTP code is required"))
		}
		if !auth.ValidateTOTP(req.TOTPCode, m.TOTPSecret) {
			return nil, loginFailed(models.RoleManager, apperr.Unauthorized("Invalid TOTP code"))
		}
	}

	token, err := s.IssueToken(m.ID, models.RoleManager)
	if err != nil {
		return nil, err
	}
	metrics.LoginAttempts.WithLabelValues(string(models.RoleManager), metrics.ResultSuccess).Inc()
	return &models.AuthResponse{Token: token, Role: models.RoleManager, User: m}, nil
}

func (s *AuthService) LoginBabysitter(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if validation.Blank(req.Email, req.Password) {
		return nil, apperr.Invalid("Please provide email and password")
	}

	b, err := s.Babysitters.GetByEmail(ctx, req.Email)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, loginFailed(models.RoleBabysitter, apperr.Unauthorized("Email is not registered"))
	}
	if err != nil {
		return nil, err
	}
	if !auth.VerifyPassword(b.PasswordHash, req.Password) {
		return nil, loginFailed(models.RoleBabysitter, apperr.Unauthorized("Password is incorrect"))
	}

	token, err := s.IssueToken(b.ID, models.RoleBabysitter)
	if err != nil {
		return nil, err
	}
	metrics.LoginAttempts.WithLabelValues(string(models.RoleBabysitter), metrics.ResultSuccess).Inc()
	return &models.AuthResponse{Token: token, Role: models.RoleBabysitter, User: b}, nil
}

// Logout revokes the token until its natural expiry. A nil claims value
// (no token presented) is not an error.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.Revoker.RevokeToken(ctx, claims.ID, ttl); err != nil {
		s.Logger.Warn("token revocation failed", zap.String("jti", claims.ID), zap.Error(err))
		return apperr.Internal(err, "failed to revoke token")
	}
	return nil
}

// ClaimsFromToken validates a raw token for logout; invalid tokens yield nil.
func (s *AuthService) ClaimsFromToken(token string) *auth.Claims {
	if token == "" {
		return nil
	}
	claims, err := s.JWTManager.ValidateToken(token)
	if err != nil {
		return nil
	}
	return claims
}

// SetupTOTP generates and stores a pending secret for the manager.
func (s *AuthService) SetupTOTP(ctx context.Context, managerID int) (*models.TOTPSetupResponse, error) {
	m, err := s.Managers.Get(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if m.TOTPEnabled {
		return nil, apperr.Invalid("TOTP is already enabled")
	}

	secret, url, err := auth.GenerateTOTP(m.Email)
	if err != nil {
		return nil, apperr.Internal(err, "failed to generate TOTP secret")
	}
	if err := s.Managers.SetTOTPSecret(ctx, m.ID, secret); err != nil {
		return nil, err
	}
	return &models.TOTPSetupResponse{Secret: secret, URL: url}, nil
}

// EnableTOTP turns on the second factor once the first code verifies.
func (s *AuthService) EnableTOTP(ctx context.Context, managerID int, code string) error {
	m, err := s.Managers.Get(ctx, managerID)
	if err != nil {
		return err
	}
	if m.TOTPSecret == "" {
		return apperr.Invalid("Run TOTP setup first")
	}
	if !auth.ValidateTOTP(code, m.TOTPSecret) {
		return apperr.Invalid("Invalid TOTP code")
	}
	return s.Managers.SetTOTPEnabled(ctx, m.ID, true)
}

// DisableTOTP requires a current code and clears the stored secret.
func (s *AuthService) DisableTOTP(ctx context.Context, managerID int, code string) error {
	m, err := s.Managers.Get(ctx, managerID)
	if err != nil {
		return err
	}
	if !m.TOTPEnabled {
		return apperr.Invalid("TOTP is not enabled")
	}
	if !auth.ValidateTOTP(code, m.TOTPSecret) {
		return apperr.Invalid("Invalid TOTP code")
	}
	return s.Managers.SetTOTPEnabled(ctx, m.ID, false)
}
