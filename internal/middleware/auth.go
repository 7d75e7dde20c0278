package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"daycare-backend/internal/auth"
	"daycare-backend/internal/models"
	"daycare-backend/pkg/utils"
)

type contextKey string

const (
	UserIDKey     contextKey = "user_id"
	RoleKey       contextKey = "role"
	ClaimsKey     contextKey = "claims"
	ManagerKey    contextKey = "manager"
	BabysitterKey contextKey = "babysitter"
)

// TokenCookie carries the session token for browser clients.
const TokenCookie = "token"

type ManagerLookup interface {
	Get(ctx context.Context, id int) (*models.Manager, error)
}

type BabysitterLookup interface {
	Get(ctx context.Context, id int) (*models.Babysitter, error)
}

type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type AuthMiddleware struct {
	jwtManager  *auth.JWTManager
	revocations RevocationChecker
	managers    ManagerLookup
	babysitters BabysitterLookup
	logger      *zap.Logger
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, revocations RevocationChecker,
	managers ManagerLookup, babysitters BabysitterLookup, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:  jwtManager,
		revocations: revocations,
		managers:    managers,
		babysitters: babysitters,
		logger:      logger,
	}
}

// TokenFromRequest reads the token from the cookie, then from an
// "Authorization: Bearer" header.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(TokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func unauthorized(w http.ResponseWriter, message string) {
	utils.Fail(w, http.StatusUnauthorized, message)
}

// verify checks the token and its revocation status for the wanted role.
func (m *AuthMiddleware) verify(w http.ResponseWriter, r *http.Request, role models.Role) (*auth.Claims, bool) {
	token := TokenFromRequest(r)
	if token == "" {
		unauthorized(w, "Not authorized, no token provided")
		return nil, false
	}

	claims, err := m.jwtManager.ValidateToken(token)
	if err != nil || claims.Role != role {
		unauthorized(w, "Not authorized, invalid or expired token")
		return nil, false
	}

	revoked, err := m.revocations.IsRevoked(r.Context(), claims.ID)
	if err != nil {
		m.logger.Warn("revocation check failed", zap.Error(err))
	}
	if revoked {
		unauthorized(w, "Not authorized, invalid or expired token")
		return nil, false
	}
	return claims, true
}

// RequireManager admits requests carrying a valid manager token whose
// manager row still exists.
func (m *AuthMiddleware) RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := m.verify(w, r, models.RoleManager)
		if !ok {
			return
		}

		manager, err := m.managers.Get(r.Context(), claims.UserID)
		if err != nil {
			unauthorized(w, "Not authorized, user not found")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, manager.ID)
		ctx = context.WithValue(ctx, RoleKey, models.RoleManager)
		ctx = context.WithValue(ctx, ClaimsKey, claims)
		ctx = context.WithValue(ctx, ManagerKey, manager)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireBabysitter admits requests carrying a valid babysitter token whose
// babysitter row still exists.
func (m *AuthMiddleware) RequireBabysitter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := m.verify(w, r, models.RoleBabysitter)
		if !ok {
			return
		}

		babysitter, err := m.babysitters.Get(r.Context(), claims.UserID)
		if err != nil {
			unauthorized(w, "Not authorized, babysitter not found")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, babysitter.ID)
		ctx = context.WithValue(ctx, RoleKey, models.RoleBabysitter)
		ctx = context.WithValue(ctx, ClaimsKey, claims)
		ctx = context.WithValue(ctx, BabysitterKey, babysitter)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext extracts the caller's row id from request context
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}

func GetClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*auth.Claims)
	return claims, ok
}

func GetManagerFromContext(ctx context.Context) (*models.Manager, bool) {
	manager, ok := ctx.Value(ManagerKey).(*models.Manager)
	return manager, ok
}

func GetBabysitterFromContext(ctx context.Context) (*models.Babysitter, bool) {
	babysitter, ok := ctx.Value(BabysitterKey).(*models.Babysitter)
	return babysitter, ok
}
