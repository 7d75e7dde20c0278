package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"daycare-backend/internal/config"
	"daycare-backend/internal/models"
	"daycare-backend/internal/timeutil"
)

// Claims identifies the caller. The subject is the row id in the table
// selected by Role; the token ID is used for logout revocation.
type Claims struct {
	UserID int         `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	cfg *config.Config
}

func NewJWTManager(cfg *config.Config) *JWTManager {
	return &JWTManager{cfg: cfg}
}

// TTL is how long an issued token stays valid.
func (j *JWTManager) TTL() time.Duration {
	return time.Duration(j.cfg.JWT.ExpirationHours) * time.Hour
}

// GenerateToken issues a signed session token for a manager or babysitter.
func (j *JWTManager) GenerateToken(userID int, role models.Role) (string, *Claims, error) {
	now := timeutil.Now()

	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.Itoa(userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL())),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    j.cfg.JWT.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.cfg.JWT.Secret))
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// ValidateToken verifies signature and expiry and returns the claims
func (j *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(j.cfg.JWT.Secret), nil
	}, jwt.WithIssuer(j.cfg.JWT.Issuer))
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Role != models.RoleManager && claims.Role != models.RoleBabysitter {
		return nil, errors.New("invalid token role")
	}
	return claims, nil
}
