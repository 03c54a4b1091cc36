// Package jwtutil is the session token codec: it turns an authenticated
// user into a signed, time-limited claim set and verifies tokens back into
// request principals. Tokens are stateless; expiry is the only way one
// stops working.
package jwtutil

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"tracker-service/internal/model"
	"tracker-service/pkg/config"
)

var (
	// ErrTokenExpired means the token was well-formed and correctly signed
	// but its lifetime has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers every other verification failure: bad
	// signature, malformed payload, or a claim set missing required fields.
	ErrTokenInvalid = errors.New("token invalid")
)

var (
	secret   []byte
	tokenTTL = 24 * time.Hour
)

// Claims is the signed claim set carried in the Authorization header.
// subjectId, tenantId and role are all required; a token missing any of
// them is rejected at verification.
type Claims struct {
	SubjectID uint   `json:"subjectId"`
	TenantID  uint   `json:"tenantId"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Initialize configures the process-wide signing secret and token lifetime.
// Called once at startup; read-only afterwards.
func Initialize(cfg *config.JWTConfig) {
	secret = []byte(cfg.SigningKey)
	if cfg.ExpirationHours > 0 {
		tokenTTL = time.Duration(cfg.ExpirationHours) * time.Hour
	}
}

// TokenTTL returns the configured token lifetime.
func TokenTTL() time.Duration {
	return tokenTTL
}

// GenerateToken issues a signed session token for the given user.
func GenerateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := Claims{
		SubjectID: user.ID,
		TenantID:  user.TenantID,
		Role:      user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken verifies the signature and expiry of a token and returns
// the normalized principal it carries.
func ValidateToken(tokenString string) (*model.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	// A signed token from an older or foreign issuer could omit fields the
	// scoping guard depends on; treat that the same as a bad token.
	if claims.SubjectID == 0 || claims.TenantID == 0 || claims.Role == "" {
		return nil, ErrTokenInvalid
	}

	return &model.Principal{
		SubjectID: claims.SubjectID,
		TenantID:  claims.TenantID,
		Role:      claims.Role,
	}, nil
}
