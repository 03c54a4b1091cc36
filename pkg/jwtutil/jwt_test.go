package jwtutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"

	"tracker-service/internal/model"
	"tracker-service/pkg/config"
)

const testKey = "test-signing-key"

func initCodec(t *testing.T) {
	t.Helper()
	Initialize(&config.JWTConfig{SigningKey: testKey, ExpirationHours: 24})
}

func TestTokenRoundTrip(t *testing.T) {
	initCodec(t)

	user := &model.User{ID: 42, TenantID: 7, Role: model.RoleAdmin}
	token, err := GenerateToken(user)
	require.NoError(t, err)

	principal, err := ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, uint(42), principal.SubjectID)
	require.Equal(t, uint(7), principal.TenantID)
	require.Equal(t, model.RoleAdmin, principal.Role)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	initCodec(t)

	token, err := GenerateToken(&model.User{ID: 1, TenantID: 1, Role: model.RoleMember})
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	require.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ValidateToken("not-a-token")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateRejectsWrongKey(t *testing.T) {
	initCodec(t)

	// Token signed with a different key: valid shape, wrong signature.
	claims := Claims{
		SubjectID: 1, TenantID: 1, Role: model.RoleMember,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-key"))
	require.NoError(t, err)

	_, err = ValidateToken(forged)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	initCodec(t)

	claims := Claims{
		SubjectID: 1, TenantID: 1, Role: model.RoleMember,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
	require.NoError(t, err)

	_, err = ValidateToken(expired)
	require.ErrorIs(t, err, ErrTokenExpired)
}

// A correctly signed token missing any of the three required claims is
// invalid: the scoping guard cannot work with a partial principal.
func TestValidateRejectsIncompleteClaims(t *testing.T) {
	initCodec(t)

	cases := []Claims{
		{TenantID: 1, Role: model.RoleMember},
		{SubjectID: 1, Role: model.RoleMember},
		{SubjectID: 1, TenantID: 1},
	}

	for _, claims := range cases {
		claims.RegisteredClaims = jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
		require.NoError(t, err)

		_, err = ValidateToken(token)
		require.ErrorIs(t, err, ErrTokenInvalid)
	}
}

func TestValidateRejectsUnexpectedSigningMethod(t *testing.T) {
	initCodec(t)

	// alg=none style confusion: a token claiming a non-HMAC method must
	// not reach signature verification with our secret.
	claims := Claims{
		SubjectID: 1, TenantID: 1, Role: model.RoleMember,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateToken(unsigned)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenTTLFromConfig(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: testKey, ExpirationHours: 2})
	require.Equal(t, 2*time.Hour, TokenTTL())

	// Restore the default for other tests in the package.
	initCodec(t)
}
