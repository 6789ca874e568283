package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "test-secret-key-for-predictable-results"

func newTestIssuer(t *testing.T, secret string) *Issuer {
	t.Helper()
	i, err := NewIssuer(secret)
	require.NoError(t, err)
	return i
}

func TestNewIssuer_EmptySecret(t *testing.T) {
	_, err := NewIssuer("")
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestIssuer_GenerateToken(t *testing.T) {
	issuer := newTestIssuer(t, testSecretKey)

	tests := []struct {
		name      string
		tokenType TokenType
		duration  time.Duration
	}{
		{name: "success: source token", tokenType: TokenTypeSource, duration: time.Hour},
		{name: "success: admin token", tokenType: TokenTypeAdmin, duration: 30 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenString, err := issuer.GenerateToken(tt.tokenType, tt.duration)
			require.NoError(t, err)
			require.NotEmpty(t, tokenString)

			claims, err := issuer.VerifyToken(tokenString)
			require.NoError(t, err)
			assert.Equal(t, tt.tokenType, claims.Type)
			assert.WithinDuration(t, time.Now().Add(tt.duration), claims.ExpiresAt.Time, 5*time.Second)
		})
	}
}

func TestIssuer_VerifyToken(t *testing.T) {
	issuer := newTestIssuer(t, testSecretKey)
	other := newTestIssuer(t, "different-secret-key")

	validToken, _ := issuer.GenerateToken(TokenTypeSource, time.Hour)
	expiredToken, _ := issuer.GenerateToken(TokenTypeSource, -time.Hour)

	noneToken := jwt.NewWithClaims(jwt.SigningMethodNone, TokenClaims{
		Type:             TokenTypeAdmin,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	wrongMethodToken, _ := noneToken.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name        string
		verifier    *Issuer
		tokenString string
		expectedErr error
	}{
		{name: "success: valid token", verifier: issuer, tokenString: validToken},
		{name: "failure: expired token", verifier: issuer, tokenString: expiredToken, expectedErr: jwt.ErrTokenExpired},
		{name: "failure: invalid signature", verifier: other, tokenString: validToken, expectedErr: jwt.ErrTokenSignatureInvalid},
		{name: "failure: malformed token", verifier: issuer, tokenString: "not-a-valid-jwt-token", expectedErr: jwt.ErrTokenMalformed},
		{name: "failure: wrong signing method", verifier: issuer, tokenString: wrongMethodToken, expectedErr: ErrInvalidSigningMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := tt.verifier.VerifyToken(tt.tokenString)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, claims)
			} else {
				require.NoError(t, err)
				assert.Equal(t, TokenTypeSource, claims.Type)
			}
		})
	}
}

func TestIssuer_Allowed(t *testing.T) {
	issuer := newTestIssuer(t, testSecretKey)

	adminToken, _ := issuer.GenerateToken(TokenTypeAdmin, time.Hour)
	sourceToken, _ := issuer.GenerateToken(TokenTypeSource, time.Hour)
	expiredToken, _ := issuer.GenerateToken(TokenTypeAdmin, -time.Hour)

	tests := []struct {
		name         string
		tokenString  string
		types        []TokenType
		expectedOK   bool
		expectedType TokenType
	}{
		{name: "admin allowed", tokenString: adminToken, types: []TokenType{TokenTypeSource, TokenTypeAdmin}, expectedOK: true, expectedType: TokenTypeAdmin},
		{name: "source not in admin-only set", tokenString: sourceToken, types: []TokenType{TokenTypeAdmin}, expectedOK: false, expectedType: TokenTypeSource},
		{name: "expired", tokenString: expiredToken, types: []TokenType{TokenTypeAdmin}, expectedOK: false, expectedType: TokenTypeUndefined},
		{name: "garbage", tokenString: "invalid-token", types: []TokenType{TokenTypeAdmin}, expectedOK: false, expectedType: TokenTypeUndefined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenType, ok := issuer.Allowed(tt.tokenString, tt.types...)
			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expectedType, tokenType)
		})
	}
}
