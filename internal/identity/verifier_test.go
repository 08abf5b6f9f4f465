package identity

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hfchoice/storefront/internal/shared"
)

const testSecret = "unit-test-signing-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestVerifyValidToken(t *testing.T) {
	v := NewJWTVerifier(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "user-a",
		"email": "a@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	id, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-a", id.OwnerKey)
	assert.Equal(t, "a@example.com", id.Email)
}

func TestVerifyWrongSecret(t *testing.T) {
	v := NewJWTVerifier(testSecret)
	token := signToken(t, "some-other-secret", jwt.MapClaims{
		"sub": "user-a",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := v.Verify(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrUnauthorized))
}

func TestVerifyExpiredToken(t *testing.T) {
	v := NewJWTVerifier(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-a",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := v.Verify(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrUnauthorized))
}

func TestVerifyMissingSubject(t *testing.T) {
	v := NewJWTVerifier(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"email": "a@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	_, err := v.Verify(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrUnauthorized))
}

func TestVerifyGarbageToken(t *testing.T) {
	v := NewJWTVerifier(testSecret)

	_, err := v.Verify("not-a-jwt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrUnauthorized))
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	v := NewJWTVerifier(testSecret)
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "user-a",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, verr := v.Verify(token)
	require.Error(t, verr)
	assert.True(t, errors.Is(verr, shared.ErrUnauthorized))
}

// ============================================================================
// MIDDLEWARE
// ============================================================================

func protectedHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := shared.IdentityFromContext(r.Context())
		require.True(t, ok)
		w.Header().Set("X-Owner-Key", id.OwnerKey)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthenticatePassesIdentityThrough(t *testing.T) {
	mw := Middleware{Verifier: NewJWTVerifier(testSecret)}
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "user-a",
		"email": "a@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw.Authenticate(protectedHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "user-a", rec.Header().Get("X-Owner-Key"))
}

func TestAuthenticateMissingHeader(t *testing.T) {
	mw := Middleware{Verifier: NewJWTVerifier(testSecret)}

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()

	mw.Authenticate(protectedHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "no token provided")
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	mw := Middleware{Verifier: NewJWTVerifier(testSecret)}

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Token abc123")
	rec := httptest.NewRecorder()

	mw.Authenticate(protectedHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateBadToken(t *testing.T) {
	mw := Middleware{Verifier: NewJWTVerifier(testSecret)}

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()

	mw.Authenticate(protectedHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
