// Package identity verifies bearer credentials issued by the external
// identity provider and threads the resulting caller identity through
// request contexts. Token issuance, sign-up UI and password handling all
// live outside this service.
package identity

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hfchoice/storefront/internal/shared"
)

// Verifier checks a bearer credential and yields the caller identity.
type Verifier interface {
	Verify(token string) (shared.Identity, error)
}

// JWTVerifier validates HS256 tokens shared with the identity provider.
// The subject claim is the stable owner key.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier constructs a verifier from the shared signing secret.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

type idClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Verify parses and validates the token, returning the owner key and email.
func (v *JWTVerifier) Verify(token string) (shared.Identity, error) {
	var claims idClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return shared.Identity{}, fmt.Errorf("%w: invalid token", shared.ErrUnauthorized)
	}
	if claims.Subject == "" {
		return shared.Identity{}, fmt.Errorf("%w: token missing subject", shared.ErrUnauthorized)
	}
	return shared.Identity{OwnerKey: claims.Subject, Email: claims.Email}, nil
}
