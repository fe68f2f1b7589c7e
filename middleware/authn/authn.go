// Package authn provides bearer-token authentication for the demo server:
// issuing and verifying JWTs (golang-jwt/v5) and a bcrypt-backed password
// hashing helper (golang.org/x/crypto), adapted from the teacher's
// internal/jwt package and trimmed to a single data type's worth of
// claims rather than the teacher's generic Management[T].
package authn

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrMissingToken is returned by Verify when no bearer token is present.
var ErrMissingToken = errors.New("authn: missing bearer token")

// Claims is the payload carried by issued tokens, alongside the standard
// registered claims (expiry, issuer, etc).
type Claims struct {
	Subject string `json:"sub"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 JWTs for a single signing key.
type Issuer struct {
	signingKey []byte
	issuer     string
	expiry     time.Duration
	now        func() time.Time
}

// NewIssuer builds an Issuer. expiry is the lifetime of issued tokens.
func NewIssuer(signingKey []byte, issuerName string, expiry time.Duration) *Issuer {
	return &Issuer{signingKey: signingKey, issuer: issuerName, expiry: expiry, now: time.Now}
}

// IssueToken signs a new token for subject.
func (i *Issuer) IssueToken(subject string) (string, error) {
	now := i.now()
	claims := Claims{
		Subject: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.signingKey)
}

// VerifyToken parses and validates tokenStr, returning its claims.
func (i *Issuer) VerifyToken(tokenStr string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (any, error) {
		return i.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, errors.New("authn: invalid or expired token")
	}
	claims, _ := parsed.Claims.(*Claims)
	return *claims, nil
}

type contextKey struct{}

// Middleware requires a valid "Authorization: Bearer <token>" header,
// storing the verified Claims in the request context, or rejecting the
// request with 401.
func (i *Issuer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, err := bearerToken(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		claims, err := i.VerifyToken(tokenStr)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), contextKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromContext returns the Claims stashed by Middleware.
func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(contextKey{}).(Claims)
	return claims, ok
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", ErrMissingToken
	}
	return strings.TrimPrefix(header, prefix), nil
}

// HashPassword bcrypt-hashes password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches hash.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
