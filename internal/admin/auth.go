// Package admin gates the back-office endpoints behind the shared
// operator credential. A successful login issues a short-lived JWT the
// middleware validates on every admin call.
package admin

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"ptz-simulator/internal/platform/middleware"
	dErrors "ptz-simulator/pkg/domain-errors"
)

const tokenTTL = 24 * time.Hour

// Authenticator checks the shared credential and mints/validates admin
// tokens.
type Authenticator struct {
	username   string
	password   string
	signingKey []byte
	now        func() time.Time
}

func NewAuthenticator(username, password, signingKey string) *Authenticator {
	return &Authenticator{
		username:   username,
		password:   password,
		signingKey: []byte(signingKey),
		now:        time.Now,
	}
}

// Login verifies the credential pair and returns a signed token. An empty
// configured password means the admin surface is not provisioned, so every
// login is refused rather than matching an empty input.
func (a *Authenticator) Login(username, password string) (string, error) {
	if a.password == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "identifiants incorrects")
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := a.passwordMatches(password)
	if !userOK || !passOK {
		return "", dErrors.New(dErrors.CodeUnauthorized, "identifiants incorrects")
	}

	now := a.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token")
	}
	return signed, nil
}

// passwordMatches accepts the configured credential either as a bcrypt
// hash (the recommended form for ADMIN_PASSWORD) or as plaintext compared
// in constant time.
func (a *Authenticator) passwordMatches(password string) bool {
	if strings.HasPrefix(a.password, "$2a$") ||
		strings.HasPrefix(a.password, "$2b$") ||
		strings.HasPrefix(a.password, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(a.password), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
}

// ValidateToken satisfies middleware.TokenValidator.
func (a *Authenticator) ValidateToken(tokenString string) (*middleware.AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, dErrors.New(dErrors.CodeUnauthorized, "unexpected signing method")
			}
			return a.signingKey, nil
		})
	if err != nil || !token.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token")
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return &middleware.AdminClaims{Username: claims.Subject}, nil
}
