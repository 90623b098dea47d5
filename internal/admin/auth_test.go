package admin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	dErrors "ptz-simulator/pkg/domain-errors"
)

func TestAuthenticator_LoginAndValidate(t *testing.T) {
	auth := NewAuthenticator("admin", "s3cret", "signing-key")

	token, err := auth.Login("admin", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestAuthenticator_LoginRejectsBadCredentials(t *testing.T) {
	auth := NewAuthenticator("admin", "s3cret", "signing-key")

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "nope"},
		{"wrong username", "root", "s3cret"},
		{"both wrong", "root", "nope"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Login(tt.username, tt.password)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
		})
	}
}

func TestAuthenticator_EmptyConfiguredPasswordRefusesAllLogins(t *testing.T) {
	auth := NewAuthenticator("admin", "", "signing-key")

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty credentials", "admin", ""},
		{"default username empty password", "admin", ""},
		{"any password", "admin", "guess"},
		{"empty username", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Login(tt.username, tt.password)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
		})
	}
}

func TestAuthenticator_BcryptHashedPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	auth := NewAuthenticator("admin", string(hash), "signing-key")

	token, err := auth.Login("admin", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = auth.Login("admin", "wrong")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))

	// The stored hash itself must not pass as the password.
	_, err = auth.Login("admin", string(hash))
	assert.Error(t, err)
}

func TestAuthenticator_ValidateRejectsGarbage(t *testing.T) {
	auth := NewAuthenticator("admin", "s3cret", "signing-key")

	_, err := auth.ValidateToken("not.a.token")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestAuthenticator_ValidateRejectsForeignKey(t *testing.T) {
	issuer := NewAuthenticator("admin", "s3cret", "key-one")
	verifier := NewAuthenticator("admin", "s3cret", "key-two")

	token, err := issuer.Login("admin", "s3cret")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthenticator_ValidateRejectsExpiredToken(t *testing.T) {
	auth := NewAuthenticator("admin", "s3cret", "signing-key")
	auth.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }

	token, err := auth.Login("admin", "s3cret")
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	assert.Error(t, err)
}
