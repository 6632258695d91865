package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-duty-report/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("secret")

	token, expiresAt, err := svc.GenerateAccessToken(user.Principal{
		UserID:       "u-1",
		DepartmentID: "er",
		Role:         user.RoleManager,
	}, time.Hour)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	principal, err := user.PrincipalFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, user.Principal{UserID: "u-1", DepartmentID: "er", Role: user.RoleManager}, principal)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, _, err := NewJWTService("secret").GenerateAccessToken(user.Principal{Role: user.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(NewJWTService("other").JWTAuth(), token)
	assert.Error(t, err)
}
