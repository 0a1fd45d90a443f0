package services

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoginIssuesBoardToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("smash-42"), bcrypt.MinCost)
	require.NoError(t, err)
	svc := NewAuthService(string(hash), "test-secret")

	tokenString, err := svc.Login(context.Background(), "smash-42")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "board", claims["role"])
	assert.Contains(t, claims, "exp")
}

func TestLoginRejectsWrongCode(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("smash-42"), bcrypt.MinCost)
	require.NoError(t, err)
	svc := NewAuthService(string(hash), "test-secret")

	_, err = svc.Login(context.Background(), "wrong")
	assert.ErrorIs(t, err, ErrInvalidAccessCode)
}
