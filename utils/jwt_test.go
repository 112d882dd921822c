package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken(12, "an@pfg.gg", "user")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "12:an@pfg.gg", claims.Subject)
	assert.Equal(t, "user", claims.Role)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := VerifyToken("khong.phai.jwt")
	assert.Error(t, err)
}

func TestVerifyTokenRejectsWrongKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "key-mot")
	token, err := GenerateToken(1, "a@b.c", "admin")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "key-hai")
	_, err = VerifyToken(token)
	assert.Error(t, err)
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := GenerateToken(1, "a@b.c", "user")
	assert.Error(t, err)
}

func TestGrabIDFromSub(t *testing.T) {
	assert.Equal(t, "42", GrabIDFromSub("42:someone@pfg.gg"))
	assert.Equal(t, "42", GrabIDFromSub("42"))
}
