package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashYVerify(t *testing.T) {
	hash, err := HashPassword("secreto123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword("secreto123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("otra-cosa", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashesDistintosPorSalt(t *testing.T) {
	h1, err := HashPassword("secreto123")
	require.NoError(t, err)
	h2, err := HashPassword("secreto123")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestVerifyContrasenaLegada(t *testing.T) {
	// Cuentas anteriores a la migración: texto plano en la base.
	ok, err := VerifyPassword("admin123", "admin123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("incorrecta", "admin123")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyHashCorrupto(t *testing.T) {
	_, err := VerifyPassword("x", "$argon2id$mal-formado")
	assert.Error(t, err)
}

func TestIsArgon2Hash(t *testing.T) {
	hash, err := HashPassword("secreto123")
	require.NoError(t, err)

	assert.True(t, IsArgon2Hash(hash))
	assert.False(t, IsArgon2Hash("texto-plano"))
	assert.False(t, IsArgon2Hash(""))
}
