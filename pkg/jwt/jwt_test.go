package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := Generate("secret", "user-1", "yieldfood-api", 5)
	require.NoError(t, err)

	userID, err := Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestParse_Rejects(t *testing.T) {
	token, err := Generate("secret", "user-1", "yieldfood-api", 5)
	require.NoError(t, err)

	_, err = Parse("other", token)
	assert.Error(t, err, "firma incorrecta")

	expired, err := Generate("secret", "user-1", "yieldfood-api", -1)
	require.NoError(t, err)
	_, err = Parse("secret", expired)
	assert.Error(t, err, "expirado")

	_, err = Parse("", token)
	assert.Error(t, err)

	_, err = Generate("secret", "", "yieldfood-api", 5)
	assert.Error(t, err)
}
