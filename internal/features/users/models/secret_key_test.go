package users_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewSecretKey_GeneratesDistinctHexSecrets(t *testing.T) {
	first, err := NewSecretKey()
	require.NoError(t, err)
	second, err := NewSecretKey()
	require.NoError(t, err)

	assert.Len(t, first.Secret, secretKeyBytes*2)
	assert.Regexp(t, `^[0-9a-f]+$`, first.Secret)
	assert.NotEqual(t, first.Secret, second.Secret)
	assert.False(t, first.CreatedAt.IsZero())
}
