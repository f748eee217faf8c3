//go:build unit

package token_test

import (
	"testing"

	"homeclean/internal/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptIssuer(t *testing.T) {
	issuer := token.NewBcryptIssuerWithCost(bcrypt.MinCost)

	plain, hash, err := issuer.Issue()
	require.NoError(t, err)
	assert.Len(t, plain, 43)
	assert.NotEqual(t, plain, hash)

	t.Run("matching token", func(t *testing.T) {
		assert.NoError(t, issuer.Verify(hash, plain))
	})

	t.Run("other token", func(t *testing.T) {
		other, _, err := issuer.Issue()
		require.NoError(t, err)
		assert.ErrorIs(t, issuer.Verify(hash, other), token.ErrMismatch)
	})

	t.Run("empty inputs", func(t *testing.T) {
		assert.ErrorIs(t, issuer.Verify("", plain), token.ErrInvalidToken)
		assert.ErrorIs(t, issuer.Verify(hash, ""), token.ErrInvalidToken)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		second, _, err := issuer.Issue()
		require.NoError(t, err)
		assert.NotEqual(t, plain, second)
	})
}
