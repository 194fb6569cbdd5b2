package reqsign

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyProviderGet(t *testing.T) {
	t.Run("generates and caches per algorithm", func(t *testing.T) {
		provider := NewKeyProvider()

		first, err := provider.Get(ES256)
		require.NoError(t, err)

		second, err := provider.Get(ES256)
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, first.KeyID(), second.KeyID())

		pk1, err := first.ProofKey()
		require.NoError(t, err)
		pk2, err := second.ProofKey()
		require.NoError(t, err)
		assert.Equal(t, pk1, pk2)
	})

	t.Run("algorithms get independent contexts", func(t *testing.T) {
		provider := NewKeyProvider()

		ctx256, err := provider.Get(ES256)
		require.NoError(t, err)

		ctx384, err := provider.Get(ES384)
		require.NoError(t, err)

		assert.NotSame(t, ctx256, ctx384)
		assert.Equal(t, ES256, ctx256.Algorithm())
		assert.Equal(t, ES384, ctx384.Algorithm())
	})

	t.Run("unrecognized algorithm is rejected", func(t *testing.T) {
		_, err := NewKeyProvider().Get(Algorithm("ES999"))
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("concurrent gets share one context", func(t *testing.T) {
		provider := NewKeyProvider()

		const workers = 16
		contexts := make([]*KeyContext, workers)

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()

				ctx, err := provider.Get(ES256)
				assert.NoError(t, err)
				contexts[i] = ctx
			}()
		}
		wg.Wait()

		for _, ctx := range contexts[1:] {
			assert.Same(t, contexts[0], ctx)
		}
	})
}

func TestKeyProviderImport(t *testing.T) {
	t.Run("imported private key replaces the cached context", func(t *testing.T) {
		provider := NewKeyProvider()

		generated, err := provider.Get(ES256)
		require.NoError(t, err)

		key := generateTestKey(t)
		imported, err := provider.Import(ES256, key)
		require.NoError(t, err)
		assert.NotSame(t, generated, imported)

		cached, err := provider.Get(ES256)
		require.NoError(t, err)
		assert.Same(t, imported, cached)
	})

	t.Run("public key import yields a verify-only context", func(t *testing.T) {
		provider := NewKeyProvider()
		key := generateTestKey(t)

		ctx, err := provider.Import(ES256, &key.PublicKey)
		require.NoError(t, err)

		_, err = ctx.CreateSignature(PolicyServiceAuth, testTimestamp, RequestInfo{Method: "GET", PathAndQuery: "/"})
		assert.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("non-key value is rejected", func(t *testing.T) {
		_, err := NewKeyProvider().Import(ES256, "not a key")
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("unrecognized algorithm is rejected", func(t *testing.T) {
		_, err := NewKeyProvider().Import(Algorithm("ES999"), generateTestKey(t))
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("curve mismatch is rejected", func(t *testing.T) {
		p384Key, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
		require.NoError(t, err)

		_, err = NewKeyProvider().Import(ES256, p384Key)
		assert.ErrorIs(t, err, ErrInvalidKey)
	})
}
