package reqsign

import (
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	data := []byte("payload to sign")

	t.Run("round trip for every algorithm", func(t *testing.T) {
		for alg, want := range map[Algorithm]int{ES256: 64, ES384: 96, ES521: 132} {
			t.Run(alg.String(), func(t *testing.T) {
				p, err := alg.params()
				require.NoError(t, err)

				key, err := ecdsa.GenerateKey(p.curve, rand.Reader)
				require.NoError(t, err)

				sig, err := Sign(key, alg, data)
				require.NoError(t, err)
				assert.Len(t, sig, want)

				ok, err := Verify(key, alg, sig, data)
				require.NoError(t, err)
				assert.True(t, ok)

				ok, err = Verify(&key.PublicKey, alg, sig, data)
				require.NoError(t, err)
				assert.True(t, ok)
			})
		}
	})

	t.Run("two signatures over the same data both verify", func(t *testing.T) {
		key := generateTestKey(t)

		first, err := Sign(key, ES256, data)
		require.NoError(t, err)

		second, err := Sign(key, ES256, data)
		require.NoError(t, err)

		for _, sig := range [][]byte{first, second} {
			ok, err := Verify(key, ES256, sig, data)
			require.NoError(t, err)
			assert.True(t, ok)
		}
	})

	t.Run("tampered data fails as boolean, not error", func(t *testing.T) {
		key := generateTestKey(t)

		sig, err := Sign(key, ES256, data)
		require.NoError(t, err)

		tampered := append([]byte(nil), data...)
		tampered[0] ^= 0x01

		ok, err := Verify(key, ES256, sig, tampered)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("tampered signature fails as boolean, not error", func(t *testing.T) {
		key := generateTestKey(t)

		sig, err := Sign(key, ES256, data)
		require.NoError(t, err)

		sig[10] ^= 0x01

		ok, err := Verify(key, ES256, sig, data)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("wrong key fails as boolean", func(t *testing.T) {
		sig, err := Sign(generateTestKey(t), ES256, data)
		require.NoError(t, err)

		ok, err := Verify(generateTestKey(t), ES256, sig, data)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("malformed signature length is a hard error", func(t *testing.T) {
		key := generateTestKey(t)

		_, err := Verify(key, ES256, make([]byte, 63), data)
		assert.ErrorIs(t, err, ErrInvalidArgument)

		_, err = Verify(key, ES256, make([]byte, 65), data)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("nil private key cannot sign", func(t *testing.T) {
		_, err := Sign(nil, ES256, data)
		assert.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("non-key value cannot verify", func(t *testing.T) {
		_, err := Verify("not a key", ES256, make([]byte, 64), data)
		assert.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("unknown algorithm is rejected", func(t *testing.T) {
		key := generateTestKey(t)

		_, err := Sign(key, Algorithm("ES999"), data)
		assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)

		_, err = Verify(key, Algorithm("ES999"), make([]byte, 64), data)
		assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
	})
}

func TestPublicKeyPoints(t *testing.T) {
	t.Run("coordinates decode to the curve width", func(t *testing.T) {
		key := generateTestKey(t)

		x, y, err := PublicKeyPoints(key)
		require.NoError(t, err)

		for _, coord := range []string{x, y} {
			decoded, err := Base64URLDecode(coord)
			require.NoError(t, err)
			assert.Len(t, decoded, 32)
		}
	})

	t.Run("private and public halves agree", func(t *testing.T) {
		key := generateTestKey(t)

		x1, y1, err := PublicKeyPoints(key)
		require.NoError(t, err)

		x2, y2, err := PublicKeyPoints(&key.PublicKey)
		require.NoError(t, err)

		assert.Equal(t, x1, x2)
		assert.Equal(t, y1, y2)
	})

	t.Run("invalid key type is rejected", func(t *testing.T) {
		_, _, err := PublicKeyPoints(42)
		assert.ErrorIs(t, err, ErrInvalidKey)
	})
}

func TestProofKeyFor(t *testing.T) {
	t.Run("document fields", func(t *testing.T) {
		key := generateTestKey(t)

		pk, err := ProofKeyFor(key, ES256)
		require.NoError(t, err)

		assert.Equal(t, "ES256", pk.Alg)
		assert.Equal(t, "sig", pk.Use)
		assert.Equal(t, "P-256", pk.Crv)
		assert.Equal(t, "EC", pk.Kty)
		assert.NotEmpty(t, pk.X)
		assert.NotEmpty(t, pk.Y)
	})

	t.Run("canonical form has sorted keys and no spaces", func(t *testing.T) {
		key := generateTestKey(t)

		pk, err := ProofKeyFor(key, ES256)
		require.NoError(t, err)

		doc, err := pk.MarshalCanonical()
		require.NoError(t, err)

		assert.NotContains(t, string(doc), " ")
		assert.Regexp(t, `^\{"alg":"ES256","crv":"P-256","kty":"EC","use":"sig","x":"[^"]+","y":"[^"]+"\}$`, string(doc))

		var decoded ProofKey
		require.NoError(t, json.Unmarshal(doc, &decoded))
		assert.Equal(t, pk, decoded)
	})

	t.Run("unknown algorithm is rejected", func(t *testing.T) {
		_, err := ProofKeyFor(generateTestKey(t), Algorithm("ES999"))
		assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
	})
}
