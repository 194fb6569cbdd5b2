package reqsign

import (
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"
	"math/big"
)

// Sign hashes data with the algorithm's hash function, signs the
// digest with ECDSA, and encodes the (r, s) pair as two fixed-width
// big-endian halves concatenated as r‖s. The half width is the curve
// order size in bytes (32 for ES256, 48 for ES384, 66 for ES521), so
// the signature length is always exactly twice that regardless of
// leading zeros in r or s. This raw fixed-width form, not DER, is the
// wire representation.
func Sign(key *ecdsa.PrivateKey, alg Algorithm, data []byte) ([]byte, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: private key required for signing", ErrInvalidKey)
	}

	p, err := alg.params()
	if err != nil {
		return nil, err
	}

	r, s, err := ecdsa.Sign(rand.Reader, key, hashData(p.hash, data))
	if err != nil {
		return nil, err
	}

	n := p.signatureHalfBytes()
	sig := make([]byte, 2*n)
	r.FillBytes(sig[:n])
	s.FillBytes(sig[n:])

	return sig, nil
}

// Verify checks signature over data with the key's public half. A
// cryptographic mismatch returns (false, nil); structural problems
// (wrong key type, malformed signature length, unknown algorithm)
// return an error. Callers must branch on the boolean, not on the
// error, to decide whether to reject a request.
func Verify(key any, alg Algorithm, signature, data []byte) (bool, error) {
	pub, err := publicKeyOf(key)
	if err != nil {
		return false, err
	}

	p, err := alg.params()
	if err != nil {
		return false, err
	}

	n := p.signatureHalfBytes()
	if len(signature) != 2*n {
		return false, fmt.Errorf("%w: signature must be %d bytes, got %d", ErrInvalidArgument, 2*n, len(signature))
	}

	r := new(big.Int).SetBytes(signature[:n])
	s := new(big.Int).SetBytes(signature[n:])

	return ecdsa.Verify(pub, hashData(p.hash, data), r, s), nil
}

// PublicKeyPoints returns the affine coordinates of the key's public
// half, each base64url-encoded at the curve's fixed byte width.
func PublicKeyPoints(key any) (x, y string, err error) {
	pub, err := publicKeyOf(key)
	if err != nil {
		return "", "", err
	}

	bits := pub.Curve.Params().BitSize

	x, err = EncodeUnsignedInt(pub.X, bits)
	if err != nil {
		return "", "", err
	}

	y, err = EncodeUnsignedInt(pub.Y, bits)
	if err != nil {
		return "", "", err
	}

	return x, y, nil
}

// ProofKeyFor assembles the JWK proof-key document for the key's
// public half under the given algorithm.
func ProofKeyFor(key any, alg Algorithm) (ProofKey, error) {
	p, err := alg.params()
	if err != nil {
		return ProofKey{}, err
	}

	x, y, err := PublicKeyPoints(key)
	if err != nil {
		return ProofKey{}, err
	}

	return ProofKey{
		Alg: alg.String(),
		Use: "sig",
		Crv: p.curveName,
		Kty: p.keyType,
		X:   x,
		Y:   y,
	}, nil
}
