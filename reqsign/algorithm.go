package reqsign

import (
	"crypto"
	"crypto/elliptic"
	"fmt"
)

// Algorithm identifies an ECDSA signing algorithm. The name doubles as
// the JWK "alg" value in proof-key documents.
type Algorithm string

const (
	// ES256 is ECDSA using curve P-256 and SHA-256.
	ES256 Algorithm = "ES256"

	// ES384 is ECDSA using curve P-384 and SHA-384.
	ES384 Algorithm = "ES384"

	// ES521 is ECDSA using curve P-521 and SHA-512. The name follows
	// the curve size; there is no SHA-521.
	ES521 Algorithm = "ES521"
)

// String returns the algorithm name as used in proof-key documents.
func (a Algorithm) String() string {
	return string(a)
}

// algorithmParams carries everything derived from an Algorithm: the
// curve, the hash, and the JWK naming strings.
type algorithmParams struct {
	curve     elliptic.Curve
	hash      crypto.Hash
	curveName string
	keyType   string
}

var algorithms = map[Algorithm]algorithmParams{
	ES256: {curve: elliptic.P256(), hash: crypto.SHA256, curveName: "P-256", keyType: "EC"},
	ES384: {curve: elliptic.P384(), hash: crypto.SHA384, curveName: "P-384", keyType: "EC"},
	ES521: {curve: elliptic.P521(), hash: crypto.SHA512, curveName: "P-521", keyType: "EC"},
}

// params looks up the parameters for the algorithm. Unknown algorithms
// return ErrUnsupportedAlgorithm.
func (a Algorithm) params() (algorithmParams, error) {
	p, ok := algorithms[a]
	if !ok {
		return algorithmParams{}, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, string(a))
	}

	return p, nil
}

// valid reports whether a is a recognized algorithm.
func (a Algorithm) valid() bool {
	_, ok := algorithms[a]
	return ok
}

// signatureHalfBytes returns the byte width of each signature half
// (r and s): the curve order size rounded up to whole bytes. This is
// 32 for P-256, 48 for P-384, and 66 for P-521.
func (p algorithmParams) signatureHalfBytes() int {
	return (p.curve.Params().N.BitLen() + 7) / 8
}

// hashData computes the digest of data with the given hash function.
func hashData(h crypto.Hash, data []byte) []byte {
	hh := h.New()
	hh.Write(data)

	return hh.Sum(nil)
}
