package reqsign

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
)

// Base64URLEncode encodes b with the URL-safe base64 alphabet and the
// trailing padding stripped, per RFC 7515 Appendix C.
func Base64URLEncode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// Base64URLDecode decodes an unpadded URL-safe base64 string. Padding
// is restored from the string length before decoding; a length with
// remainder 1 mod 4 can never be valid base64.
func Base64URLDecode(s string) ([]byte, error) {
	switch len(s) % 4 {
	case 2:
		s += "=="
	case 3:
		s += "="
	case 1:
		return nil, fmt.Errorf("%w: invalid base64 string", ErrInvalidArgument)
	}

	b, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	return b, nil
}

// EncodeUnsignedInt encodes a non-negative integer as base64url of its
// big-endian bytes. When bitSize is positive the output is padded with
// leading zero bytes to ceil(bitSize/8) bytes, so curve coordinates
// always serialize to the curve's fixed byte width regardless of
// leading zeros in the value. With bitSize zero the minimal byte
// representation is used (empty for zero).
func EncodeUnsignedInt(i *big.Int, bitSize int) (string, error) {
	if i.Sign() < 0 {
		return "", fmt.Errorf("%w: integer must be non-negative", ErrInvalidArgument)
	}

	width := 0
	if bitSize > 0 {
		width = (bitSize + 7) / 8
	}

	if natural := (i.BitLen() + 7) / 8; width < natural {
		width = natural
	}

	b := make([]byte, width)
	i.FillBytes(b)

	return Base64URLEncode(b), nil
}

// CanonicalJSON marshals v and transforms the result into RFC 8785
// canonical form: lexicographically sorted keys, no insignificant
// whitespace, UTF-8 text. Used whenever a stable byte representation
// of structured data is required.
func CanonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return jsoncanonicalizer.Transform(raw)
}
