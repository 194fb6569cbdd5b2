package reqsign

import (
	"bytes"
	"crypto/ecdsa"
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vitalvas/sigkit/filetime"
)

// headerSize is the byte length of the plaintext signature header: a
// big-endian uint32 policy version followed by a big-endian uint64
// FILETIME timestamp.
const headerSize = 12

// KeyContext binds one EC key to one algorithm. It is created by a
// KeyProvider (generation or import) and is stateless with respect to
// policies: a single context signs and verifies under any policy
// passed per call, so it is safe for concurrent use.
type KeyContext struct {
	key   any // *ecdsa.PrivateKey or *ecdsa.PublicKey
	alg   Algorithm
	keyID string
}

func newKeyContext(key any, alg Algorithm) *KeyContext {
	return &KeyContext{key: key, alg: alg, keyID: uuid.New().String()}
}

// Algorithm returns the algorithm this context signs with.
func (c *KeyContext) Algorithm() Algorithm {
	return c.alg
}

// KeyID returns a process-local identifier assigned when the context
// was created, useful in logs and cache diagnostics. It is not part of
// the wire format.
func (c *KeyContext) KeyID() string {
	return c.keyID
}

// ProofKey returns the JWK proof-key document for this context's
// public key.
func (c *KeyContext) ProofKey() (ProofKey, error) {
	return ProofKeyFor(c.key, c.alg)
}

// CreateSignature signs the request under the given policy and
// timestamp. The returned bytes are the full signature header value:
// the 12-byte plaintext header followed by the raw signature.
func (c *KeyContext) CreateSignature(policy Policy, ts time.Time, req RequestInfo) ([]byte, error) {
	priv, ok := c.key.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: private key required for signing", ErrInvalidKey)
	}

	header := assembleHeader(policy.Version, ts)

	sig, err := Sign(priv, c.alg, assemblePayload(policy, ts, req))
	if err != nil {
		return nil, err
	}

	return append(header, sig...), nil
}

// VerifySignature checks a signature header value against the request
// it allegedly covers. A version mismatch or cryptographic mismatch
// returns (false, nil): both are expected outcomes for stale or forged
// requests, never errors. Signature data too short to contain the
// header is a caller defect and returns ErrInvalidArgument.
func (c *KeyContext) VerifySignature(policy Policy, req RequestInfo, signature []byte) (bool, error) {
	if len(signature) < headerSize {
		return false, fmt.Errorf("%w: signature data shorter than %d-byte header", ErrInvalidArgument, headerSize)
	}

	version, ts := parseHeader(signature[:headerSize])
	if version != policy.Version {
		return false, nil
	}

	return Verify(c.key, c.alg, signature[headerSize:], assemblePayload(policy, ts, req))
}

// versionBuffer encodes a policy version as 4 big-endian bytes.
func versionBuffer(version uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, version)

	return b
}

// timestampBuffer encodes a timestamp as 8 big-endian bytes of its
// FILETIME tick count.
func timestampBuffer(ts time.Time) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, filetime.FromTime(ts))

	return b
}

// assembleHeader builds the 12-byte plaintext signature header.
func assembleHeader(version uint32, ts time.Time) []byte {
	return append(versionBuffer(version), timestampBuffer(ts)...)
}

// parseHeader splits a 12-byte plaintext header into its policy
// version and timestamp.
func parseHeader(data []byte) (uint32, time.Time) {
	version := binary.BigEndian.Uint32(data[:4])
	ts := filetime.ToTime(binary.BigEndian.Uint64(data[4:12]))

	return version, ts
}

// assemblePayload builds the canonical signable byte stream for the
// given policy, timestamp, and request. The stream is an ordered
// concatenation of NUL-terminated fields: version, timestamp,
// upper-cased method, path and query, the Authorization header value,
// each policy extra header value in order, and the body truncated to
// the policy's MaxBodyBytes. Every field gets its own trailing NUL,
// including the two binary prefix fields. Identical inputs always
// yield identical bytes; both ends must agree on every byte or
// signatures mismatch even when keys match.
func assemblePayload(policy Policy, ts time.Time, req RequestInfo) []byte {
	bodyLen := uint64(len(req.Body))
	if bodyLen > policy.MaxBodyBytes {
		bodyLen = policy.MaxBodyBytes
	}

	var buf bytes.Buffer

	field := func(b []byte) {
		buf.Write(b)
		buf.WriteByte(0)
	}

	field(versionBuffer(policy.Version))
	field(timestampBuffer(ts))
	field([]byte(strings.ToUpper(req.Method)))
	field([]byte(req.PathAndQuery))
	field([]byte(req.Header.Get("Authorization")))

	for _, name := range policy.ExtraHeaders {
		field([]byte(req.Header.Get(name)))
	}

	field(req.Body[:bodyLen])

	return buf.Bytes()
}
