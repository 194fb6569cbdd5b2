package reqsign

import "errors"

// Structural errors. These always indicate a caller or configuration
// defect and are never retried.
var (
	// ErrInvalidArgument is returned when a value of the wrong shape is
	// passed to a public operation: an unrecognized algorithm, a base64
	// string of invalid length, or signature data too short to contain
	// the plaintext header.
	ErrInvalidArgument = errors.New("reqsign: invalid argument")

	// ErrInvalidKey is returned when key material is unusable for the
	// requested operation: signing with a public key, importing a value
	// that is not an EC key, or a key whose curve does not match the
	// target algorithm.
	ErrInvalidKey = errors.New("reqsign: invalid key material")

	// ErrUnsupportedAlgorithm is returned when an algorithm identifier
	// outside the supported set reaches a lookup.
	ErrUnsupportedAlgorithm = errors.New("reqsign: unsupported algorithm")
)

// Transport and middleware configuration errors.
var (
	// ErrNoContext is returned when TransportConfig has no KeyContext
	// configured.
	ErrNoContext = errors.New("reqsign: key context must not be nil")

	// ErrNoResolver is returned when MiddlewareConfig has no KeyResolver
	// configured.
	ErrNoResolver = errors.New("reqsign: key resolver must not be nil")

	// ErrSignatureNotFound is returned by the middleware when the
	// expected signature header is absent from the request.
	ErrSignatureNotFound = errors.New("reqsign: signature not found")

	// ErrSignatureInvalid is returned by the middleware when signature
	// verification fails. The core VerifySignature operation reports
	// this outcome as a boolean instead; the middleware converts it to
	// an error only at the HTTP boundary.
	ErrSignatureInvalid = errors.New("reqsign: signature verification failed")
)
