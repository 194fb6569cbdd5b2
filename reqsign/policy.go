package reqsign

import (
	"fmt"
	"math"
	"slices"

	"golang.org/x/net/http/httpguts"
)

// NoBodyLimit effectively disables body truncation: no real request
// body exceeds it.
const NoBodyLimit uint64 = math.MaxInt64

// Policy controls which parts of an HTTP message are covered by a
// signature and how the signature header is versioned. Policies are
// value objects: construct once, treat as read-only, share freely
// across signing operations.
type Policy struct {
	// Version is the policy version carried in the signature header.
	// A verifier rejects signatures whose header version differs from
	// its own policy version.
	Version uint32

	// ExtraHeaders lists additional header names whose values are
	// covered by the signature, in this exact order.
	ExtraHeaders []string

	// MaxBodyBytes caps how many request body bytes are covered.
	// Use NoBodyLimit to cover the whole body.
	MaxBodyBytes uint64

	// Algorithms is the set of signing algorithms the policy permits.
	Algorithms []Algorithm
}

// Named policy presets. All are version 1, cover no extra headers, and
// permit ES256 only; the SISU preset additionally caps the covered
// body at 8 KiB.
var (
	// PolicySISUAuth covers SISU authentication requests.
	PolicySISUAuth = Policy{Version: 1, MaxBodyBytes: 8192, Algorithms: []Algorithm{ES256}}

	// PolicyServiceAuth covers service authentication requests.
	PolicyServiceAuth = Policy{Version: 1, MaxBodyBytes: NoBodyLimit, Algorithms: []Algorithm{ES256}}

	// PolicyDeviceAuth covers device authentication requests.
	PolicyDeviceAuth = Policy{Version: 1, MaxBodyBytes: NoBodyLimit, Algorithms: []Algorithm{ES256}}

	// PolicyXSTSAuth covers XSTS token requests.
	PolicyXSTSAuth = Policy{Version: 1, MaxBodyBytes: NoBodyLimit, Algorithms: []Algorithm{ES256}}
)

// Validate checks that the policy is well formed: a non-zero version,
// valid extra header names, and at least one recognized algorithm.
func (p Policy) Validate() error {
	if p.Version == 0 {
		return fmt.Errorf("%w: policy version must be non-zero", ErrInvalidArgument)
	}

	for _, name := range p.ExtraHeaders {
		if !httpguts.ValidHeaderFieldName(name) {
			return fmt.Errorf("%w: invalid extra header name %q", ErrInvalidArgument, name)
		}
	}

	if len(p.Algorithms) == 0 {
		return fmt.Errorf("%w: policy must permit at least one algorithm", ErrInvalidArgument)
	}

	for _, a := range p.Algorithms {
		if !a.valid() {
			return fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, string(a))
		}
	}

	return nil
}

// Supports reports whether the policy permits the given algorithm.
func (p Policy) Supports(alg Algorithm) bool {
	return slices.Contains(p.Algorithms, alg)
}
