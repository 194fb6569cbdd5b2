// Package reqsign implements proof-of-possession HTTP request signing
// with elliptic-curve keys. It binds an EC key pair to outgoing HTTP
// requests so a server can verify that a request was produced by the
// holder of the private key, without the caller ever presenting the
// key itself.
//
// A signature is built deterministically from a versioned Policy, a
// timestamp, and selected parts of the HTTP message. The wire value is
// a 12-byte plaintext header (uint32 policy version, uint64 FILETIME
// timestamp, both big-endian) followed by a raw fixed-width ECDSA
// signature (r‖s, each half padded to the curve order size — not DER).
//
// # Keys
//
// A KeyProvider owns one key context per algorithm. Contexts are
// generated once and cached, or imported from existing EC keys:
//
//	provider := reqsign.NewKeyProvider()
//
//	ctx, err := provider.Get(reqsign.ES256)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The context's proof key is the JWK document presented to the server
// so it can verify later signatures:
//
//	proofKey, err := ctx.ProofKey()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	doc, err := proofKey.MarshalCanonical()
//
// # Signing Requests
//
// CreateSignature produces the signature header value for a prepared
// request under a policy and timestamp:
//
//	info, err := reqsign.NewRequestInfo(req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sig, err := ctx.CreateSignature(reqsign.PolicyServiceAuth, time.Now(), info)
//
// # Verifying Requests
//
// VerifySignature reconstructs the same canonical payload from the
// received request and checks the signature. Version mismatches and
// cryptographic mismatches are reported as false, not as errors;
// structural defects (truncated signature data, wrong key type) are
// errors. Branch on the boolean, not the error, to reject a request:
//
//	ok, err := ctx.VerifySignature(reqsign.PolicyServiceAuth, info, sig)
//	if err != nil {
//	    log.Fatal(err) // caller bug, not a forged request
//	}
//	if !ok {
//	    // reject: stale, forged, or corrupted signature
//	}
//
// # Client Transport
//
// NewTransport creates an http.RoundTripper that signs every outgoing
// request. Pass an *http.Transport to configure proxy, TLS, and
// timeout settings, or nil for defaults:
//
//	transport, err := reqsign.NewTransport(nil, reqsign.TransportConfig{
//	    Context: ctx,
//	    Policy:  reqsign.PolicyServiceAuth,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client := &http.Client{Transport: transport}
//
// # Server Middleware
//
// Middleware verifies the signature header on incoming requests:
//
//	mw, err := reqsign.Middleware(reqsign.MiddlewareConfig{
//	    Resolver: func(r *http.Request) (*reqsign.KeyContext, error) {
//	        return ctx, nil
//	    },
//	    Policy: reqsign.PolicyServiceAuth,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	handler := mw(myHandler)
//
// # Policies
//
// Four presets are provided (PolicySISUAuth, PolicyServiceAuth,
// PolicyDeviceAuth, PolicyXSTSAuth); additional named policies can be
// loaded from YAML with LoadPolicies.
package reqsign
