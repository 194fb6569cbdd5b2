package reqsign

import (
	"encoding/base64"
	"fmt"
	"net/http"
)

// KeyResolver returns the key context used to verify a request. It is
// called per request, allowing key selection based on request
// attributes (host, path, client identity).
type KeyResolver func(r *http.Request) (*KeyContext, error)

// MiddlewareConfig configures the server-side signature verification
// middleware.
type MiddlewareConfig struct {
	// Resolver looks up the verification key context. Required.
	Resolver KeyResolver

	// Policy selects what the signature must cover. Must match the
	// policy the client signed under.
	Policy Policy

	// HeaderName overrides the header carrying the signature. Defaults
	// to SignatureHeader.
	HeaderName string

	// OnError is called when verification fails. When nil, a plain 401
	// Unauthorized response is sent.
	OnError func(w http.ResponseWriter, r *http.Request, err error)
}

// Middleware returns an http middleware that verifies the signature
// header on incoming requests. Requests with a missing, malformed, or
// non-verifying signature are rejected via OnError.
//
// It returns ErrNoResolver if MiddlewareConfig.Resolver is nil.
func Middleware(cfg MiddlewareConfig) (func(http.Handler) http.Handler, error) {
	if cfg.Resolver == nil {
		return nil, ErrNoResolver
	}

	headerName := cfg.HeaderName
	if headerName == "" {
		headerName = SignatureHeader
	}

	onError := cfg.OnError
	if onError == nil {
		onError = defaultOnError
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			encoded := r.Header.Get(headerName)
			if encoded == "" {
				onError(w, r, ErrSignatureNotFound)
				return
			}

			sig, err := base64.StdEncoding.DecodeString(encoded)
			if err != nil {
				onError(w, r, fmt.Errorf("%w: invalid base64 in signature header", ErrInvalidArgument))
				return
			}

			info, err := NewRequestInfo(r)
			if err != nil {
				onError(w, r, err)
				return
			}

			ctx, err := cfg.Resolver(r)
			if err != nil {
				onError(w, r, err)
				return
			}

			ok, err := ctx.VerifySignature(cfg.Policy, info, sig)
			if err != nil {
				onError(w, r, err)
				return
			}

			if !ok {
				onError(w, r, ErrSignatureInvalid)
				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}

// defaultOnError writes a 401 Unauthorized response with no body.
func defaultOnError(w http.ResponseWriter, _ *http.Request, _ error) {
	w.WriteHeader(http.StatusUnauthorized)
}
