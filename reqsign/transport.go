package reqsign

import (
	"encoding/base64"
	"net/http"
	"time"
)

// SignatureHeader is the default request header carrying the signature
// value.
const SignatureHeader = "Signature"

// TransportConfig configures a signing Transport.
type TransportConfig struct {
	// Context signs outgoing requests. Required.
	Context *KeyContext

	// Policy selects what gets signed. Use one of the named presets or
	// a policy loaded from configuration.
	Policy Policy

	// HeaderName overrides the header carrying the signature. Defaults
	// to SignatureHeader.
	HeaderName string

	// Now supplies the signing timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Transport is an http.RoundTripper that signs every outgoing request,
// placing the base64-encoded signature in the configured header.
//
// Use NewTransport to create a Transport with a configured
// *http.Transport for proxy, TLS, and timeout settings.
type Transport struct {
	base http.RoundTripper
	cfg  TransportConfig
}

// NewTransport creates a signing Transport that delegates to base
// after signing each request. When base is nil, a clone of
// http.DefaultTransport is used, giving an independent connection pool
// with default proxy, TLS, and timeout settings.
func NewTransport(base *http.Transport, cfg TransportConfig) (*Transport, error) {
	if cfg.Context == nil {
		return nil, ErrNoContext
	}

	if cfg.HeaderName == "" {
		cfg.HeaderName = SignatureHeader
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	var rt http.RoundTripper
	if base != nil {
		rt = base
	} else {
		rt = http.DefaultTransport.(*http.Transport).Clone()
	}

	return &Transport{base: rt, cfg: cfg}, nil
}

// RoundTrip signs the request and then delegates to the base
// transport. The original request is cloned before signing to avoid
// mutation; when GetBody is available the clone receives its own body
// copy so signing does not consume the caller's body.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	if clone.Body != nil && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}

		clone.Body = body
	}

	info, err := NewRequestInfo(clone)
	if err != nil {
		return nil, err
	}

	sig, err := t.cfg.Context.CreateSignature(t.cfg.Policy, t.cfg.Now(), info)
	if err != nil {
		return nil, err
	}

	clone.Header.Set(t.cfg.HeaderName, base64.StdEncoding.EncodeToString(sig))

	return t.base.RoundTrip(clone)
}
