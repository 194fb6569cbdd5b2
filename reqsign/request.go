package reqsign

import (
	"bytes"
	"io"
	"net/http"
)

// RequestInfo is the signable view of an HTTP message: the parts a
// signature covers, decoupled from any particular HTTP client or
// server type. Header lookups are case-insensitive via http.Header.
type RequestInfo struct {
	// Method is the HTTP method. It is upper-cased during payload
	// assembly, so the stored case does not matter.
	Method string

	// PathAndQuery is the request path plus query string, including
	// the leading slash.
	PathAndQuery string

	// Body is the full request body. Payload assembly truncates it to
	// the policy's MaxBodyBytes.
	Body []byte

	// Header holds the request headers. May be nil when no headers are
	// covered.
	Header http.Header
}

// NewRequestInfo captures the signable view of r. The body is read via
// GetBody when available so the original body is not consumed; for
// server-side requests without GetBody the body is read and replaced
// with an equivalent reader.
func NewRequestInfo(r *http.Request) (RequestInfo, error) {
	info := RequestInfo{
		Method:       r.Method,
		PathAndQuery: r.URL.RequestURI(),
		Header:       r.Header,
	}

	if r.Body == nil || r.Body == http.NoBody {
		return info, nil
	}

	if r.GetBody != nil {
		rc, err := r.GetBody()
		if err != nil {
			return RequestInfo{}, err
		}
		defer rc.Close()

		info.Body, err = io.ReadAll(rc)
		if err != nil {
			return RequestInfo{}, err
		}

		return info, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return RequestInfo{}, err
	}

	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	info.Body = body

	return info, nil
}
