package reqsign

// ProofKey is the JWK-shaped public key document a client presents to
// a server so the server can later verify signatures from the
// corresponding private key. It is recomputed on demand from a key
// context and never cached.
type ProofKey struct {
	Alg string `json:"alg"`
	Use string `json:"use"`
	Crv string `json:"crv"`
	Kty string `json:"kty"`
	X   string `json:"x"`
	Y   string `json:"y"`
}

// MarshalCanonical serializes the proof key with canonical compact
// JSON rules: sorted keys, no insignificant whitespace. Use this form
// whenever the document is transmitted as text.
func (k ProofKey) MarshalCanonical() ([]byte, error) {
	return CanonicalJSON(k)
}
