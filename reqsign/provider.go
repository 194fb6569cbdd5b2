package reqsign

import (
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"
	"sync"

	"github.com/go-logr/logr"
)

// KeyProvider generates and caches one key context per algorithm.
// Get is idempotent: the first call for an algorithm generates a key
// pair, later calls return the cached context. Import replaces the
// cached entry. The cache is guarded by a mutex, so a provider is safe
// for concurrent use; the contexts it hands out are themselves safe
// for concurrent read-only use.
type KeyProvider struct {
	mu       sync.Mutex
	contexts map[Algorithm]*KeyContext
	log      logr.Logger
}

// ProviderOption configures a KeyProvider.
type ProviderOption func(*KeyProvider)

// WithLogger sets the logger used for key lifecycle debug messages.
// The default discards all output.
func WithLogger(log logr.Logger) ProviderOption {
	return func(p *KeyProvider) {
		p.log = log
	}
}

// NewKeyProvider creates an empty provider. The application owns the
// provider and passes it to whoever needs signing; there is no
// process-wide instance.
func NewKeyProvider(opts ...ProviderOption) *KeyProvider {
	p := &KeyProvider{
		contexts: make(map[Algorithm]*KeyContext),
		log:      logr.Discard(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Get returns the cached key context for alg, generating a fresh EC
// key pair on the algorithm's curve on first use.
func (p *KeyProvider) Get(alg Algorithm) (*KeyContext, error) {
	if !alg.valid() {
		return nil, fmt.Errorf("%w: unrecognized algorithm %q", ErrInvalidArgument, string(alg))
	}

	params, _ := alg.params()

	p.mu.Lock()
	defer p.mu.Unlock()

	if ctx, ok := p.contexts[alg]; ok {
		p.log.V(1).Info("found existing key context", "algorithm", alg, "keyID", ctx.KeyID())
		return ctx, nil
	}

	key, err := ecdsa.GenerateKey(params.curve, rand.Reader)
	if err != nil {
		return nil, err
	}

	ctx := newKeyContext(key, alg)
	p.contexts[alg] = ctx

	p.log.V(1).Info("generated key", "algorithm", alg, "keyID", ctx.KeyID())

	return ctx, nil
}

// Import wraps an externally supplied EC private or public key as the
// context for alg, replacing any cached entry. The key's curve must
// match the algorithm's curve: a mismatched import would otherwise
// produce a context whose signatures never verify.
func (p *KeyProvider) Import(alg Algorithm, key any) (*KeyContext, error) {
	if !alg.valid() {
		return nil, fmt.Errorf("%w: unrecognized algorithm %q", ErrInvalidArgument, string(alg))
	}

	switch key.(type) {
	case *ecdsa.PrivateKey, *ecdsa.PublicKey:
	default:
		return nil, fmt.Errorf("%w: got %T, want *ecdsa.PrivateKey or *ecdsa.PublicKey", ErrInvalidArgument, key)
	}

	params, _ := alg.params()

	pub, err := publicKeyOf(key)
	if err != nil {
		return nil, err
	}

	if pub.Curve != params.curve {
		return nil, fmt.Errorf("%w: key curve %s does not match %s curve %s",
			ErrInvalidKey, pub.Curve.Params().Name, alg, params.curveName)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ctx := newKeyContext(key, alg)
	p.contexts[alg] = ctx

	p.log.V(1).Info("imported key", "algorithm", alg, "keyID", ctx.KeyID())

	return ctx, nil
}
