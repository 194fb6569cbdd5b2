package reqsign

import (
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// PEM block types for EC key interchange.
const (
	pemTypePrivateKey = "PRIVATE KEY"
	pemTypePublicKey  = "PUBLIC KEY"
)

// publicKeyOf returns the public half of key. It accepts either an
// *ecdsa.PrivateKey (the public key is derived) or an
// *ecdsa.PublicKey; anything else is ErrInvalidKey.
func publicKeyOf(key any) (*ecdsa.PublicKey, error) {
	switch k := key.(type) {
	case *ecdsa.PublicKey:
		return k, nil
	case *ecdsa.PrivateKey:
		return &k.PublicKey, nil
	default:
		return nil, fmt.Errorf("%w: got %T, want *ecdsa.PrivateKey or *ecdsa.PublicKey", ErrInvalidKey, key)
	}
}

// MarshalPrivateKeyDER serializes an EC private key to unencrypted
// PKCS8 DER.
func MarshalPrivateKeyDER(key *ecdsa.PrivateKey) ([]byte, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: private key must not be nil", ErrInvalidKey)
	}

	return x509.MarshalPKCS8PrivateKey(key)
}

// MarshalPublicKeyDER serializes an EC public key to
// SubjectPublicKeyInfo DER.
func MarshalPublicKeyDER(key *ecdsa.PublicKey) ([]byte, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: public key must not be nil", ErrInvalidKey)
	}

	return x509.MarshalPKIXPublicKey(key)
}

// MarshalPrivateKeyPEM serializes an EC private key to a PEM-encoded
// unencrypted PKCS8 block.
func MarshalPrivateKeyPEM(key *ecdsa.PrivateKey) ([]byte, error) {
	der, err := MarshalPrivateKeyDER(key)
	if err != nil {
		return nil, err
	}

	return pem.EncodeToMemory(&pem.Block{Type: pemTypePrivateKey, Bytes: der}), nil
}

// MarshalPublicKeyPEM serializes an EC public key to a PEM-encoded
// SubjectPublicKeyInfo block.
func MarshalPublicKeyPEM(key *ecdsa.PublicKey) ([]byte, error) {
	der, err := MarshalPublicKeyDER(key)
	if err != nil {
		return nil, err
	}

	return pem.EncodeToMemory(&pem.Block{Type: pemTypePublicKey, Bytes: der}), nil
}

// ParsePrivateKeyDER parses an unencrypted PKCS8 DER buffer into an EC
// private key. Keys of any other type are rejected with ErrInvalidKey.
func ParsePrivateKeyDER(der []byte) (*ecdsa.PrivateKey, error) {
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	ecKey, ok := key.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: got %T, want *ecdsa.PrivateKey", ErrInvalidKey, key)
	}

	return ecKey, nil
}

// ParsePublicKeyDER parses a SubjectPublicKeyInfo DER buffer into an
// EC public key. Keys of any other type are rejected with
// ErrInvalidKey.
func ParsePublicKeyDER(der []byte) (*ecdsa.PublicKey, error) {
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	ecKey, ok := key.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: got %T, want *ecdsa.PublicKey", ErrInvalidKey, key)
	}

	return ecKey, nil
}

// ParsePrivateKeyPEM parses a PEM-encoded unencrypted PKCS8 private
// key.
func ParsePrivateKeyPEM(data []byte) (*ecdsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrInvalidArgument)
	}

	return ParsePrivateKeyDER(block.Bytes)
}

// ParsePublicKeyPEM parses a PEM-encoded SubjectPublicKeyInfo public
// key.
func ParsePublicKeyPEM(data []byte) (*ecdsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrInvalidArgument)
	}

	return ParsePublicKeyDER(block.Bytes)
}
