package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// GenerateSigningKey creates a P-256 private JWK tagged with kid and the
// public JWKS that verifies tokens signed by it.
func GenerateSigningKey(kid string) (jwk.Key, jwk.Set, error) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate private key: %w", err)
	}

	private, err := jwk.FromRaw(privateKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create JWK from private key: %w", err)
	}
	if err := setSigningParams(private, kid); err != nil {
		return nil, nil, err
	}

	public, err := private.PublicKey()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to derive public JWK: %w", err)
	}
	if err := setSigningParams(public, kid); err != nil {
		return nil, nil, err
	}

	set := jwk.NewSet()
	if err := set.AddKey(public); err != nil {
		return nil, nil, fmt.Errorf("failed to build JWKS: %w", err)
	}
	return private, set, nil
}

// ParsePrivateKey reads a private JWK as printed by genjwks
func ParsePrivateKey(data []byte) (jwk.Key, error) {
	key, err := jwk.ParseKey(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWK: %w", err)
	}
	if _, ok := key.(jwk.ECDSAPrivateKey); !ok {
		return nil, fmt.Errorf("JWK is not an EC private key")
	}
	return key, nil
}

func setSigningParams(key jwk.Key, kid string) error {
	if err := key.Set(jwk.KeyIDKey, kid); err != nil {
		return fmt.Errorf("failed to set kid: %w", err)
	}
	if err := key.Set(jwk.AlgorithmKey, AlgorithmES256); err != nil {
		return fmt.Errorf("failed to set alg: %w", err)
	}
	if err := key.Set(jwk.KeyUsageKey, "sig"); err != nil {
		return fmt.Errorf("failed to set use: %w", err)
	}
	return nil
}
