package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v2/jwk"
)

// Role is the account role carried in a credential
type Role string

const (
	RoleNormal Role = "NORMAL"
	RoleAdmin  Role = "ADMIN"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return r == RoleNormal || r == RoleAdmin
}

// TokenPayload is the identity decoded from a credential.
// It is derived per request and never persisted.
type TokenPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Claims is the JWT body issued and accepted by TokenManager
type Claims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Algorithm constants for JWT signing methods
const (
	AlgorithmHS256 = "HS256"
	AlgorithmRS256 = "RS256"
	AlgorithmES256 = "ES256"
)

var (
	// ErrInvalidToken is returned for any credential that fails parsing or verification
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingSecret is returned when signing without a configured secret
	ErrMissingSecret = errors.New("jwt secret not configured")
)

// TokenManager issues and verifies credentials.
//
// Tokens without a `kid` header must be HS256 signed with the shared secret.
// Tokens with a `kid` must use RS256/ES256 and are checked against the key set.
// The algorithm is chosen from the header shape, never trusted from `alg` alone.
type TokenManager struct {
	keys      jwk.Set
	issuer    string
	secret    []byte
	expiresIn time.Duration
}

// TokenConfig configures a TokenManager
type TokenConfig struct {
	// Keys holds public keys for asymmetric tokens (optional)
	Keys      jwk.Set
	Issuer    string
	Secret    []byte
	ExpiresIn time.Duration
}

// NewTokenManager creates a token manager
func NewTokenManager(cfg TokenConfig) *TokenManager {
	if cfg.ExpiresIn <= 0 {
		cfg.ExpiresIn = 24 * time.Hour
	}
	return &TokenManager{
		secret:    cfg.Secret,
		issuer:    cfg.Issuer,
		expiresIn: cfg.ExpiresIn,
		keys:      cfg.Keys,
	}
}

// FetchKeySet loads a JWKS document from url
func FetchKeySet(ctx context.Context, url string) (jwk.Set, error) {
	set, err := jwk.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS from %s: %w", url, err)
	}
	if set.Len() == 0 {
		return nil, fmt.Errorf("no keys found in JWKS at %s", url)
	}
	return set, nil
}

// CreateToken signs an HS256 token for payload
func (m *TokenManager) CreateToken(payload TokenPayload) (string, error) {
	if len(m.secret) == 0 {
		return "", ErrMissingSecret
	}
	claims, err := m.claims(payload)
	if err != nil {
		return "", err
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// CreateTokenWithKey signs an ES256 token with a private JWK.
// The key's kid goes in the header so GetPayload can find the matching public key.
func (m *TokenManager) CreateTokenWithKey(payload TokenPayload, key jwk.Key) (string, error) {
	if key.KeyID() == "" {
		return "", fmt.Errorf("signing key has no kid")
	}
	var raw interface{}
	if err := key.Raw(&raw); err != nil {
		return "", fmt.Errorf("failed to convert signing key: %w", err)
	}
	claims, err := m.claims(payload)
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	token.Header["kid"] = key.KeyID()
	return token.SignedString(raw)
}

func (m *TokenManager) claims(payload TokenPayload) (*Claims, error) {
	if payload.ID == "" {
		return nil, fmt.Errorf("payload id is required")
	}
	if !payload.Role.IsValid() {
		return nil, fmt.Errorf("unknown role %q", payload.Role)
	}

	now := time.Now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payload.ID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiresIn)),
		},
		Name: payload.Name,
		Role: payload.Role,
	}, nil
}

// GetPayload verifies token and returns the identity it carries.
// Every failure is reported as ErrInvalidToken wrapping the cause.
func (m *TokenManager) GetPayload(token string) (*TokenPayload, error) {
	token = stripBearerPrefix(token)
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	header, err := parseHeader(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var keyFunc jwt.Keyfunc
	var methods []string

	if header.Kid == "" {
		if header.Alg != AlgorithmHS256 {
			return nil, fmt.Errorf("%w: tokens without kid must use HS256, got %s", ErrInvalidToken, header.Alg)
		}
		if len(m.secret) == 0 {
			return nil, fmt.Errorf("%w: HS256 verification failed: secret not configured", ErrInvalidToken)
		}
		methods = []string{AlgorithmHS256}
		keyFunc = func(*jwt.Token) (interface{}, error) { return m.secret, nil }
	} else {
		if header.Alg == AlgorithmHS256 {
			return nil, fmt.Errorf("%w: HS256 tokens with kid are not accepted", ErrInvalidToken)
		}
		methods = []string{AlgorithmRS256, AlgorithmES256}
		keyFunc = func(*jwt.Token) (interface{}, error) { return m.publicKey(header.Kid) }
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods(methods), jwt.WithExpirationRequired()}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, keyFunc, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid claims", ErrInvalidToken)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing 'sub' claim", ErrInvalidToken)
	}
	if !claims.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}

	return &TokenPayload{
		ID:   claims.Subject,
		Name: claims.Name,
		Role: claims.Role,
	}, nil
}

// publicKey resolves kid in the configured key set to a raw public key
func (m *TokenManager) publicKey(kid string) (interface{}, error) {
	if m.keys == nil {
		return nil, fmt.Errorf("no key set configured for kid %s", kid)
	}
	key, found := m.keys.LookupKeyID(kid)
	if !found {
		return nil, fmt.Errorf("key with kid %s not found", kid)
	}
	pub, err := key.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to derive public key: %w", err)
	}
	var raw interface{}
	if err := pub.Raw(&raw); err != nil {
		return nil, fmt.Errorf("failed to convert key %s: %w", kid, err)
	}
	return raw, nil
}

type jwtHeader struct {
	Alg string `json:"alg"`
	Kid string `json:"kid"`
}

func parseHeader(token string) (*jwtHeader, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid JWT format: expected 3 parts, got %d", len(parts))
	}

	headerBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("failed to decode JWT header: %w", err)
	}

	var header jwtHeader
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, fmt.Errorf("failed to parse JWT header: %w", err)
	}
	return &header, nil
}

// The auth scheme is case-insensitive (RFC 7235)
const bearerScheme = "Bearer "

func stripBearerPrefix(token string) string {
	token = strings.TrimSpace(token)
	if len(token) > len(bearerScheme) && strings.EqualFold(token[:len(bearerScheme)], bearerScheme) {
		token = token[len(bearerScheme):]
	}
	return strings.TrimSpace(token)
}
