// Package auth verifies the bearer tokens that gate administrative routes.
//
// The identity provider is an external collaborator. Handlers and
// middleware only see the Verifier capability, so the provider can be
// swapped (or faked in tests) without touching the HTTP layer.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Sentinel errors returned by the auth gate and verifiers.
var (
	// ErrMissingToken means no usable "Bearer <token>" credential was sent.
	ErrMissingToken = errors.New("missing bearer token")

	// ErrInvalidToken means a credential was sent but did not verify
	// (bad signature, expired, malformed, wrong issuer or audience).
	ErrInvalidToken = errors.New("invalid token")
)

// Claims are the verified claims of an identity token.
type Claims struct {
	jwt.RegisteredClaims
	Email  string `json:"email,omitempty"`
	UserID string `json:"user_id,omitempty"`
}

// Verifier checks a bearer credential and returns its claims.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

// VerifierFunc adapts a plain function to the Verifier interface.
type VerifierFunc func(ctx context.Context, token string) (*Claims, error)

// Verify calls f(ctx, token).
func (f VerifierFunc) Verify(ctx context.Context, token string) (*Claims, error) {
	return f(ctx, token)
}

// defaultLeeway tolerates small clock differences with the token issuer.
const defaultLeeway = 30 * time.Second

// JWTVerifier verifies HS256-signed JWTs with a shared secret.
type JWTVerifier struct {
	secret   []byte
	issuer   string
	audience string
	leeway   time.Duration
}

// NewJWTVerifier returns a verifier for tokens signed with secret.
// Issuer and audience are only enforced when non-empty.
func NewJWTVerifier(secret, issuer, audience string) (*JWTVerifier, error) {
	if secret == "" {
		return nil, errors.New("auth: jwt secret is empty")
	}
	return &JWTVerifier{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		leeway:   defaultLeeway,
	}, nil
}

// Verify parses token, checks its signature, expiry, issuer and audience,
// and requires a subject. Every failure wraps ErrInvalidToken.
func (v *JWTVerifier) Verify(_ context.Context, token string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(v.leeway),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}

// IssueOptions controls the token minted by Issue.
type IssueOptions struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// Issue signs an HS256 token for subject. It exists for operators and
// tests; production tokens come from the identity provider.
func Issue(subject, email string, opts IssueOptions) (string, error) {
	if opts.Secret == "" {
		return "", errors.New("auth: jwt secret is empty")
	}
	if opts.TTL <= 0 {
		opts.TTL = time.Hour
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    opts.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(opts.TTL)),
			ID:        uuid.NewString(),
		},
		Email:  email,
		UserID: subject,
	}
	if opts.Audience != "" {
		claims.Audience = jwt.ClaimStrings{opts.Audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(opts.Secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

type claimsKey struct{}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims attached by the auth gate.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok && claims != nil
}
