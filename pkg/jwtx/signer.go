// Package jwtx signs and verifies the backend's bearer tokens. Access and
// refresh tokens are both HS256 JWTs, each class with its own secret and
// TTL, so a refresh token can never pass verification where an access token
// is expected.
package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrExpired    = errors.New("jwtx: token expired")
	ErrIssuer     = errors.New("jwtx: issuer mismatch")
)

// MinSecretLen rejects secrets that would make HS256 brute-forceable.
const MinSecretLen = 32

// Signer issues and verifies one class of token (access or refresh).
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	leeway time.Duration
}

// NewSigner builds a Signer for one token class. The secret must be at
// least MinSecretLen bytes.
func NewSigner(secret []byte, issuer string, ttl time.Duration) (*Signer, error) {
	if len(secret) < MinSecretLen {
		return nil, fmt.Errorf("jwtx: secret must be at least %d bytes, got %d", MinSecretLen, len(secret))
	}
	if issuer == "" {
		return nil, errors.New("jwtx: issuer is required")
	}
	if ttl <= 0 {
		return nil, errors.New("jwtx: ttl must be positive")
	}

	return &Signer{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
		leeway: 30 * time.Second,
	}, nil
}

// TTL returns the lifetime this signer stamps into tokens.
func (s *Signer) TTL() time.Duration { return s.ttl }

// Sign issues a token for the given user identity, valid from now for the
// signer's TTL.
func (s *Signer) Sign(userID, email, role string, now time.Time) (string, error) {
	claims := NewClaims(userID, email, role, s.issuer, s.ttl, now)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: failed to sign token: %w", err)
	}
	return token, nil
}

// Verify parses and validates a token of this signer's class and returns
// its claims. Signature, algorithm, expiry and issuer are all enforced.
func (s *Signer) Verify(token string) (Claims, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithLeeway(s.leeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	return claims, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrIssuer
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return fmt.Errorf("jwtx: token verification failed: %w", err)
	}
}
