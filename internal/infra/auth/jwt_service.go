// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"passport/config"
	"passport/internal/domain/service"
	"passport/internal/errors"
)

// ErrInvalidToken is the single failure returned by Validate. Malformed,
// tampered and expired tokens are indistinguishable through this interface
// so the validation path cannot be used as an oracle.
var ErrInvalidToken = errors.New("invalid or expired token")

// jwtService is a concrete implementation of the TokenService interface using
// HS256-signed JWTs. The signing secret is loaded once at startup and never
// rotated mid-process.
type jwtService struct {
	secret    []byte
	accessTTL time.Duration
}

// NewJWTService is the constructor for jwtService.
// It fails when no signing secret is configured: there is deliberately no
// built-in fallback value, so a misconfigured deployment aborts at startup
// instead of signing tokens with a known secret.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("token signing secret must be provided")
	}

	return &jwtService{
		secret:    []byte(cfg.SecretKey.Access),
		accessTTL: cfg.AccessTokenTTL(),
	}, nil
}

// Issue creates a signed token for the subject with the configured TTL.
func (s *jwtService) Issue(subject string) (string, error) {
	return s.IssueWithTTL(subject, s.accessTTL)
}

// IssueWithTTL creates a signed token for the subject with an explicit TTL.
func (s *jwtService) IssueWithTTL(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Validate checks the signature first, then expiry, and returns the embedded
// subject. Any parse, signature or expiry failure collapses to ErrInvalidToken.
func (s *jwtService) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Reject any token not signed with the expected HMAC method before
		// touching its payload.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// AccessTokenDuration returns the configured access token time-to-live.
func (s *jwtService) AccessTokenDuration() time.Duration {
	return s.accessTTL
}
