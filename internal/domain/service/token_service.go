package service

import "time"

// TokenService defines the interface for issuing and validating bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a signed token carrying the given subject with the
	// service's configured time-to-live.
	Issue(subject string) (string, error)

	// IssueWithTTL creates a signed token with an explicit time-to-live.
	IssueWithTTL(subject string, ttl time.Duration) (string, error)

	// Validate checks signature and expiry and returns the embedded subject.
	// Every failure mode (malformed, tampered, expired) collapses into the
	// same opaque error so callers cannot probe token internals.
	Validate(token string) (string, error)

	// AccessTokenDuration returns the configured access token time-to-live.
	AccessTokenDuration() time.Duration
}
