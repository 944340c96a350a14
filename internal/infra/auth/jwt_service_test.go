package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"passport/config"
)

func testTokenConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc, err := NewJWTService(testTokenConfig())
	assert.NoError(t, err)
	assert.NotNil(t, svc)

	token, err := svc.Issue("ann@x.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	subject, err := svc.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, "ann@x.com", subject)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc, err := NewJWTService(testTokenConfig())
	assert.NoError(t, err)

	token, err := svc.IssueWithTTL("ann@x.com", -time.Minute)
	assert.NoError(t, err)

	subject, err := svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Empty(t, subject)
}

func TestJWTService_TamperedToken(t *testing.T) {
	svc, err := NewJWTService(testTokenConfig())
	assert.NoError(t, err)

	token, err := svc.Issue("ann@x.com")
	assert.NoError(t, err)

	// Flip one byte in the payload section; the signature no longer verifies.
	raw := []byte(token)
	mid := len(raw) / 2
	if raw[mid] == 'A' {
		raw[mid] = 'B'
	} else {
		raw[mid] = 'A'
	}

	subject, err := svc.Validate(string(raw))
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Empty(t, subject)
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc, err := NewJWTService(testTokenConfig())
	assert.NoError(t, err)

	for _, token := range []string{"", "garbage", "a.b.c", "clearly-not-a-jwt-token-format"} {
		subject, validateErr := svc.Validate(token)
		assert.ErrorIs(t, validateErr, ErrInvalidToken, "token: %q", token)
		assert.Empty(t, subject)
	}
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer, err := NewJWTService(testTokenConfig())
	assert.NoError(t, err)

	otherCfg := &config.Config{}
	otherCfg.SecretKey.Access = "a_completely_different_secret_key_for_testing"
	verifier, err := NewJWTService(otherCfg)
	assert.NoError(t, err)

	token, err := issuer.Issue("ann@x.com")
	assert.NoError(t, err)

	subject, err := verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Empty(t, subject)
}

func TestJWTService_MissingSecretIsFatal(t *testing.T) {
	svc, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "signing secret must be provided")
}

func TestJWTService_AccessTokenDuration(t *testing.T) {
	cfg := testTokenConfig()
	svc, err := NewJWTService(cfg)
	assert.NoError(t, err)
	assert.Equal(t, 30*time.Minute, svc.AccessTokenDuration())

	cfg.Auth = &config.AuthConfig{AccessTokenTTL: 15 * time.Minute}
	svc, err = NewJWTService(cfg)
	assert.NoError(t, err)
	assert.Equal(t, 15*time.Minute, svc.AccessTokenDuration())
}
