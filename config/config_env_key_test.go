package config

import (
	"testing"
	"time"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"auth": map[string]any{
			"accessTokenTTL": "30m",
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "AUTH_ACCESSTOKENTTL", want: "auth.accessTokenTTL"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{}

	if got := cfg.AccessTokenTTL(); got != 30*time.Minute {
		t.Fatalf("AccessTokenTTL() = %v, want 30m", got)
	}
	if got := cfg.AvatarPath(); got != "./avatars" {
		t.Fatalf("AvatarPath() = %q, want ./avatars", got)
	}

	cfg.Auth = &AuthConfig{AccessTokenTTL: 5 * time.Minute}
	cfg.Avatar = &AvatarConfig{Path: "/var/lib/passport/avatars"}

	if got := cfg.AccessTokenTTL(); got != 5*time.Minute {
		t.Fatalf("AccessTokenTTL() = %v, want 5m", got)
	}
	if got := cfg.AvatarPath(); got != "/var/lib/passport/avatars" {
		t.Fatalf("AvatarPath() = %q, want configured path", got)
	}
}
