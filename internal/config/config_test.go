package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 署名キー無しでは起動できない
func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	for _, key := range []string{"PORT", "POSTGRES_HOST", "SMTP_PORT", "SINGLE_SESSION", "COOKIE_SECURE", "ROLE_POLICY"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "localhost", cfg.PostgresHost)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.True(t, cfg.SingleSession)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "suffix", cfg.RolePolicy)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SINGLE_SESSION", "false")
	t.Setenv("ROLE_POLICY", "pattern")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.SingleSession)
	assert.Equal(t, "pattern", cfg.RolePolicy)
	assert.Equal(t, 2525, cfg.SMTPPort)
}

func TestLoad_BadSMTPPort(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SMTP_PORT", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}
