package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every RAWORC_* variable the loader reads so tests are
// hermetic regardless of the invoking shell.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"RAWORC_API_URL", "RAWORC_AUTH_TOKEN", "RAWORC_USERNAME",
		"RAWORC_PASSWORD", "RAWORC_DEFAULT_SPACE", "RAWORC_TIMEOUT",
		"RAWORC_LOG_LEVEL",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("RAWORC_AUTH_TOKEN", "tok-123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultSpace, cfg.DefaultSpace)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "tok-123", cfg.AuthToken)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("RAWORC_API_URL", "http://localhost:9000/api/v0")
	t.Setenv("RAWORC_USERNAME", "admin")
	t.Setenv("RAWORC_PASSWORD", "hunter2")
	t.Setenv("RAWORC_DEFAULT_SPACE", "staging")
	t.Setenv("RAWORC_TIMEOUT", "45s")
	t.Setenv("RAWORC_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/api/v0", cfg.APIURL)
	assert.Equal(t, "admin", cfg.Username)
	assert.Equal(t, "hunter2", cfg.Password)
	assert.Equal(t, "staging", cfg.DefaultSpace)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMissingCredentials(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingCredentials)
}

func TestLoadPartialCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("RAWORC_USERNAME", "admin")

	_, err := Load()
	require.ErrorIs(t, err, ErrPartialCredentials)
}

func TestValidate(t *testing.T) {
	base := Config{
		APIURL:       DefaultAPIURL,
		AuthToken:    "tok",
		DefaultSpace: DefaultSpace,
		Timeout:      DefaultTimeout,
	}

	t.Run("valid", func(t *testing.T) {
		cfg := base
		require.NoError(t, cfg.Validate())
	})

	t.Run("bad scheme", func(t *testing.T) {
		cfg := base
		cfg.APIURL = "ftp://example.com/api/v0"
		require.ErrorIs(t, cfg.Validate(), ErrInvalidAPIURL)
	})

	t.Run("missing host", func(t *testing.T) {
		cfg := base
		cfg.APIURL = "https:///api/v0"
		require.ErrorIs(t, cfg.Validate(), ErrInvalidAPIURL)
	})

	t.Run("zero timeout", func(t *testing.T) {
		cfg := base
		cfg.Timeout = 0
		require.ErrorIs(t, cfg.Validate(), ErrInvalidTimeout)
	})

	t.Run("token alone is enough", func(t *testing.T) {
		cfg := base
		cfg.Username = ""
		cfg.Password = ""
		require.NoError(t, cfg.Validate())
	})
}

func TestStringMasksSecrets(t *testing.T) {
	cfg := Config{
		APIURL:    DefaultAPIURL,
		AuthToken: "super-secret-token",
		Username:  "admin",
		Password:  "hunter2",
	}

	s := cfg.String()
	assert.NotContains(t, s, "super-secret-token")
	assert.NotContains(t, s, "hunter2")
	assert.Contains(t, s, "admin")
}
