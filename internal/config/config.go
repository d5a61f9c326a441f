// Package config loads server configuration from environment variables with
// sensible defaults. Environment variables always win over defaults; there is
// no config file, since the server is launched by an MCP client that passes
// settings through the process environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

var (
	// ErrMissingCredentials indicates neither a token nor a username/password
	// pair was provided.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrPartialCredentials indicates only one of username/password was set.
	ErrPartialCredentials = errors.New("partial credentials")

	// ErrInvalidAPIURL indicates the backend URL could not be parsed or uses
	// an unsupported scheme.
	ErrInvalidAPIURL = errors.New("invalid API URL")

	// ErrInvalidTimeout indicates the request timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout")
)

const (
	// DefaultAPIURL is the hosted Raworc endpoint, including the versioned
	// API prefix.
	DefaultAPIURL = "https://api.remoteagent.com/api/v0"

	// DefaultSpace is the space used when a tool call omits one.
	DefaultSpace = "default"

	// DefaultTimeout bounds each backend HTTP request.
	DefaultTimeout = 30 * time.Second
)

// Config holds everything the server needs to reach the Raworc backend.
type Config struct {
	APIURL       string        `mapstructure:"api_url"`
	AuthToken    string        `mapstructure:"auth_token"`
	Username     string        `mapstructure:"username"`
	Password     string        `mapstructure:"password"`
	DefaultSpace string        `mapstructure:"default_space"`
	Timeout      time.Duration `mapstructure:"timeout"`
	LogLevel     string        `mapstructure:"log_level"`
}

// Load reads configuration from RAWORC_* environment variables, applies
// defaults, and validates the result.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RAWORC")
	v.AutomaticEnv()

	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("default_space", DefaultSpace)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("log_level", "info")

	// AutomaticEnv alone does not surface env-only keys through Unmarshal,
	// so bind each key explicitly.
	for _, key := range []string{
		"api_url", "auth_token", "username", "password",
		"default_space", "timeout", "log_level",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the configuration can produce a working backend
// client. It fails fast so a misconfigured launch dies at startup instead of
// erroring on every tool call.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAPIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q", ErrInvalidAPIURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidAPIURL)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, c.Timeout)
	}

	if c.AuthToken == "" {
		switch {
		case c.Username == "" && c.Password == "":
			return fmt.Errorf("%w: set RAWORC_AUTH_TOKEN or RAWORC_USERNAME and RAWORC_PASSWORD", ErrMissingCredentials)
		case c.Username == "" || c.Password == "":
			return fmt.Errorf("%w: both RAWORC_USERNAME and RAWORC_PASSWORD are required", ErrPartialCredentials)
		}
	}

	return nil
}

// String renders the configuration with credentials masked so it can be
// logged at startup.
func (c Config) String() string {
	return fmt.Sprintf("Config{api_url:%s default_space:%s timeout:%s log_level:%s auth_token:%s username:%s password:%s}",
		c.APIURL, c.DefaultSpace, c.Timeout, c.LogLevel,
		mask(c.AuthToken), c.Username, mask(c.Password))
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}
