package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/msgboard/msgboard/internal/errors"
)

// Environment variables for the hosted service. The SUPABASE_* names are
// accepted as fallbacks so an existing project's .env works unchanged.
const (
	EnvURL         = "MSGBOARD_URL"
	EnvAnonKey     = "MSGBOARD_ANON_KEY"
	EnvTimeout     = "MSGBOARD_TIMEOUT"
	EnvRPS         = "MSGBOARD_RPS"
	EnvFallbackURL = "SUPABASE_URL"
	EnvFallbackKey = "SUPABASE_ANON_KEY"
)

const (
	DefaultTimeout           = 10 * time.Second
	DefaultRequestsPerSecond = 5.0
	DefaultBurst             = 3
)

// ServiceConfig describes how to reach the hosted auth + data service.
type ServiceConfig struct {
	URL               string
	AnonKey           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// LoadEnvFiles loads KEY=VALUE pairs from the given .env files into the
// process environment. Missing files are skipped; variables already set in
// the environment win.
func LoadEnvFiles(paths ...string) ([]string, error) {
	var loaded []string
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return loaded, errors.ConfigLoadFailed(p, err)
		}
		loaded = append(loaded, p)
	}
	return loaded, nil
}

// LoadService reads the service connection from the environment.
// It does not validate; call Validate before dialing the service.
func LoadService() (ServiceConfig, error) {
	cfg := ServiceConfig{
		URL:               strings.TrimRight(firstEnv(EnvURL, EnvFallbackURL), "/"),
		AnonKey:           firstEnv(EnvAnonKey, EnvFallbackKey),
		Timeout:           DefaultTimeout,
		RequestsPerSecond: DefaultRequestsPerSecond,
		Burst:             DefaultBurst,
	}

	if raw := strings.TrimSpace(os.Getenv(EnvTimeout)); raw != "" {
		secs, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return ServiceConfig{}, errors.ConfigInvalid(fmt.Sprintf("invalid %s value: %q", EnvTimeout, raw))
		}
		cfg.Timeout = time.Duration(secs * float64(time.Second))
	}

	if raw := strings.TrimSpace(os.Getenv(EnvRPS)); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return ServiceConfig{}, errors.ConfigInvalid(fmt.Sprintf("invalid %s value: %q", EnvRPS, raw))
		}
		cfg.RequestsPerSecond = rps
	}

	return cfg, nil
}

// Validate checks that the service connection is usable.
func (s ServiceConfig) Validate() error {
	if s.URL == "" {
		return errors.ConfigInvalid(fmt.Sprintf("%s (or %s) is required", EnvURL, EnvFallbackURL))
	}
	u, err := url.Parse(s.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.ConfigInvalid(fmt.Sprintf("service URL must be http(s): %q", s.URL))
	}
	if s.AnonKey == "" {
		return errors.ConfigInvalid(fmt.Sprintf("%s (or %s) is required", EnvAnonKey, EnvFallbackKey))
	}
	if s.Timeout <= 0 {
		return errors.ConfigInvalid("request timeout must be positive")
	}
	if s.RequestsPerSecond <= 0 {
		return errors.ConfigInvalid("requests per second must be positive")
	}
	if s.Burst <= 0 {
		return errors.ConfigInvalid("burst must be positive")
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}
