// Package config loads BFF settings from an optional YAML file plus
// environment variables, with env taking precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envKeys maps the flat environment variable names used by deployments onto
// koanf config paths. Only listed variables are read; everything else in the
// environment is ignored.
var envKeys = map[string]string{
	"APP_NAME":                  "app.name",
	"BACKEND_HOST":              "server.host",
	"BACKEND_PORT":              "server.port",
	"LOG_LEVEL":                 "log.level",
	"LOG_PRETTY":                "log.pretty",
	"REMNAWAVE_API_BASE_URL":    "remnawave.base_url",
	"REMNAWAVE_API_TOKEN":       "remnawave.token",
	"REMNAWAVE_API_TIMEOUT":     "remnawave.timeout_seconds",
	"REMNAWAVE_API_RETRIES":     "remnawave.retries",
	"ADMIN_JWT_SECRET":          "jwt.secret",
	"ADMIN_JWT_EXPIRES_MINUTES": "jwt.expires_minutes",
	"WEB_API_ALLOWED_ORIGINS":   "server.allowed_origins",
}

// Config is the full BFF configuration.
type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	RemnaWave RemnaWaveConfig `koanf:"remnawave"`
	JWT       JWTConfig       `koanf:"jwt"`
}

type AppConfig struct {
	Name string `koanf:"name"`
}

type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
	// AllowedOrigins is parsed from the comma-separated
	// server.allowed_origins value after unmarshalling.
	AllowedOrigins    []string `koanf:"-"`
	RawAllowedOrigins string   `koanf:"allowed_origins"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

// RemnaWaveConfig describes the single upstream API.
type RemnaWaveConfig struct {
	BaseURL        string `koanf:"base_url"`
	Token          string `koanf:"token"`
	TimeoutSeconds int    `koanf:"timeout_seconds"`
	Retries        int    `koanf:"retries"`
}

// Timeout returns the per-request upstream timeout.
func (r RemnaWaveConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

type JWTConfig struct {
	Secret         string `koanf:"secret"`
	ExpiresMinutes int    `koanf:"expires_minutes"`
}

// Expiry returns the access token lifetime.
func (j JWTConfig) Expiry() time.Duration {
	return time.Duration(j.ExpiresMinutes) * time.Minute
}

// Load reads configuration from the optional YAML file at path (pass ""
// to skip) and the process environment. Environment variables override
// file values.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider("", ".", func(s string) string {
		if mapped, ok := envKeys[s]; ok {
			return mapped
		}
		return ""
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	applyDefaults(k)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.Server.AllowedOrigins = splitOrigins(cfg.Server.RawAllowedOrigins)

	if cfg.RemnaWave.BaseURL == "" {
		return nil, fmt.Errorf("REMNAWAVE_API_BASE_URL is required")
	}

	return &cfg, nil
}

func applyDefaults(k *koanf.Koanf) {
	defaults := map[string]any{
		"app.name":                  "remnawave-admin-bff",
		"server.host":               "0.0.0.0",
		"server.port":               8080,
		"log.level":                 "info",
		"remnawave.timeout_seconds": 10,
		"remnawave.retries":         3,
		"jwt.secret":                "dev-secret-change-me",
		"jwt.expires_minutes":       60,
	}
	for key, value := range defaults {
		if !k.Exists(key) {
			k.Set(key, value)
		}
	}
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
