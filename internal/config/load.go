package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/titanous/json5"
)

// Default returns a Config with sensible defaults, matching the teacher's
// config.Default() baseline narrowed to this module's scope.
func Default() *Config {
	return &Config{
		Gateway: GatewayConfig{
			RateLimitRPM: 20,
		},
		Sessions: SessionsConfig{
			Storage: "~/.toolgate/sessions",
		},
	}
}

// Load reads config from a json5 file, then overlays env vars. A missing
// file is not an error — Default() plus env overrides is returned. A
// present-but-unparseable file is a fatal load-time error (spec.md §7 /
// SPEC_FULL.md §7), distinct from a hot-reload parse failure which is
// non-fatal (see watch.go).
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json5.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides overlays TOOLGATE_* env vars onto the config,
// matching the teacher's GOCLAW_* convention renamed per SPEC_FULL.md §6.1.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TOOLGATE_POSTGRES_DSN"); v != "" {
		c.Database.PostgresDSN = v
	}
	if v := os.Getenv("TOOLGATE_MODE"); v != "" {
		c.Database.Mode = v
	}
	if v := os.Getenv("TOOLGATE_SESSIONS_STORAGE"); v != "" {
		c.Sessions.Storage = v
	}
	if v := os.Getenv("TOOLGATE_OWNER_IDS"); v != "" {
		c.Gateway.OwnerIDs = strings.Split(v, ",")
	}
	if v := os.Getenv("TOOLGATE_RATE_LIMIT_RPM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Gateway.RateLimitRPM = n
		}
	}
	if v := os.Getenv("TOOLGATE_TELEMETRY_ENDPOINT"); v != "" {
		c.Telemetry.Endpoint = v
	}
	if v := os.Getenv("TOOLGATE_TELEMETRY_PROTOCOL"); v != "" {
		c.Telemetry.Protocol = v
	}
	if v := os.Getenv("TOOLGATE_TELEMETRY_ENABLED"); v != "" {
		c.Telemetry.Enabled = v == "true" || v == "1"
	}
}

// ApplyEnvOverrides re-applies environment variable overrides — exported
// for callers that mutate the config in place (e.g. after a hot reload)
// and need secrets restored from env.
func (c *Config) ApplyEnvOverrides() {
	c.applyEnvOverrides()
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, _ := os.UserHomeDir()
	if len(path) > 1 && path[1] == '/' {
		return home + path[1:]
	}
	return home
}
