// Package config is the Config loader for toolgate: json5 file + env
// overrides + fsnotify hot reload, trimmed from the teacher's
// internal/config package to the fields this module's domain needs.
package config

import (
	"encoding/json"
	"sync"

	"github.com/nextlevelbuilder/toolgate/internal/profiles"
)

// Config is the root configuration for toolgate.
type Config struct {
	Agents    AgentsConfig    `json:"agents"`
	Gateway   GatewayConfig   `json:"gateway"`
	Tools     ToolsConfig     `json:"tools"`
	Sessions  SessionsConfig  `json:"sessions"`
	Database  DatabaseConfig  `json:"database,omitempty"`
	Telemetry TelemetryConfig `json:"telemetry,omitempty"`
	mu        sync.RWMutex
}

// AgentsConfig contains per-agent overrides.
type AgentsConfig struct {
	List map[string]AgentSpec `json:"list,omitempty"`
}

// AgentSpec is the per-agent configuration override.
type AgentSpec struct {
	Tools *ToolPolicySpec `json:"tools,omitempty"`
}

// ToolsConfig is the global tool-access policy configuration (spec.md §6,
// expanded in SPEC_FULL.md §6.1). Matching the teacher's ToolsConfig
// shape (internal/config/config.go), narrowed to the policy-relevant
// fields.
type ToolsConfig struct {
	Profile       string                     `json:"profile,omitempty"`
	Allow         []string                   `json:"allow,omitempty"`
	Deny          []string                   `json:"deny,omitempty"`
	AlsoAllow     []string                   `json:"alsoAllow,omitempty"`
	ByProvider    map[string]ToolPolicySpec  `json:"byProvider,omitempty"`
	NamedProfiles map[string]profiles.NamedProfile `json:"namedProfiles,omitempty"`
}

// ToolPolicySpec is a (profile, allow, deny, alsoAllow) bundle usable at
// the global-provider, agent, or agent-provider scope (spec.md §4.8
// steps 2/4/5/6). Matching the teacher's ToolPolicySpec. policy.DefaultLayers
// reads Profile only at the global-provider scope and Allow/Deny at all
// three scopes; AlsoAllow is not applied at any of these scopes, and an
// agent-scope Profile is not applied.
type ToolPolicySpec struct {
	Profile    string                    `json:"profile,omitempty"`
	Allow      []string                  `json:"allow,omitempty"`
	Deny       []string                  `json:"deny,omitempty"`
	AlsoAllow  []string                  `json:"alsoAllow,omitempty"`
	ByProvider map[string]ToolPolicySpec `json:"byProvider,omitempty"`
}

// GatewayConfig carries the owner-authorization and rate-limit settings
// the Reset Command Handler needs.
type GatewayConfig struct {
	OwnerIDs     []string `json:"owner_ids,omitempty"`
	RateLimitRPM int      `json:"rate_limit_rpm,omitempty"`
}

// SessionsConfig configures the Session Override Store's file backend.
type SessionsConfig struct {
	Storage string `json:"storage,omitempty"`
}

// DatabaseConfig selects standalone (file) vs managed (Postgres) mode.
// PostgresDSN is never read from the config file (secret) — only from
// the TOOLGATE_POSTGRES_DSN environment variable, matching the teacher's
// GOCLAW_POSTGRES_DSN-only convention.
type DatabaseConfig struct {
	PostgresDSN string `json:"-"`
	Mode        string `json:"mode,omitempty"`
}

// IsManagedMode reports whether Postgres-backed storage should be used.
func (c *Config) IsManagedMode() bool {
	return c.Database.Mode == "managed" && c.Database.PostgresDSN != ""
}

// TelemetryConfig configures OpenTelemetry OTLP export, mirroring the
// teacher's TelemetryConfig intent.
type TelemetryConfig struct {
	Enabled     bool              `json:"enabled,omitempty"`
	Endpoint    string            `json:"endpoint,omitempty"`
	Protocol    string            `json:"protocol,omitempty"`
	Insecure    bool              `json:"insecure,omitempty"`
	ServiceName string            `json:"service_name,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
}

// ReplaceFrom copies all data fields from src into c, preserving c's
// mutex — used by the fsnotify hot-reload path.
func (c *Config) ReplaceFrom(src *Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Agents = src.Agents
	c.Gateway = src.Gateway
	c.Tools = src.Tools
	c.Sessions = src.Sessions
	c.Database = src.Database
	c.Telemetry = src.Telemetry
}

// Snapshot returns a copy of the config safe to read without holding the
// lock further.
func (c *Config) Snapshot() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Config{
		Agents:    c.Agents,
		Gateway:   c.Gateway,
		Tools:     c.Tools,
		Sessions:  c.Sessions,
		Database:  c.Database,
		Telemetry: c.Telemetry,
	}
}

// ResolveAgentToolPolicy returns the per-agent tool policy override, or
// nil if the agent has none configured.
func (c *Config) ResolveAgentToolPolicy(agentID string) *ToolPolicySpec {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if spec, ok := c.Agents.List[agentID]; ok {
		return spec.Tools
	}
	return nil
}

// MarshalJSON is defined explicitly so the unexported mutex never leaks
// into (and json.Marshal never panics on) encoded output.
func (c *Config) MarshalJSON() ([]byte, error) {
	type alias struct {
		Agents    AgentsConfig    `json:"agents"`
		Gateway   GatewayConfig   `json:"gateway"`
		Tools     ToolsConfig     `json:"tools"`
		Sessions  SessionsConfig  `json:"sessions"`
		Database  DatabaseConfig  `json:"database,omitempty"`
		Telemetry TelemetryConfig `json:"telemetry,omitempty"`
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return json.Marshal(alias{c.Agents, c.Gateway, c.Tools, c.Sessions, c.Database, c.Telemetry})
}
