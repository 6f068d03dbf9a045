package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Gateway.RateLimitRPM != 20 {
		t.Errorf("RateLimitRPM = %d, want 20", cfg.Gateway.RateLimitRPM)
	}
	if cfg.Sessions.Storage == "" {
		t.Error("expected default sessions storage path")
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json5"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for missing file", err)
	}
	if cfg.Gateway.RateLimitRPM != 20 {
		t.Errorf("expected defaults applied, got %+v", cfg)
	}
}

func TestLoadParsesJSON5(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")
	content := `{
		// a comment, since this is json5
		tools: { profile: "coding", allow: ["exec", "read_file"] },
		gateway: { owner_ids: ["u1", "u2"] },
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Tools.Profile != "coding" {
		t.Errorf("Tools.Profile = %q, want coding", cfg.Tools.Profile)
	}
	if len(cfg.Gateway.OwnerIDs) != 2 {
		t.Errorf("OwnerIDs = %v, want 2 entries", cfg.Gateway.OwnerIDs)
	}
}

func TestLoadInvalidIsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")
	if err := os.WriteFile(path, []byte("{ not valid json5 :::"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error for invalid config")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TOOLGATE_OWNER_IDS", "a,b,c")
	t.Setenv("TOOLGATE_RATE_LIMIT_RPM", "5")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json5"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Gateway.OwnerIDs) != 3 {
		t.Errorf("OwnerIDs = %v, want 3 entries", cfg.Gateway.OwnerIDs)
	}
	if cfg.Gateway.RateLimitRPM != 5 {
		t.Errorf("RateLimitRPM = %d, want 5", cfg.Gateway.RateLimitRPM)
	}
}

func TestResolveAgentToolPolicy(t *testing.T) {
	cfg := Default()
	cfg.Agents.List = map[string]AgentSpec{
		"agent1": {Tools: &ToolPolicySpec{Allow: []string{"exec"}}},
	}
	if p := cfg.ResolveAgentToolPolicy("agent1"); p == nil || len(p.Allow) != 1 {
		t.Errorf("ResolveAgentToolPolicy(agent1) = %v", p)
	}
	if p := cfg.ResolveAgentToolPolicy("nonexistent"); p != nil {
		t.Errorf("expected nil for unconfigured agent, got %v", p)
	}
}
