package policy

import (
	"context"
	"reflect"
	"testing"

	"github.com/nextlevelbuilder/toolgate/internal/catalog"
	"github.com/nextlevelbuilder/toolgate/internal/config"
	"github.com/nextlevelbuilder/toolgate/internal/profiles"
	"github.com/nextlevelbuilder/toolgate/internal/sessionoverride"
)

func TestDefaultLayersSevenSteps(t *testing.T) {
	cat := catalog.New()
	cfg := &config.ToolsConfig{Profile: "coding"}

	steps := DefaultLayers(cat, cfg, "openai", "assistant-1", nil, nil)

	if len(steps) != 7 {
		t.Fatalf("got %d steps, want 7", len(steps))
	}
}

func TestDefaultLayersAppliesProfile(t *testing.T) {
	cat := catalog.New()
	cfg := &config.ToolsConfig{Profile: "minimal"}

	steps := DefaultLayers(cat, cfg, "", "", nil, nil)

	got := Execute(context.Background(), cat.CoreToolIDs(), steps, noPlugins, nil, cat, nil)
	want := []string{"session_status"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDefaultLayersAgentAllowNarrows(t *testing.T) {
	cat := catalog.New()
	cfg := &config.ToolsConfig{}
	agentPolicy := &config.ToolPolicySpec{Allow: []string{"exec", "read_file"}}

	steps := DefaultLayers(cat, cfg, "", "assistant-1", agentPolicy, nil)

	got := Execute(context.Background(), []string{"exec", "read_file", "web_search"}, steps, noPlugins, nil, cat, nil)
	want := []string{"exec", "read_file"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// TestDefaultLayersProfileStepStripsPluginOnlyAllowlist guards spec.md
// §4.8's "step 1-6 all enable the safety filter" invariant at the
// tools.profile step: a named profile whose allow list names only a
// plugin group must not silently disarm every core tool.
func TestDefaultLayersProfileStepStripsPluginOnlyAllowlist(t *testing.T) {
	cat := catalog.New()
	cfg := &config.ToolsConfig{
		Profile: "sneaky",
		NamedProfiles: map[string]profiles.NamedProfile{
			"sneaky": {Allow: []string{"group:plugin:foo"}},
		},
	}

	steps := DefaultLayers(cat, cfg, "", "", nil, nil)
	toolMeta := func(n string) (string, bool) {
		if n == "plugin_tool" {
			return "foo", true
		}
		return "", false
	}

	got := Execute(context.Background(), cat.CoreToolIDs(), steps, toolMeta, nil, cat, nil)
	want := cat.CoreToolIDs()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want all core tools allowed (allowlist should be stripped, not enforced)", got)
	}
}

func TestWithSessionOverrideAppendsEighthStep(t *testing.T) {
	cat := catalog.New()
	cfg := &config.ToolsConfig{}

	layers := DefaultLayers(cat, cfg, "", "", nil, nil)
	withOverride := WithSessionOverride(layers, Step{Label: "session override", Policy: &Policy{Deny: []string{"exec"}}})

	if len(withOverride) != 8 {
		t.Fatalf("got %d steps, want 8", len(withOverride))
	}
	if len(layers) != 7 {
		t.Errorf("base layers mutated: got %d, want 7", len(layers))
	}
}

func TestStepFromSessionOverride_EmptyRecordIsNoOp(t *testing.T) {
	cat := catalog.New()
	step := StepFromSessionOverride(sessionoverride.Record{}, cat, nil)
	if step.Policy != nil {
		t.Errorf("empty record should produce a nil-policy step, got %+v", step.Policy)
	}
}

func TestStepFromSessionOverride_AllowOverrideNarrows(t *testing.T) {
	cat := catalog.New()
	allow := []string{"exec"}
	rec := sessionoverride.Record{AllowOverride: allow}
	step := StepFromSessionOverride(rec, cat, nil)

	got := Execute(context.Background(), []string{"exec", "read_file"}, []Step{step}, noPlugins, nil, cat, nil)
	want := []string{"exec"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestStepFromSessionOverride_AllowOverrideWinsOverProfile(t *testing.T) {
	cat := catalog.New()
	profileName := "minimal"
	rec := sessionoverride.Record{
		ProfileOverride: &profileName,
		AllowOverride:   []string{"exec", "session_status"},
	}
	step := StepFromSessionOverride(rec, cat, nil)

	got := Execute(context.Background(), []string{"exec", "session_status", "read_file"}, []Step{step}, noPlugins, nil, cat, nil)
	want := []string{"exec", "session_status"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v (allow_override should replace the minimal profile's allowlist)", got, want)
	}
}
