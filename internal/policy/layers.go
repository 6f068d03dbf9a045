package policy

import (
	"fmt"
	"log/slog"

	"github.com/nextlevelbuilder/toolgate/internal/catalog"
	"github.com/nextlevelbuilder/toolgate/internal/config"
	"github.com/nextlevelbuilder/toolgate/internal/profiles"
	"github.com/nextlevelbuilder/toolgate/internal/sessionoverride"
)

// DefaultLayers builds the seven fixed-order pipeline steps spec.md §4.8
// names. cat resolves profile names against the tool catalog. providerName
// selects the provider-scoped overlays; empty skips them. agentPolicy
// supplies the agent-scoped steps (nil leaves them empty); agentID is
// used only in those steps' labels. groupAllow is the caller's
// group (tenant/workspace) allowlist, applied last.
//
// A session-scoped override is not one of these seven — callers append it
// themselves via WithSessionOverride, since it only exists when there is
// an active session (SPEC_FULL.md §4.8).
func DefaultLayers(cat *catalog.Catalog, cfg *config.ToolsConfig, providerName, agentID string, agentPolicy *config.ToolPolicySpec, groupAllow []string) []Step {
	steps := make([]Step, 0, 7)

	steps = append(steps, profileStep("tools.profile", cfg.Profile, cfg.NamedProfiles, cat))

	var providerSpec *config.ToolPolicySpec
	if providerName != "" && cfg.ByProvider != nil {
		if spec, ok := cfg.ByProvider[providerName]; ok {
			providerSpec = &spec
		}
	}
	providerProfileName := ""
	if providerSpec != nil {
		providerProfileName = providerSpec.Profile
	}
	steps = append(steps, profileStep("tools.byProvider.profile", providerProfileName, cfg.NamedProfiles, cat))

	steps = append(steps, Step{
		Label:                    "tools.allow",
		StripPluginOnlyAllowlist: true,
		Policy:                  allowDenyPolicy(cfg.Allow, cfg.Deny, cfg.AlsoAllow),
	})

	var providerAllow, providerDeny []string
	if providerSpec != nil {
		providerAllow, providerDeny = providerSpec.Allow, providerSpec.Deny
	}
	steps = append(steps, Step{
		Label:                    "tools.byProvider.allow",
		StripPluginOnlyAllowlist: true,
		Policy:                  allowDenyPolicy(providerAllow, providerDeny, nil),
	})

	var agentAllow, agentDeny []string
	var agentProviderSpec *config.ToolPolicySpec
	if agentPolicy != nil {
		agentAllow, agentDeny = agentPolicy.Allow, agentPolicy.Deny
		if providerName != "" && agentPolicy.ByProvider != nil {
			if spec, ok := agentPolicy.ByProvider[providerName]; ok {
				agentProviderSpec = &spec
			}
		}
	}
	steps = append(steps, Step{
		Label:                    fmt.Sprintf("agents.%s.tools.allow", agentID),
		StripPluginOnlyAllowlist: true,
		Policy:                  allowDenyPolicy(agentAllow, agentDeny, nil),
	})

	var agentProviderAllow, agentProviderDeny []string
	if agentProviderSpec != nil {
		agentProviderAllow, agentProviderDeny = agentProviderSpec.Allow, agentProviderSpec.Deny
	}
	steps = append(steps, Step{
		Label:                    fmt.Sprintf("agents.%s.tools.byProvider.allow", agentID),
		StripPluginOnlyAllowlist: true,
		Policy:                  allowDenyPolicy(agentProviderAllow, agentProviderDeny, nil),
	})

	steps = append(steps, Step{
		Label:                    "group tools.allow",
		StripPluginOnlyAllowlist: true,
		Policy:                  allowDenyPolicy(groupAllow, nil, nil),
	})

	return steps
}

// WithSessionOverride appends an eighth, session-scoped step to layers.
// Callers without an active session simply don't call this, leaving
// exactly the seven steps spec.md §4.8 names.
func WithSessionOverride(layers []Step, override Step) []Step {
	return append(layers, override)
}

// StepFromSessionOverride converts a session override record into the 8th
// pipeline step (SPEC_FULL.md §3.6, §4.8). An empty record produces an
// identity (no-op) step. When profile_override is set it supplies the
// step's base allow/deny (resolved the same way as any other profile
// reference); allow_override/deny_override, when present, then replace
// the profile-derived allow/deny outright — the session override's own
// explicit lists always win over its own profile pick, since both came
// from the same mutation.
func StepFromSessionOverride(rec sessionoverride.Record, cat *catalog.Catalog, named map[string]profiles.NamedProfile) Step {
	if rec.IsEmpty() {
		return Step{Label: "session override"}
	}

	var allow, deny []string
	if rec.ProfileOverride != nil {
		step := profileStep("session override.profile", *rec.ProfileOverride, named, cat)
		if step.Policy != nil {
			allow, deny = step.Policy.Allow, step.Policy.Deny
		}
	}
	if rec.AllowOverride != nil {
		allow = rec.AllowOverride
	}
	if rec.DenyOverride != nil {
		deny = rec.DenyOverride
	}

	if allow == nil && len(deny) == 0 {
		return Step{Label: "session override"}
	}
	return Step{
		Label:                    "session override",
		StripPluginOnlyAllowlist: true,
		Policy:                   &Policy{Allow: allow, Deny: deny},
	}
}

func profileStep(label, profileName string, named map[string]profiles.NamedProfile, cat *catalog.Catalog) Step {
	step := Step{Label: fmt.Sprintf("%s (%s)", label, profileName)}
	if profileName == "" {
		return step
	}

	if allow, ok := profiles.ResolveBuiltin(profileName, cat); ok {
		step.Policy = &Policy{Allow: nilIfEmpty(allow)}
		step.StripPluginOnlyAllowlist = true
		return step
	}

	if allow, deny, _, ok := profiles.ResolveNamed(profileName, named, cat); ok {
		step.Policy = &Policy{Allow: nilIfEmpty(allow), Deny: deny}
		step.StripPluginOnlyAllowlist = true
		return step
	}

	if !profiles.IsBuiltin(profileName) {
		if _, named := named[profileName]; !named {
			slog.Warn("unknown tool profile, no restriction applied", "profile", profileName)
		}
	}

	// "full" and unknown profile names both resolve to no restriction;
	// ResolveBuiltin already returns ok=false for "full" (SPEC_FULL.md
	// §9, Open Questions resolved), so both fall through here with a
	// nil Policy — an identity step.
	return step
}

func allowDenyPolicy(allow, deny, alsoAllow []string) *Policy {
	if len(allow) == 0 && len(deny) == 0 && len(alsoAllow) == 0 {
		return nil
	}
	return &Policy{Allow: nilIfEmpty(allow), Deny: deny, AlsoAllow: alsoAllow}
}
