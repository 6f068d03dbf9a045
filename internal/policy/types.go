// Package policy implements the Policy Expander, Policy Filter, and
// Pipeline Executor (spec.md §4.4, §4.6, §4.7), plus the default 7(+1)
// step layering (spec.md §4.8).
package policy

import (
	"github.com/nextlevelbuilder/toolgate/internal/config"
	"github.com/nextlevelbuilder/toolgate/internal/profiles"
)

// Policy is an (allow, deny) pair. A nil Allow means "unrestricted allow".
// Absence of both Allow and Deny is the identity policy (no effect).
type Policy struct {
	Allow []string
	Deny  []string
	// AlsoAllow supplements the teacher's dropped AlsoAllow feature
	// (SPEC_FULL.md §3.4): applied after Deny, additive within this
	// step only.
	AlsoAllow []string
}

// Step is one layer of the pipeline. A nil Policy is a no-op step that is
// skipped (spec.md §3, "Pipeline Step").
type Step struct {
	Policy                   *Policy
	Label                    string
	StripPluginOnlyAllowlist bool
}

// Diagnostic is a single warning emitted by the pipeline (spec.md §3,
// "Diagnostic Warning"). Level is always "warning" — the pipeline never
// raises fatal errors over policy content (spec.md §7).
type Diagnostic struct {
	Level   string
	Message string
	Label   string
}

// WarnFunc receives diagnostics as the pipeline runs. The pipeline is
// synchronous and non-cancellable (spec.md §5); WarnFunc is an ordinary
// function, not a channel. Thread-safety is the caller's responsibility
// (spec.md §5, "Shared resources").
type WarnFunc func(Diagnostic)

// NamedProfileContext supplies the extra information needed to emit the
// zero-tools / only-session_status / headline-loss diagnostics after the
// pipeline completes (spec.md §4.7 step 4).
type NamedProfileContext struct {
	ProfileName   string
	HeadlineTools []string
}

// Trace re-exports profiles.Trace for callers that want to inspect a
// named profile's resolution (spec.md §3, "Resolution Trace").
type Trace = profiles.Trace

// ToolMeta re-exports the plugin metadata function shape expected by the
// Pipeline Executor (spec.md §4.7, "tool_meta function").
type ToolMeta func(toolName string) (pluginID string, ok bool)

// agentPolicyToPolicy converts a config.ToolPolicySpec into a *Policy,
// or nil if spec is nil or carries no restriction.
func agentPolicyToPolicy(spec *config.ToolPolicySpec) *Policy {
	if spec == nil {
		return nil
	}
	if len(spec.Allow) == 0 && len(spec.Deny) == 0 && len(spec.AlsoAllow) == 0 {
		return nil
	}
	return &Policy{Allow: nilIfEmpty(spec.Allow), Deny: spec.Deny, AlsoAllow: spec.AlsoAllow}
}

func nilIfEmpty(xs []string) []string {
	if len(xs) == 0 {
		return nil
	}
	return xs
}
