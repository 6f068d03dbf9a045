package policy

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/nextlevelbuilder/toolgate/internal/catalog"
	"github.com/nextlevelbuilder/toolgate/internal/normalize"
	"github.com/nextlevelbuilder/toolgate/internal/plugins"
	"github.com/nextlevelbuilder/toolgate/internal/safety"
	"github.com/nextlevelbuilder/toolgate/internal/tracing"
)

// Execute runs an ordered sequence of policy steps over tools, narrowing
// the working set at each step (spec.md §4.7). toolMeta reports a tool's
// plugin id, if any. warn receives diagnostics; it may be nil. cat is the
// immutable tool catalog. npc, if non-nil, triggers the post-pipeline
// degenerate-outcome diagnostics.
func Execute(ctx tracing.Context, tools []string, steps []Step, toolMeta ToolMeta, warn WarnFunc, cat *catalog.Catalog, npc *NamedProfileContext) []string {
	inputCount := len(tools)
	warningCount := 0
	var working []string
	end := tracing.StartSpan(ctx, "toolgate.pipeline.evaluate")
	defer func() {
		end(tracing.PipelineOutcome{InputTools: inputCount, OutputTools: len(working), WarningCount: warningCount})
		slog.Debug("tool policy pipeline evaluated",
			"input_tools", inputCount,
			"output_tools", len(working),
			"warnings", warningCount,
		)
	}()

	groupMembers := plugins.Groups(tools, plugins.ToolMeta(toolMeta))
	pg := pluginGroups{members: groupMembers, keys: plugins.Keys(groupMembers)}

	working = append([]string(nil), tools...)

	emit := func(d Diagnostic) {
		warningCount++
		if warn != nil {
			warn(d)
		}
	}

	for _, step := range steps {
		if step.Policy == nil {
			continue
		}
		p := step.Policy

		if step.StripPluginOnlyAllowlist && p.Allow != nil {
			result := safety.StripPluginOnlyAllowlist(p.Allow, cat, pg.keys)
			if result.Stripped || len(result.UnknownEntries) > 0 {
				remediation := "These entries will not match any tool."
				if result.Stripped {
					remediation = "Ignoring allowlist: falling back to all core tools allowed, no restriction."
				}
				emit(Diagnostic{
					Level: "warning",
					Label: step.Label,
					Message: fmt.Sprintf("tools: %s allowlist contains unknown entries (%s). %s",
						step.Label, strings.Join(result.UnknownEntries, ", "), remediation),
				})
			}
			p = &Policy{Allow: result.Allow, Deny: p.Deny, AlsoAllow: p.AlsoAllow}
		}

		expanded := expandPolicy(p, cat, pg)
		if expanded != nil && (expanded.Allow != nil || len(expanded.Deny) > 0 || len(expanded.AlsoAllow) > 0) {
			working = Filter(working, expanded)
		}
	}

	if npc != nil {
		emitDegenerateOutcomeDiagnostic(working, npc, emit)
	}

	return working
}

// emitDegenerateOutcomeDiagnostic emits at most one post-pipeline
// diagnostic (spec.md §4.7 step 4).
func emitDegenerateOutcomeDiagnostic(working []string, npc *NamedProfileContext, emit func(Diagnostic)) {
	if len(working) == 0 {
		emit(Diagnostic{
			Level:   "warning",
			Label:   "named_profile",
			Message: fmt.Sprintf("Named profile %q resulted in zero tools after policy filtering.", npc.ProfileName),
		})
		return
	}

	if len(working) == 1 && normalize.Name(working[0]) == "session_status" {
		emit(Diagnostic{
			Level:   "warning",
			Label:   "named_profile",
			Message: fmt.Sprintf("Named profile %q resulted in only session_status after policy filtering.", npc.ProfileName),
		})
		return
	}

	if len(npc.HeadlineTools) > 0 {
		survive := make(map[string]bool, len(working))
		for _, w := range working {
			survive[normalize.Name(w)] = true
		}
		anySurvive := false
		for _, h := range npc.HeadlineTools {
			if survive[normalize.Name(h)] {
				anySurvive = true
				break
			}
		}
		if !anySurvive {
			emit(Diagnostic{
				Level: "warning",
				Label: "named_profile",
				Message: fmt.Sprintf(
					"Named profile %q requested headline tools [%s], but none remain after filtering. Effective tools: %s.",
					npc.ProfileName, strings.Join(npc.HeadlineTools, ", "), strings.Join(working, ", ")),
			})
		}
	}
}
