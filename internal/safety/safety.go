// Package safety implements the Allowlist Safety Filter: it prevents a
// configuration that only lists not-yet-loaded plugin tools from silently
// disabling every core tool (spec.md §4.5).
package safety

import (
	"github.com/nextlevelbuilder/toolgate/internal/catalog"
	"github.com/nextlevelbuilder/toolgate/internal/normalize"
	"github.com/nextlevelbuilder/toolgate/internal/refs"
)

// Result carries the outcome of StripPluginOnlyAllowlist.
type Result struct {
	// Allow is the (possibly stripped) allowlist, already normalized.
	// Nil means "no allowlist" (unrestricted).
	Allow []string
	// UnknownEntries are normalized allow entries that did not resolve to
	// a known core tool or a known section/openclaw group — this
	// includes both plugin-referencing entries (group:plugin:<id>, or a
	// bare tool name belonging to a loaded plugin) and genuinely
	// unrecognized entries, surfaced identically in the pipeline's
	// diagnostic text (spec.md §8 scenarios S3/S4).
	UnknownEntries []string
	// Stripped is true if the allowlist was dropped because no entry
	// resolved to a core tool or a section/openclaw group, whether the
	// other entries were plugin references or unrecognized names.
	Stripped bool
}

// StripPluginOnlyAllowlist inspects allow against cat's core tools and
// pluginGroupKeys (the "group:plugin:<id>" keys produced by
// internal/plugins.Keys). A bare plugin tool name is, like any other name
// absent from the catalog, simply not a recognized core entry — spec.md
// §8 scenario S4 extends the "no recognized core entry" trigger to ANY
// all-unrecognized allowlist, not only plugin-sourced ones (see
// DESIGN.md). If allow is nil, returns it unchanged. deny is never
// touched by this filter.
func StripPluginOnlyAllowlist(allow []string, cat *catalog.Catalog, pluginGroupKeys map[string]bool) Result {
	if allow == nil {
		return Result{Allow: nil}
	}

	normalized := normalize.List(allow)

	var unknown []string
	recognizedCore := false

	for _, entry := range normalized {
		ref := refs.Classify(entry, cat, pluginGroupKeys)
		switch ref.Kind {
		case refs.KindTool, refs.KindSectionGroup, refs.KindOpenclawGroup:
			recognizedCore = true
			continue
		default:
			// Both plugin references (group:plugin:<id>, or a bare name
			// belonging to a loaded plugin) and genuinely unrecognized
			// entries are reported identically here: the pipeline's
			// single warning grammar (spec.md §6) has no separate
			// message for "stripped" vs "unknown entries", so the
			// diagnostic csv needs every non-core entry regardless of
			// which kind caused the strip.
			unknown = append(unknown, entry)
		}
	}

	if !recognizedCore {
		return Result{Allow: nil, UnknownEntries: unknown, Stripped: true}
	}

	return Result{Allow: normalized, UnknownEntries: unknown, Stripped: false}
}
