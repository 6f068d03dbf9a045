// Package profiles resolves a profile name — built-in or user-defined —
// to an (allow, deny) policy (spec.md §4.3).
package profiles

import (
	"github.com/nextlevelbuilder/toolgate/internal/catalog"
)

// builtinNames is the fixed set of built-in profile ids (spec.md §3,
// "Built-in Profile"). Matching the teacher's toolProfiles map keys.
var builtinNames = map[string]bool{
	"minimal":   true,
	"coding":    true,
	"messaging": true,
	"full":      true,
}

// builtinSpecs mirrors the teacher's toolProfiles table
// (internal/tools/policy.go) — each entry may reference tools directly or
// via "group:<section>" references, expanded against the catalog.
var builtinSpecs = map[string][]string{
	"minimal":   {"session_status"},
	"coding":    {"group:fs", "group:runtime", "group:sessions", "group:memory", "read_image", "create_image"},
	"messaging": {"group:messaging", "sessions_list", "sessions_history", "sessions_send", "session_status"},
	// full is intentionally absent: resolved specially below — no
	// restriction, consistent with monotone narrowing (it cannot
	// reset what prior pipeline steps have already removed). See
	// DESIGN.md, Open Question 2.
}

// IsBuiltin reports whether name is one of the fixed built-in profile ids.
func IsBuiltin(name string) bool {
	return builtinNames[name]
}

// ResolveBuiltin returns the allow list derived from the catalog for a
// built-in profile name. "full" (or any name resolving to it) returns
// ok=false — meaning unrestricted, no policy to apply. Built-in profiles
// have no deny list.
func ResolveBuiltin(name string, cat *catalog.Catalog) (allow []string, ok bool) {
	if name == "full" {
		return nil, false
	}
	spec, found := builtinSpecs[name]
	if !found {
		return nil, false
	}
	return expandAgainstCatalog(spec, cat), true
}

// expandAgainstCatalog expands group references in spec against cat and
// returns deduplicated, order-preserved tool ids, filtered to known ids
// where the reference is a single tool.
func expandAgainstCatalog(spec []string, cat *catalog.Catalog) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, s := range spec {
		if expanded := cat.GroupExpansion(s); expanded != nil {
			for _, id := range expanded {
				add(id)
			}
			continue
		}
		if cat.IsKnown(s) {
			add(s)
		}
	}
	return out
}
