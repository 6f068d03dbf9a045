package policy

import (
	"github.com/nextlevelbuilder/toolgate/internal/catalog"
	"github.com/nextlevelbuilder/toolgate/internal/normalize"
	"github.com/nextlevelbuilder/toolgate/internal/refs"
)

// pluginGroups bundles the two views internal/plugins.Groups produces:
// the membership map and the key-set refs.Classify needs.
type pluginGroups struct {
	members map[string][]string
	keys    map[string]bool
}

// expandEntries rewrites each entry that is a recognized group reference
// (section, openclaw, or plugin) into its member tool ids, normalizes
// plain tool references, preserves order, and deduplicates (spec.md
// §4.4, "Policy Expander"). Unknown entries are left in place — they
// simply fail to match any tool during filtering.
func expandEntries(entries []string, cat *catalog.Catalog, pg pluginGroups) []string {
	if entries == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	add := func(id string) {
		if seen[id] {
			return
		}
		seen[id] = true
		out = append(out, id)
	}
	for _, raw := range entries {
		ref := refs.Classify(raw, cat, pg.keys)
		if ref.Kind.IsGroup() {
			for _, id := range refs.Expand(ref, cat, pg.members) {
				add(id)
			}
			continue
		}
		if ref.Kind == refs.KindUnknown {
			// Left in place (normalized) so it simply fails to match
			// anything downstream, per spec.md §4.4.
			add(normalize.Name(raw))
			continue
		}
		add(ref.ID)
	}
	return out
}

// expandPolicy expands every field of p against cat/pg. A nil p expands
// to nil.
func expandPolicy(p *Policy, cat *catalog.Catalog, pg pluginGroups) *Policy {
	if p == nil {
		return nil
	}
	return &Policy{
		Allow:     expandEntries(p.Allow, cat, pg),
		Deny:      expandEntries(p.Deny, cat, pg),
		AlsoAllow: expandEntries(p.AlsoAllow, cat, pg),
	}
}
