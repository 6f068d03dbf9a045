// Package refs classifies a policy entry (a string from an allow/deny
// list) into one of a closed set of tagged variants, instead of repeating
// string-prefix checks at every call site. See spec.md Design Notes §9,
// "Tagged variants for policy entries".
package refs

import (
	"strings"

	"github.com/nextlevelbuilder/toolgate/internal/catalog"
	"github.com/nextlevelbuilder/toolgate/internal/normalize"
)

// Kind identifies which variant a Ref is.
type Kind int

const (
	KindTool Kind = iota
	KindSectionGroup
	KindOpenclawGroup
	KindPluginGroup
	KindUnknown
)

// Ref is a classified policy entry.
type Ref struct {
	Kind Kind
	// ID is the tool id (KindTool), section id (KindSectionGroup), or
	// plugin id (KindPluginGroup). Empty for KindOpenclawGroup.
	ID string
	// Raw is the original normalized entry string, kept for diagnostics.
	Raw string
}

// Classify normalizes raw and classifies it against cat (core tools +
// section/openclaw groups) and pluginGroups (the set of known
// "group:plugin:<id>" keys, as computed by internal/plugins).
func Classify(raw string, cat *catalog.Catalog, pluginGroups map[string]bool) Ref {
	n := normalize.Name(raw)
	switch {
	case strings.HasPrefix(n, "group:plugin:"):
		id := strings.TrimPrefix(n, "group:plugin:")
		if pluginGroups["group:plugin:"+id] {
			return Ref{Kind: KindPluginGroup, ID: id, Raw: n}
		}
		return Ref{Kind: KindUnknown, Raw: n}
	case n == "group:openclaw":
		return Ref{Kind: KindOpenclawGroup, Raw: n}
	case strings.HasPrefix(n, "group:"):
		id := strings.TrimPrefix(n, "group:")
		if cat.IsSectionGroup(id) {
			return Ref{Kind: KindSectionGroup, ID: id, Raw: n}
		}
		return Ref{Kind: KindUnknown, Raw: n}
	case cat.IsKnown(n):
		return Ref{Kind: KindTool, ID: n, Raw: n}
	default:
		return Ref{Kind: KindUnknown, Raw: n}
	}
}

// Expand returns the member tool ids a Ref denotes. KindTool expands to
// itself; KindUnknown expands to nothing.
func Expand(ref Ref, cat *catalog.Catalog, pluginGroupMembers map[string][]string) []string {
	switch ref.Kind {
	case KindTool:
		return []string{ref.ID}
	case KindSectionGroup:
		return cat.GroupExpansion("group:" + ref.ID)
	case KindOpenclawGroup:
		return cat.GroupExpansion("group:openclaw")
	case KindPluginGroup:
		return pluginGroupMembers["group:plugin:"+ref.ID]
	default:
		return nil
	}
}

// IsGroup reports whether kind denotes any group variant (section,
// openclaw, or plugin) as opposed to a single tool or unknown reference.
func (k Kind) IsGroup() bool {
	return k == KindSectionGroup || k == KindOpenclawGroup || k == KindPluginGroup
}
