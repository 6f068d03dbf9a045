package profiles

import "github.com/nextlevelbuilder/toolgate/internal/catalog"

// NamedProfile is a user-defined profile, keyed by name in the enclosing
// map (spec.md §6, "Named profile configuration shape").
type NamedProfile struct {
	Extends string
	Allow   []string
	Deny    []string
}

// Trace records a named profile resolution for diagnostics (spec.md §3,
// "Resolution Trace").
type Trace struct {
	ResolvedFrom   []string
	EffectiveAllow []string
	EffectiveDeny  []string
}

const maxChainDepth = 5

// ResolveNamed resolves a named profile through its extends chain,
// terminating at a built-in, a cycle, or depth 5 (spec.md §4.3). Returns
// ok=false if both the effective allow and deny end up empty.
func ResolveNamed(name string, named map[string]NamedProfile, cat *catalog.Catalog) (allow, deny []string, trace Trace, ok bool) {
	chain := []string{name}
	visited := map[string]bool{name: true}

	var allAllow, allDeny []string

	current, exists := named[name]
	if !exists {
		return nil, nil, Trace{}, false
	}
	allAllow = append(allAllow, current.Allow...)
	allDeny = append(allDeny, current.Deny...)

	for {
		parent := current.Extends
		if parent == "" {
			break
		}
		if visited[parent] || len(chain) >= maxChainDepth {
			break
		}
		if IsBuiltin(parent) {
			if builtinAllow, found := ResolveBuiltin(parent, cat); found {
				allAllow = append(allAllow, builtinAllow...)
			}
			break
		}
		next, found := named[parent]
		if !found {
			break
		}
		chain = append(chain, parent)
		visited[parent] = true
		allAllow = append(allAllow, next.Allow...)
		allDeny = append(allDeny, next.Deny...)
		current = next
	}

	denySet := dedup(allDeny)
	denyLookup := make(map[string]bool, len(denySet))
	for _, d := range denySet {
		denyLookup[d] = true
	}

	effectiveAllow := make([]string, 0, len(allAllow))
	seenAllow := make(map[string]bool)
	for _, a := range dedup(allAllow) {
		if denyLookup[a] {
			continue
		}
		if seenAllow[a] {
			continue
		}
		seenAllow[a] = true
		effectiveAllow = append(effectiveAllow, a)
	}

	if len(effectiveAllow) == 0 && len(denySet) == 0 {
		return nil, nil, Trace{}, false
	}

	trace = Trace{
		ResolvedFrom:   chain,
		EffectiveAllow: effectiveAllow,
		EffectiveDeny:  denySet,
	}
	return effectiveAllow, denySet, trace, true
}

// dedup removes duplicate entries, preserving first-seen order.
func dedup(xs []string) []string {
	seen := make(map[string]bool, len(xs))
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		if seen[x] {
			continue
		}
		seen[x] = true
		out = append(out, x)
	}
	return out
}
