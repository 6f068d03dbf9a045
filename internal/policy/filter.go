package policy

import "github.com/nextlevelbuilder/toolgate/internal/normalize"

// Filter applies a single already-expanded (allow, deny) policy to a tool
// list (spec.md §4.6). A tool is retained iff policy.Allow is nil OR its
// normalized name is in Allow, AND its normalized name is not in Deny.
// A tool named in AlsoAllow and not in Deny is retained as well.
// Input order is preserved. Idempotent under repeated application.
func Filter(tools []string, p *Policy) []string {
	if p == nil {
		return append([]string(nil), tools...)
	}

	var allowSet map[string]bool
	if p.Allow != nil {
		allowSet = toSet(p.Allow)
	}
	denySet := toSet(p.Deny)

	out := make([]string, 0, len(tools))
	for _, t := range tools {
		n := normalize.Name(t)
		if allowSet != nil && !allowSet[n] {
			continue
		}
		if denySet[n] {
			continue
		}
		out = append(out, t)
	}

	if len(p.AlsoAllow) > 0 {
		out = applyAlsoAllow(out, tools, p.AlsoAllow, denySet)
	}

	return out
}

// applyAlsoAllow restores tools from the full input set named by
// alsoAllow that deny/allow would otherwise have excluded, without
// re-admitting anything this step's own deny excludes (SPEC_FULL.md
// §3.4).
func applyAlsoAllow(current, allTools, alsoAllow []string, denySet map[string]bool) []string {
	also := toSet(alsoAllow)
	present := toSet(current)

	out := make([]string, 0, len(allTools))
	restored := make(map[string]bool)
	for _, t := range allTools {
		n := normalize.Name(t)
		if present[n] {
			out = append(out, t)
			continue
		}
		if !also[n] || denySet[n] || restored[n] {
			continue
		}
		restored[n] = true
		out = append(out, t)
	}
	return out
}

func toSet(xs []string) map[string]bool {
	m := make(map[string]bool, len(xs))
	for _, x := range xs {
		m[normalize.Name(x)] = true
	}
	return m
}
