// Package normalize canonicalizes tool reference names: trim, lowercase,
// alias resolution.
package normalize

import "strings"

// aliases is the closed alias map. Matching the teacher's toolAliases.
var aliases = map[string]string{
	"bash":        "exec",
	"apply-patch": "apply_patch",
}

// Name trims whitespace, lowercases, and resolves aliases.
// Idempotent: Name(Name(x)) == Name(x).
func Name(raw string) string {
	n := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := aliases[n]; ok {
		return canonical
	}
	return n
}

// List normalizes each entry, dropping any that normalize to empty.
func List(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		n := Name(r)
		if n == "" {
			continue
		}
		out = append(out, n)
	}
	return out
}
