// Package plugins computes plugin tool groupings from already-loaded tool
// lists. Connecting to MCP servers and discovering their tools is plugin
// *discovery*, an explicit Non-goal (spec.md §1) — the set of known plugin
// tools is supplied as input here, as the teacher's
// internal/mcp.Manager.updateMCPGroup / tools.RegisterToolGroup("mcp:"+
// name, ...) does once a server has already connected, but without any of
// the connection lifecycle surrounding it.
package plugins

// ToolMeta reports whether a tool carries plugin metadata and, if so,
// which plugin contributed it.
type ToolMeta func(toolName string) (pluginID string, ok bool)

// Groups maps "group:plugin:<pluginId>" to the ordered, deduplicated list
// of tool names that plugin contributed.
func Groups(tools []string, meta ToolMeta) map[string][]string {
	groups := make(map[string][]string)
	seen := make(map[string]map[string]bool)
	for _, name := range tools {
		pluginID, ok := meta(name)
		if !ok || pluginID == "" {
			continue
		}
		key := "group:plugin:" + pluginID
		if seen[key] == nil {
			seen[key] = make(map[string]bool)
		}
		if seen[key][name] {
			continue
		}
		seen[key][name] = true
		groups[key] = append(groups[key], name)
	}
	return groups
}

// Keys returns the set of group keys present in groups, for membership
// checks against internal/refs.Classify.
func Keys(groups map[string][]string) map[string]bool {
	keys := make(map[string]bool, len(groups))
	for k := range groups {
		keys[k] = true
	}
	return keys
}
