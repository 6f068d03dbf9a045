package catalog

// profiles is a small helper for building a Tool's Profiles set literal.
func profiles(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// builtinTools enumerates the tools the teacher's internal/tools package
// implements execution bodies for. Only metadata is reproduced here —
// deciding whether a tool may be called is a different concern than
// executing it. Section/profile/openclaw-group membership mirrors the
// teacher's toolGroups/toolProfiles tables in internal/tools/policy.go.
var builtinTools = []Tool{
	{ID: "read_file", Label: "Read File", Description: "Read the contents of a file in the workspace.", SectionID: "fs", Profiles: profiles("coding"), IncludeInOpenclawGroup: false},
	{ID: "write_file", Label: "Write File", Description: "Write or overwrite a file in the workspace.", SectionID: "fs", Profiles: profiles("coding")},
	{ID: "list_files", Label: "List Files", Description: "List files and directories under a path.", SectionID: "fs", Profiles: profiles("coding")},
	{ID: "edit_file", Label: "Edit File", Description: "Apply a targeted edit to an existing file.", SectionID: "fs", Profiles: profiles("coding")},
	{ID: "search", Label: "Search", Description: "Search file contents in the workspace.", SectionID: "fs", Profiles: profiles("coding")},
	{ID: "glob", Label: "Glob", Description: "Find files by glob pattern.", SectionID: "fs", Profiles: profiles("coding")},
	{ID: "apply_patch", Label: "Apply Patch", Description: "Apply a unified diff patch to the workspace.", SectionID: "fs", Profiles: profiles("coding")},

	{ID: "exec", Label: "Exec", Description: "Run a shell command in the workspace sandbox.", SectionID: "runtime", Profiles: profiles("coding")},
	{ID: "process", Label: "Process", Description: "Inspect or signal a previously started process.", SectionID: "runtime", Profiles: profiles("coding")},

	{ID: "web_search", Label: "Web Search", Description: "Search the web.", SectionID: "web", Profiles: profiles(), IncludeInOpenclawGroup: true},
	{ID: "web_fetch", Label: "Web Fetch", Description: "Fetch and convert a URL's contents.", SectionID: "web", Profiles: profiles(), IncludeInOpenclawGroup: true},

	{ID: "memory_search", Label: "Memory Search", Description: "Search agent memory.", SectionID: "memory", Profiles: profiles("coding"), IncludeInOpenclawGroup: true},
	{ID: "memory_get", Label: "Memory Get", Description: "Fetch a memory entry by id.", SectionID: "memory", Profiles: profiles("coding"), IncludeInOpenclawGroup: true},

	{ID: "sessions_list", Label: "Sessions List", Description: "List known sessions.", SectionID: "sessions", Profiles: profiles("coding", "messaging"), IncludeInOpenclawGroup: true},
	{ID: "sessions_history", Label: "Sessions History", Description: "Read a session's message history.", SectionID: "sessions", Profiles: profiles("coding", "messaging"), IncludeInOpenclawGroup: true},
	{ID: "sessions_send", Label: "Sessions Send", Description: "Send a message into another session.", SectionID: "sessions", Profiles: profiles("coding", "messaging"), IncludeInOpenclawGroup: true},
	{ID: "sessions_spawn", Label: "Sessions Spawn", Description: "Spawn a new subagent session.", SectionID: "sessions", Profiles: profiles("coding"), IncludeInOpenclawGroup: true},
	{ID: "subagents", Label: "Subagents", Description: "List or manage active subagents.", SectionID: "sessions", Profiles: profiles("coding"), IncludeInOpenclawGroup: true},
	{ID: "session_status", Label: "Session Status", Description: "Report the current session's status.", SectionID: "sessions", Profiles: profiles("minimal", "coding", "messaging"), IncludeInOpenclawGroup: true},

	{ID: "browser", Label: "Browser", Description: "Drive a headless browser.", SectionID: "ui", Profiles: profiles(), IncludeInOpenclawGroup: true},
	{ID: "canvas", Label: "Canvas", Description: "Render content to the agent's canvas surface.", SectionID: "ui", Profiles: profiles(), IncludeInOpenclawGroup: true},

	{ID: "message", Label: "Message", Description: "Send a chat message.", SectionID: "messaging", Profiles: profiles("messaging"), IncludeInOpenclawGroup: true},

	{ID: "cron", Label: "Cron", Description: "Schedule a recurring agent job.", SectionID: "automation", Profiles: profiles(), IncludeInOpenclawGroup: true},
	{ID: "gateway", Label: "Gateway", Description: "Inspect or administer the gateway.", SectionID: "automation", Profiles: profiles(), IncludeInOpenclawGroup: true},

	{ID: "nodes", Label: "Nodes", Description: "List or address connected nodes.", SectionID: "nodes", Profiles: profiles(), IncludeInOpenclawGroup: true},

	{ID: "agents_list", Label: "Agents List", Description: "List configured agents.", SectionID: "agents", Profiles: profiles(), IncludeInOpenclawGroup: true},

	{ID: "read_image", Label: "Read Image", Description: "Read and describe an image.", SectionID: "media", Profiles: profiles("coding"), IncludeInOpenclawGroup: true},
	{ID: "create_image", Label: "Create Image", Description: "Generate an image.", SectionID: "media", Profiles: profiles("coding"), IncludeInOpenclawGroup: true},
}
