package refs

import (
	"testing"

	"github.com/nextlevelbuilder/toolgate/internal/catalog"
)

func TestClassify(t *testing.T) {
	cat := catalog.New()
	pluginGroups := map[string]bool{"group:plugin:foo": true}

	cases := []struct {
		in   string
		want Kind
	}{
		{"exec", KindTool},
		{"bash", KindTool}, // normalizes to exec
		{"group:fs", KindSectionGroup},
		{"group:openclaw", KindOpenclawGroup},
		{"group:plugin:foo", KindPluginGroup},
		{"group:plugin:bar", KindUnknown}, // not in pluginGroups
		{"group:nonexistent", KindUnknown},
		{"totally_unknown", KindUnknown},
	}
	for _, c := range cases {
		got := Classify(c.in, cat, pluginGroups)
		if got.Kind != c.want {
			t.Errorf("Classify(%q).Kind = %v, want %v", c.in, got.Kind, c.want)
		}
	}
}

func TestExpandTool(t *testing.T) {
	cat := catalog.New()
	ref := Classify("exec", cat, nil)
	got := Expand(ref, cat, nil)
	if len(got) != 1 || got[0] != "exec" {
		t.Errorf("Expand(exec) = %v, want [exec]", got)
	}
}

func TestExpandPluginGroup(t *testing.T) {
	cat := catalog.New()
	pluginGroups := map[string]bool{"group:plugin:foo": true}
	members := map[string][]string{"group:plugin:foo": {"plugin_tool_a", "plugin_tool_b"}}
	ref := Classify("group:plugin:foo", cat, pluginGroups)
	got := Expand(ref, cat, members)
	if len(got) != 2 {
		t.Errorf("Expand(group:plugin:foo) = %v, want 2 members", got)
	}
}
