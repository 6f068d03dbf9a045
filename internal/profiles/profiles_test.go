package profiles

import (
	"testing"

	"github.com/nextlevelbuilder/toolgate/internal/catalog"
)

func TestResolveBuiltinFull(t *testing.T) {
	cat := catalog.New()
	_, ok := ResolveBuiltin("full", cat)
	if ok {
		t.Error("full should resolve to unrestricted (ok=false)")
	}
}

func TestResolveBuiltinMinimal(t *testing.T) {
	cat := catalog.New()
	allow, ok := ResolveBuiltin("minimal", cat)
	if !ok {
		t.Fatal("expected minimal to resolve")
	}
	if len(allow) != 1 || allow[0] != "session_status" {
		t.Errorf("minimal allow = %v, want [session_status]", allow)
	}
}

func TestResolveBuiltinCodingExpandsGroups(t *testing.T) {
	cat := catalog.New()
	allow, ok := ResolveBuiltin("coding", cat)
	if !ok {
		t.Fatal("expected coding to resolve")
	}
	want := map[string]bool{
		"read_file": true, "write_file": true, "list_files": true, "edit_file": true,
		"search": true, "glob": true, "apply_patch": true,
		"exec": true, "process": true,
		"sessions_list": true, "sessions_history": true, "sessions_send": true,
		"sessions_spawn": true, "subagents": true, "session_status": true,
		"memory_search": true, "memory_get": true,
		"read_image": true, "create_image": true,
	}
	got := make(map[string]bool)
	for _, a := range allow {
		got[a] = true
	}
	for w := range want {
		if !got[w] {
			t.Errorf("coding allow missing %q", w)
		}
	}
}

func TestResolveBuiltinUnknown(t *testing.T) {
	cat := catalog.New()
	if _, ok := ResolveBuiltin("nonexistent", cat); ok {
		t.Error("expected unknown profile to not resolve")
	}
}

func TestResolveNamedSimple(t *testing.T) {
	cat := catalog.New()
	named := map[string]NamedProfile{
		"team": {Allow: []string{"exec", "read_file"}, Deny: []string{"read_file"}},
	}
	allow, deny, trace, ok := ResolveNamed("team", named, cat)
	if !ok {
		t.Fatal("expected team to resolve")
	}
	if len(allow) != 1 || allow[0] != "exec" {
		t.Errorf("allow = %v, want [exec] (deny wins on overlap)", allow)
	}
	if len(deny) != 1 || deny[0] != "read_file" {
		t.Errorf("deny = %v, want [read_file]", deny)
	}
	if len(trace.ResolvedFrom) != 1 || trace.ResolvedFrom[0] != "team" {
		t.Errorf("trace.ResolvedFrom = %v", trace.ResolvedFrom)
	}
}

func TestResolveNamedExtendsBuiltin(t *testing.T) {
	cat := catalog.New()
	named := map[string]NamedProfile{
		"custom": {Extends: "minimal", Allow: []string{"exec"}},
	}
	allow, _, _, ok := ResolveNamed("custom", named, cat)
	if !ok {
		t.Fatal("expected custom to resolve")
	}
	got := make(map[string]bool)
	for _, a := range allow {
		got[a] = true
	}
	if !got["exec"] || !got["session_status"] {
		t.Errorf("allow = %v, want exec + session_status (from minimal)", allow)
	}
}

func TestResolveNamedCycleBreaks(t *testing.T) {
	cat := catalog.New()
	named := map[string]NamedProfile{
		"a": {Extends: "b", Allow: []string{"exec"}},
		"b": {Extends: "a", Allow: []string{"read_file"}},
	}
	allow, _, trace, ok := ResolveNamed("a", named, cat)
	if !ok {
		t.Fatal("expected a to resolve despite cycle")
	}
	if len(trace.ResolvedFrom) > maxChainDepth {
		t.Errorf("chain length %d exceeds max depth", len(trace.ResolvedFrom))
	}
	got := make(map[string]bool)
	for _, x := range allow {
		got[x] = true
	}
	if !got["exec"] || !got["read_file"] {
		t.Errorf("allow = %v, want both exec and read_file before the cycle breaks", allow)
	}
}

func TestResolveNamedDepthLimit(t *testing.T) {
	cat := catalog.New()
	named := map[string]NamedProfile{
		"p1": {Extends: "p2", Allow: []string{"a"}},
		"p2": {Extends: "p3", Allow: []string{"b"}},
		"p3": {Extends: "p4", Allow: []string{"c"}},
		"p4": {Extends: "p5", Allow: []string{"d"}},
		"p5": {Extends: "p6", Allow: []string{"e"}},
		"p6": {Extends: "p7", Allow: []string{"f"}},
		"p7": {Allow: []string{"g"}},
	}
	_, _, trace, ok := ResolveNamed("p1", named, cat)
	if !ok {
		t.Fatal("expected p1 to resolve")
	}
	if len(trace.ResolvedFrom) > maxChainDepth {
		t.Errorf("chain length %d exceeds max depth %d", len(trace.ResolvedFrom), maxChainDepth)
	}
}

func TestResolveNamedEmptyReturnsNotOK(t *testing.T) {
	cat := catalog.New()
	named := map[string]NamedProfile{"empty": {}}
	_, _, _, ok := ResolveNamed("empty", named, cat)
	if ok {
		t.Error("expected empty profile (no allow, no deny) to not resolve")
	}
}
