package normalize

import "testing"

func TestName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"bash", "exec"},
		{"apply-patch", "apply_patch"},
		{"  Exec  ", "exec"},
		{"READ_FILE", "read_file"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := Name(c.in); got != c.want {
			t.Errorf("Name(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNameIdempotent(t *testing.T) {
	for _, in := range []string{"bash", "apply-patch", "  Exec ", "read_file"} {
		once := Name(in)
		twice := Name(once)
		if once != twice {
			t.Errorf("Name not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestList(t *testing.T) {
	got := List([]string{"bash", "", "  ", "apply-patch", "Read_File"})
	want := []string{"exec", "apply_patch", "read_file"}
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
