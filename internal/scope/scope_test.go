package scope

import (
	"sort"
	"testing"
)

func TestIsLegal(t *testing.T) {
	for _, name := range []string{
		"user", "user:email", "user:follow", "public_repo",
		"repo", "repo:status", "delete_repo", "notifications", "gist",
	} {
		if !IsLegal(name) {
			t.Errorf("IsLegal(%q) = false, want true", name)
		}
	}
}

func TestIsLegal_Unknown(t *testing.T) {
	for _, name := range []string{"", "bogus", "REPO", "repo:write", "user: email", "admin:org"} {
		if IsLegal(name) {
			t.Errorf("IsLegal(%q) = true, want false", name)
		}
	}
}

func TestLegal_Sorted(t *testing.T) {
	names := Legal()
	if len(names) != 9 {
		t.Fatalf("Legal() returned %d names, want 9", len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("Legal() not sorted: %v", names)
	}
	for _, name := range names {
		if !IsLegal(name) {
			t.Errorf("Legal() contains %q but IsLegal rejects it", name)
		}
	}
}
