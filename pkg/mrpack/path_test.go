package mrpack

import (
	"path/filepath"
	"testing"
)

func TestSafeJoinRejectsEscape(t *testing.T) {
	cases := []string{
		"../outside.txt",
		"mods/../../escape.jar",
		"/etc/passwd",
		"mods/../../../etc/passwd",
	}
	for _, rel := range cases {
		if _, err := SafeJoin("/root", rel); err == nil {
			t.Errorf("SafeJoin(%q) should have rejected an escaping path", rel)
		}
	}
}

func TestSafeJoinAllowsNested(t *testing.T) {
	got, err := SafeJoin("/root", "mods/foo.jar")
	if err != nil {
		t.Fatalf("SafeJoin: %v", err)
	}
	want := filepath.Join("/root", "mods", "foo.jar")
	if got != want {
		t.Errorf("SafeJoin = %q, want %q", got, want)
	}
}

func TestSafeJoinNormalizesBackslashes(t *testing.T) {
	got, err := SafeJoin("/root", `config\foo.toml`)
	if err != nil {
		t.Fatalf("SafeJoin: %v", err)
	}
	want := filepath.Join("/root", "config", "foo.toml")
	if got != want {
		t.Errorf("SafeJoin = %q, want %q", got, want)
	}
}

func TestNormalizedPathKeyCaseInsensitive(t *testing.T) {
	if NormalizedPathKey("Mods/Foo.jar") != NormalizedPathKey("mods/foo.jar") {
		t.Error("NormalizedPathKey should be case-insensitive")
	}
}
