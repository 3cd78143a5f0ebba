package main

import (
	"testing"

	"instanceforge/pkg/instance"
)

func TestParseLauncherKind(t *testing.T) {
	cases := map[string]instance.LauncherKind{
		"Official":    instance.Official,
		"XMCL":        instance.XMCL,
		"AstralRinth": instance.AstralRinth,
		"bogus":       instance.Other,
		"":            instance.Other,
	}
	for in, want := range cases {
		if got := parseLauncherKind(in); got != want {
			t.Errorf("parseLauncherKind(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestResolveRootExplicitPath(t *testing.T) {
	dir := t.TempDir()
	root, err := resolveRoot(dir)
	if err != nil {
		t.Fatalf("resolveRoot: %v", err)
	}
	if root.Path != dir {
		t.Errorf("root.Path = %q, want %q", root.Path, dir)
	}
	if root.Kind != instance.Unknown {
		t.Errorf("root.Kind = %v, want Unknown for an empty directory", root.Kind)
	}
}
