package materializer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"instanceforge/pkg/instance"
)

func TestMaterializeRejectsInvalidLoader(t *testing.T) {
	_, err := Materialize(Request{
		Root:   instance.LauncherRoot{Path: t.TempDir(), Kind: instance.Other},
		Name:   "test",
		Loader: "not-a-loader",
	})
	if err == nil {
		t.Fatal("Materialize should reject an unrecognized loader")
	}
}

func TestMaterializeOfficialContentRootIsInstanceDir(t *testing.T) {
	root := t.TempDir()
	handle, err := Materialize(Request{
		Root:             instance.LauncherRoot{Path: root, Kind: instance.Official},
		Name:             "My Instance",
		MinecraftVersion: "1.21.1",
		Loader:           instance.LoaderVanilla,
	})
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	want := filepath.Join(root, "instances", "My Instance")
	if handle.Path != want {
		t.Errorf("content root = %q, want %q (same as instance dir for Official)", handle.Path, want)
	}
	for _, d := range baselineDirs {
		if _, err := os.Stat(filepath.Join(handle.Path, d)); err != nil {
			t.Errorf("missing baseline dir %s: %v", d, err)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "launcher_profiles.json")); err != nil {
		t.Error("launcher_profiles.json should have been written at the launcher root")
	}
}

func TestMaterializePrismContentRootIsNestedMinecraftDir(t *testing.T) {
	root := t.TempDir()
	handle, err := Materialize(Request{
		Root:             instance.LauncherRoot{Path: root, Kind: instance.Prism},
		Name:             "modded",
		MinecraftVersion: "1.21.1",
		Loader:           instance.LoaderNeoForge,
		LoaderVersion:    "latest",
	})
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	want := filepath.Join(root, "instances", "modded", ".minecraft")
	if handle.Path != want {
		t.Errorf("content root = %q, want %q", handle.Path, want)
	}

	pack, err := os.ReadFile(filepath.Join(root, "instances", "modded", "mmc-pack.json"))
	if err != nil {
		t.Fatalf("mmc-pack.json not written: %v", err)
	}
	if !strings.Contains(string(pack), "net.neoforged") {
		t.Error("mmc-pack.json should include the neoforge component")
	}
	if !strings.Contains(string(pack), defaultNeoForgeVersion) {
		t.Error(`a "latest" NeoForge loader version should substitute the known-good default`)
	}
	if !strings.Contains(string(pack), "org.lwjgl3") {
		t.Error("mmc-pack.json should always include the LWJGL-3 dependency-only component")
	}
}

func TestMaterializeXMCLWritesOnlyRequestedLoader(t *testing.T) {
	root := t.TempDir()
	handle, err := Materialize(Request{
		Root:             instance.LauncherRoot{Path: root, Kind: instance.XMCL},
		Name:             "pack",
		MinecraftVersion: "1.21.1",
		Loader:           instance.LoaderFabric,
		LoaderVersion:    "0.16.0",
	})
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(handle.Path, "instance.json"))
	if err != nil {
		t.Fatalf("instance.json not written: %v", err)
	}
	var doc struct {
		Runtime struct {
			FabricLoader string `json:"fabricLoader"`
			Forge        string `json:"forge"`
			QuiltLoader  string `json:"quiltLoader"`
			NeoForged    string `json:"neoForged"`
		} `json:"runtime"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("instance.json not valid JSON: %v", err)
	}
	if doc.Runtime.FabricLoader != "0.16.0" {
		t.Errorf("runtime.fabricLoader = %q, want 0.16.0", doc.Runtime.FabricLoader)
	}
	if doc.Runtime.Forge != "" || doc.Runtime.QuiltLoader != "" || doc.Runtime.NeoForged != "" {
		t.Error("instance.json should leave unused loader fields empty")
	}
}

func TestMaterializeModrinthFamilyWritesProfileAtSlug(t *testing.T) {
	root := t.TempDir()
	handle, err := Materialize(Request{
		Root:             instance.LauncherRoot{Path: root, Kind: instance.AstralRinth},
		Name:             "My Pack Name",
		MinecraftVersion: "1.21.1",
		Loader:           instance.LoaderFabric,
		LoaderVersion:    "0.16.0",
	})
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	want := filepath.Join(root, "profiles", "my-pack-name")
	if handle.Path != want {
		t.Errorf("content root = %q, want %q", handle.Path, want)
	}
	for _, d := range append(append([]string{}, baselineDirs...), modrinthExtraDirs...) {
		if _, err := os.Stat(filepath.Join(handle.Path, d)); err != nil {
			t.Errorf("missing dir %s required for Modrinth-family launchers to mount the profile: %v", d, err)
		}
	}
	raw, err := os.ReadFile(filepath.Join(handle.Path, "profile.json"))
	if err != nil {
		t.Fatalf("profile.json not written: %v", err)
	}
	var profile struct {
		InstallStage string `json:"install_stage"`
	}
	if err := json.Unmarshal(raw, &profile); err != nil {
		t.Fatalf("profile.json not valid JSON: %v", err)
	}
	if profile.InstallStage != "installed" {
		t.Errorf("install_stage = %q, want installed", profile.InstallStage)
	}
}

func TestSlugify(t *testing.T) {
	if got := Slugify("My Pack Name"); got != "my-pack-name" {
		t.Errorf("Slugify = %q, want my-pack-name", got)
	}
}
