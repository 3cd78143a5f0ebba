package mrpack

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func writeTestMrpack(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	index := `{
		"formatVersion": 1,
		"game": "minecraft",
		"versionId": "1.0.0",
		"name": "Test Pack",
		"dependencies": {"minecraft": "1.21.1", "neoforge": "21.1.209"},
		"files": [
			{
				"path": "mods/foo.jar",
				"hashes": {"sha1": "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d"},
				"downloads": ["https://example.invalid/foo.jar"],
				"fileSize": 5
			},
			{
				"path": "mods/foo.jar",
				"hashes": {"sha1": "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d"},
				"downloads": ["https://example.invalid/foo-dup.jar"],
				"fileSize": 5
			}
		]
	}`
	iw, err := zw.Create(indexEntryName)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := iw.Write([]byte(index)); err != nil {
		t.Fatal(err)
	}

	ow, err := zw.Create("overrides/config/foo.toml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ow.Write([]byte("enabled=true")); err != nil {
		t.Fatal(err)
	}

	dw, err := zw.Create("overrides/../escape.txt")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := dw.Write([]byte("should not escape")); err != nil {
		t.Fatal(err)
	}

	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestArchiveReadIndexDedupesFiles(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "pack.mrpack")
	writeTestMrpack(t, archivePath)

	arc, err := Open(archivePath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer arc.Close()

	idx, err := arc.ReadIndex()
	if err != nil {
		t.Fatalf("ReadIndex: %v", err)
	}
	if idx.FormatVersion != 1 {
		t.Errorf("FormatVersion = %d, want 1", idx.FormatVersion)
	}
	if len(idx.Files) != 1 {
		t.Fatalf("expected duplicate mrpack file entries to be deduped, got %d files", len(idx.Files))
	}
	if idx.Files[0].Downloads[0] != "https://example.invalid/foo.jar" {
		t.Error("the first occurrence of a duplicate path should win")
	}
	if idx.Dependencies["minecraft"] != "1.21.1" {
		t.Errorf("dependencies not parsed: %+v", idx.Dependencies)
	}
}

func TestArchiveExtractOverridesStaysInRoot(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "pack.mrpack")
	writeTestMrpack(t, archivePath)

	arc, err := Open(archivePath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer arc.Close()

	destRoot := filepath.Join(dir, "instance")
	err = arc.ExtractOverrides(destRoot)
	if err == nil {
		t.Fatal("ExtractOverrides should reject the escaping overrides/../escape.txt entry")
	}

	got, readErr := os.ReadFile(filepath.Join(destRoot, "config", "foo.toml"))
	if readErr != nil {
		t.Fatalf("override not written: %v", readErr)
	}
	if string(got) != "enabled=true" {
		t.Errorf("override contents = %q", got)
	}

	if _, err := os.Stat(filepath.Join(dir, "escape.txt")); !os.IsNotExist(err) {
		t.Error("escaping override entry should not have been written outside the instance root")
	}
}
