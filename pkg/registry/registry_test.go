package registry

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openTestRegistry(t *testing.T) (*Registry, string) {
	t.Helper()
	root := t.TempDir()
	db, err := sql.Open("sqlite3", filepath.Join(root, dbFileName))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`CREATE TABLE profiles (
		path TEXT PRIMARY KEY, name TEXT, game_version TEXT, mod_loader TEXT,
		install_stage TEXT, created INTEGER, modified INTEGER,
		groups TEXT, override_extra_launch_args TEXT, override_custom_env_vars TEXT
	)`); err != nil {
		t.Fatal(err)
	}
	db.Close()

	reg, err := Open(root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return reg, root
}

func TestUpsertThenTouch(t *testing.T) {
	reg, _ := openTestRegistry(t)
	defer reg.Close()

	if err := reg.Upsert(Row{Path: "my-pack", Name: "My Pack", GameVersion: "1.21.1", ModLoader: "fabric"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	var count int
	if err := reg.db.QueryRow(`SELECT COUNT(*) FROM profiles WHERE path = ?`, "my-pack").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one row after Upsert, got %d", count)
	}

	if err := reg.Touch("my-pack", "My Pack", "1.21.2", "fabric"); err != nil {
		t.Fatalf("Touch: %v", err)
	}

	var gameVersion string
	if err := reg.db.QueryRow(`SELECT game_version FROM profiles WHERE path = ?`, "my-pack").Scan(&gameVersion); err != nil {
		t.Fatal(err)
	}
	if gameVersion != "1.21.2" {
		t.Errorf("game_version after Touch = %q, want 1.21.2", gameVersion)
	}
}

func TestUpsertIsIdempotent(t *testing.T) {
	reg, _ := openTestRegistry(t)
	defer reg.Close()

	row := Row{Path: "my-pack", Name: "My Pack", GameVersion: "1.21.1", ModLoader: "fabric"}
	if err := reg.Upsert(row); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := reg.Upsert(row); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	var count int
	if err := reg.db.QueryRow(`SELECT COUNT(*) FROM profiles WHERE path = ?`, "my-pack").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Upsert called twice with the same path should not duplicate rows, got %d", count)
	}
}

func TestTouchFallsBackToUpsertWhenRowMissing(t *testing.T) {
	reg, _ := openTestRegistry(t)
	defer reg.Close()

	if err := reg.Touch("never-created", "Never Created", "1.21.1", "forge"); err != nil {
		t.Fatalf("Touch: %v", err)
	}

	var name string
	if err := reg.db.QueryRow(`SELECT name FROM profiles WHERE path = ?`, "never-created").Scan(&name); err != nil {
		t.Fatalf("Touch should have synthesized a row via Upsert: %v", err)
	}
	if name != "Never Created" {
		t.Errorf("name = %q, want Never Created", name)
	}
}
