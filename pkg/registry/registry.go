// Package registry is the Registry Adapter (C4): for launchers whose
// state lives in an embedded relational file (AstralRinth, ModrinthApp),
// it opens <launcher_root>/app.db and upserts/touches rows in the
// profiles table with the fixed column set from spec.md §4.4.
package registry

import (
	"database/sql"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"instanceforge/internal/ierr"
)

const dbFileName = "app.db"

// Row mirrors one row of the profiles table.
type Row struct {
	Path        string
	Name        string
	GameVersion string
	ModLoader   string
}

// Registry is a connection to one launcher's app.db, opened for the
// duration of a single install or update invocation and then closed -
// no long-lived connection is held (spec.md §5).
type Registry struct {
	db *sql.DB
}

// Open connects to <launcherRoot>/app.db.
func Open(launcherRoot string) (*Registry, error) {
	dbPath := filepath.Join(launcherRoot, dbFileName)
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, ierr.Wrap(ierr.KindInstallationFailed, err, "open %s", dbPath)
	}
	return &Registry{db: db}, nil
}

// Close releases the connection.
func (r *Registry) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Upsert inserts or replaces a profiles row, keyed by path. groups,
// override_extra_launch_args and override_custom_env_vars default to
// "[]", "[]", "{}"; install_stage is always "installed"; created and
// modified are both set to now.
func (r *Registry) Upsert(row Row) error {
	now := time.Now().UnixMilli()
	_, err := r.db.Exec(
		`INSERT OR REPLACE INTO profiles
			(path, name, game_version, mod_loader, install_stage, created, modified,
			 groups, override_extra_launch_args, override_custom_env_vars)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.Path, row.Name, row.GameVersion, row.ModLoader,
		"installed", now, now, "[]", "[]", "{}",
	)
	if err != nil {
		return ierr.Wrap(ierr.KindInstallationFailed, err, "upsert profile %s", row.Path)
	}
	return nil
}

// Touch updates modified and game_version for the row matching path. If
// no row was affected, it falls back to Upsert with synthesized fields,
// per spec.md §4.4.
func (r *Registry) Touch(path, name, newVersion, modLoader string) error {
	now := time.Now().UnixMilli()
	res, err := r.db.Exec(
		`UPDATE profiles SET modified = ?, game_version = ? WHERE path = ?`,
		now, newVersion, path,
	)
	if err != nil {
		return ierr.Wrap(ierr.KindInstallationFailed, err, "touch profile %s", path)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return ierr.Wrap(ierr.KindInstallationFailed, err, "touch profile %s: rows affected", path)
	}
	if affected == 0 {
		return r.Upsert(Row{Path: path, Name: name, GameVersion: newVersion, ModLoader: modLoader})
	}
	return nil
}
