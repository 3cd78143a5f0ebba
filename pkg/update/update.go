// Package update reconciles an existing instance's mods directory
// against a fresh mrpack revision (spec.md §4.9, C9): modpack mods are
// replaced, new ones added, user mods left untouched, then the mods
// directory is deduplicated and the launcher registry/automodpack state
// brought up to date. Grounded on
// original_source/src/updater.rs::update_mods_intelligently,
// normalize_mod_name, and cleanup_duplicate_mods.
package update

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"instanceforge/internal/consolelog"
	"instanceforge/internal/ierr"
	"instanceforge/pkg/automodpack"
	"instanceforge/pkg/instance"
	"instanceforge/pkg/mrpack"
	"instanceforge/pkg/registry"
)

// Normalize reduces a mod filename to a stable comparison key, exactly
// mirroring normalize_mod_name: lowercase, strip .jar/.disabled, cut at
// the first "$" (multi-jar bundles from some publishers list several
// artifact names separated by "$"), then keep the first two
// hyphen-separated tokens if the second one doesn't start with a digit,
// else just the first token. "sodium-extra-0.6.0" -> "sodium-extra";
// "badoptimizations-2.3.0-1.21.1" -> "badoptimizations".
func Normalize(filename string) string {
	name := strings.ToLower(filename)
	name = strings.ReplaceAll(name, ".jar", "")
	name = strings.ReplaceAll(name, ".disabled", "")

	if i := strings.IndexByte(name, '$'); i >= 0 {
		name = name[:i]
	}

	parts := strings.Split(name, "-")
	if len(parts) == 0 || parts[0] == "" {
		return name
	}
	if len(parts) >= 2 && parts[1] != "" && !isDigit(parts[1][0]) {
		return parts[0] + "-" + parts[1]
	}
	return parts[0]
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// findModsDir mirrors find_mods_directory: try the three conventional
// locations in order, defaulting to contentRoot/mods if none exist yet.
func findModsDir(contentRoot string) string {
	for _, candidate := range []string{
		filepath.Join(contentRoot, "mods"),
		filepath.Join(contentRoot, ".minecraft", "mods"),
		filepath.Join(contentRoot, "minecraft", "mods"),
	} {
		if fi, err := os.Stat(candidate); err == nil && fi.IsDir() {
			return candidate
		}
	}
	return filepath.Join(contentRoot, "mods")
}

type existingMod struct {
	filename string
	path     string
}

// Request bundles everything Update needs about the target instance
// and the revision it's reconciling against.
type Request struct {
	// ContentRoot is the instance's content root (the directory holding
	// mods/, config/, etc.), already resolved per-family - the same
	// value the scanner reports as InstancePath or the materializer
	// returns as InstanceHandle.Path.
	ContentRoot string
	// LauncherRootPath is set only for registry-backed families
	// (AstralRinth/ModrinthApp); empty otherwise.
	LauncherRootPath string
	Kind             instance.LauncherKind
	Index            *instance.MrpackIndex
	RemoteInfo       instance.RemoteModpackInfo
}

// Update drives the full reconciliation described in spec.md §4.9 and
// returns a populated UpdateResult. Errors encountered while updating
// individual mods are collected into the result rather than aborting
// the whole run; Update itself only returns an error for conditions
// that make reconciliation impossible altogether (unreadable mods dir).
func Update(req Request) (*instance.UpdateResult, error) {
	modsDir := findModsDir(req.ContentRoot)
	if err := os.MkdirAll(modsDir, 0o755); err != nil {
		return nil, ierr.Wrap(ierr.KindFilesystem, err, "create %s", modsDir)
	}
	fetchRoot := filepath.Dir(modsDir)

	existing, err := scanExistingMods(modsDir)
	if err != nil {
		return nil, err
	}

	modpackKeys := modpackModNames(req.Index)

	result := &instance.UpdateResult{
		InstanceName: filepath.Base(req.ContentRoot),
	}

	for _, f := range req.Index.Files {
		if !strings.HasPrefix(f.Path, "mods/") {
			continue
		}
		filename := filepath.Base(f.Path)
		key := Normalize(filename)

		prior, ok := existing[key]
		if ok && prior.filename == filename {
			continue
		}

		if ok {
			if err := os.Remove(prior.path); err != nil && !os.IsNotExist(err) {
				result.Errors = append(result.Errors, fmt.Sprintf("remove old %s: %v", prior.filename, err))
			}
			if err := mrpack.FetchFile(f, fetchRoot); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("update %s: %v", filename, err))
				continue
			}
			result.UpdatedMods = append(result.UpdatedMods, fmt.Sprintf("%s → %s", prior.filename, filename))
			consolelog.Progress("Updated %s → %s", prior.filename, filename)
		} else {
			if err := mrpack.FetchFile(f, fetchRoot); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("add %s: %v", filename, err))
				continue
			}
			result.NewMods = append(result.NewMods, filename)
			consolelog.Progress("Added %s", filename)
		}
	}

	for key, mod := range existing {
		if !modpackKeys[key] {
			result.PreservedMods = append(result.PreservedMods, mod.filename)
		}
	}
	sort.Strings(result.PreservedMods)

	if err := dedupeMods(modsDir); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("dedupe: %v", err))
	}

	if err := automodpack.WriteKnownHosts(req.ContentRoot, req.RemoteInfo.ServerIP, req.RemoteInfo.Fingerprint); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("automodpack config: %v", err))
	}

	if req.Kind.IsRegistryBacked() && req.LauncherRootPath != "" {
		if err := syncRegistry(req); err != nil {
			consolelog.Warn("failed to update launcher registry: %+v", err)
		}
	}

	result.Success = len(result.Errors) == 0
	if result.Success {
		result.Message = fmt.Sprintf("Successfully updated %d mods, added %d new mods, preserved %d user mods",
			len(result.UpdatedMods), len(result.NewMods), len(result.PreservedMods))
	} else {
		result.Message = fmt.Sprintf("Update completed with %d errors", len(result.Errors))
	}
	return result, nil
}

func scanExistingMods(modsDir string) (map[string]existingMod, error) {
	entries, err := os.ReadDir(modsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]existingMod{}, nil
		}
		return nil, ierr.Wrap(ierr.KindFilesystem, err, "read %s", modsDir)
	}

	out := make(map[string]existingMod, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".jar") {
			continue
		}
		key := Normalize(e.Name())
		out[key] = existingMod{filename: e.Name(), path: filepath.Join(modsDir, e.Name())}
	}
	return out, nil
}

func modpackModNames(idx *instance.MrpackIndex) map[string]bool {
	names := make(map[string]bool)
	for _, f := range idx.Files {
		if strings.HasPrefix(f.Path, "mods/") {
			names[Normalize(filepath.Base(f.Path))] = true
		}
	}
	return names
}

// dedupeMods groups the mods directory's jars by normalized key and
// keeps only the most-recently-modified file in each group of size > 1
// (spec.md §4.9 dedup sweep; cleanup_duplicate_mods).
func dedupeMods(modsDir string) error {
	entries, err := os.ReadDir(modsDir)
	if err != nil {
		return ierr.Wrap(ierr.KindFilesystem, err, "read %s", modsDir)
	}

	groups := make(map[string][]os.DirEntry)
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".jar") {
			continue
		}
		groups[Normalize(e.Name())] = append(groups[Normalize(e.Name())], e)
	}

	for key, group := range groups {
		if len(group) < 2 {
			continue
		}
		sort.Slice(group, func(i, j int) bool {
			ti, _ := group[i].Info()
			tj, _ := group[j].Info()
			if ti == nil || tj == nil {
				return false
			}
			return ti.ModTime().After(tj.ModTime())
		})
		consolelog.Vlog("deduping %d copies of %s", len(group), key)
		for _, stale := range group[1:] {
			if err := os.Remove(filepath.Join(modsDir, stale.Name())); err != nil && !os.IsNotExist(err) {
				return ierr.Wrap(ierr.KindFilesystem, err, "remove duplicate %s", stale.Name())
			}
		}
	}
	return nil
}

func syncRegistry(req Request) error {
	reg, err := registry.Open(req.LauncherRootPath)
	if err != nil {
		return err
	}
	defer reg.Close()

	profileName := filepath.Base(req.ContentRoot)
	return reg.Touch(profileName, profileName, req.RemoteInfo.Version, req.RemoteInfo.ServerType)
}
