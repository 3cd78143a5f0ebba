// Package launcher is the Launcher Classifier (C5): it decides which
// launcher family, if any, owns a directory, and enumerates all such
// roots on the host via the per-OS candidate paths in internal/paths.
package launcher

import (
	"os"
	"path/filepath"
	"strings"

	"instanceforge/internal/paths"
	"instanceforge/pkg/instance"
)

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func dirExists(p string) bool {
	st, err := os.Stat(p)
	return err == nil && st.IsDir()
}

// Classify inspects root and decides which launcher family owns it,
// evaluated in the exact order spec.md §4.5 requires - first match wins.
func Classify(root string) instance.LauncherKind {
	if !exists(root) {
		return instance.Unknown
	}

	hasAppWindowState := exists(filepath.Join(root, "app-window-state.json"))
	hasProfiles := dirExists(filepath.Join(root, "profiles"))
	if hasAppWindowState && hasProfiles && filepath.Base(root) == "ModrinthApp" {
		return instance.ModrinthApp
	}
	if hasAppWindowState && hasProfiles {
		return instance.AstralRinth
	}

	if exists(filepath.Join(root, "prismlauncher.cfg")) && dirExists(filepath.Join(root, "instances")) {
		if isOfflineAccounts(filepath.Join(root, "accounts.json")) {
			return instance.PrismCracked
		}
		return instance.Prism
	}

	if dirExists(filepath.Join(root, "instances")) && exists(filepath.Join(root, "launcher_profiles.json")) {
		return instance.XMCL
	}

	if exists(filepath.Join(root, "launcher_profiles.json")) &&
		(dirExists(filepath.Join(root, "versions")) || filepath.Base(root) == ".minecraft") {
		return instance.Official
	}

	if exists(filepath.Join(root, "multimc.cfg")) && dirExists(filepath.Join(root, "instances")) {
		return instance.MultiMC
	}

	if dirExists(filepath.Join(root, "configs")) && dirExists(filepath.Join(root, "instances")) && dirExists(filepath.Join(root, "servers")) {
		return instance.ATLauncher
	}

	return instance.Unknown
}

// isOfflineAccounts implements the coarse "Offline substring anywhere in
// accounts.json" marker the original source uses (spec.md §9 Open
// Questions: intent preserved as-is, not a principled JSON parse).
func isOfflineAccounts(accountsPath string) bool {
	data, err := os.ReadFile(accountsPath)
	if err != nil {
		return false
	}
	return strings.Contains(string(data), "Offline")
}

// DiscoverRoots enumerates every per-OS candidate path that exists and
// returns its classification, skipping candidates that classify Unknown.
func DiscoverRoots() []instance.LauncherRoot {
	var found []instance.LauncherRoot
	for _, candidate := range paths.Candidates() {
		if !dirExists(candidate) {
			continue
		}
		kind := Classify(candidate)
		if kind == instance.Unknown {
			continue
		}
		found = append(found, instance.LauncherRoot{Path: candidate, Kind: kind})
	}
	return found
}
