// Package scanner discovers instances under a classified launcher root
// and reports their mod loader, Minecraft version, and installed mods
// (spec.md §4.8, C8). It never mutates anything it finds; reconciling
// mods against a modpack index is the update engine's job (pkg/update).
package scanner

import (
	"os"
	"path/filepath"

	"instanceforge/pkg/automodpack"
	"instanceforge/pkg/instance"
)

// Scan walks every instance under root and returns its InstanceInfo,
// dispatching on the launcher family the way the original updater's
// scan_instances match does. Unsupported families (ATLauncher, MultiMC,
// Technic, Other, Unknown) are skipped, matching the original's
// "Skipping unsupported launcher type" fallthrough.
func Scan(root instance.LauncherRoot) ([]instance.InstanceInfo, error) {
	switch root.Kind {
	case instance.AstralRinth, instance.ModrinthApp:
		return scanModrinthFamily(root)
	case instance.XMCL:
		return scanXMCL(root)
	case instance.Prism, instance.PrismCracked:
		return scanPrismFamily(root)
	case instance.Official:
		return scanOfficial(root)
	default:
		return nil, nil
	}
}

// ScanAll scans every root in roots and concatenates the results,
// matching the original scan_instances' "scan every detected launcher"
// loop.
func ScanAll(roots []instance.LauncherRoot) ([]instance.InstanceInfo, error) {
	var all []instance.InstanceInfo
	for _, root := range roots {
		found, err := Scan(root)
		if err != nil {
			return all, err
		}
		all = append(all, found...)
	}
	return all, nil
}

// findModsDir tries the known mod-directory locations for a content
// root in order and returns the first that exists, or "" if none do
// (spec.md §6's per-family mods/ location table).
func findModsDir(contentRoot string) string {
	for _, candidate := range []string{
		filepath.Join(contentRoot, "mods"),
		filepath.Join(contentRoot, ".minecraft", "mods"),
		filepath.Join(contentRoot, "minecraft", "mods"),
	} {
		if dirExists(candidate) {
			return candidate
		}
	}
	return ""
}

func dirExists(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.IsDir()
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func detectAutomodpack(contentRoot string) (bool, *instance.ServerInfo) {
	return automodpack.Detect(contentRoot)
}
