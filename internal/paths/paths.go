// Package paths resolves the per-OS candidate locations (spec.md §6)
// that the launcher classifier probes during discovery.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// Candidates returns every launcher root this OS might plausibly contain,
// in no particular priority order - the classifier decides what, if
// anything, each one actually is.
func Candidates() []string {
	switch runtime.GOOS {
	case "windows":
		return windowsCandidates()
	case "darwin":
		return darwinCandidates()
	default:
		return linuxCandidates()
	}
}

func windowsCandidates() []string {
	appdata := os.Getenv("APPDATA")
	home, _ := os.UserHomeDir()
	var out []string
	if appdata != "" {
		out = append(out,
			filepath.Join(appdata, ".minecraft"),
			filepath.Join(appdata, "PrismLauncher"),
			filepath.Join(appdata, "PrismLauncher-Cracked"),
			filepath.Join(appdata, "AstralRinthApp"),
			filepath.Join(appdata, "ModrinthApp"),
			filepath.Join(appdata, ".xmcl"),
			filepath.Join(appdata, "ATLauncher"),
		)
	}
	if home != "" {
		out = append(out, filepath.Join(home, ".xmcl"))
	}
	return out
}

func darwinCandidates() []string {
	home, _ := os.UserHomeDir()
	if home == "" {
		return nil
	}
	support := filepath.Join(home, "Library", "Application Support")
	return []string{
		filepath.Join(support, "minecraft"),
		filepath.Join(support, "PrismLauncher"),
		filepath.Join(support, "AstralRinthApp"),
		filepath.Join(support, "ModrinthApp"),
		filepath.Join(home, ".xmcl"),
	}
}

func linuxCandidates() []string {
	home, _ := os.UserHomeDir()
	if home == "" {
		return nil
	}
	share := filepath.Join(home, ".local", "share")
	return []string{
		filepath.Join(home, ".minecraft"),
		filepath.Join(share, "PrismLauncher"),
		filepath.Join(share, "AstralRinthApp"),
		filepath.Join(share, "ModrinthApp"),
		filepath.Join(home, ".xmcl"),
	}
}
