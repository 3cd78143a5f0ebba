package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"instanceforge/pkg/instance"
)

// userModKeywords are the mods instanceforge treats as shipped by a
// modpack rather than added by the player, grounded on the original
// scanner's fixed is_user_mod keyword list. This is a coarse heuristic:
// a mod not on this list is assumed user-added even if it actually came
// from a modpack the update engine has never seen.
var userModKeywords = []string{
	"sodium", "iris", "lithium", "phosphor", "fabric-api", "neoforge",
	"jei", "jade", "wthit", "modmenu", "cloth-config", "auto-config",
}

// analyzeModsDir walks a single mods/ directory non-recursively and
// returns a ModInfo per .jar file. Unreadable or unstat-able entries are
// skipped rather than failing the whole scan.
func analyzeModsDir(modsDir string) []instance.ModInfo {
	entries, err := os.ReadDir(modsDir)
	if err != nil {
		return nil
	}

	var mods []instance.ModInfo
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".jar") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		mods = append(mods, analyzeModFile(e.Name(), info.Size(), info.ModTime()))
	}
	return mods
}

func analyzeModFile(filename string, size int64, modTime time.Time) instance.ModInfo {
	name, version := extractModMetadata(filename)
	return instance.ModInfo{
		Name:         name,
		Filename:     filename,
		Version:      version,
		IsUserMod:    isUserMod(filename, name),
		FileSize:     size,
		LastModified: modTime,
	}
}

// extractModMetadata mirrors the original scanner's extract_mod_metadata:
// the display name is the filename's first hyphen-delimited token (after
// stripping .jar/.disabled), and the version is the last hyphen-delimited
// token if it contains any digit. Neither is a real JAR manifest read -
// instanceforge never opens the jar itself, matching spec.md §4.8.
func extractModMetadata(filename string) (name string, version string) {
	stripped := stripJarSuffix(filename)
	parts := strings.Split(stripped, "-")
	name = parts[0]

	if len(parts) > 1 {
		last := parts[len(parts)-1]
		if strings.ContainsAny(last, "0123456789") {
			version = last
		}
	}
	return name, version
}

func stripJarSuffix(filename string) string {
	s := strings.TrimSuffix(filename, ".disabled")
	s = strings.TrimSuffix(s, ".jar")
	return s
}

func isUserMod(filename, name string) bool {
	lowerName := strings.ToLower(name)
	lowerFile := strings.ToLower(filename)
	for _, known := range userModKeywords {
		if strings.Contains(lowerName, known) || strings.Contains(lowerFile, known) {
			return false
		}
	}
	return true
}
