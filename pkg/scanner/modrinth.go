package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"instanceforge/pkg/instance"
)

// scanModrinthFamily lists <root>/profiles/*, one InstanceInfo per
// profile directory. AstralRinth/ModrinthApp keep their authoritative
// profile metadata in app.db, not in a per-profile manifest file, so
// loader and Minecraft version are both guessed from the profile folder
// name - the same heuristic the original updater's
// analyze_astralrinth_profile function uses for both launcher variants.
func scanModrinthFamily(root instance.LauncherRoot) ([]instance.InstanceInfo, error) {
	profilesDir := filepath.Join(root.Path, "profiles")
	entries, err := os.ReadDir(profilesDir)
	if err != nil {
		return nil, nil
	}

	var out []instance.InstanceInfo
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		out = append(out, analyzeModrinthProfile(root, filepath.Join(profilesDir, e.Name()), e.Name()))
	}
	return out, nil
}

func analyzeModrinthProfile(root instance.LauncherRoot, profilePath, name string) instance.InstanceInfo {
	loader, loaderVersion := loaderFromFolderName(name)
	mcVersion := mcVersionFromFolderName(name)

	mods := analyzeModsDir(filepath.Join(profilePath, "mods"))
	hasAutomodpack, serverInfo := detectAutomodpack(profilePath)

	return instance.InstanceInfo{
		Name:             name,
		LauncherKind:     root.Kind,
		LauncherRootPath: root.Path,
		InstancePath:     profilePath,
		MinecraftVersion: mcVersion,
		ModLoader:        loader,
		ModLoaderVersion: loaderVersion,
		ModCount:         len(mods),
		Mods:             mods,
		HasAutomodpack:   hasAutomodpack,
		ServerInfo:       serverInfo,
	}
}

func loaderFromFolderName(name string) (loader string, version string) {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "neoforge"):
		return "NeoForge", ""
	case strings.Contains(lower, "fabric"):
		return "Fabric", ""
	case strings.Contains(lower, "forge"):
		return "Forge", ""
	default:
		return "Unknown", ""
	}
}

// mcVersionFromFolderName returns the first hyphen-delimited token that
// looks like a Minecraft version ("1.X..."), or "Unknown" if none match.
func mcVersionFromFolderName(name string) string {
	for _, part := range strings.Split(name, "-") {
		if strings.HasPrefix(part, "1.") && len(part) >= 3 {
			return part
		}
	}
	return "Unknown"
}
