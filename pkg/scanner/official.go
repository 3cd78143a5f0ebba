package scanner

import (
	"os"
	"path/filepath"

	"github.com/Jeffail/gabs"

	"instanceforge/pkg/instance"
)

func scanOfficial(root instance.LauncherRoot) ([]instance.InstanceInfo, error) {
	profilesPath := filepath.Join(root.Path, "launcher_profiles.json")
	data, err := os.ReadFile(profilesPath)
	if err != nil {
		return nil, nil
	}
	doc, err := gabs.ParseJSON(data)
	if err != nil {
		return nil, nil
	}

	profiles, err := doc.Path("profiles").ChildrenMap()
	if err != nil {
		return nil, nil
	}

	var out []instance.InstanceInfo
	for _, profile := range profiles {
		out = append(out, analyzeOfficialProfile(root, profile))
	}
	return out, nil
}

func analyzeOfficialProfile(root instance.LauncherRoot, profile *gabs.Container) instance.InstanceInfo {
	name := stringOr(profile.Path("name"), "Unknown")
	mcVersion := stringOr(profile.Path("lastVersionId"), "Unknown")
	gameDir := stringOr(profile.Path("gameDir"), root.Path)

	mods := analyzeModsDir(findModsDir(gameDir))
	hasAutomodpack, serverInfo := detectAutomodpack(gameDir)

	return instance.InstanceInfo{
		Name:             name,
		LauncherKind:     root.Kind,
		LauncherRootPath: root.Path,
		InstancePath:     gameDir,
		MinecraftVersion: mcVersion,
		ModLoader:        "Vanilla",
		ModCount:         len(mods),
		Mods:             mods,
		HasAutomodpack:   hasAutomodpack,
		ServerInfo:       serverInfo,
	}
}
