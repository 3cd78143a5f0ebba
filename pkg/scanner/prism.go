package scanner

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/Jeffail/gabs"

	"instanceforge/pkg/instance"
)

func scanPrismFamily(root instance.LauncherRoot) ([]instance.InstanceInfo, error) {
	instancesDir := filepath.Join(root.Path, "instances")
	entries, err := os.ReadDir(instancesDir)
	if err != nil {
		return nil, nil
	}

	var out []instance.InstanceInfo
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, ok := analyzePrismInstance(root, filepath.Join(instancesDir, e.Name()))
		if ok {
			out = append(out, info)
		}
	}
	return out, nil
}

func analyzePrismInstance(root instance.LauncherRoot, instancePath string) (instance.InstanceInfo, bool) {
	cfgPath := filepath.Join(instancePath, "instance.cfg")
	packPath := filepath.Join(instancePath, "mmc-pack.json")
	if !exists(cfgPath) || !exists(packPath) {
		return instance.InstanceInfo{}, false
	}

	name := instanceCfgName(cfgPath)

	packData, err := os.ReadFile(packPath)
	if err != nil {
		return instance.InstanceInfo{}, false
	}
	pack, err := gabs.ParseJSON(packData)
	if err != nil {
		return instance.InstanceInfo{}, false
	}

	mcVersion, loader, loaderVersion := prismComponents(pack)

	contentRoot := filepath.Join(instancePath, ".minecraft")
	mods := analyzeModsDir(findModsDir(instancePath))
	hasAutomodpack, serverInfo := detectAutomodpack(contentRoot)

	return instance.InstanceInfo{
		Name:             name,
		LauncherKind:     root.Kind,
		LauncherRootPath: root.Path,
		InstancePath:     contentRoot,
		MinecraftVersion: mcVersion,
		ModLoader:        loader,
		ModLoaderVersion: loaderVersion,
		ModCount:         len(mods),
		Mods:             mods,
		HasAutomodpack:   hasAutomodpack,
		ServerInfo:       serverInfo,
	}, true
}

// instanceCfgName reads the "name=" line out of instance.cfg, an INI-ish
// key=value file with no section headers worth parsing generically.
func instanceCfgName(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "Unknown"
	}
	defer f.Close()

	scanLines := bufio.NewScanner(f)
	for scanLines.Scan() {
		line := scanLines.Text()
		if strings.HasPrefix(line, "name=") {
			return strings.TrimPrefix(line, "name=")
		}
	}
	return "Unknown"
}

// prismComponents scans mmc-pack.json's components array the way the
// original analyze_prism_instance does: the Minecraft component gives
// the version, and the first component whose cachedName contains
// "Fabric"/"NeoForge"/"Forge" (checked in that order) gives the loader.
// NeoForge is checked before Forge because every NeoForge name also
// contains "Forge".
func prismComponents(pack *gabs.Container) (mcVersion, loader, loaderVersion string) {
	mcVersion, loader, loaderVersion = "Unknown", "Unknown", ""

	components, err := pack.Path("components").Children()
	if err != nil {
		return
	}

	for _, c := range components {
		name := stringOr(c.Path("cachedName"), "")
		if name == "Minecraft" {
			mcVersion = stringOr(c.Path("version"), "Unknown")
		}
	}

	for _, candidate := range []struct {
		match  string
		loader string
	}{
		{"fabric", "Fabric"},
		{"neoforge", "NeoForge"},
		{"forge", "Forge"},
	} {
		for _, c := range components {
			name := stringOr(c.Path("cachedName"), "")
			if strings.Contains(strings.ToLower(name), candidate.match) {
				loader = candidate.loader
				loaderVersion = stringOr(c.Path("cachedVersion"), "Unknown")
				break
			}
		}
		if loader != "Unknown" {
			break
		}
	}
	return
}
