package scanner

import (
	"os"
	"path/filepath"

	"github.com/Jeffail/gabs"

	"instanceforge/pkg/instance"
)

func scanXMCL(root instance.LauncherRoot) ([]instance.InstanceInfo, error) {
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
		info, ok := analyzeXMCLInstance(root, filepath.Join(instancesDir, e.Name()))
		if ok {
			out = append(out, info)
		}
	}
	return out, nil
}

func analyzeXMCLInstance(root instance.LauncherRoot, instancePath string) (instance.InstanceInfo, bool) {
	data, err := os.ReadFile(filepath.Join(instancePath, "instance.json"))
	if err != nil {
		return instance.InstanceInfo{}, false
	}
	doc, err := gabs.ParseJSON(data)
	if err != nil {
		return instance.InstanceInfo{}, false
	}

	name := stringOr(doc.Path("name"), filepath.Base(instancePath))
	mcVersion := stringOr(doc.Path("runtime.minecraft"), "Unknown")
	loader, loaderVersion := xmclLoader(doc)

	mods := analyzeModsDir(findModsDir(instancePath))
	hasAutomodpack, serverInfo := detectAutomodpack(instancePath)

	return instance.InstanceInfo{
		Name:             name,
		LauncherKind:     root.Kind,
		LauncherRootPath: root.Path,
		InstancePath:     instancePath,
		MinecraftVersion: mcVersion,
		ModLoader:        loader,
		ModLoaderVersion: loaderVersion,
		ModCount:         len(mods),
		Mods:             mods,
		HasAutomodpack:   hasAutomodpack,
		ServerInfo:       serverInfo,
	}, true
}

// xmclLoader checks runtime.neoForged, then fabricLoader, then forge, in
// that order, mirroring the original analyze_xmcl_instance's nested
// if-let chain.
func xmclLoader(doc *gabs.Container) (loader string, version string) {
	for _, candidate := range []struct {
		key    string
		loader string
	}{
		{"runtime.neoForged", "NeoForge"},
		{"runtime.fabricLoader", "Fabric"},
		{"runtime.forge", "Forge"},
	} {
		if v := stringOr(doc.Path(candidate.key), ""); v != "" {
			return candidate.loader, v
		}
	}
	return "Unknown", ""
}

func stringOr(c *gabs.Container, fallback string) string {
	if c == nil {
		return fallback
	}
	s, ok := c.Data().(string)
	if !ok {
		return fallback
	}
	return s
}
