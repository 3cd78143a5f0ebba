package materializer

import (
	"path/filepath"
	"time"

	"github.com/Jeffail/gabs"

	"instanceforge/internal/consolelog"
	"instanceforge/pkg/instance"
	"instanceforge/pkg/registry"
)

func materializeModrinthFamily(req Request) (*instance.InstanceHandle, error) {
	slug := Slugify(req.Name)
	profileDir := filepath.Join(req.Root.Path, "profiles", slug)

	if err := createBaselineDirs(profileDir); err != nil {
		return nil, err
	}
	if err := createModrinthExtraDirs(profileDir); err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	doc := gabs.New()
	_, _ = doc.Set(req.Name, "name")
	_, _ = doc.Set(req.MinecraftVersion, "game_version")
	_, _ = doc.Set(string(req.Loader), "loader")
	_, _ = doc.Set(req.LoaderVersion, "loader_version")
	_, _ = doc.Set("installed", "install_stage")
	_, _ = doc.Set(now, "created")
	_, _ = doc.Set(now, "modified")
	_, _ = doc.Set(slug, "path")

	if err := writeFile(filepath.Join(profileDir, "profile.json"), []byte(doc.StringIndent("", "  "))); err != nil {
		return nil, err
	}

	if err := injectRegistryRow(req.Root.Path, slug, req.Name, req.MinecraftVersion, string(req.Loader)); err != nil {
		// Best-effort per spec.md §4.4: the instance directory shape alone
		// is enough for these launchers to discover the profile.
		consolelog.Warn("failed to inject registry row for %s: %+v", req.Name, err)
	}

	return &instance.InstanceHandle{Path: profileDir, Kind: req.Root.Kind}, nil
}

func injectRegistryRow(launcherRoot, slug, name, mcVersion, loader string) error {
	reg, err := registry.Open(launcherRoot)
	if err != nil {
		return err
	}
	defer reg.Close()

	return reg.Upsert(registry.Row{
		Path:        slug,
		Name:        name,
		GameVersion: mcVersion,
		ModLoader:   loader,
	})
}
