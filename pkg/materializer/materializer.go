// Package materializer is the Instance Materializer (C6): per launcher
// family, it writes the exact file tree, configuration documents, and
// registry rows a new instance needs, and returns the InstanceHandle
// pointing at the instance's content root.
package materializer

import (
	"os"
	"path/filepath"
	"strings"

	"instanceforge/internal/consolelog"
	"instanceforge/internal/ierr"
	"instanceforge/pkg/instance"
)

// baselineDirs are created under the content root for every family
// (spec.md §4.6).
var baselineDirs = []string{
	"mods", "config", "saves", "resourcepacks", "shaderpacks", "logs", "crash-reports",
}

// modrinthExtraDirs are the additional empty directories registry-backed
// families (AstralRinth/ModrinthApp) require, without which those
// launchers refuse to mount the profile (spec.md §4.6).
var modrinthExtraDirs = []string{
	"datapacks", "blueprints", "CustomSkinLoader", "data", "defaultconfigs",
	"downloads", "journeymap", "kubejs", "local", "moddata", "schematics",
	"scripts", "waypoints", ".cache", ".mixin.out",
}

// Request describes the instance to materialize.
type Request struct {
	Root             instance.LauncherRoot
	Name             string
	MinecraftVersion string
	Loader           instance.Loader
	LoaderVersion    string
}

// Materialize creates a new instance in root's native layout and returns
// its InstanceHandle. Loader is validated up front (spec.md §7
// InvalidLoader) per the original source's validate-before-write
// ordering (SPEC_FULL.md §C.5).
func Materialize(req Request) (*instance.InstanceHandle, error) {
	if req.Loader != instance.LoaderVanilla && !instance.ValidLoader(string(req.Loader)) {
		return nil, ierr.New(ierr.KindInvalidLoader, "unrecognized loader: %s", req.Loader)
	}

	switch req.Root.Kind {
	case instance.Official:
		return materializeOfficial(req)
	case instance.Prism, instance.PrismCracked, instance.MultiMC:
		return materializePrismFamily(req)
	case instance.XMCL:
		return materializeXMCL(req)
	case instance.AstralRinth, instance.ModrinthApp:
		return materializeModrinthFamily(req)
	case instance.Other:
		return materializeOther(req)
	default:
		return nil, ierr.New(ierr.KindInstallationFailed, "cannot materialize unknown launcher kind")
	}
}

// Slugify derives the slug Modrinth-family profile directories use:
// lowercase, spaces to hyphens. The other families name the instance
// directory after the unmodified instance name.
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

func createBaselineDirs(contentRoot string) error {
	for _, d := range baselineDirs {
		if err := os.MkdirAll(filepath.Join(contentRoot, d), 0o755); err != nil {
			return ierr.Wrap(ierr.KindFilesystem, err, "create %s", d)
		}
	}
	return nil
}

func createModrinthExtraDirs(contentRoot string) error {
	for _, d := range modrinthExtraDirs {
		if err := os.MkdirAll(filepath.Join(contentRoot, d), 0o755); err != nil {
			return ierr.Wrap(ierr.KindFilesystem, err, "create %s", d)
		}
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ierr.Wrap(ierr.KindFilesystem, err, "create directories for %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ierr.Wrap(ierr.KindFilesystem, err, "write %s", path)
	}
	return nil
}

func materializeOther(req Request) (*instance.InstanceHandle, error) {
	consolelog.Section("Materializing custom instance at %s\n", req.Name)
	if err := createBaselineDirs(req.Name); err != nil {
		return nil, err
	}
	return &instance.InstanceHandle{Path: req.Name, Kind: instance.Other}, nil
}
