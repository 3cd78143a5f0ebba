package mrpack

import (
	"os"
	"path/filepath"
	"strings"

	"instanceforge/internal/consolelog"
	"instanceforge/internal/ierr"
	"instanceforge/pkg/httpfetch"
	"instanceforge/pkg/instance"
)

// baselineDirs are created under the content root before anything else
// is written, per spec.md §4.7 step 2.
var baselineDirs = []string{"mods", "config", "saves", "resourcepacks"}

// InstallResult carries the Minecraft version and loader inferred from
// the mrpack's dependencies (spec.md §4.7 step 5).
type InstallResult struct {
	MinecraftVersion string
	Loader           instance.Loader
	LoaderVersion    string
}

// Install drives C1-C3 to realize a modpack into an instance directory:
// write overrides, fetch every file entry, verify hashes, and infer
// loader+game version from dependencies. Overrides are written before
// any remote file is fetched, and a remote file whose path an override
// already supplies is not downloaded, so the override shadows it
// (spec.md §4.7 ordering guarantee).
func Install(archivePath, contentRoot string) (*InstallResult, error) {
	arc, err := Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer arc.Close()

	idx, err := arc.ReadIndex()
	if err != nil {
		return nil, err
	}
	if idx.FormatVersion != 1 {
		return nil, ierr.New(ierr.KindValidation, "unsupported mrpack format_version: %d", idx.FormatVersion)
	}

	for _, d := range baselineDirs {
		if err := os.MkdirAll(filepath.Join(contentRoot, d), 0o755); err != nil {
			return nil, ierr.Wrap(ierr.KindFilesystem, err, "create %s", d)
		}
	}

	consolelog.Section("Extracting overrides...\n")
	if err := arc.ExtractOverrides(contentRoot); err != nil {
		return nil, err
	}

	consolelog.Section("Downloading %d files...\n", len(idx.Files))
	for _, f := range idx.Files {
		if f.Env != nil && f.Env.Client == instance.EnvUnsupported {
			continue
		}
		if arc.find(overridesPrefix+f.Path) != nil {
			continue
		}
		if err := FetchFile(f, contentRoot); err != nil {
			return nil, err
		}
	}

	mcVersion, ok := idx.Dependencies[instance.DepMinecraft]
	if !ok || mcVersion == "" {
		return nil, ierr.New(ierr.KindValidation, "mrpack dependencies missing minecraft version")
	}

	loader, loaderVersion := inferLoader(idx.Dependencies)

	return &InstallResult{
		MinecraftVersion: mcVersion,
		Loader:           loader,
		LoaderVersion:    loaderVersion,
	}, nil
}

// FetchFile downloads a single MrpackFile into contentRoot, iterating
// mirrors in order until one succeeds and verifies (spec.md §4.7 step 4).
// The update engine (pkg/update) reuses this for replacing/adding mods,
// per spec.md §4.9's "same mirror-verify logic as §4.7".
func FetchFile(f instance.MrpackFile, contentRoot string) error {
	target, err := SafeJoin(contentRoot, f.Path)
	if err != nil {
		return err
	}

	expected := f.Hashes["sha1"]

	var lastErr error
	for _, url := range f.Downloads {
		consolelog.Progress("Fetching %s", filepath.Base(f.Path))
		data, err := httpfetch.GetBytes(url)
		if err != nil {
			lastErr = err
			continue
		}
		if !VerifySHA1(data, expected) {
			lastErr = ierr.New(ierr.KindHashMismatch, "sha1 mismatch for %s from %s", f.Path, url)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return ierr.Wrap(ierr.KindFilesystem, err, "create directories for %s", target)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return ierr.Wrap(ierr.KindFilesystem, err, "write %s", target)
		}
		return nil
	}

	if lastErr == nil {
		lastErr = ierr.New(ierr.KindDownloadFailed, "no mirrors listed for %s", f.Path)
	}
	return ierr.Wrap(ierr.KindDownloadFailed, lastErr, "all mirrors exhausted for %s", f.Path)
}

// inferLoader selects the first of fabric-loader, forge, quilt-loader,
// neoforge present in deps; if none, vanilla (spec.md §4.7 step 5).
func inferLoader(deps map[string]string) (instance.Loader, string) {
	order := []struct {
		key    string
		loader instance.Loader
	}{
		{instance.DepFabricLoader, instance.LoaderFabric},
		{instance.DepForge, instance.LoaderForge},
		{instance.DepQuiltLoader, instance.LoaderQuilt},
		{instance.DepNeoForge, instance.LoaderNeoForge},
	}
	for _, o := range order {
		if v, ok := deps[o.key]; ok {
			return o.loader, v
		}
	}
	return instance.LoaderVanilla, ""
}

// DisplayName derives a human-readable instance name from an mrpack's
// index name and version, e.g. "Fabulously Optimized - 7.2.1".
func DisplayName(idx *instance.MrpackIndex) string {
	if idx.VersionID == "" {
		return idx.Name
	}
	return strings.TrimSpace(idx.Name + " - " + idx.VersionID)
}
