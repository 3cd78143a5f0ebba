package materializer

import (
	"path/filepath"

	"github.com/Jeffail/gabs"

	"instanceforge/pkg/instance"
)

func materializeXMCL(req Request) (*instance.InstanceHandle, error) {
	instanceDir := filepath.Join(req.Root.Path, "instances", req.Name)

	if err := createBaselineDirs(instanceDir); err != nil {
		return nil, err
	}

	doc := gabs.New()
	_, _ = doc.Set(req.Name, "name")
	_, _ = doc.Set(req.MinecraftVersion, "runtime", "minecraft")
	_, _ = doc.Set("", "runtime", "fabricLoader")
	_, _ = doc.Set("", "runtime", "forge")
	_, _ = doc.Set("", "runtime", "quiltLoader")
	_, _ = doc.Set("", "runtime", "neoForged")

	switch req.Loader {
	case instance.LoaderFabric:
		_, _ = doc.Set(loaderVersionOr(req.LoaderVersion, "latest"), "runtime", "fabricLoader")
	case instance.LoaderForge:
		_, _ = doc.Set(loaderVersionOr(req.LoaderVersion, "latest"), "runtime", "forge")
	case instance.LoaderQuilt:
		_, _ = doc.Set(loaderVersionOr(req.LoaderVersion, "latest"), "runtime", "quiltLoader")
	case instance.LoaderNeoForge:
		_, _ = doc.Set(loaderVersionOr(req.LoaderVersion, defaultNeoForgeVersion), "runtime", "neoForged")
	}

	if err := writeFile(filepath.Join(instanceDir, "instance.json"), []byte(doc.StringIndent("", "  "))); err != nil {
		return nil, err
	}

	return &instance.InstanceHandle{Path: instanceDir, Kind: instance.XMCL}, nil
}

func loaderVersionOr(version, fallback string) string {
	if version == "" {
		return fallback
	}
	return version
}
