package materializer

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/Jeffail/gabs"

	"instanceforge/internal/ierr"
	"instanceforge/pkg/instance"
)

// instanceCfgTemplate is grounded on mmc.go's MMC_CONFIG constant,
// generalized with the fields the original source's create_prism_instance
// writes.
const instanceCfgTemplate = `InstanceType=OneSix
iconKey=default
name=%s
notes=Created by instanceforge
lastLaunchTime=%d
`

// loaderComponentUID is the fixed component uid per loader (spec.md §4.6).
var loaderComponentUID = map[instance.Loader]string{
	instance.LoaderFabric:   "net.fabricmc.fabric-loader",
	instance.LoaderForge:    "net.minecraftforge",
	instance.LoaderQuilt:    "org.quiltmc.quilt-loader",
	instance.LoaderNeoForge: "net.neoforged",
}

// defaultNeoForgeVersion substitutes for "latest" or an unspecified
// NeoForge loader version (spec.md §4.6).
const defaultNeoForgeVersion = "21.1.209"

func materializePrismFamily(req Request) (*instance.InstanceHandle, error) {
	instanceDir := filepath.Join(req.Root.Path, "instances", req.Name)
	contentRoot := filepath.Join(instanceDir, ".minecraft")

	if err := createBaselineDirs(contentRoot); err != nil {
		return nil, err
	}

	cfg := fmt.Sprintf(instanceCfgTemplate, req.Name, time.Now().UnixMilli())
	if err := writeFile(filepath.Join(instanceDir, "instance.cfg"), []byte(cfg)); err != nil {
		return nil, err
	}

	if err := writeMMCPack(instanceDir, req.MinecraftVersion, req.Loader, req.LoaderVersion); err != nil {
		return nil, err
	}

	return &instance.InstanceHandle{Path: contentRoot, Kind: req.Root.Kind}, nil
}

func writeMMCPack(instanceDir, mcVersion string, loader instance.Loader, loaderVersion string) error {
	pack := gabs.New()
	_, _ = pack.Array("components")

	_ = pack.ArrayAppend(map[string]interface{}{
		"cachedName":     "LWJGL 3",
		"cachedVersion":  "3.3.3",
		"cachedVolatile": true,
		"dependencyOnly": true,
		"uid":            "org.lwjgl3",
		"version":        "3.3.3",
	}, "components")

	_ = pack.ArrayAppend(map[string]interface{}{
		"cachedName":    "Minecraft",
		"cachedVersion": mcVersion,
		"important":     true,
		"uid":           "net.minecraft",
		"version":       mcVersion,
	}, "components")

	if loader != instance.LoaderVanilla && loader != "" {
		uid, ok := loaderComponentUID[loader]
		if !ok {
			return ierr.New(ierr.KindInvalidLoader, "no mmc-pack component for loader: %s", loader)
		}
		version := loaderVersion
		if loader == instance.LoaderNeoForge && (version == "" || version == "latest") {
			version = defaultNeoForgeVersion
		}
		if version == "" {
			version = "recommended"
		}
		_ = pack.ArrayAppend(map[string]interface{}{
			"cachedName":    loaderDisplayName(loader),
			"cachedVersion": version,
			"uid":           uid,
			"version":       version,
		}, "components")
	}

	_, _ = pack.Set(1, "formatVersion")

	return writeFile(filepath.Join(instanceDir, "mmc-pack.json"), []byte(pack.StringIndent("", "  ")))
}

func loaderDisplayName(loader instance.Loader) string {
	switch loader {
	case instance.LoaderFabric:
		return "Fabric Loader"
	case instance.LoaderForge:
		return "Minecraft Forge"
	case instance.LoaderQuilt:
		return "Quilt Loader"
	case instance.LoaderNeoForge:
		return "NeoForge"
	default:
		return string(loader)
	}
}
