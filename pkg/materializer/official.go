package materializer

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/Jeffail/gabs"

	"instanceforge/internal/ierr"
	"instanceforge/pkg/instance"
)

// profileNameRegex is grounded on pkg/launcher.go's nameRegex.
var profileNameRegex = regexp.MustCompile(`^[\w][\w\-. ]*$`)

func materializeOfficial(req Request) (*instance.InstanceHandle, error) {
	if !profileNameRegex.MatchString(req.Name) {
		return nil, ierr.New(ierr.KindValidation, "invalid profile name: %s", req.Name)
	}

	contentRoot := filepath.Join(req.Root.Path, "instances", req.Name)
	if err := createBaselineDirs(contentRoot); err != nil {
		return nil, err
	}

	if err := upsertLauncherProfile(req.Root.Path, req.Name, req.MinecraftVersion, contentRoot); err != nil {
		return nil, err
	}

	return &instance.InstanceHandle{Path: contentRoot, Kind: instance.Official}, nil
}

func upsertLauncherProfile(launcherRoot, name, mcVersion, gameDir string) error {
	path := filepath.Join(launcherRoot, "launcher_profiles.json")

	doc := gabs.New()
	if data, err := os.ReadFile(path); err == nil {
		if parsed, err := gabs.ParseJSON(data); err == nil {
			doc = parsed
		}
	}

	_, _ = doc.Set(name, "profiles", name, "name")
	_, _ = doc.Set(mcVersion, "profiles", name, "lastVersionId")
	_, _ = doc.Set(gameDir, "profiles", name, "gameDir")

	return writeFile(path, []byte(doc.StringIndent("", "  ")))
}
