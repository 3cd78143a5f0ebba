// Package remote talks to the remote modpack index API (spec.md §6) and
// composes a full download+install pipeline from it, grounded on
// original_source/src/launcher_support.rs::fetch_modpack_info and
// download_and_install_from_api.
package remote

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Jeffail/gabs"

	"instanceforge/internal/consolelog"
	"instanceforge/internal/ierr"
	"instanceforge/pkg/automodpack"
	"instanceforge/pkg/httpfetch"
	"instanceforge/pkg/instance"
	"instanceforge/pkg/materializer"
)

// FetchModpackInfo issues GET <base>/api/<modpackType>/ and parses the
// response into a RemoteModpackInfo. modpackType is one of
// {"neoforge", "fabric"} per spec.md §6.
func FetchModpackInfo(base, modpackType string) (*instance.RemoteModpackInfo, error) {
	url := strings.TrimRight(base, "/") + "/api/" + modpackType + "/"
	consolelog.Vlog("fetching modpack info from %s", url)

	data, err := httpfetch.GetBytes(url)
	if err != nil {
		return nil, err
	}

	doc, err := gabs.ParseJSON(data)
	if err != nil {
		return nil, ierr.Wrap(ierr.KindValidation, err, "parse modpack info from %s", url)
	}

	return parseRemoteModpackInfo(doc), nil
}

func parseRemoteModpackInfo(doc *gabs.Container) *instance.RemoteModpackInfo {
	str := func(path string) string {
		v, _ := doc.Path(path).Data().(string)
		return v
	}
	num := func(path string) int {
		switch v := doc.Path(path).Data().(type) {
		case float64:
			return int(v)
		default:
			return 0
		}
	}

	lastUpdated, _ := time.Parse(time.RFC3339, str("last_updated"))

	return &instance.RemoteModpackInfo{
		ServerName:   str("server_name"),
		ServerType:   str("server_type"),
		LatestMrpack: str("latest_mrpack"),
		Fingerprint:  str("fingerprint"),
		Version:      str("version"),
		LastUpdated:  lastUpdated,
		Description:  str("description"),
		DownloadURL:  str("download_url"),
		ServerIP:     str("server_ip"),
		ServerPort:   num("server_port"),
	}
}

// InstallFromIndex fetches modpack info for modpackType, downloads its
// mrpack, and materializes+installs it into a new instance under root,
// seeding automodpack-known-hosts.json from the fetched info afterward
// (original_source's setup_automodpack, SPEC_FULL.md §C.3).
func InstallFromIndex(base, modpackType string, root instance.LauncherRoot, name string) (*materializer.AutoInstallResult, *instance.RemoteModpackInfo, error) {
	info, err := FetchModpackInfo(base, modpackType)
	if err != nil {
		return nil, nil, err
	}

	tmp, err := os.CreateTemp("", fmt.Sprintf("instanceforge-%s-*.mrpack", modpackType))
	if err != nil {
		return nil, nil, ierr.Wrap(ierr.KindFilesystem, err, "create temp file for mrpack download")
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	consolelog.Section("Downloading %s %s...\n", info.ServerName, info.Version)
	if err := httpfetch.GetToFile(info.DownloadURL, tmp.Name()); err != nil {
		return nil, nil, err
	}

	result, err := materializer.AutoInstall(root, name, tmp.Name())
	if err != nil {
		return nil, nil, err
	}

	if err := automodpack.WriteKnownHosts(result.Handle.Path, info.ServerIP, info.Fingerprint); err != nil {
		consolelog.Warn("failed to seed automodpack config for %s: %+v", name, err)
	}

	return result, info, nil
}
