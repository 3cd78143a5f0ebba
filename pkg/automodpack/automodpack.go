// Package automodpack reads and writes automodpack-known-hosts.json,
// the client-side state of the automodpack server-sync protocol: a
// known-hosts file pinning a server's public-key fingerprint. It lives
// at the instance's content root, not in an automodpack/ subdirectory
// (spec.md §6).
package automodpack

import (
	"os"
	"path/filepath"

	"github.com/Jeffail/gabs"

	"instanceforge/internal/ierr"
	"instanceforge/pkg/instance"
)

const fileName = "automodpack-known-hosts.json"

const defaultServerPort = 25565

const defaultServerName = "NAHA Server"

// WriteKnownHosts rewrites <contentRoot>/automodpack-known-hosts.json to
// { "hosts": { ip: fingerprint } }, per spec.md §4.9/§6.
func WriteKnownHosts(contentRoot, serverIP, fingerprint string) error {
	doc := gabs.New()
	_, _ = doc.Set(fingerprint, "hosts", serverIP)

	path := filepath.Join(contentRoot, fileName)
	if err := os.WriteFile(path, []byte(doc.StringIndent("", "  ")), 0o644); err != nil {
		return ierr.Wrap(ierr.KindFilesystem, err, "write %s", path)
	}
	return nil
}

// Detect reports whether the instance has automodpack state and, if so,
// parses it into a ServerInfo (spec.md §4.8): server_ip is a hosts key,
// fingerprint its value, port defaults to 25565, and name is the fixed
// "NAHA Server" placeholder - the file carries no server name. When the
// hosts object holds more than one entry, which one is reported is not
// defined (the keys are read into an unordered map).
func Detect(contentRoot string) (bool, *instance.ServerInfo) {
	path := filepath.Join(contentRoot, fileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return false, nil
	}

	doc, err := gabs.ParseJSON(data)
	if err != nil {
		return true, nil
	}

	hosts, err := doc.Path("hosts").ChildrenMap()
	if err != nil || len(hosts) == 0 {
		return true, nil
	}

	for ip, v := range hosts {
		fingerprint, _ := v.Data().(string)
		return true, &instance.ServerInfo{
			ServerIP:    ip,
			Fingerprint: fingerprint,
			ServerPort:  defaultServerPort,
			ServerName:  defaultServerName,
		}
	}
	return true, nil
}
