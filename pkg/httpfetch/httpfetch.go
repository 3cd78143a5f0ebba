// Package httpfetch is the HTTP Fetcher (C3): a single long-lived client
// with a fixed user agent, DNS caching, and HTTP/2 enabled, used for every
// GET in instanceforge - mrpack mirrors, the remote modpack index, and
// the modpack archive it points at.
package httpfetch

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/net/http2"

	"github.com/viki-org/dnscache"

	"instanceforge/internal/ierr"
)

const userAgent = "instanceforge/1.0 (+https://modrinth.com)"

const dialTimeout = 5 * time.Second

var resolver = dnscache.New(15 * time.Minute)

// client is created lazily on first use and held for the process
// lifetime, matching the teacher's getterClient/redirectClient singletons
// in util.go - there is no explicit teardown.
var client *http.Client

func sharedClient() *http.Client {
	if client != nil {
		return client
	}
	t := &http.Transport{
		MaxIdleConnsPerHost:   10,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 10 * time.Second,
		Dial: dialCached,
	}
	_ = http2.ConfigureTransport(t)
	client = &http.Client{Transport: t}
	return client
}

func dialCached(network, address string) (net.Conn, error) {
	sep := strings.LastIndex(address, ":")
	if sep < 0 {
		return net.DialTimeout(network, address, dialTimeout)
	}
	host := address[:sep]
	ip, err := resolver.FetchOne(host)
	if err != nil {
		return net.DialTimeout(network, address, dialTimeout)
	}
	ipStr := ip.String()
	if ip.To4() == nil {
		ipStr = "[" + ipStr + "]"
	}
	return net.DialTimeout(network, ipStr+address[sep:], dialTimeout)
}

// Get issues a GET request with the shared client and the fixed user
// agent. HTTP status codes outside 2xx are mapped to a DownloadFailed
// error carrying the status and URL, per spec.md §7.
func Get(url string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, ierr.Wrap(ierr.KindNetwork, err, "build request for %s", url)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := sharedClient().Do(req)
	if err != nil {
		return nil, ierr.Wrap(ierr.KindNetwork, err, "GET %s", url)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, ierr.New(ierr.KindDownloadFailed, "GET %s: HTTP %d", url, resp.StatusCode)
	}
	return resp, nil
}

// GetBytes fetches url and returns the full response body.
func GetBytes(url string) ([]byte, error) {
	resp, err := Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// GetString fetches url and returns the trimmed body as a string.
func GetString(url string) (string, error) {
	data, err := GetBytes(url)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// GetToFile streams url's body into targetFile, creating parent
// directories as needed and writing to a .part sibling before renaming
// into place so partial/failed downloads are never mistaken for
// complete ones.
func GetToFile(url, targetFile string) error {
	resp, err := Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return WriteStream(targetFile, resp.Body)
}

// WriteStream copies data into filename via a temporary .part file that
// is renamed into place only once the copy succeeds.
func WriteStream(filename string, data io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return ierr.Wrap(ierr.KindFilesystem, err, "create directories for %s", filename)
	}

	tmp := filename + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return ierr.Wrap(ierr.KindFilesystem, err, "create %s", tmp)
	}
	if _, err := io.Copy(f, data); err != nil {
		f.Close()
		os.Remove(tmp)
		return ierr.Wrap(ierr.KindFilesystem, err, "write %s", tmp)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return ierr.Wrap(ierr.KindFilesystem, err, "close %s", tmp)
	}
	if err := os.Rename(tmp, filename); err != nil {
		return ierr.Wrap(ierr.KindFilesystem, err, "rename %s", tmp)
	}
	return nil
}

// DownloadError wraps cause as a DownloadFailed error for url. The
// mirror loop in pkg/mrpack builds its own DownloadFailed error and does
// not call this.
func DownloadError(url string, cause error) error {
	return ierr.Wrap(ierr.KindDownloadFailed, cause, "failed to download %s", fmt.Sprint(url))
}
