package remote

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"instanceforge/pkg/instance"
)

func TestFetchModpackInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/fabric/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"server_name": "NAHA Fabric",
			"server_type": "fabric",
			"latest_mrpack": "naha-fabric-1.2.3.mrpack",
			"fingerprint": "deadbeef",
			"version": "1.2.3",
			"last_updated": "2026-01-01T00:00:00Z",
			"description": "test pack",
			"download_url": "http://example.invalid/naha-fabric-1.2.3.mrpack",
			"server_ip": "127.0.0.1",
			"server_port": 25565
		}`))
	}))
	defer srv.Close()

	info, err := FetchModpackInfo(srv.URL, "fabric")
	if err != nil {
		t.Fatalf("FetchModpackInfo: %v", err)
	}
	if info.ServerName != "NAHA Fabric" || info.Version != "1.2.3" || info.ServerPort != 25565 {
		t.Errorf("unexpected info: %+v", info)
	}
}

func buildTestMrpack(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.mrpack")

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("modrinth.index.json")
	if err != nil {
		t.Fatal(err)
	}
	f.Write([]byte(`{
		"formatVersion": 1,
		"game": "minecraft",
		"versionId": "1.0.0",
		"name": "Test Pack",
		"files": [],
		"dependencies": {"minecraft": "1.20.1", "fabric-loader": "0.15.0"}
	}`))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInstallFromIndex(t *testing.T) {
	mrpackPath := buildTestMrpack(t)
	mrpackBytes, err := os.ReadFile(mrpackPath)
	if err != nil {
		t.Fatal(err)
	}

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/api/fabric/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"server_name": "NAHA Fabric",
			"server_type": "fabric",
			"latest_mrpack": "naha-fabric.mrpack",
			"fingerprint": "deadbeef",
			"version": "1.0.0",
			"last_updated": "2026-01-01T00:00:00Z",
			"description": "",
			"download_url": "` + srv.URL + `/naha-fabric.mrpack",
			"server_ip": "127.0.0.1",
			"server_port": 25565
		}`))
	})
	mux.HandleFunc("/naha-fabric.mrpack", func(w http.ResponseWriter, r *http.Request) {
		w.Write(mrpackBytes)
	})

	root := instance.LauncherRoot{Path: t.TempDir(), Kind: instance.Official}
	result, info, err := InstallFromIndex(srv.URL, "fabric", root, "naha-test")
	if err != nil {
		t.Fatalf("InstallFromIndex: %v", err)
	}
	if info.ServerName != "NAHA Fabric" {
		t.Errorf("info.ServerName = %q", info.ServerName)
	}
	if result.Install.MinecraftVersion != "1.20.1" {
		t.Errorf("MinecraftVersion = %q, want 1.20.1", result.Install.MinecraftVersion)
	}
	if result.Install.Loader != instance.LoaderFabric {
		t.Errorf("Loader = %q, want fabric", result.Install.Loader)
	}
}
