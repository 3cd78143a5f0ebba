package automodpack

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteKnownHostsThenDetect(t *testing.T) {
	dir := t.TempDir()
	if err := WriteKnownHosts(dir, "203.0.113.5", "deadbeef"); err != nil {
		t.Fatalf("WriteKnownHosts: %v", err)
	}

	has, info := Detect(dir)
	if !has {
		t.Fatal("Detect should report automodpack state present")
	}
	if info.ServerIP != "203.0.113.5" {
		t.Errorf("ServerIP = %q", info.ServerIP)
	}
	if info.Fingerprint != "deadbeef" {
		t.Errorf("Fingerprint = %q", info.Fingerprint)
	}
	if info.ServerPort != defaultServerPort {
		t.Errorf("ServerPort = %d, want %d", info.ServerPort, defaultServerPort)
	}
	if info.ServerName != defaultServerName {
		t.Errorf("ServerName = %q, want %q", info.ServerName, defaultServerName)
	}
}

func TestWriteKnownHostsLocation(t *testing.T) {
	dir := t.TempDir()
	if err := WriteKnownHosts(dir, "1.2.3.4", "abc"); err != nil {
		t.Fatalf("WriteKnownHosts: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, fileName)); err != nil {
		t.Error("known-hosts file should live directly at the content root, not an automodpack/ subdirectory")
	}
}

func TestDetectFalseWhenAbsent(t *testing.T) {
	has, info := Detect(t.TempDir())
	if has || info != nil {
		t.Errorf("Detect on a directory with no known-hosts file = (%v, %v), want (false, nil)", has, info)
	}
}
