package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	origVersion := Version
	origBuildTime := BuildTime
	origCommit := Commit

	defer func() {
		Version = origVersion
		BuildTime = origBuildTime
		Commit = origCommit
	}()

	Version = "1.0.0"
	BuildTime = "2023-01-01"
	Commit = "abcdef0123456789"

	info := Info()

	if !strings.Contains(info, "1.0.0") {
		t.Errorf("Expected info to contain version, got: %s", info)
	}
	if !strings.Contains(info, "abcdef01") {
		t.Errorf("Expected info to contain commit short SHA, got: %s", info)
	}
	if !strings.Contains(info, "2023-01-01") {
		t.Errorf("Expected info to contain build time, got: %s", info)
	}
	if !strings.Contains(info, runtime.GOOS) {
		t.Errorf("Expected info to contain OS, got: %s", info)
	}

	// Short commits are printed as is
	Commit = "abc123"
	info = Info()
	if !strings.Contains(info, "abc123") {
		t.Errorf("Expected info to contain short commit as is, got: %s", info)
	}
}

func TestMap(t *testing.T) {
	origVersion := Version
	origBuildTime := BuildTime
	origCommit := Commit

	defer func() {
		Version = origVersion
		BuildTime = origBuildTime
		Commit = origCommit
	}()

	Version = "1.0.0"
	BuildTime = "2023-01-01"
	Commit = "abcdef0123456789"

	m := Map()

	if m["version"] != "1.0.0" {
		t.Errorf("Expected version to be 1.0.0, got: %s", m["version"])
	}
	if m["commit"] != "abcdef0123456789" {
		t.Errorf("Expected commit to be abcdef0123456789, got: %s", m["commit"])
	}
	if m["os"] != runtime.GOOS {
		t.Errorf("Expected os to be %s, got: %s", runtime.GOOS, m["os"])
	}
	if !strings.HasPrefix(m["goVersion"], "go1.") {
		t.Errorf("Expected goVersion to start with go1., got: %s", m["goVersion"])
	}
}
