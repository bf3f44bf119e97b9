package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Output.ComposePath != DefaultComposeOut {
		t.Errorf("unexpected compose path: %s", cfg.Output.ComposePath)
	}
	if cfg.Output.MeshPath != DefaultMeshOut {
		t.Errorf("unexpected mesh path: %s", cfg.Output.MeshPath)
	}
	if cfg.Lint.Strict {
		t.Errorf("strict should default to off")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("unexpected log level: %s", cfg.Log.Level)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
output:
  compose_path: out/compose.yml
  mesh_path: out/mesh.yml
lint:
  strict: true
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write error: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Output.ComposePath != "out/compose.yml" {
		t.Errorf("compose path not loaded: %s", cfg.Output.ComposePath)
	}
	if cfg.Output.MeshPath != "out/mesh.yml" {
		t.Errorf("mesh path not loaded: %s", cfg.Output.MeshPath)
	}
	if !cfg.Lint.Strict {
		t.Errorf("strict not loaded")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level not loaded: %s", cfg.Log.Level)
	}
}

func TestLoad_ExplicitMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected an error for a named config file that does not exist")
	}
}

func TestLoad_ExplicitMalformedFileErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("output: [not: a: mapping\n"), 0644); err != nil {
		t.Fatalf("write error: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a named config file that does not parse")
	}
}

func TestLoad_DefaultSearchFallsBackToDefaults(t *testing.T) {
	// Point both search locations at empty directories.
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd error: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir error: %v", err)
	}
	defer os.Chdir(wd)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("no file in the search path must not be an error: %v", err)
	}
	if cfg.Output.ComposePath != DefaultComposeOut {
		t.Errorf("defaults not applied: %s", cfg.Output.ComposePath)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("lint:\n  strict: true\n"), 0644); err != nil {
		t.Fatalf("write error: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if !cfg.Lint.Strict {
		t.Errorf("strict not loaded")
	}
	if cfg.Output.ComposePath != DefaultComposeOut {
		t.Errorf("unset fields must keep defaults: %s", cfg.Output.ComposePath)
	}
}
