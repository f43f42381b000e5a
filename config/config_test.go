package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("unexpected error loading a missing file: %v", err)
	}
	if settings != Default() {
		t.Errorf("expected defaults for a missing config file, got %+v", settings)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minic.toml")
	body := "[settings]\nemit = \"llvm\"\ncolor = false\n"
	if err := ioutil.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.Emit != "llvm" {
		t.Errorf("expected emit=llvm from the file, got %q", settings.Emit)
	}
	if settings.Color {
		t.Errorf("expected color=false from the file, got true")
	}
	if settings.LogLevel != "all" {
		t.Errorf("expected log-level to fall back to the default, got %q", settings.LogLevel)
	}
}
