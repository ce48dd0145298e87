package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Palette.Dir == "" {
		t.Error("default palette dir is empty")
	}
	if len(cfg.Palette.Blocks) == 0 {
		t.Error("default palette has no blocks")
	}
	if cfg.Lighting.SunRays <= 0 {
		t.Errorf("default sun rays = %d, want > 0", cfg.Lighting.SunRays)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default log level = %q, want \"info\"", cfg.Logging.Level)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Viewer.Width = 640
	cfg.Lighting.SunRays = 3
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := Default()
	if err := loadFromFile(got, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if got.Viewer.Width != 640 {
		t.Errorf("Viewer.Width = %d, want 640", got.Viewer.Width)
	}
	if got.Lighting.SunRays != 3 {
		t.Errorf("Lighting.SunRays = %d, want 3", got.Lighting.SunRays)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("logging:\n  level: debug\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want \"debug\"", cfg.Logging.Level)
	}
	// Values absent from the file keep their defaults.
	if cfg.Viewer.Width != 1280 {
		t.Errorf("Viewer.Width = %d, want default 1280", cfg.Viewer.Width)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}
