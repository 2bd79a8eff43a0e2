package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Edition != "enterprise" {
		t.Errorf("Edition = %q, want enterprise", cfg.Edition)
	}
	if cfg.Path != "" {
		t.Errorf("Path = %q, want empty", cfg.Path)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "capreg.yaml")
	content := `edition: core
log:
  level: debug
  format: json
disable:
  - element/iframe
  - webhookEvent/view.deleted
data_dir: ` + dir + `
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Edition != "core" || cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.DataDir != dir {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, dir)
	}

	entries, err := cfg.DisabledEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[1].Category != "webhookEvent" || entries[1].ID != "view.deleted" {
		t.Errorf("DisabledEntries = %+v", entries)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(path, []byte("edition: core\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != path || cfg.Edition != "core" {
		t.Errorf("got path %q edition %q", cfg.Path, cfg.Edition)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"edition", "edition: premium\n", "edition"},
		{"log level", "log:\n  level: loud\n", "log.level"},
		{"log format", "log:\n  format: xml\n", "log.format"},
		{"disable", "disable:\n  - role\n", "disable[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not name field %q", err, tt.field)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "capreg.yaml")
	cfg := Default()
	cfg.Edition = "core"
	cfg.Disable = []string{"element/iframe"}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Edition != "core" || len(got.Disable) != 1 {
		t.Errorf("round trip lost fields: %+v", got)
	}
}
