package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	cfg "github.com/toeirei/assetdesk/internal/config"
)

// isolate points the user config dir at a temp dir and moves into another
// temp dir so a stray ./assetdesk.yaml cannot leak in.
func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("HOME", tmp)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return tmp
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got.API.BaseURL != "https://be-ksp.analitiq.id" {
		t.Fatalf("unexpected base url %q", got.API.BaseURL)
	}
	if got.Session.Backend != cfg.BackendFile || got.Session.Profile != "default" {
		t.Fatalf("unexpected session defaults: %+v", got.Session)
	}
	if got.Session.TTL() != 7*24*time.Hour {
		t.Fatalf("unexpected ttl %v", got.Session.TTL())
	}
	if got.API.Timeout() != 15*time.Second {
		t.Fatalf("unexpected timeout %v", got.API.Timeout())
	}
	if cfg.UsedFile() != "" {
		t.Fatalf("no file should have been read, got %q", cfg.UsedFile())
	}
}

func TestLoadConfig_ReadsExplicitFile(t *testing.T) {
	isolate(t)
	yaml := "api:\n  base_url: http://localhost:9000\nsession:\n  backend: memory\nlanguage: id\n"
	file := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(file, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got.API.BaseURL != "http://localhost:9000" {
		t.Fatalf("expected explicit base url, got %q", got.API.BaseURL)
	}
	if got.Session.Backend != cfg.BackendMemory {
		t.Fatalf("expected memory backend, got %q", got.Session.Backend)
	}
	if got.Language != "id" {
		t.Fatalf("expected id, got %q", got.Language)
	}
	// untouched keys keep their defaults
	if got.Session.TTLDays != 7 {
		t.Fatalf("expected default ttl_days, got %d", got.Session.TTLDays)
	}
	if cfg.UsedFile() != file {
		t.Fatalf("UsedFile = %q, want %q", cfg.UsedFile(), file)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	isolate(t)
	t.Setenv("ASSETDESK_LOG_LEVEL", "debug")

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got.Log.Level != "debug" {
		t.Fatalf("expected env override, got %q", got.Log.Level)
	}
}

func TestWriteConfigFile_CreatesFile(t *testing.T) {
	isolate(t)

	c := cfg.Config{Language: "en"}
	c.API.BaseURL = "http://example.test"

	if err := cfg.WriteConfigFile(&c, false); err != nil {
		t.Fatalf("WriteConfigFile failed: %v", err)
	}

	path, err := cfg.GetConfigPath(false)
	if err != nil {
		t.Fatalf("GetConfigPath failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected config file at %s, stat error: %v", path, err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600, got %v", info.Mode().Perm())
	}

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got.API.BaseURL != "http://example.test" {
		t.Fatalf("expected written base url to be read back, got %q", got.API.BaseURL)
	}
}

func TestEnsureDefaultFile_OnlyOnce(t *testing.T) {
	isolate(t)

	created, err := cfg.EnsureDefaultFile()
	if err != nil || !created {
		t.Fatalf("expected first call to create file, got %v %v", created, err)
	}
	created, err = cfg.EnsureDefaultFile()
	if err != nil || created {
		t.Fatalf("expected second call to be a no-op, got %v %v", created, err)
	}
}
