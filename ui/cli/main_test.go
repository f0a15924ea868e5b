// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.
package cli

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/toeirei/assetdesk/internal/logging"
	"github.com/toeirei/assetdesk/internal/mockapi"
	"github.com/toeirei/assetdesk/internal/session"
)

// testEnv points the CLI at a fake API and keeps every file it writes
// inside a temp dir.
type testEnv struct {
	api         *mockapi.Server
	dir         string
	sessionPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	fake := mockapi.New()
	ts := httptest.NewServer(fake)
	t.Cleanup(ts.Close)

	env := &testEnv{api: fake, dir: dir, sessionPath: filepath.Join(dir, "session.yaml")}
	t.Setenv("ASSETDESK_API_BASE_URL", ts.URL)
	t.Setenv("ASSETDESK_SESSION_BACKEND", "file")
	t.Setenv("ASSETDESK_SESSION_PATH", env.sessionPath)
	t.Setenv("ASSETDESK_LANGUAGE", "en")
	return env
}

// loginDirect stores a valid credential without going through the login command.
func (e *testEnv) loginDirect(t *testing.T) {
	t.Helper()
	if err := session.NewFileStore(e.sessionPath).Set(e.api.IssueToken(), session.DefaultTTL); err != nil {
		t.Fatalf("storing credential: %v", err)
	}
}

func (e *testEnv) loggedIn() bool {
	_, ok := session.NewFileStore(e.sessionPath).Get()
	return ok
}

// executeCommand runs a fresh root command and returns what it printed to
// stdout. Log output is kept apart so JSON output stays parseable.
func executeCommand(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	return executeCommandContext(t, context.Background(), stdin, args...)
}

func executeCommandContext(t *testing.T, ctx context.Context, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	var out, logs bytes.Buffer
	logging.SetOutput(&logs)
	defer logging.SetOutput(os.Stderr)
	defer closeServices()

	if stdin == nil {
		stdin = strings.NewReader("")
	}

	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetIn(stdin)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if logs.Len() > 0 {
		t.Logf("logs:\n%s", logs.String())
	}
	return out.String(), err
}

func TestResolveBuildVersion_WithBuildInfo(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/toeirei/assetdesk", Version: "v1.2.3"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "deadbeef"},
			{Key: "vcs.time", Value: "2025-01-01T00:00:00Z"},
		},
	}

	v, c, d := resolveBuildVersion(info)
	if v != "v1.2.3" {
		t.Fatalf("expected version v1.2.3, got %s", v)
	}
	if c != "deadbeef" {
		t.Fatalf("expected commit deadbeef, got %s", c)
	}
	if d != "2025-01-01T00:00:00Z" {
		t.Fatalf("expected date set, got %s", d)
	}
}

func TestResolveBuildVersion_DependencyFallback(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/toeirei/assetdesk", Version: "(devel)"},
		Deps: []*debug.Module{
			{Path: "github.com/toeirei/assetdesk", Version: "v0.3.1-0.20260901101010-abcdef123456"},
		},
	}
	v, _, _ := resolveBuildVersion(info)
	if v != "v0.3.1-0.20260901101010-abcdef123456" {
		t.Fatalf("expected dependency version fallback got %s", v)
	}
}

func TestResolveBuildVersion_GitCommitFallback(t *testing.T) {
	orig := gitCommit
	defer func() { gitCommit = orig }()
	gitCommit = "deadbeef"
	info := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/toeirei/assetdesk", Version: "(devel)"},
	}
	v, _, _ := resolveBuildVersion(info)
	if v != "deadbeef" {
		t.Fatalf("expected gitCommit fallback got %s", v)
	}
}

func TestApplyDefaultFlags_AddsFlags(t *testing.T) {
	cmd := &cobra.Command{}
	applyDefaultFlags(cmd)
	applyDefaultFlags(cmd) // second call must not panic on duplicates

	for _, name := range []string{"api.base_url", "session.backend", "language"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Fatalf("%s flag not present", name)
		}
	}
}

func TestGetConfigPathFromCli_FlagNotSet(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "config file")

	p, err := getConfigPathFromCli(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil path when flag not set, got %v", *p)
	}
}

func TestGetConfigPathFromCli_WithValidFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "assetdesk.yaml")
	if err := os.WriteFile(file, []byte("language: en\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "config file")
	if err := cmd.Flags().Set("config", file); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}

	p, err := getConfigPathFromCli(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil || *p != file {
		t.Fatalf("expected path %s, got %v", file, p)
	}
}

func TestGetConfigPathFromCli_MissingFile(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "config file")
	_ = cmd.Flags().Set("config", filepath.Join(t.TempDir(), "nope.yaml"))

	if _, err := getConfigPathFromCli(cmd); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestVersionCmd(t *testing.T) {
	newTestEnv(t)
	out, err := executeCommand(t, nil, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "version: ") || !strings.Contains(out, "commit: ") {
		t.Fatalf("unexpected version output: %q", out)
	}
}

func TestFirstRunWritesDefaultConfig(t *testing.T) {
	env := newTestEnv(t)
	if _, err := executeCommand(t, nil, "version"); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.dir, "config", "assetdesk", "assetdesk.yaml")); err != nil {
		t.Fatalf("expected default config to be written: %v", err)
	}
}

func TestDebugCmd(t *testing.T) {
	newTestEnv(t)
	out, err := executeCommand(t, nil, "debug")
	if err != nil {
		t.Fatalf("debug failed: %v", err)
	}
	for _, want := range []string{"--- ASSETDESK DEBUG ---", "-- settings --", "base_url:", "ASSETDESK_SESSION_BACKEND=file", "Logged in: false", "--- END DEBUG ---"} {
		if !strings.Contains(out, want) {
			t.Fatalf("debug output missing %q:\n%s", want, out)
		}
	}
}

func TestExplicitConfigFile(t *testing.T) {
	env := newTestEnv(t)
	env.loginDirect(t)
	// let the file decide the language
	os.Unsetenv("ASSETDESK_LANGUAGE")
	file := filepath.Join(env.dir, "custom.yaml")
	if err := os.WriteFile(file, []byte("language: id\nlog:\n  level: warn\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := executeCommand(t, nil, "--config", file, "asset", "list")
	if err != nil {
		t.Fatalf("asset list failed: %v", err)
	}
	if !strings.Contains(out, "Tidak ada aset.") {
		t.Fatalf("expected Indonesian output from config file, got %q", out)
	}
}
