package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "STATIC_PATH", "STORAGE_DRIVER", "DB_PATH", "REDIS_ADDR", "REDIS_PASSWORD", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.GetUndoWindow() != 3*time.Second || cfg.GetHighlightTTL() != 2*time.Second {
		t.Errorf("unexpected board durations: %+v", cfg.Board)
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, t.TempDir(), "config.yaml", `
server:
  port: 9090
storage:
  driver: redis
  redis:
    addr: cache:6379
    db: 2
log:
  level: debug
board:
  undo_window: 5s
  notice_ttl: nonsense
`)
	t.Setenv("PORT", "7070")
	t.Setenv("REDIS_PASSWORD", "secret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 7070 || cfg.Addr() != ":7070" {
		t.Errorf("port = %d, env should win", cfg.Server.Port)
	}
	want := RedisConfig{Addr: "cache:6379", Password: "secret", DB: 2, PoolSize: 10, Prefix: "cafesync:"}
	if diff := cmp.Diff(want, cfg.Storage.Redis); diff != "" {
		t.Errorf("redis mismatch (-want +got):\n%s", diff)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	if cfg.GetUndoWindow() != 5*time.Second {
		t.Errorf("undo window = %v, want 5s", cfg.GetUndoWindow())
	}
	if cfg.GetNoticeTTL() != 3*time.Second {
		t.Errorf("notice ttl = %v, want fallback 3s", cfg.GetNoticeTTL())
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
	}{
		{name: "bad yaml", yaml: "server: [port"},
		{name: "unknown driver", env: map[string]string{"STORAGE_DRIVER": "mongo"}},
		{name: "bad port", yaml: "server:\n  port: 70000\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeFile(t, t.TempDir(), "config.yaml", tt.yaml)
			if _, err := Load(path); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestLoadDotEnvPriority(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, ".env", "DB_PATH=/from/env\nLOG_LEVEL=warn\nREDIS_ADDR=env:6379\n")
	writeFile(t, dir, ".env.local", "DB_PATH=/from/local\n")
	t.Setenv("REDIS_ADDR", "os:6379")

	// godotenv sets variables that t.Setenv did not register, so clean them up.
	t.Cleanup(func() {
		os.Unsetenv("DB_PATH")
		os.Unsetenv("LOG_LEVEL")
	})
	os.Unsetenv("DB_PATH")
	os.Unsetenv("LOG_LEVEL")

	loaded, err := LoadDotEnv(dir)
	if err != nil {
		t.Fatalf("LoadDotEnv failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded = %v, want both files", loaded)
	}

	tests := map[string]string{
		"DB_PATH":    "/from/local",
		"LOG_LEVEL":  "warn",
		"REDIS_ADDR": "os:6379",
	}
	for key, want := range tests {
		if got := os.Getenv(key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
}

func TestLoadDotEnvReportsParseErrors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, ".env.local", "BAD-KEY=1\n")
	writeFile(t, dir, ".env", "LOG_LEVEL=debug\n")

	t.Cleanup(func() { os.Unsetenv("LOG_LEVEL") })
	os.Unsetenv("LOG_LEVEL")

	loaded, err := LoadDotEnv(dir)
	if err == nil {
		t.Fatal("expected an error for the malformed file")
	}
	if !strings.Contains(err.Error(), ".env.local") {
		t.Errorf("error does not name the file: %v", err)
	}
	if len(loaded) != 1 || filepath.Base(loaded[0]) != ".env" {
		t.Errorf("loaded = %v, want only .env", loaded)
	}
	if got := os.Getenv("LOG_LEVEL"); got != "debug" {
		t.Errorf("LOG_LEVEL = %q, want debug", got)
	}
}
