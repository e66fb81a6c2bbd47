package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("IMMERSIO_API_KEY", "test-key")
	t.Setenv("IMMERSIO_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8642 {
		t.Errorf("Port = %d, want 8642", cfg.Server.Port)
	}
	if cfg.Data.Root != "~/.immersio/languages" {
		t.Errorf("Data.Root = %q", cfg.Data.Root)
	}
	if cfg.Agent.Binary != "claude" {
		t.Errorf("Agent.Binary = %q, want claude", cfg.Agent.Binary)
	}
	if time.Duration(cfg.Agent.ResponderTimeout) != 120*time.Second {
		t.Errorf("ResponderTimeout = %v", time.Duration(cfg.Agent.ResponderTimeout))
	}
	if cfg.Agent.MaxMessageLength != 4000 {
		t.Errorf("MaxMessageLength = %d", cfg.Agent.MaxMessageLength)
	}
	if time.Duration(cfg.Worker.DigestInterval) != 24*time.Hour {
		t.Errorf("DigestInterval = %v", time.Duration(cfg.Worker.DigestInterval))
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	yamlContent := `
server:
  port: 9090
  read_timeout: 45s
data:
  root: /var/lib/immersio
agent:
  binary: tutor-cli
  extra_args: ["--model", "fast"]
  responder_timeout: 3m
worker:
  digest_interval: 6h
log:
  level: debug
  format: text
`
	configPath := filepath.Join(t.TempDir(), "immersio.yaml")
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("IMMERSIO_API_KEY", "test-key")
	t.Setenv("IMMERSIO_CONFIG_PATH", configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if time.Duration(cfg.Server.ReadTimeout) != 45*time.Second {
		t.Errorf("ReadTimeout = %v", time.Duration(cfg.Server.ReadTimeout))
	}
	if cfg.Data.Root != "/var/lib/immersio" {
		t.Errorf("Data.Root = %q", cfg.Data.Root)
	}
	if cfg.Agent.Binary != "tutor-cli" {
		t.Errorf("Agent.Binary = %q", cfg.Agent.Binary)
	}
	if len(cfg.Agent.ExtraArgs) != 2 || cfg.Agent.ExtraArgs[0] != "--model" {
		t.Errorf("ExtraArgs = %v", cfg.Agent.ExtraArgs)
	}
	if time.Duration(cfg.Agent.ResponderTimeout) != 3*time.Minute {
		t.Errorf("ResponderTimeout = %v", time.Duration(cfg.Agent.ResponderTimeout))
	}
	if time.Duration(cfg.Worker.DigestInterval) != 6*time.Hour {
		t.Errorf("DigestInterval = %v", time.Duration(cfg.Worker.DigestInterval))
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("IMMERSIO_API_KEY", "test-key")
	t.Setenv("IMMERSIO_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("IMMERSIO_PORT", "7001")
	t.Setenv("IMMERSIO_DATA_ROOT", "/tmp/immersio-data")
	t.Setenv("IMMERSIO_AGENT_BINARY", "stub")
	t.Setenv("IMMERSIO_AGENT_ARGS", "--model haiku --verbose")
	t.Setenv("IMMERSIO_RESPONDER_TIMEOUT", "30s")
	t.Setenv("IMMERSIO_DIGEST_INTERVAL", "1h")
	t.Setenv("IMMERSIO_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 7001 {
		t.Errorf("Port = %d, want 7001", cfg.Server.Port)
	}
	if cfg.Data.Root != "/tmp/immersio-data" {
		t.Errorf("Data.Root = %q", cfg.Data.Root)
	}
	if cfg.Agent.Binary != "stub" {
		t.Errorf("Agent.Binary = %q", cfg.Agent.Binary)
	}
	want := []string{"--model", "haiku", "--verbose"}
	if len(cfg.Agent.ExtraArgs) != len(want) {
		t.Fatalf("ExtraArgs = %v, want %v", cfg.Agent.ExtraArgs, want)
	}
	for i := range want {
		if cfg.Agent.ExtraArgs[i] != want[i] {
			t.Errorf("ExtraArgs[%d] = %q, want %q", i, cfg.Agent.ExtraArgs[i], want[i])
		}
	}
	if time.Duration(cfg.Agent.ResponderTimeout) != 30*time.Second {
		t.Errorf("ResponderTimeout = %v", time.Duration(cfg.Agent.ResponderTimeout))
	}
	if time.Duration(cfg.Worker.DigestInterval) != time.Hour {
		t.Errorf("DigestInterval = %v", time.Duration(cfg.Worker.DigestInterval))
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "immersio.yaml")
	if err := os.WriteFile(configPath, []byte("server:\n  port: 9090\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("IMMERSIO_API_KEY", "test-key")
	t.Setenv("IMMERSIO_CONFIG_PATH", configPath)
	t.Setenv("IMMERSIO_PORT", "7777")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("Port = %d, want env to win over YAML", cfg.Server.Port)
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("IMMERSIO_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("IMMERSIO_API_KEY", "")
	t.Setenv("IMMERSIO_DEV_MODE", "")

	if _, err := Load(); err == nil {
		t.Error("Load() succeeded without an API key")
	}
}

func TestLoad_DevModeSkipsAPIKey(t *testing.T) {
	t.Setenv("IMMERSIO_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("IMMERSIO_API_KEY", "")
	t.Setenv("IMMERSIO_DEV_MODE", "true")

	if _, err := Load(); err != nil {
		t.Errorf("Load() error = %v, want dev mode to skip API key check", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "immersio.yaml")
	if err := os.WriteFile(configPath, []byte("server: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("IMMERSIO_API_KEY", "test-key")
	t.Setenv("IMMERSIO_CONFIG_PATH", configPath)

	if _, err := Load(); err == nil {
		t.Error("Load() succeeded on malformed YAML")
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "immersio.yaml")
	if err := os.WriteFile(configPath, []byte("server:\n  port: 6001\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("IMMERSIO_API_KEY", "test-key")

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.Server.Port != 6001 {
		t.Errorf("Port = %d, want 6001", cfg.Server.Port)
	}

	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFromFile() succeeded on missing file")
	}
}

func TestDuration_UnmarshalInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "immersio.yaml")
	if err := os.WriteFile(configPath, []byte("server:\n  read_timeout: banana\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("IMMERSIO_API_KEY", "test-key")

	if _, err := LoadFromFile(configPath); err == nil {
		t.Error("expected error for invalid duration string")
	}
}
