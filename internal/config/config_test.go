package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.TypingInterval() != 5*time.Millisecond {
		t.Errorf("expected 5ms typing interval, got %v", cfg.TypingInterval())
	}
	if !cfg.ConsentRequired() {
		t.Error("expected consent required by default")
	}
	if cfg.UI.Style != "dracula" {
		t.Errorf("unexpected style %q", cfg.UI.Style)
	}
}

func TestServiceBaseSwitch(t *testing.T) {
	cfg := Default()

	t.Setenv(EnvVar, "")
	if got := cfg.ServiceBase(); got != DefaultRemoteURL {
		t.Errorf("expected remote url, got %q", got)
	}

	for _, env := range []string{"local", "DEV", "development"} {
		t.Setenv(EnvVar, env)
		if got := cfg.ServiceBase(); got != DefaultLocalURL {
			t.Errorf("%s: expected local url, got %q", env, got)
		}
	}

	t.Setenv(EnvVar, "production")
	if got := cfg.ServiceBase(); got != DefaultRemoteURL {
		t.Errorf("expected remote url for production, got %q", got)
	}
}

func TestLoadMissingUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Service.LocalURL != DefaultLocalURL {
		t.Errorf("unexpected local url %q", cfg.Service.LocalURL)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "docsync"), 0o755); err != nil {
		t.Fatal(err)
	}
	yml := `service:
  local_url: http://127.0.0.1:6000
typing:
  interval_ms: 20
ui:
  require_consent: false
`
	if err := os.WriteFile(filepath.Join(dir, "docsync", "config.yaml"), []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Service.LocalURL != "http://127.0.0.1:6000" {
		t.Errorf("local url %q", cfg.Service.LocalURL)
	}
	if cfg.Service.RemoteURL != DefaultRemoteURL {
		t.Errorf("remote url should keep default, got %q", cfg.Service.RemoteURL)
	}
	if cfg.TypingInterval() != 20*time.Millisecond {
		t.Errorf("interval %v", cfg.TypingInterval())
	}
	if cfg.ConsentRequired() {
		t.Error("expected consent disabled")
	}
	if cfg.Typing.Cursor == "" {
		t.Error("expected default cursor")
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	tml := `[service]
remote_url = "https://docs.example.com"

[ui]
style = "monokai"
word_wrap = 100
`
	if err := os.WriteFile(path, []byte(tml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Service.RemoteURL != "https://docs.example.com" {
		t.Errorf("remote url %q", cfg.Service.RemoteURL)
	}
	if cfg.UI.Style != "monokai" || cfg.UI.WordWrap != 100 {
		t.Errorf("ui %+v", cfg.UI)
	}
	if !cfg.ConsentRequired() {
		t.Error("consent should default to required")
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("service: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "config.ini")); err == nil {
		t.Error("expected unsupported format error")
	}
}
