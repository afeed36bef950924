// Package config loads docsync settings.
//
// Settings live in the XDG config directory:
//   - ~/.config/docsync/config.yaml (preferred)
//   - ~/.config/docsync/config.toml
//
// Missing files are not an error; defaults apply. Which service endpoint is
// used is decided by the environment (DOCSYNC_ENV), not by the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvVar selects the service endpoint: "local", "dev" or "development"
// pick the local URL, anything else the remote one.
const EnvVar = "DOCSYNC_ENV"

const (
	DefaultLocalURL  = "http://localhost:5000"
	DefaultRemoteURL = "https://gerador-readme-origin.onrender.com"
)

// ServiceConfig holds the two candidate service endpoints.
type ServiceConfig struct {
	LocalURL  string `yaml:"local_url,omitempty" toml:"local_url"`
	RemoteURL string `yaml:"remote_url,omitempty" toml:"remote_url"`
}

// TypingConfig controls the typing animation of the document view.
type TypingConfig struct {
	IntervalMS int    `yaml:"interval_ms,omitempty" toml:"interval_ms"`
	Cursor     string `yaml:"cursor,omitempty" toml:"cursor"`
}

// UIConfig holds display preferences.
type UIConfig struct {
	Style          string `yaml:"style,omitempty" toml:"style"`                     // chroma style for code tokens
	MarkdownStyle  string `yaml:"markdown_style,omitempty" toml:"markdown_style"`   // glamour style
	WordWrap       int    `yaml:"word_wrap,omitempty" toml:"word_wrap"`
	RequireConsent *bool  `yaml:"require_consent,omitempty" toml:"require_consent"`
}

// Config is the top-level configuration.
type Config struct {
	Service ServiceConfig `yaml:"service,omitempty" toml:"service"`
	Typing  TypingConfig  `yaml:"typing,omitempty" toml:"typing"`
	UI      UIConfig      `yaml:"ui,omitempty" toml:"ui"`
}

// Default returns a Config with defaults filled in.
func Default() Config {
	consent := true
	return Config{
		Service: ServiceConfig{
			LocalURL:  DefaultLocalURL,
			RemoteURL: DefaultRemoteURL,
		},
		Typing: TypingConfig{
			IntervalMS: 5,
			Cursor:     "▌",
		},
		UI: UIConfig{
			Style:          "dracula",
			MarkdownStyle:  "dark",
			WordWrap:       80,
			RequireConsent: &consent,
		},
	}
}

// Dir returns the XDG config directory for docsync.
func Dir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "docsync")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "docsync")
}

// Load reads the config file at path, or the default location when path is
// empty. The format follows the file extension.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		found, err := find(Dir())
		if err != nil {
			return cfg, err
		}
		if found == "" {
			return cfg, nil
		}
		path = found
	}

	if err := decodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	cfg.fillDefaults()
	return cfg, nil
}

func find(dir string) (string, error) {
	if dir == "" {
		return "", nil
	}
	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("checking %s: %w", p, err)
		}
	}
	return "", nil
}

func decodeFile(path string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	default:
		return fmt.Errorf("%s: unsupported config format", path)
	}
	return nil
}

// fillDefaults restores defaults for keys a file set to zero values.
func (c *Config) fillDefaults() {
	d := Default()
	if c.Service.LocalURL == "" {
		c.Service.LocalURL = d.Service.LocalURL
	}
	if c.Service.RemoteURL == "" {
		c.Service.RemoteURL = d.Service.RemoteURL
	}
	if c.Typing.IntervalMS <= 0 {
		c.Typing.IntervalMS = d.Typing.IntervalMS
	}
	if c.Typing.Cursor == "" {
		c.Typing.Cursor = d.Typing.Cursor
	}
	if c.UI.Style == "" {
		c.UI.Style = d.UI.Style
	}
	if c.UI.MarkdownStyle == "" {
		c.UI.MarkdownStyle = d.UI.MarkdownStyle
	}
	if c.UI.WordWrap <= 0 {
		c.UI.WordWrap = d.UI.WordWrap
	}
	if c.UI.RequireConsent == nil {
		c.UI.RequireConsent = d.UI.RequireConsent
	}
}

// IsLocal reports whether the environment selects the local endpoint.
func IsLocal() bool {
	switch strings.ToLower(os.Getenv(EnvVar)) {
	case "local", "dev", "development":
		return true
	}
	return false
}

// ServiceBase returns the endpoint selected by the environment.
func (c Config) ServiceBase() string {
	if IsLocal() {
		return c.Service.LocalURL
	}
	return c.Service.RemoteURL
}

// TypingInterval is the pause between typed characters.
func (c Config) TypingInterval() time.Duration {
	return time.Duration(c.Typing.IntervalMS) * time.Millisecond
}

// ConsentRequired reports whether analysis waits for explicit consent.
func (c Config) ConsentRequired() bool {
	return c.UI.RequireConsent == nil || *c.UI.RequireConsent
}
