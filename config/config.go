// Package config reads the pagekit CLI configuration.
//
// Values come from an optional YAML file, then from PAGEKIT_* environment
// variables, which take precedence. A .env file in the working directory is
// loaded into the environment first when present.
//
// Example configuration:
//
//	addr: ":8080"
//	site_dir: ./web
//	supported: [es, en]
//	default_lang: es
//	log_level: info
//
//	browser:
//	  no_sandbox: true
//	  timeout: 45s
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable the config reads.
const EnvPrefix = "PAGEKIT_"

// Config is the root configuration of the pagekit CLI.
type Config struct {
	// Addr is the listen address of the serve command. Defaults to ":8080".
	Addr string `yaml:"addr" env:"ADDR"`

	// SiteDir holds the HTML pages and the lang/{code}.json dictionaries.
	// Defaults to ".".
	SiteDir string `yaml:"site_dir" env:"SITE_DIR"`

	// Supported lists the language codes offered. Defaults to es, en.
	Supported []string `yaml:"supported" env:"SUPPORTED" envSeparator:","`

	// DefaultLang is used when no preference or negotiation applies.
	// Defaults to the first supported language.
	DefaultLang string `yaml:"default_lang" env:"DEFAULT_LANG"`

	// PreferenceFile persists the preferred language between CLI runs.
	// Empty keeps the preference in memory.
	PreferenceFile string `yaml:"preference_file" env:"PREFERENCE_FILE"`

	// ToastDuration is how long error toasts stay visible. Defaults to 5s.
	ToastDuration Duration `yaml:"toast_duration" env:"TOAST_DURATION"`

	// LogLevel is one of debug, info, warn, error. Defaults to info.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	Browser BrowserConfig `yaml:"browser" envPrefix:"BROWSER_"`
}

// BrowserConfig configures the headless browser used for PDF export.
type BrowserConfig struct {
	ChromePath   string   `yaml:"chrome_path" env:"CHROME_PATH"`
	NoSandbox    bool     `yaml:"no_sandbox" env:"NO_SANDBOX"`
	AutoDownload bool     `yaml:"auto_download" env:"AUTO_DOWNLOAD"`
	Timeout      Duration `yaml:"timeout" env:"TIMEOUT"`
}

// Duration wraps time.Duration for YAML and environment decoding.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// UnmarshalText implements encoding.TextUnmarshaler for Duration.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Addr:          ":8080",
		SiteDir:       ".",
		Supported:     []string{"es", "en"},
		ToastDuration: Duration(5 * time.Second),
		LogLevel:      "info",
		Browser: BrowserConfig{
			Timeout: Duration(30 * time.Second),
		},
	}
}

// Load reads the YAML file at path, applies .env and environment overrides
// and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	if err := LoadDotenv(); err != nil {
		return nil, err
	}

	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}
	return Parse(data)
}

// LoadDotenv loads files (default .env) into the process environment.
// Missing files are ignored; variables already set are kept.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: loading %s: %w", f, err)
		}
	}
	return nil
}

// Parse decodes YAML data over the defaults, then applies PAGEKIT_*
// environment overrides and validates.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing YAML: %w", err)
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("config: parsing env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("config: addr is required")
	}
	if len(c.Supported) == 0 {
		return errors.New("config: at least one supported language is required")
	}
	seen := make(map[string]struct{}, len(c.Supported))
	for i, code := range c.Supported {
		code = strings.TrimSpace(code)
		if _, err := language.Parse(code); err != nil {
			return fmt.Errorf("config: supported[%d]: invalid language %q: %w", i, code, err)
		}
		if _, dup := seen[code]; dup {
			return fmt.Errorf("config: supported[%d]: duplicate language %q", i, code)
		}
		seen[code] = struct{}{}
		c.Supported[i] = code
	}

	if c.DefaultLang == "" {
		c.DefaultLang = c.Supported[0]
	}
	if _, ok := seen[c.DefaultLang]; !ok {
		return fmt.Errorf("config: default_lang %q is not in supported %v", c.DefaultLang, c.Supported)
	}

	if c.ToastDuration.Duration() < 0 {
		return fmt.Errorf("config: toast_duration cannot be negative, got %s", c.ToastDuration.Duration())
	}
	if c.Browser.Timeout.Duration() < 0 {
		return fmt.Errorf("config: browser.timeout cannot be negative, got %s", c.Browser.Timeout.Duration())
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns LogLevel as an slog.Level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: invalid log_level %q", c.LogLevel)
	}
	return l, nil
}
