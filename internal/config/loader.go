package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/rolereport/internal/model"
	"github.com/nao1215/rolereport/internal/report"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".rolereport"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the structure of the .rolereport configuration file.
//
//	defaults:
//	  format: HTML
//	  encoding: latin1
//	  dbDir: /var/lib/rolereport
//	  strictFormat: true
//	  escapeHTML: false
//	viewers:
//	  Ana: ADMIN
//	  Bob: USER
type File struct {
	// Defaults override built-in defaults. CLI flags override them in turn.
	Defaults Defaults `yaml:"defaults,omitempty"`

	// Viewers maps viewer names to roles for the batch command.
	Viewers map[string]model.Role `yaml:"viewers,omitempty"`
}

// Defaults are the optional settings of the defaults section.
type Defaults struct {
	Format       string `yaml:"format,omitempty"`
	Encoding     string `yaml:"encoding,omitempty"`
	DBDir        string `yaml:"dbDir,omitempty"`
	StrictFormat *bool  `yaml:"strictFormat,omitempty"`
	EscapeHTML   *bool  `yaml:"escapeHTML,omitempty"`
	Concurrency  int    `yaml:"concurrency,omitempty"`
}

// LoadConfigFile loads and validates a configuration file.
// Formats and roles are parsed strictly so a typo fails here rather than
// producing an empty or filtered report later.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	if f.Viewers == nil {
		f.Viewers = make(map[string]model.Role)
	}
	for name, role := range f.Viewers {
		if _, err := model.ParseRole(string(role)); err != nil {
			return nil, fmt.Errorf("viewer %q: %w", name, err)
		}
	}
	if f.Defaults.Format != "" {
		if _, err := model.ParseFormat(f.Defaults.Format); err != nil {
			return nil, fmt.Errorf("defaults.format: %w", err)
		}
	}
	if f.Defaults.Encoding != "" {
		if _, err := report.ParseEncoding(f.Defaults.Encoding); err != nil {
			return nil, fmt.Errorf("defaults.encoding: %w", err)
		}
	}

	return &f, nil
}

// Apply copies the file's defaults onto c.
func (f *File) Apply(c *Config) {
	if f.Defaults.Format != "" {
		c.Format = model.Format(f.Defaults.Format)
	}
	if f.Defaults.Encoding != "" {
		enc, _ := report.ParseEncoding(f.Defaults.Encoding) //nolint:errcheck // validated by LoadConfigFile
		c.Encoding = enc
	}
	if f.Defaults.DBDir != "" {
		c.DBDir = f.Defaults.DBDir
	}
	if f.Defaults.StrictFormat != nil {
		c.StrictFormat = *f.Defaults.StrictFormat
	}
	if f.Defaults.EscapeHTML != nil {
		c.EscapeHTML = *f.Defaults.EscapeHTML
	}
	if f.Defaults.Concurrency > 0 {
		c.Concurrency = f.Defaults.Concurrency
	}
	c.File = f
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .rolereport in the current directory
// 3. Look for config.yaml in the XDG config directory
// 4. Look for .rolereport in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// Load builds a Config from defaults and the config file at configPath (or
// the first one FindConfigFile discovers). A missing file is an error only
// when configPath was given explicitly.
func Load(configPath string) (*Config, error) {
	cfg := NewConfig()

	path := FindConfigFile(configPath)
	if path == "" {
		if configPath != "" {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return cfg, nil
	}

	f, err := LoadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	f.Apply(cfg)
	cfg.ConfigFilePath = path

	return cfg, nil
}
