package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/nao1215/rolereport/internal/model"
	"github.com/nao1215/rolereport/internal/report"
)

const (
	// AppName is the application name used for XDG directory paths.
	AppName = "rolereport"

	// DefaultFormat is used when neither a flag nor the config file sets one.
	DefaultFormat = model.FormatCSV

	// DefaultEncoding is the output encoding used when none is configured.
	DefaultEncoding = report.EncodingUTF8

	// DefaultConcurrency is the number of reports the batch command renders
	// at once. Rendering is CPU bound, so there is little gain above the
	// number of cores.
	DefaultConcurrency = 4
)

// Config holds all configuration options for a rolereport run.
// It is populated from defaults, then the config file, then CLI flags.
type Config struct {
	// Format is the output format.
	Format model.Format

	// Viewer is the user the report is generated for.
	Viewer model.User

	// ItemsFile is the path of an item file. When empty, items are read
	// from the database in DBDir.
	ItemsFile string

	// DBDir is the directory holding the SQLite item database.
	DBDir string

	// Output is the report file path. Empty means stdout.
	Output string

	// Encoding is the output character encoding.
	Encoding report.Encoding

	// StrictFormat makes unsupported formats an error during generation.
	StrictFormat bool

	// EscapeHTML escapes viewer and item text in HTML reports.
	EscapeHTML bool

	// Digest prints the SHA3-256 digest of the report to stderr.
	Digest bool

	// Concurrency is the batch rendering concurrency.
	Concurrency int

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the config file that was loaded, if any.
	ConfigFilePath string

	// File is the parsed config file. Never nil after Load.
	File *File
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Format:       DefaultFormat,
		DBDir:        XDGDataDir(),
		Encoding:     DefaultEncoding,
		StrictFormat: true,
		Concurrency:  DefaultConcurrency,
		File:         &File{Viewers: map[string]model.Role{}},
	}
}

// XDGDataDir returns the XDG data directory for rolereport.
// On Linux: ~/.local/share/rolereport
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for rolereport.
// On Linux: ~/.config/rolereport
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the options needed to generate a single report.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.Viewer.Name == "" {
		return ErrNoViewer
	}
	if _, err := model.ParseRole(string(c.Viewer.Role)); err != nil {
		return err
	}
	if c.StrictFormat && !c.Format.Supported() {
		return &model.UnsupportedFormatError{Value: string(c.Format)}
	}
	if c.ItemsFile == "" && c.DBDir == "" {
		return ErrNoItemSource
	}
	return c.validateCommon()
}

// ValidateBatch checks the options needed by the batch command.
func (c *Config) ValidateBatch() error {
	if len(c.File.Viewers) == 0 {
		return ErrNoViewers
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.ItemsFile == "" && c.DBDir == "" {
		return ErrNoItemSource
	}
	return c.validateCommon()
}

func (c *Config) validateCommon() error {
	if _, err := report.ParseEncoding(string(c.Encoding)); err != nil {
		return ErrInvalidEncoding
	}
	return nil
}
