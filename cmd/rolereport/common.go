package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/rolereport/internal/config"
	"github.com/nao1215/rolereport/internal/database"
	rlog "github.com/nao1215/rolereport/internal/log"
	"github.com/nao1215/rolereport/internal/model"
	"github.com/nao1215/rolereport/internal/report"
	"github.com/nao1215/rolereport/internal/source"
	"github.com/spf13/cobra"
)

// getVerboseFlag retrieves the verbose flag from the command or its parents.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return false
	}
	return verbose
}

// Log formats accepted by --log-format.
const (
	logFormatText = "text"
	logFormatJSON = "json"
)

// validateLogFormat rejects unknown --log-format values before a command runs.
func validateLogFormat(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("log-format")
	if err != nil {
		return nil
	}
	switch format {
	case logFormatText, logFormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid log format %q: must be %s or %s", format, logFormatText, logFormatJSON)
	}
}

// setupLogger creates the redacting logger for a command in the format
// selected by --log-format.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	format, err := cmd.Flags().GetString("log-format")
	if err == nil && format == logFormatJSON {
		return rlog.NewJSONLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	}
	return rlog.NewLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
}

// newGenerator creates the report generator configured by cfg.
func newGenerator(cfg *config.Config, logger *slog.Logger) *report.Generator {
	return report.NewGenerator(
		report.WithStrictFormat(cfg.StrictFormat),
		report.WithEscapeHTML(cfg.EscapeHTML),
		report.WithLogger(logger),
	)
}

// loadConfig loads defaults and the config file named by --config, if any.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		configPath = ""
	}
	return config.Load(configPath)
}

// applySourceFlags copies --items and --db onto cfg when they were set.
func applySourceFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("items") {
		items, err := cmd.Flags().GetString("items")
		if err != nil {
			return err
		}
		cfg.ItemsFile = items
	}
	if cmd.Flags().Changed("db") {
		dbDir, err := cmd.Flags().GetString("db")
		if err != nil {
			return err
		}
		cfg.DBDir = dbDir
	}
	return nil
}

// applyOutputFlags copies --format, --encoding, --lenient and --escape-html
// onto cfg when set. Formats are parsed strictly unless --lenient is given.
func applyOutputFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("escape-html") {
		escape, err := cmd.Flags().GetBool("escape-html")
		if err != nil {
			return err
		}
		cfg.EscapeHTML = escape
	}

	if cmd.Flags().Changed("lenient") {
		lenient, err := cmd.Flags().GetBool("lenient")
		if err != nil {
			return err
		}
		cfg.StrictFormat = !lenient
	}

	if cmd.Flags().Changed("format") {
		raw, err := cmd.Flags().GetString("format")
		if err != nil {
			return err
		}
		if cfg.StrictFormat {
			f, err := model.ParseFormat(raw)
			if err != nil {
				return err
			}
			cfg.Format = f
		} else {
			cfg.Format = model.Format(raw)
		}
	}

	if cmd.Flags().Changed("encoding") {
		raw, err := cmd.Flags().GetString("encoding")
		if err != nil {
			return err
		}
		enc, err := report.ParseEncoding(raw)
		if err != nil {
			return err
		}
		cfg.Encoding = enc
	}
	return nil
}

// addOutputFlags registers the flags shared by generate and batch.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", string(config.DefaultFormat),
		"Report format: CSV or HTML")
	cmd.Flags().StringP("encoding", "e", string(config.DefaultEncoding),
		"Output encoding: utf-8 or latin1")
	cmd.Flags().Bool("lenient", false,
		"Render unsupported formats as an empty report instead of failing")
	cmd.Flags().Bool("escape-html", false,
		"Escape viewer names and item text in HTML reports")
	cmd.Flags().StringP("items", "i", "",
		"Item file (.yaml, .yml, .json or .csv); default reads the item database")
	cmd.Flags().String("db", config.XDGDataDir(),
		"Item database directory")
}

// openSource returns the item source selected by cfg and a function that
// releases it.
func openSource(cfg *config.Config) (source.Source, func(), error) {
	if cfg.ItemsFile != "" {
		return source.NewFile(cfg.ItemsFile), func() {}, nil
	}

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(cfg.DBDir, opts)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { _ = db.Close() }, nil
}

// loadItems reads all items from src.
func loadItems(ctx context.Context, src source.Source) ([]model.LineItem, error) {
	items, err := src.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	return items, nil
}

// writeDocument writes document to path, or to stdout when path is empty.
//
// A file is replaced atomically: the document is encoded first and written
// to a temporary file in the same directory, which is then renamed over
// path. On any error an existing file at path is left as it was.
func writeDocument(stdout io.Writer, path string, enc report.Encoding, document string) error {
	if path == "" {
		_, err := report.NewWriter(stdout, report.WithEncoding(enc)).Write(document)
		return err
	}

	data, err := report.Encode(document, enc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// CreateTemp creates the file with mode 0600; reports carry viewer names.
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace output file: %w", err)
	}
	return nil
}
