package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/nao1215/rolereport/internal/batch"
	"github.com/nao1215/rolereport/internal/config"
	"github.com/nao1215/rolereport/internal/model"
	"github.com/nao1215/rolereport/internal/source"
	"github.com/spf13/cobra"
)

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Generate one report per viewer",
		Long: `Batch renders the same items for several viewers concurrently and
writes one file per viewer into the output directory.

Viewers come from the "viewers" mapping of the configuration file and from
--viewer flags (flags win on duplicate names).

Examples:
  rolereport batch --viewer Ana=ADMIN --viewer Bob=USER -i items.yaml -d reports

Configuration file (.rolereport) example:
  viewers:
    Ana: ADMIN
    Bob: USER`,
		Args: cobra.NoArgs,
		RunE: runBatchCmd,
	}

	cmd.Flags().StringArray("viewer", nil, "Viewer as NAME=ROLE (repeatable)")
	cmd.Flags().StringP("output-dir", "d", "reports", "Directory to write reports into")
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency, "Number of reports rendered at once")
	addOutputFlags(cmd)

	return cmd
}

// runBatchCmd executes the batch command.
func runBatchCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildBatchConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateBatch(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	outputDir, err := cmd.Flags().GetString("output-dir")
	if err != nil {
		return err
	}

	src, release, err := openSource(cfg)
	if err != nil {
		return err
	}
	defer release()

	return renderBatch(cmd.Context(), cmd.OutOrStdout(), cfg, outputDir, src, setupLogger(cmd))
}

// renderBatch renders one report per configured viewer into outputDir and
// prints each written path. A failure for one viewer does not stop the
// others; all failures are returned together.
func renderBatch(ctx context.Context, stdout io.Writer, cfg *config.Config, outputDir string, src source.Source, logger *slog.Logger) error {
	items, err := loadItems(ctx, src)
	if err != nil {
		return err
	}

	renderer := batch.NewRenderer(
		newGenerator(cfg, logger),
		batch.WithConcurrency(cfg.Concurrency),
		batch.WithLogger(logger),
	)

	results, err := renderer.Render(ctx, cfg.Format, viewersOf(cfg.File), items)
	if err != nil {
		return err
	}

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("viewer %q: %w", res.Viewer.Name, res.Err))
			continue
		}

		path := filepath.Join(outputDir, reportFileName(res.Viewer, cfg.Format))
		if err := writeDocument(nil, path, cfg.Encoding, res.Document); err != nil {
			errs = append(errs, fmt.Errorf("viewer %q: %w", res.Viewer.Name, err))
			continue
		}
		fmt.Fprintf(stdout, "%s\n", path)
	}

	return errors.Join(errs...)
}

// buildBatchConfig creates a Config from the config file and flags.
func buildBatchConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if err := applyOutputFlags(cmd, cfg); err != nil {
		return nil, err
	}
	if err := applySourceFlags(cmd, cfg); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
		if err != nil {
			return nil, err
		}
	}

	values, err := cmd.Flags().GetStringArray("viewer")
	if err != nil {
		return nil, err
	}
	for _, value := range values {
		viewer, err := parseViewer(value)
		if err != nil {
			return nil, err
		}
		cfg.File.Viewers[viewer.Name] = viewer.Role
	}
	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// parseViewer parses a NAME=ROLE flag value.
func parseViewer(value string) (model.User, error) {
	name, role, ok := strings.Cut(value, "=")
	if !ok || name == "" {
		return model.User{}, fmt.Errorf("invalid viewer %q: expected NAME=ROLE", value)
	}
	return model.NewUser(name, role)
}

// viewersOf returns the configured viewers sorted by name.
func viewersOf(f *config.File) []model.User {
	names := make([]string, 0, len(f.Viewers))
	for name := range f.Viewers {
		names = append(names, name)
	}
	sort.Strings(names)

	viewers := make([]model.User, len(names))
	for i, name := range names {
		viewers[i] = model.User{Name: name, Role: f.Viewers[name]}
	}
	return viewers
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// reportFileName returns the output file name for viewer, e.g. "ana_souza.csv".
func reportFileName(viewer model.User, format model.Format) string {
	base := unsafeFileChars.ReplaceAllString(strings.ToLower(viewer.Name), "_")
	base = strings.Trim(base, "._")
	if base == "" {
		base = "viewer"
	}
	return base + "." + format.Extension()
}
