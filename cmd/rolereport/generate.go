package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/nao1215/rolereport/internal/config"
	"github.com/nao1215/rolereport/internal/model"
	"github.com/nao1215/rolereport/internal/report"
	"github.com/nao1215/rolereport/internal/source"
	"github.com/spf13/cobra"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a report for one viewer",
		Long: `Generate renders the items as a CSV or HTML report for one viewer.

Examples:
  # CSV report for an admin, items from a file
  rolereport generate --user Ana --role ADMIN --items items.yaml

  # HTML report for a user, items from the item database, written to a file
  rolereport generate -u Bob -r USER -f HTML -o reports/bob.html

  # Latin-1 CSV for spreadsheet tools, with a SHA3-256 digest on stderr
  rolereport generate -u Ana -r ADMIN -i items.csv -e latin1 --digest`,
		Args: cobra.NoArgs,
		RunE: runGenerateCmd,
	}

	cmd.Flags().StringP("user", "u", "", "Name of the viewer the report is generated for")
	cmd.Flags().StringP("role", "r", string(model.RoleUser), "Role of the viewer: ADMIN or USER")
	cmd.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().Bool("digest", false, "Print the SHA3-256 digest of the report to stderr")
	addOutputFlags(cmd)

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildGenerateConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	src, release, err := openSource(cfg)
	if err != nil {
		return err
	}
	defer release()

	return generate(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, src, setupLogger(cmd))
}

// generate renders the report for cfg.Viewer from src and writes it to
// cfg.Output or stdout. The digest, if requested, goes to stderr.
func generate(ctx context.Context, stdout, stderr io.Writer, cfg *config.Config, src source.Source, logger *slog.Logger) error {
	items, err := loadItems(ctx, src)
	if err != nil {
		return err
	}

	doc, err := newGenerator(cfg, logger).GenerateReport(cfg.Format, cfg.Viewer, items)
	if err != nil {
		return err
	}

	if err := writeDocument(stdout, cfg.Output, cfg.Encoding, doc); err != nil {
		return err
	}

	logger.Info("report written",
		"viewer", cfg.Viewer.Name,
		"role", cfg.Viewer.Role.String(),
		"format", cfg.Format.String(),
		"items", len(items),
		"output", cfg.Output,
	)

	if cfg.Digest {
		fmt.Fprintf(stderr, "sha3-256: %s\n", report.Digest(doc))
	}
	return nil
}

// buildGenerateConfig creates a Config from the config file and flags.
func buildGenerateConfig(cmd *cobra.Command) (*config.Config, error) {
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

	name, err := cmd.Flags().GetString("user")
	if err != nil {
		return nil, err
	}
	role, err := cmd.Flags().GetString("role")
	if err != nil {
		return nil, err
	}
	viewer, err := model.NewUser(name, role)
	if err != nil {
		return nil, err
	}
	cfg.Viewer = viewer

	cfg.Output, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	cfg.Digest, err = cmd.Flags().GetBool("digest")
	if err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}
