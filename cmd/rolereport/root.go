package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for rolereport.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rolereport",
		Short: "Render role-filtered CSV and HTML reports from line items",
		Long: `rolereport renders a list of line items into a CSV or HTML report.

What a report contains depends on the viewer's role:
  ADMIN  every item; items above 1000 are bold in HTML
  USER   only items with a value of 500 or less

Items come from a YAML, JSON or CSV file (--items) or from the local
item database (see 'rolereport items').`,
		Version:           getVersion(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: validateLogFormat,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .rolereport in current directory, XDG config dir or home)")
	cmd.PersistentFlags().String("log-format", logFormatText, "Log output format: text or json")

	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewBatchCmd())
	cmd.AddCommand(NewItemsCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command. Interrupts cancel the command's context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
