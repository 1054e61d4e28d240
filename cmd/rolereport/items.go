package main

import (
	"fmt"

	"github.com/nao1215/rolereport/internal/config"
	"github.com/nao1215/rolereport/internal/database"
	"github.com/nao1215/rolereport/internal/model"
	"github.com/nao1215/rolereport/internal/source"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewItemsCmd creates the items command and its subcommands.
func NewItemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage the local item database",
		Long: `Items manages the SQLite database that reports read from when no
--items file is given. The database lives in the XDG data directory
unless --db or defaults.dbDir in the configuration file says otherwise.`,
	}

	cmd.PersistentFlags().String("db", config.XDGDataDir(), "Item database directory")

	cmd.AddCommand(newItemsImportCmd())
	cmd.AddCommand(newItemsListCmd())
	cmd.AddCommand(newItemsShowCmd())
	cmd.AddCommand(newItemsDeleteCmd())

	return cmd
}

func newItemsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import items from a YAML, JSON or CSV file",
		Long: `Import reads every item from FILE and stores it in the database.
Items with an id that already exists replace the stored item and keep its
position. Nothing is stored if any item is malformed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := source.NewFile(args[0]).Items(cmd.Context())
			if err != nil {
				return err
			}

			db, err := openItemDB(cmd, true)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.UpsertItems(cmd.Context(), items); err != nil {
				return err
			}

			total, err := db.Count(cmd.Context())
			if err != nil {
				return err
			}

			setupLogger(cmd).Info("items imported", "count", len(items), "total", total, "path", db.Path())
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items into %s (%d stored)\n", len(items), db.Path(), total)
			return nil
		},
	}
}

func newItemsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openItemDB(cmd, false)
			if err != nil {
				return err
			}
			defer db.Close()

			items, err := db.Items(cmd.Context())
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("ID", "Name", "Value")
			for _, item := range items {
				if err := table.Append([]string{item.ID, item.Name, model.FormatValue(item.Value)}); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
}

func newItemsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one stored item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openItemDB(cmd, false)
			if err != nil {
				return err
			}
			defer db.Close()

			item, err := db.GetItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "id:    %s\nname:  %s\nvalue: %s\n", item.ID, item.Name, model.FormatValue(item.Value))
			return nil
		},
	}
}

func newItemsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID...",
		Short: "Delete stored items by id",
		Long: `Delete removes the given items. If any id is not stored, nothing is
deleted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openItemDB(cmd, false)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.DeleteItems(cmd.Context(), args...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d items\n", len(args))
			return nil
		},
	}
}

// openItemDB opens the database selected by --db, the config file or the
// XDG default, in that order.
func openItemDB(cmd *cobra.Command, create bool) (*database.ItemDB, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := applySourceFlags(cmd, cfg); err != nil {
		return nil, err
	}

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = create
	return database.Open(cfg.DBDir, opts)
}
