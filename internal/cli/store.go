package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/packnav/pkg/errors"
	pnio "github.com/matzehuels/packnav/pkg/io"
	"github.com/matzehuels/packnav/pkg/source"
)

// storeCommand creates the store command, which manages the SQLite payload
// store behind sqlite:// node URLs.
func (c *CLI) storeCommand() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the SQLite payload store",
		Long: `Store manages payloads kept in a local SQLite database. Nodes whose url is
sqlite://<key> load their nested level from the payload stored under <key>.`,
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "store database (default: [source] store, or packnav.db in the cache dir)")

	open := func() (*source.SQLiteStore, error) {
		path := dbPath
		if path == "" {
			path = c.Config.Source.Store
		}
		if path == "" {
			dir, err := c.payloadCacheDir()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(dir, "packnav.db")
		}
		c.Logger.Debug("opening store", "path", path)
		return source.OpenSQLite(path)
	}

	cmd.AddCommand(c.storeImportCommand(open))
	cmd.AddCommand(c.storeListCommand(open))
	cmd.AddCommand(c.storeDeleteCommand(open))

	return cmd
}

type storeOpener func() (*source.SQLiteStore, error)

// storeImportCommand creates the "store import" subcommand.
func (c *CLI) storeImportCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "import [key] [file]",
		Short: "Store a JSON tree under key",
		Example: `  packnav store import src/render render.json
  # then reference it from a node: {"name": "render", "url": "sqlite://src/render"}`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := source.Key(args[0])
			tree, err := pnio.ImportJSON(args[1])
			if err != nil {
				return err
			}
			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Put(cmd.Context(), key, tree); err != nil {
				return err
			}
			printSuccess("Stored %s", StyleHighlight.Render(key))
			printStats(tree)
			printNextStep("Reference it with", source.SQLiteScheme+key)
			return nil
		},
	}
}

// storeListCommand creates the "store list" subcommand.
func (c *CLI) storeListCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored payloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("Store is empty")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{e.Key, fmt.Sprint(e.Nodes), formatRelativeTime(e.UpdatedAt)})
			}
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("Key", "Nodes", "Updated").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					switch {
					case row == -1:
						return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
					case col == 1:
						return StyleNumber
					case col == 2:
						return StyleDim
					}
					return StyleValue
				})
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

// storeDeleteCommand creates the "store delete" subcommand.
func (c *CLI) storeDeleteCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [key...]",
		Short: "Delete stored payloads",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()

			var missing []string
			for _, key := range args {
				ok, err := store.Delete(cmd.Context(), key)
				if err != nil {
					return err
				}
				if !ok {
					missing = append(missing, key)
					continue
				}
				printSuccess("Deleted %s", key)
			}
			if len(missing) > 0 {
				return errors.New(errors.ErrCodeNotFound, "not in store: %s", strings.Join(missing, ", "))
			}
			return nil
		},
	}
}

// formatRelativeTime renders t as a coarse age such as "3h ago".
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
	return t.Format("2006-01-02")
}
