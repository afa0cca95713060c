package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/learnflix/learnflix/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the lessons of the catalog (optionally validate a catalog file)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if file, _ := cmd.Flags().GetString("validate"); file != "" {
			return validateCatalog(cmd.OutOrStdout(), file)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		printCatalog(cmd.OutOrStdout(), cat)
		return nil
	},
}

func init() {
	catalogCmd.Flags().String("validate", "", "Validate the given catalog file and exit")
}

func validateCatalog(w io.Writer, file string) error {
	cat, err := catalog.Load(file)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	fmt.Fprintf(w, "%s: ok (version %s, %d lessons, %d scenarios)\n",
		file, cat.Version, len(cat.Lessons), len(cat.Scenarios))
	return nil
}

func printCatalog(w io.Writer, cat *catalog.Catalog) {
	featured := cat.Featured()
	for _, c := range catalog.Categories() {
		fmt.Fprintf(w, "%s\n", c.Label())
		fmt.Fprintln(w, strings.Repeat("─", 72))
		for _, l := range cat.ByCategory(c) {
			mark := " "
			if l.ID == featured.ID {
				mark = "*"
			}
			fmt.Fprintf(w, "%s %3d  %-42s  %-6s  %3d min  %3d%%\n",
				mark, l.ID, l.Title, l.Level, l.DurationMinutes, l.Progress)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%d lessons (* featured), catalog %s\n", len(cat.Lessons), cat.Version)
}
