package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/learnflix/learnflix/internal/catalog"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the AI teacher conversation scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		printScenarios(cmd.OutOrStdout(), cat)
		return nil
	},
}

func printScenarios(w io.Writer, cat *catalog.Catalog) {
	fmt.Fprintf(w, "%-12s  %-22s  %s\n", "ID", "Name", "Greeting")
	fmt.Fprintln(w, strings.Repeat("─", 100))
	for _, s := range cat.Scenarios {
		fmt.Fprintf(w, "%-12s  %-22s  %s\n", s.ID, s.Name, s.Greeting)
	}
	fmt.Fprintf(w, "\n%d scenarios\n", len(cat.Scenarios))
}
