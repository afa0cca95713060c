package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/learnflix/learnflix/internal/catalog"
	"github.com/learnflix/learnflix/internal/learner"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the learner profile and skill statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		printProfile(cmd.OutOrStdout(), cat, cfg.InitialLevel())
		return nil
	},
}

func printProfile(w io.Writer, cat *catalog.Catalog, level learner.Level) {
	p := cat.Profile

	fmt.Fprintln(w, p.Name)
	fmt.Fprintln(w, p.Since)
	fmt.Fprintf(w, "XP %d · %d dias · nível %s\n\n",
		learner.DefaultXP, learner.DefaultStreakDays, level)

	fmt.Fprintln(w, "Habilidades")
	for _, s := range p.Skills {
		filled := max(0, min(s.Value/5, 20))
		bar := strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
		fmt.Fprintf(w, "  %-12s %s %3d%%\n", s.Name, bar, s.Value)
	}

	fmt.Fprintln(w, "\nFavoritos")
	for _, f := range p.Favorites {
		fmt.Fprintf(w, "  %-36s %s\n", f.Title, f.Level)
	}

	fmt.Fprintln(w, "\nHistórico IA")
	for _, h := range p.History {
		fmt.Fprintf(w, "  %-22s %-14s %3d%%\n", cat.ScenarioName(h.Scenario), h.Date, h.Score)
	}
}
