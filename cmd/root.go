package cmd

import (
	"github.com/spf13/cobra"

	"github.com/learnflix/learnflix/internal/catalog"
	"github.com/learnflix/learnflix/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "learnflix",
	Short: "Learn English with series and movies",
	Long:  "Learn Flix: terminal app for Portuguese speakers learning English with scenes from series and movies.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides LEARNFLIX_CONFIG env var)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a catalog JSON file (overrides LEARNFLIX_CATALOG env var)")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file (overrides LEARNFLIX_LOG_FILE env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(profileCmd)
}

// loadConfig resolves the configuration with the persistent flags as the
// highest-priority source.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	catalogPath, _ := cmd.Flags().GetString("catalog")
	logFile, _ := cmd.Flags().GetString("log-file")
	logLevel, _ := cmd.Flags().GetString("log-level")

	return config.Load(config.Options{
		Path: path,
		Overrides: config.Overrides{
			LogFile:     logFile,
			LogLevel:    logLevel,
			CatalogPath: catalogPath,
		},
	})
}

// loadCatalog returns the configured catalog, or the embedded one.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default()
	}
	return catalog.Load(cfg.CatalogPath)
}
