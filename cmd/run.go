package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/learnflix/learnflix/internal/app"
	"github.com/learnflix/learnflix/internal/auth"
	"github.com/learnflix/learnflix/internal/conversation"
	"github.com/learnflix/learnflix/internal/learner"
	"github.com/learnflix/learnflix/internal/logging"
	"github.com/learnflix/learnflix/internal/nav"
)

// runApp loads configuration and the catalog, builds the services, and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		File:   cfg.LogFile,
		Level:  logging.Level(cfg.LogLevel),
		Format: logging.Format(cfg.LogFormat),
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cat, err := loadCatalog(cfg)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	state := learner.NewState()
	if err := state.SetLevel(cfg.InitialLevel()); err != nil {
		return fmt.Errorf("initial level: %w", err)
	}
	navigator := nav.New(state, nav.WithLogger(logger.Named("nav")))
	authService := auth.NewService(state, navigator,
		auth.WithHome(cfg.Home()),
		auth.WithLogger(logger.Named("auth")),
	)

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	logger.Info("starting",
		zap.String("version", version),
		zap.String("catalog", cat.Version),
		zap.String("home", string(cfg.Home())),
		zap.String("level", string(state.Level())))

	return app.Run(app.Options{
		Catalog:   cat,
		State:     state,
		Navigator: navigator,
		Auth:      authService,
		Provider:  conversation.CannedProvider{},
		Logger:    logger,
		Splash:    !noSplash,
	})
}
