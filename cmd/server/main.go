package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"cardbinder/internal/catalog"
	"cardbinder/internal/config"
	"cardbinder/internal/serverapp"
)

var (
	addr        string
	dataDir     string
	configPath  string
	catalogPath string
	redisAddr   string
)

func main() {
	root := &cobra.Command{
		Use:   "cardbinder",
		Short: "Collectible card pack and album server",
		RunE:  run,

		SilenceUsage: true,
	}

	root.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	root.Flags().StringVar(&dataDir, "data-dir", "data", "directory for player state files")
	root.Flags().StringVar(&configPath, "config", "cardbinder.yml", "path to the yaml config file")
	root.Flags().StringVar(&catalogPath, "catalog", "catalog.toml", "path to the team and promo catalog")
	root.Flags().StringVar(&redisAddr, "redis", "", "redis address for player state (empty uses file storage)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	config.FromEnv(cfg)

	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config:    cfg,
		Catalog:   cat,
		DataDir:   dataDir,
		RedisAddr: redisAddr,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	logger.Info("listening", "addr", addr, "teams", len(cat.Teams))
	return http.ListenAndServe(addr, handler)
}
