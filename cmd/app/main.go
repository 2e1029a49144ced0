package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/bindrune/internal"
	pkgconfig "github.com/starford/bindrune/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()

	configPath := cmd.String("config")
	if _, err := os.Stat(configPath); err == nil {
		if err := pkgconfig.Load(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if cmd.IsSet("config") {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	if db := cmd.String("db"); db != "" {
		cfg.SQLite.Path = db
	}
	return cfg, nil
}

func main() {
	cmd := &cli.Command{
		Name:    "bindrune",
		Usage:   "Personal bookmark and note archive with full-text search over distilled page content",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("BINDRUNE_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "Path to the archive database (overrides config)",
				Sources: cli.EnvVars("BINDRUNE_DB"),
			},
		},
		Commands: []*cli.Command{
			addCommand(),
			listCommand(),
			noteCommand(),
			removeCommand(),
			searchCommand(),
			showCommand(),
			serveCommand(),
			mcpCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
