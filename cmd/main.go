package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/hbnb/internal/repositories"
	"github.com/desertthunder/hbnb/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	if err := shared.LoadEnvFile(".env"); err != nil {
		logger.Warn("ignoring env file", "error", err)
	}

	configPath := os.Getenv("HBNB_CONFIG")
	if configPath == "" {
		configPath = "config.toml"
	}

	config, err := shared.ResolveConfig(configPath)
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if err := shared.SetLogLevel(logger, config.Log.Level); err != nil {
		logger.Warn("invalid log level, using info", "level", config.Log.Level)
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		logger.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Store:      repositories.NewStore(db),
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "hbnb",
		Usage:    "Serve and manage the HBnB catalog of states, cities, amenities and places",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		db.Close()
		logger.Fatalf("application error: %v", err)
	}
}
