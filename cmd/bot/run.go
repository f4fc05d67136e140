package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"apollo/internal/adapters/discord"
	"apollo/internal/config"
	"apollo/internal/infrastructure/database"
	"apollo/internal/infrastructure/gormstore"
	"apollo/internal/infrastructure/i18n"
	"apollo/internal/infrastructure/logging"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Connect to Discord and serve the /event command",
		Args:  cobra.NoArgs,
		RunE:  runBot,
	}
}

func runBot(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)
	discordgo.Logger = logging.DiscordgoLogger(logging.Named(logger, "discordgo"))

	stores, closeStores, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStores()

	translator := i18n.NewTranslator(cfg.DefaultLocale, logging.Named(logger, "i18n"))
	bot, err := discord.NewBot(ctx, cfg, stores, translator, logger)
	if err != nil {
		return err
	}
	return bot.Start(ctx)
}

func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (discord.Stores, func(), error) {
	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		db, err := gormstore.Open(ctx, cfg.SQLitePath, logging.Named(logger, "gorm"))
		if err != nil {
			return discord.Stores{}, nil, err
		}
		stores := discord.Stores{
			Guilds:   gormstore.NewGuildRepository(db),
			Users:    gormstore.NewUserRepository(db),
			Channels: gormstore.NewEventChannelRepository(db),
			Events:   gormstore.NewEventRepository(db),
		}
		return stores, func() {
			if err := gormstore.Close(db); err != nil {
				logger.Warn("close sqlite store", tint.Err(err))
			}
		}, nil

	case config.DriverPostgres:
		if cfg.AutoMigrate {
			if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
				return discord.Stores{}, nil, err
			}
		}
		pool, err := database.NewPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return discord.Stores{}, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		stores := discord.Stores{
			Guilds:   database.NewGuildRepository(pool),
			Users:    database.NewUserRepository(pool),
			Channels: database.NewEventChannelRepository(pool),
			Events:   database.NewEventRepository(pool),
		}
		return stores, pool.Close, nil
	}
	return discord.Stores{}, nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
}
