package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"

	"apollo/internal/application"
	"apollo/internal/config"
	"apollo/internal/infrastructure/logging"
	"apollo/internal/ports/output"
)

// Stores groups the repositories the bot runs on.
type Stores struct {
	Guilds   output.GuildRepository
	Users    output.UserRepository
	Channels output.EventChannelRepository
	Events   output.EventRepository
}

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	config  *config.Config
	handler *Handler
	logger  *slog.Logger
}

// NewBot creates a Bot and wires ports: output adapters -> application (use cases) -> handler.
// ctx bounds every flow the bot starts.
func NewBot(ctx context.Context, cfg *config.Config, stores Stores, translator output.T, logger *slog.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsDirectMessages
	s.LogLevel = logging.DiscordgoLevel(cfg.LogLevel)

	w := newWaiter()
	selfID := func() string {
		if s.State == nil || s.State.User == nil {
			return ""
		}
		return s.State.User.ID
	}

	messenger := NewMessenger(s, w, translator, cfg.DefaultLocale)
	platform := NewPlatform(s, translator, cfg.DefaultLocale, selfID, logging.Named(logger, "platform"))

	syncUC := application.NewChannelSyncService(stores.Channels, platform, logging.Named(logger, "channel_sync"))
	eventUC := application.NewEventService(
		stores.Guilds, stores.Users, stores.Channels, stores.Events,
		messenger, platform, translator, syncUC,
		logging.Named(logger, "event"),
	)

	bot := &Bot{
		session: s,
		config:  cfg,
		handler: NewHandler(ctx, eventUC, syncUC, translator, w, logging.Named(logger, "handler")),
		logger:  logger,
	}
	bot.setupHandlers()
	return bot, nil
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		b.handler.HandleInteraction(s, i)
	})
	b.session.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		b.handler.HandleMessageCreate(m)
	})
	b.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		b.logger.Info("connected", "user", r.User.Username, "guilds", len(r.Guilds))
		b.handler.HandleReady(r)
	})
	b.session.AddHandler(func(_ *discordgo.Session, c *discordgo.ChannelDelete) {
		b.handler.HandleChannelDelete(c)
	})
}

// Start runs the bot until ctx is done, then waits for running flows.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer b.session.Close()

	cmd := b.handler.eventCommand()
	if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd); err != nil {
		b.logger.Error("register command", "command", cmd.Name, tint.Err(err))
	}

	b.logger.Info("bot online")
	<-ctx.Done()
	b.logger.Info("shutting down")
	b.handler.Wait()
	return nil
}
