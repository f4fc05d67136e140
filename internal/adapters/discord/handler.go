package discord

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"

	"apollo/internal/domain"
	"apollo/internal/ports/input"
	"apollo/internal/ports/output"
)

// Handler routes gateway events to use cases and pending waits.
type Handler struct {
	eventUseCase input.EventCreationUseCase
	channelSync  input.ChannelSyncUseCase
	translator   output.T
	waiter       *waiter
	logger       *slog.Logger

	// ctx is the bot's root context; flows outlive the handler call that
	// starts them.
	ctx   context.Context
	flows sync.WaitGroup
}

func NewHandler(
	ctx context.Context,
	eventUseCase input.EventCreationUseCase,
	channelSync input.ChannelSyncUseCase,
	translator output.T,
	w *waiter,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		eventUseCase: eventUseCase,
		channelSync:  channelSync,
		translator:   translator,
		waiter:       w,
		logger:       logger,
		ctx:          ctx,
	}
}

func (h *Handler) HandleInteraction(s Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if i.ApplicationCommandData().Name == eventCommandName {
			h.HandleEventCommand(s, i)
		}
	case discordgo.InteractionMessageComponent:
		if h.waiter.Dispatch(i) {
			return
		}
		// a chooser whose flow already ended
		key := "error." + domain.Code(domain.ErrChannelChoiceTimeout)
		if err := respondEphemeral(s, i.Interaction, h.translator.T(string(i.Locale), key, nil)); err != nil {
			h.logger.Warn("respond to stale component", tint.Err(err))
		}
	}
}

func (h *Handler) HandleMessageCreate(m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID != "" {
		return
	}
	h.waiter.Dispatch(m)
}

// HandleReady syncs the event channels of every guild the bot is in.
func (h *Handler) HandleReady(r *discordgo.Ready) {
	for _, g := range r.Guilds {
		guildID := g.ID
		h.flows.Add(1)
		go func() {
			defer h.flows.Done()
			removed, err := h.channelSync.SyncGuild(h.ctx, guildID)
			if err != nil {
				h.logger.Error("sync event channels", "guild_id", guildID, tint.Err(err))
				return
			}
			if removed > 0 {
				h.logger.Info("pruned event channels", "guild_id", guildID, "removed", removed)
			}
		}()
	}
}

func (h *Handler) HandleChannelDelete(c *discordgo.ChannelDelete) {
	if c.Channel == nil || c.GuildID == "" {
		return
	}
	if err := h.channelSync.ForgetChannel(h.ctx, c.ID); err != nil {
		h.logger.Error("forget deleted channel", "channel_id", c.ID, tint.Err(err))
	}
}

// Wait blocks until every running flow and sync has returned.
func (h *Handler) Wait() {
	h.flows.Wait()
}
