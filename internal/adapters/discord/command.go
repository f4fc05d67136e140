package discord

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"

	"apollo/internal/domain"
	"apollo/internal/ports/input"
	pkgdiscord "apollo/pkg/discord"
)

const eventCommandName = "event"

const eventManagerPermissions = discordgo.PermissionAdministrator |
	discordgo.PermissionManageEvents |
	discordgo.PermissionManageServer

func canCreateEvents(member *discordgo.Member) bool {
	return member != nil && member.Permissions&eventManagerPermissions != 0
}

type localizations interface {
	Localizations(key string) map[string]string
}

func (h *Handler) eventCommand() *discordgo.ApplicationCommand {
	dmPermission := false
	cmd := &discordgo.ApplicationCommand{
		Name:         eventCommandName,
		Description:  h.translator.T("", "command.description", nil),
		DMPermission: &dmPermission,
	}
	if l, ok := h.translator.(localizations); ok {
		if byLocale := l.Localizations("command.description"); len(byLocale) > 0 {
			descriptions := make(map[discordgo.Locale]string, len(byLocale))
			for locale, text := range byLocale {
				descriptions[discordgo.Locale(locale)] = text
			}
			cmd.DescriptionLocalizations = &descriptions
		}
	}
	return cmd
}

// HandleEventCommand acknowledges /event and runs the creation flow in the
// background; the flow answers through the deferred response and DMs.
func (h *Handler) HandleEventCommand(s Session, i *discordgo.InteractionCreate) {
	locale := string(i.Locale)
	if i.GuildID == "" || i.Member == nil {
		if err := respondEphemeral(s, i.Interaction, h.translator.T(locale, "error.guild_only", nil)); err != nil {
			h.logger.Warn("respond to DM invocation", tint.Err(err))
		}
		return
	}
	if err := deferEphemeral(s, i.Interaction); err != nil {
		h.logger.Error("acknowledge event command", "guild_id", i.GuildID, tint.Err(err))
		return
	}

	inv := input.EventInvocation{
		GuildID:         i.GuildID,
		ChannelID:       i.ChannelID,
		UserID:          interactionUserID(i),
		Locale:          locale,
		CanCreateEvents: canCreateEvents(i.Member),
		Responder:       &interactionResponder{session: s, interaction: i.Interaction},
	}

	h.flows.Add(1)
	go func() {
		defer h.flows.Done()
		inv.ParentID = h.parentID(h.ctx, s, inv.ChannelID)
		h.runEventFlow(h.ctx, inv)
	}()
}

func (h *Handler) parentID(ctx context.Context, s Session, channelID string) string {
	ch, err := s.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil || ch == nil {
		h.logger.WarnContext(ctx, "lookup invoking channel", "channel_id", channelID, tint.Err(err))
		return ""
	}
	return ch.ParentID
}

func (h *Handler) runEventFlow(ctx context.Context, inv input.EventInvocation) {
	log := h.logger.With("guild_id", inv.GuildID, "user_id", inv.UserID)
	event, err := h.eventUseCase.CreateEvent(ctx, inv)
	switch {
	case err == nil:
		log.DebugContext(ctx, "event flow finished", "event_id", event.ID, "channel_id", event.EventChannel.ID)
	case errors.Is(err, context.Canceled):
		log.DebugContext(ctx, "event flow cancelled")
	case domain.Code(err) != "":
		log.InfoContext(ctx, "event flow ended", "code", domain.Code(err))
	default:
		log.ErrorContext(ctx, "event flow failed", tint.Err(err))
		if rerr := inv.Responder.Respond(ctx, h.translator.T(inv.Locale, pkgdiscord.ErrorKey(err), nil)); rerr != nil {
			log.WarnContext(ctx, "report flow failure", tint.Err(rerr))
		}
	}
}
